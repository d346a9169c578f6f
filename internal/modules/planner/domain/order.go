package domain

import (
	"sort"
	"strings"
)

type Filter string

const (
	FilterAll     Filter = "All"
	FilterMustDo  Filter = "Must-Do"
	FilterHome    Filter = Filter(ContextHome)
	FilterWork    Filter = Filter(ContextWork)
	FilterErrands Filter = Filter(ContextErrands)
)

func ParseFilter(raw string) (Filter, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return FilterAll, true
	}
	for _, f := range []Filter{FilterAll, FilterMustDo, FilterHome, FilterWork, FilterErrands} {
		if strings.EqualFold(string(f), trimmed) {
			return f, true
		}
	}
	if strings.EqualFold(trimmed, "must") || strings.EqualFold(trimmed, "mustdo") {
		return FilterMustDo, true
	}
	return "", false
}

func (f Filter) Match(task Task) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterMustDo:
		return task.MustDo
	default:
		return string(task.Context) == string(f)
	}
}

// DisplayOrder returns a filtered copy: pending before done, must-do first,
// then oldest created first.
func DisplayOrder(tasks []Task, filter Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if filter.Match(task) {
			out = append(out, task)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.MustDo != b.MustDo {
			return a.MustDo
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out
}
