package domain

type DelayReason struct {
	TaskID string
	Reason string
}

// Recap keeps delay reasons in insertion order; weekly tallies break ties on it.
type Recap struct {
	Summary      string
	DelayReasons []DelayReason
}

func (r Recap) DelayReason(taskID string) string {
	for _, item := range r.DelayReasons {
		if item.TaskID == taskID {
			return item.Reason
		}
	}
	return ""
}

// SetDelayReason updates in place, appends, or removes the entry when reason is empty.
func (r *Recap) SetDelayReason(taskID, reason string) {
	if reason == "" {
		r.DeleteDelayReason(taskID)
		return
	}
	for i := range r.DelayReasons {
		if r.DelayReasons[i].TaskID == taskID {
			r.DelayReasons[i].Reason = reason
			return
		}
	}
	r.DelayReasons = append(r.DelayReasons, DelayReason{TaskID: taskID, Reason: reason})
}

func (r *Recap) DeleteDelayReason(taskID string) {
	kept := r.DelayReasons[:0]
	for _, item := range r.DelayReasons {
		if item.TaskID != taskID {
			kept = append(kept, item)
		}
	}
	r.DelayReasons = kept
}

type Day struct {
	Kickoff       string
	Tasks         []Task
	Recap         Recap
	RolledForward bool
}

func (d *Day) FindTask(taskID string) (int, bool) {
	for i := range d.Tasks {
		if d.Tasks[i].ID == taskID {
			return i, true
		}
	}
	return -1, false
}

func (d Day) CompletedCount() int {
	count := 0
	for _, task := range d.Tasks {
		if task.Completed {
			count++
		}
	}
	return count
}

func (d Day) PendingTasks() []Task {
	pending := make([]Task, 0, len(d.Tasks))
	for _, task := range d.Tasks {
		if !task.Completed {
			pending = append(pending, task)
		}
	}
	return pending
}

func (d Day) ActiveMustDoCount() int {
	count := 0
	for _, task := range d.Tasks {
		if task.MustDo && !task.Completed {
			count++
		}
	}
	return count
}

func (d Day) clone() Day {
	out := d
	out.Tasks = append([]Task{}, d.Tasks...)
	out.Recap.DelayReasons = append([]DelayReason{}, d.Recap.DelayReasons...)
	return out
}

// Days maps date keys to day records. Records are never deleted.
type Days map[string]*Day

// EnsureDay returns the record for key, creating an empty one when absent and
// repairing nil sub-structures in place.
func (d Days) EnsureDay(key string) *Day {
	day, ok := d[key]
	if !ok || day == nil {
		day = &Day{}
		d[key] = day
	}
	if day.Tasks == nil {
		day.Tasks = []Task{}
	}
	if day.Recap.DelayReasons == nil {
		day.Recap.DelayReasons = []DelayReason{}
	}
	return day
}

// Lookup returns a copy of the record for key, or an empty record, without
// materializing it.
func (d Days) Lookup(key string) Day {
	day, ok := d[key]
	if !ok || day == nil {
		return Day{Tasks: []Task{}, Recap: Recap{DelayReasons: []DelayReason{}}}
	}
	return day.clone()
}

func (d Days) Clone() Days {
	out := make(Days, len(d))
	for key, day := range d {
		if day == nil {
			continue
		}
		copied := day.clone()
		out[key] = &copied
	}
	return out
}
