package markdown_test

import (
	"strings"
	"testing"

	"compass/internal/platform/markdown"
)

func TestRenderFrontmatterKeepsFieldOrderAndSplitsBack(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter([]markdown.Field{
		{Key: "date", Value: "2024-01-04"},
		{Key: "tasks_total", Value: 3},
		{Key: "successful", Value: true},
	}, "# Thursday\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\ndate: \"2024-01-04\"\ntasks_total: 3\nsuccessful: true\n---\n") {
		t.Fatalf("unexpected frontmatter order:\n%s", rendered)
	}
	meta, body, err := markdown.SplitFrontmatter(rendered)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["tasks_total"] != 3 || meta["successful"] != true {
		t.Fatalf("unexpected meta %v", meta)
	}
	if body != "\n# Thursday\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitFrontmatterWithoutHeaderAndUnclosed(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("plain text")
	if err != nil || len(meta) != 0 || body != "plain text" {
		t.Fatalf("plain body: %v %v %q", err, meta, body)
	}
	if _, _, err := markdown.SplitFrontmatter("---\nkey: value\n"); err == nil {
		t.Fatalf("unclosed frontmatter must fail")
	}
}

func TestReplaceManagedBlock(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"
	if got := markdown.ReplaceManagedBlock("", start, end, "a"); got != start+"\na\n"+end+"\n" {
		t.Fatalf("empty body: %q", got)
	}
	body := "mine\n\n" + start + "\nold\n" + end + "\ntail\n"
	got := markdown.ReplaceManagedBlock(body, start, end, "new\n")
	if got != "mine\n\n"+start+"\nnew\n"+end+"\ntail\n" {
		t.Fatalf("replace: %q", got)
	}
	if got := markdown.ReplaceManagedBlock("notes", start, end, "x"); got != "notes\n\n"+start+"\nx\n"+end+"\n" {
		t.Fatalf("append: %q", got)
	}
}
