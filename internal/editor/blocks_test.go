package editor

import "testing"

func TestBlockTrackerResyncNearestFirst(t *testing.T) {
	t.Parallel()

	tr := NewBlockTracker()
	tr.Resync([]string{"B", "SPAN", "H2", "P"})
	if got := tr.Active(); got != BlockHeading2 {
		t.Fatalf("active = %q, want H2", got)
	}

	tr.Resync([]string{"LI", "UL"})
	if got := tr.Active(); got != BlockUnorderedList {
		t.Fatalf("active = %q, want UL", got)
	}
}

func TestBlockTrackerResyncDefaultsToParagraph(t *testing.T) {
	t.Parallel()

	tr := NewBlockTracker()
	tr.Resync([]string{"H3"})
	tr.Resync([]string{"B", "SPAN"})
	if got := tr.Active(); got != BlockParagraph {
		t.Fatalf("active = %q, want P", got)
	}
}

func TestBlockTrackerToggle(t *testing.T) {
	t.Parallel()

	tr := NewBlockTracker()
	if got := tr.Toggle(BlockHeading1); got != BlockHeading1 {
		t.Fatalf("toggle from P = %q, want H1", got)
	}

	tr.Resync([]string{"H1"})
	if got := tr.Toggle(BlockHeading1); got != BlockParagraph {
		t.Fatalf("toggle active H1 = %q, want P", got)
	}
	if got := tr.Toggle(BlockHeading2); got != BlockHeading2 {
		t.Fatalf("toggle H2 while H1 active = %q, want H2", got)
	}
}

func TestBlockKindFromNode(t *testing.T) {
	t.Parallel()

	if k, ok := BlockKindFromNode("H4"); !ok || k != BlockHeading4 {
		t.Fatalf("H4 = (%q, %v), want (H4, true)", k, ok)
	}
	if _, ok := BlockKindFromNode("DIV"); ok {
		t.Fatalf("DIV should not be a recognized block kind")
	}
	if _, ok := BlockKindFromNode("h1"); ok {
		t.Fatalf("node names are uppercase; lowercase must not match")
	}
}
