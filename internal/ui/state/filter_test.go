package state

import "testing"

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	l := newTestList("ORD-2024-001", "ORD-2024-002", "ORD-2024-003")
	l.Cursor = 2
	l.SetFilter("002", len("002"))
	if l.FilterCursor != 3 {
		t.Fatalf("expected cursor at end, got %d", l.FilterCursor)
	}
	if len(l.Items) != 1 || l.Items[0].ID != "ORD-2024-002" {
		t.Fatalf("expected only ORD-2024-002, got %#v", l.Items)
	}
	if l.Cursor != 0 {
		t.Fatalf("expected filtered cursor 0, got %d", l.Cursor)
	}
	if !l.ClearFilter() {
		t.Fatalf("expected clear to report a change")
	}
	if l.Cursor != 2 || l.LastCursor != -1 {
		t.Fatalf("expected cursor restored to 2, got %d (last %d)", l.Cursor, l.LastCursor)
	}
	if l.ClearFilter() {
		t.Fatalf("expected second clear to be a no-op")
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	l := newTestList("Home", "Office")
	if !l.InsertFilterText("of") || l.Filter != "of" {
		t.Fatalf("unexpected filter %q", l.Filter)
	}
	if len(l.Items) != 1 || l.Items[0].ID != "Office" {
		t.Fatalf("expected Office to match, got %#v", l.Items)
	}
	l.FilterCursor = 1
	l.InsertFilterText("z")
	if l.Filter != "ozf" || l.FilterCursor != 2 {
		t.Fatalf("expected insert into middle, got %q/%d", l.Filter, l.FilterCursor)
	}
	if !l.DeleteFilterRuneBackward() || l.Filter != "of" {
		t.Fatalf("expected rune deletion, got %q", l.Filter)
	}
	if !l.MoveFilterCursorRuneForward() || l.FilterCursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.FilterCursor)
	}
	if l.MoveFilterCursorRuneForward() {
		t.Fatalf("expected no movement at end")
	}
	l.SetFilter("new york", len("new york"))
	if !l.DeleteFilterWordBackward() || l.Filter != "new " {
		t.Fatalf("expected word deletion, got %q", l.Filter)
	}
}

func TestFilterItemsFallsBackToSubstring(t *testing.T) {
	items := []Item{{ID: "INV-2024-001", Label: "Invoice one"}, {ID: "INV-2024-002", Label: "Invoice two"}}
	got := FilterItems(items, "2024-002")
	if len(got) != 1 || got[0].ID != "INV-2024-002" {
		t.Fatalf("expected id substring match, got %#v", got)
	}
	if got := FilterItems(items, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %#v", got)
	}
}

func TestBestMatchIndexPrefersPrefix(t *testing.T) {
	items := []Item{{ID: "1", Label: "Office"}, {ID: "2", Label: "Home office"}}
	if idx := BestMatchIndex(items, "home"); idx != 1 {
		t.Fatalf("expected prefix match at 1, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "x"); idx != -1 {
		t.Fatalf("expected -1 for empty items, got %d", idx)
	}
}
