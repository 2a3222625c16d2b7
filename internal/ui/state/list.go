package state

// Item is a selectable row in a list section.
type Item struct {
	ID    string
	Label string
}

// List encapsulates list state such as cursor position, filter, and viewport.
type List struct {
	ID             string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List over the provided items.
func NewList(id string, items []Item) *List {
	l := &List{ID: id, LastCursor: -1}
	l.SetItems(items)
	return l
}

// IndexOf returns the index for a given item identifier in the visible items.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// SetItems refreshes the list, keeping the cursor on the same item when it
// is still present.
func (l *List) SetItems(items []Item) {
	current, hadCurrent := l.Current()
	prevOffset := l.ViewportOffset
	l.Full = cloneItems(items)
	l.applyFilter()
	if hadCurrent {
		if idx := l.IndexOf(current.ID); idx >= 0 {
			l.Cursor = idx
		}
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

func cloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
