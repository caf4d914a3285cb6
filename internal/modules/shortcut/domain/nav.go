package domain

type Page string

const (
	PageFocus     Page = "focus"
	PageNotes     Page = "notes"
	PageDashboard Page = "dashboard"
)

// PageOrder is the circular navigation order.
var PageOrder = []Page{PageFocus, PageNotes, PageDashboard}

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

func (p Page) Title() string {
	switch p {
	case PageFocus:
		return "Focus"
	case PageNotes:
		return "Notes"
	case PageDashboard:
		return "Dashboard"
	}
	return string(p)
}

func pageIndex(p Page) int {
	for i, candidate := range PageOrder {
		if candidate == p {
			return i
		}
	}
	return -1
}

// ParsePage returns the page named s, or PageFocus when s is unknown.
func ParsePage(s string) Page {
	if pageIndex(Page(s)) < 0 {
		return PageFocus
	}
	return Page(s)
}

// Adjacent returns the neighbour of page in the given direction, wrapping at
// both ends. An unknown page yields PageFocus.
func Adjacent(page Page, dir Direction) Page {
	idx := pageIndex(page)
	if idx < 0 {
		return PageFocus
	}
	n := len(PageOrder)
	if dir == Backward {
		return PageOrder[(idx-1+n)%n]
	}
	return PageOrder[(idx+1)%n]
}

// TransitionDirection reports Forward when to sits at or after from in the
// page order, Backward otherwise.
func TransitionDirection(from, to Page) Direction {
	if pageIndex(to) >= pageIndex(from) {
		return Forward
	}
	return Backward
}
