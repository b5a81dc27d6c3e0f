package song

import "github.com/jsphweid/chordsheet/model"

// Event is either one emitted output line or an explicit break marker.
type Event struct {
	Marker bool
	Scope  model.BreakScope
}

func LineEvent() Event {
	return Event{}
}

func MarkerEvent(scope model.BreakScope) Event {
	return Event{Marker: true, Scope: scope}
}

// Paginator decides where column breaks go. It is a value, Advance returns
// the next state.
type Paginator struct {
	PageSize    int // lines per column, zero turns threshold breaks off
	Orientation model.Orientation
	Count       int // lines emitted since the last break
}

func NewPaginator(pageSize int, orientation model.Orientation) Paginator {
	return Paginator{PageSize: pageSize, Orientation: orientation}
}

// Advance reports whether a break must be emitted for ev. For a line event
// the break goes before the line, so a column never ends with a dangling
// break and the counter restarts at one for the line itself. Markers for the
// other orientation are swallowed without touching the counter.
func (p Paginator) Advance(ev Event) (Paginator, bool) {
	if ev.Marker {
		if !p.Orientation.Honors(ev.Scope) {
			return p, false
		}
		p.Count = 0
		return p, true
	}

	if p.PageSize > 0 && p.Count >= p.PageSize {
		p.Count = 1
		return p, true
	}
	p.Count++
	return p, false
}
