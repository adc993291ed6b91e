package proxy

import (
	"honnef.co/go/pointerproxy/debug"

	"gioui.org/io/event"
)

// LogicalPointer is the state kept for an active contact.
type LogicalPointer struct {
	// Target is the last target the contact was observed at.
	Target event.Tag
	// IsPrimary is set for a contact that began while no other contact was
	// active.
	IsPrimary bool
}

// Tracker maps native contact identifiers to logical pointers. The zero value
// is ready to use.
type Tracker struct {
	active map[int]*LogicalPointer
	count  int
}

// Track starts tracking contact id at target, replacing any existing record
// for id.
func (tr *Tracker) Track(id int, target event.Tag) *LogicalPointer {
	if tr.active == nil {
		tr.active = make(map[int]*LogicalPointer)
	}
	if _, ok := tr.active[id]; ok {
		tr.count--
	}
	lp := &LogicalPointer{
		Target:    target,
		IsPrimary: tr.count == 0,
	}
	tr.active[id] = lp
	tr.count++
	return lp
}

// FetchOrTrack returns the record for id, tracking it at target if it isn't
// tracked yet.
func (tr *Tracker) FetchOrTrack(id int, target event.Tag) *LogicalPointer {
	if lp, ok := tr.active[id]; ok {
		return lp
	}
	return tr.Track(id, target)
}

func (tr *Tracker) Lookup(id int) (*LogicalPointer, bool) {
	lp, ok := tr.active[id]
	return lp, ok
}

// Untrack forgets contact id. It is a no-op for unknown ids.
func (tr *Tracker) Untrack(id int) {
	if _, ok := tr.active[id]; ok {
		delete(tr.active, id)
		tr.count--
		debug.Assertf(tr.count == len(tr.active), "contact count out of sync")
	}
}

// Len returns the number of active contacts.
func (tr *Tracker) Len() int {
	return tr.count
}
