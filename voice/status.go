// SPDX-License-Identifier: EPL-2.0

package voice

// Status is a read-only view of one slot.
type Status struct {
	ID     int
	Name   string
	Source Source
	Loop   bool
	Free   bool
	Loops  int   // completed restarts
	Frames int64 // frames delivered since open
}

// Snapshot reports every slot in index order, free ones included.
func (p *Pool) Snapshot() []Status {
	out := make([]Status, len(p.slots))
	for i := range p.slots {
		s := &p.slots[i]
		out[i] = Status{
			ID:     i,
			Name:   s.name,
			Source: s.source,
			Loop:   s.loop,
			Free:   s.free,
			Loops:  s.loops,
			Frames: s.frames,
		}
	}

	return out
}

// Status returns the view of slot id, or false when id is out of range.
func (p *Pool) Status(id int) (Status, bool) {
	if id < 0 || id >= len(p.slots) {
		return Status{}, false
	}

	return p.Snapshot()[id], true
}
