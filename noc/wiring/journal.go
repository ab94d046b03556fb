package wiring

import (
	"github.com/sarchlab/memhier/sim"
)

// HookPosLinkConnect marks a link being added to a journal.
var HookPosLinkConnect = &sim.HookPos{Name: "Link Connect"}

// HookPosLinkDisconnect marks a link being undone by a rollback.
var HookPosLinkDisconnect = &sim.HookPos{Name: "Link Disconnect"}

// An entry is either a recorded link or an undo step.
type entry struct {
	link *Link
	undo func()
}

// A Journal keeps every link made during a construction, together with the
// steps that undo other changes, so that the whole construction can be undone
// if a later step fails.
type Journal struct {
	sim.HookableBase

	entries []entry
	links   []*Link
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Connect binds the requestor to the responder and records the link.
func (j *Journal) Connect(requestor, responder sim.Port) (*Link, error) {
	l, err := Connect(requestor, responder)
	if err != nil {
		return nil, err
	}

	j.Record(l)

	return l, nil
}

// Record adds a link that was made elsewhere, for example by a board that
// binds its own port to one handed out by the journal owner.
func (j *Journal) Record(l *Link) {
	for _, existing := range j.links {
		if existing == l {
			return
		}
	}

	j.links = append(j.links, l)
	j.entries = append(j.entries, entry{link: l})

	j.InvokeHook(sim.HookCtx{
		Domain: j,
		Pos:    HookPosLinkConnect,
		Item:   l,
	})
}

// RecordPort records the link that the port is plugged into, if the port is
// bound through a Link. It returns false if the port is unbound.
func (j *Journal) RecordPort(p sim.Port) bool {
	l, ok := p.Connection().(*Link)
	if !ok || l == nil {
		return false
	}

	j.Record(l)

	return true
}

// OnRollback records a step that undoes a change other than a link, such as
// a slot created on a component owned by someone else. Undo steps and link
// disconnections run together, newest first.
func (j *Journal) OnRollback(undo func()) {
	j.entries = append(j.entries, entry{undo: undo})
}

// Links returns the recorded links in the order they were made.
func (j *Journal) Links() []*Link {
	return j.links
}

// Rollback disconnects every recorded link and runs every undo step, newest
// first, and forgets them.
func (j *Journal) Rollback() {
	for i := len(j.entries) - 1; i >= 0; i-- {
		e := j.entries[i]
		if e.undo != nil {
			e.undo()
			continue
		}

		e.link.Disconnect()

		j.InvokeHook(sim.HookCtx{
			Domain: j,
			Pos:    HookPosLinkDisconnect,
			Item:   e.link,
		})
	}

	j.entries = nil
	j.links = nil
}
