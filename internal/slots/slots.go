// Package slots tracks the view state of each independent analysis on the page.
package slots

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
)

// ID names one slot.
type ID string

const (
	OverallClarity    ID = "overall_clarity"
	InputClarity      ID = "input_clarity"
	InputAuthenticity ID = "input_authenticity"

	examplePrefix = "example:"
)

// Example returns the slot for a catalog example's authenticity analysis.
func Example(exampleID string) ID { return ID(examplePrefix + exampleID) }

// ExampleID returns the catalog example id for an example slot.
func (id ID) ExampleID() (string, bool) {
	s := string(id)
	if !strings.HasPrefix(s, examplePrefix) {
		return "", false
	}
	return strings.TrimPrefix(s, examplePrefix), true
}

// State is the lifecycle stage of a slot.
type State string

const (
	Idle      State = "idle"
	Loading   State = "loading"
	Succeeded State = "succeeded"
	Failed    State = "failed"
)

// View is a point-in-time copy of one slot.
type View struct {
	ID           ID                         `json:"id"`
	State        State                      `json:"state"`
	Clarity      *domain.ClarityResult      `json:"clarity,omitempty"`
	Authenticity *domain.AuthenticityResult `json:"authenticity,omitempty"`
	Err          string                     `json:"error,omitempty"`
	ErrKind      string                     `json:"error_kind,omitempty"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

// Ticket identifies one in-flight request for a slot.
type Ticket struct {
	slot  ID
	epoch uint64
}

// Slot returns the slot the ticket belongs to.
func (t Ticket) Slot() ID { return t.slot }

type entry struct {
	view    View
	epoch   uint64
	pending int
}

// Board holds every slot. It is safe for concurrent use.
type Board struct {
	mu    sync.Mutex
	slots map[ID]*entry
	now   func() time.Time
}

// NewBoard returns a board with the given slots registered as idle.
func NewBoard(ids ...ID) *Board {
	b := &Board{slots: make(map[ID]*entry), now: time.Now}
	for _, id := range ids {
		b.entryLocked(id)
	}
	return b
}

func (b *Board) entryLocked(id ID) *entry {
	e, ok := b.slots[id]
	if !ok {
		e = &entry{view: View{ID: id, State: Idle, UpdatedAt: b.now()}}
		b.slots[id] = e
	}
	return e
}

// Begin marks the slot loading and returns the ticket its result must be
// resolved with.
func (b *Board) Begin(id ID) Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.entryLocked(id)
	e.pending++
	e.view.State = Loading
	e.view.UpdatedAt = b.now()
	return Ticket{slot: id, epoch: e.epoch}
}

// ResolveClarity records a clarity result. It reports whether the result was applied.
func (b *Board) ResolveClarity(t Ticket, res domain.ClarityResult) bool {
	return b.resolve(t, View{State: Succeeded, Clarity: &res})
}

// ResolveAuthenticity records an authenticity result. It reports whether the result was applied.
func (b *Board) ResolveAuthenticity(t Ticket, res domain.AuthenticityResult) bool {
	return b.resolve(t, View{State: Succeeded, Authenticity: &res})
}

// Fail records a failure. It reports whether the failure was applied.
func (b *Board) Fail(t Ticket, err error) bool {
	return b.resolve(t, failureView(err))
}

func failureView(err error) View {
	v := View{State: Failed}
	if err != nil {
		v.Err = err.Error()
		if kind, ok := domain.KindOf(err); ok {
			v.ErrKind = kind.String()
		} else if domain.IsValidation(err) {
			v.ErrKind = "validation"
		}
	}
	return v
}

// Reject shows a local failure, e.g. input that failed validation before
// anything was sent. Requests still in flight for the slot stay live and
// replace the failure when they resolve.
func (b *Board) Reject(id ID, err error) {
	if err == nil {
		err = errors.New("request rejected")
	}
	v := failureView(err)

	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.entryLocked(id)
	v.ID = id
	v.UpdatedAt = b.now()
	e.view = v
}

// resolve applies the outcome when the ticket is still current. Requests are
// never cancelled: whichever live request resolves last is what the slot shows.
func (b *Board) resolve(t Ticket, v View) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.slots[t.slot]
	if !ok || e.epoch != t.epoch {
		return false
	}

	v.ID = t.slot
	v.UpdatedAt = b.now()
	if e.pending > 0 {
		e.pending--
	}
	if e.pending > 0 {
		// Still waiting on a later request; its outcome will replace this one.
		e.view.UpdatedAt = v.UpdatedAt
		return true
	}
	e.view = v
	return true
}

// Reset returns slots to idle. Results of requests begun before the reset are dropped.
func (b *Board) Reset(ids ...ID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range ids {
		e := b.entryLocked(id)
		e.epoch++
		e.pending = 0
		e.view = View{ID: id, State: Idle, UpdatedAt: b.now()}
	}
}

// Clear drops the shown result of each slot without abandoning its requests:
// a slot with requests in flight reads as loading, otherwise idle.
func (b *Board) Clear(ids ...ID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range ids {
		e := b.entryLocked(id)
		state := Idle
		if e.pending > 0 {
			state = Loading
		}
		e.view = View{ID: id, State: state, UpdatedAt: b.now()}
	}
}

// Get returns a copy of one slot. Unknown slots read as idle.
func (b *Board) Get(id ID) View {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.slots[id]
	if !ok {
		return View{ID: id, State: Idle}
	}
	return e.view
}

// Snapshot returns copies of every slot ordered by id.
func (b *Board) Snapshot() []View {
	b.mu.Lock()
	out := make([]View, 0, len(b.slots))
	for _, e := range b.slots {
		out = append(out, e.view)
	}
	b.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
