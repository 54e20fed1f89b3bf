// Package selection tracks which customer is active in a carer's workflow.
//
// A Context holds the selected customer together with the ordered roster
// used for next/previous navigation. Every operation is total: unknown
// identifiers and roster boundaries degrade to no-ops or empty display names
// instead of errors, so pages that render from a snapshot never fail on it.
//
// A Context is safe for concurrent use. Each operation performs its
// read-then-write under one lock, so observers only ever see the state
// before or after an operation, never a partial update.
package selection

import (
	"slices"
	"sync"
)

// CustomerRef is a lightweight reference to a customer on a roster.
type CustomerRef struct {
	CustomerID string `json:"customer_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
}

// State is a snapshot of a Context.
//
// An empty CustomerID means no customer is selected. FirstName and LastName
// mirror the roster entry that matched when the selection last changed.
type State struct {
	CustomerID   string        `json:"customer_id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	CustomerList []CustomerRef `json:"customer_list"`

	// Revision increments on every change that alters the state.
	Revision uint64 `json:"revision"`
}

// Selected reports whether a customer is selected.
func (s State) Selected() bool {
	return s.CustomerID != ""
}

// Index returns the roster position of the selected customer, or -1.
func (s State) Index() int {
	if s.CustomerID == "" {
		return -1
	}
	return indexOf(s.CustomerList, s.CustomerID)
}

// HasNext reports whether Next would move the selection.
func (s State) HasNext() bool {
	i := s.Index()
	return i >= 0 && i < len(s.CustomerList)-1
}

// HasPrevious reports whether Previous would move the selection.
func (s State) HasPrevious() bool {
	return s.Index() > 0
}

// Mismatch describes a selection that could not be matched to its roster.
type Mismatch struct {
	Op         string // "establish", "next" or "previous"
	CustomerID string
	RosterSize int
}

// Operation names reported through Mismatch.Op.
const (
	OpEstablish = "establish"
	OpNext      = "next"
	OpPrevious  = "previous"
	OpClear     = "clear"
)

// Context owns one selection state. The zero value is an empty, usable
// Context.
type Context struct {
	mu    sync.Mutex
	state State

	subMu      sync.Mutex
	nextSubID  int
	subs       map[int]func(State)
	onMismatch func(Mismatch)
}

// New returns an empty Context.
func New() *Context {
	return &Context{}
}

// OnMismatch registers fn to be called when Establish is given an
// identifier that is not on the roster, or when Next/Previous cannot find
// the current identifier on the roster. The operation itself still
// succeeds. Passing nil removes the hook.
func (c *Context) OnMismatch(fn func(Mismatch)) {
	c.subMu.Lock()
	c.onMismatch = fn
	c.subMu.Unlock()
}

// Subscribe registers fn to receive the new state after every change.
// fn runs on the goroutine that made the change, after the lock is
// released; it may read the Context but should not block.
//
// Changes made concurrently from several goroutines can reach fn out of
// order. Observers that keep the latest state should compare Revision and
// ignore a state older than the one they hold.
func (c *Context) Subscribe(fn func(State)) (unsubscribe func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	if c.subs == nil {
		c.subs = make(map[int]func(State))
	}
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

// Snapshot returns a copy of the current state.
func (c *Context) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Establish replaces the roster and selects customerID.
//
// Display names are copied from the first roster entry whose identifier
// matches. When no entry matches, the selection is still set and the names
// are left empty.
func (c *Context) Establish(customerID string, roster []CustomerRef) State {
	c.mu.Lock()
	list := slices.Clone(roster)
	if list == nil {
		list = []CustomerRef{}
	}

	first, last := "", ""
	found := false
	if i := indexOf(list, customerID); i >= 0 {
		first, last = list[i].FirstName, list[i].LastName
		found = true
	}

	c.state = State{
		CustomerID:   customerID,
		FirstName:    first,
		LastName:     last,
		CustomerList: list,
		Revision:     c.state.Revision + 1,
	}
	out := c.state.clone()
	c.mu.Unlock()

	if !found && customerID != "" {
		c.reportMismatch(Mismatch{Op: OpEstablish, CustomerID: customerID, RosterSize: len(list)})
	}
	c.publish(out)
	return out
}

// Next moves the selection to the following roster entry.
//
// It is a no-op when nothing is selected, when the selected identifier is
// not on the roster, or when the selection is already the last entry.
func (c *Context) Next() State {
	return c.step(OpNext, 1)
}

// Previous moves the selection to the preceding roster entry.
//
// It is a no-op when nothing is selected, when the selected identifier is
// not on the roster, or when the selection is already the first entry.
func (c *Context) Previous() State {
	return c.step(OpPrevious, -1)
}

func (c *Context) step(op string, delta int) State {
	c.mu.Lock()
	if c.state.CustomerID == "" {
		out := c.state.clone()
		c.mu.Unlock()
		return out
	}

	i := indexOf(c.state.CustomerList, c.state.CustomerID)
	if i < 0 {
		out := c.state.clone()
		c.mu.Unlock()
		c.reportMismatch(Mismatch{Op: op, CustomerID: out.CustomerID, RosterSize: len(out.CustomerList)})
		return out
	}

	j := i + delta
	if j < 0 || j >= len(c.state.CustomerList) {
		out := c.state.clone()
		c.mu.Unlock()
		return out
	}

	ref := c.state.CustomerList[j]
	c.state.CustomerID = ref.CustomerID
	c.state.FirstName = ref.FirstName
	c.state.LastName = ref.LastName
	c.state.Revision++
	out := c.state.clone()
	c.mu.Unlock()

	c.publish(out)
	return out
}

// Clear drops the selection and the roster.
func (c *Context) Clear() State {
	c.mu.Lock()
	c.state = State{
		CustomerList: []CustomerRef{},
		Revision:     c.state.Revision + 1,
	}
	out := c.state.clone()
	c.mu.Unlock()

	c.publish(out)
	return out
}

func (c *Context) publish(s State) {
	c.subMu.Lock()
	fns := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(s.clone())
	}
}

func (c *Context) reportMismatch(m Mismatch) {
	c.subMu.Lock()
	fn := c.onMismatch
	c.subMu.Unlock()
	if fn != nil {
		fn(m)
	}
}

func (s State) clone() State {
	out := s
	out.CustomerList = slices.Clone(s.CustomerList)
	if out.CustomerList == nil {
		out.CustomerList = []CustomerRef{}
	}
	return out
}

// indexOf returns the position of the first entry with the given identifier.
func indexOf(list []CustomerRef, customerID string) int {
	return slices.IndexFunc(list, func(r CustomerRef) bool {
		return r.CustomerID == customerID
	})
}
