package ui

import "strconv"

// Component maps the current state to a UI description.
type Component func(scope *Scope) Node

// Scope is handed to a component during a render.
type Scope struct {
	host *Host
	path string
}

// Child returns a scope for a nested component; its state keys are prefixed by name.
func (that *Scope) Child(name string) *Scope {
	return &Scope{host: that.host, path: that.key(name)}
}

// Handle registers fn for the current render and returns its id.
// Ids follow registration order, so rendering the same snapshot yields the same ids.
func (that *Scope) Handle(fn func()) string {
	id := "h" + strconv.Itoa(len(that.host.handlers))
	that.host.handlers[id] = fn

	return id
}

func (that *Scope) key(name string) string {
	if that.path == "" {
		return name
	}
	return that.path + "/" + name
}

// Host runs a root component over a snapshot of state cells. It is not safe for concurrent use.
type Host struct {
	root     Component
	state    Snapshot
	revision int64

	handlers map[string]func()
	tree     Node
	dirty    bool
	errs     []error
}

func NewHost(root Component, state Snapshot, revision int64) *Host {
	if state == nil {
		state = Snapshot{}
	}

	return &Host{
		root:     root,
		state:    state.Clone(),
		revision: revision,
		handlers: map[string]func(){},
	}
}

// Render - runs the root component and replaces the handler table.
func (that *Host) Render() Node {
	that.handlers = map[string]func(){}
	that.errs = nil
	that.tree = that.root(&Scope{host: that})

	return that.tree
}

// Dispatch - invokes handler id of the render the client saw at revision.
// Stale revisions and unknown ids are ignored. Reports whether any state cell was replaced.
func (that *Host) Dispatch(revision int64, id string) bool {
	if revision != that.revision {
		return false
	}

	handler, ok := that.handlers[id]
	if !ok {
		return false
	}

	that.dirty = false
	handler()

	if !that.dirty {
		return false
	}

	that.dirty = false
	that.revision++
	that.Render()

	return true
}

func (that *Host) Tree() Node {
	return that.tree
}

func (that *Host) Revision() int64 {
	return that.revision
}

func (that *Host) Snapshot() Snapshot {
	return that.state.Clone()
}

// Errors returns the state cells that could not be decoded during the last render.
func (that *Host) Errors() []error {
	return that.errs
}
