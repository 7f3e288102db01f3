package hsm

import (
	"fmt"
	"reflect"
)

// StateNode models one state of a machine. Nodes are created lazily by
// Machine.At and are singletons: every call with the same key returns the
// same node for the machine's lifetime.
type StateNode[TState, TEvent comparable] struct {
	key     TState
	machine *Machine[TState, TEvent]
	isAny   bool

	// transitions in build order. Registration order is the documented
	// tie-break between equal-weight candidates.
	transitions []*Transition[TState, TEvent]

	enterHook  func()
	exitHook   func()
	updateHook func()
	enterInfo  InvocationInfo
	exitInfo   InvocationInfo
	updateInfo InvocationInfo

	// contextType is the declared context type, nil when the state
	// declares none.
	contextType reflect.Type
	ctxValue    any
	hasContext  bool
}

func newStateNode[TState, TEvent comparable](key TState, machine *Machine[TState, TEvent], isAny bool) *StateNode[TState, TEvent] {
	return &StateNode[TState, TEvent]{
		key:     key,
		machine: machine,
		isAny:   isAny,
	}
}

// State returns the registry key this node models. For the AnyState sentinel
// the key is the zero value and carries no meaning.
func (n *StateNode[TState, TEvent]) State() TState {
	return n.key
}

// Name returns the node's display name.
func (n *StateNode[TState, TEvent]) Name() string {
	if n.isAny {
		return "AnyState"
	}
	return fmt.Sprint(n.key)
}

// IsAny reports whether this node is the AnyState sentinel.
func (n *StateNode[TState, TEvent]) IsAny() bool {
	return n.isAny
}

// Machine returns the machine this node belongs to.
func (n *StateNode[TState, TEvent]) Machine() *Machine[TState, TEvent] {
	return n.machine
}

// OnEnter sets the hook that runs after this state becomes current,
// replacing any previous enter hook. Returns the node for chaining.
func (n *StateNode[TState, TEvent]) OnEnter(fn func()) *StateNode[TState, TEvent] {
	n.rejectAnyHook("enter")
	n.enterHook = fn
	n.enterInfo = CreateInvocationInfo(fn, "")
	return n
}

// OnExit sets the hook that runs before this state stops being current,
// replacing any previous exit hook. Returns the node for chaining.
func (n *StateNode[TState, TEvent]) OnExit(fn func()) *StateNode[TState, TEvent] {
	n.rejectAnyHook("exit")
	n.exitHook = fn
	n.exitInfo = CreateInvocationInfo(fn, "")
	return n
}

// OnUpdate sets the tick hook that runs when an Update pass selects no
// transition while this state is current, replacing any previous tick hook.
// Returns the node for chaining.
func (n *StateNode[TState, TEvent]) OnUpdate(fn func()) *StateNode[TState, TEvent] {
	n.rejectAnyHook("update")
	n.updateHook = fn
	n.updateInfo = CreateInvocationInfo(fn, "")
	return n
}

func (n *StateNode[TState, TEvent]) rejectAnyHook(kind string) {
	if n.isAny {
		panic(fmt.Sprintf("cannot set an %s hook on AnyState: it is never the current state", kind))
	}
}

// Context returns the state's current context value. ok is false when no
// context is installed.
func (n *StateNode[TState, TEvent]) Context() (any, bool) {
	return n.ctxValue, n.hasContext
}

// Transitions returns the node's outgoing transitions in build order. The
// returned slice is a copy.
func (n *StateNode[TState, TEvent]) Transitions() []*Transition[TState, TEvent] {
	out := make([]*Transition[TState, TEvent], len(n.transitions))
	copy(out, n.transitions)
	return out
}

// String returns the node's display name.
func (n *StateNode[TState, TEvent]) String() string {
	return n.Name()
}

func (n *StateNode[TState, TEvent]) addTransition(t *Transition[TState, TEvent]) {
	n.transitions = append(n.transitions, t)
}

func (n *StateNode[TState, TEvent]) installContext(v any) {
	n.ctxValue = v
	n.hasContext = true
}

func (n *StateNode[TState, TEvent]) clearContext() {
	n.ctxValue = nil
	n.hasContext = false
}

func (n *StateNode[TState, TEvent]) runEnter() {
	if n.enterHook != nil {
		n.enterHook()
	}
}

func (n *StateNode[TState, TEvent]) runExit() {
	if n.exitHook != nil {
		n.exitHook()
	}
}

func (n *StateNode[TState, TEvent]) runUpdate() {
	if n.updateHook != nil {
		n.updateHook()
	}
}

// selectPull returns the winning pull-mode candidate among this node's
// transitions, judged against the given current state. Event-driven
// transitions are skipped. The scan keeps the strictly heaviest eligible
// transition, so equal weights resolve to the first one registered.
// Transitions that cannot outweigh the best so far are skipped without
// evaluating their resolver or guard.
func (n *StateNode[TState, TEvent]) selectPull(current *StateNode[TState, TEvent]) (*Transition[TState, TEvent], *StateNode[TState, TEvent]) {
	var bestT *Transition[TState, TEvent]
	var bestD *StateNode[TState, TEvent]
	for _, t := range n.transitions {
		if t.hasEvent {
			continue
		}
		if bestT != nil && t.weight <= bestT.weight {
			continue
		}
		dest, ok := t.target.resolveTarget(n.machine)
		if !ok {
			continue
		}
		if !t.allowReentry && dest == current {
			continue
		}
		if !t.guardPasses() {
			continue
		}
		bestT, bestD = t, dest
	}
	return bestT, bestD
}

// selectPush returns the winning candidate for the given event among this
// node's transitions, judged against the given current state. Only
// transitions bound to exactly this event are considered.
func (n *StateNode[TState, TEvent]) selectPush(event TEvent, current *StateNode[TState, TEvent]) (*Transition[TState, TEvent], *StateNode[TState, TEvent]) {
	var bestT *Transition[TState, TEvent]
	var bestD *StateNode[TState, TEvent]
	for _, t := range n.transitions {
		if !t.hasEvent || t.event != event {
			continue
		}
		if bestT != nil && t.weight <= bestT.weight {
			continue
		}
		dest, ok := t.target.resolveTarget(n.machine)
		if !ok {
			continue
		}
		if !t.allowReentry && dest == current {
			continue
		}
		bestT, bestD = t, dest
	}
	return bestT, bestD
}

func (n *StateNode[TState, TEvent]) info() StateInfo {
	si := StateInfo{
		Name:  n.Name(),
		IsAny: n.isAny,
	}
	if n.contextType != nil {
		si.ContextType = n.contextType.String()
	}
	if n.enterHook != nil {
		si.EnterHook = n.enterInfo.Description()
	}
	if n.exitHook != nil {
		si.ExitHook = n.exitInfo.Description()
	}
	if n.updateHook != nil {
		si.UpdateHook = n.updateInfo.Description()
	}
	for _, t := range n.transitions {
		ti := TransitionInfo{
			Source:       n.Name(),
			Destination:  t.DestinationName(),
			Deferred:     t.IsDeferred(),
			Name:         t.name,
			HasEvent:     t.hasEvent,
			Guard:        t.GuardDescription(),
			Weight:       t.weight,
			AllowReentry: t.allowReentry,
		}
		if t.hasEvent {
			ti.Event = fmt.Sprint(t.event)
		}
		si.Transitions = append(si.Transitions, ti)
	}
	return si
}
