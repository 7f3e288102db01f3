package hsm

// transitionTarget is the destination half of a transition. A target is
// either fixed at build time or deferred, in which case it is re-resolved on
// every resolution pass and never memoized.
type transitionTarget[TState, TEvent comparable] interface {
	// resolveTarget returns the destination node for the current pass.
	// ok is false when the target cannot be resolved yet.
	resolveTarget(m *Machine[TState, TEvent]) (node *StateNode[TState, TEvent], ok bool)
	// displayName is the name rendered for this target in exports.
	displayName() string
	// isDeferred reports whether resolution happens at fire time.
	isDeferred() bool
}

// fixedTarget points at a concrete state node captured at build time.
type fixedTarget[TState, TEvent comparable] struct {
	node *StateNode[TState, TEvent]
}

func (t fixedTarget[TState, TEvent]) resolveTarget(*Machine[TState, TEvent]) (*StateNode[TState, TEvent], bool) {
	return t.node, true
}

func (t fixedTarget[TState, TEvent]) displayName() string {
	return t.node.Name()
}

func (t fixedTarget[TState, TEvent]) isDeferred() bool {
	return false
}

// deferredTarget resolves its destination through a user function each time
// the owning transition is evaluated.
type deferredTarget[TState, TEvent comparable] struct {
	label string
	fn    func() (TState, bool)
}

func (t deferredTarget[TState, TEvent]) resolveTarget(m *Machine[TState, TEvent]) (*StateNode[TState, TEvent], bool) {
	key, ok := t.fn()
	if !ok {
		return nil, false
	}
	return m.At(key), true
}

func (t deferredTarget[TState, TEvent]) displayName() string {
	return t.label
}

func (t deferredTarget[TState, TEvent]) isDeferred() bool {
	return true
}

// Transition is one outgoing edge of a state. Transitions are built through
// the fluent builder and are immutable once built.
type Transition[TState, TEvent comparable] struct {
	source       *StateNode[TState, TEvent]
	target       transitionTarget[TState, TEvent]
	guard        Condition
	guardInfo    InvocationInfo
	hasEvent     bool
	event        TEvent
	weight       float64
	allowReentry bool
	name         string
	provider     *ContextProvider
}

// Source returns the state this transition leaves. For transitions declared
// on AnyState it returns the sentinel node.
func (t *Transition[TState, TEvent]) Source() *StateNode[TState, TEvent] {
	return t.source
}

// Destination returns the fixed destination node. ok is false for deferred
// destinations, which have no node until fire time.
func (t *Transition[TState, TEvent]) Destination() (*StateNode[TState, TEvent], bool) {
	if f, ok := t.target.(fixedTarget[TState, TEvent]); ok {
		return f.node, true
	}
	return nil, false
}

// DestinationName returns the display name of the destination: the node name
// for fixed destinations, the transition name or deferred label otherwise.
func (t *Transition[TState, TEvent]) DestinationName() string {
	if t.target.isDeferred() && t.name != "" {
		return t.name
	}
	return t.target.displayName()
}

// IsDeferred reports whether the destination is resolved at fire time.
func (t *Transition[TState, TEvent]) IsDeferred() bool {
	return t.target.isDeferred()
}

// Weight returns the transition's selection priority. Default is 1.0.
func (t *Transition[TState, TEvent]) Weight() float64 {
	return t.weight
}

// AllowsReentry reports whether the transition may select the current state
// as its destination.
func (t *Transition[TState, TEvent]) AllowsReentry() bool {
	return t.allowReentry
}

// Name returns the transition's display name, empty when unset.
func (t *Transition[TState, TEvent]) Name() string {
	return t.name
}

// HasEvent reports whether the transition is event-driven. Event-driven
// transitions are considered only by Fire, never by Update.
func (t *Transition[TState, TEvent]) HasEvent() bool {
	return t.hasEvent
}

// Event returns the bound event identifier. Meaningful only when HasEvent
// reports true.
func (t *Transition[TState, TEvent]) Event() TEvent {
	return t.event
}

// Guarded reports whether the transition carries a guard condition.
func (t *Transition[TState, TEvent]) Guarded() bool {
	return t.guard != nil
}

// GuardDescription returns a human-readable description of the guard, empty
// for unguarded transitions.
func (t *Transition[TState, TEvent]) GuardDescription() string {
	if t.guard == nil {
		return ""
	}
	return t.guardInfo.Description()
}

// guardPasses evaluates the guard. Unguarded transitions always pass. Panics
// raised by the guard propagate to the Update caller.
func (t *Transition[TState, TEvent]) guardPasses() bool {
	return t.guard == nil || t.guard()
}

// Change describes one completed transition, delivered to OnTransitioned
// observers after the destination's enter hook has run.
type Change[TState, TEvent comparable] struct {
	// From is the state that was exited.
	From TState

	// To is the state that was entered.
	To TState

	// Transition is the edge that fired.
	Transition *Transition[TState, TEvent]
}

// IsReentry reports whether the change re-entered the state it left.
func (c Change[TState, TEvent]) IsReentry() bool {
	return c.From == c.To
}
