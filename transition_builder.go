package hsm

import (
	"fmt"
	"math"
)

// TransitionBuilder accumulates one transition declaration. Builders are
// single use: exactly one terminal call (Build or Always) commits the
// transition onto its source state.
type TransitionBuilder[TState, TEvent comparable] struct {
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
	built        bool
}

// firstOrEmpty returns the first element of the slice or empty string if empty.
func firstOrEmpty(s []string) string {
	if len(s) > 0 {
		return s[0]
	}
	return ""
}

// To starts a transition from this state to the state with the given key,
// creating the destination node if it does not exist yet.
func (n *StateNode[TState, TEvent]) To(dst TState) *TransitionBuilder[TState, TEvent] {
	return n.newBuilder(fixedTarget[TState, TEvent]{node: n.machine.At(dst)})
}

// ToNode starts a transition from this state to the given node instance.
func (n *StateNode[TState, TEvent]) ToNode(dst *StateNode[TState, TEvent]) *TransitionBuilder[TState, TEvent] {
	if dst == nil {
		panic(&InvalidTransitionDefinitionError{Source: n.Name(), Reason: "destination node is nil"})
	}
	if dst.isAny {
		panic(&InvalidTransitionDefinitionError{Source: n.Name(), Reason: "AnyState cannot be a destination; it is never entered"})
	}
	if dst.machine != n.machine {
		panic(&InvalidTransitionDefinitionError{Source: n.Name(), Reason: "destination node belongs to a different machine"})
	}
	return n.newBuilder(fixedTarget[TState, TEvent]{node: dst})
}

// Back starts a transition whose destination is the machine's previous state,
// resolved at fire time. While the machine has no previous state the
// transition is ineligible.
func (n *StateNode[TState, TEvent]) Back() *TransitionBuilder[TState, TEvent] {
	m := n.machine
	return n.newBuilder(deferredTarget[TState, TEvent]{
		label: "PreviousState",
		fn:    func() (TState, bool) { return m.PreviousState() },
	})
}

// ToDeferred starts a transition whose destination is computed by resolve on
// every resolution pass. The label is used for the destination in exports
// when the transition has no display name. Resolutions are never memoized;
// resolve returning ok=false makes the transition ineligible for that pass.
func (n *StateNode[TState, TEvent]) ToDeferred(label string, resolve func() (TState, bool)) *TransitionBuilder[TState, TEvent] {
	if resolve == nil {
		panic(&InvalidTransitionDefinitionError{Source: n.Name(), Reason: "deferred destination requires a resolver function"})
	}
	if label == "" {
		label = "Deferred"
	}
	return n.newBuilder(deferredTarget[TState, TEvent]{label: label, fn: resolve})
}

func (n *StateNode[TState, TEvent]) newBuilder(target transitionTarget[TState, TEvent]) *TransitionBuilder[TState, TEvent] {
	return &TransitionBuilder[TState, TEvent]{
		source: n,
		target: target,
		weight: 1.0,
	}
}

// When sets the transition's guard condition. A transition may have exactly
// one When; compose further conditions with And and Or.
func (b *TransitionBuilder[TState, TEvent]) When(c Condition, description ...string) *TransitionBuilder[TState, TEvent] {
	b.rejectGuardAfterEvent("When")
	if c == nil {
		panic(&InvalidTransitionDefinitionError{Source: b.source.Name(), Reason: "When requires a non-nil condition"})
	}
	if b.guard != nil {
		panic(&InvalidTransitionDefinitionError{Source: b.source.Name(), Reason: "When was already called; compose further conditions with And or Or"})
	}
	b.guard = c
	b.guardInfo = CreateInvocationInfo(c, firstOrEmpty(description))
	return b
}

// And narrows the guard: the transition is eligible only when the existing
// guard and c both hold. Composition is left associative, so
// When(x).And(y).Or(z) reads ((x && y) || z).
func (b *TransitionBuilder[TState, TEvent]) And(c Condition, description ...string) *TransitionBuilder[TState, TEvent] {
	b.composeGuard("And", c, firstOrEmpty(description), "&&", All)
	return b
}

// Or widens the guard: the transition is eligible when the existing guard or
// c holds. Composition is left associative.
func (b *TransitionBuilder[TState, TEvent]) Or(c Condition, description ...string) *TransitionBuilder[TState, TEvent] {
	b.composeGuard("Or", c, firstOrEmpty(description), "||", Any)
	return b
}

func (b *TransitionBuilder[TState, TEvent]) composeGuard(method string, c Condition, description, op string, combine func(...Condition) Condition) {
	b.rejectGuardAfterEvent(method)
	if c == nil {
		panic(&InvalidTransitionDefinitionError{Source: b.source.Name(), Reason: method + " requires a non-nil condition"})
	}
	if b.guard == nil {
		panic(&InvalidTransitionDefinitionError{Source: b.source.Name(), Reason: method + " requires a preceding When"})
	}
	added := CreateInvocationInfo(c, description)
	b.guard = combine(b.guard, c)
	b.guardInfo = NewInvocationInfo("", fmt.Sprintf("%s %s %s", b.guardInfo.Description(), op, added.Description()))
}

// On binds the transition to an event: it becomes eligible only during Fire
// calls with exactly this event. A transition is either guard driven or
// event driven, never both.
func (b *TransitionBuilder[TState, TEvent]) On(event TEvent) *TransitionBuilder[TState, TEvent] {
	if b.guard != nil {
		panic(&InvalidTransitionDefinitionError{Source: b.source.Name(), Reason: "a transition is either guard driven or event driven; On cannot follow When"})
	}
	if b.hasEvent {
		panic(&InvalidTransitionDefinitionError{Source: b.source.Name(), Reason: "On was already called"})
	}
	b.hasEvent = true
	b.event = event
	return b
}

func (b *TransitionBuilder[TState, TEvent]) rejectGuardAfterEvent(method string) {
	if b.hasEvent {
		panic(&InvalidTransitionDefinitionError{
			Source: b.source.Name(),
			Reason: fmt.Sprintf("a transition is either guard driven or event driven; %s cannot follow On", method),
		})
	}
}

// WithContext attaches a provider whose value is installed on the destination
// when the transition fires. For fixed destinations the provider's type is
// validated here; the destination must already declare its context type. For
// deferred destinations validation happens at fire time against the resolved
// destination.
func (b *TransitionBuilder[TState, TEvent]) WithContext(p ContextProvider) *TransitionBuilder[TState, TEvent] {
	if p.produce == nil {
		panic(&InvalidTransitionDefinitionError{Source: b.source.Name(), Reason: "WithContext requires a provider constructed with Supply"})
	}
	if f, ok := b.target.(fixedTarget[TState, TEvent]); ok {
		checkContextType(f.node, &p)
	}
	b.provider = &p
	return b
}

// SetAllowReentry declares whether the transition may select the current
// state as its destination. Default is false.
func (b *TransitionBuilder[TState, TEvent]) SetAllowReentry(allow bool) *TransitionBuilder[TState, TEvent] {
	b.allowReentry = allow
	return b
}

// SetWeight sets the transition's selection priority. Default is 1.0; the
// strictly heaviest eligible transition wins a resolution pass.
func (b *TransitionBuilder[TState, TEvent]) SetWeight(w float64) *TransitionBuilder[TState, TEvent] {
	if math.IsNaN(w) {
		panic(&InvalidTransitionDefinitionError{Source: b.source.Name(), Reason: "weight cannot be NaN"})
	}
	b.weight = w
	return b
}

// SetName sets the transition's display name, used in exports and logs.
func (b *TransitionBuilder[TState, TEvent]) SetName(name string) *TransitionBuilder[TState, TEvent] {
	b.name = name
	return b
}

// Build commits the transition onto its source state and returns it. The
// builder must not be reused afterwards.
func (b *TransitionBuilder[TState, TEvent]) Build() *Transition[TState, TEvent] {
	if b.built {
		panic(&DuplicateTransitionError{Source: b.source.Name()})
	}
	if f, ok := b.target.(fixedTarget[TState, TEvent]); ok {
		if !b.source.isAny && f.node == b.source && !b.allowReentry {
			panic(&InvalidTransitionDefinitionError{
				Source: b.source.Name(),
				Reason: "destination equals source; call SetAllowReentry(true) to declare a self transition",
			})
		}
	}
	t := &Transition[TState, TEvent]{
		source:       b.source,
		target:       b.target,
		guard:        b.guard,
		guardInfo:    b.guardInfo,
		hasEvent:     b.hasEvent,
		event:        b.event,
		weight:       b.weight,
		allowReentry: b.allowReentry,
		name:         b.name,
		provider:     b.provider,
	}
	b.source.addTransition(t)
	b.built = true
	return t
}

// Always commits the transition as unconditional: eligible on every Update
// pass, subject only to the reentry rule. Calling it with a guard set is a
// contradiction and panics; event-driven transitions may end with Always
// since they carry no guard.
func (b *TransitionBuilder[TState, TEvent]) Always() *Transition[TState, TEvent] {
	if b.guard != nil {
		panic(&InvalidTransitionDefinitionError{Source: b.source.Name(), Reason: "Always commits an unconditional transition but a guard is set; end with Build instead"})
	}
	return b.Build()
}
