package hsm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Machine is a synchronous, single-threaded state machine. States are
// created lazily through At and configured through the fluent transition
// builder. The machine is driven in pull mode by calling Update once per
// tick, in push mode by calling Fire with an event, or by mixing both.
//
// A resolution pass considers AnyState's transitions before the current
// state's. Within a set the strictly heaviest eligible transition wins;
// equal weights resolve to the transition registered first. This tie-break
// is a hard contract of the API.
//
// Machines are not safe for concurrent use.
type Machine[TState, TEvent comparable] struct {
	id     string
	logger *zap.Logger

	// states maps keys to their singleton nodes; order preserves
	// first-reference order for deterministic walks.
	states map[TState]*StateNode[TState, TEvent]
	order  []*StateNode[TState, TEvent]

	// anyNode holds globally evaluated transitions. It is never current.
	anyNode *StateNode[TState, TEvent]

	current     *StateNode[TState, TEvent]
	previous    *StateNode[TState, TEvent]
	hasPrevious bool
	initialized bool
	initial     TState

	// onTransitionedEvent is notified after every completed transition.
	onTransitionedEvent *OnTransitionedEvent[TState, TEvent]
}

// OnTransitionedEvent holds state change observers. The machine is single
// threaded, so registration and invocation need no locking.
type OnTransitionedEvent[TState, TEvent comparable] struct {
	handlers []func(Change[TState, TEvent])
}

// NewOnTransitionedEvent creates a new OnTransitionedEvent.
func NewOnTransitionedEvent[TState, TEvent comparable]() *OnTransitionedEvent[TState, TEvent] {
	return &OnTransitionedEvent[TState, TEvent]{}
}

// Register adds a handler to the event.
func (e *OnTransitionedEvent[TState, TEvent]) Register(handler func(Change[TState, TEvent])) {
	e.handlers = append(e.handlers, handler)
}

// UnregisterAll removes all handlers from the event.
func (e *OnTransitionedEvent[TState, TEvent]) UnregisterAll() {
	e.handlers = nil
}

// Invoke calls all registered handlers in registration order.
func (e *OnTransitionedEvent[TState, TEvent]) Invoke(change Change[TState, TEvent]) {
	for _, handler := range e.handlers {
		handler(change)
	}
}

// New creates an empty machine with a generated id and a no-op logger.
func New[TState, TEvent comparable]() *Machine[TState, TEvent] {
	m := &Machine[TState, TEvent]{
		id:                  uuid.NewString(),
		logger:              zap.NewNop(),
		states:              make(map[TState]*StateNode[TState, TEvent]),
		onTransitionedEvent: NewOnTransitionedEvent[TState, TEvent](),
	}
	m.anyNode = newStateNode(*new(TState), m, true)
	return m
}

// ID returns the machine's identifier, used in logs and metrics labels.
func (m *Machine[TState, TEvent]) ID() string {
	return m.id
}

// SetLogger installs a structured logger and returns the machine. The
// default logger discards everything; the machine logs state registration
// and completed transitions at debug level.
func (m *Machine[TState, TEvent]) SetLogger(logger *zap.Logger) *Machine[TState, TEvent] {
	if logger == nil {
		logger = zap.NewNop()
	}
	m.logger = logger
	return m
}

// At returns the singleton node for the given state key, creating it on
// first reference. The returned pointer is stable for the machine's
// lifetime.
func (m *Machine[TState, TEvent]) At(state TState) *StateNode[TState, TEvent] {
	node, exists := m.states[state]
	if !exists {
		node = newStateNode(state, m, false)
		m.states[state] = node
		m.order = append(m.order, node)
		m.logger.Debug("state registered",
			zap.String("machine", m.id),
			zap.String("state", node.Name()))
	}
	return node
}

// Any returns the machine's AnyState sentinel. Transitions declared on it
// are evaluated before the current state's transitions on every resolution
// pass. AnyState is never entered and never becomes the current state.
func (m *Machine[TState, TEvent]) Any() *StateNode[TState, TEvent] {
	return m.anyNode
}

// SetInitialState makes the given state current and runs its enter hook. No
// exit hook runs and no observers are notified: entering the initial state
// is not a transition. Calling SetInitialState twice panics.
func (m *Machine[TState, TEvent]) SetInitialState(state TState) {
	if m.initialized {
		panic(fmt.Sprintf("machine is already initialized in state '%v'", m.current.key))
	}
	node := m.At(state)
	m.current = node
	m.initial = state
	m.initialized = true
	m.logger.Debug("machine initialized",
		zap.String("machine", m.id),
		zap.String("state", node.Name()))
	node.runEnter()
}

// Initialized reports whether SetInitialState has been called.
func (m *Machine[TState, TEvent]) Initialized() bool {
	return m.initialized
}

// CurrentState returns the current state's key. It panics with
// *NotInitializedError before SetInitialState.
func (m *Machine[TState, TEvent]) CurrentState() TState {
	m.ensureInitialized("CurrentState")
	return m.current.key
}

// CurrentNode returns the current state's node. It panics with
// *NotInitializedError before SetInitialState.
func (m *Machine[TState, TEvent]) CurrentNode() *StateNode[TState, TEvent] {
	m.ensureInitialized("CurrentNode")
	return m.current
}

// PreviousState returns the state that was current before the last
// completed transition. ok is false until the first transition completes.
func (m *Machine[TState, TEvent]) PreviousState() (TState, bool) {
	if !m.hasPrevious {
		var zero TState
		return zero, false
	}
	return m.previous.key, true
}

// IsInState reports whether the machine is initialized and its current
// state equals the given key.
func (m *Machine[TState, TEvent]) IsInState(state TState) bool {
	return m.initialized && m.current.key == state
}

// Update runs one pull resolution pass and reports whether a transition
// fired. Guards are polled left to right within each transition and
// transitions are scanned in registration order; AnyState's set is
// consulted first and wins outright when any of its transitions is
// eligible. When no transition fires, the current state's tick hook runs.
//
// Update panics with *NotInitializedError before SetInitialState. Panics
// raised by guards, resolvers or hooks propagate unmodified.
func (m *Machine[TState, TEvent]) Update() bool {
	m.ensureInitialized("Update")
	t, dest := m.anyNode.selectPull(m.current)
	if t == nil {
		t, dest = m.current.selectPull(m.current)
	}
	if t == nil {
		m.current.runUpdate()
		return false
	}
	m.executeTransition(t, dest)
	return true
}

// Fire runs one push resolution pass for the given event and reports
// whether a transition fired. Only transitions bound to exactly this event
// are considered; AnyState's set is consulted first. An event no transition
// handles is a no-op returning false, and the tick hook does not run.
//
// Fire panics with *NotInitializedError before SetInitialState.
func (m *Machine[TState, TEvent]) Fire(event TEvent) bool {
	m.ensureInitialized("Fire")
	t, dest := m.anyNode.selectPush(event, m.current)
	if t == nil {
		t, dest = m.current.selectPush(event, m.current)
	}
	if t == nil {
		m.logger.Debug("event unhandled",
			zap.String("machine", m.id),
			zap.String("state", m.current.Name()),
			zap.String("event", fmt.Sprint(event)))
		return false
	}
	m.executeTransition(t, dest)
	return true
}

// executeTransition runs the fixed transition sequence: exit the source,
// shift previous and current, install or clear the destination's context,
// enter the destination, notify observers. The steps are not individually
// cancellable.
func (m *Machine[TState, TEvent]) executeTransition(t *Transition[TState, TEvent], dest *StateNode[TState, TEvent]) {
	if t.provider != nil && t.IsDeferred() {
		// Fixed destinations were validated at build time.
		checkContextType(dest, t.provider)
	}

	src := m.current
	src.runExit()

	m.previous = src
	m.hasPrevious = true
	m.current = dest

	if t.provider != nil {
		dest.installContext(t.provider.evaluate())
	} else {
		dest.clearContext()
	}

	dest.runEnter()

	fields := []zap.Field{
		zap.String("machine", m.id),
		zap.String("from", src.Name()),
		zap.String("to", dest.Name()),
		zap.Float64("weight", t.weight),
	}
	if t.name != "" {
		fields = append(fields, zap.String("name", t.name))
	}
	if t.hasEvent {
		fields = append(fields, zap.String("event", fmt.Sprint(t.event)))
	}
	m.logger.Debug("state changed", fields...)

	m.onTransitionedEvent.Invoke(Change[TState, TEvent]{
		From:       src.key,
		To:         dest.key,
		Transition: t,
	})
}

// OnTransitioned registers a callback invoked after every completed
// transition, once the destination's enter hook has run.
func (m *Machine[TState, TEvent]) OnTransitioned(handler func(Change[TState, TEvent])) {
	m.onTransitionedEvent.Register(handler)
}

// UnregisterAllTransitionedCallbacks removes all OnTransitioned callbacks.
func (m *Machine[TState, TEvent]) UnregisterAllTransitionedCallbacks() {
	m.onTransitionedEvent.UnregisterAll()
}

func (m *Machine[TState, TEvent]) ensureInitialized(operation string) {
	if !m.initialized {
		panic(&NotInitializedError{Operation: operation})
	}
}

// GetInfo returns a snapshot of the machine's configuration for
// introspection and graph rendering.
func (m *Machine[TState, TEvent]) GetInfo() MachineInfo {
	info := MachineInfo{
		ID:          m.id,
		StateType:   fmt.Sprintf("%T", *new(TState)),
		EventType:   fmt.Sprintf("%T", *new(TEvent)),
		Initialized: m.initialized,
	}
	if m.initialized {
		info.InitialState = fmt.Sprint(m.initial)
		info.CurrentState = m.current.Name()
	}
	if len(m.anyNode.transitions) > 0 {
		ai := m.anyNode.info()
		info.AnyState = &ai
	}
	for _, n := range m.order {
		info.States = append(info.States, n.info())
	}
	return info
}

// ToGraphString renders the machine as a Mermaid state diagram: the
// stateDiagram-v2 header followed by one four-space-indented line per
// transition. AnyState's transitions come first, then each state in
// first-reference order with its transitions in build order. Deferred
// destinations render as the transition's display name, falling back to the
// deferred label. The export never mutates the machine.
func (m *Machine[TState, TEvent]) ToGraphString() string {
	var b strings.Builder
	b.WriteString("stateDiagram-v2")
	for _, t := range m.anyNode.transitions {
		fmt.Fprintf(&b, "\n    %s --> %s", m.anyNode.Name(), t.DestinationName())
	}
	for _, n := range m.order {
		for _, t := range n.transitions {
			fmt.Fprintf(&b, "\n    %s --> %s", n.Name(), t.DestinationName())
		}
	}
	return b.String()
}

// String returns a string representation of the current state.
func (m *Machine[TState, TEvent]) String() string {
	if !m.initialized {
		return "Machine { uninitialized }"
	}
	return fmt.Sprintf("Machine { State = %v }", m.current.key)
}
