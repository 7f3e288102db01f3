package definition

import (
	"fmt"

	hsm "github.com/FukaMiya/HybridStateMachine"
)

// Bindings supplies the Go functions a document refers to by name.
type Bindings struct {
	// Conditions are the guard conditions available to when clauses.
	Conditions map[string]hsm.Condition

	// Actions are the hook functions available to onEnter, onExit and
	// onUpdate clauses.
	Actions map[string]func()
}

type resolvedHooks struct {
	enter  func()
	exit   func()
	update func()
}

type resolvedDispatch[TEvent comparable] struct {
	event      TEvent
	hasEvent   bool
	conditions []hsm.Condition
	names      []string
}

// Apply configures a machine from a document. State hooks and guard
// conditions are resolved through the bindings, event literals through
// parseEvent. Nothing is written to the machine until every name has
// resolved, so a failed Apply leaves the machine untouched. On success the
// machine is initialized in the document's initial state, with that state's
// enter hook already run. States register in document order.
func Apply[TEvent comparable](
	doc *Document,
	m *hsm.Machine[string, TEvent],
	parseEvent func(string) (TEvent, error),
	bindings Bindings,
) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if m.Initialized() {
		return ErrMachineInitialized
	}

	// Resolve every binding before touching the machine.
	hooks := make([]resolvedHooks, len(doc.States))

	for i, state := range doc.States {
		var err error

		if hooks[i].enter, err = resolveAction(bindings, state.OnEnter); err != nil {
			return fmt.Errorf("state %s: %w", state.Name, err)
		}
		if hooks[i].exit, err = resolveAction(bindings, state.OnExit); err != nil {
			return fmt.Errorf("state %s: %w", state.Name, err)
		}
		if hooks[i].update, err = resolveAction(bindings, state.OnUpdate); err != nil {
			return fmt.Errorf("state %s: %w", state.Name, err)
		}
	}

	dispatches := make([]resolvedDispatch[TEvent], len(doc.Transitions))

	for i, transition := range doc.Transitions {
		if transition.Event != "" {
			event, err := parseEvent(transition.Event)
			if err != nil {
				conflict := &hsm.EventTypeConflictError{
					Event:     transition.Event,
					EventType: fmt.Sprintf("%T", event),
				}

				return fmt.Errorf("transition %d: %w: %v", i, conflict, err)
			}

			dispatches[i].event = event
			dispatches[i].hasEvent = true
		}

		for _, condName := range transition.When {
			cond, ok := bindings.Conditions[condName]
			if !ok {
				return fmt.Errorf("transition %d: %w: %s", i, ErrUnboundCondition, condName)
			}

			dispatches[i].conditions = append(dispatches[i].conditions, cond)
			dispatches[i].names = append(dispatches[i].names, condName)
		}
	}

	// Wire the machine.
	for i, state := range doc.States {
		node := m.At(state.Name)

		if hooks[i].enter != nil {
			node.OnEnter(hooks[i].enter)
		}
		if hooks[i].exit != nil {
			node.OnExit(hooks[i].exit)
		}
		if hooks[i].update != nil {
			node.OnUpdate(hooks[i].update)
		}
	}

	for i, transition := range doc.Transitions {
		var source *hsm.StateNode[string, TEvent]
		if transition.Any {
			source = m.Any()
		} else {
			source = m.At(transition.From)
		}

		var builder *hsm.TransitionBuilder[string, TEvent]
		if transition.Back {
			builder = source.Back()
		} else {
			builder = source.To(transition.To)
		}

		dispatch := dispatches[i]
		if dispatch.hasEvent {
			builder.On(dispatch.event)
		}

		for j, cond := range dispatch.conditions {
			if j == 0 {
				builder.When(cond, dispatch.names[j])
			} else {
				builder.And(cond, dispatch.names[j])
			}
		}

		if transition.Weight != nil {
			builder.SetWeight(*transition.Weight)
		}
		if transition.AllowReentry {
			builder.SetAllowReentry(true)
		}
		if transition.Name != "" {
			builder.SetName(transition.Name)
		}

		builder.Build()
	}

	m.SetInitialState(doc.Initial)

	return nil
}

func resolveAction(bindings Bindings, name string) (func(), error) {
	if name == "" {
		return nil, nil
	}

	action, ok := bindings.Actions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnboundAction, name)
	}

	return action, nil
}

// ApplyStrings applies a document to a string-evented machine, using the
// document's event literals as-is.
func ApplyStrings(doc *Document, m *hsm.Machine[string, string], bindings Bindings) error {
	return Apply(doc, m, func(event string) (string, error) { return event, nil }, bindings)
}
