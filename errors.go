package hsm

import (
	"fmt"
)

// NotInitializedError indicates that Update, Fire or CurrentState was called
// before SetInitialState gave the machine a current state.
type NotInitializedError struct {
	Operation string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("%s called before SetInitialState; the machine has no current state", e.Operation)
}

// InvalidTransitionDefinitionError indicates a transition that cannot be
// built as declared: a missing destination, a guard mixed with an event
// binding, a self-loop without AllowReentry, or an unusable weight.
type InvalidTransitionDefinitionError struct {
	Source string
	Reason string
}

func (e *InvalidTransitionDefinitionError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("invalid transition from state '%s': %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("invalid transition: %s", e.Reason)
}

// ContextTypeMismatchError indicates a context provider whose value type does
// not match the destination state's declared context type, or conflicting
// context declarations for one state.
type ContextTypeMismatchError struct {
	State    string
	Declared string
	Provided string
}

func (e *ContextTypeMismatchError) Error() string {
	if e.Declared == "" {
		return fmt.Sprintf(
			"state '%s' declares no context type but a transition supplies context of type %s",
			e.State, e.Provided)
	}
	return fmt.Sprintf(
		"state '%s' declares context type %s but was supplied %s",
		e.State, e.Declared, e.Provided)
}

// DuplicateTransitionError indicates that a single-use transition builder was
// finalized more than once.
type DuplicateTransitionError struct {
	Source string
}

func (e *DuplicateTransitionError) Error() string {
	return fmt.Sprintf("transition from state '%s' was already built; builders are single use", e.Source)
}

// EventTypeConflictError indicates an event declaration that the machine's
// event type cannot represent. The typed core makes this impossible by
// construction; it surfaces when a definition document carries an event
// literal the machine's event codec rejects.
type EventTypeConflictError struct {
	Event     string
	EventType string
}

func (e *EventTypeConflictError) Error() string {
	return fmt.Sprintf("event '%s' cannot be represented by the machine's event type %s", e.Event, e.EventType)
}
