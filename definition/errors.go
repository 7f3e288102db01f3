package definition

import (
	"errors"
)

// Validation and binding errors.
var (
	// ErrNameRequired indicates that a definition name is required.
	ErrNameRequired = errors.New("definition name is required")
	// ErrInitialStateRequired indicates that an initial state is required.
	ErrInitialStateRequired = errors.New("initial state is required")
	// ErrStateRequired indicates that at least one state is required.
	ErrStateRequired = errors.New("at least one state is required")
	// ErrInitialStateNotFound indicates that the initial state is not declared.
	ErrInitialStateNotFound = errors.New("initial state is not declared")
	// ErrStateNameRequired indicates that a state name is required.
	ErrStateNameRequired = errors.New("state name is required")
	// ErrDuplicateStateName indicates that a duplicate state name was found.
	ErrDuplicateStateName = errors.New("duplicate state name")
	// ErrTransitionFromRequired indicates a transition without a source.
	ErrTransitionFromRequired = errors.New("transition needs a from state or any: true")
	// ErrAmbiguousSource indicates a transition with two sources.
	ErrAmbiguousSource = errors.New("transition cannot both name a from state and set any: true")
	// ErrTransitionFromNotFound indicates an undeclared transition source.
	ErrTransitionFromNotFound = errors.New("transition from state is not declared")
	// ErrTransitionToRequired indicates a transition without a destination.
	ErrTransitionToRequired = errors.New("transition needs a to state or back: true")
	// ErrAmbiguousDestination indicates a transition with two destinations.
	ErrAmbiguousDestination = errors.New("transition cannot both name a to state and set back: true")
	// ErrTransitionToNotFound indicates an undeclared transition destination.
	ErrTransitionToNotFound = errors.New("transition to state is not declared")
	// ErrEventWithCondition indicates a transition mixing the two dispatch modes.
	ErrEventWithCondition = errors.New("transition cannot bind both an event and when conditions")
	// ErrSelfLoopWithoutReentry indicates a self-loop that does not opt in to reentry.
	ErrSelfLoopWithoutReentry = errors.New("self-loop requires allowReentry: true")
	// ErrInvalidWeight indicates an unusable transition weight.
	ErrInvalidWeight = errors.New("transition weight must be a number")
	// ErrUnboundCondition indicates a when clause with no bound condition.
	ErrUnboundCondition = errors.New("no condition bound for name")
	// ErrUnboundAction indicates a hook clause with no bound action.
	ErrUnboundAction = errors.New("no action bound for name")
	// ErrMachineInitialized indicates an Apply target that already has a
	// current state.
	ErrMachineInitialized = errors.New("machine is already initialized")
)
