package hsm

import (
	"reflect"
	"runtime"
	"strings"
)

// InvocationInfo describes a user-supplied function, either a hook or a
// guard condition.
type InvocationInfo struct {
	// MethodName is the name of the function as reported by the runtime.
	MethodName string
	// description is the user-specified description (can be empty).
	description string
}

// DefaultFunctionDescription is the text returned for compiler-generated
// functions where the caller has not specified a description.
var DefaultFunctionDescription = "Function"

// NullString is the string representation of a null value.
const NullString = "<null>"

// NewInvocationInfo creates a new InvocationInfo.
func NewInvocationInfo(methodName, description string) InvocationInfo {
	return InvocationInfo{
		MethodName:  methodName,
		description: description,
	}
}

// CreateInvocationInfo creates InvocationInfo from a function and description.
func CreateInvocationInfo(fn any, description string) InvocationInfo {
	return NewInvocationInfo(getFunctionName(fn), description)
}

// Description returns the description of the invoked function.
// Returns:
// 1. The user-specified description, if any
// 2. Otherwise, if the function name is compiler-generated, returns DefaultFunctionDescription
// 3. Otherwise, the function name
func (i InvocationInfo) Description() string {
	if i.description != "" {
		return i.description
	}
	if i.MethodName == "" {
		return NullString
	}
	// Check for anonymous/compiler-generated function names
	if strings.Contains(i.MethodName, "func") || strings.Contains(i.MethodName, ".") {
		return DefaultFunctionDescription
	}
	return i.MethodName
}

// getFunctionName returns the name of a function.
func getFunctionName(fn any) string {
	if fn == nil {
		return ""
	}
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	// Extract just the function name from the full path
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// MachineInfo exposes the states and transitions of a machine as plain,
// pre-rendered data. It is the input to the renderers in the graph package
// and carries no type parameters.
type MachineInfo struct {
	// ID is the machine's identifier.
	ID string

	// StateType is a string representation of the state key type.
	StateType string

	// EventType is a string representation of the event type.
	EventType string

	// Initialized reports whether SetInitialState has been called.
	Initialized bool

	// InitialState is the name of the state passed to SetInitialState,
	// empty while uninitialized.
	InitialState string

	// CurrentState is the name of the current state, empty while
	// uninitialized.
	CurrentState string

	// AnyState describes the AnyState sentinel and its transitions. Nil
	// when no AnyState transitions are registered.
	AnyState *StateInfo

	// States contains all registered states in first-reference order.
	States []StateInfo
}

// StateInfo describes one registered state.
type StateInfo struct {
	// Name is the state's display name.
	Name string

	// IsAny reports whether this entry describes the AnyState sentinel.
	IsAny bool

	// ContextType is the declared context type, empty when the state
	// declares none.
	ContextType string

	// EnterHook, ExitHook and UpdateHook are hook descriptions, empty when
	// the hook is unset.
	EnterHook  string
	ExitHook   string
	UpdateHook string

	// Transitions are the state's outgoing transitions in build order.
	Transitions []TransitionInfo
}

// TransitionInfo describes one built transition.
type TransitionInfo struct {
	// Source is the source state's display name.
	Source string

	// Destination is the destination's display name. For deferred
	// destinations this is the transition's display name when set,
	// otherwise the deferred label.
	Destination string

	// Deferred reports whether the destination is resolved at fire time.
	Deferred bool

	// Name is the transition's display name (can be empty).
	Name string

	// HasEvent reports whether the transition is event-driven.
	HasEvent bool

	// Event is the rendered event identifier, empty for guard-driven
	// transitions.
	Event string

	// Guard is the guard's description, empty for unguarded transitions.
	Guard string

	// Weight is the transition's selection priority.
	Weight float64

	// AllowReentry reports whether the transition may re-enter its source.
	AllowReentry bool
}
