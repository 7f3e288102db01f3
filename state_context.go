package hsm

import (
	"fmt"
	"reflect"
)

// ContextProvider produces a context value for a destination state. The
// wrapped function is re-invoked on every installation, so the destination
// always observes a value computed at entry time.
type ContextProvider struct {
	contextType reflect.Type
	produce     func() any
}

// Supply wraps a typed provider function into a ContextProvider carrying the
// provider's value type for validation against the destination state.
func Supply[TContext any](f func() TContext) ContextProvider {
	return ContextProvider{
		contextType: typeOf[TContext](),
		produce:     func() any { return f() },
	}
}

// ContextType returns the type of the values this provider produces.
func (p ContextProvider) ContextType() reflect.Type {
	return p.contextType
}

func (p ContextProvider) evaluate() any {
	return p.produce()
}

// DeclareContext declares TContext as the context type of state n and returns
// n for chaining. Redeclaring the same type is a no-op; declaring a different
// type panics with *ContextTypeMismatchError. Transitions may only supply
// context to states that declare a type for it.
func DeclareContext[TContext any, TState, TEvent comparable](n *StateNode[TState, TEvent]) *StateNode[TState, TEvent] {
	if n.IsAny() {
		panic(fmt.Sprintf("cannot declare a context type on %s: it is never entered", n.Name()))
	}
	declared := typeOf[TContext]()
	if n.contextType != nil && n.contextType != declared {
		panic(&ContextTypeMismatchError{
			State:    n.Name(),
			Declared: n.contextType.String(),
			Provided: declared.String(),
		})
	}
	n.contextType = declared
	return n
}

// ContextValue reads the current context of state n as TContext. ok is false
// when the state holds no context or the held value is not a TContext.
func ContextValue[TContext any, TState, TEvent comparable](n *StateNode[TState, TEvent]) (TContext, bool) {
	var zero TContext
	v, ok := n.Context()
	if !ok {
		return zero, false
	}
	typed, ok := v.(TContext)
	if !ok {
		return zero, false
	}
	return typed, true
}

// checkContextType ensures provider p may install context on dest. Called at
// build time for fixed destinations and at fire time for deferred ones.
func checkContextType[TState, TEvent comparable](dest *StateNode[TState, TEvent], p *ContextProvider) {
	if p == nil {
		return
	}
	if dest.contextType == nil {
		panic(&ContextTypeMismatchError{
			State:    dest.Name(),
			Provided: p.contextType.String(),
		})
	}
	if !p.contextType.AssignableTo(dest.contextType) {
		panic(&ContextTypeMismatchError{
			State:    dest.Name(),
			Declared: dest.contextType.String(),
			Provided: p.contextType.String(),
		})
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
