// Package hsm provides a generic, synchronous state machine engine with two
// drive modes that mix freely on one machine.
//
// In pull mode the host calls Update once per tick and guard conditions
// decide which transition fires. In push mode the host calls Fire with an
// event and transitions bound to that event fire without polling. The
// engine supports:
//
//   - Generic types for state keys and events
//   - Lazily created singleton state nodes with enter, exit and tick hooks
//   - Guard conditions with All, Any and Not combinators
//   - An AnyState sentinel whose transitions are evaluated before the
//     current state's on every pass
//   - Weight-based priority with registration-order tie-breaking
//   - Deferred destinations resolved at fire time, including Back to the
//     previous state
//   - Typed state context installed at entry by the winning transition
//   - Introspection and graph generation
//
// Machines are single threaded by design and perform no locking.
//
// # Basic Usage
//
// Create a machine and configure transitions:
//
//	m := hsm.New[State, Event]()
//	m.At(Title).To(Play).On(EvStart).Build()
//	m.At(Play).To(Result).When(func() bool { return lives == 0 }).Build()
//
// Give the machine an initial state, then drive it:
//
//	m.SetInitialState(Title)
//	m.Update()        // pull mode, polls guards
//	m.Fire(EvStart)   // push mode
//
// # Hooks
//
// States expose lifecycle hooks:
//
//	m.At(Play).
//	    OnEnter(func() { fmt.Println("entering Play") }).
//	    OnUpdate(func() { frame++ })
//
// # Global Transitions
//
// Transitions on AnyState apply regardless of the current state:
//
//	m.Any().To(Pause).On(EvPause).Build()
//	m.At(Pause).Back().On(EvPause).Build()
//
// # Graph Generation
//
// Export the plain Mermaid skeleton, or render decorated diagrams:
//
//	fmt.Println(m.ToGraphString())
//
//	import "github.com/FukaMiya/HybridStateMachine/graph"
//	dot := graph.UmlDotGraph(m.GetInfo())
package hsm
