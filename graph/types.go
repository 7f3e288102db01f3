// Package graph renders machine snapshots as Mermaid and Graphviz DOT
// diagrams. The renderers consume hsm.MachineInfo, so they carry no type
// parameters and never touch a live machine.
package graph

import (
	hsm "github.com/FukaMiya/HybridStateMachine"
)

// State is a node of the graph.
type State struct {
	// Info is the snapshot entry this node was built from.
	Info hsm.StateInfo

	// NodeName is the identifier used for the node in rendered output.
	NodeName string

	// Leaving are the transitions leaving this state.
	Leaving []*Transition

	// Arriving are the transitions arriving at this state.
	Arriving []*Transition
}

// Decision is the pseudo-node standing in for a deferred destination. The
// real destination is only known at fire time, so the graph shows a branch
// point instead of an edge into a state.
type Decision struct {
	// NodeName is the identifier used for the node in rendered output.
	NodeName string

	// Label is the deferred destination's display name.
	Label string

	// Arriving are the transitions ending at this decision node.
	Arriving []*Transition
}

// Transition is an edge of the graph. Exactly one of DestinationState and
// Decision is set.
type Transition struct {
	// Info is the snapshot entry this edge was built from.
	Info hsm.TransitionInfo

	// SourceState is the state the edge leaves.
	SourceState *State

	// DestinationState is the state the edge ends at, nil for deferred
	// destinations.
	DestinationState *State

	// Decision is the pseudo-node the edge ends at, nil for fixed
	// destinations.
	Decision *Decision
}
