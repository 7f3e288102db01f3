package graph

import (
	"fmt"
	"strings"

	hsm "github.com/FukaMiya/HybridStateMachine"
)

// StateGraph is the symbolic form of a machine snapshot: state nodes,
// decision pseudo-nodes and edges. Nodes and edges keep the snapshot's
// registration order, so rendered output is deterministic.
type StateGraph struct {
	// InitialState is the name of the machine's initial state, empty when
	// the snapshot was taken before initialization.
	InitialState string

	// States contains all graph nodes, indexed by state name.
	States map[string]*State

	// Transitions contains all edges in build order.
	Transitions []*Transition

	// Decisions contains one pseudo-node per deferred destination.
	Decisions []*Decision

	order []string
}

// NewStateGraph creates a state graph from a machine snapshot. The AnyState
// sentinel, when present, becomes an ordinary source node named AnyState and
// is listed first, mirroring its precedence during selection.
func NewStateGraph(machineInfo hsm.MachineInfo) *StateGraph {
	sg := &StateGraph{
		InitialState: machineInfo.InitialState,
		States:       make(map[string]*State),
	}

	sg.addStates(machineInfo)
	sg.addTransitions(machineInfo)

	return sg
}

// addStates adds one node per snapshot entry, AnyState first.
func (sg *StateGraph) addStates(machineInfo hsm.MachineInfo) {
	if machineInfo.AnyState != nil {
		sg.addState(*machineInfo.AnyState)
	}
	for _, stateInfo := range machineInfo.States {
		sg.addState(stateInfo)
	}
}

func (sg *StateGraph) addState(stateInfo hsm.StateInfo) {
	if _, exists := sg.States[stateInfo.Name]; exists {
		return
	}
	sg.States[stateInfo.Name] = &State{
		Info:     stateInfo,
		NodeName: stateInfo.Name,
	}
	sg.order = append(sg.order, stateInfo.Name)
}

// addTransitions adds all edges to the graph. Deferred destinations get a
// decision pseudo-node each; fixed destinations connect state to state.
func (sg *StateGraph) addTransitions(machineInfo hsm.MachineInfo) {
	if machineInfo.AnyState != nil {
		sg.addStateTransitions(*machineInfo.AnyState)
	}
	for _, stateInfo := range machineInfo.States {
		sg.addStateTransitions(stateInfo)
	}
}

func (sg *StateGraph) addStateTransitions(stateInfo hsm.StateInfo) {
	fromState := sg.States[stateInfo.Name]

	for _, transitionInfo := range stateInfo.Transitions {
		transit := &Transition{
			Info:        transitionInfo,
			SourceState: fromState,
		}

		if transitionInfo.Deferred {
			decide := &Decision{
				NodeName: fmt.Sprintf("Decision%d", len(sg.Decisions)+1),
				Label:    transitionInfo.Destination,
			}
			sg.Decisions = append(sg.Decisions, decide)
			transit.Decision = decide
			decide.Arriving = append(decide.Arriving, transit)
		} else {
			toState := sg.States[transitionInfo.Destination]
			transit.DestinationState = toState
			if toState != nil {
				toState.Arriving = append(toState.Arriving, transit)
			}
		}

		sg.Transitions = append(sg.Transitions, transit)
		fromState.Leaving = append(fromState.Leaving, transit)
	}
}

// ToGraph converts the state graph to a string representation using the
// specified style.
func (sg *StateGraph) ToGraph(style Style) string {
	var sb strings.Builder

	sb.WriteString(style.GetPrefix())

	for _, stateName := range sg.order {
		sb.WriteString(style.FormatOneState(sg.States[stateName]))
	}

	for _, dec := range sg.Decisions {
		sb.WriteString(style.FormatOneDecisionNode(dec.NodeName, dec.Label))
	}

	lines := style.FormatAllTransitions(sg.Transitions)
	for _, line := range lines {
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	sb.WriteString(style.GetInitialTransition(sg.InitialState))

	return sb.String()
}

// StateNames returns the node names in snapshot order.
func (sg *StateGraph) StateNames() []string {
	names := make([]string, len(sg.order))
	copy(names, sg.order)
	return names
}
