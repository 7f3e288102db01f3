package graph

import (
	"fmt"
	"strings"
)

// Style defines the interface for formatting state graphs.
type Style interface {
	// GetPrefix returns the text that starts a new graph.
	GetPrefix() string

	// GetInitialTransition returns the text for the initial state marker.
	// initialState is empty when the snapshot was taken before
	// initialization.
	GetInitialTransition(initialState string) string

	// FormatOneState formats a single state node.
	FormatOneState(state *State) string

	// FormatOneDecisionNode formats the pseudo-node of a deferred
	// destination.
	FormatOneDecisionNode(nodeName, label string) string

	// FormatAllTransitions formats all edges.
	FormatAllTransitions(transitions []*Transition) []string

	// FormatOneTransition formats a single edge. The label can be empty.
	FormatOneTransition(sourceNodeName, destinationNodeName, label string) string
}

// FormatTransitions is a helper that formats all edges using the given style.
// This eliminates duplicate logic between different style implementations.
func FormatTransitions(style Style, transitions []*Transition) []string {
	var lines []string

	for _, transit := range transitions {
		var dest string
		switch {
		case transit.Decision != nil:
			dest = transit.Decision.NodeName
		case transit.DestinationState != nil:
			dest = transit.DestinationState.NodeName
		default:
			continue
		}
		lines = append(lines, style.FormatOneTransition(
			transit.SourceState.NodeName,
			dest,
			TransitionLabel(transit),
		))
	}

	return lines
}

// TransitionLabel builds the text shown on an edge: the event for
// event-driven transitions, the guard description in brackets, and the
// weight when it differs from the default of 1.
func TransitionLabel(transit *Transition) string {
	var sb strings.Builder

	if transit.Info.HasEvent {
		sb.WriteString(transit.Info.Event)
	}

	if transit.Info.Guard != "" {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString("[")
		sb.WriteString(transit.Info.Guard)
		sb.WriteString("]")
	}

	if transit.Info.Weight != 1 {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("{w=%g}", transit.Info.Weight))
	}

	return sb.String()
}
