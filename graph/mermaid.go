package graph

import (
	"fmt"
	"strings"
	"unicode"

	hsm "github.com/FukaMiya/HybridStateMachine"
)

// MermaidGraphDirection specifies the direction of the Mermaid graph.
type MermaidGraphDirection int

const (
	// TopToBottom flows from top to bottom.
	TopToBottom MermaidGraphDirection = iota
	// BottomToTop flows from bottom to top.
	BottomToTop
	// LeftToRight flows from left to right.
	LeftToRight
	// RightToLeft flows from right to left.
	RightToLeft
)

// MermaidGraphStyle generates Mermaid graphs.
type MermaidGraphStyle struct {
	graph     *StateGraph
	direction *MermaidGraphDirection
	aliases   map[string]string
}

// NewMermaidGraphStyle creates a new Mermaid graph style.
func NewMermaidGraphStyle(graph *StateGraph, direction *MermaidGraphDirection) *MermaidGraphStyle {
	s := &MermaidGraphStyle{
		graph:     graph,
		direction: direction,
		aliases:   make(map[string]string),
	}
	s.buildAliases()
	return s
}

// GetPrefix returns the text that starts a new Mermaid graph.
func (s *MermaidGraphStyle) GetPrefix() string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2")

	if s.direction != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("\tdirection %s", GetDirectionCode(*s.direction)))
	}

	// Declare aliases for states whose names had to be sanitized.
	for _, stateName := range s.graph.StateNames() {
		alias := s.aliases[stateName]
		if alias != stateName {
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf("\t%s : %s", alias, stateName))
		}
	}

	return sb.String()
}

// FormatOneState formats a single state (Mermaid doesn't need explicit state
// definitions).
func (s *MermaidGraphStyle) FormatOneState(_ *State) string {
	return ""
}

// FormatOneDecisionNode formats a decision node.
func (s *MermaidGraphStyle) FormatOneDecisionNode(nodeName, _ string) string {
	return fmt.Sprintf("\n\tstate %s <<choice>>", nodeName)
}

// FormatAllTransitions formats all edges.
func (s *MermaidGraphStyle) FormatAllTransitions(transitions []*Transition) []string {
	return FormatTransitions(s, transitions)
}

// FormatOneTransition formats a single edge.
func (s *MermaidGraphStyle) FormatOneTransition(sourceNodeName, destinationNodeName, label string) string {
	sanitizedSource := s.nodeAlias(sourceNodeName)
	sanitizedDest := s.nodeAlias(destinationNodeName)

	if label == "" {
		return fmt.Sprintf("\t%s --> %s", sanitizedSource, sanitizedDest)
	}
	return fmt.Sprintf("\t%s --> %s : %s", sanitizedSource, sanitizedDest, label)
}

// GetInitialTransition returns the text for the initial state transition.
func (s *MermaidGraphStyle) GetInitialTransition(initialState string) string {
	if initialState == "" {
		return ""
	}
	return fmt.Sprintf("\n[*] --> %s", s.nodeAlias(initialState))
}

// buildAliases maps every state name to a Mermaid-safe node identifier, in
// snapshot order so collision numbering is stable.
func (s *MermaidGraphStyle) buildAliases() {
	uniqueAliases := make(map[string]bool)

	for _, stateName := range s.graph.StateNames() {
		alias := SanitizeStateName(stateName)

		if alias != stateName {
			count := 1
			tempName := alias
			for uniqueAliases[tempName] || s.graph.States[tempName] != nil {
				tempName = fmt.Sprintf("%s_%d", alias, count)
				count++
			}
			alias = tempName
			uniqueAliases[alias] = true
		}

		s.aliases[stateName] = alias
	}
}

// nodeAlias returns the sanitized identifier for a node name. Decision nodes
// have no alias entry and render as-is.
func (s *MermaidGraphStyle) nodeAlias(nodeName string) string {
	if alias, ok := s.aliases[nodeName]; ok {
		return alias
	}
	return nodeName
}

// SanitizeStateName removes characters that would cause invalid Mermaid
// graphs.
func SanitizeStateName(name string) string {
	var result strings.Builder
	for _, c := range name {
		if !unicode.IsSpace(c) && c != ':' && c != '-' {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// GetDirectionCode returns the Mermaid direction code.
func GetDirectionCode(direction MermaidGraphDirection) string {
	switch direction {
	case TopToBottom:
		return "TB"
	case BottomToTop:
		return "BT"
	case LeftToRight:
		return "LR"
	case RightToLeft:
		return "RL"
	default:
		return "TB"
	}
}

// MermaidGraph generates a Mermaid graph from a machine snapshot.
func MermaidGraph(machineInfo hsm.MachineInfo, direction *MermaidGraphDirection) string {
	graph := NewStateGraph(machineInfo)
	return graph.ToGraph(NewMermaidGraphStyle(graph, direction))
}
