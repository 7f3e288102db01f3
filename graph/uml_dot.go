package graph

import (
	"fmt"
	"strings"

	hsm "github.com/FukaMiya/HybridStateMachine"
)

// UmlDotGraphStyle generates DOT graphs in basic UML style.
type UmlDotGraphStyle struct{}

// NewUmlDotGraphStyle creates a new UML DOT graph style.
func NewUmlDotGraphStyle() *UmlDotGraphStyle {
	return &UmlDotGraphStyle{}
}

// GetPrefix returns the text that starts a new DOT graph.
func (s *UmlDotGraphStyle) GetPrefix() string {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("node [shape=Mrecord]\n")
	sb.WriteString("rankdir=\"LR\"\n")
	return sb.String()
}

// FormatOneState formats a single state. States with hooks or a declared
// context type render as a two-cell record listing them.
func (s *UmlDotGraphStyle) FormatOneState(state *State) string {
	escapedName := EscapeLabel(state.NodeName)

	var rows []string
	if state.Info.EnterHook != "" {
		rows = append(rows, "entry / "+EscapeLabel(state.Info.EnterHook))
	}
	if state.Info.ExitHook != "" {
		rows = append(rows, "exit / "+EscapeLabel(state.Info.ExitHook))
	}
	if state.Info.UpdateHook != "" {
		rows = append(rows, "tick / "+EscapeLabel(state.Info.UpdateHook))
	}
	if state.Info.ContextType != "" {
		rows = append(rows, "context : "+EscapeLabel(state.Info.ContextType))
	}

	if len(rows) == 0 {
		return fmt.Sprintf("\"%s\" [label=\"%s\"];\n", escapedName, escapedName)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\"%s\" [label=\"%s|", escapedName, escapedName))
	sb.WriteString(strings.Join(rows, "\\n"))
	sb.WriteString("\"];\n")

	return sb.String()
}

// FormatOneDecisionNode formats a decision node.
func (s *UmlDotGraphStyle) FormatOneDecisionNode(nodeName, label string) string {
	return fmt.Sprintf("\"%s\" [shape = \"diamond\", label = \"%s\"];\n",
		EscapeLabel(nodeName), EscapeLabel(label))
}

// FormatAllTransitions formats all edges.
func (s *UmlDotGraphStyle) FormatAllTransitions(transitions []*Transition) []string {
	return FormatTransitions(s, transitions)
}

// FormatOneTransition formats a single edge.
func (s *UmlDotGraphStyle) FormatOneTransition(sourceNodeName, destinationNodeName, label string) string {
	return fmt.Sprintf("\"%s\" -> \"%s\" [style=\"solid\", label=\"%s\"];",
		EscapeLabel(sourceNodeName), EscapeLabel(destinationNodeName), EscapeLabel(label))
}

// GetInitialTransition returns the text for the initial state transition.
func (s *UmlDotGraphStyle) GetInitialTransition(initialState string) string {
	if initialState == "" {
		return "\n}"
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(" init [label=\"\", shape=point];")
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(" init -> \"%s\"[style = \"solid\"]", EscapeLabel(initialState)))
	sb.WriteString("\n")
	sb.WriteString("}")

	return sb.String()
}

// EscapeLabel escapes special characters in a label.
func EscapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\\", "\\\\")
	label = strings.ReplaceAll(label, "\"", "\\\"")
	return label
}

// UmlDotGraph generates a UML DOT graph from a machine snapshot.
func UmlDotGraph(machineInfo hsm.MachineInfo) string {
	graph := NewStateGraph(machineInfo)
	return graph.ToGraph(NewUmlDotGraphStyle())
}
