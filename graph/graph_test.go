package graph_test

import (
	"strings"
	"testing"

	hsm "github.com/FukaMiya/HybridStateMachine"
	"github.com/FukaMiya/HybridStateMachine/graph"
)

// Test state and event types.
type (
	TestState int
	TestEvent int
)

const (
	TestStateA TestState = iota
	TestStateB
	TestStateC
	TestStateD
)

const (
	TestEventX TestEvent = iota
	TestEventY
	TestEventZ
)

func (s TestState) String() string {
	switch s {
	case TestStateA:
		return "A"
	case TestStateB:
		return "B"
	case TestStateC:
		return "C"
	case TestStateD:
		return "D"
	default:
		return "Unknown"
	}
}

func (e TestEvent) String() string {
	switch e {
	case TestEventX:
		return "X"
	case TestEventY:
		return "Y"
	case TestEventZ:
		return "Z"
	default:
		return "Unknown"
	}
}

func TestUmlDotGraph(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.At(TestStateA).To(TestStateC).On(TestEventY).Build()
	m.At(TestStateB).To(TestStateA).On(TestEventZ).Build()
	m.At(TestStateC).To(TestStateA).On(TestEventZ).Build()
	m.SetInitialState(TestStateA)

	dotGraph := graph.UmlDotGraph(m.GetInfo())

	// Check basic structure
	if !strings.Contains(dotGraph, "digraph") {
		t.Error("expected DOT graph to contain 'digraph'")
	}
	if !strings.Contains(dotGraph, "init") {
		t.Error("expected DOT graph to contain 'init' node")
	}
	if !strings.Contains(dotGraph, "\"A\"") {
		t.Error("expected DOT graph to contain 'A'")
	}
	if !strings.Contains(dotGraph, "\"B\"") {
		t.Error("expected DOT graph to contain 'B'")
	}
	if !strings.Contains(dotGraph, "\"C\"") {
		t.Error("expected DOT graph to contain 'C'")
	}
}

func TestMermaidGraph(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.At(TestStateB).To(TestStateA).On(TestEventZ).Build()
	m.SetInitialState(TestStateA)

	direction := graph.LeftToRight
	mermaidGraph := graph.MermaidGraph(m.GetInfo(), &direction)

	// Check basic structure
	if !strings.Contains(mermaidGraph, "stateDiagram-v2") {
		t.Error("expected Mermaid graph to contain 'stateDiagram-v2'")
	}
	if !strings.Contains(mermaidGraph, "direction LR") {
		t.Error("expected Mermaid graph to contain 'direction LR'")
	}
	if !strings.Contains(mermaidGraph, "[*] -->") {
		t.Error("expected Mermaid graph to contain initial transition")
	}
}

func TestMermaidGraphWithoutDirection(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.SetInitialState(TestStateA)

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	if !strings.Contains(mermaidGraph, "stateDiagram-v2") {
		t.Error("expected Mermaid graph to contain 'stateDiagram-v2'")
	}
	if strings.Contains(mermaidGraph, "direction") {
		t.Error("expected Mermaid graph not to contain 'direction' when not specified")
	}
}

func TestNewStateGraph(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.At(TestStateB).Back().Build()
	m.Any().To(TestStateC).On(TestEventZ).Build()

	sg := graph.NewStateGraph(m.GetInfo())

	if sg == nil {
		t.Fatal("expected non-nil StateGraph")
	}
	// AnyState, A, B and C
	if len(sg.States) != 4 {
		t.Errorf("expected 4 states, got %d", len(sg.States))
	}
	if len(sg.Transitions) != 3 {
		t.Errorf("expected 3 transitions, got %d", len(sg.Transitions))
	}
	if len(sg.Decisions) != 1 {
		t.Errorf("expected 1 decision node for the deferred destination, got %d", len(sg.Decisions))
	}
	if names := sg.StateNames(); names[0] != "AnyState" {
		t.Errorf("expected AnyState to be listed first, got %v", names)
	}
}

func TestUmlDotGraphStyle(t *testing.T) {
	style := graph.NewUmlDotGraphStyle()

	prefix := style.GetPrefix()
	if !strings.Contains(prefix, "digraph") {
		t.Error("expected prefix to contain 'digraph'")
	}
	if !strings.Contains(prefix, "node [shape=Mrecord]") {
		t.Error("expected prefix to contain node style")
	}
}

func TestMermaidGraphStyle(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()

	sg := graph.NewStateGraph(m.GetInfo())
	direction := graph.TopToBottom
	style := graph.NewMermaidGraphStyle(sg, &direction)

	prefix := style.GetPrefix()
	if !strings.Contains(prefix, "stateDiagram-v2") {
		t.Error("expected prefix to contain 'stateDiagram-v2'")
	}
}

func TestEscapeLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{`with"quotes`, `with\"quotes`},
		{`with\backslash`, `with\\backslash`},
		{`both"and\`, `both\"and\\`},
	}

	for _, tc := range tests {
		result := graph.EscapeLabel(tc.input)
		if result != tc.expected {
			t.Errorf("EscapeLabel(%q) = %q, expected %q", tc.input, result, tc.expected)
		}
	}
}

func TestSanitizeStateName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SimpleState", "SimpleState"},
		{"State With Spaces", "StateWithSpaces"},
		{"State-With-Dashes", "StateWithDashes"},
		{"State:With:Colons", "StateWithColons"},
	}

	for _, tc := range tests {
		result := graph.SanitizeStateName(tc.input)
		if result != tc.expected {
			t.Errorf("SanitizeStateName(%q) = %q, expected %q", tc.input, result, tc.expected)
		}
	}
}

func TestGetDirectionCode(t *testing.T) {
	tests := []struct {
		direction graph.MermaidGraphDirection
		expected  string
	}{
		{graph.TopToBottom, "TB"},
		{graph.BottomToTop, "BT"},
		{graph.LeftToRight, "LR"},
		{graph.RightToLeft, "RL"},
	}

	for _, tc := range tests {
		result := graph.GetDirectionCode(tc.direction)
		if result != tc.expected {
			t.Errorf("GetDirectionCode(%v) = %q, expected %q", tc.direction, result, tc.expected)
		}
	}
}

// ================== Mermaid Graph Tests ==================

func TestMermaidGraph_InitialTransition(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA)
	m.SetInitialState(TestStateA)

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	expected := "stateDiagram-v2\n[*] --> A"
	if mermaidGraph != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, mermaidGraph)
	}
}

func TestMermaidGraph_SimpleTransition(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.SetInitialState(TestStateA)

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	if !strings.Contains(mermaidGraph, "[*] --> A") {
		t.Errorf("Expected graph to contain initial transition, got:\n%s", mermaidGraph)
	}
	if !strings.Contains(mermaidGraph, "A --> B : X") {
		t.Errorf("Expected graph to contain A --> B : X transition, got:\n%s", mermaidGraph)
	}
}

func TestMermaidGraph_GuardDescription(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).When(func() bool { return true }, "ready").Build()
	m.SetInitialState(TestStateA)

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	if !strings.Contains(mermaidGraph, "A --> B : [ready]") {
		t.Errorf("Expected graph to contain guarded transition, got:\n%s", mermaidGraph)
	}
}

func TestMermaidGraph_EventWithGuardDescription(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.At(TestStateA).To(TestStateC).When(func() bool { return false }, "blocked").Build()
	m.SetInitialState(TestStateA)

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	if !strings.Contains(mermaidGraph, "A --> B : X") {
		t.Errorf("Expected graph to contain the event edge, got:\n%s", mermaidGraph)
	}
	if !strings.Contains(mermaidGraph, "A --> C : [blocked]") {
		t.Errorf("Expected graph to contain the guarded edge, got:\n%s", mermaidGraph)
	}
}

func TestMermaidGraph_WeightAnnotation(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).SetWeight(2).Build()
	m.SetInitialState(TestStateA)

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	if !strings.Contains(mermaidGraph, "A --> B : X {w=2}") {
		t.Errorf("Expected graph to annotate the non-default weight, got:\n%s", mermaidGraph)
	}
}

func TestMermaidGraph_DeferredDestination(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.At(TestStateB).Back().Build()
	m.SetInitialState(TestStateA)

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	if !strings.Contains(mermaidGraph, "state Decision1 <<choice>>") {
		t.Errorf("Expected graph to contain a choice node, got:\n%s", mermaidGraph)
	}
	if !strings.Contains(mermaidGraph, "B --> Decision1") {
		t.Errorf("Expected graph to route the deferred edge into the choice node, got:\n%s", mermaidGraph)
	}
}

func TestMermaidGraph_AnyStateEdges(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.Any().To(TestStateC).On(TestEventZ).Build()
	m.SetInitialState(TestStateA)

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	if !strings.Contains(mermaidGraph, "AnyState --> C : Z") {
		t.Errorf("Expected graph to contain the AnyState edge, got:\n%s", mermaidGraph)
	}
}

func TestMermaidGraph_StateNamesWithSpacesAreAliased(t *testing.T) {
	m := hsm.New[string, string]()
	m.At("State A").To("State B").On("go").Build()
	m.SetInitialState("State A")

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	// The sanitized name should be used in transitions
	if !strings.Contains(mermaidGraph, "StateA --> StateB : go") {
		t.Errorf("Expected graph to contain sanitized state names, got:\n%s", mermaidGraph)
	}
	// Should contain alias definitions
	if !strings.Contains(mermaidGraph, ": State A") || !strings.Contains(mermaidGraph, ": State B") {
		t.Errorf("Expected graph to contain alias definitions for states with spaces, got:\n%s", mermaidGraph)
	}
}

func TestMermaidGraph_UninitializedOmitsInitialMarker(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()

	mermaidGraph := graph.MermaidGraph(m.GetInfo(), nil)

	if strings.Contains(mermaidGraph, "[*]") {
		t.Errorf("Expected no initial marker before initialization, got:\n%s", mermaidGraph)
	}
}

// ================== DOT Graph Tests ==================

func TestDotGraph_SimpleTransition(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.SetInitialState(TestStateA)

	dotGraph := graph.UmlDotGraph(m.GetInfo())

	if !strings.Contains(dotGraph, "digraph {") {
		t.Errorf("Expected graph to start with digraph, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, `"A" [label="A"]`) {
		t.Errorf("Expected graph to contain state A, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, `"B" [label="B"]`) {
		t.Errorf("Expected graph to contain state B, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, `"A" -> "B"`) {
		t.Errorf("Expected graph to contain A->B transition, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, `label="X"`) {
		t.Errorf("Expected graph to contain event X, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, `init -> "A"`) {
		t.Errorf("Expected graph to show initial state A, got:\n%s", dotGraph)
	}
}

func TestDotGraph_HooksShownInStateBox(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.At(TestStateB).OnEnter(func() {}).OnExit(func() {})
	hsm.DeclareContext[int](m.At(TestStateB))
	m.SetInitialState(TestStateA)

	dotGraph := graph.UmlDotGraph(m.GetInfo())

	if !strings.Contains(dotGraph, "entry / "+hsm.DefaultFunctionDescription) {
		t.Errorf("Expected graph to list the enter hook, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, "exit / "+hsm.DefaultFunctionDescription) {
		t.Errorf("Expected graph to list the exit hook, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, "context : int") {
		t.Errorf("Expected graph to list the declared context type, got:\n%s", dotGraph)
	}
}

func TestDotGraph_DeferredDestinationIsDiamond(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).ToDeferred("Escalate", func() (TestState, bool) { return TestStateB, true }).Build()
	m.SetInitialState(TestStateA)

	dotGraph := graph.UmlDotGraph(m.GetInfo())

	if !strings.Contains(dotGraph, "Decision1") {
		t.Errorf("Expected graph to contain Decision1 node, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, `shape = "diamond"`) {
		t.Errorf("Expected graph to contain diamond shape, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, "Escalate") {
		t.Errorf("Expected graph to contain the deferred label, got:\n%s", dotGraph)
	}
}

func TestDotGraph_ReentryEdgeIsSelfLoop(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateA).On(TestEventX).SetAllowReentry(true).Build()
	m.SetInitialState(TestStateA)

	dotGraph := graph.UmlDotGraph(m.GetInfo())

	if !strings.Contains(dotGraph, `"A" -> "A"`) {
		t.Errorf("Expected graph to contain A->A self-loop, got:\n%s", dotGraph)
	}
}

func TestDotGraph_SimpleTransitionWithEscaping(t *testing.T) {
	state1 := `\state "1"`
	state2 := `\state "2"`
	event1 := `\event "1"`

	m := hsm.New[string, string]()
	m.At(state1).To(state2).On(event1).Build()
	m.SetInitialState(state1)

	dotGraph := graph.UmlDotGraph(m.GetInfo())

	// Should properly escape special characters
	if !strings.Contains(dotGraph, `\\`) {
		t.Errorf("Expected graph to contain escaped backslash, got:\n%s", dotGraph)
	}
	if !strings.Contains(dotGraph, `\"`) {
		t.Errorf("Expected graph to contain escaped quote, got:\n%s", dotGraph)
	}
}

func TestDotGraph_UninitializedOmitsInitMarker(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()

	dotGraph := graph.UmlDotGraph(m.GetInfo())

	if strings.Contains(dotGraph, "init ->") {
		t.Errorf("Expected no init marker before initialization, got:\n%s", dotGraph)
	}
	if !strings.HasSuffix(dotGraph, "}") {
		t.Errorf("Expected the graph to stay closed, got:\n%s", dotGraph)
	}
}

func TestDotGraph_InitialStateNotChangedAfterEventFired(t *testing.T) {
	m := hsm.New[TestState, TestEvent]()
	m.At(TestStateA).To(TestStateB).On(TestEventX).Build()
	m.SetInitialState(TestStateA)

	m.Fire(TestEventX)

	dotGraph := graph.UmlDotGraph(m.GetInfo())

	// Initial state in graph should still be A
	if !strings.Contains(dotGraph, `init -> "A"`) {
		t.Errorf("Expected graph to show initial state as A, got:\n%s", dotGraph)
	}
}
