// Package definition loads state machine definitions from YAML documents and
// applies them to string-keyed machines.
package definition

import (
	"fmt"
	"io/fs"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a machine definition.
type Document struct {
	Name        string          `yaml:"name"`
	Initial     string          `yaml:"initial"`
	States      []StateDef      `yaml:"states"`
	Transitions []TransitionDef `yaml:"transitions"`
}

// StateDef declares one state and its hook bindings. The hook fields name
// actions supplied through Bindings and can be empty.
type StateDef struct {
	Name     string `yaml:"name"`
	OnEnter  string `yaml:"onEnter"`
	OnExit   string `yaml:"onExit"`
	OnUpdate string `yaml:"onUpdate"`
}

// TransitionDef declares one transition. The source is From, or the AnyState
// sentinel when Any is set. The destination is To, or the previous state when
// Back is set. When lists named conditions that must all hold; it cannot be
// combined with Event.
type TransitionDef struct {
	From         string   `yaml:"from"`
	Any          bool     `yaml:"any"`
	To           string   `yaml:"to"`
	Back         bool     `yaml:"back"`
	Event        string   `yaml:"event"`
	When         []string `yaml:"when"`
	Weight       *float64 `yaml:"weight"`
	AllowReentry bool     `yaml:"allowReentry"`
	Name         string   `yaml:"name"`
}

// Load parses a machine definition from YAML bytes and validates it.
func Load(data []byte) (*Document, error) {
	var doc Document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	err = doc.Validate()
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// LoadFile loads a machine definition from a file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %q: %w", path, err)
	}

	return Load(data)
}

// LoadFS loads a machine definition from a filesystem. This is a convenience
// function for loading from embed.FS.
func LoadFS(fsys fs.FS, path string) (*Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition from FS: %w", err)
	}

	return Load(data)
}

// Validate checks that the document is internally consistent: the initial
// state and every transition endpoint must be declared, state names must be
// unique, and each transition must have exactly one source, exactly one
// destination and at most one dispatch mode.
func (d *Document) Validate() error {
	if d.Name == "" {
		return ErrNameRequired
	}

	if d.Initial == "" {
		return ErrInitialStateRequired
	}

	if len(d.States) == 0 {
		return ErrStateRequired
	}

	stateNames := make(map[string]bool)

	for _, state := range d.States {
		if state.Name == "" {
			return ErrStateNameRequired
		}

		if stateNames[state.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateStateName, state.Name)
		}

		stateNames[state.Name] = true
	}

	if !stateNames[d.Initial] {
		return fmt.Errorf("%w: %s", ErrInitialStateNotFound, d.Initial)
	}

	for i, transition := range d.Transitions {
		if err := transition.validate(stateNames); err != nil {
			return fmt.Errorf("transition %d: %w", i, err)
		}
	}

	return nil
}

func (t *TransitionDef) validate(stateNames map[string]bool) error {
	if t.Any && t.From != "" {
		return fmt.Errorf("%w: %s", ErrAmbiguousSource, t.From)
	}

	if !t.Any {
		if t.From == "" {
			return ErrTransitionFromRequired
		}
		if !stateNames[t.From] {
			return fmt.Errorf("%w: %s", ErrTransitionFromNotFound, t.From)
		}
	}

	if t.Back && t.To != "" {
		return fmt.Errorf("%w: %s", ErrAmbiguousDestination, t.To)
	}

	if !t.Back {
		if t.To == "" {
			return ErrTransitionToRequired
		}
		if !stateNames[t.To] {
			return fmt.Errorf("%w: %s", ErrTransitionToNotFound, t.To)
		}
	}

	if t.Event != "" && len(t.When) > 0 {
		return ErrEventWithCondition
	}

	if !t.Any && !t.Back && t.From == t.To && !t.AllowReentry {
		return fmt.Errorf("%w: %s", ErrSelfLoopWithoutReentry, t.From)
	}

	if t.Weight != nil && math.IsNaN(*t.Weight) {
		return ErrInvalidWeight
	}

	return nil
}
