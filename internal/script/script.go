// Package script replays editing macros written in YAML.
//
// A script is a list of steps. A bare word is a command; a mapping carries
// a command with its argument:
//
//	name: swap first two lines
//	steps:
//	  - cut
//	  - down
//	  - paste
//	  - insert: "done"
//	  - goto: {line: 1, x: 0}
//	  - replace: "XY"
//	    count: 2
//	  - {cmd: backspace, times: 3}
//	  - expect:
//	      text: "..."
//	      cursor: [1, 0]
//
// Expect steps check the active buffer and stop the run when it differs.
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/linestorm/internal/engine"
)

// Errors returned while loading and running scripts.
var (
	// ErrInvalidStep indicates a step that is not a known form.
	ErrInvalidStep = errors.New("invalid step")

	// ErrRefused indicates a strict script ran a command the engine refused.
	ErrRefused = errors.New("command refused")

	// ErrExpectation indicates an expect step did not match.
	ErrExpectation = errors.New("expectation failed")
)

// Script is a named list of steps.
type Script struct {
	Name string `yaml:"name"`

	// Strict stops the run at the first refused command.
	Strict bool `yaml:"strict"`

	Steps []Step `yaml:"steps"`
}

// Step is one command, repeated Times times, or an expectation.
type Step struct {
	Command engine.Command
	Times   int
	Expect  *Expectation
}

// Expectation describes the state of the active buffer after the previous
// steps. Nil fields are not checked.
type Expectation struct {
	Text     *string `yaml:"text"`
	Cursor   []int   `yaml:"cursor"`
	Status   *string `yaml:"status"`
	Modified *bool   `yaml:"modified"`
}

type gotoArg struct {
	Line int `yaml:"line"`
	X    int `yaml:"x"`
}

// UnmarshalYAML accepts a bare line number or a {line, x} mapping.
func (g *gotoArg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&g.Line)
	}
	type plain gotoArg
	return value.Decode((*plain)(g))
}

type rawStep struct {
	Cmd      string       `yaml:"cmd"`
	Insert   *string      `yaml:"insert"`
	Replace  *string      `yaml:"replace"`
	Count    int          `yaml:"count"`
	Document *string      `yaml:"document"`
	Goto     *gotoArg     `yaml:"goto"`
	Times    int          `yaml:"times"`
	Expect   *Expectation `yaml:"expect"`
}

// UnmarshalYAML decodes a bare command name or a step mapping.
func (s *Step) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		kind, err := engine.ParseCommandKind(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*s = Step{Command: engine.Command{Kind: kind}, Times: 1}
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %w: want a command name or mapping", value.Line, ErrInvalidStep)
	}

	var raw rawStep
	if err := value.Decode(&raw); err != nil {
		return err
	}
	step, err := raw.step()
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = step
	return nil
}

func (r rawStep) step() (Step, error) {
	forms := 0
	var step Step

	if r.Cmd != "" {
		forms++
		kind, err := engine.ParseCommandKind(r.Cmd)
		if err != nil {
			return Step{}, err
		}
		step.Command = engine.Command{Kind: kind}
	}
	if r.Insert != nil {
		forms++
		step.Command = engine.Command{Kind: engine.CmdInsertText, Text: []byte(*r.Insert)}
	}
	if r.Replace != nil {
		forms++
		if r.Count < 0 {
			return Step{}, fmt.Errorf("%w: negative count", ErrInvalidStep)
		}
		n := r.Count
		if n == 0 {
			n = len(*r.Replace)
		}
		step.Command = engine.Command{Kind: engine.CmdReplace, Text: []byte(*r.Replace), N: n}
	}
	if r.Document != nil {
		forms++
		step.Command = engine.Command{Kind: engine.CmdInsertDocument, Text: []byte(*r.Document)}
	}
	if r.Goto != nil {
		forms++
		step.Command = engine.Command{Kind: engine.CmdGotoLine, Line: r.Goto.Line, X: r.Goto.X}
	}
	if r.Expect != nil {
		forms++
		if r.Expect.Cursor != nil && len(r.Expect.Cursor) != 2 {
			return Step{}, fmt.Errorf("%w: cursor needs [line, x]", ErrInvalidStep)
		}
		step.Expect = r.Expect
	}

	if forms != 1 {
		return Step{}, fmt.Errorf("%w: want exactly one of cmd, insert, replace, document, goto, expect", ErrInvalidStep)
	}
	if r.Times < 0 {
		return Step{}, fmt.Errorf("%w: negative times", ErrInvalidStep)
	}
	step.Times = max(r.Times, 1)
	return step, nil
}

// Parse decodes a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and decodes the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}
