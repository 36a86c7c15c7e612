package scenario

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/c9s/rbtree/pkg/rbtree"
)

var log = logrus.WithField("component", "scenario")

type Op string

const (
	OpInsert Op = "insert"
	OpErase  Op = "erase"
	OpFind   Op = "find"
	OpMin    Op = "min"
	OpMax    Op = "max"
	OpExport Op = "export"
	OpVerify Op = "verify"
)

var ErrExpectation = errors.New("expectation failed")

// Expect holds the optional checks of a step, unset fields are not checked.
type Expect struct {
	// Found is checked by find, min, max and erase
	Found *bool `yaml:"found,omitempty"`

	// Key is the key of the node returned by find, min or max
	Key *int64 `yaml:"key,omitempty"`

	// Keys is the sequence returned by export
	Keys *[]int64 `yaml:"keys,omitempty"`

	// Size is the tree size after the step
	Size *int `yaml:"size,omitempty"`
}

type Step struct {
	Op     Op      `yaml:"op"`
	Key    int64   `yaml:"key,omitempty"`
	Keys   []int64 `yaml:"keys,omitempty"`
	Expect Expect  `yaml:"expect,omitempty"`

	// Capacity limits an export, nil exports every key
	Capacity *int `yaml:"capacity,omitempty"`
}

// Scenario is a list of tree operations replayed in order.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

type Report struct {
	Name  string
	Steps int
	Size  int
	Stats rbtree.Stats
}

// StepError reports the step a scenario stopped at.
type StepError struct {
	Index int
	Op    Op
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step #%d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func Load(r io.Reader) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "unable to decode scenario")
	}

	for i, step := range s.Steps {
		switch step.Op {
		case OpInsert, OpErase, OpFind, OpMin, OpMax, OpExport, OpVerify:
		default:
			return nil, errors.Errorf("step #%d: unknown op %q", i, step.Op)
		}
	}

	return &s, nil
}

func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario file %s", path)
	}

	if s.Name == "" {
		s.Name = path
	}

	return s, nil
}

// Run replays the steps against tree. The invariants are verified after
// every insert and erase, the first failure stops the run.
func (s *Scenario) Run(tree *rbtree.Tree[int64]) (*Report, error) {
	for i, step := range s.Steps {
		if err := s.runStep(tree, step); err != nil {
			return nil, &StepError{Index: i, Op: step.Op, Err: err}
		}

		log.Debugf("%s: step #%d %s done, size %d", s.Name, i, step.Op, tree.Size())
	}

	return &Report{
		Name:  s.Name,
		Steps: len(s.Steps),
		Size:  tree.Size(),
		Stats: tree.Stats(),
	}, nil
}

func (s *Scenario) runStep(tree *rbtree.Tree[int64], step Step) error {
	switch step.Op {
	case OpInsert:
		keys := step.Keys
		if len(keys) == 0 {
			keys = []int64{step.Key}
		}

		for _, k := range keys {
			tree.Insert(k)
		}

		if err := tree.Verify(); err != nil {
			return err
		}

	case OpErase:
		erased := tree.Erase(tree.Find(step.Key))
		if err := expectFound(step.Expect, erased); err != nil {
			return err
		}

		if err := tree.Verify(); err != nil {
			return err
		}

	case OpFind:
		if err := expectNode(step.Expect, tree.Find(step.Key)); err != nil {
			return err
		}

	case OpMin:
		if err := expectNode(step.Expect, tree.Min()); err != nil {
			return err
		}

	case OpMax:
		if err := expectNode(step.Expect, tree.Max()); err != nil {
			return err
		}

	case OpExport:
		capacity := tree.Size()
		if step.Capacity != nil {
			capacity = *step.Capacity
		}

		keys := tree.ToSortedSlice(capacity)
		if step.Expect.Keys != nil && !slices.Equal(keys, *step.Expect.Keys) {
			return errors.Wrapf(ErrExpectation, "export: got %v, want %v", keys, *step.Expect.Keys)
		}

	case OpVerify:
		if err := tree.Verify(); err != nil {
			return err
		}
	}

	if step.Expect.Size != nil && tree.Size() != *step.Expect.Size {
		return errors.Wrapf(ErrExpectation, "size: got %d, want %d", tree.Size(), *step.Expect.Size)
	}

	return nil
}

func expectFound(expect Expect, found bool) error {
	if expect.Found != nil && *expect.Found != found {
		return errors.Wrapf(ErrExpectation, "found: got %v, want %v", found, *expect.Found)
	}
	return nil
}

func expectNode(expect Expect, n *rbtree.Node[int64]) error {
	if err := expectFound(expect, n != nil); err != nil {
		return err
	}

	if expect.Key == nil {
		return nil
	}

	if n == nil {
		return errors.Wrapf(ErrExpectation, "key: got none, want %d", *expect.Key)
	}

	if n.Key() != *expect.Key {
		return errors.Wrapf(ErrExpectation, "key: got %d, want %d", n.Key(), *expect.Key)
	}

	return nil
}
