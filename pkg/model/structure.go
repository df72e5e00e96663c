// Package model holds the structural model shown in the viewport: nodes,
// two-node elements and named element groups.
package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/femscene/pkg/geometry"
)

// ErrUnknownFormat is returned by Load for unsupported file extensions
var ErrUnknownFormat = errors.New("unknown model format")

// Node is a pickable point of the model
type Node struct {
	ID       int
	Position geometry.Vector3
}

// Element is a pickable two-node segment of the model
type Element struct {
	ID    int
	Nodes [2]int
}

// Group is a named collection of elements sharing a tag
type Group struct {
	ID       int
	Name     string
	Elements []int
}

// Structure is a complete model
type Structure struct {
	Name     string
	Nodes    []Node
	Elements []Element
	Groups   []Group

	nodeIndex    map[int]int
	elementIndex map[int]int
}

// NewStructure creates an empty structure
func NewStructure(name string) *Structure {
	return &Structure{Name: name}
}

// AddNode appends a node
func (s *Structure) AddNode(id int, position geometry.Vector3) {
	s.Nodes = append(s.Nodes, Node{ID: id, Position: position})
	s.nodeIndex = nil
}

// AddElement appends an element between two nodes
func (s *Structure) AddElement(id, from, to int) {
	s.Elements = append(s.Elements, Element{ID: id, Nodes: [2]int{from, to}})
	s.elementIndex = nil
}

// AddGroup appends a group
func (s *Structure) AddGroup(id int, name string, elements ...int) {
	s.Groups = append(s.Groups, Group{ID: id, Name: name, Elements: elements})
}

func (s *Structure) buildIndex() {
	if s.nodeIndex == nil {
		s.nodeIndex = make(map[int]int, len(s.Nodes))
		for i, n := range s.Nodes {
			s.nodeIndex[n.ID] = i
		}
	}
	if s.elementIndex == nil {
		s.elementIndex = make(map[int]int, len(s.Elements))
		for i, e := range s.Elements {
			s.elementIndex[e.ID] = i
		}
	}
}

// Node looks up a node by id
func (s *Structure) Node(id int) (Node, bool) {
	s.buildIndex()
	i, ok := s.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return s.Nodes[i], true
}

// Element looks up an element by id
func (s *Structure) Element(id int) (Element, bool) {
	s.buildIndex()
	i, ok := s.elementIndex[id]
	if !ok {
		return Element{}, false
	}
	return s.Elements[i], true
}

// ElementEnds returns the positions of both element nodes
func (s *Structure) ElementEnds(id int) (from, to geometry.Vector3, ok bool) {
	e, ok := s.Element(id)
	if !ok {
		return from, to, false
	}
	a, okA := s.Node(e.Nodes[0])
	b, okB := s.Node(e.Nodes[1])
	if !okA || !okB {
		return from, to, false
	}
	return a.Position, b.Position, true
}

// Bounds returns the bounding box of all nodes
func (s *Structure) Bounds() geometry.AABB {
	b := geometry.NewAABB()
	for _, n := range s.Nodes {
		b.Extend(n.Position)
	}
	return b
}

// Validate checks id uniqueness and references
func (s *Structure) Validate() error {
	nodes := make(map[int]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if nodes[n.ID] {
			return fmt.Errorf("duplicate node id %d", n.ID)
		}
		nodes[n.ID] = true
	}

	elements := make(map[int]bool, len(s.Elements))
	for _, e := range s.Elements {
		if elements[e.ID] {
			return fmt.Errorf("duplicate element id %d", e.ID)
		}
		elements[e.ID] = true
		for _, n := range e.Nodes {
			if !nodes[n] {
				return fmt.Errorf("element %d references unknown node %d", e.ID, n)
			}
		}
	}

	groups := make(map[int]bool, len(s.Groups))
	for _, g := range s.Groups {
		if groups[g.ID] {
			return fmt.Errorf("duplicate group id %d", g.ID)
		}
		groups[g.ID] = true
		for _, e := range g.Elements {
			if !elements[e] {
				return fmt.Errorf("group %q references unknown element %d", g.Name, e)
			}
		}
	}
	return nil
}

// Load reads a structure from a .yaml/.yml or .stl file
func Load(filename string) (*Structure, error) {
	var (
		s   *Structure
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		s, err = ParseYAMLFile(filename)
	case ".stl":
		s, err = ParseSTLFile(filename)
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model %s: %w", filename, err)
	}
	return s, nil
}
