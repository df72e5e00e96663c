package model

import (
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/femscene/pkg/geometry"
	"gopkg.in/yaml.v3"
)

type yamlStructure struct {
	Name     string        `yaml:"name"`
	Nodes    []yamlNode    `yaml:"nodes"`
	Elements []yamlElement `yaml:"elements"`
}

type yamlNode struct {
	ID  int        `yaml:"id"`
	Pos [3]float64 `yaml:"pos"`
}

type yamlElement struct {
	ID    int    `yaml:"id"`
	Nodes [2]int `yaml:"nodes"`
	Group string `yaml:"group,omitempty"`
}

// ParseYAMLFile reads a structure file
func ParseYAMLFile(filename string) (*Structure, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseYAML(file)
}

// ParseYAML decodes a structure document. Elements sharing a group tag form
// one group; group ids are assigned from 1 in order of first appearance.
func ParseYAML(r io.Reader) (*Structure, error) {
	var doc yamlStructure
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode structure: %w", err)
	}

	s := NewStructure(doc.Name)
	for _, n := range doc.Nodes {
		s.AddNode(n.ID, geometry.NewVector3(n.Pos[0], n.Pos[1], n.Pos[2]))
	}

	groupIDs := make(map[string]int)
	for _, e := range doc.Elements {
		s.AddElement(e.ID, e.Nodes[0], e.Nodes[1])
		if e.Group == "" {
			continue
		}
		id, ok := groupIDs[e.Group]
		if !ok {
			id = len(s.Groups) + 1
			groupIDs[e.Group] = id
			s.AddGroup(id, e.Group)
		}
		g := &s.Groups[id-1]
		g.Elements = append(g.Elements, e.ID)
	}
	return s, nil
}

// WriteYAML encodes the structure in the format read by ParseYAML.
// Elements in more than one group keep only their first group tag.
func WriteYAML(w io.Writer, s *Structure) error {
	doc := yamlStructure{Name: s.Name}
	for _, n := range s.Nodes {
		doc.Nodes = append(doc.Nodes, yamlNode{ID: n.ID, Pos: [3]float64{n.Position.X, n.Position.Y, n.Position.Z}})
	}

	tags := make(map[int]string)
	for _, g := range s.Groups {
		for _, e := range g.Elements {
			if _, ok := tags[e]; !ok {
				tags[e] = g.Name
			}
		}
	}
	for _, e := range s.Elements {
		doc.Elements = append(doc.Elements, yamlElement{ID: e.ID, Nodes: e.Nodes, Group: tags[e.ID]})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode structure: %w", err)
	}
	return enc.Close()
}
