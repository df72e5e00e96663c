package model

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/femscene/pkg/geometry"
)

// ParseSTLFile reads an STL file and converts it to a structure.
// It automatically detects whether the file is ASCII or binary format.
func ParseSTLFile(filename string) (*Structure, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseSTL(file)
}

// ParseSTL reads ASCII or binary STL data and converts it with FromTriangles
func ParseSTL(r io.Reader) (*Structure, error) {
	reader := bufio.NewReader(r)

	// Check if it's ASCII format (starts with "solid ")
	header, _ := reader.Peek(5)
	var (
		name      string
		triangles []geometry.Triangle
		err       error
	)
	if string(header) == "solid" {
		name, triangles, err = readASCII(reader)
	} else {
		name, triangles, err = readBinary(reader)
	}
	if err != nil {
		return nil, err
	}
	return FromTriangles(name, triangles), nil
}

// FromTriangles turns a triangle soup into a structure: every distinct vertex
// becomes a node, every distinct triangle edge an element and every facet a
// group of its three edges. Ids start at 1 in order of first appearance.
func FromTriangles(name string, triangles []geometry.Triangle) *Structure {
	s := NewStructure(name)
	nodes := make(map[geometry.Vector3]int)
	edges := make(map[[2]int]int)

	nodeID := func(v geometry.Vector3) int {
		if id, ok := nodes[v]; ok {
			return id
		}
		id := len(nodes) + 1
		nodes[v] = id
		s.AddNode(id, v)
		return id
	}
	edgeID := func(a, b int) int {
		key := [2]int{a, b}
		if b < a {
			key = [2]int{b, a}
		}
		if id, ok := edges[key]; ok {
			return id
		}
		id := len(edges) + 1
		edges[key] = id
		s.AddElement(id, key[0], key[1])
		return id
	}

	for i, tri := range triangles {
		v := tri.Vertices()
		n := [3]int{nodeID(v[0]), nodeID(v[1]), nodeID(v[2])}
		s.AddGroup(i+1, fmt.Sprintf("facet-%d", i+1),
			edgeID(n[0], n[1]),
			edgeID(n[1], n[2]),
			edgeID(n[2], n[0]),
		)
	}
	return s
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", fields[i], err)
		}
		xyz[i] = f
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

// readASCII parses an ASCII STL stream
func readASCII(reader io.Reader) (string, []geometry.Triangle, error) {
	scanner := bufio.NewScanner(reader)

	var (
		name          string
		triangles     []geometry.Triangle
		currentNormal geometry.Vector3
		vertices      []geometry.Vector3
		lineNo        int
	)

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				n, err := parseVector(fields[2:5])
				if err != nil {
					return "", nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				currentNormal = n
			}

		case "vertex":
			if len(fields) >= 4 {
				v, err := parseVector(fields[1:4])
				if err != nil {
					return "", nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				vertices = append(vertices, v)
			}

		case "endfacet":
			if len(vertices) == 3 {
				triangles = append(triangles, geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return name, triangles, nil
}

// binaryFacet mirrors the 50-byte record of a binary STL file
type binaryFacet struct {
	Normal    [3]float32
	V1        [3]float32
	V2        [3]float32
	V3        [3]float32
	Attribute uint16
}

func vec32(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}

// readBinary parses a binary STL stream
func readBinary(reader io.Reader) (string, []geometry.Triangle, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return "", nil, fmt.Errorf("failed to read header: %w", err)
	}
	name := string(bytes.TrimRight(header, "\x00 "))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return "", nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	triangles := make([]geometry.Triangle, 0, min(count, 1<<16))
	for i := uint32(0); i < count; i++ {
		var f binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &f); err != nil {
			return "", nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		triangles = append(triangles, geometry.NewTriangle(vec32(f.Normal), vec32(f.V1), vec32(f.V2), vec32(f.V3)))
	}
	return name, triangles, nil
}
