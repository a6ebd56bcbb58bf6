// Package hierarchy builds the inheritance graph of the classes found in a
// project and answers subclass and ancestor queries over it.
package hierarchy

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/mvp-joe/jones/internal/extractors"
)

// Relative is a class reached from a query class, with its distance in
// inheritance steps.
type Relative struct {
	Class *extractors.PythonClass `json:"class"`
	Depth int                     `json:"depth"`
}

// vertex wraps a class with its position in the input for stable ordering.
type vertex struct {
	class *extractors.PythonClass
	order int
}

// Hierarchy is a directed graph with an edge from every base class to each
// class that derives from it. Only classes defined in the project are
// vertices; bases imported from elsewhere are kept as declared names.
type Hierarchy struct {
	graph graph.Graph[string, *vertex]
	bases map[string][]string
}

// Build creates the hierarchy of classes. When several classes share a name
// the first one wins. Edges that would close an inheritance cycle are logged
// and dropped.
func Build(classes []extractors.PythonClass) (*Hierarchy, error) {
	h := &Hierarchy{
		graph: graph.New(func(v *vertex) string { return v.class.Name }, graph.Directed(), graph.PreventCycles()),
		bases: make(map[string][]string),
	}

	var added []*vertex
	for i := range classes {
		v := &vertex{class: &classes[i], order: i}
		if err := h.graph.AddVertex(v); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("failed to add class %s: %w", v.class.Name, err)
		}
		added = append(added, v)
	}

	for _, v := range added {
		for _, base := range v.class.Inheritance {
			name := BaseName(base)
			h.bases[v.class.Name] = append(h.bases[v.class.Name], name)

			err := h.graph.AddEdge(name, v.class.Name)
			switch {
			case err == nil, errors.Is(err, graph.ErrVertexNotFound), errors.Is(err, graph.ErrEdgeAlreadyExists):
			case errors.Is(err, graph.ErrEdgeCreatesCycle):
				log.Printf("Warning: ignoring cyclic base %s of %s", name, v.class.Name)
			default:
				return nil, fmt.Errorf("failed to link %s to %s: %w", name, v.class.Name, err)
			}
		}
	}

	return h, nil
}

// BaseName reduces a base class expression to the class name it refers to:
// subscripts and call arguments are dropped and only the last dotted
// component is kept, so "typing.Generic[T]" becomes "Generic".
func BaseName(base string) string {
	name := strings.TrimSpace(base)
	if i := strings.IndexAny(name, "[("); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}

// Len returns the number of classes in the hierarchy.
func (h *Hierarchy) Len() int {
	n, err := h.graph.Order()
	if err != nil {
		return 0
	}
	return n
}

// Class returns the class registered under name.
func (h *Hierarchy) Class(name string) (*extractors.PythonClass, bool) {
	v, err := h.graph.Vertex(name)
	if err != nil {
		return nil, false
	}
	return v.class, true
}

// Bases returns the declared base names of a class, including bases that are
// not defined in the project.
func (h *Hierarchy) Bases(name string) []string {
	return h.bases[name]
}

// Subclasses returns every class deriving from base, directly or not, in
// breadth-first order. Classes at the same depth keep their input order.
// The result is empty when base is not a project class.
func (h *Hierarchy) Subclasses(base string) []Relative {
	if _, err := h.graph.Vertex(base); err != nil {
		return nil
	}

	adjacency, err := h.graph.AdjacencyMap()
	if err != nil {
		return nil
	}

	depth := map[string]int{base: 0}
	var reached []string
	_ = graph.BFS(h.graph, base, func(name string) bool {
		for child := range adjacency[name] {
			if _, seen := depth[child]; !seen {
				depth[child] = depth[name] + 1
			}
		}
		if name != base {
			reached = append(reached, name)
		}
		return false
	})

	return h.relatives(reached, depth)
}

// Ancestors returns the project classes a class inherits from, directly or
// not, nearest first. Bases defined outside the project are skipped.
func (h *Hierarchy) Ancestors(name string) []Relative {
	if _, err := h.graph.Vertex(name); err != nil {
		return nil
	}

	depth := map[string]int{name: 0}
	queue := []string{name}
	var reached []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, base := range h.bases[current] {
			if _, seen := depth[base]; seen {
				continue
			}
			if _, err := h.graph.Vertex(base); err != nil {
				continue
			}
			depth[base] = depth[current] + 1
			reached = append(reached, base)
			queue = append(queue, base)
		}
	}

	return h.relatives(reached, depth)
}

// relatives resolves names to classes ordered by depth, then input order.
func (h *Hierarchy) relatives(names []string, depth map[string]int) []Relative {
	type entry struct {
		v     *vertex
		depth int
	}

	entries := make([]entry, 0, len(names))
	for _, name := range names {
		v, err := h.graph.Vertex(name)
		if err != nil {
			continue
		}
		entries = append(entries, entry{v: v, depth: depth[name]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].depth != entries[j].depth {
			return entries[i].depth < entries[j].depth
		}
		return entries[i].v.order < entries[j].v.order
	})

	out := make([]Relative, len(entries))
	for i, e := range entries {
		out[i] = Relative{Class: e.v.class, Depth: e.depth}
	}
	return out
}
