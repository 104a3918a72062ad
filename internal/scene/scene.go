// Package scene is an in-memory scene graph: a flat list of box nodes, an
// orthographic camera and ray picking.
package scene

import (
	"sort"

	"github.com/google/uuid"
	"github.com/lox/mahjongtable/internal/geom"
)

// Hit is one node crossed by a ray.
type Hit struct {
	Node     *Node
	Distance float64
	Point    geom.Vec3
}

// Scene holds nodes in insertion order. It is not safe for concurrent use;
// all mutation happens on the render goroutine.
type Scene struct {
	nodes  []*Node
	byID   map[uuid.UUID]*Node
	byName map[string]*Node
}

// New creates an empty scene
func New() *Scene {
	return &Scene{
		byID:   make(map[uuid.UUID]*Node),
		byName: make(map[string]*Node),
	}
}

// Add inserts n, assigning an ID if it has none. Adding a node whose ID is
// already present is a no-op.
func (s *Scene) Add(n *Node) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if _, exists := s.byID[n.ID]; exists {
		return
	}
	s.nodes = append(s.nodes, n)
	s.byID[n.ID] = n
	if n.Name != "" {
		if _, taken := s.byName[n.Name]; !taken {
			s.byName[n.Name] = n
		}
	}
}

// Remove deletes the node with id and reports whether it was present.
func (s *Scene) Remove(id uuid.UUID) bool {
	n, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	if s.byName[n.Name] == n {
		delete(s.byName, n.Name)
	}
	for i, other := range s.nodes {
		if other == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			break
		}
	}
	return true
}

// Lookup returns the first node added under name, or nil.
func (s *Scene) Lookup(name string) *Node {
	return s.byName[name]
}

// Get returns the node with id, or nil.
func (s *Scene) Get(id uuid.UUID) *Node {
	return s.byID[id]
}

// Nodes returns every node in insertion order. The slice must not be modified.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Intersect returns the pickable nodes crossed by r, nearest first.
func (s *Scene) Intersect(r geom.Ray) []Hit {
	var hits []Hit
	for _, n := range s.nodes {
		if !n.Pickable {
			continue
		}
		if d, ok := geom.Intersect(n.Bounds(), r); ok {
			hits = append(hits, Hit{Node: n, Distance: d, Point: r.At(d)})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}
