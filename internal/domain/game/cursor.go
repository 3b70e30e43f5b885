package game

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Cursor is the explicit "where am I" of a viewer: the current node and the
// active path, i.e. the line from the root most recently walked. The path
// may run past the current node, which is what lets Next retrace a
// variation after stepping back.
type Cursor struct {
	CurrentID NodeID   `json:"current_id"`
	Path      []NodeID `json:"path"`
}

// NewCursor starts at the root.
func NewCursor(g *FullGameData) Cursor {
	return Cursor{CurrentID: g.RootID, Path: []NodeID{g.RootID}}
}

type Direction int

const (
	First Direction = iota
	Prev
	Next
	Last
	ToNode
	ToMoveNumber
)

var directionNames = map[Direction]string{
	First:        "first",
	Prev:         "prev",
	Next:         "next",
	Last:         "last",
	ToNode:       "node",
	ToMoveNumber: "move",
}

func (d Direction) String() string {
	return directionNames[d]
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if strings.EqualFold(name, s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Navigation is one navigation request. Target is read for ToNode,
// MoveNumber for ToMoveNumber.
type Navigation struct {
	Direction  Direction
	Target     NodeID
	MoveNumber int
}

// ActivePath returns the ids from the root down to id, or nil when id is
// not in the tree.
func ActivePath(g *FullGameData, id NodeID) []NodeID {
	var path []NodeID
	for n, ok := g.Node(id); ok; n, ok = g.Node(n.ParentID) {
		path = append(path, n.ID)
	}
	slices.Reverse(path)
	return path
}

// Navigate resolves nav from c. Requests that lead nowhere (prev at the
// root, an unknown id, a missing move number) return c unchanged.
func Navigate(g *FullGameData, c Cursor, nav Navigation) Cursor {
	current, ok := g.Node(c.CurrentID)
	if !ok {
		return NewCursor(g)
	}

	target := current.ID
	switch nav.Direction {
	case First:
		target = g.RootID
	case Prev:
		if current.ParentID != NoNode {
			target = current.ParentID
		}
	case Next:
		if child, ok := nextChild(c, current); ok {
			target = child
		}
	case Last:
		target = lastNode(g, c, current)
	case ToNode:
		if _, ok := g.Node(nav.Target); ok {
			target = nav.Target
		}
	case ToMoveNumber:
		if id, ok := findMoveNumber(g, c, nav.MoveNumber); ok {
			target = id
		}
	}
	return moveTo(g, c, target)
}

func moveTo(g *FullGameData, c Cursor, target NodeID) Cursor {
	if slices.Contains(c.Path, target) {
		return Cursor{CurrentID: target, Path: slices.Clone(c.Path)}
	}
	return Cursor{CurrentID: target, Path: ActivePath(g, target)}
}

// nextChild prefers the child the active path went through, then the
// first child.
func nextChild(c Cursor, n *GameTreeNode) (NodeID, bool) {
	if len(n.ChildrenIDs) == 0 {
		return NoNode, false
	}
	if i := slices.Index(c.Path, n.ID); i >= 0 && i+1 < len(c.Path) {
		if onPath := c.Path[i+1]; slices.Contains(n.ChildrenIDs, onPath) {
			return onPath, true
		}
	}
	return n.ChildrenIDs[0], true
}

func lastNode(g *FullGameData, c Cursor, n *GameTreeNode) NodeID {
	for {
		id, ok := nextChild(c, n)
		if !ok {
			return n.ID
		}
		n = g.Nodes[id]
	}
}

// findMoveNumber searches the active path first, then every node with that
// move number, lowest id first.
func findMoveNumber(g *FullGameData, c Cursor, number int) (NodeID, bool) {
	for _, id := range c.Path {
		if n, ok := g.Node(id); ok && n.MoveNumber == number {
			return id, true
		}
	}

	var candidates []NodeID
	for id, n := range g.Nodes {
		if n.MoveNumber == number {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return NoNode, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	for _, id := range candidates {
		if slices.Contains(c.Path, id) {
			return id, true
		}
	}
	return candidates[0], true
}
