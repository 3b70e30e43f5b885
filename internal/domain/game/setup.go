package game

import (
	"fmt"

	"goban/internal/domain/board"
	errs "goban/internal/errors"
)

// SetupEdits describes an in-place edit of one node: stones added or
// cleared (AB/AW/AE) and raw property changes such as markup or comments.
type SetupEdits struct {
	AddBlack []board.Point `json:"add_black,omitempty"`
	AddWhite []board.Point `json:"add_white,omitempty"`
	Clear    []board.Point `json:"clear,omitempty"`

	SetProperties    Properties `json:"set_properties,omitempty"`
	DeleteProperties []string   `json:"delete_properties,omitempty"`
}

func (e SetupEdits) touchesStones() bool {
	return len(e.AddBlack) > 0 || len(e.AddWhite) > 0 || len(e.Clear) > 0
}

// setupKeys are handled by the stone edits and cannot be set directly.
var setupKeys = map[string]bool{"AB": true, "AW": true, "AE": true, "B": true, "W": true}

// ValidPropertyKey reports whether key is an FF[4] identifier: one or more
// uppercase letters.
func ValidPropertyKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 'A' || key[i] > 'Z' {
			return false
		}
	}
	return true
}

// ApplySetup edits node id in place. Stone edits turn the node into a setup
// node: its board is rebuilt from the parent's board plus its AE/AB/AW
// properties, groups left without liberties vanish silently, the ko is
// cleared and any move marker is dropped. Descendants are not recomputed.
func (g *FullGameData) ApplySetup(id NodeID, edits SetupEdits) (*FullGameData, error) {
	current, ok := g.Node(id)
	if !ok {
		return g, errs.ErrNodeNotFound
	}
	for _, list := range [][]board.Point{edits.AddBlack, edits.AddWhite, edits.Clear} {
		for _, p := range list {
			if !current.BoardState.InBounds(p) {
				return g, errs.ErrInvalidCoordinate
			}
		}
	}
	for key := range edits.SetProperties {
		if !ValidPropertyKey(key) {
			return g, fmt.Errorf("%w: %q", errs.ErrInvalidProperty, key)
		}
	}
	for _, key := range edits.DeleteProperties {
		if !ValidPropertyKey(key) {
			return g, fmt.Errorf("%w: %q", errs.ErrInvalidProperty, key)
		}
	}
	node := current.clone()

	for _, key := range edits.DeleteProperties {
		if !setupKeys[key] {
			delete(node.Properties, key)
		}
	}
	for key, values := range edits.SetProperties {
		if !setupKeys[key] {
			node.Properties.Set(key, values...)
		}
	}
	node.Comment = node.Properties.First("C")

	if edits.touchesStones() {
		g.resetupNode(node, edits)
	}

	next := g.clone()
	next.Nodes[node.ID] = node
	return next, nil
}

func (g *FullGameData) resetupNode(node *GameTreeNode, edits SetupEdits) {
	size := node.BoardState.Size()
	base := board.CreateEmptyBoard(size)
	moveNumber, byBlack, byWhite := 0, 0, 0
	if parent, ok := g.Node(node.ParentID); ok {
		base = parent.BoardState
		moveNumber = parent.MoveNumber
		byBlack, byWhite = parent.TotalCapturedByBlack, parent.TotalCapturedByWhite
	}

	black := pointSet(DecodePointList(node.Properties["AB"], size))
	white := pointSet(DecodePointList(node.Properties["AW"], size))
	erase := pointSet(DecodePointList(node.Properties["AE"], size))

	for _, p := range edits.Clear {
		delete(black, p)
		delete(white, p)
		if base.At(p) != board.Empty {
			erase.Add(p)
		}
	}
	for _, p := range edits.AddBlack {
		delete(white, p)
		delete(erase, p)
		black.Add(p)
	}
	for _, p := range edits.AddWhite {
		delete(black, p)
		delete(erase, p)
		white.Add(p)
	}

	writePointList(node.Properties, "AB", black)
	writePointList(node.Properties, "AW", white)
	writePointList(node.Properties, "AE", erase)
	node.Properties.Delete("B", "W")

	node.BoardState = board.PlaceSetupStones(base, board.Setup{
		Clear: erase.Sorted(),
		Black: black.Sorted(),
		White: white.Sorted(),
	})
	node.Player = board.Empty
	node.Coord = nil
	node.CapturedThisStep = nil
	node.Ko = board.KoState{}
	node.MoveNumber = moveNumber
	node.TotalCapturedByBlack = byBlack
	node.TotalCapturedByWhite = byWhite
}

func pointSet(points []board.Point) board.PointSet {
	s := make(board.PointSet, len(points))
	for _, p := range points {
		s.Add(p)
	}
	return s
}

func writePointList(props Properties, key string, points board.PointSet) {
	if points.Len() == 0 {
		delete(props, key)
		return
	}
	values := make([]string, 0, points.Len())
	for _, p := range points.Sorted() {
		values = append(values, EncodeCoord(p))
	}
	props[key] = values
}
