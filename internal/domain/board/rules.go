package board

import (
	errs "goban/internal/errors"
)

// KoState is the single point the next player may not retake, together with
// the position that retaking it would recreate. The zero value means no ko.
type KoState struct {
	KoPoint     *Point `json:"ko_point,omitempty"`
	BoardBefore *Board `json:"-"`
}

func (k KoState) IsEmpty() bool {
	return k.KoPoint == nil
}

// MoveResult is the outcome of a legal move.
type MoveResult struct {
	Board    Board
	Captured []Point
	Ko       KoState
}

// FindGroupAndLiberties flood-fills the 4-connected group containing p and
// collects its liberties. An empty point yields two empty sets.
func FindGroupAndLiberties(b Board, p Point) (group PointSet, liberties PointSet) {
	group = make(PointSet)
	liberties = make(PointSet)

	color := b.At(p)
	if color == Empty {
		return group, liberties
	}

	stack := []Point{p}
	group.Add(p)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range cur.neighbors() {
			if !b.InBounds(n) {
				continue
			}
			switch b.At(n) {
			case Empty:
				liberties.Add(n)
			case color:
				if !group.Has(n) {
					group.Add(n)
					stack = append(stack, n)
				}
			}
		}
	}
	return group, liberties
}

// ApplyMove plays player at p. Illegal moves return the untouched input
// board in the result together with one of ErrOccupiedOrOutOfBounds,
// ErrKoViolation or ErrSuicideMove.
func ApplyMove(b Board, player Color, p Point, ko KoState) (MoveResult, error) {
	unchanged := MoveResult{Board: b, Ko: ko}

	if player == Empty || !b.InBounds(p) || b.At(p) != Empty {
		return unchanged, errs.ErrOccupiedOrOutOfBounds
	}
	opponent := player.Opponent()

	if ko.KoPoint != nil && *ko.KoPoint == p && ko.BoardBefore != nil {
		trial := b.Clone()
		trial.Set(p, player)
		captured := removeDeadNeighbors(&trial, p, opponent)
		if len(captured) == 1 && b.At(captured[0]) == opponent && BoardsEqual(trial, *ko.BoardBefore) {
			return unchanged, errs.ErrKoViolation
		}
	}

	next := b.Clone()
	next.Set(p, player)
	captured := removeDeadNeighbors(&next, p, opponent)

	if len(captured) == 0 {
		if _, libs := FindGroupAndLiberties(next, p); libs.Len() == 0 {
			return unchanged, errs.ErrSuicideMove
		}
	}

	return MoveResult{
		Board:    next,
		Captured: captured,
		Ko:       deriveKo(b, next, player, p, captured),
	}, nil
}

// removeDeadNeighbors clears every group of color adjacent to p that has no
// liberties left and returns the removed points, each once.
func removeDeadNeighbors(b *Board, p Point, color Color) []Point {
	var captured []Point
	for _, n := range p.neighbors() {
		if b.At(n) != color {
			continue
		}
		group, libs := FindGroupAndLiberties(*b, n)
		if libs.Len() > 0 {
			continue
		}
		for stone := range group {
			b.Set(stone, Empty)
			captured = append(captured, stone)
		}
	}
	return captured
}

// deriveKo sets a ko point only when a single stone was captured and the
// opponent retaking it at once would capture exactly the played stone and
// restore the previous position.
func deriveKo(before, after Board, player Color, p Point, captured []Point) KoState {
	if len(captured) != 1 {
		return KoState{}
	}
	koPoint := captured[0]

	retake := after.Clone()
	retake.Set(koPoint, player.Opponent())
	group, libs := FindGroupAndLiberties(retake, p)
	if libs.Len() != 0 {
		return KoState{}
	}
	for stone := range group {
		retake.Set(stone, Empty)
	}
	if !BoardsEqual(retake, before) {
		return KoState{}
	}

	snapshot := before.Clone()
	return KoState{KoPoint: &koPoint, BoardBefore: &snapshot}
}
