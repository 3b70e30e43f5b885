package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	errs "goban/internal/errors"
)

func boardWith(size int, black, white []Point) Board {
	b := CreateEmptyBoard(size)
	for _, p := range black {
		b.Set(p, Black)
	}
	for _, p := range white {
		b.Set(p, White)
	}
	return b
}

// koBoard has a white stone at (1,1) whose last liberty is (1,2), and a
// white wall around (1,2) so that Black capturing there starts a ko.
func koBoard() Board {
	return boardWith(9,
		[]Point{{1, 0}, {0, 1}, {2, 1}},
		[]Point{{1, 1}, {0, 2}, {2, 2}, {1, 3}},
	)
}

func TestFindGroupAndLiberties(t *testing.T) {
	b := boardWith(9, []Point{{4, 4}, {4, 5}, {5, 4}}, []Point{{3, 4}})

	group, libs := FindGroupAndLiberties(b, Point{4, 4})
	require.Equal(t, 3, group.Len())
	require.True(t, group.Has(Point{4, 5}))
	require.True(t, group.Has(Point{5, 4}))
	require.False(t, libs.Has(Point{3, 4}), "occupied point is not a liberty")
	// (5,5) borders two stones but counts once.
	require.Equal(t, 6, libs.Len())
}

func TestFindGroupAndLibertiesEmptyPoint(t *testing.T) {
	group, libs := FindGroupAndLiberties(CreateEmptyBoard(9), Point{0, 0})
	require.Zero(t, group.Len())
	require.Zero(t, libs.Len())
}

func TestApplyMoveOccupiedOrOutOfBounds(t *testing.T) {
	b := boardWith(9, []Point{{2, 2}}, nil)

	res, err := ApplyMove(b, White, Point{2, 2}, KoState{})
	require.ErrorIs(t, err, errs.ErrOccupiedOrOutOfBounds)
	require.True(t, BoardsEqual(res.Board, b))

	_, err = ApplyMove(b, White, Point{9, 0}, KoState{})
	require.ErrorIs(t, err, errs.ErrOccupiedOrOutOfBounds)

	_, err = ApplyMove(b, White, Point{-1, 3}, KoState{})
	require.ErrorIs(t, err, errs.ErrOccupiedOrOutOfBounds)
}

func TestApplyMoveCapturesCornerStone(t *testing.T) {
	b := boardWith(9, []Point{{0, 1}}, []Point{{0, 0}})

	res, err := ApplyMove(b, Black, Point{1, 0}, KoState{})
	require.NoError(t, err)
	require.Equal(t, []Point{{0, 0}}, res.Captured)
	require.Equal(t, Empty, res.Board.At(Point{0, 0}))
	require.Equal(t, Black, res.Board.At(Point{1, 0}))
	require.True(t, res.Ko.IsEmpty(), "black stone keeps other liberties, no ko")
	require.Equal(t, White, b.At(Point{0, 0}), "input board must not change")
}

func TestApplyMoveCapturesWholeGroup(t *testing.T) {
	// White group of three on the top edge, Black fills its last liberty.
	b := boardWith(9,
		[]Point{{0, 0}, {1, 1}, {1, 2}, {1, 3}},
		[]Point{{0, 1}, {0, 2}, {0, 3}},
	)

	res, err := ApplyMove(b, Black, Point{0, 4}, KoState{})
	require.NoError(t, err)
	require.Len(t, res.Captured, 3)
	require.ElementsMatch(t, []Point{{0, 1}, {0, 2}, {0, 3}}, res.Captured)
	require.Equal(t, 0, res.Board.Count(White))
	require.True(t, res.Ko.IsEmpty())
}

func TestApplyMoveCapturesTwoGroupsOnce(t *testing.T) {
	// Two separate white stones share the last liberty (0,1).
	b := boardWith(9,
		[]Point{{1, 0}, {1, 2}, {0, 3}},
		[]Point{{0, 0}, {0, 2}},
	)

	res, err := ApplyMove(b, Black, Point{0, 1}, KoState{})
	require.NoError(t, err)
	require.ElementsMatch(t, []Point{{0, 0}, {0, 2}}, res.Captured)
	require.True(t, res.Ko.IsEmpty(), "multi-stone captures never set a ko")
}

func TestApplyMoveSuicide(t *testing.T) {
	b := boardWith(9, []Point{{0, 1}, {1, 0}}, nil)

	res, err := ApplyMove(b, White, Point{0, 0}, KoState{})
	require.ErrorIs(t, err, errs.ErrSuicideMove)
	require.True(t, BoardsEqual(res.Board, b))
	require.Equal(t, Empty, b.At(Point{0, 0}))
}

func TestApplyMoveCaptureIsNotSuicide(t *testing.T) {
	// The black stone at (0,0) has no liberty of its own but captures.
	b := boardWith(9, []Point{{1, 1}, {0, 2}}, []Point{{0, 1}, {1, 0}, {2, 0}})
	b.Set(Point{2, 1}, Black)
	b.Set(Point{3, 0}, Black)

	res, err := ApplyMove(b, Black, Point{0, 0}, KoState{})
	require.NoError(t, err)
	require.Contains(t, res.Captured, Point{0, 1})
}

func TestKoEnforcement(t *testing.T) {
	b0 := koBoard()

	b1, err := ApplyMove(b0, Black, Point{1, 2}, KoState{})
	require.NoError(t, err)
	require.Equal(t, []Point{{1, 1}}, b1.Captured)
	require.NotNil(t, b1.Ko.KoPoint)
	require.Equal(t, Point{1, 1}, *b1.Ko.KoPoint)
	require.True(t, BoardsEqual(*b1.Ko.BoardBefore, b0))

	res, err := ApplyMove(b1.Board, White, Point{1, 1}, b1.Ko)
	require.True(t, errors.Is(err, errs.ErrKoViolation))
	require.True(t, BoardsEqual(res.Board, b1.Board))

	// White plays elsewhere; the restriction only lasted one ply.
	b2, err := ApplyMove(b1.Board, White, Point{8, 8}, b1.Ko)
	require.NoError(t, err)
	require.True(t, b2.Ko.IsEmpty())

	b3, err := ApplyMove(b2.Board, Black, Point{8, 0}, b2.Ko)
	require.NoError(t, err)

	retake, err := ApplyMove(b3.Board, White, Point{1, 1}, b3.Ko)
	require.NoError(t, err)
	require.Equal(t, []Point{{1, 2}}, retake.Captured)
	require.NotNil(t, retake.Ko.KoPoint)
	require.Equal(t, Point{1, 2}, *retake.Ko.KoPoint)
}

func TestKoFillIsLegal(t *testing.T) {
	b1, err := ApplyMove(koBoard(), Black, Point{1, 2}, KoState{})
	require.NoError(t, err)

	b2, err := ApplyMove(b1.Board, White, Point{8, 8}, b1.Ko)
	require.NoError(t, err)

	b3, err := ApplyMove(b2.Board, Black, Point{1, 1}, b2.Ko)
	require.NoError(t, err)
	require.Empty(t, b3.Captured)
	require.Equal(t, Black, b3.Board.At(Point{1, 1}))
}

func TestBoardsEqual(t *testing.T) {
	a := boardWith(9, []Point{{0, 0}}, nil)
	b := a.Clone()
	require.True(t, BoardsEqual(a, b))

	b.Set(Point{0, 0}, White)
	require.False(t, BoardsEqual(a, b))
	require.Equal(t, Black, a.At(Point{0, 0}), "clone must not alias")

	require.False(t, BoardsEqual(CreateEmptyBoard(9), CreateEmptyBoard(13)))
}

func TestPlaceSetupStonesClearsDeadGroups(t *testing.T) {
	b := boardWith(9, []Point{{0, 1}}, []Point{{0, 0}})

	next := PlaceSetupStones(b, Setup{Black: []Point{{1, 0}}})
	require.Equal(t, Empty, next.At(Point{0, 0}))
	require.Equal(t, Black, next.At(Point{1, 0}))

	// A stone placed into a dead spot disappears without error.
	self := PlaceSetupStones(boardWith(9, []Point{{0, 1}, {1, 0}}, nil), Setup{White: []Point{{0, 0}}})
	require.Equal(t, Empty, self.At(Point{0, 0}))
}

func TestWriteSetupBypassesCaptures(t *testing.T) {
	b := WriteSetup(boardWith(9, []Point{{0, 1}}, nil), Setup{
		White: []Point{{0, 0}},
		Black: []Point{{1, 0}},
		Clear: []Point{{5, 5}},
	})
	require.Equal(t, White, b.At(Point{0, 0}))
	require.Equal(t, Black, b.At(Point{1, 0}))
}

func TestHandicapPoints(t *testing.T) {
	require.Equal(t, []Point{{3, 15}, {15, 3}}, HandicapPoints(19, 2))
	require.Len(t, HandicapPoints(19, 9), 9)
	require.Contains(t, HandicapPoints(19, 5), Point{9, 9})
	require.NotContains(t, HandicapPoints(19, 6), Point{9, 9})
	require.Contains(t, HandicapPoints(13, 4), Point{9, 9})
	require.Contains(t, HandicapPoints(9, 3), Point{6, 6})
	require.Len(t, HandicapPoints(19, 12), MaxHandicap)
	require.Nil(t, HandicapPoints(19, 1))
	require.Nil(t, HandicapPoints(15, 4))
}
