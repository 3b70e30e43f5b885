package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"goban/internal/domain/board"
	errs "goban/internal/errors"
)

func pt(row, col int) *board.Point {
	return &board.Point{Row: row, Col: col}
}

func newNineByNine() *FullGameData {
	return NewGame(GameInfo{BoardSize: 9, Komi: 6.5}, nil, board.Black, nil)
}

func play(t *testing.T, g *FullGameData, parent NodeID, c board.Color, p *board.Point) (*FullGameData, NodeID) {
	t.Helper()
	next, id, err := g.AppendMove(parent, c, p)
	require.NoError(t, err)
	return next, id
}

func TestNewGameRoot(t *testing.T) {
	g := newNineByNine()
	root := g.Root()
	require.NotNil(t, root)
	require.Equal(t, NoNode, root.ParentID)
	require.Zero(t, root.MoveNumber)
	require.True(t, root.Ko.IsEmpty())
	require.Equal(t, 9, root.BoardState.Size())
	require.Equal(t, board.Black, g.InitialPlayer)
}

func TestCreateRootWithHandicap(t *testing.T) {
	stones := board.HandicapPoints(19, 2)
	root := CreateRoot(19, stones, board.White, Properties{"GN": {"teaching"}})

	require.Equal(t, board.Black, root.BoardState.At(stones[0]))
	require.Equal(t, board.Black, root.BoardState.At(stones[1]))
	require.ElementsMatch(t, []string{"pd", "dp"}, root.Properties["AB"])
	require.Equal(t, "W", root.Properties.First("PL"))
	require.Equal(t, "teaching", root.Properties.First("GN"))
}

func TestThreeQuietMoves(t *testing.T) {
	g := newNineByNine()
	g, a := play(t, g, g.RootID, board.Black, pt(2, 2))
	g, b := play(t, g, a, board.White, pt(2, 3))
	g, c := play(t, g, b, board.Black, pt(3, 3))

	require.Len(t, g.Nodes, 4)
	for i, id := range []NodeID{a, b, c} {
		n := g.Nodes[id]
		require.Equal(t, i+1, n.MoveNumber)
		require.Zero(t, n.TotalCapturedByBlack)
		require.Zero(t, n.TotalCapturedByWhite)
		require.Empty(t, n.CapturedThisStep)
	}
	require.Equal(t, []string{"dd"}, g.Nodes[c].Properties["B"])
	require.Equal(t, []NodeID{g.RootID, a, b, c}, g.MainLine())
}

func TestAppendMoveCaptureTotals(t *testing.T) {
	g := newNineByNine()
	g, w := play(t, g, g.RootID, board.White, pt(0, 0))
	g, b1 := play(t, g, w, board.Black, pt(0, 1))
	g, w2 := play(t, g, b1, board.White, pt(8, 8))
	g, b2 := play(t, g, w2, board.Black, pt(1, 0))

	n := g.Nodes[b2]
	require.Equal(t, []board.Point{{Row: 0, Col: 0}}, n.CapturedThisStep)
	require.Equal(t, 1, n.TotalCapturedByBlack)
	require.Zero(t, n.TotalCapturedByWhite)
	require.Equal(t, board.Empty, n.BoardState.At(board.Point{Row: 0, Col: 0}))
}

func TestAppendMoveBecomesMainLine(t *testing.T) {
	g := newNineByNine()
	g, first := play(t, g, g.RootID, board.Black, pt(4, 4))
	g, second := play(t, g, g.RootID, board.Black, pt(2, 2))

	root := g.Root()
	require.True(t, root.IsMainLineNext)
	require.Equal(t, []NodeID{second, first}, root.ChildrenIDs)
}

func TestAppendMoveIsFunctional(t *testing.T) {
	before := newNineByNine()
	after, id := play(t, before, before.RootID, board.Black, pt(4, 4))

	require.Len(t, before.Nodes, 1)
	require.Empty(t, before.Root().ChildrenIDs)
	require.False(t, before.Root().IsMainLineNext)
	require.Len(t, after.Nodes, 2)
	require.Equal(t, board.Empty, before.Root().BoardState.At(board.Point{Row: 4, Col: 4}))
	require.Equal(t, board.Black, after.Nodes[id].BoardState.At(board.Point{Row: 4, Col: 4}))
}

func TestAppendMoveRejectsIllegal(t *testing.T) {
	g := newNineByNine()
	g, id := play(t, g, g.RootID, board.Black, pt(4, 4))

	next, newID, err := g.AppendMove(id, board.White, pt(4, 4))
	require.ErrorIs(t, err, errs.ErrOccupiedOrOutOfBounds)
	require.Equal(t, NoNode, newID)
	require.Same(t, g, next)
	require.Empty(t, g.Nodes[id].ChildrenIDs)

	_, _, err = g.AppendMove(99, board.White, pt(0, 0))
	require.ErrorIs(t, err, errs.ErrNodeNotFound)

	_, _, err = g.AppendMove(id, board.Empty, pt(0, 0))
	require.ErrorIs(t, err, errs.ErrInvalidColor)
}

func TestAppendPass(t *testing.T) {
	g := newNineByNine()
	g, id := play(t, g, g.RootID, board.Black, nil)

	n := g.Nodes[id]
	require.True(t, n.IsPass())
	require.Equal(t, 1, n.MoveNumber)
	require.Equal(t, []string{""}, n.Properties["B"])
	require.Equal(t, board.White, g.ToPlay(id))
}

func TestApplySetupConvertsMoveNode(t *testing.T) {
	g := newNineByNine()
	g, w := play(t, g, g.RootID, board.White, pt(0, 0))
	g, b := play(t, g, w, board.Black, pt(4, 4))

	next, err := g.ApplySetup(b, SetupEdits{AddBlack: []board.Point{{Row: 0, Col: 1}, {Row: 1, Col: 0}}})
	require.NoError(t, err)

	n := next.Nodes[b]
	require.False(t, n.IsMove())
	require.Nil(t, n.Coord)
	require.False(t, n.Properties.Has("B"))
	require.ElementsMatch(t, []string{"ba", "ab"}, n.Properties["AB"])
	require.Equal(t, 1, n.MoveNumber, "setup node inherits the parent's move number")
	require.True(t, n.Ko.IsEmpty())
	// The white corner stone lost its last liberty and was cleared silently.
	require.Equal(t, board.Empty, n.BoardState.At(board.Point{Row: 0, Col: 0}))
	require.Equal(t, board.Empty, n.BoardState.At(board.Point{Row: 4, Col: 4}), "dropped move no longer on the board")
	require.Zero(t, n.TotalCapturedByBlack)

	// The old snapshot still sees the move.
	require.True(t, g.Nodes[b].IsMove())
}

func TestApplySetupClearAndMarkup(t *testing.T) {
	g := newNineByNine()
	g, b := play(t, g, g.RootID, board.Black, pt(4, 4))
	g, w := play(t, g, b, board.White, pt(3, 3))

	next, err := g.ApplySetup(w, SetupEdits{Clear: []board.Point{{Row: 4, Col: 4}}})
	require.NoError(t, err)
	n := next.Nodes[w]
	require.Equal(t, []string{"ee"}, n.Properties["AE"])
	require.Equal(t, board.Empty, n.BoardState.At(board.Point{Row: 4, Col: 4}))

	marked, err := next.ApplySetup(b, SetupEdits{SetProperties: Properties{"TR": {"aa"}, "C": {"nice"}}})
	require.NoError(t, err)
	m := marked.Nodes[b]
	require.True(t, m.IsMove(), "markup-only edits keep the move")
	require.Equal(t, "nice", m.Comment)
	require.Equal(t, []Mark{{Kind: "TR", Point: board.Point{Row: 0, Col: 0}}}, DecodeMarkup(m.Properties, 9))

	unmarked, err := marked.ApplySetup(b, SetupEdits{DeleteProperties: []string{"TR", "C"}})
	require.NoError(t, err)
	require.False(t, unmarked.Nodes[b].Properties.Has("TR"))
	require.Empty(t, unmarked.Nodes[b].Comment)
}

func TestApplySetupErrors(t *testing.T) {
	g := newNineByNine()
	_, err := g.ApplySetup(42, SetupEdits{})
	require.ErrorIs(t, err, errs.ErrNodeNotFound)

	_, err = g.ApplySetup(g.RootID, SetupEdits{AddWhite: []board.Point{{Row: 9, Col: 0}}})
	require.ErrorIs(t, err, errs.ErrInvalidCoordinate)
}

func TestApplySetupRejectsBadPropertyKeys(t *testing.T) {
	g := newNineByNine()
	g, b := play(t, g, g.RootID, board.Black, pt(2, 2))
	g, _ = play(t, g, b, board.White, pt(3, 3))

	for _, key := range []string{"X)(;B", "tr", "", "T R", "C]"} {
		next, err := g.ApplySetup(b, SetupEdits{SetProperties: Properties{key: {"aa"}}})
		require.ErrorIs(t, err, errs.ErrInvalidProperty, key)
		require.Same(t, g, next)

		_, err = g.ApplySetup(b, SetupEdits{DeleteProperties: []string{key}})
		require.ErrorIs(t, err, errs.ErrInvalidProperty, key)
	}
	require.NotContains(t, g.Nodes[b].Properties, "tr")

	_, err := g.ApplySetup(b, SetupEdits{SetProperties: Properties{"TR": {"aa"}, "ZZ": {"x"}}})
	require.NoError(t, err)
}

func TestApplySetupDoesNotCascade(t *testing.T) {
	g := newNineByNine()
	g, b := play(t, g, g.RootID, board.Black, pt(4, 4))
	g, w := play(t, g, b, board.White, pt(3, 3))

	next, err := g.ApplySetup(g.RootID, SetupEdits{AddWhite: []board.Point{{Row: 0, Col: 0}}})
	require.NoError(t, err)
	require.Equal(t, board.White, next.Root().BoardState.At(board.Point{Row: 0, Col: 0}))
	require.Equal(t, board.Empty, next.Nodes[w].BoardState.At(board.Point{Row: 0, Col: 0}))
}
