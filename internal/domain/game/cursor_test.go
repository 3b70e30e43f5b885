package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"goban/internal/domain/board"
)

// branchy builds root -> a -> b -> c on the main line and root -> x -> y as
// a variation (x was played first, then a demoted it).
func branchy(t *testing.T) (g *FullGameData, a, b, c, x, y NodeID) {
	g = newNineByNine()
	g, x = play(t, g, g.RootID, board.Black, pt(2, 2))
	g, y = play(t, g, x, board.White, pt(6, 6))
	g, a = play(t, g, g.RootID, board.Black, pt(4, 4))
	g, b = play(t, g, a, board.White, pt(3, 3))
	g, c = play(t, g, b, board.Black, pt(5, 5))
	return
}

func TestActivePath(t *testing.T) {
	g, a, b, c, _, _ := branchy(t)
	require.Equal(t, []NodeID{g.RootID, a, b, c}, ActivePath(g, c))
	require.Equal(t, []NodeID{g.RootID}, ActivePath(g, g.RootID))
	require.Nil(t, ActivePath(g, 1000))
}

func TestNavigateBasics(t *testing.T) {
	g, a, b, c, _, _ := branchy(t)
	cur := NewCursor(g)

	cur = Navigate(g, cur, Navigation{Direction: Next})
	require.Equal(t, a, cur.CurrentID, "next from root takes the main line")

	cur = Navigate(g, cur, Navigation{Direction: Last})
	require.Equal(t, c, cur.CurrentID)

	cur = Navigate(g, cur, Navigation{Direction: Prev})
	require.Equal(t, b, cur.CurrentID)

	cur = Navigate(g, cur, Navigation{Direction: First})
	require.Equal(t, g.RootID, cur.CurrentID)

	same := Navigate(g, cur, Navigation{Direction: Prev})
	require.Equal(t, g.RootID, same.CurrentID, "prev at the root stays put")
}

func TestNavigateNextFollowsActivePath(t *testing.T) {
	g, _, _, _, x, y := branchy(t)
	cur := Navigate(g, NewCursor(g), Navigation{Direction: ToNode, Target: y})
	require.Equal(t, []NodeID{g.RootID, x, y}, cur.Path)

	cur = Navigate(g, cur, Navigation{Direction: First})
	require.Equal(t, []NodeID{g.RootID, x, y}, cur.Path, "path is remembered past the cursor")

	cur = Navigate(g, cur, Navigation{Direction: Next})
	require.Equal(t, x, cur.CurrentID, "next retraces the variation instead of the main line")

	cur = Navigate(g, cur, Navigation{Direction: First})
	cur = Navigate(g, cur, Navigation{Direction: Last})
	require.Equal(t, y, cur.CurrentID)
}

func TestNavigateByMoveNumber(t *testing.T) {
	g, a, b, _, x, y := branchy(t)

	cur := Navigate(g, NewCursor(g), Navigation{Direction: ToNode, Target: y})
	cur = Navigate(g, cur, Navigation{Direction: ToMoveNumber, MoveNumber: 1})
	require.Equal(t, x, cur.CurrentID, "active path wins")

	cur = Navigate(g, NewCursor(g), Navigation{Direction: ToMoveNumber, MoveNumber: 2})
	// Both y and b are move 2 and neither is on the path; the lowest id wins.
	require.Equal(t, y, cur.CurrentID)

	cur = Navigate(g, Navigate(g, NewCursor(g), Navigation{Direction: Last}), Navigation{Direction: ToMoveNumber, MoveNumber: 2})
	require.Equal(t, b, cur.CurrentID)

	stay := Navigate(g, cur, Navigation{Direction: ToMoveNumber, MoveNumber: 40})
	require.Equal(t, b, stay.CurrentID)

	require.Equal(t, a, Navigate(g, NewCursor(g), Navigation{Direction: ToNode, Target: a}).CurrentID)
	require.Equal(t, g.RootID, Navigate(g, NewCursor(g), Navigation{Direction: ToNode, Target: 999}).CurrentID)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Last")
	require.NoError(t, err)
	require.Equal(t, Last, d)

	_, err = ParseDirection("sideways")
	require.Error(t, err)
}

func TestToPlay(t *testing.T) {
	g := NewGame(GameInfo{BoardSize: 19}, board.HandicapPoints(19, 2), board.White, nil)
	require.Equal(t, board.White, g.ToPlay(g.RootID))

	g, w := play(t, g, g.RootID, board.White, pt(3, 3))
	require.Equal(t, board.Black, g.ToPlay(w))
}
