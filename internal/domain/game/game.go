package game

import (
	"time"

	"goban/internal/domain/board"
)

const (
	StatusActive   = "active"
	StatusImported = "imported"
)

// Record is the stored summary of a game session. The SGF text is the
// source of truth for the tree; the rest is kept for listing.
type Record struct {
	GameKey   string    `json:"game_key" bson:"game_key"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	Status    string    `json:"status" bson:"status"`
	Info      GameInfo  `json:"info" bson:"info"`
	NodeCount int       `json:"node_count" bson:"node_count"`
	MoveCount int       `json:"move_count" bson:"move_count"`
	Sgf       string    `json:"-" bson:"sgf"`
}

// CreateGameRequest starts a game. Zero BoardSize and nil Komi take the
// configured defaults.
type CreateGameRequest struct {
	BoardSize   int      `json:"board_size,omitempty"`
	Komi        *float64 `json:"komi,omitempty"`
	Handicap    int      `json:"handicap,omitempty"`
	Ruleset     string   `json:"ruleset,omitempty"`
	PlayerBlack string   `json:"player_black,omitempty"`
	PlayerWhite string   `json:"player_white,omitempty"`
	GameName    string   `json:"game_name,omitempty"`
}

// InfoPatch updates game metadata; nil fields are left alone.
type InfoPatch struct {
	Komi        *float64 `json:"komi,omitempty"`
	Ruleset     *string  `json:"ruleset,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Result      *string  `json:"result,omitempty"`
	GameName    *string  `json:"game_name,omitempty"`
	PlayerBlack *string  `json:"player_black,omitempty"`
	PlayerWhite *string  `json:"player_white,omitempty"`
	RankBlack   *string  `json:"rank_black,omitempty"`
	RankWhite   *string  `json:"rank_white,omitempty"`
	Comment     *string  `json:"comment,omitempty"`
}

// NodeView is the part of a node a client needs to draw it.
type NodeView struct {
	ID                   NodeID        `json:"id"`
	ParentID             NodeID        `json:"parent_id"`
	MoveNumber           int           `json:"move_number"`
	Player               board.Color   `json:"player,omitempty"`
	Coordinates          string        `json:"coordinates,omitempty"`
	IsPass               bool          `json:"is_pass,omitempty"`
	Board                board.Board   `json:"board"`
	Captured             []board.Point `json:"captured,omitempty"`
	TotalCapturedByBlack int           `json:"total_captured_by_black"`
	TotalCapturedByWhite int           `json:"total_captured_by_white"`
	KoPoint              *board.Point  `json:"ko_point,omitempty"`
	Comment              string        `json:"comment,omitempty"`
	Markup               []Mark        `json:"markup,omitempty"`
}

// Variation is one child of the current node.
type Variation struct {
	ID          NodeID      `json:"id"`
	Player      board.Color `json:"player,omitempty"`
	Coordinates string      `json:"coordinates,omitempty"`
	IsMainLine  bool        `json:"is_main_line"`
}

// GameStateResponse is what clients receive after every request and on the
// websocket.
type GameStateResponse struct {
	GameKey     string       `json:"game_key"`
	Info        GameInfo     `json:"info"`
	Current     NodeView     `json:"current"`
	ToPlay      board.Color  `json:"to_play"`
	Path        []NodeID     `json:"path"`
	Variations  []Variation  `json:"variations"`
	NodeCount   int          `json:"node_count"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// ViewNode converts n for clients.
func ViewNode(n *GameTreeNode) NodeView {
	v := NodeView{
		ID:                   n.ID,
		ParentID:             n.ParentID,
		MoveNumber:           n.MoveNumber,
		Player:               n.Player,
		IsPass:               n.IsPass(),
		Board:                n.BoardState,
		Captured:             n.CapturedThisStep,
		TotalCapturedByBlack: n.TotalCapturedByBlack,
		TotalCapturedByWhite: n.TotalCapturedByWhite,
		KoPoint:              n.Ko.KoPoint,
		Comment:              n.Comment,
		Markup:               DecodeMarkup(n.Properties, n.BoardState.Size()),
	}
	if n.Coord != nil {
		v.Coordinates = EncodeCoord(*n.Coord)
	}
	return v
}

// ToPlay is the color expected at node id: the opponent of the last mover,
// a PL override on the node, or the game's initial player.
func (g *FullGameData) ToPlay(id NodeID) board.Color {
	for n, ok := g.Node(id); ok; n, ok = g.Node(n.ParentID) {
		if c, ok := board.ParseColor(n.Properties.First("PL")); ok {
			return c
		}
		if n.IsMove() {
			return n.Player.Opponent()
		}
	}
	return g.InitialPlayer
}

// MoveCount counts move nodes in the whole tree.
func (g *FullGameData) MoveCount() int {
	count := 0
	for _, n := range g.Nodes {
		if n.IsMove() {
			count++
		}
	}
	return count
}
