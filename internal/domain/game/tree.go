package game

import (
	"fmt"

	"goban/internal/domain/board"
	errs "goban/internal/errors"
)

// NodeID identifies a node for the lifetime of its tree. Ids start at 1.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = 0

// GameTreeNode is one position in the game history. BoardState and the
// other derived fields are computed once from the parent through the rules
// engine and are never edited on their own.
type GameTreeNode struct {
	ID             NodeID     `json:"id"`
	ParentID       NodeID     `json:"parent_id"`
	ChildrenIDs    []NodeID   `json:"children_ids"`
	Properties     Properties `json:"properties"`
	IsMainLineNext bool       `json:"is_main_line_next"`

	// Player is Empty unless the node is a move. A nil Coord on a move is a pass.
	Player     board.Color  `json:"player,omitempty"`
	Coord      *board.Point `json:"coord,omitempty"`
	MoveNumber int          `json:"move_number"`

	BoardState           board.Board   `json:"board"`
	CapturedThisStep     []board.Point `json:"captured_this_step,omitempty"`
	TotalCapturedByBlack int           `json:"total_captured_by_black"`
	TotalCapturedByWhite int           `json:"total_captured_by_white"`
	Ko                   board.KoState `json:"ko"`

	Comment string `json:"comment,omitempty"`
}

func (n *GameTreeNode) IsMove() bool {
	return n.Player != board.Empty
}

func (n *GameTreeNode) IsPass() bool {
	return n.IsMove() && n.Coord == nil
}

func (n *GameTreeNode) clone() *GameTreeNode {
	c := *n
	c.ChildrenIDs = append([]NodeID(nil), n.ChildrenIDs...)
	c.Properties = n.Properties.Clone()
	c.CapturedThisStep = append([]board.Point(nil), n.CapturedThisStep...)
	return &c
}

// GameInfo is the game-level metadata written to the SGF root.
type GameInfo struct {
	BoardSize   int     `json:"board_size" bson:"board_size"`
	Komi        float64 `json:"komi" bson:"komi"`
	Handicap    int     `json:"handicap" bson:"handicap"`
	Ruleset     string  `json:"ruleset,omitempty" bson:"ruleset,omitempty"`
	Date        string  `json:"date,omitempty" bson:"date,omitempty"`
	Result      string  `json:"result,omitempty" bson:"result,omitempty"`
	GameName    string  `json:"game_name,omitempty" bson:"game_name,omitempty"`
	PlayerBlack string  `json:"player_black,omitempty" bson:"player_black,omitempty"`
	PlayerWhite string  `json:"player_white,omitempty" bson:"player_white,omitempty"`
	RankBlack   string  `json:"rank_black,omitempty" bson:"rank_black,omitempty"`
	RankWhite   string  `json:"rank_white,omitempty" bson:"rank_white,omitempty"`
	Comment     string  `json:"comment,omitempty" bson:"comment,omitempty"`
}

// Diagnostic is a non-fatal problem found while resolving a loaded game.
type Diagnostic struct {
	NodeID  NodeID `json:"node_id"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("node %d: %s", d.NodeID, d.Message)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// FullGameData is the whole game: metadata, the flat node map and the root.
// Update methods return a new value and leave the receiver as it was, so a
// caller holding an older *FullGameData keeps a consistent snapshot.
type FullGameData struct {
	Info           GameInfo                 `json:"info"`
	RootProperties Properties               `json:"root_properties"`
	RootID         NodeID                   `json:"root_id"`
	Nodes          map[NodeID]*GameTreeNode `json:"nodes"`
	InitialPlayer  board.Color              `json:"initial_player"`
	Diagnostics    []Diagnostic             `json:"diagnostics,omitempty"`

	lastID NodeID
}

// NewTree returns an aggregate with no nodes. Builders add nodes with
// NewNodeID and must set RootID.
func NewTree(info GameInfo, rootProps Properties, initialPlayer board.Color) *FullGameData {
	return &FullGameData{
		Info:           info,
		RootProperties: rootProps.Clone(),
		Nodes:          make(map[NodeID]*GameTreeNode),
		InitialPlayer:  initialPlayer,
	}
}

// NewNodeID reserves the next unused id.
func (g *FullGameData) NewNodeID() NodeID {
	for {
		g.lastID++
		if _, taken := g.Nodes[g.lastID]; !taken {
			return g.lastID
		}
	}
}

// CreateRoot builds the seed node: move number 0, an empty board with the
// handicap stones placed, no ko.
func CreateRoot(boardSize int, handicapStones []board.Point, initialPlayer board.Color, rootProps Properties) *GameTreeNode {
	props := rootProps.Clone()
	b := board.CreateEmptyBoard(boardSize)
	for _, p := range handicapStones {
		if b.InBounds(p) {
			b.Set(p, board.Black)
			props.Add("AB", EncodeCoord(p))
		}
	}
	if initialPlayer == board.White && !props.Has("PL") {
		props.Set("PL", board.White.String())
	}
	return &GameTreeNode{
		ParentID:   NoNode,
		Properties: props,
		BoardState: b,
		Comment:    props.First("C"),
	}
}

// NewGame creates a fresh single-node game.
func NewGame(info GameInfo, handicapStones []board.Point, initialPlayer board.Color, rootProps Properties) *FullGameData {
	if initialPlayer == board.Empty {
		initialPlayer = board.Black
	}
	g := NewTree(info, rootProps, initialPlayer)
	root := CreateRoot(info.BoardSize, handicapStones, initialPlayer, rootProps)
	root.ID = g.NewNodeID()
	g.Nodes[root.ID] = root
	g.RootID = root.ID
	return g
}

// Node looks up id.
func (g *FullGameData) Node(id NodeID) (*GameTreeNode, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

func (g *FullGameData) Root() *GameTreeNode {
	return g.Nodes[g.RootID]
}

// MainLine follows the first child from the root to a leaf.
func (g *FullGameData) MainLine() []NodeID {
	var line []NodeID
	for n, ok := g.Node(g.RootID); ok; {
		line = append(line, n.ID)
		if len(n.ChildrenIDs) == 0 {
			break
		}
		n, ok = g.Node(n.ChildrenIDs[0])
	}
	return line
}

// clone copies the aggregate shallowly. Nodes are shared until replaced.
func (g *FullGameData) clone() *FullGameData {
	c := *g
	c.Nodes = make(map[NodeID]*GameTreeNode, len(g.Nodes)+1)
	for id, n := range g.Nodes {
		c.Nodes[id] = n
	}
	c.RootProperties = g.RootProperties.Clone()
	c.Diagnostics = append([]Diagnostic(nil), g.Diagnostics...)
	return &c
}

// AppendMove plays player at coord (nil passes) after parent. The new node is
// inserted as the parent's first child and becomes the main line; older
// children shift to variations. Rules errors leave the tree untouched.
func (g *FullGameData) AppendMove(parentID NodeID, player board.Color, coord *board.Point) (*FullGameData, NodeID, error) {
	parent, ok := g.Node(parentID)
	if !ok {
		return g, NoNode, errs.ErrNodeNotFound
	}
	if player == board.Empty {
		return g, NoNode, errs.ErrInvalidColor
	}

	child := &GameTreeNode{
		ParentID:             parent.ID,
		Properties:           Properties{},
		Player:               player,
		MoveNumber:           parent.MoveNumber + 1,
		BoardState:           parent.BoardState,
		TotalCapturedByBlack: parent.TotalCapturedByBlack,
		TotalCapturedByWhite: parent.TotalCapturedByWhite,
	}

	if coord == nil {
		child.Properties.Set(player.String(), "")
	} else {
		res, err := board.ApplyMove(parent.BoardState, player, *coord, parent.Ko)
		if err != nil {
			return g, NoNode, err
		}
		p := *coord
		child.Coord = &p
		child.Properties.Set(player.String(), EncodeCoord(p))
		child.BoardState = res.Board
		child.CapturedThisStep = res.Captured
		child.Ko = res.Ko
		if player == board.Black {
			child.TotalCapturedByBlack += len(res.Captured)
		} else {
			child.TotalCapturedByWhite += len(res.Captured)
		}
	}

	next := g.clone()
	child.ID = next.NewNodeID()
	next.Nodes[child.ID] = child

	updated := parent.clone()
	updated.ChildrenIDs = append([]NodeID{child.ID}, parent.ChildrenIDs...)
	updated.IsMainLineNext = true
	next.Nodes[updated.ID] = updated

	return next, child.ID, nil
}
