package sgf

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"goban/internal/domain/board"
	"goban/internal/domain/game"
	errs "goban/internal/errors"
)

const (
	defaultBoardSize = 19
	minBoardSize     = 2
	// sizeScanDepth is how many main-line nodes are searched for SZ when
	// the root lacks it.
	sizeScanDepth = 3
)

// Parser turns SGF text into a resolved game. Moves that the rules engine
// rejects are logged and kept as diagnostics instead of failing the parse.
type Parser struct {
	log *zap.SugaredLogger
}

func NewParser(log *zap.SugaredLogger) *Parser {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Parser{log: log}
}

// ParseSgf parses text without logging.
func ParseSgf(text string) (*game.FullGameData, error) {
	return NewParser(nil).Parse(text)
}

// Parse loads the first game of the collection in text.
func (p *Parser) Parse(text string) (*game.FullGameData, error) {
	tree := ParseCollection(text).FirstTree()
	if tree == nil {
		return nil, fmt.Errorf("%w: no game tree found", errs.ErrMalformedSgf)
	}

	rootRaw := tree.Nodes[0]
	size, err := boardSize(tree)
	if err != nil {
		return nil, err
	}

	rootProps := headerProperties(rootRaw.Properties)
	info := readInfo(rootProps, size)
	info.Comment = game.Properties(rootRaw.Properties).First("C")

	r := &resolver{log: p.log, size: size}
	r.g = game.NewTree(info, rootProps, board.Black)
	root := r.resolveRoot(rootRaw)
	r.g.InitialPlayer = initialPlayer(root, info.Handicap)

	r.attachRest(root, tree, 0)

	if len(r.g.Diagnostics) > 0 {
		p.log.Infow("sgf loaded with diagnostics", "nodes", len(r.g.Nodes), "diagnostics", len(r.g.Diagnostics))
	}
	return r.g, nil
}

// boardSize reads SZ from the root, then from the next few main-line
// nodes, else defaults to 19.
func boardSize(tree *GameTree) (int, error) {
	nodes := tree.Nodes
	for i := 0; i < sizeScanDepth && i < len(nodes); i++ {
		v := game.Properties(nodes[i].Properties).First("SZ")
		if v == "" {
			continue
		}
		size, ok := parseSize(v)
		if !ok {
			continue
		}
		if size < minBoardSize || size > board.MaxSize {
			return 0, fmt.Errorf("%w: board size %d out of range", errs.ErrMalformedSgf, size)
		}
		return size, nil
	}
	return defaultBoardSize, nil
}

// parseSize accepts "19" and the square form "19:19".
func parseSize(v string) (int, bool) {
	cols, rows, rect := strings.Cut(strings.TrimSpace(v), ":")
	n, err := strconv.Atoi(strings.TrimSpace(cols))
	if err != nil {
		return 0, false
	}
	if rect {
		m, err := strconv.Atoi(strings.TrimSpace(rows))
		if err != nil || m != n {
			return 0, false
		}
	}
	return n, true
}

// headerProperties copies the header and metadata keys of the raw root.
// Everything else stays on the root node.
func headerProperties(raw map[string][]string) game.Properties {
	props := game.Properties{}
	for _, key := range append(append([]string(nil), game.HeaderKeys...), game.MetadataKeys...) {
		if values, ok := raw[key]; ok {
			props[key] = append([]string(nil), values...)
		}
	}
	return props
}

func readInfo(props game.Properties, size int) game.GameInfo {
	info := game.GameInfo{
		BoardSize:   size,
		Ruleset:     props.First("RU"),
		Date:        props.First("DT"),
		Result:      props.First("RE"),
		GameName:    props.First("GN"),
		PlayerBlack: props.First("PB"),
		PlayerWhite: props.First("PW"),
		RankBlack:   props.First("BR"),
		RankWhite:   props.First("WR"),
	}
	if km, err := strconv.ParseFloat(strings.TrimSpace(props.First("KM")), 64); err == nil {
		info.Komi = km
	}
	if ha, err := strconv.Atoi(strings.TrimSpace(props.First("HA"))); err == nil && ha > 0 {
		info.Handicap = ha
	}
	return info
}

func initialPlayer(root *game.GameTreeNode, handicap int) board.Color {
	if c, ok := board.ParseColor(root.Properties.First("PL")); ok {
		return c
	}
	if handicap >= 2 {
		return board.White
	}
	return board.Black
}

type resolver struct {
	log  *zap.SugaredLogger
	g    *game.FullGameData
	size int
}

// resolveRoot builds the root node. Header and metadata keys live in the
// aggregate's RootProperties only, so metadata edits are not shadowed by
// the live root.
func (r *resolver) resolveRoot(raw *Node) *game.GameTreeNode {
	props := game.Properties(raw.Properties).Clone()
	props.Delete(game.HeaderKeys...)
	props.Delete(game.MetadataKeys...)

	base := &game.GameTreeNode{BoardState: board.CreateEmptyBoard(r.size)}
	root := r.resolveNode(base, props, 0)
	root.ParentID = game.NoNode
	r.g.RootID = root.ID

	if r.g.Info.Handicap >= 2 && !props.Has("AB") {
		root.BoardState = root.BoardState.Clone()
		for _, p := range board.HandicapPoints(r.size, r.g.Info.Handicap) {
			root.BoardState.Set(p, board.Black)
			root.Properties.Add("AB", game.EncodeCoord(p))
		}
	}
	return root
}

// attachRest wires the nodes after index i of tree below node. Each node
// gets its continuation as the first child and its variations after it.
// Without a continuation the first variation is the main line.
func (r *resolver) attachRest(node *game.GameTreeNode, tree *GameTree, i int) {
	raw := tree.Nodes[i]
	for {
		if i+1 < len(tree.Nodes) {
			next := r.child(node, tree.Nodes[i+1])
			node.IsMainLineNext = true
			r.attachVariations(node, raw.Variations)
			node, i, raw = next, i+1, tree.Nodes[i+1]
			continue
		}
		r.attachVariations(node, raw.Variations)
		node.IsMainLineNext = len(node.ChildrenIDs) > 0
		return
	}
}

func (r *resolver) attachVariations(parent *game.GameTreeNode, variations []*GameTree) {
	for _, sub := range variations {
		r.attachTree(parent, sub)
	}
}

// attachTree hangs a whole subtree below parent. A subtree without nodes
// passes its own children up.
func (r *resolver) attachTree(parent *game.GameTreeNode, tree *GameTree) {
	if len(tree.Nodes) > 0 {
		first := r.child(parent, tree.Nodes[0])
		r.attachRest(first, tree, 0)
	}
	for _, sub := range tree.Children {
		r.attachTree(parent, sub)
	}
}

func (r *resolver) child(parent *game.GameTreeNode, raw *Node) *game.GameTreeNode {
	n := r.resolveNode(parent, game.Properties(raw.Properties).Clone(), parent.MoveNumber)
	n.ParentID = parent.ID
	parent.ChildrenIDs = append(parent.ChildrenIDs, n.ID)
	return n
}

// resolveNode derives the node's state from parent: setup writes first,
// then the move through the rules engine.
func (r *resolver) resolveNode(parent *game.GameTreeNode, props game.Properties, moveNumber int) *game.GameTreeNode {
	n := &game.GameTreeNode{
		ID:                   r.g.NewNodeID(),
		Properties:           props,
		MoveNumber:           moveNumber,
		BoardState:           parent.BoardState,
		TotalCapturedByBlack: parent.TotalCapturedByBlack,
		TotalCapturedByWhite: parent.TotalCapturedByWhite,
		Ko:                   parent.Ko,
		Comment:              props.First("C"),
	}
	r.g.Nodes[n.ID] = n

	setup := board.Setup{
		Clear: game.DecodePointList(props["AE"], r.size),
		Black: game.DecodePointList(props["AB"], r.size),
		White: game.DecodePointList(props["AW"], r.size),
	}
	if !setup.IsEmpty() {
		n.BoardState = board.WriteSetup(n.BoardState, setup)
		n.Ko = board.KoState{}
	}

	player, value, ok := moveProperty(props)
	if !ok {
		return n
	}
	n.Player = player
	n.MoveNumber++
	n.Coord = game.DecodeMoveCoord(value, r.size)
	if n.Coord == nil {
		n.Ko = board.KoState{}
		return n
	}

	res, err := board.ApplyMove(n.BoardState, player, *n.Coord, n.Ko)
	if err != nil {
		r.log.Warnw("skipping unresolvable move", "node", n.ID, "move", n.MoveNumber, "color", player.String(), "coord", value, "error", err)
		r.g.Diagnostics = append(r.g.Diagnostics, game.Diagnostic{
			NodeID:  n.ID,
			Message: fmt.Sprintf("move %d %s[%s]: %v", n.MoveNumber, player, value, err),
			Err:     fmt.Errorf("%w: %w", errs.ErrUnresolvableMove, err),
		})
		n.Ko = board.KoState{}
		return n
	}
	n.BoardState = res.Board
	n.CapturedThisStep = res.Captured
	n.Ko = res.Ko
	if player == board.Black {
		n.TotalCapturedByBlack += len(res.Captured)
	} else {
		n.TotalCapturedByWhite += len(res.Captured)
	}
	return n
}

// moveProperty returns the node's B or W move. B wins when both are set.
func moveProperty(props game.Properties) (board.Color, string, bool) {
	if v, ok := props["B"]; ok {
		return board.Black, first(v), true
	}
	if v, ok := props["W"]; ok {
		return board.White, first(v), true
	}
	return board.Empty, "", false
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
