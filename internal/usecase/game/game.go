package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/board"
	"goban/internal/domain/game"
	"goban/internal/domain/sgf"
	errs "goban/internal/errors"
)

type GameStore interface {
	GenerateGameKey(ctx context.Context) string
	SaveSGF(ctx context.Context, key string, sgfText string) error
	LoadSGF(ctx context.Context, key string) (string, error)
	PutGame(ctx context.Context, record game.Record) error
	GetGameByGameKey(ctx context.Context, key string) (game.Record, error)
	ListGames(ctx context.Context, page int) ([]game.Record, error)
}

// session is one loaded game and the viewer's position in it. Every
// operation on a session holds mu.
type session struct {
	mu     sync.Mutex
	key    string
	data   *game.FullGameData
	cursor game.Cursor
	record game.Record
}

type GameUseCase struct {
	store     GameStore
	log       *zap.SugaredLogger
	parser    *sgf.Parser
	generator sgf.Generator
	boardSize int
	komi      float64
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger, cfg bootstrap.Config) *GameUseCase {
	boardSize := cfg.DefaultBoardSize
	if boardSize == 0 {
		boardSize = 19
	}
	return &GameUseCase{
		store:     store,
		log:       log,
		parser:    sgf.NewParser(log),
		generator: sgf.Generator{AppID: cfg.AppID},
		boardSize: boardSize,
		komi:      cfg.DefaultKomi,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.GameStateResponse, error) {
	size := req.BoardSize
	if size == 0 {
		size = g.boardSize
	}
	if size < 2 || size > board.MaxSize {
		return game.GameStateResponse{}, fmt.Errorf("%w: %d", errs.ErrInvalidBoardSize, size)
	}

	var stones []board.Point
	initial := board.Black
	if req.Handicap < 0 || req.Handicap > board.MaxHandicap {
		return game.GameStateResponse{}, fmt.Errorf("%w: %d stones", errs.ErrInvalidHandicap, req.Handicap)
	}
	if req.Handicap >= 2 {
		stones = board.HandicapPoints(size, req.Handicap)
		if stones == nil {
			return game.GameStateResponse{}, fmt.Errorf("%w: no fixed handicap on %dx%d", errs.ErrInvalidHandicap, size, size)
		}
		initial = board.White
	}

	komi := g.komi
	if req.Komi != nil {
		komi = *req.Komi
	}
	info := game.GameInfo{
		BoardSize:   size,
		Komi:        komi,
		Handicap:    len(stones),
		Ruleset:     req.Ruleset,
		Date:        g.now().Format(time.DateOnly),
		GameName:    req.GameName,
		PlayerBlack: req.PlayerBlack,
		PlayerWhite: req.PlayerWhite,
	}

	data := game.NewGame(info, stones, initial, nil)
	s, err := g.open(ctx, data, game.StatusActive)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	g.log.Infof("game created with key: %s", s.key)
	return s.state(), nil
}

// ImportSgf loads text as a new game. Unresolvable moves do not fail the
// import; they come back as diagnostics.
func (g *GameUseCase) ImportSgf(ctx context.Context, text string) (game.GameStateResponse, error) {
	data, err := g.parser.Parse(text)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	s, err := g.open(ctx, data, game.StatusImported)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	g.log.Infow("game imported", "key", s.key, "nodes", len(data.Nodes), "diagnostics", len(data.Diagnostics))
	return s.state(), nil
}

func (g *GameUseCase) open(ctx context.Context, data *game.FullGameData, status string) (*session, error) {
	now := g.now()
	s := &session{
		key:    g.store.GenerateGameKey(ctx),
		cursor: game.NewCursor(data),
		record: game.Record{CreatedAt: now, Status: status},
	}
	s.record.GameKey = s.key
	s.data = data

	if err := g.persist(ctx, s, data); err != nil {
		g.log.Errorf("failed to store new game: %v", err)
		return nil, fmt.Errorf("%w: %w", errs.ErrCreateGameFailed, err)
	}

	g.mu.Lock()
	g.sessions[s.key] = s
	g.mu.Unlock()
	return s, nil
}

func (g *GameUseCase) GetState(ctx context.Context, key string) (game.GameStateResponse, error) {
	s, err := g.session(ctx, key)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(), nil
}

// PlayMoves plays moves in order from the current node. Either all of them
// are applied or, on the first illegal one, none.
func (g *GameUseCase) PlayMoves(ctx context.Context, key string, moves []game.Move) (game.GameStateResponse, error) {
	s, err := g.session(ctx, key)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, current := s.data, s.cursor.CurrentID
	size := data.Info.BoardSize
	for i, move := range moves {
		color := data.ToPlay(current)
		if move.Color != "" {
			var ok bool
			if color, ok = board.ParseColor(move.Color); !ok {
				return game.GameStateResponse{}, fmt.Errorf("move %d: %w: %q", i+1, errs.ErrInvalidColor, move.Color)
			}
		}

		var coord *board.Point
		if move.Coordinates != "" {
			p, ok := game.DecodeCoord(move.Coordinates, size)
			if !ok {
				return game.GameStateResponse{}, fmt.Errorf("move %d: %w: %q", i+1, errs.ErrInvalidCoordinate, move.Coordinates)
			}
			coord = &p
		}

		data, current, err = data.AppendMove(current, color, coord)
		if err != nil {
			return game.GameStateResponse{}, fmt.Errorf("move %d: %w", i+1, err)
		}
	}

	if err = g.persist(ctx, s, data); err != nil {
		return game.GameStateResponse{}, err
	}
	s.data = data
	s.cursor = game.Navigate(data, s.cursor, game.Navigation{Direction: game.ToNode, Target: current})
	return s.state(), nil
}

func (g *GameUseCase) PlayMove(ctx context.Context, key string, move game.Move) (game.GameStateResponse, error) {
	return g.PlayMoves(ctx, key, []game.Move{move})
}

// EditSetup applies stone and property edits to one node in place.
func (g *GameUseCase) EditSetup(ctx context.Context, key string, req game.SetupRequest) (game.GameStateResponse, error) {
	s, err := g.session(ctx, key)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.data.Info.BoardSize
	edits := game.SetupEdits{
		SetProperties:    game.Properties(req.Set),
		DeleteProperties: req.Delete,
	}
	for _, list := range []struct {
		dst  *[]board.Point
		src  []string
		name string
	}{
		{&edits.AddBlack, req.AddBlack, "add_black"},
		{&edits.AddWhite, req.AddWhite, "add_white"},
		{&edits.Clear, req.Clear, "clear"},
	} {
		for _, v := range list.src {
			p, ok := game.DecodeCoord(v, size)
			if !ok {
				return game.GameStateResponse{}, fmt.Errorf("%s: %w: %q", list.name, errs.ErrInvalidCoordinate, v)
			}
			*list.dst = append(*list.dst, p)
		}
	}

	id := req.NodeID
	if id == game.NoNode {
		id = s.cursor.CurrentID
	}
	data, err := s.data.ApplySetup(id, edits)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if err = g.persist(ctx, s, data); err != nil {
		return game.GameStateResponse{}, err
	}
	s.data = data
	return s.state(), nil
}

// Navigate moves the viewer. It changes no stored state.
func (g *GameUseCase) Navigate(ctx context.Context, key string, req game.NavigateRequest) (game.GameStateResponse, error) {
	direction, err := game.ParseDirection(req.Direction)
	if err != nil {
		return game.GameStateResponse{}, fmt.Errorf("%w: %q", errs.ErrInvalidDirection, req.Direction)
	}
	s, err := g.session(ctx, key)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if direction == game.ToNode {
		if _, ok := s.data.Node(req.NodeID); !ok {
			return game.GameStateResponse{}, fmt.Errorf("%w: %d", errs.ErrNodeNotFound, req.NodeID)
		}
	}
	s.cursor = game.Navigate(s.data, s.cursor, game.Navigation{
		Direction:  direction,
		Target:     req.NodeID,
		MoveNumber: req.MoveNumber,
	})
	return s.state(), nil
}

func (g *GameUseCase) UpdateInfo(ctx context.Context, key string, patch game.InfoPatch) (game.GameStateResponse, error) {
	s, err := g.session(ctx, key)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.data.WithInfo(patch.Apply(s.data.Info))
	if err = g.persist(ctx, s, data); err != nil {
		return game.GameStateResponse{}, err
	}
	s.data = data
	return s.state(), nil
}

func (g *GameUseCase) ExportSgf(ctx context.Context, key string) (string, error) {
	s, err := g.session(ctx, key)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return g.generator.Generate(s.data), nil
}

func (g *GameUseCase) ListGames(ctx context.Context, page int) ([]game.Record, error) {
	if page < 1 {
		page = 1
	}
	return g.store.ListGames(ctx, page)
}

// session returns the loaded session for key, rebuilding it from the
// stored SGF when it is not in memory.
func (g *GameUseCase) session(ctx context.Context, key string) (*session, error) {
	g.mu.RLock()
	s, ok := g.sessions[key]
	g.mu.RUnlock()
	if ok {
		return s, nil
	}

	text, err := g.store.LoadSGF(ctx, key)
	if err != nil {
		return nil, err
	}
	data, err := g.parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("stored game %s: %w", key, err)
	}

	record, err := g.store.GetGameByGameKey(ctx, key)
	if errors.Is(err, errs.ErrGameNotFound) {
		record = game.Record{GameKey: key, CreatedAt: g.now(), Status: game.StatusImported}
	} else if err != nil {
		return nil, err
	}

	loaded := &session{key: key, data: data, cursor: game.NewCursor(data), record: record}

	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok = g.sessions[key]; ok {
		return s, nil
	}
	g.sessions[key] = loaded
	g.log.Infof("game %s restored from storage", key)
	return loaded, nil
}

// persist stores data as the session's next state. The session is only
// updated by the caller once this succeeds.
func (g *GameUseCase) persist(ctx context.Context, s *session, data *game.FullGameData) error {
	text := g.generator.Generate(data)
	if err := g.store.SaveSGF(ctx, s.key, text); err != nil {
		return fmt.Errorf("save sgf for %s: %w", s.key, err)
	}

	record := s.record
	record.UpdatedAt = g.now()
	record.Info = data.Info
	record.NodeCount = len(data.Nodes)
	record.MoveCount = data.MoveCount()
	record.Sgf = text
	if err := g.store.PutGame(ctx, record); err != nil {
		return fmt.Errorf("save record for %s: %w", s.key, err)
	}
	s.record = record
	return nil
}

func (s *session) state() game.GameStateResponse {
	current, ok := s.data.Node(s.cursor.CurrentID)
	if !ok {
		s.cursor = game.NewCursor(s.data)
		current = s.data.Root()
	}

	variations := make([]game.Variation, 0, len(current.ChildrenIDs))
	for i, id := range current.ChildrenIDs {
		child := s.data.Nodes[id]
		v := game.Variation{
			ID:         id,
			Player:     child.Player,
			IsMainLine: i == 0 && current.IsMainLineNext,
		}
		if child.Coord != nil {
			v.Coordinates = game.EncodeCoord(*child.Coord)
		}
		variations = append(variations, v)
	}

	return game.GameStateResponse{
		GameKey:     s.key,
		Info:        s.data.Info,
		Current:     game.ViewNode(current),
		ToPlay:      s.data.ToPlay(current.ID),
		Path:        append([]game.NodeID(nil), s.cursor.Path...),
		Variations:  variations,
		NodeCount:   len(s.data.Nodes),
		Diagnostics: s.data.Diagnostics,
	}
}
