package game

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	errs "goban/internal/errors"
	"goban/internal/httpresponse"
	gameuc "goban/internal/usecase/game"
	"goban/internal/utils"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	hub    *Hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ClientMessage is what a websocket viewer may send: a move to play or a
// navigation request.
type ClientMessage struct {
	Type     string                `json:"type"`
	Move     *game.Move            `json:"move,omitempty"`
	Navigate *game.NavigateRequest `json:"navigate,omitempty"`
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameUC,
		hub:    NewHub(log),
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", g.HandleNewGame)
		r.Get("/", g.HandleListGames)
		r.Post("/import", g.HandleImportSgf)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", g.HandleGetState)
			r.Get("/sgf", g.HandleExportSgf)
			r.Post("/moves", g.HandlePlayMoves)
			r.Post("/setup", g.HandleEditSetup)
			r.Post("/navigate", g.HandleNavigate)
			r.Patch("/info", g.HandleUpdateInfo)
			r.Get("/ws", g.HandleWebSocket)
		})
	})
}

// statusFor maps use case errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrGameNotFound), errors.Is(err, errs.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrOccupiedOrOutOfBounds), errors.Is(err, errs.ErrKoViolation), errors.Is(err, errs.ErrSuicideMove):
		return http.StatusConflict
	case errors.Is(err, errs.ErrMalformedSgf):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidCoordinate), errors.Is(err, errs.ErrInvalidColor),
		errors.Is(err, errs.ErrInvalidBoardSize), errors.Is(err, errs.ErrInvalidHandicap),
		errors.Is(err, errs.ErrInvalidDirection), errors.Is(err, errs.ErrInvalidProperty):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		g.log.Error(err)
		httpresponse.WriteError(w, status, errs.ErrInternal)
		return
	}
	g.log.Infof("request rejected: %v", err)
	httpresponse.WriteError(w, status, err)
}

func (g *GameHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := utils.DecodeJSONRequest(r, dst); err != nil {
		g.log.Infof("JSON decode error: %v", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{
			ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc + ": " + err.Error(),
		})
		return false
	}
	return true
}

// respond writes state and pushes it to the game's viewers.
func (g *GameHandler) respond(w http.ResponseWriter, status int, state game.GameStateResponse, err error) {
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.hub.Broadcast(state.GameKey, state)
	httpresponse.WriteResponseWithStatus(w, status, state)
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if !g.decode(w, r, &req) {
		return
	}
	state, err := g.gameUC.CreateGame(r.Context(), req)
	g.respond(w, http.StatusCreated, state, err)
}

func (g *GameHandler) HandleImportSgf(w http.ResponseWriter, r *http.Request) {
	body, err := utils.ReadRequestBody(r)
	if err != nil {
		g.log.Error("Failed to read body:", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: "failed to read request body"})
		return
	}
	state, err := g.gameUC.ImportSgf(r.Context(), string(body))
	g.respond(w, http.StatusCreated, state, err)
}

func (g *GameHandler) HandleListGames(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: "page must be a positive number"})
			return
		}
		page = n
	}
	records, err := g.gameUC.ListGames(r.Context(), page)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, records)
}

func (g *GameHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GetState(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleExportSgf(w http.ResponseWriter, r *http.Request) {
	text, err := g.gameUC.ExportSgf(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteSGF(w, chi.URLParam(r, "key"), text)
}

func (g *GameHandler) HandlePlayMoves(w http.ResponseWriter, r *http.Request) {
	var req game.Moves
	if !g.decode(w, r, &req) {
		return
	}
	state, err := g.gameUC.PlayMoves(r.Context(), chi.URLParam(r, "key"), req.Moves)
	g.respond(w, http.StatusOK, state, err)
}

func (g *GameHandler) HandleEditSetup(w http.ResponseWriter, r *http.Request) {
	var req game.SetupRequest
	if !g.decode(w, r, &req) {
		return
	}
	state, err := g.gameUC.EditSetup(r.Context(), chi.URLParam(r, "key"), req)
	g.respond(w, http.StatusOK, state, err)
}

func (g *GameHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var req game.NavigateRequest
	if !g.decode(w, r, &req) {
		return
	}
	state, err := g.gameUC.Navigate(r.Context(), chi.URLParam(r, "key"), req)
	g.respond(w, http.StatusOK, state, err)
}

func (g *GameHandler) HandleUpdateInfo(w http.ResponseWriter, r *http.Request) {
	var req game.InfoPatch
	if !g.decode(w, r, &req) {
		return
	}
	state, err := g.gameUC.UpdateInfo(r.Context(), chi.URLParam(r, "key"), req)
	g.respond(w, http.StatusOK, state, err)
}

// HandleWebSocket streams state snapshots for one game. The viewer gets the
// current state on connect and may send ClientMessage values.
func (g *GameHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	state, err := g.gameUC.GetState(r.Context(), key)
	if err != nil {
		g.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error:", err)
		return
	}
	sub := g.hub.subscribe(key, conn)
	defer func() {
		g.hub.unsubscribe(key, sub)
		conn.Close()
	}()

	if err = sub.writeJSON(state); err != nil {
		g.log.Error("write error:", err)
		return
	}

	ctx := r.Context()
	for {
		var msg ClientMessage
		if err = conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Info("read error:", err)
			}
			return
		}

		switch {
		case msg.Type == "move" && msg.Move != nil:
			state, err = g.gameUC.PlayMove(ctx, key, *msg.Move)
		case msg.Type == "navigate" && msg.Navigate != nil:
			state, err = g.gameUC.Navigate(ctx, key, *msg.Navigate)
		default:
			err = errors.New("unknown message type " + strconv.Quote(msg.Type))
		}
		if err != nil {
			_ = sub.writeJSON(httpresponse.ErrorResponse{ErrorDescription: err.Error()})
			continue
		}
		g.hub.Broadcast(key, state)
	}
}
