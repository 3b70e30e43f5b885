package errors

import "errors"

// Rules engine errors. A move rejected with one of these never changes the board.
var (
	ErrOccupiedOrOutOfBounds = errors.New("point is occupied or out of bounds")
	ErrKoViolation           = errors.New("move would retake the ko")
	ErrSuicideMove           = errors.New("move has no liberties and captures nothing")
)

// SGF errors.
var (
	ErrMalformedSgf     = errors.New("malformed sgf")
	ErrUnresolvableMove = errors.New("move in history could not be applied")
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrNodeNotFound      = errors.New("node not found")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidColor      = errors.New("invalid color")
	ErrInvalidBoardSize  = errors.New("invalid board size")
	ErrInvalidHandicap   = errors.New("invalid handicap")
	ErrInvalidDirection  = errors.New("invalid navigation direction")
	ErrInvalidProperty   = errors.New("invalid property identifier")
	ErrCreateGameFailed  = errors.New("create game failed")
	ErrInternal          = errors.New("internal error")
)
