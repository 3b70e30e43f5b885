package game

// Move is a play request. Coordinates are SGF letters ("dd"); an empty
// string passes.
type Move struct {
	Color       string `json:"color"`
	Coordinates string `json:"coordinates"`
}

// NavigateRequest moves the viewer. Direction is one of first, prev, next,
// last, node (with NodeID) or move (with MoveNumber).
type NavigateRequest struct {
	Direction  string `json:"direction"`
	NodeID     NodeID `json:"node_id,omitempty"`
	MoveNumber int    `json:"move_number,omitempty"`
}

// Moves is a batch of plays applied in order.
type Moves struct {
	Moves []Move `json:"moves"`
}

// SetupRequest edits a node in place. NodeID zero means the viewer's
// current node. Points are SGF letters; Set and Delete carry raw
// properties such as markup and comments.
type SetupRequest struct {
	NodeID   NodeID              `json:"node_id,omitempty"`
	AddBlack []string            `json:"add_black,omitempty"`
	AddWhite []string            `json:"add_white,omitempty"`
	Clear    []string            `json:"clear,omitempty"`
	Set      map[string][]string `json:"set,omitempty"`
	Delete   []string            `json:"delete,omitempty"`
}
