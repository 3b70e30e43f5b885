package game

import (
	"strings"

	"goban/internal/domain/board"
)

// Mark is one board annotation decoded from a node's markup properties.
type Mark struct {
	Kind  string      `json:"kind"`
	Point board.Point `json:"point"`
	Label string      `json:"label,omitempty"`
}

// markupKeys are the point-list annotation properties, in output order.
var markupKeys = []string{"TR", "SQ", "CR", "MA", "SL", "DD"}

// DecodeMarkup reads TR/SQ/CR/MA/SL/DD point lists and LB labels. Points
// outside the board are dropped.
func DecodeMarkup(props Properties, size int) []Mark {
	var marks []Mark
	for _, key := range markupKeys {
		for _, p := range DecodePointList(props[key], size) {
			marks = append(marks, Mark{Kind: key, Point: p})
		}
	}
	for _, v := range props["LB"] {
		coord, text, ok := strings.Cut(v, ":")
		if !ok {
			continue
		}
		if p, ok := DecodeCoord(coord, size); ok {
			marks = append(marks, Mark{Kind: "LB", Point: p, Label: text})
		}
	}
	return marks
}

// EncodeLabel renders an LB value.
func EncodeLabel(p board.Point, text string) string {
	return EncodeCoord(p) + ":" + text
}
