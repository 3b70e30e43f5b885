// Package board holds the Go board snapshot and the rules that act on it:
// groups, liberties, captures, suicide and ko. Nothing here knows about
// game trees or SGF.
package board

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// MaxSize is the largest board SGF coordinates can address.
const MaxSize = 52

// Color is the state of one intersection.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other player. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// String returns the SGF letter of the color, "" for Empty.
func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	}
	return ""
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseColor(s)
	if !ok && s != "" {
		return fmt.Errorf("unknown color %q", s)
	}
	*c = parsed
	return nil
}

// ParseColor accepts "B"/"W" in either case and the words black/white.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, true
	case "w", "white":
		return White, true
	}
	return Empty, false
}

// Point is a 0-indexed intersection, row-major, (0,0) at the top left.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func (p Point) neighbors() [4]Point {
	return [4]Point{
		{p.Row - 1, p.Col},
		{p.Row + 1, p.Col},
		{p.Row, p.Col - 1},
		{p.Row, p.Col + 1},
	}
}

// PointSet is an unordered set of points.
type PointSet map[Point]struct{}

func (s PointSet) Add(p Point) { s[p] = struct{}{} }

func (s PointSet) Has(p Point) bool {
	_, ok := s[p]
	return ok
}

func (s PointSet) Len() int { return len(s) }

// Sorted returns the points in row-major order.
func (s PointSet) Sorted() []Point {
	out := make([]Point, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sortPoints(out)
	return out
}

func sortPoints(points []Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Row != points[j].Row {
			return points[i].Row < points[j].Row
		}
		return points[i].Col < points[j].Col
	})
}

// Board is a square grid of stones. The zero value is a 0x0 board.
// Boards returned by this package are never shared: mutate only boards you
// created or cloned yourself.
type Board struct {
	size  int
	cells []Color
}

// CreateEmptyBoard returns an empty size x size board. Sizes are clamped
// to 0..MaxSize.
func CreateEmptyBoard(size int) Board {
	if size < 0 {
		size = 0
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Board{size: size, cells: make([]Color, size*size)}
}

// CloneBoard returns a deep copy of b.
func CloneBoard(b Board) Board {
	return b.Clone()
}

func (b Board) Clone() Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

func (b Board) Size() int { return b.size }

func (b Board) InBounds(p Point) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < b.size && p.Col < b.size
}

// At returns the color at p, Empty when p is off the board.
func (b Board) At(p Point) Color {
	if !b.InBounds(p) {
		return Empty
	}
	return b.cells[p.Row*b.size+p.Col]
}

// Set writes c at p. Off-board points are ignored.
func (b *Board) Set(p Point, c Color) {
	if !b.InBounds(p) {
		return
	}
	b.cells[p.Row*b.size+p.Col] = c
}

// Rows returns a copy of the grid indexed [row][col].
func (b Board) Rows() [][]Color {
	rows := make([][]Color, b.size)
	for r := range rows {
		rows[r] = make([]Color, b.size)
		copy(rows[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return rows
}

// Count returns the number of stones of color c.
func (b Board) Count(c Color) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// BoardsEqual compares dimensions and every cell.
func BoardsEqual(a, b Board) bool {
	if a.size != b.size {
		return false
	}
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			return false
		}
	}
	return true
}

func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]string, b.size)
	for r := range rows {
		rows[r] = make([]string, b.size)
		for c := range rows[r] {
			rows[r][c] = b.At(Point{r, c}).String()
		}
	}
	return json.Marshal(rows)
}

func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			switch b.At(Point{r, c}) {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
