package game

import (
	"strings"

	"goban/internal/domain/board"
)

// EncodeCoord renders p as two SGF letters, column first: 'a'..'z' for
// 0..25 and 'A'..'Z' for 26..51.
func EncodeCoord(p board.Point) string {
	return string([]byte{coordLetter(p.Col), coordLetter(p.Row)})
}

func coordLetter(i int) byte {
	if i < 26 {
		return byte('a' + i)
	}
	return byte('A' + i - 26)
}

func letterIndex(c byte) int {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26
	}
	return -1
}

// DecodeCoord parses a two-letter SGF point. ok is false when the text is
// not two letters or the point falls outside a size x size board.
func DecodeCoord(s string, size int) (p board.Point, ok bool) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return board.Point{}, false
	}
	col, row := letterIndex(s[0]), letterIndex(s[1])
	if col < 0 || row < 0 || col >= size || row >= size {
		return board.Point{}, false
	}
	return board.Point{Row: row, Col: col}, true
}

// DecodeMoveCoord parses a B/W value. Empty values, out-of-range points and the
// legacy "tt" all decode as a pass (nil).
func DecodeMoveCoord(s string, size int) *board.Point {
	p, ok := DecodeCoord(s, size)
	if !ok {
		return nil
	}
	return &p
}

// DecodePointList expands values of a point-list property, including the
// compressed "aa:cc" rectangle form. Invalid points are dropped.
func DecodePointList(values []string, size int) []board.Point {
	var points []board.Point
	seen := make(board.PointSet)
	add := func(p board.Point) {
		if !seen.Has(p) {
			seen.Add(p)
			points = append(points, p)
		}
	}
	for _, v := range values {
		from, to, isRect := strings.Cut(v, ":")
		if !isRect {
			if p, ok := DecodeCoord(v, size); ok {
				add(p)
			}
			continue
		}
		a, okA := DecodeCoord(from, size)
		b, okB := DecodeCoord(to, size)
		if !okA || !okB {
			continue
		}
		for r := min(a.Row, b.Row); r <= max(a.Row, b.Row); r++ {
			for c := min(a.Col, b.Col); c <= max(a.Col, b.Col); c++ {
				add(board.Point{Row: r, Col: c})
			}
		}
	}
	return points
}
