package board

// MaxHandicap is the most stones HandicapPoints places.
const MaxHandicap = 9

// HandicapPoints returns the standard star points for a fixed handicap of n
// stones on 9x9, 13x13 and 19x19 boards. Other sizes and n < 2 yield nil;
// n above MaxHandicap is capped.
func HandicapPoints(size, n int) []Point {
	var edge int
	switch size {
	case 9:
		edge = 2
	case 13, 19:
		edge = 3
	default:
		return nil
	}
	if n < 2 {
		return nil
	}
	if n > MaxHandicap {
		n = MaxHandicap
	}

	lo, mid, hi := edge, size/2, size-1-edge
	topRight := Point{lo, hi}
	bottomLeft := Point{hi, lo}
	bottomRight := Point{hi, hi}
	topLeft := Point{lo, lo}
	center := Point{mid, mid}
	leftMid := Point{mid, lo}
	rightMid := Point{mid, hi}
	topMid := Point{lo, mid}
	bottomMid := Point{hi, mid}

	corners := []Point{topRight, bottomLeft, bottomRight, topLeft}
	switch n {
	case 2, 3, 4:
		return append([]Point(nil), corners[:n]...)
	case 5:
		return append(corners, center)
	case 6:
		return append(corners, leftMid, rightMid)
	case 7:
		return append(corners, leftMid, rightMid, center)
	case 8:
		return append(corners, leftMid, rightMid, topMid, bottomMid)
	}
	return append(corners, leftMid, rightMid, topMid, bottomMid, center)
}
