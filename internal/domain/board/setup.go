package board

// Setup is a batch of direct board writes, applied in the order
// Clear, Black, White.
type Setup struct {
	Clear []Point
	Black []Point
	White []Point
}

func (s Setup) IsEmpty() bool {
	return len(s.Clear) == 0 && len(s.Black) == 0 && len(s.White) == 0
}

// WriteSetup applies s to a copy of b without any capture logic.
// Off-board points are ignored.
func WriteSetup(b Board, s Setup) Board {
	next := b.Clone()
	for _, p := range s.Clear {
		next.Set(p, Empty)
	}
	for _, p := range s.Black {
		next.Set(p, Black)
	}
	for _, p := range s.White {
		next.Set(p, White)
	}
	return next
}

// PlaceSetupStones applies s and then silently removes every group left
// without liberties. Groups next to a placed stone are checked before the
// placed stone's own group, so a placement that fills an enemy group's last
// liberty kills the enemy rather than itself.
func PlaceSetupStones(b Board, s Setup) Board {
	next := WriteSetup(b, s)

	placed := make([]Point, 0, len(s.Black)+len(s.White))
	placed = append(placed, s.Black...)
	placed = append(placed, s.White...)
	for _, p := range placed {
		color := next.At(p)
		if color == Empty {
			continue
		}
		removeDeadNeighbors(&next, p, color.Opponent())
		if group, libs := FindGroupAndLiberties(next, p); libs.Len() == 0 {
			for stone := range group {
				next.Set(stone, Empty)
			}
		}
	}

	for r := 0; r < next.size; r++ {
		for c := 0; c < next.size; c++ {
			p := Point{r, c}
			if next.At(p) == Empty {
				continue
			}
			group, libs := FindGroupAndLiberties(next, p)
			if libs.Len() == 0 {
				for stone := range group {
					next.Set(stone, Empty)
				}
			}
		}
	}
	return next
}
