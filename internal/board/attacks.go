package board

// Pin is a friendly piece standing between its king and an enemy slider.
// Dir points from the king towards the pinned piece.
type Pin struct {
	Square Square
	Dir    Direction
}

// Check is an enemy piece giving check. Dir points from the king to the
// checker; it is zero for knight checks, which have no blockable ray.
type Check struct {
	Square Square
	Dir    Direction
	Knight bool
}

// Analysis is the result of scanning the rays around a king.
type Analysis struct {
	InCheck bool
	Pins    []Pin
	Checks  []Check
}

// Analyze scans the eight rays and the knight offsets around king for the
// side us and reports the pins and checks found. It does not modify b.
func Analyze(b *Board, king Square, us Color) Analysis {
	var a Analysis
	them := us.Other()

	for _, d := range allDirs {
		candidate := NoSquare
		for n := 1; n < 8; n++ {
			sq := king.Offset(d, n)
			if !sq.OnBoard() {
				break
			}
			p := b.At(sq)
			if p.IsEmpty() {
				continue
			}

			if p.Color() == us {
				if p.Type() == King {
					continue
				}
				if candidate == NoSquare {
					candidate = sq
					continue
				}
				break
			}

			if attacksAlong(p.Type(), us, d, n) {
				if candidate == NoSquare {
					a.InCheck = true
					a.Checks = append(a.Checks, Check{Square: sq, Dir: d})
				} else {
					a.Pins = append(a.Pins, Pin{Square: candidate, Dir: d})
				}
			}
			break
		}
	}

	for _, o := range knightOffsets {
		sq := king.Offset(o, 1)
		if b.At(sq).Is(Knight, them) {
			a.InCheck = true
			a.Checks = append(a.Checks, Check{Square: sq, Knight: true})
		}
	}
	return a
}

// attacksAlong reports whether an enemy piece of type pt, met n squares away
// from a king of color us along d, attacks back down that ray.
func attacksAlong(pt PieceType, us Color, d Direction, n int) bool {
	switch pt {
	case Queen:
		return true
	case Rook:
		return !d.Diagonal()
	case Bishop:
		return d.Diagonal()
	case Pawn:
		// Enemy pawns capture towards us, so they sit one row ahead of the king.
		return n == 1 && d.Diagonal() && d.DRow == us.forward()
	case King:
		return n == 1
	}
	return false
}

// kingSafeAt reports whether the king of color us standing on from would be
// out of check after stepping to to. The test runs on a copy of b.
func kingSafeAt(b *Board, from, to Square, us Color) bool {
	scratch := *b
	scratch.move(from, to)
	return !Analyze(&scratch, to, us).InCheck
}

// SquareAttacked reports whether any piece of color by attacks sq. Pawns
// attack their forward diagonals whether or not a piece stands there; pushes
// never count.
func SquareAttacked(b *Board, sq Square, by Color) bool {
	g := generator{b: b, us: by, ep: NoSquare, attack: true}
	g.run()
	for _, m := range g.moves {
		if m.To == sq {
			return true
		}
	}
	return false
}
