package board

// CastleRights records which castling options remain available.
type CastleRights struct {
	WhiteKingSide  bool
	BlackKingSide  bool
	WhiteQueenSide bool
	BlackQueenSide bool
}

// AllCastleRights is the initial state: every flank still available.
var AllCastleRights = CastleRights{true, true, true, true}

// String returns the rights as "KQkq" letters, or "-" when none remain.
func (cr CastleRights) String() string {
	s := ""
	if cr.WhiteKingSide {
		s += "K"
	}
	if cr.WhiteQueenSide {
		s += "Q"
	}
	if cr.BlackKingSide {
		s += "k"
	}
	if cr.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastleRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr.WhiteKingSide
		}
		return cr.WhiteQueenSide
	}
	if kingSide {
		return cr.BlackKingSide
	}
	return cr.BlackQueenSide
}

// revoke clears one flank for a color. Rights are only ever cleared here;
// they come back solely through undo restoring an earlier snapshot.
func (cr *CastleRights) revoke(c Color, kingSide bool) {
	switch {
	case c == White && kingSide:
		cr.WhiteKingSide = false
	case c == White:
		cr.WhiteQueenSide = false
	case kingSide:
		cr.BlackKingSide = false
	default:
		cr.BlackQueenSide = false
	}
}

// update applies the effect of a move on the rights: a king move clears both
// flanks of its color, a rook leaving its corner clears that flank, and a
// capture on an enemy rook's corner clears the enemy flank.
func (cr *CastleRights) update(m Move) {
	us := m.Moved.Color()
	switch m.Moved.Type() {
	case King:
		cr.revoke(us, true)
		cr.revoke(us, false)
	case Rook:
		if m.From.Row == us.backRow() {
			switch m.From.Col {
			case 0:
				cr.revoke(us, false)
			case 7:
				cr.revoke(us, true)
			}
		}
	}

	if m.Captured.Type() == Rook {
		them := m.Captured.Color()
		if m.To.Row == them.backRow() {
			switch m.To.Col {
			case 0:
				cr.revoke(them, false)
			case 7:
				cr.revoke(them, true)
			}
		}
	}
}
