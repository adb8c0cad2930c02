package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// forward is the row delta of a pawn advance. Row 0 is rank 8, so white
// pawns move towards lower rows.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// pawnStartRow is the row a pawn of this color may double-step from.
func (c Color) pawnStartRow() int {
	if c == White {
		return 6
	}
	return 1
}

// backRow is the row the king and rooks of this color start on.
func (c Color) backRow() int {
	if c == White {
		return 7
	}
	return 0
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Letter returns the upper-case letter of the piece type ("P", "N", ...).
func (pt PieceType) Letter() byte {
	if pt >= NoPieceType {
		return '-'
	}
	return "PNBRQK"[pt]
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*6
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool {
	return p >= NoPiece
}

// Is reports whether p is a piece of the given type and color.
func (p Piece) Is(pt PieceType, c Color) bool {
	return p == NewPiece(pt, c)
}

// String returns the diagram letter for the piece.
// Uppercase for white, lowercase for black, "." for an empty cell.
func (p Piece) String() string {
	if p >= NoPiece {
		return "."
	}
	chars := "PNBRQKpnbrqk"
	return string(chars[p])
}

// Code returns the two-letter cell id ("wP", "bK"), or "--" for an empty cell.
// Sprite sets are keyed by it.
func (p Piece) Code() string {
	if p >= NoPiece {
		return "--"
	}
	c := byte('w')
	if p.Color() == Black {
		c = 'b'
	}
	return string([]byte{c, p.Type().Letter()})
}
