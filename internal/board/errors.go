package board

import "errors"

var (
	// ErrOutOfBounds is returned for coordinates outside the 8x8 board.
	ErrOutOfBounds = errors.New("square out of bounds")
	// ErrIllegalMove is returned when a requested move is not in the current legal-move list.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidPromotion is returned for a promotion choice other than knight, bishop, rook or queen.
	ErrInvalidPromotion = errors.New("invalid promotion piece")
)
