package poker

import "errors"

// ErrInvalidInput flags structurally impossible evaluator input (fewer cards
// than the required count). This is a programmer error, not a runtime-data
// error.
var ErrInvalidInput = errors.New("poker: invalid input")

// Structured rejection reasons for caller-facing table operations. A rejected
// request is a no-op: state is left unchanged and the caller is expected to
// re-query GetValidActions rather than retry blindly.
var (
	ErrSeatOutOfRange    = errors.New("poker: seat out of range")
	ErrSeatTaken         = errors.New("poker: seat already occupied")
	ErrSeatEmpty         = errors.New("poker: seat is empty")
	ErrDuplicatePlayer   = errors.New("poker: player already seated")
	ErrBuyInOutOfRange   = errors.New("poker: buy-in outside table limits")
	ErrTableFull         = errors.New("poker: no empty seats available")
	ErrHandInProgress    = errors.New("poker: hand already in progress")
	ErrNotEnoughPlayers  = errors.New("poker: not enough players to start a hand")
	ErrNotPlayersTurn    = errors.New("poker: not this seat's turn to act")
	ErrInvalidAction     = errors.New("poker: action not currently legal")
	ErrInvalidAmount     = errors.New("poker: invalid action amount")
	ErrInsufficientChips = errors.New("poker: insufficient chips")
	ErrPlayerInHand      = errors.New("poker: player is dealt into the current hand")
)
