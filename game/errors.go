package game

import (
	"errors"

	"github.com/tarapoker/tarapoker/cards"
)

// Action errors. Every rejected action leaves the table untouched and maps
// to a machine-readable reason code via ReasonCode.
var (
	ErrTableFull           = errors.New("table is full")
	ErrAlreadySeated       = errors.New("player already seated")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrOutOfTurn           = errors.New("not this player's turn to act")
	ErrInsufficientFunds   = errors.New("not enough chips")
	ErrNoBetToCall         = errors.New("no bet to call")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrBetAlreadyOpen      = errors.New("a bet is already open, call or raise instead")
	ErrStageAlreadyDealt   = errors.New("cards for this stage are already dealt")
	ErrNotEnoughPlayers    = errors.New("need at least 2 players to start a hand")
	ErrShowdownUnavailable = errors.New("no hand comparator configured for showdown")
)

// ReasonCode maps an engine error to the code sent back to the offending
// client. Unknown errors are reported as internal.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrTableFull):
		return "TableFull"
	case errors.Is(err, ErrPlayerNotFound):
		return "PlayerNotFound"
	case errors.Is(err, ErrOutOfTurn):
		return "OutOfTurn"
	case errors.Is(err, ErrInsufficientFunds):
		return "InsufficientFunds"
	case errors.Is(err, ErrNoBetToCall):
		return "NoBetToCall"
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrBetAlreadyOpen):
		return "InvalidAmount"
	case errors.Is(err, ErrStageAlreadyDealt):
		return "StageAlreadyDealt"
	case errors.Is(err, ErrNotEnoughPlayers):
		return "NotEnoughPlayers"
	case errors.Is(err, ErrAlreadySeated):
		return "AlreadySeated"
	case errors.Is(err, ErrShowdownUnavailable):
		return "ShowdownUnavailable"
	case errors.Is(err, cards.ErrEmptyDeck):
		return "EmptyDeck"
	default:
		return "InternalError"
	}
}
