package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/tarapoker/tarapoker/game"
	"github.com/tarapoker/tarapoker/server/connection"
	"github.com/tarapoker/tarapoker/server/events"
)

// CommandRouter routes incoming commands to the table. The table itself
// serializes mutations, so the router can be called from any number of
// connection goroutines. Rejections go back to the offending client only;
// accepted commands trigger a fresh snapshot for everyone.
type CommandRouter struct {
	table       *game.Table
	broadcaster *events.Broadcaster
}

// NewCommandRouter creates a new command router
func NewCommandRouter(table *game.Table, broadcaster *events.Broadcaster) *CommandRouter {
	return &CommandRouter{
		table:       table,
		broadcaster: broadcaster,
	}
}

// HandleCommand processes an incoming command message. A malformed or
// rejected command is answered with an error envelope; only transport-level
// failures bubble up as a returned error.
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	var base struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &base); err != nil {
		return fmt.Errorf("malformed command envelope: %w", err)
	}

	var actionErr error
	switch base.Name {
	case Join{}.Name():
		var cmd Join
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		actionErr = r.table.Join(client.ID, cmd.PlayerName)

	case Deal{}.Name():
		actionErr = r.table.Deal()

	case Bet{}.Name():
		var cmd Bet
		if err := json.Unmarshal(message, &cmd); err != nil {
			// non-numeric amount: rejected at the boundary
			r.broadcaster.SendError(client.ID, game.ErrInvalidAmount)
			return nil
		}
		actionErr = r.table.Bet(client.ID, cmd.Amount)

	case Call{}.Name():
		actionErr = r.table.Call(client.ID)

	case Raise{}.Name():
		var cmd Raise
		if err := json.Unmarshal(message, &cmd); err != nil {
			r.broadcaster.SendError(client.ID, game.ErrInvalidAmount)
			return nil
		}
		actionErr = r.table.Raise(client.ID, cmd.Amount)

	case Fold{}.Name():
		actionErr = r.table.Fold(client.ID)

	case Leave{}.Name():
		actionErr = r.table.Leave(client.ID)

	default:
		return fmt.Errorf("unknown command type: %q", base.Name)
	}

	if actionErr != nil {
		r.broadcaster.SendError(client.ID, actionErr)
		return nil
	}

	r.broadcaster.BroadcastState()
	return nil
}
