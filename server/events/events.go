package events

import (
	"encoding/json"
	"log"

	"github.com/tarapoker/tarapoker/game"
	"github.com/tarapoker/tarapoker/server/connection"
)

// Envelope wraps an outbound message with its name for client consumption
type Envelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload is the out-of-band rejection sent only to the offending
// actor, with a machine-readable reason code.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Broadcaster publishes table snapshots to viewers. Fan-out is downstream
// of a committed state transition and never feeds back into the table.
type Broadcaster struct {
	table   *game.Table
	connMgr *connection.Manager
}

// NewBroadcaster creates a broadcaster over the given table and connections.
func NewBroadcaster(table *game.Table, connMgr *connection.Manager) *Broadcaster {
	return &Broadcaster{
		table:   table,
		connMgr: connMgr,
	}
}

// BroadcastState sends every connected client its own view of the table,
// each one seeing only its own hole cards.
func (b *Broadcaster) BroadcastState() {
	for _, clientID := range b.connMgr.ClientIDs() {
		b.SendStateTo(clientID)
	}
}

// SendStateTo sends one client its current view of the table.
func (b *Broadcaster) SendStateTo(clientID string) {
	snapshot := b.table.Snapshot(clientID)
	envelope, err := wrap("state", snapshot)
	if err != nil {
		log.Println("failed to marshal state snapshot:", err)
		return
	}
	b.connMgr.SendTo(clientID, envelope)
}

// SendError addresses a rejected action to the offending client only.
func (b *Broadcaster) SendError(clientID string, actionErr error) {
	envelope, err := wrap("error", ErrorPayload{
		Code:    game.ReasonCode(actionErr),
		Message: actionErr.Error(),
	})
	if err != nil {
		log.Println("failed to marshal error payload:", err)
		return
	}
	b.connMgr.SendTo(clientID, envelope)
}

func wrap(name string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Name: name, Payload: raw})
}
