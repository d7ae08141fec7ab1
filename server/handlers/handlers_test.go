package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarapoker/tarapoker/game"
	"github.com/tarapoker/tarapoker/server/connection"
	"github.com/tarapoker/tarapoker/server/events"
)

func setupRouter() (*game.Table, *connection.Manager, *CommandRouter) {
	table := game.NewTable(6, 1000)
	connMgr := connection.NewManager()
	go connMgr.Start()

	broadcaster := events.NewBroadcaster(table, connMgr)
	return table, connMgr, NewCommandRouter(table, broadcaster)
}

func connect(t *testing.T, connMgr *connection.Manager, id string) *connection.Client {
	t.Helper()

	client := &connection.Client{ID: id, Send: make(chan []byte, 16)}
	connMgr.Register <- client
	require.Eventually(t, func() bool {
		return connMgr.IsConnected(id)
	}, time.Second, time.Millisecond)
	return client
}

func nextEnvelope(t *testing.T, client *connection.Client) events.Envelope {
	t.Helper()

	select {
	case raw := <-client.Send:
		var env events.Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		return env
	case <-time.After(time.Second):
		t.Fatalf("no message received by %s", client.ID)
		return events.Envelope{}
	}
}

func drain(client *connection.Client) {
	for {
		select {
		case <-client.Send:
		default:
			return
		}
	}
}

func TestJoinProducesStateSnapshot(t *testing.T) {
	_, connMgr, router := setupRouter()
	client := connect(t, connMgr, "c1")

	err := router.HandleCommand(client, []byte(`{"name":"join","playerName":"Alice"}`))
	require.NoError(t, err)

	env := nextEnvelope(t, client)
	assert.Equal(t, "state", env.Name)

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(env.Payload, &snap))
	require.Len(t, snap.Seats, 1)
	assert.Equal(t, "Alice", snap.Seats[0].Name)
	assert.Equal(t, 1000, snap.Seats[0].Chips)
}

func TestRejectionGoesToOffenderOnly(t *testing.T) {
	_, connMgr, router := setupRouter()
	c1 := connect(t, connMgr, "c1")
	c2 := connect(t, connMgr, "c2")

	require.NoError(t, router.HandleCommand(c1, []byte(`{"name":"join","playerName":"Alice"}`)))
	require.NoError(t, router.HandleCommand(c2, []byte(`{"name":"join","playerName":"Bob"}`)))
	require.NoError(t, router.HandleCommand(c1, []byte(`{"name":"deal"}`)))
	drain(c1)
	drain(c2)

	// Bob acts while it is Alice's turn
	require.NoError(t, router.HandleCommand(c2, []byte(`{"name":"bet","amount":100}`)))

	env := nextEnvelope(t, c2)
	assert.Equal(t, "error", env.Name)

	var payload events.ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "OutOfTurn", payload.Code)

	// Alice hears nothing about it
	select {
	case raw := <-c1.Send:
		t.Fatalf("unexpected message to c1: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNonNumericAmountRejectedAtBoundary(t *testing.T) {
	table, connMgr, router := setupRouter()
	client := connect(t, connMgr, "c1")

	require.NoError(t, router.HandleCommand(client, []byte(`{"name":"join","playerName":"Alice"}`)))
	drain(client)

	require.NoError(t, router.HandleCommand(client, []byte(`{"name":"bet","amount":"everything"}`)))

	env := nextEnvelope(t, client)
	assert.Equal(t, "error", env.Name)

	var payload events.ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "InvalidAmount", payload.Code)

	// The table never saw the command
	assert.Equal(t, 0, table.Snapshot("").Pot)
}

func TestUnknownCommandIsATransportError(t *testing.T) {
	_, connMgr, router := setupRouter()
	client := connect(t, connMgr, "c1")

	err := router.HandleCommand(client, []byte(`{"name":"cheat"}`))
	assert.Error(t, err)
}

func TestBetCallFlowBroadcastsFlop(t *testing.T) {
	_, connMgr, router := setupRouter()
	c1 := connect(t, connMgr, "c1")
	c2 := connect(t, connMgr, "c2")

	require.NoError(t, router.HandleCommand(c1, []byte(`{"name":"join","playerName":"Alice"}`)))
	require.NoError(t, router.HandleCommand(c2, []byte(`{"name":"join","playerName":"Bob"}`)))
	require.NoError(t, router.HandleCommand(c1, []byte(`{"name":"deal"}`)))
	require.NoError(t, router.HandleCommand(c1, []byte(`{"name":"bet","amount":100}`)))
	drain(c1)
	drain(c2)

	require.NoError(t, router.HandleCommand(c2, []byte(`{"name":"call"}`)))

	env := nextEnvelope(t, c1)
	require.Equal(t, "state", env.Name)

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(env.Payload, &snap))
	assert.Equal(t, "flop", snap.Stage)
	assert.Len(t, snap.CommunityCards, 3)
	assert.Equal(t, 200, snap.Pot)
	assert.Len(t, snap.Hand, 2, "each viewer sees their own hole cards")
}

func TestLeaveEmptiesTheTable(t *testing.T) {
	table, connMgr, router := setupRouter()
	client := connect(t, connMgr, "c1")

	require.NoError(t, router.HandleCommand(client, []byte(`{"name":"join","playerName":"Alice"}`)))
	require.NoError(t, router.HandleCommand(client, []byte(`{"name":"leave"}`)))

	assert.Equal(t, 0, table.PlayerCount())
}
