package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tarapoker/tarapoker/game"
	"github.com/tarapoker/tarapoker/server/connection"
	"github.com/tarapoker/tarapoker/server/events"
	"github.com/tarapoker/tarapoker/server/handlers"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

const pingInterval = 10 * time.Second

// Server owns the single game session and its WebSocket viewers.
type Server struct {
	cfg         Config
	table       *game.Table
	connMgr     *connection.Manager
	cmdRouter   *handlers.CommandRouter
	broadcaster *events.Broadcaster
}

// NewServer wires the table engine to the transport.
func NewServer(cfg Config) *Server {
	table := game.NewTable(cfg.TableSeats, cfg.StartingChips)
	connMgr := connection.NewManager()
	broadcaster := events.NewBroadcaster(table, connMgr)
	cmdRouter := handlers.NewCommandRouter(table, broadcaster)

	return &Server{
		cfg:         cfg,
		table:       table,
		connMgr:     connMgr,
		cmdRouter:   cmdRouter,
		broadcaster: broadcaster,
	}
}

// Table exposes the session aggregate, mainly for tests.
func (s *Server) Table() *game.Table {
	return s.table
}

// Start begins serving on the configured port and blocks.
func (s *Server) Start() error {
	go s.connMgr.Start()

	log.Printf("Starting server on port %s", s.cfg.Port)
	return http.ListenAndServe("0.0.0.0:"+s.cfg.Port, s.routes())
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Tarapoker backend is running!"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})
	r.Get("/api/table", s.handleGetTable)
	r.Get("/ws", s.handleWebSocket)

	if s.cfg.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.cfg.StaticDir))
		r.Handle("/public/*", http.StripPrefix("/public/", fileServer))
	}

	return r
}

// handleGetTable returns the public view of the session.
func (s *Server) handleGetTable(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.table.Snapshot(""))
}

// handleWebSocket upgrades the connection and starts the client's pumps.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	clientID := uuid.NewString()
	log.Printf("New client connected: %s with ID: %s", r.RemoteAddr, clientID)

	client := &connection.Client{
		ID:   clientID,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	s.connMgr.Register <- client

	go s.readPump(client)
	go s.writePump(client)

	// Greet the new viewer with the current state
	s.broadcaster.SendStateTo(clientID)
}

// readPump reads commands from the WebSocket connection. A disconnect is
// processed through the same serialized table path as any other action.
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
		if err := s.table.Leave(client.ID); err == nil {
			s.broadcaster.BroadcastState()
		}
		log.Printf("Client disconnected: %s", client.ID)
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error: %v", err)
			}
			break
		}

		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			log.Printf("Error handling command from %s: %v", client.ID, err)
		}
	}
}

// writePump sends queued messages to the WebSocket connection and keeps it
// alive with periodic pings.
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing message: %v", err)
				return
			}
		case <-ticker.C:
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
