package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server upgrades HTTP connections from gate readers to WebSockets. A reader
// registers by connecting; every frame it sends thereafter is one card scan.
type Server struct {
	manager      *Manager
	sink         ScanSink
	logger       *zap.Logger
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// NewServer builds ws server.
func NewServer(manager *Manager, sink ScanSink, writeTimeout time.Duration, logger *zap.Logger) *Server {
	return &Server{
		manager:      manager,
		sink:         sink,
		logger:       logger,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS is the HTTP handler for the /readers/ws endpoint.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	readerID, err := uuid.Parse(r.URL.Query().Get("reader_id"))
	if err != nil {
		http.Error(w, "reader_id must be a valid uuid", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	connection := NewConnection(readerID, conn, s.sink, s.writeTimeout, s.logger, func(id uuid.UUID) {
		s.manager.Remove(id)
		cancel()
	})
	s.manager.Add(connection)

	go connection.Start(ctx)
	s.logger.Info("reader connected", zap.String("reader_id", readerID.String()))
}
