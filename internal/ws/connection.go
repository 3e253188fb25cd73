package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"farehub/internal/models"
	"farehub/internal/service"
)

// ScanSink receives decoded scans from reader connections.
type ScanSink interface {
	RecordScan(ctx context.Context, cardID models.CardID, readerID models.ReaderID, scannedAt time.Time) error
}

// scanFrame is one inbound message from a reader. The reader identity comes
// from the connection, not the frame.
type scanFrame struct {
	CardID    uuid.UUID `json:"card_id"`
	ScannedAt time.Time `json:"scanned_at"`
}

type scanResult struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Frame statuses returned to readers.
const (
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// Connection represents an active reader WebSocket connection.
type Connection struct {
	readerID     uuid.UUID
	ws           *websocket.Conn
	send         chan []byte
	logger       *zap.Logger
	sink         ScanSink
	writeTimeout time.Duration
	onClose      func(readerID uuid.UUID)
}

// NewConnection builds connection wrapper.
func NewConnection(readerID uuid.UUID, ws *websocket.Conn, sink ScanSink, writeTimeout time.Duration, logger *zap.Logger, onClose func(uuid.UUID)) *Connection {
	return &Connection{
		readerID:     readerID,
		ws:           ws,
		send:         make(chan []byte, 16),
		logger:       logger,
		sink:         sink,
		writeTimeout: writeTimeout,
		onClose:      onClose,
	}
}

// ReaderID returns the identifier the reader connected with.
func (c *Connection) ReaderID() uuid.UUID {
	return c.readerID
}

// Start launches read/write pumps.
func (c *Connection) Start(ctx context.Context) {
	go c.writePump(ctx)
	c.readPump(ctx)
}

func (c *Connection) readPump(ctx context.Context) {
	defer c.cleanup()
	c.ws.SetReadLimit(64 * 1024)
	c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, message, err := c.ws.ReadMessage()
		if err != nil {
			c.logger.Info("reader connection closed", zap.String("reader_id", c.readerID.String()), zap.Error(err))
			return
		}

		response := c.process(ctx, message)
		data, err := json.Marshal(response)
		if err != nil {
			c.logger.Warn("failed to encode scan result", zap.Error(err))
			continue
		}
		c.Send(data)
	}
}

// process decodes one scan frame and feeds it to the sink. Unknown cards come
// back Rejected so the gate can refuse entry; anything else the reader cannot
// act on and is reported as a plain error.
func (c *Connection) process(ctx context.Context, raw []byte) scanResult {
	var frame scanFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return scanResult{Status: StatusRejected, Reason: "malformed frame"}
	}
	if frame.CardID == uuid.Nil {
		return scanResult{Status: StatusRejected, Reason: "card_id required"}
	}

	if err := c.sink.RecordScan(ctx, frame.CardID, c.readerID, frame.ScannedAt); err != nil {
		if errors.Is(err, service.ErrUnknownCard) {
			return scanResult{Status: StatusRejected, Reason: "unknown card"}
		}
		c.logger.Warn("failed to record scan",
			zap.String("reader_id", c.readerID.String()),
			zap.Error(err),
		)
		return scanResult{Status: StatusRejected, Reason: "internal error"}
	}

	return scanResult{Status: StatusAccepted}
}

func (c *Connection) writePump(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				_ = c.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, []byte("ping")); err != nil {
				return
			}
		}
	}
}

// Send enqueues a message for writing.
func (c *Connection) Send(msg []byte) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("attempted to send on closed channel", zap.String("reader_id", c.readerID.String()))
		}
	}()
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("dropping outgoing message, buffer full", zap.String("reader_id", c.readerID.String()))
	}
}

// Ping sends ping.
func (c *Connection) Ping() error {
	return c.write(websocket.PingMessage, []byte("ping"))
}

func (c *Connection) write(messageType int, data []byte) error {
	c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.ws.WriteMessage(messageType, data)
}

func (c *Connection) cleanup() {
	close(c.send)
	_ = c.ws.Close()
	if c.onClose != nil {
		c.onClose(c.readerID)
	}
}
