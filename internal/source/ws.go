package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/fixture-merge/internal/model"
)

// WebSocketConfig holds WebSocket source settings.
type WebSocketConfig struct {
	ID        string
	URL       string
	Headers   map[string]string
	Subscribe string        // sent as a text message after connecting, if set
	Timeout   time.Duration // bounds the whole fetch
}

// WebSocket takes a snapshot from a WebSocket feed: it connects, optionally
// subscribes, and returns the first message that carries records. Messages
// without records (acks, heartbeats) are skipped.
type WebSocket struct {
	cfg    WebSocketConfig
	logger *slog.Logger
}

// NewWebSocket creates a WebSocket source.
func NewWebSocket(cfg WebSocketConfig, logger *slog.Logger) *WebSocket {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &WebSocket{cfg: cfg, logger: logger}
}

// ID returns the source ID.
func (w *WebSocket) ID() string { return w.cfg.ID }

// Fetch connects and waits for a snapshot message.
func (w *WebSocket) Fetch(ctx context.Context) ([]model.ScheduleRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.Timeout)
	defer cancel()

	header := http.Header{}
	header.Set("Accept", "application/json")
	for k, v := range w.cfg.Headers {
		header.Set(k, v)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: w.cfg.Timeout,
	}

	conn, _, err := dialer.DialContext(ctx, w.cfg.URL, header)
	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}
	defer func() {
		conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		conn.Close()
	}()

	// Unblock ReadMessage when the caller cancels.
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	deadline, _ := ctx.Deadline()
	conn.SetReadDeadline(deadline)

	if w.cfg.Subscribe != "" {
		conn.SetWriteDeadline(deadline)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(w.cfg.Subscribe)); err != nil {
			return nil, fmt.Errorf("send subscribe: %w", err)
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("wait for snapshot: %w", ctxErr)
			}
			return nil, fmt.Errorf("read websocket: %w", err)
		}

		records, err := Decode(data, w.cfg.ID)
		if err != nil {
			if errors.Is(err, ErrNotRecords) {
				w.logger.Debug("skipping non-snapshot message", "bytes", len(data))
				continue
			}
			return nil, err
		}

		w.logger.Debug("websocket snapshot received", "records", len(records))
		return records, nil
	}
}
