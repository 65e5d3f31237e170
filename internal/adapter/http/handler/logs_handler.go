package handler

import (
	"strconv"
	"time"

	"strike-connect/internal/adapter/http/dto"
	"strike-connect/pkg/apperror"
	"strike-connect/pkg/logger"
	"strike-connect/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// LogSource is the in-memory log buffer.
type LogSource interface {
	Snapshot() []logger.Entry
	SubscribeWithSnapshot() ([]logger.Entry, chan logger.Entry)
	Unsubscribe(ch chan logger.Entry)
}

// LogsHandler exposes buffered logs and a live websocket stream.
type LogsHandler struct {
	source   LogSource
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewLogsHandler(source LogSource, log zerolog.Logger) *LogsHandler {
	return &LogsHandler{
		source: source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		log: log,
	}
}

// GetLogs handles GET /api/logs. An optional limit keeps the newest entries.
func (h *LogsHandler) GetLogs(c *gin.Context) {
	entries := h.source.Snapshot()

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(c, apperror.Validation("limit must be a non-negative integer"))
			return
		}
		if limit < len(entries) {
			entries = entries[len(entries)-limit:]
		}
	}

	response.OK(c, dto.LogsResponse{Logs: entries})
}

// Stream handles GET /api/logs/stream. The buffered history is replayed
// first, then new entries are pushed as they are written.
func (h *LogsHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("log stream upgrade failed")
		return
	}
	defer conn.Close()

	history, ch := h.source.SubscribeWithSnapshot()
	defer h.source.Unsubscribe(ch)

	for _, e := range history {
		if err := writeEntry(conn, e); err != nil {
			return
		}
	}

	// The read side only services control frames and notices the close.
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if err := writeEntry(conn, e); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeEntry(conn *websocket.Conn, e logger.Entry) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(e)
}
