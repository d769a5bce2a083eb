package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/state"
)

const streamWriteTimeout = 10 * time.Second

type stateStream interface {
	Subscribe() (<-chan []byte, func())
	Encode(s state.AppState) ([]byte, error)
}

type stateSource interface {
	State() state.AppState
}

// StreamHandler pushes every state transition to the operator UI over a websocket.
type StreamHandler struct {
	hub      stateStream
	source   stateSource
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewStreamHandler constructs the handler. An empty origin list accepts any origin.
func NewStreamHandler(hub stateStream, source stateSource, allowedOrigins []string, logger *zap.Logger) *StreamHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}
	return &StreamHandler{
		hub:    hub,
		source: source,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
	}
}

// Stream godoc
// @Summary Live state stream
// @Description Sends the current state on connect, then one message per transition
// @Tags Shell
// @Param token query string false "Session token when headers cannot be set"
// @Success 101
// @Failure 401 {object} response.Envelope
// @Router /ws [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	messages, release := h.hub.Subscribe()
	defer release()

	initial, err := h.hub.Encode(h.source.State())
	if err != nil {
		h.logger.Warn("encode initial state failed", zap.Error(err))
		return
	}
	if err := h.write(conn, initial); err != nil {
		return
	}

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(streamWriteTimeout))
				return
			}
			if err := h.write(conn, msg); err != nil {
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *StreamHandler) write(conn *websocket.Conn, payload []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
		return err
	}
	return nil
}
