package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sekolahvote/pemira-api/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

// TallyFeed is the live result stream the handler fans out to websocket
// clients. Snapshot serves the frame a client sees on connect; Subscribe
// delivers every subsequent change.
type TallyFeed interface {
	Snapshot(ctx context.Context) (domain.Tally, error)
	Subscribe(ctx context.Context) (<-chan domain.Tally, func())
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
}

type LiveResultsHandler struct {
	svc          BallotService
	feed         TallyFeed
	clients      map[*liveClient]struct{}
	clientsMutex sync.RWMutex
	register     chan *liveClient
	unregister   chan *liveClient
	done         chan struct{}
}

func NewLiveResultsHandler(svc BallotService, feed TallyFeed) *LiveResultsHandler {
	return &LiveResultsHandler{
		svc:        svc,
		feed:       feed,
		clients:    make(map[*liveClient]struct{}),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
		done:       make(chan struct{}),
	}
}

// Run fans tally updates out to every connected client until ctx is
// cancelled. Call it once, in its own goroutine, before mounting the route.
// On return it closes done and releases every connected client, so pumps
// blocked on register or unregister always get out.
func (h *LiveResultsHandler) Run(ctx context.Context) {
	updates, stop := h.feed.Subscribe(ctx)
	defer stop()
	defer func() {
		close(h.done)
		h.clientsMutex.Lock()
		for client := range h.clients {
			close(client.send)
			delete(h.clients, client)
		}
		h.clientsMutex.Unlock()
	}()

	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = struct{}{}
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case tally, ok := <-updates:
			if !ok {
				return
			}
			message, err := json.Marshal(tally)
			if err != nil {
				zap.L().Warn("failed to marshal tally update", zap.Error(err))
				continue
			}
			h.clientsMutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall
					// the broadcast.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.clientsMutex.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// HandleLiveResults godoc
// @Summary      Stream live results over a WebSocket
// @Description  Sends the current tally on connect, then the full tally again on every vote or reset.
// @Tags         ballot
// @Produce      json
// @Success      101      {string}   string "Switching Protocols to WebSocket"
// @Failure      500      {object}   response.Err
// @Router       /results/live [get]
func (h *LiveResultsHandler) HandleLiveResults(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &liveClient{
		conn: conn,
		send: make(chan []byte, 8),
	}

	if message, err := h.currentTally(ctx.Request.Context()); err != nil {
		zap.L().Warn("failed to load tally for new live client", zap.Error(err))
	} else {
		client.send <- message
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()

		return
	}

	go client.writePump()
	go client.readPump(h)
}

// currentTally prefers the cached snapshot and falls back to the store when
// the cache is cold.
func (h *LiveResultsHandler) currentTally(ctx context.Context) ([]byte, error) {
	tally, err := h.feed.Snapshot(ctx)
	if err != nil || tally.Generation == "" {
		tally, err = h.svc.Tally(ctx)
		if err != nil {
			return nil, err
		}
	}

	return json.Marshal(tally)
}

func (c *liveClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames; the stream is one-way. It exists to
// detect the close handshake and unregister the client.
func (c *liveClient) readPump(h *LiveResultsHandler) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("live client read error", zap.Error(err))
			}
			break
		}
	}
}
