package http

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/pkg/jwt"
	"github.com/orbislink/agrilink-api/pkg/logger"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

// Mensagem de invalidação: o cliente reage re-consultando o contador de não lidas.
var refreshMessage = []byte(`{"type":"refresh"}`)

// Verificação em tempo de compilação de que o hub implementa RealtimePublisher.
var _ ports.RealtimePublisher = (*NotificationHub)(nil)

// wsClient uma ligação WebSocket de um utilizador. As escritas passam pelo
// canal send para nunca haver escritas concorrentes na mesma ligação.
type wsClient struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// NotificationHub mantém as ligações WebSocket por utilizador e empurra
// invalidações de refresh quando há notificações novas.
type NotificationHub struct {
	mu      sync.RWMutex
	clients map[string]map[*wsClient]struct{} // userID → ligações
	log     *logger.Logger
}

// NewNotificationHub constrói o hub.
func NewNotificationHub(log *logger.Logger) *NotificationHub {
	return &NotificationHub{
		clients: make(map[string]map[*wsClient]struct{}),
		log:     log,
	}
}

// NotifyRefresh envia {"type":"refresh"} a todas as ligações do utilizador.
// Ligações com o buffer cheio são ignoradas; o cliente re-sincroniza no próximo evento.
func (h *NotificationHub) NotifyRefresh(userID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- refreshMessage:
		default:
		}
	}
}

func (h *NotificationHub) register(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*wsClient]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
	h.log.Debug().Str("user_id", client.userID).Msg("ws: ligação aberta")
}

func (h *NotificationHub) unregister(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)
			if len(conns) == 0 {
				delete(h.clients, client.userID)
			}
		}
	}
	h.log.Debug().Str("user_id", client.userID).Msg("ws: ligação fechada")
}

// WSUpgradeMiddleware autentica o upgrade WebSocket. Browsers não enviam
// headers em ligações WS, por isso o token vem no query param "token".
func WSUpgradeMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		token := c.Query("token")
		userID, _, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// WSHandler regista a ligação no hub e bloqueia a ler até o cliente fechar.
func WSHandler(hub *NotificationHub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals(LocalUserID).(string)
		if userID == "" {
			conn.Close()
			return
		}

		client := &wsClient{userID: userID, conn: conn, send: make(chan []byte, 8)}
		hub.register(client)
		defer hub.unregister(client)

		go client.writePump()

		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			// O cliente não envia dados úteis; o read loop serve para detetar o fecho.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
