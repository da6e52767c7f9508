package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
	"laser-trainer/internal/infrastructure/logging"
)

const (
	sendBuffer = 16
	writeWait  = time.Second
)

// positionMessage формат, который ждёт веб-клиент
type positionMessage struct {
	LaserPosition entity.TargetPoint `json:"laser_position"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub рассылает позицию лазерной точки всем подключённым websocket-клиентам.
// Медленный клиент теряет сообщения, цикл обработки не ждёт.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	wg      sync.WaitGroup
}

// NewHub создаёт рассылку
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logging.OrNop(logger),
		clients: make(map[*client]struct{}),
	}
}

// ObservePosition отправляет позицию всем клиентам
func (h *Hub) ObservePosition(p entity.TargetPoint) {
	msg, err := json.Marshal(positionMessage{LaserPosition: p})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Clients возвращает количество подключённых клиентов
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// ServeWS переводит запрос в websocket и держит соединение до его закрытия
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[cl] = struct{}{}
	h.wg.Add(2)
	h.mu.Unlock()
	defer h.wg.Done()
	h.logger.Debug("websocket client connected", zap.String("remote", conn.RemoteAddr().String()))

	done := make(chan struct{})
	go func() {
		defer h.wg.Done()
		h.writePump(cl, done)
	}()

	// Клиент ничего не присылает, читаем только чтобы заметить закрытие.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, cl)
	h.mu.Unlock()
	close(done)
	_ = conn.Close()
}

// Close закрывает все соединения и ждёт завершения их обработчиков.
// После Close новые подключения сразу закрываются.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for c := range h.clients {
		_ = c.conn.Close()
	}
	h.mu.Unlock()

	h.wg.Wait()
}

func (h *Hub) writePump(cl *client, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				_ = cl.conn.Close()
				return
			}
		}
	}
}

// Проверка реализации интерфейса
var _ port.PositionObserver = (*Hub)(nil)
