package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"laser-trainer/internal/domain/entity"
	"laser-trainer/internal/domain/port"
	"laser-trainer/internal/infrastructure/logging"
)

const shutdownTimeout = 3 * time.Second

// sessionView состояние сессии для API
type sessionView struct {
	SessionID    string              `json:"session_id"`
	Detected     bool                `json:"detected"`
	Score        *int                `json:"score"`
	Miss         bool                `json:"miss"`
	Position     *entity.TargetPoint `json:"position,omitempty"`
	LastHitAt    *time.Time          `json:"last_hit_at,omitempty"`
	Indicator    entity.Indicator    `json:"indicator"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Shots        int                 `json:"shots"`
	TotalScore   int                 `json:"total_score"`
	Frames       uint64              `json:"frames"`
}

func newSessionView(s entity.Snapshot) sessionView {
	v := sessionView{
		SessionID:    s.SessionID,
		Detected:     s.Detected,
		Indicator:    s.Indicator,
		ErrorMessage: s.ErrorMessage,
		Shots:        s.Shots,
		TotalScore:   s.TotalScore,
		Frames:       s.Frames,
	}
	if s.HasHit {
		score := s.LastScore.Value()
		pos := s.LastPosition
		at := s.LastHitAt
		v.Score = &score
		v.Miss = s.LastScore.IsMiss()
		v.Position = &pos
		v.LastHitAt = &at
	}
	return v
}

// Server HTTP API: здоровье, состояние сессии и websocket с позицией точки
type Server struct {
	engine *gin.Engine
	store  port.SnapshotStore
	hub    *Hub
	logger *zap.Logger
}

// NewServer настраивает маршруты
func NewServer(mode string, store port.SnapshotStore, hub *Hub, logger *zap.Logger) *Server {
	logger = logging.OrNop(logger)
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	s := &Server{engine: r, store: store, hub: hub, logger: logger}

	// Веб-клиент подключается к корню: ws://host:8765
	r.GET("/", s.hub.ServeWS)
	r.GET("/ws", s.hub.ServeWS)
	r.GET("/health", s.health)

	api := r.Group("/api/v1")
	{
		api.GET("/session", s.session)
	}
	return s
}

// Handler возвращает http.Handler для тестов и встраивания
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run слушает addr до отмены ctx
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает ln до отмены ctx, затем закрывает сервер и websocket-клиентов
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		// Shutdown не трогает перехваченные websocket-соединения.
		s.hub.Close()
		return err
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"session_id": s.store.Latest().SessionID,
		"clients":    s.hub.Clients(),
	})
}

func (s *Server) session(c *gin.Context) {
	c.JSON(http.StatusOK, newSessionView(s.store.Latest()))
}
