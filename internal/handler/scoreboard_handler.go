package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/quiz-game-api/internal/service"
)

const (
	// wsWriteWait - время на запись одного кадра WebSocket
	wsWriteWait = 10 * time.Second
	// wsMaxMessageSize - зрители ничего не присылают, кроме control-кадров
	wsMaxMessageSize = 512
)

// ScoreboardReader отдает текущую таблицу лидеров
type ScoreboardReader interface {
	Top(ctx context.Context, limit int) ([]service.ScoreboardEntry, error)
	TopFresh(ctx context.Context, limit int) ([]service.ScoreboardEntry, error)
	DefaultLimit() int
}

// StandingsWatcher ведет цикл одного зрителя (см. scoreboard.Broker.Watch)
type StandingsWatcher interface {
	Watch(ctx context.Context, interval time.Duration, push func() error, keepalive func() error) error
}

// ScoreboardHandler отдает таблицу лидеров снимком, через SSE и через WebSocket
type ScoreboardHandler struct {
	scoreboard ScoreboardReader
	watcher    StandingsWatcher
	keepalive  time.Duration
	upgrader   gorillaws.Upgrader
}

// NewScoreboardHandler создает обработчик табло.
// allowedOrigins ограничивает WebSocket-подключения из браузера, "*" разрешает любые.
func NewScoreboardHandler(scoreboard ScoreboardReader, watcher StandingsWatcher, keepalive time.Duration, allowedOrigins []string) *ScoreboardHandler {
	return &ScoreboardHandler{
		scoreboard: scoreboard,
		watcher:    watcher,
		keepalive:  keepalive,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// Не браузерный клиент (curl, табло на стенде)
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		log.Printf("[ScoreboardHandler] WebSocket: отклонен origin %s", origin)
		return false
	}
}

// GetScoreboard возвращает топ-N завершенных игр
func (h *ScoreboardHandler) GetScoreboard(c *gin.Context) {
	limit, ok := queryInt(c, "limit", h.scoreboard.DefaultLimit())
	if !ok {
		return
	}

	entries, err := h.scoreboard.Top(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, "ScoreboardHandler", err, "Not found")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// snapshot сериализует текущую таблицу для отправки зрителю; кеш не используется
func (h *ScoreboardHandler) snapshot(ctx context.Context) ([]byte, error) {
	entries, err := h.scoreboard.TopFresh(ctx, h.scoreboard.DefaultLimit())
	if err != nil {
		return nil, err
	}
	return json.Marshal(entries)
}

// Stream отдает таблицу через Server-Sent Events: снимок при подключении,
// новый снимок после каждого изменения и комментарий keepalive в тишине.
func (h *ScoreboardHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	log.Printf("[ScoreboardHandler] SSE: зритель подключился (%s)", c.ClientIP())

	push := func() error {
		payload, err := h.snapshot(ctx)
		if err != nil {
			// Временная ошибка хранилища не должна обрывать поток
			log.Printf("[ScoreboardHandler] SSE: не удалось получить таблицу: %v", err)
			return nil
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}
	keepalive := func() error {
		if _, err := fmt.Fprint(c.Writer, ": keepalive\n\n"); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}

	if err := h.watcher.Watch(ctx, h.keepalive, push, keepalive); err != nil {
		log.Printf("[ScoreboardHandler] SSE: поток прерван: %v", err)
	}
	log.Printf("[ScoreboardHandler] SSE: зритель отключился (%s)", c.ClientIP())
}

// WebSocket отдает ту же таблицу текстовыми кадрами, keepalive - ping-кадры
func (h *ScoreboardHandler) WebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrader уже ответил клиенту
		log.Printf("[ScoreboardHandler] WebSocket: ошибка upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pongWait := 2 * h.keepalive
	if pongWait <= 0 {
		pongWait = time.Minute
	}

	// Чтение нужно только для обработки control-кадров и обнаружения закрытия
	go func() {
		defer cancel()
		conn.SetReadLimit(wsMaxMessageSize)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	push := func() error {
		payload, err := h.snapshot(ctx)
		if err != nil {
			log.Printf("[ScoreboardHandler] WebSocket: не удалось получить таблицу: %v", err)
			return nil
		}
		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
			return err
		}
		return conn.WriteMessage(gorillaws.TextMessage, payload)
	}
	keepalive := func() error {
		return conn.WriteControl(gorillaws.PingMessage, nil, time.Now().Add(wsWriteWait))
	}

	if err := h.watcher.Watch(ctx, h.keepalive, push, keepalive); err != nil {
		log.Printf("[ScoreboardHandler] WebSocket: поток прерван: %v", err)
	}

	conn.WriteControl(gorillaws.CloseMessage,
		gorillaws.FormatCloseMessage(gorillaws.CloseNormalClosure, ""),
		time.Now().Add(wsWriteWait))
}
