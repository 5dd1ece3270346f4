package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-game-api/internal/middleware"
)

// Ключи контекста для числовых параметров пути (см. middleware.ExtractUintParam)
const (
	categoryIDKey = "categoryID"
	questionIDKey = "questionID"
	sessionIDKey  = "sessionID"
)

// queryInt читает неотрицательное целое из query, пустое значение дает def
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", name)})
		return 0, false
	}
	return value, true
}

// queryBool читает булев флаг из query, пустое значение дает false
func queryBool(c *gin.Context, name string) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", name)})
		return false, false
	}
	return value, true
}

// pagination читает skip и limit. limit=0 заменяется на defaultLimit.
func pagination(c *gin.Context, defaultLimit int) (skip, limit int, ok bool) {
	if skip, ok = queryInt(c, "skip", 0); !ok {
		return 0, 0, false
	}
	if limit, ok = queryInt(c, "limit", defaultLimit); !ok {
		return 0, 0, false
	}
	if limit == 0 {
		limit = defaultLimit
	}
	return skip, limit, true
}

// pathID достает id, разобранный middleware.ExtractUintParam; без него отвечает 400
func pathID(c *gin.Context, key string) (uint, bool) {
	id, ok := middleware.UintFromContext(c, key)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
