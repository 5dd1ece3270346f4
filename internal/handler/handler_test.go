package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/quiz-game-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-game-api/internal/pkg/errors"
	"github.com/yourusername/quiz-game-api/internal/service"
	"github.com/yourusername/quiz-game-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(h http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
}

// fakeAuthenticator принимает один токен "admin-token"
type fakeAuthenticator struct{}

func (fakeAuthenticator) Authenticate(_ context.Context, token string) (*auth.AdminClaims, error) {
	if token != "admin-token" {
		return nil, apperrors.ErrUnauthorized
	}
	claims := &auth.AdminClaims{Role: auth.RoleAdmin}
	claims.Subject = "admin"
	claims.ID = "jti-1"
	return claims, nil
}

var adminHeaders = map[string]string{"Authorization": "Bearer admin-token"}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not enough questions", &service.NotEnoughQuestionsError{Need: 15, Found: 3}, http.StatusBadRequest, "Not enough questions available. Need 15, found 3"},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "Thing not found"},
		{"invalid state", fmt.Errorf("%w: Game already completed", apperrors.ErrInvalidState), http.StatusBadRequest, "Game already completed"},
		{"validation", fmt.Errorf("%w: Invalid total_score", apperrors.ErrValidation), http.StatusBadRequest, "Invalid total_score"},
		{"bare validation", apperrors.ErrValidation, http.StatusBadRequest, "Validation failed"},
		{"conflict", apperrors.ErrConflict, http.StatusConflict, "Resource already exists"},
		{"unauthorized", fmt.Errorf("%w: Incorrect username or password", apperrors.ErrUnauthorized), http.StatusUnauthorized, "Incorrect username or password"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handleServiceError(c, "TestHandler", tt.err, "Thing not found")

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			decodeBody(t, w, &body)
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestSanitizeForExcel(t *testing.T) {
	assert.Equal(t, "", sanitizeForExcel(""))
	assert.Equal(t, "Alice Smith", sanitizeForExcel("Alice Smith"))
	assert.Equal(t, "'=HYPERLINK(\"x\")", sanitizeForExcel("=HYPERLINK(\"x\")"))
	assert.Equal(t, "'+33123", sanitizeForExcel("+33123"))
	assert.Equal(t, "'-1", sanitizeForExcel("-1"))
	assert.Equal(t, "'@SUM(A1)", sanitizeForExcel("@SUM(A1)"))
}

func TestPathID(t *testing.T) {
	r := gin.New()
	handle := func(c *gin.Context) {
		id, ok := pathID(c, questionIDKey)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
	r.GET("/with/:id", middleware.ExtractUintParam("id", questionIDKey), handle)
	r.GET("/without/:id", handle)

	w := performRequest(r, http.MethodGet, "/with/42", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())

	w = performRequest(r, http.MethodGet, "/without/42", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "без middleware id не разобран")
	assert.JSONEq(t, `{"error":"Invalid id"}`, w.Body.String())
}
