package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
	"github.com/yourusername/quiz-game-api/internal/handler/dto"
	"github.com/yourusername/quiz-game-api/internal/service"
)

const defaultResultPageSize = 100

// ResultManager - администрирование завершенных игр
type ResultManager interface {
	List(ctx context.Context, skip, limit int) ([]entity.GameSession, error)
	Get(ctx context.Context, id uint) (*entity.GameSession, error)
	Delete(ctx context.Context, id uint) error
	UpdateScore(ctx context.Context, id uint, totalScore int) (*entity.GameSession, error)
	ExportRows(ctx context.Context) ([]service.ExportRow, error)
}

// ResultHandler обрабатывает запросы администратора к результатам игр
type ResultHandler struct {
	resultService ResultManager
	now           func() time.Time
}

// NewResultHandler создает новый обработчик результатов
func NewResultHandler(resultService ResultManager) *ResultHandler {
	return &ResultHandler{resultService: resultService, now: time.Now}
}

// ListResults возвращает завершенные игры, новые первыми
func (h *ResultHandler) ListResults(c *gin.Context) {
	skip, limit, ok := pagination(c, defaultResultPageSize)
	if !ok {
		return
	}

	sessions, err := h.resultService.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if sessions == nil {
		sessions = []entity.GameSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// GetResult возвращает игру с игроком и ответами
func (h *ResultHandler) GetResult(c *gin.Context) {
	id, ok := pathID(c, sessionIDKey)
	if !ok {
		return
	}
	session, err := h.resultService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteResult удаляет игру вместе с ответами
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	sessionID, ok := pathID(c, sessionIDKey)
	if !ok {
		return
	}
	if err := h.resultService.Delete(c.Request.Context(), sessionID); err != nil {
		h.handleError(c, err)
		return
	}
	log.Printf("[ResultHandler] Результат игры #%d удален", sessionID)
	c.Status(http.StatusNoContent)
}

// UpdateScore вручную исправляет итоговый счет
func (h *ResultHandler) UpdateScore(c *gin.Context) {
	sessionID, ok := pathID(c, sessionIDKey)
	if !ok {
		return
	}

	var req dto.UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TotalScore == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid total_score"})
		return
	}

	session, err := h.resultService.UpdateScore(c.Request.Context(), sessionID, *req.TotalScore)
	if err != nil {
		h.handleError(c, err)
		return
	}
	log.Printf("[ResultHandler] Счет игры #%d изменен на %d", sessionID, *req.TotalScore)
	c.JSON(http.StatusOK, session)
}

// ExportResults выгружает завершенные игры в CSV или Excel
// GET /api/results/export?format=csv|xlsx
func (h *ResultHandler) ExportResults(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	rows, err := h.resultService.ExportRows(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	filename := fmt.Sprintf("game_results_%s", h.now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

var exportHeaders = []string{"Rank", "Player", "Email", "Phone", "Score", "Correct", "Wrong", "Unanswered", "Completed At"}

func formatCompletedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// exportCSV выгружает результаты в CSV с правильным экранированием спецсимволов
func (h *ResultHandler) exportCSV(c *gin.Context, rows []service.ExportRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)

	for _, r := range rows {
		writer.Write([]string{
			strconv.Itoa(r.Rank),
			sanitizeForExcel(r.PlayerName),
			sanitizeForExcel(r.Email),
			sanitizeForExcel(r.PhoneNumber),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.CorrectAnswers),
			strconv.Itoa(r.WrongAnswers),
			strconv.Itoa(r.Unanswered),
			formatCompletedAt(r.CompletedAt),
		})
	}
}

// exportXLSX выгружает результаты в Excel с использованием StreamWriter
func (h *ResultHandler) exportXLSX(c *gin.Context, rows []service.ExportRow, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Results"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Printf("[ResultHandler] Ошибка переименования листа: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ResultHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, name := range exportHeaders {
		headers[i] = name
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ResultHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range rows {
		rowNum := i + 2 // 1 - заголовки
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)

		row := []interface{}{
			r.Rank,
			sanitizeForExcel(r.PlayerName),
			sanitizeForExcel(r.Email),
			sanitizeForExcel(r.PhoneNumber),
			r.Score,
			r.CorrectAnswers,
			r.WrongAnswers,
			r.Unanswered,
			formatCompletedAt(r.CompletedAt),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ResultHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ResultHandler] Ошибка при Flush: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ResultHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

func (h *ResultHandler) handleError(c *gin.Context, err error) {
	handleServiceError(c, "ResultHandler", err, "Game session not found")
}
