package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/survey-api/internal/handler/dto"
	"github.com/yourusername/survey-api/internal/service"
)

// StatsHandler обрабатывает запросы таблицы лидеров, статистики и бейджей
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler создает новый обработчик статистики
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetLeaderboard возвращает страницу таблицы лидеров
// GET /api/leaderboard?page=1&page_size=10
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}

	leaderboard, err := h.statsService.GetLeaderboard(page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

// ExportLeaderboard экспортирует таблицу лидеров в CSV или Excel формате
// GET /api/leaderboard/export?format=csv|xlsx
func (h *StatsHandler) ExportLeaderboard(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	entries, err := h.statsService.GetLeaderboardAll()
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, entries, filename)
	default:
		h.exportCSV(c, entries, filename)
	}
}

// exportCSV экспортирует таблицу лидеров в CSV с правильным экранированием спецсимволов
func (h *StatsHandler) exportCSV(c *gin.Context, entries []dto.LeaderboardEntry, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Место", "Пользователь", "Очки", "Завершено анкет"})

	for _, e := range entries {
		writer.Write([]string{
			strconv.Itoa(e.Rank),
			sanitizeForExcel(e.Username),
			strconv.FormatInt(e.Points, 10),
			strconv.FormatInt(e.CompletedSurveys, 10),
		})
	}
}

// exportXLSX экспортирует таблицу лидеров в Excel с использованием StreamWriter
func (h *StatsHandler) exportXLSX(c *gin.Context, entries []dto.LeaderboardEntry, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Таблица лидеров"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[StatsHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Место", "Пользователь", "Очки", "Завершено анкет"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[StatsHandler] Ошибка записи заголовков: %v", err)
	}

	for i, e := range entries {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{e.Rank, sanitizeForExcel(e.Username), e.Points, e.CompletedSurveys}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[StatsHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[StatsHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[StatsHandler] Ошибка записи Excel в response: %v", err)
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

// GetUserStats возвращает сводную статистику пользователя
// GET /api/users/me/stats
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	stats, err := h.statsService.GetUserStats(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetStreak возвращает серию и календарь активных дней
// GET /api/users/me/streak
func (h *StatsHandler) GetStreak(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	streak, err := h.statsService.GetStreak(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, streak)
}

// GetBadges возвращает каталог бейджей с отметками о полученных
// GET /api/users/me/badges
func (h *StatsHandler) GetBadges(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	badges, err := h.statsService.GetBadgeProgress(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// GetLevels возвращает все уровни
// GET /api/levels
func (h *StatsHandler) GetLevels(c *gin.Context) {
	levels, err := h.statsService.GetLevels()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"levels": levels})
}
