package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIVersion - версия, которую сообщает корневой маршрут
const APIVersion = "1.0.0"

// Root сообщает, что сервис запущен
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Green/Red Quiz API",
		"status":  "running",
		"version": APIVersion,
	})
}

// Health используется балансировщиком и оркестратором для проверки живости
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
