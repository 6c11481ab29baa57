package controllers

import (
	"FocusLock/lockwindow"
	"FocusLock/repositories"
	"FocusLock/services"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// now подменяется в тестах
var now = time.Now

// respondError переводит ошибку сервиса в HTTP-статус
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, services.ErrNoFocusSession):
		status = http.StatusNotFound
	case errors.Is(err, lockwindow.ErrInvalidRule), errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrDeviceExists), errors.Is(err, services.ErrFocusActive):
		status = http.StatusConflict
	case errors.Is(err, services.ErrFirebaseDisabled):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("[api] request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentDeviceID достает ID устройства, установленный в AuthMiddleware
func currentDeviceID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("device_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: missing device_id"})
		return 0, false
	}
	deviceID, ok := value.(uint)
	if !ok || deviceID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: invalid device_id"})
		return 0, false
	}
	return deviceID, true
}

// instantParam читает необязательный параметр в формате RFC 3339, по умолчанию now
func instantParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return now(), true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ": want RFC 3339"})
		return time.Time{}, false
	}
	return at, true
}
