package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var usageService UsageServiceInterface

func SetUsageService(service UsageServiceInterface) {
	usageService = service
}

// GetUsageLimit возвращает лимит вместе с использованием за сегодня
func GetUsageLimit(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}
	packageName := c.Param("package")

	limit, err := usageService.GetUsageLimit(deviceID, packageName)
	if err != nil {
		respondError(c, err)
		return
	}
	used, err := usageService.UsageToday(c.Request.Context(), deviceID, packageName, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": limit, "used_today_minutes": used})
}

func SetUsageLimit(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	var request struct {
		LimitMinutes int `json:"limit_minutes" binding:"min=0,max=1440"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := usageService.SetUsageLimit(c.Request.Context(), deviceID, c.Param("package"), request.LimitMinutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": limit})
}

// ReportUsage принимает минуты использования от агента на устройстве
func ReportUsage(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	var request struct {
		Minutes int `json:"minutes" binding:"required,min=1,max=1440"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	at, ok := instantParam(c, "at")
	if !ok {
		return
	}

	total, err := usageService.ReportUsage(c.Request.Context(), deviceID, c.Param("package"), request.Minutes, at)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"used_today_minutes": total})
}
