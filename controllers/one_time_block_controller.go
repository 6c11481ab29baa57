package controllers

import (
	"FocusLock/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

var oneTimeBlockService OneTimeBlockServiceInterface

func SetOneTimeBlockService(service OneTimeBlockServiceInterface) {
	oneTimeBlockService = service
}

// BlockAppsOnce блокирует приложения на указанное количество часов
func BlockAppsOnce(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	var request models.TempBlockRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blocks, err := oneTimeBlockService.BlockOnce(deviceID, request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": blocks})
}

// GetOneTimeBlocks возвращает активные одноразовые блокировки
func GetOneTimeBlocks(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	blocks, err := oneTimeBlockService.ListActive(deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	if blocks == nil {
		blocks = []models.OneTimeBlock{}
	}
	c.JSON(http.StatusOK, gin.H{"data": blocks})
}

// CancelOneTimeBlocks отменяет блокировки; пустой список отменяет все
func CancelOneTimeBlocks(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	var request struct {
		AppPackages []string `json:"app_packages"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := oneTimeBlockService.Cancel(deviceID, request.AppPackages); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
