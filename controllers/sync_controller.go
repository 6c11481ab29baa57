package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var syncService SyncServiceInterface

func SetSyncService(service SyncServiceInterface) {
	syncService = service
}

// PullFromSupabase подтягивает расписания и лимиты, измененные на других устройствах
func PullFromSupabase(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	result, err := syncService.Pull(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
