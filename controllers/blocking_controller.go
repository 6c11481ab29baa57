package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var blockingService BlockingServiceInterface

func SetBlockingService(service BlockingServiceInterface) {
	blockingService = service
}

// CheckAppLocked отвечает, должно ли приложение быть заблокировано в момент at
func CheckAppLocked(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}
	at, ok := instantParam(c, "at")
	if !ok {
		return
	}

	packageName := c.Param("package")
	decision, err := blockingService.ShouldAppBeLocked(c.Request.Context(), deviceID, packageName, at)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"package_name": packageName,
		"locked":       decision.Locked,
		"reason":       decision.Reason,
		"range":        decision.Range,
		"evaluated_at": at.UTC(),
	})
}

// ReevaluateApps пересчитывает все приложения устройства и отправляет результат
func ReevaluateApps(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	update, err := blockingService.ReevaluateAppBlockingStatus(c.Request.Context(), deviceID, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func GetNextTransition(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}
	at, ok := instantParam(c, "at")
	if !ok {
		return
	}

	next, found, err := blockingService.NextTransition(c.Request.Context(), deviceID, at)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "next": next.UTC()})
}
