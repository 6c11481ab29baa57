package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var focusService FocusServiceInterface

func SetFocusService(service FocusServiceInterface) {
	focusService = service
}

func StartFocus(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	var request struct {
		Minutes int `json:"minutes"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	session, err := focusService.Start(deviceID, request.Minutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": session})
}

func StopFocus(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	session, err := focusService.Stop(deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}

func GetFocus(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	session, err := focusService.Active(deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}
