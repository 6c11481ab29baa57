package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var authService AuthServiceInterface

func SetAuthService(service AuthServiceInterface) {
	authService = service
}

func RegisterDevice(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Secret   string `json:"secret" binding:"required,min=6"`
		TimeZone string `json:"time_zone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, token, err := authService.RegisterDevice(input.Name, input.Secret, input.TimeZone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": true, "token": token, "data": device})
}

func LoginDevice(c *gin.Context) {
	var input struct {
		Name   string `json:"name" binding:"required"`
		Secret string `json:"secret" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, token, err := authService.LoginDevice(input.Name, input.Secret)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "token": token, "data": device})
}

// AuthenticateFirebase обменивает Firebase ID token на токен устройства
func AuthenticateFirebase(c *gin.Context) {
	var input struct {
		IDToken    string `json:"id_token" binding:"required"`
		DeviceName string `json:"device_name" binding:"required"`
		TimeZone   string `json:"time_zone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, token, err := authService.AuthenticateFirebase(c.Request.Context(), input.IDToken, input.DeviceName, input.TimeZone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": true, "token": token, "data": device})
}

// UpdatePushToken сохраняет FCM токен устройства
func UpdatePushToken(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	var input struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := authService.UpdatePushToken(deviceID, input.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
