package controllers

import (
	"FocusLock/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

var scheduleService ScheduleServiceInterface

func SetScheduleService(service ScheduleServiceInterface) {
	scheduleService = service
}

func ListAppSchedules(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	schedules, err := scheduleService.ListAppSchedules(deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedules})
}

func GetAppSchedule(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	schedule, err := scheduleService.GetAppSchedule(deviceID, c.Param("package"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedule})
}

// SetAppSchedule заменяет все расписания приложения
func SetAppSchedule(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	var request struct {
		Schedules           []models.Schedule `json:"schedules"`
		ExcludeFromPomodoro bool              `json:"exclude_from_pomodoro"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := scheduleService.SetAppSchedule(c.Request.Context(), deviceID, c.Param("package"), request.Schedules, request.ExcludeFromPomodoro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedule})
}

func DeleteAppSchedule(c *gin.Context) {
	deviceID, ok := currentDeviceID(c)
	if !ok {
		return
	}

	if err := scheduleService.DeleteAppSchedule(c.Request.Context(), deviceID, c.Param("package")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
