package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/galisofc/notificacondo/internal/models"
)

// secretKeys are settings whose values are masked in list responses.
var secretKeys = map[string]bool{
	"WHATSAPP_TOKEN": true,
	"VERIFY_TOKEN":   true,
}

type SettingsHandler struct {
	DB *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{DB: db}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	var settings []models.SystemSetting
	if err := h.DB.Order("key asc").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i := range settings {
		if secretKeys[settings[i].Key] && settings[i].Value != "" {
			settings[i].Value = "********"
		}
	}

	if settings == nil {
		settings = []models.SystemSetting{}
	}
	c.JSON(http.StatusOK, settings)
}

type settingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// UpsertSetting creates or replaces a platform setting. Changes take effect
// on next boot for values read into config at startup.
func (h *SettingsHandler) UpsertSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting := models.SystemSetting{Key: req.Key, Value: req.Value}
	err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Setting saved", "key": req.Key})
}
