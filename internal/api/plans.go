package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/galisofc/notificacondo/internal/models"
)

type PlanHandler struct {
	DB *gorm.DB
}

func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{DB: db}
}

func (h *PlanHandler) GetPlans(c *gin.Context) {
	var plans []models.Plan
	if err := h.DB.Order("price_cents asc").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	var plan models.Plan
	if err := h.DB.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

type planRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	PriceCents          int64  `json:"price_cents"`
	Currency            string `json:"currency"`
	Interval            string `json:"interval"`
	MaxUnits            int64  `json:"max_units"`
	MonthlyMessageLimit int64  `json:"monthly_message_limit"`
	IsActive            *bool  `json:"is_active"`
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := models.Plan{
		Name:                req.Name,
		Description:         req.Description,
		PriceCents:          req.PriceCents,
		Currency:            req.Currency,
		Interval:            req.Interval,
		MaxUnits:            req.MaxUnits,
		MonthlyMessageLimit: req.MonthlyMessageLimit,
		IsActive:            true,
	}
	if plan.Currency == "" {
		plan.Currency = "BRL"
	}
	if plan.Interval == "" {
		plan.Interval = "monthly"
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := h.DB.Create(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var plan models.Plan
	if err := h.DB.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.PriceCents = req.PriceCents
	plan.MaxUnits = req.MaxUnits
	plan.MonthlyMessageLimit = req.MonthlyMessageLimit
	if req.Currency != "" {
		plan.Currency = req.Currency
	}
	if req.Interval != "" {
		plan.Interval = req.Interval
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&plan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	result := h.DB.Delete(&models.Plan{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Plan deleted"})
}
