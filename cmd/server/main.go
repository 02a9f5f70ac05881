package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/galisofc/notificacondo/internal/api"
	"github.com/galisofc/notificacondo/internal/config"
	"github.com/galisofc/notificacondo/internal/database"
	"github.com/galisofc/notificacondo/internal/template"
	"github.com/galisofc/notificacondo/internal/webhook"
	"github.com/galisofc/notificacondo/internal/whatsapp"
	"github.com/galisofc/notificacondo/internal/ws"
)

func main() {
	cfg := config.LoadConfig()
	database.InitGorm(cfg)
	database.SyncConfig(cfg)

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	hub := ws.NewHub()
	go hub.Run()

	whatsappClient := whatsapp.NewClient(cfg)
	store := template.NewStore(database.GormDB)
	syncer := template.NewSyncer(store, whatsappClient, template.SlugVendorNames, hub)

	templateHandler := api.NewTemplateHandler(store, syncer, whatsappClient)
	planHandler := api.NewPlanHandler(database.GormDB)
	settingsHandler := api.NewSettingsHandler(database.GormDB)
	webhookHandler := webhook.NewHandler(cfg, hub)

	// Webhook Routes
	r.GET("/webhook", webhookHandler.VerifyWebhook)
	r.POST("/webhook", webhookHandler.HandleEvent)

	// Dashboard realtime events
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	// Dashboard API Routes
	apiGroup := r.Group("/api")
	{
		// Template Routes
		apiGroup.GET("/templates", templateHandler.GetTemplates)
		apiGroup.POST("/templates", templateHandler.CreateTemplate)
		apiGroup.PUT("/templates/:id", templateHandler.UpdateTemplate)
		apiGroup.POST("/templates/:id/reset", templateHandler.ResetTemplate)
		apiGroup.POST("/templates/:id/submit", templateHandler.SubmitTemplate)
		apiGroup.POST("/templates/:id/unlink", templateHandler.UnlinkTemplate)
		apiGroup.DELETE("/templates/:id/waba", templateHandler.DeleteVendorTemplate)
		apiGroup.POST("/templates/preview", templateHandler.PreviewTemplate)
		apiGroup.GET("/templates/catalog", templateHandler.GetCatalog)
		apiGroup.POST("/templates/sync", templateHandler.SyncTemplates)
		apiGroup.POST("/templates/verify", templateHandler.VerifyTemplates)

		// Plan Routes
		apiGroup.GET("/plans", planHandler.GetPlans)
		apiGroup.GET("/plans/:id", planHandler.GetPlan)
		apiGroup.POST("/plans", planHandler.CreatePlan)
		apiGroup.PUT("/plans/:id", planHandler.UpdatePlan)
		apiGroup.DELETE("/plans/:id", planHandler.DeletePlan)

		// Settings Routes
		apiGroup.GET("/settings", settingsHandler.GetSettings)
		apiGroup.POST("/settings", settingsHandler.UpsertSetting)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
