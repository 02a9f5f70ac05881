package webhook

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/galisofc/notificacondo/internal/config"
	"github.com/galisofc/notificacondo/internal/whatsapp"
	"github.com/galisofc/notificacondo/internal/ws"
)

// StatusUpdatePayload is Meta's webhook envelope for template lifecycle
// events (field message_template_status_update).
type StatusUpdatePayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				Event                   string `json:"event"` // APPROVED, REJECTED, DISABLED, IN_APPEAL, PENDING
				MessageTemplateID       int64  `json:"message_template_id"`
				MessageTemplateName     string `json:"message_template_name"`
				MessageTemplateLanguage string `json:"message_template_language"`
				Reason                  string `json:"reason,omitempty"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// TemplateStatusEvent is what the dashboard receives over the ws hub.
type TemplateStatusEvent struct {
	TemplateName string                  `json:"template_name"`
	Language     string                  `json:"language"`
	Status       whatsapp.TemplateStatus `json:"status"`
	Reason       string                  `json:"reason,omitempty"`
}

type Handler struct {
	Config *config.Config
	Hub    *ws.Hub
}

func NewHandler(cfg *config.Config, hub *ws.Hub) *Handler {
	return &Handler{
		Config: cfg,
		Hub:    hub,
	}
}

func (h *Handler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "" && token != "" {
		if mode == "subscribe" && token == h.Config.VerifyToken {
			log.Println("Webhook verified successfully!")
			c.String(http.StatusOK, challenge)
		} else {
			c.Status(http.StatusForbidden)
		}
	} else {
		c.Status(http.StatusBadRequest)
	}
}

// HandleEvent ingests template status updates from Meta and relays them to
// connected dashboards. Other webhook fields are acknowledged and ignored.
func (h *Handler) HandleEvent(c *gin.Context) {
	var payload StatusUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("Error binding webhook JSON: %v", err)
		c.Status(http.StatusBadRequest)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "message_template_status_update" {
				continue
			}

			event := TemplateStatusEvent{
				TemplateName: change.Value.MessageTemplateName,
				Language:     change.Value.MessageTemplateLanguage,
				Status:       whatsapp.ParseStatus(change.Value.Event),
				Reason:       change.Value.Reason,
			}
			log.Printf("Template %q status update: %s", event.TemplateName, event.Status)

			if h.Hub != nil {
				h.Hub.BroadcastEvent("template_status", event)
			}
		}
	}

	c.Status(http.StatusOK)
}
