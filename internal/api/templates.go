package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/galisofc/notificacondo/internal/models"
	"github.com/galisofc/notificacondo/internal/template"
	"github.com/galisofc/notificacondo/internal/whatsapp"
)

// VendorGateway is the slice of the Graph API client the template handlers
// depend on. *whatsapp.Client satisfies it.
type VendorGateway interface {
	ListTemplates(ctx context.Context) ([]whatsapp.Template, error)
	CreateTemplate(ctx context.Context, req whatsapp.CreateTemplateRequest) (*whatsapp.CreateTemplateResponse, error)
	DeleteTemplate(ctx context.Context, name string) error
}

type TemplateHandler struct {
	Store  template.Store
	Syncer *template.Syncer
	Client VendorGateway
}

func NewTemplateHandler(store template.Store, syncer *template.Syncer, client VendorGateway) *TemplateHandler {
	return &TemplateHandler{Store: store, Syncer: syncer, Client: client}
}

// GetTemplates returns all local templates.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	templates, err := h.Store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if templates == nil {
		templates = []models.MessageTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

type createTemplateRequest struct {
	Slug        string               `json:"slug" binding:"required"`
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Content     string               `json:"content"`
	Variables   []string             `json:"variables"`
	ParamsOrder []string             `json:"params_order"`
	Button      *models.ButtonConfig `json:"button_config"`
}

// CreateTemplate creates a local template. Content defaults to the built-in
// text for the slug, and variables are extracted from content when omitted.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := req.Content
	if content == "" {
		content = template.DefaultContents[req.Slug]
	}
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required for slugs without a built-in default"})
		return
	}

	variables := req.Variables
	if len(variables) == 0 {
		variables = template.ExtractVariables(content)
	}

	tmpl := &models.MessageTemplate{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Content:     content,
		Variables:   variables,
		ParamsOrder: req.ParamsOrder,
		Button:      req.Button,
		IsActive:    true,
	}

	if err := h.Store.Create(c.Request.Context(), tmpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tmpl)
}

type updateTemplateRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Content     *string              `json:"content"`
	Variables   []string             `json:"variables"`
	ParamsOrder []string             `json:"params_order"`
	Button      *models.ButtonConfig `json:"button_config"`
	IsActive    *bool                `json:"is_active"`
}

// UpdateTemplate mutates human-facing metadata and content of a template.
// The slug and linkage fields are not editable here.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	id := c.Param("id")

	tmpl, err := h.Store.Get(c.Request.Context(), id)
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		tmpl.Name = *req.Name
	}
	if req.Description != nil {
		tmpl.Description = *req.Description
	}
	if req.Content != nil {
		tmpl.Content = *req.Content
		tmpl.Variables = template.ExtractVariables(tmpl.Content)
	}
	if req.Variables != nil {
		tmpl.Variables = req.Variables
	}
	if req.ParamsOrder != nil {
		tmpl.ParamsOrder = req.ParamsOrder
	}
	if req.Button != nil {
		tmpl.Button = req.Button
	}
	if req.IsActive != nil {
		tmpl.IsActive = *req.IsActive
	}

	if err := h.Store.Update(c.Request.Context(), tmpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tmpl)
}

// ResetTemplate restores the built-in content for the template's slug.
func (h *TemplateHandler) ResetTemplate(c *gin.Context) {
	id := c.Param("id")

	tmpl, err := h.Store.Get(c.Request.Context(), id)
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	content, ok := template.DefaultContents[tmpl.Slug]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no built-in default for slug " + tmpl.Slug})
		return
	}

	tmpl.Content = content
	tmpl.Variables = template.ExtractVariables(content)

	if err := h.Store.Update(c.Request.Context(), tmpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tmpl)
}

type previewRequest struct {
	TemplateID string            `json:"template_id"`
	Content    string            `json:"content"`
	Values     map[string]string `json:"values"`
	UseVendor  bool              `json:"use_vendor"`
}

// PreviewTemplate renders template content with supplied values, falling
// back to the built-in sample values, and returns both the plain text and
// the HTML form with bold markup translated.
//
// With use_vendor set on a linked template, the body text of the approved
// vendor template is rendered instead, with its positional slots resolved
// through the template's parameter order. A vendor template without body
// text falls back to the local content.
func (h *TemplateHandler) PreviewTemplate(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := req.Content
	var params []string
	if req.TemplateID != "" {
		tmpl, err := h.Store.Get(c.Request.Context(), req.TemplateID)
		if err != nil {
			h.notFoundOr500(c, err)
			return
		}
		if content == "" {
			content = tmpl.Content
		}
		params = tmpl.ParamOrder()

		if req.UseVendor && req.Content == "" && tmpl.Linked() {
			vendorBody, err := h.vendorBodyText(c.Request.Context(), *tmpl.WabaTemplateName)
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch templates from Meta: " + err.Error()})
				return
			}
			if vendorBody != "" {
				content = vendorBody
			}
		}
	}

	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content or template_id is required"})
		return
	}

	rendered := template.Render(content, params, req.Values, template.DefaultVariableValues)

	c.JSON(http.StatusOK, gin.H{
		"preview":      rendered,
		"preview_html": template.RenderBold(rendered),
	})
}

// vendorBodyText looks up a template by name in the live catalog and returns
// its BODY text, or "" when the template or its body is absent.
func (h *TemplateHandler) vendorBodyText(ctx context.Context, name string) (string, error) {
	catalog, err := h.Client.ListTemplates(ctx)
	if err != nil {
		return "", err
	}
	for i := range catalog {
		if catalog[i].Name == name {
			return catalog[i].BodyText(), nil
		}
	}
	return "", nil
}

// GetCatalog returns the live WABA template catalog.
func (h *TemplateHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.Client.ListTemplates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch templates from Meta: " + err.Error()})
		return
	}
	if catalog == nil {
		catalog = []whatsapp.Template{}
	}
	c.JSON(http.StatusOK, catalog)
}

// SyncTemplates runs the reconciliation pipeline and reports how many
// templates were linked, left unresolved or failed to persist.
func (h *TemplateHandler) SyncTemplates(c *gin.Context) {
	report, err := h.Syncer.Sync(c.Request.Context())
	if err != nil {
		if errors.Is(err, template.ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// VerifyTemplates clears linkages whose vendor template disappeared.
func (h *TemplateHandler) VerifyTemplates(c *gin.Context) {
	report, err := h.Syncer.Verify(c.Request.Context())
	if err != nil {
		if errors.Is(err, template.ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

type submitRequest struct {
	Name             string            `json:"name"`
	Language         string            `json:"language"`
	Category         string            `json:"category"`
	HeaderType       string            `json:"header_type"`
	HeaderText       string            `json:"header_text"`
	HeaderMediaRef   string            `json:"header_media_ref"`
	FooterText       string            `json:"footer_text"`
	VariableExamples map[string]string `json:"variable_examples"`
}

// SubmitTemplate composes the local template into Meta's format, submits it
// for review and, only after Meta accepts, persists the linkage. The two
// steps are not transactional: an accepted submission whose local write
// fails is reported so the operator can re-run sync.
func (h *TemplateHandler) SubmitTemplate(c *gin.Context) {
	id := c.Param("id")

	tmpl, err := h.Store.Get(c.Request.Context(), id)
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	composed, err := template.Compose(tmpl, template.ComposeOverrides{
		Name:             req.Name,
		Language:         req.Language,
		Category:         req.Category,
		HeaderType:       req.HeaderType,
		HeaderText:       req.HeaderText,
		HeaderMediaRef:   req.HeaderMediaRef,
		FooterText:       req.FooterText,
		VariableExamples: req.VariableExamples,
	})
	if err != nil {
		var verr *template.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Client.CreateTemplate(c.Request.Context(), composed)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Meta rejected the submission: " + err.Error()})
		return
	}

	if err := h.Store.SetLink(c.Request.Context(), tmpl.ID, composed.Name, composed.Language); err != nil {
		log.Printf("Template %s accepted by Meta but linkage write failed: %v", tmpl.ID, err)
		c.JSON(http.StatusAccepted, gin.H{
			"status":             "Submitted, but local linkage was not saved; run sync to repair",
			"waba_template_name": composed.Name,
			"review_status":      resp.Status,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":             "Template submitted for review",
		"waba_template_name": composed.Name,
		"waba_language":      composed.Language,
		"review_status":      resp.Status,
	})
}

// DeleteVendorTemplate removes the linked template from the WABA and then
// clears the local linkage. Deletion at the vendor is by name and affects
// all languages of that template.
func (h *TemplateHandler) DeleteVendorTemplate(c *gin.Context) {
	id := c.Param("id")

	tmpl, err := h.Store.Get(c.Request.Context(), id)
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}

	if !tmpl.Linked() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Template is not linked to a WABA template"})
		return
	}

	vendorName := *tmpl.WabaTemplateName
	if err := h.Client.DeleteTemplate(c.Request.Context(), vendorName); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete template at Meta: " + err.Error()})
		return
	}

	if err := h.Store.ClearLink(c.Request.Context(), id); err != nil {
		log.Printf("Template %s deleted at Meta but local unlink failed: %v", id, err)
		c.JSON(http.StatusAccepted, gin.H{
			"status":             "Deleted at Meta, but local unlink failed; run verify to repair",
			"waba_template_name": vendorName,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Vendor template deleted", "waba_template_name": vendorName})
}

// UnlinkTemplate manually clears the WABA linkage.
func (h *TemplateHandler) UnlinkTemplate(c *gin.Context) {
	id := c.Param("id")

	if err := h.Store.ClearLink(c.Request.Context(), id); err != nil {
		h.notFoundOr500(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Template unlinked"})
}

func (h *TemplateHandler) notFoundOr500(c *gin.Context, err error) {
	if errors.Is(err, template.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
