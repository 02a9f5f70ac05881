package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/galisofc/notificacondo/internal/config"
)

// APIError is a non-2xx answer from the Graph API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph API error: status %d - %s", e.StatusCode, e.Body)
}

type Client struct {
	Config     *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		Config:     cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) baseURL() string {
	return "https://graph.facebook.com/" + c.Config.GraphAPIVersion
}

func (c *Client) sendRequest(ctx context.Context, method, rawURL string, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.Config.WhatsAppToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return respBody, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// ListTemplates fetches the full WABA template catalog, following paging
// cursors until exhausted. All statuses are returned; callers filter.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	if c.Config.WhatsAppBusinessAccountID == "" {
		return nil, fmt.Errorf("WABA_ID not configured")
	}

	next := fmt.Sprintf("%s/%s/message_templates?fields=%s&limit=100",
		c.baseURL(),
		c.Config.WhatsAppBusinessAccountID,
		url.QueryEscape("id,name,status,category,language,quality_score,rejected_reason,components"))

	var all []Template
	for next != "" {
		resp, err := c.sendRequest(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		var page templateListPage
		if err := json.Unmarshal(resp, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Data...)
		next = page.Paging.Next
	}

	return all, nil
}

// CreateTemplate submits a new template for Meta review.
func (c *Client) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*CreateTemplateResponse, error) {
	if c.Config.WhatsAppBusinessAccountID == "" {
		return nil, fmt.Errorf("WABA_ID not configured")
	}

	rawURL := fmt.Sprintf("%s/%s/message_templates", c.baseURL(), c.Config.WhatsAppBusinessAccountID)
	resp, err := c.sendRequest(ctx, http.MethodPost, rawURL, req)
	if err != nil {
		return nil, err
	}

	var result CreateTemplateResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTemplate deletes a template by name from the WABA.
func (c *Client) DeleteTemplate(ctx context.Context, templateName string) error {
	rawURL := fmt.Sprintf("%s/%s/message_templates?name=%s",
		c.baseURL(), c.Config.WhatsAppBusinessAccountID, url.QueryEscape(templateName))
	_, err := c.sendRequest(ctx, http.MethodDelete, rawURL, nil)
	return err
}
