package models

import (
	"time"
)

// ButtonConfig describes the single optional call-to-action attached to a
// template. For url buttons, DynamicSuffix marks that a per-message suffix is
// appended to BaseURL at send time.
type ButtonConfig struct {
	Type          string `json:"type"` // url, quick_reply, call
	Text          string `json:"text"`
	BaseURL       string `json:"base_url,omitempty"`
	DynamicSuffix bool   `json:"dynamic_suffix,omitempty"`
}

// MessageTemplate is a message template owned by the platform. It may be
// linked to an approved WABA template; WabaTemplateName and WabaLanguage are
// both nil (unlinked) or both set (linked).
type MessageTemplate struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Slug        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	Name        string `gorm:"type:varchar(255)" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Content     string `gorm:"type:text" json:"content"`

	Variables   []string      `gorm:"serializer:json;type:text" json:"variables"`
	ParamsOrder []string      `gorm:"serializer:json;type:text" json:"params_order,omitempty"`
	Button      *ButtonConfig `gorm:"serializer:json;type:text" json:"button_config,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	WabaTemplateName *string `gorm:"type:varchar(512)" json:"waba_template_name"`
	WabaLanguage     *string `gorm:"type:varchar(16)" json:"waba_language"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MessageTemplate) TableName() string {
	return "message_templates"
}

// Linked reports whether the template carries a WABA linkage.
func (t *MessageTemplate) Linked() bool {
	return t.WabaTemplateName != nil && *t.WabaTemplateName != ""
}

// ParamOrder returns the explicit positional ordering when set, otherwise the
// declaration order of Variables.
func (t *MessageTemplate) ParamOrder() []string {
	if len(t.ParamsOrder) > 0 {
		return t.ParamsOrder
	}
	return t.Variables
}

// Plan represents a commercial subscription plan offered to condominiums.
type Plan struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	Name                string `gorm:"type:varchar(255);not null;unique" json:"name"`
	Description         string `gorm:"type:text" json:"description"`
	PriceCents          int64  `gorm:"not null;default:0" json:"price_cents"`
	Currency            string `gorm:"type:varchar(8);not null;default:'BRL'" json:"currency"`
	Interval            string `gorm:"type:varchar(20);not null;default:'monthly'" json:"interval"` // monthly, yearly
	MaxUnits            int64  `gorm:"not null;default:0" json:"max_units"`                         // 0 = unlimited
	MonthlyMessageLimit int64  `gorm:"not null;default:0" json:"monthly_message_limit"`             // 0 = unlimited
	IsActive            bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// SystemSetting is a key/value platform setting persisted in the database and
// synchronized with environment configuration at boot.
type SystemSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
