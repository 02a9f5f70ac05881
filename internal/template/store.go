package template

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/galisofc/notificacondo/internal/models"
)

// ErrNotFound is returned when a template row does not exist.
var ErrNotFound = errors.New("template not found")

// Store is the persistence contract for local message templates. Linkage
// writes go through SetLink/ClearLink so that waba_template_name and
// waba_language always change together.
type Store interface {
	List(ctx context.Context) ([]models.MessageTemplate, error)
	Get(ctx context.Context, id string) (*models.MessageTemplate, error)
	GetBySlug(ctx context.Context, slug string) (*models.MessageTemplate, error)
	Create(ctx context.Context, t *models.MessageTemplate) error
	Update(ctx context.Context, t *models.MessageTemplate) error
	SetLink(ctx context.Context, id, vendorName, vendorLanguage string) error
	ClearLink(ctx context.Context, id string) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a GORM-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context) ([]models.MessageTemplate, error) {
	var templates []models.MessageTemplate
	err := s.db.WithContext(ctx).Order("slug asc").Find(&templates).Error
	return templates, err
}

func (s *gormStore) Get(ctx context.Context, id string) (*models.MessageTemplate, error) {
	var t models.MessageTemplate
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *gormStore) GetBySlug(ctx context.Context, slug string) (*models.MessageTemplate, error) {
	var t models.MessageTemplate
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *gormStore) Create(ctx context.Context, t *models.MessageTemplate) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *gormStore) Update(ctx context.Context, t *models.MessageTemplate) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *gormStore) SetLink(ctx context.Context, id, vendorName, vendorLanguage string) error {
	result := s.db.WithContext(ctx).Model(&models.MessageTemplate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"waba_template_name": vendorName,
			"waba_language":      vendorLanguage,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ClearLink(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Model(&models.MessageTemplate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"waba_template_name": nil,
			"waba_language":      nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
