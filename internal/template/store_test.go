package template

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/galisofc/notificacondo/internal/models"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.MessageTemplate{}))
	return NewStore(db)
}

func TestStoreCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tmpl := &models.MessageTemplate{
		Slug:      "package_arrival",
		Name:      "Chegada de encomenda",
		Content:   DefaultContents["package_arrival"],
		Variables: []string{"nome", "condominio"},
		IsActive:  true,
	}
	require.NoError(t, store.Create(ctx, tmpl))
	require.NotEmpty(t, tmpl.ID, "Create must assign an ID")

	got, err := store.Get(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Equal(t, "package_arrival", got.Slug)
	require.Equal(t, []string{"nome", "condominio"}, got.Variables)
	require.False(t, got.Linked())

	bySlug, err := store.GetBySlug(ctx, "package_arrival")
	require.NoError(t, err)
	require.Equal(t, tmpl.ID, bySlug.ID)
}

func TestStoreGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetBySlug(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSetAndClearLink(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tmpl := &models.MessageTemplate{Slug: "invoice_generated", Content: "corpo"}
	require.NoError(t, store.Create(ctx, tmpl))

	require.NoError(t, store.SetLink(ctx, tmpl.ID, "invoice_generated_v2", "pt_BR"))

	got, err := store.Get(ctx, tmpl.ID)
	require.NoError(t, err)
	require.True(t, got.Linked())
	require.Equal(t, "invoice_generated_v2", *got.WabaTemplateName)
	require.Equal(t, "pt_BR", *got.WabaLanguage)

	require.NoError(t, store.ClearLink(ctx, tmpl.ID))

	got, err = store.Get(ctx, tmpl.ID)
	require.NoError(t, err)
	require.False(t, got.Linked())
	require.Nil(t, got.WabaTemplateName)
	require.Nil(t, got.WabaLanguage)
}

func TestStoreLinkMissingRow(t *testing.T) {
	store := newTestStore(t)

	err := store.SetLink(context.Background(), "missing", "x", "pt_BR")
	require.ErrorIs(t, err, ErrNotFound)

	err = store.ClearLink(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tmpl := &models.MessageTemplate{Slug: "maintenance_notice", Content: "v1"}
	require.NoError(t, store.Create(ctx, tmpl))

	tmpl.Content = "v2"
	tmpl.Button = &models.ButtonConfig{Type: "quick_reply", Text: "Ok"}
	require.NoError(t, store.Update(ctx, tmpl))

	got, err := store.Get(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Equal(t, "v2", got.Content)
	require.NotNil(t, got.Button)
	require.Equal(t, "quick_reply", got.Button.Type)
}

func TestStoreList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, slug := range []string{"b_slug", "a_slug"} {
		require.NoError(t, store.Create(ctx, &models.MessageTemplate{Slug: slug, Content: "c"}))
	}

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "a_slug", all[0].Slug, "List is ordered by slug")
}
