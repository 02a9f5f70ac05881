package main

import (
	"context"
	"errors"
	"log"

	"github.com/galisofc/notificacondo/internal/config"
	"github.com/galisofc/notificacondo/internal/database"
	"github.com/galisofc/notificacondo/internal/models"
	"github.com/galisofc/notificacondo/internal/template"
)

var seedTemplates = []struct {
	Slug        string
	Name        string
	Description string
}{
	{"package_arrival", "Chegada de encomenda", "Avisa o morador que uma encomenda chegou na portaria"},
	{"visitor_authorization", "Autorização de visitante", "Pede ao morador autorização de entrada para um visitante"},
	{"invoice_generated", "Boleto gerado", "Avisa o morador que o boleto do mês foi gerado"},
	{"assembly_notice", "Convocação de assembleia", "Convoca os condôminos para assembleia"},
	{"maintenance_notice", "Aviso de manutenção", "Comunica manutenções programadas nas áreas comuns"},
	{"payment_overdue", "Cobrança de atraso", "Notifica boleto em aberto após o vencimento"},
}

var seedPlans = []models.Plan{
	{Name: "Essencial", Description: "Até 50 unidades, avisos básicos", PriceCents: 9900, MaxUnits: 50, MonthlyMessageLimit: 1000},
	{Name: "Profissional", Description: "Até 200 unidades, todos os modelos", PriceCents: 24900, MaxUnits: 200, MonthlyMessageLimit: 5000},
	{Name: "Enterprise", Description: "Unidades e mensagens ilimitadas", PriceCents: 59900},
}

func main() {
	cfg := config.LoadConfig()
	database.InitGorm(cfg)

	store := template.NewStore(database.GormDB)
	ctx := context.Background()

	log.Println("Seeding default templates...")
	created := 0
	for _, seed := range seedTemplates {
		if _, err := store.GetBySlug(ctx, seed.Slug); err == nil {
			continue
		} else if !errors.Is(err, template.ErrNotFound) {
			log.Fatalf("Failed to check template %s: %v", seed.Slug, err)
		}

		content := template.DefaultContents[seed.Slug]
		tmpl := &models.MessageTemplate{
			Slug:        seed.Slug,
			Name:        seed.Name,
			Description: seed.Description,
			Content:     content,
			Variables:   template.ExtractVariables(content),
			IsActive:    true,
		}
		if err := store.Create(ctx, tmpl); err != nil {
			log.Fatalf("Failed to seed template %s: %v", seed.Slug, err)
		}
		created++
	}
	log.Printf("Templates seeded: %d created, %d already present", created, len(seedTemplates)-created)

	log.Println("Seeding plans...")
	created = 0
	for _, plan := range seedPlans {
		var existing models.Plan
		if err := database.GormDB.Where("name = ?", plan.Name).First(&existing).Error; err == nil {
			continue
		}
		plan.Currency = "BRL"
		plan.Interval = "monthly"
		plan.IsActive = true
		if err := database.GormDB.Create(&plan).Error; err != nil {
			log.Fatalf("Failed to seed plan %s: %v", plan.Name, err)
		}
		created++
	}
	log.Printf("Plans seeded: %d created, %d already present", created, len(seedPlans)-created)

	log.Println("DONE!")
}
