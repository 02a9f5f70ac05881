package template

import (
	"testing"

	"github.com/galisofc/notificacondo/internal/models"
	"github.com/galisofc/notificacondo/internal/whatsapp"
)

func approved(name, language string) whatsapp.Template {
	return whatsapp.Template{Name: name, Language: language, Status: whatsapp.StatusApproved}
}

func local(id, slug string) models.MessageTemplate {
	return models.MessageTemplate{ID: id, Slug: slug}
}

func linkedLocal(id, slug, vendorName, language string) models.MessageTemplate {
	t := local(id, slug)
	t.WabaTemplateName = &vendorName
	t.WabaLanguage = &language
	return t
}

func TestReconcileTierOrder(t *testing.T) {
	// The slug is both explicitly mapped and a substring of another approved
	// name; the explicit mapping must win.
	catalog := []whatsapp.Template{
		approved("package_arrival_v9", "pt_BR"),
		approved("encomenda_management_5", "pt_BR"),
	}
	slugMap := map[string]string{"package_arrival": "encomenda_management_5"}

	result := Reconcile([]models.MessageTemplate{local("t1", "package_arrival")}, catalog, slugMap)

	if len(result.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(result.Matches))
	}
	if got := result.Matches[0].VendorName; got != "encomenda_management_5" {
		t.Errorf("explicit mapping ignored, matched %q", got)
	}
}

func TestReconcileApprovedOnly(t *testing.T) {
	catalog := []whatsapp.Template{
		{Name: "invoice_generated", Language: "pt_BR", Status: whatsapp.StatusPending},
	}

	result := Reconcile([]models.MessageTemplate{local("t1", "invoice_generated")}, catalog, nil)

	if len(result.Matches) != 0 {
		t.Fatalf("pending vendor template must not match, got %v", result.Matches)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0] != "t1" {
		t.Errorf("expected t1 unresolved, got %v", result.Unresolved)
	}
}

func TestReconcileCaseInsensitiveEquality(t *testing.T) {
	catalog := []whatsapp.Template{approved("Invoice_Generated", "pt_BR")}

	result := Reconcile([]models.MessageTemplate{local("t1", "invoice_generated")}, catalog, nil)

	if len(result.Matches) != 1 || result.Matches[0].VendorName != "Invoice_Generated" {
		t.Fatalf("expected equality match, got %v", result.Matches)
	}
}

func TestReconcileSubstringContainment(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		catalog []whatsapp.Template
		want    string
	}{
		{
			name:    "slug contained in vendor name",
			slug:    "invoice_generated",
			catalog: []whatsapp.Template{approved("invoice_generated_v2", "pt_BR")},
			want:    "invoice_generated_v2",
		},
		{
			name:    "vendor name contained in slug",
			slug:    "maintenance_notice_full",
			catalog: []whatsapp.Template{approved("maintenance_notice", "pt_BR")},
			want:    "maintenance_notice",
		},
		{
			name: "first catalog-order hit wins",
			slug: "fine",
			catalog: []whatsapp.Template{
				approved("fine_v1", "pt_BR"),
				approved("refine_policy", "pt_BR"),
			},
			want: "fine_v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reconcile([]models.MessageTemplate{local("t1", tt.slug)}, tt.catalog, nil)
			if len(result.Matches) != 1 {
				t.Fatalf("expected 1 match, got %d", len(result.Matches))
			}
			if got := result.Matches[0].VendorName; got != tt.want {
				t.Errorf("matched %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReconcileSkipsLinked(t *testing.T) {
	catalog := []whatsapp.Template{approved("package_arrival", "pt_BR")}
	locals := []models.MessageTemplate{
		linkedLocal("t1", "package_arrival", "already_linked", "pt_BR"),
	}

	result := Reconcile(locals, catalog, nil)

	if len(result.Matches) != 0 || len(result.Unresolved) != 0 {
		t.Errorf("linked template must be skipped entirely, got %+v", result)
	}
}

func TestReconcileLanguageFromVendor(t *testing.T) {
	catalog := []whatsapp.Template{approved("package_arrival", "es_MX")}

	result := Reconcile([]models.MessageTemplate{local("t1", "package_arrival")}, catalog, nil)

	if len(result.Matches) != 1 || result.Matches[0].VendorLanguage != "es_MX" {
		t.Fatalf("language must come from the vendor record, got %v", result.Matches)
	}
}

func TestOrphans(t *testing.T) {
	catalog := []whatsapp.Template{
		{Name: "still_here", Language: "pt_BR", Status: whatsapp.StatusRejected},
	}
	locals := []models.MessageTemplate{
		linkedLocal("t1", "package_arrival", "old_template_x", "pt_BR"),
		linkedLocal("t2", "invoice_generated", "still_here", "pt_BR"),
		local("t3", "assembly_notice"),
	}

	orphans := Orphans(locals, catalog)

	if len(orphans) != 1 || orphans[0].ID != "t1" {
		t.Fatalf("expected only t1 orphaned, got %v", orphans)
	}
}
