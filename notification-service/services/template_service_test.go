package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gente-backend/notification-service/config"
)

func newTestTemplateService(t *testing.T, templates config.EmailTemplates) *TemplateService {
	t.Helper()

	ts := NewTemplateService(templates)
	ts.templateDir = t.TempDir()
	return ts
}

func writeTemplate(t *testing.T, dir, filename, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
}

func TestRenderTemplateUsesConfiguredFilename(t *testing.T) {
	ts := newTestTemplateService(t, config.EmailTemplates{
		PasswordResetTemplate: "custom_reset.html",
		AdminEventTemplate:    "admin_event.html",
	})
	writeTemplate(t, ts.templateDir, "custom_reset.html", "<p>Olá, {{.Name}}</p>")

	rendered, err := ts.RenderTemplate("password_reset", map[string]interface{}{"Name": "Maria"})
	if err != nil {
		t.Fatalf("RenderTemplate() error = %v", err)
	}
	if !strings.Contains(rendered, "Olá, Maria") {
		t.Errorf("rendered output = %q, want it to contain the name", rendered)
	}
}

func TestRenderTemplateAdminEvent(t *testing.T) {
	ts := newTestTemplateService(t, config.EmailTemplates{
		PasswordResetTemplate: "password_reset.html",
		AdminEventTemplate:    "admin_event.html",
	})
	writeTemplate(t, ts.templateDir, "admin_event.html", "<p>{{.Title}}: {{.Message}}</p>")

	rendered, err := ts.RenderTemplate("admin_event", map[string]interface{}{
		"Title":   "Usuário criado",
		"Message": "Maria foi adicionada",
	})
	if err != nil {
		t.Fatalf("RenderTemplate() error = %v", err)
	}
	if !strings.Contains(rendered, "Usuário criado") || !strings.Contains(rendered, "Maria foi adicionada") {
		t.Errorf("rendered output = %q, want title and message", rendered)
	}
}

func TestRenderTemplateMissingFile(t *testing.T) {
	ts := newTestTemplateService(t, config.EmailTemplates{
		PasswordResetTemplate: "password_reset.html",
		AdminEventTemplate:    "admin_event.html",
	})

	if _, err := ts.RenderTemplate("password_reset", map[string]interface{}{}); err == nil {
		t.Error("RenderTemplate() on a missing file returned no error")
	}
}

func TestClearCacheReloadsTemplates(t *testing.T) {
	ts := newTestTemplateService(t, config.EmailTemplates{
		PasswordResetTemplate: "password_reset.html",
		AdminEventTemplate:    "admin_event.html",
	})
	writeTemplate(t, ts.templateDir, "password_reset.html", "versão 1")

	first, err := ts.RenderTemplate("password_reset", map[string]interface{}{})
	if err != nil {
		t.Fatalf("RenderTemplate() error = %v", err)
	}
	if first != "versão 1" {
		t.Fatalf("rendered = %q, want %q", first, "versão 1")
	}

	writeTemplate(t, ts.templateDir, "password_reset.html", "versão 2")

	cached, err := ts.RenderTemplate("password_reset", map[string]interface{}{})
	if err != nil {
		t.Fatalf("RenderTemplate() error = %v", err)
	}
	if cached != "versão 1" {
		t.Errorf("cached render = %q, want the cached %q", cached, "versão 1")
	}

	ts.ClearCache()
	reloaded, err := ts.RenderTemplate("password_reset", map[string]interface{}{})
	if err != nil {
		t.Fatalf("RenderTemplate() error = %v", err)
	}
	if reloaded != "versão 2" {
		t.Errorf("render after ClearCache = %q, want %q", reloaded, "versão 2")
	}
}
