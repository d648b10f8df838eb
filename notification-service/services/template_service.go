package services

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"gente-backend/notification-service/config"
)

// TemplateService handles rendering of email templates
type TemplateService struct {
	templateCache map[string]*template.Template
	templateDir   string
	filenames     map[string]string
	templateMutex sync.RWMutex
}

// NewTemplateService creates a new template service
func NewTemplateService(templates config.EmailTemplates) *TemplateService {
	return &TemplateService{
		templateCache: make(map[string]*template.Template),
		templateDir:   "./shared/mail_templates",
		filenames: map[string]string{
			"password_reset": templates.PasswordResetTemplate,
			"admin_event":    templates.AdminEventTemplate,
		},
	}
}

// RenderTemplate renders an email template with provided data
func (ts *TemplateService) RenderTemplate(templateID string, data map[string]interface{}) (string, error) {
	ts.templateMutex.RLock()
	tmpl, exists := ts.templateCache[templateID]
	ts.templateMutex.RUnlock()

	if !exists {
		filename := ts.getTemplateFilename(templateID)
		templatePath := filepath.Join(ts.templateDir, filename)

		if _, err := os.Stat(templatePath); os.IsNotExist(err) {
			return "", fmt.Errorf("template file not found: %s", templatePath)
		}

		var err error
		tmpl, err = template.ParseFiles(templatePath)
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %v", templateID, err)
		}

		ts.templateMutex.Lock()
		ts.templateCache[templateID] = tmpl
		ts.templateMutex.Unlock()
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %v", templateID, err)
	}

	return rendered.String(), nil
}

// getTemplateFilename maps template ID to the configured filename
func (ts *TemplateService) getTemplateFilename(templateID string) string {
	if filename, ok := ts.filenames[templateID]; ok && filename != "" {
		return filename
	}
	logrus.Warnf("Unknown template ID: %s, using as filename", templateID)
	return templateID + ".html"
}

// ClearCache clears the template cache
func (ts *TemplateService) ClearCache() {
	ts.templateMutex.Lock()
	ts.templateCache = make(map[string]*template.Template)
	ts.templateMutex.Unlock()
}
