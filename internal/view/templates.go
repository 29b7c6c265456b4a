package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/hmc-console/hmc-console/internal/shared"
	"github.com/hmc-console/hmc-console/internal/viewmodel"
	"github.com/hmc-console/hmc-console/web"
)

// NotFoundTemplate renders the page produced by NotFoundRedirect.
const NotFoundTemplate = "pages/not_found.html"

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	SubmitToken string
	Flash       *shared.FlashMessage
	CurrentPath string
	// UserName is the display name of the signed-in user, "" when anonymous.
	UserName      string
	Authenticated bool
	Redirect      *Redirect
	Data          any
}

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"modeURL":         ModeURL,
		"companiesPath":   CompaniesPath,
		"companyPath":     CompanyPath,
		"departmentsPath": DepartmentsPath,
		"departmentPath":  DepartmentPath,
		"employeesPath":   EmployeesPath,
		"employeePath":    EmployeePath,
		"trainingsPath":   TrainingsPath,
		"orNA": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "N/A"
			}
			return s
		},
		"fieldError": func(errs viewmodel.FormErrors, field string) string {
			return errs[field]
		},
		"genders": func() []viewmodel.Gender {
			return viewmodel.Genders
		},
		"activePath": func(current, prefix string) bool {
			return current == prefix || strings.HasPrefix(current, prefix+"/")
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData and status 200.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	return e.RenderStatus(w, name, data, http.StatusOK)
}

// RenderStatus executes the template into a buffer first, so a failing
// template never leaves a half-written page behind a success status.
func (e *Engine) RenderStatus(w http.ResponseWriter, name string, data TemplateData, status int) error {
	var buf bytes.Buffer
	if err := e.Execute(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Execute writes the named template to out.
func (e *Engine) Execute(out io.Writer, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	return e.templates.ExecuteTemplate(out, name, data)
}
