package view

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundRedirectApply(t *testing.T) {
	var td TemplateData
	NotFoundRedirect{Delay: 2500 * time.Millisecond}.Apply(&td, "Company not found.", "/companies")

	require.NotNil(t, td.Redirect)
	assert.Equal(t, "/companies", td.Redirect.URL)
	assert.Equal(t, 3, td.Redirect.Seconds, "partial seconds round up")
	assert.Equal(t, "3;url=/companies", td.Redirect.Content())
	assert.Equal(t, NotFoundPage{Message: "Company not found.", Parent: "/companies"}, td.Data)
}

func TestNotFoundRedirectDefaultDelay(t *testing.T) {
	var td TemplateData
	NotFoundRedirect{}.Apply(&td, "gone", "/trainings")
	require.NotNil(t, td.Redirect)
	assert.Equal(t, int(DefaultNotFoundDelay/time.Second), td.Redirect.Seconds)
}

func TestNotFoundTemplate(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	var td TemplateData
	NotFoundRedirect{Delay: time.Second}.Apply(&td, "Employee or associated data not found.", "/companies/c1/departments/d1")

	rec := httptest.NewRecorder()
	require.NoError(t, engine.RenderStatus(rec, NotFoundTemplate, td, 404))
	assert.Equal(t, 404, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http-equiv="refresh"`)
	assert.Contains(t, body, "Employee or associated data not found.")
	assert.Contains(t, body, `href="/companies/c1/departments/d1"`)
}

func TestRenderStatusFailsCleanly(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.RenderStatus(rec, "pages/does_not_exist.html", TemplateData{}, 200)
	assert.Error(t, err)
	assert.Empty(t, rec.Body.String(), "nothing is written when rendering fails")
}
