package view

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hmc-console/hmc-console/internal/apiclient"
	"github.com/hmc-console/hmc-console/internal/shared"
)

// AlreadySubmittedMessage is flashed when a one-shot form token is replayed.
const AlreadySubmittedMessage = "This form was already submitted."

// Responder bundles what every console handler needs to answer with a page
// or a redirect.
type Responder struct {
	Logger    *slog.Logger
	Templates *Engine
	CSRF      *shared.CSRFManager
	Submit    *shared.SubmitGuard
	NotFound  NotFoundRedirect
	// DisplayName turns the session token into the navbar label.
	DisplayName func(token string) string
}

// Render fills the shared TemplateData fields and writes tmpl with status.
func (p *Responder) Render(w http.ResponseWriter, r *http.Request, tmpl, title string, data any, status int) {
	td := p.templateData(r, title)
	td.Data = data
	p.write(w, r, tmpl, td, status)
}

// RenderNotFound answers a missing detail record with the shared delayed
// redirect to parent.
func (p *Responder) RenderNotFound(w http.ResponseWriter, r *http.Request, message, parent string) {
	td := p.templateData(r, "")
	p.NotFound.Apply(&td, message, parent)
	p.write(w, r, NotFoundTemplate, td, http.StatusNotFound)
}

// RedirectWithFlash queues a flash message and answers 303.
func (p *Responder) RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// ConsumeSubmit spends the form's one-shot token. It returns false after
// redirecting to back when the form was already submitted. A guard outage
// is logged and the submission allowed.
func (p *Responder) ConsumeSubmit(w http.ResponseWriter, r *http.Request, back string) bool {
	if p.Submit == nil {
		return true
	}
	err := p.Submit.Consume(r.Context(), r.PostFormValue(shared.SubmitFormField))
	switch {
	case err == nil:
		return true
	case errors.Is(err, shared.ErrAlreadySubmitted):
		p.RedirectWithFlash(w, r, back, shared.FlashError, AlreadySubmittedMessage)
		return false
	default:
		p.Logger.Warn("submit guard unavailable", slog.Any("error", err), slog.String("path", r.URL.Path))
		return true
	}
}

func (p *Responder) templateData(r *http.Request, title string) TemplateData {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)
	csrfToken, err := p.CSRF.EnsureToken(ctx, sess)
	if err != nil {
		p.Logger.Warn("csrf token unavailable", slog.Any("error", err))
	}

	var submitToken string
	if p.Submit != nil {
		if submitToken, err = p.Submit.Issue(ctx); err != nil {
			p.Logger.Warn("issue submit token", slog.Any("error", err))
		}
	}

	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}

	td := TemplateData{
		Title:         title,
		CSRFToken:     csrfToken,
		SubmitToken:   submitToken,
		Flash:         flash,
		CurrentPath:   r.URL.Path,
		Authenticated: sess.IsAuthenticated(),
	}
	if td.Authenticated && p.DisplayName != nil {
		td.UserName = p.DisplayName(sess.Token())
	}
	return td
}

func (p *Responder) write(w http.ResponseWriter, r *http.Request, tmpl string, td TemplateData, status int) {
	if err := p.Templates.RenderStatus(w, tmpl, td, status); err != nil {
		p.Logger.Error("template render failed", slog.Any("error", err), slog.String("template", tmpl))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// LogBackendError records a failed backend call at a level matching its
// kind.
func (p *Responder) LogBackendError(r *http.Request, action string, err error) {
	attrs := []any{slog.String("action", action), slog.String("path", r.URL.Path), slog.Any("error", err)}
	switch apiclient.KindOf(err) {
	case apiclient.KindServerRejected:
		p.Logger.Warn("backend call rejected", append(attrs, slog.Int("status", apiclient.StatusOf(err)))...)
	case apiclient.KindNoResponse:
		p.Logger.Error("backend unreachable", attrs...)
	default:
		p.Logger.Error("backend call failed", attrs...)
	}
}
