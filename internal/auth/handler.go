package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hmc-console/hmc-console/internal/apiclient"
	"github.com/hmc-console/hmc-console/internal/shared"
	"github.com/hmc-console/hmc-console/internal/view"
	"github.com/hmc-console/hmc-console/internal/viewmodel"
)

const (
	loginPath    = "/login"
	registerPath = "/register"
	// HomePath is where signed-in users land.
	HomePath = "/companies"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger *slog.Logger
	api    apiclient.API
	pages  *view.Responder
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, api apiclient.API, pages *view.Responder) *Handler {
	return &Handler{
		logger: logger,
		api:    api,
		pages:  pages,
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RedirectAuthenticated(HomePath))
		r.Get(loginPath, h.showLogin)
		r.Post(loginPath, h.handleLogin)
		r.Get(registerPath, h.showRegister)
		r.Post(registerPath, h.handleRegister)
	})
	r.Post("/logout", h.handleLogout)
}

type loginPageData struct {
	Form   viewmodel.LoginForm
	Errors viewmodel.FormErrors
}

type registerPageData struct {
	Form   viewmodel.RegisterForm
	Errors viewmodel.FormErrors
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	data := loginPageData{}
	data.Errors, _ = h.pages.RecallForm(r, view.Idle(), &data.Form)
	h.pages.Render(w, r, "pages/login.html", "Login", data, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form viewmodel.LoginForm
	decodeErrs, err := view.DecodeForm(r, &form)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if errs := viewmodel.ValidateLogin(form).Merge(decodeErrs); errs.Any() {
		h.pages.FailForm(w, r, loginPath, view.Idle(), errs.General(), errs)
		return
	}

	var resp viewmodel.LoginResponse
	if err := h.api.Post(r.Context(), "/User/login", viewmodel.NewLoginRequest(form), &resp); err != nil {
		h.pages.LogBackendError(r, "login", err)
		h.pages.FailForm(w, r, loginPath, view.Idle(), loginMessage(err), nil)
		return
	}
	token := strings.TrimSpace(resp.Token)
	if token == "" {
		h.pages.FailForm(w, r, loginPath, view.Idle(), "Login failed: No token received.", nil)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	sess.Login(token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) showRegister(w http.ResponseWriter, r *http.Request) {
	data := registerPageData{Form: viewmodel.RegisterForm{Gender: viewmodel.GenderMale.String()}}
	data.Errors, _ = h.pages.RecallForm(r, view.Idle(), &data.Form)
	h.pages.Render(w, r, "pages/register.html", "Register", data, http.StatusOK)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var form viewmodel.RegisterForm
	decodeErrs, err := view.DecodeForm(r, &form)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if !h.pages.ConsumeSubmit(w, r, registerPath) {
		return
	}
	if errs := viewmodel.ValidateRegister(form).Merge(decodeErrs); errs.Any() {
		h.pages.FailForm(w, r, registerPath, view.Idle(), errs.General(), errs)
		return
	}

	if err := h.api.Post(r.Context(), "/User/register", viewmodel.NewRegisterRequest(form), nil); err != nil {
		h.pages.LogBackendError(r, "register", err)
		h.pages.FailForm(w, r, registerPath, view.Idle(), registerMessage(err), nil)
		return
	}
	h.pages.RedirectWithFlash(w, r, loginPath, shared.FlashSuccess, "Registration successful! You can now log in.")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.Logout()
	}
	h.pages.RedirectWithFlash(w, r, loginPath, shared.FlashInfo, "You have been logged out.")
}

// loginMessage maps a failed login to the text shown above the form.
func loginMessage(err error) string {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return "An unexpected error occurred during login."
	}
	switch apiErr.Kind {
	case apiclient.KindServerRejected:
		if apiErr.Status == http.StatusUnauthorized {
			return "Invalid username or password."
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "An unexpected error occurred during login."
	case apiclient.KindNoResponse:
		return "No response from server. Check network connection."
	default:
		return "Error setting up request."
	}
}

// registerMessage maps a failed registration to the text shown above the
// form.
func registerMessage(err error) string {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return "An unexpected error occurred during registration."
	}
	switch apiErr.Kind {
	case apiclient.KindServerRejected:
		switch {
		case apiErr.Status == http.StatusConflict && apiErr.Message == "":
			return "Username already exists."
		case apiErr.Message != "":
			return apiErr.Message
		case len(apiErr.ValidationErrors) > 0:
			return apiclient.FlattenValidationErrors(apiErr.ValidationErrors)
		case apiErr.Status == http.StatusBadRequest:
			return "Registration failed with validation errors."
		default:
			return "An unexpected error occurred during registration."
		}
	case apiclient.KindNoResponse:
		return "No response from server. Check network connection."
	default:
		return "Error setting up request."
	}
}
