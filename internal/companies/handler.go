// Package companies serves the company list, the company detail page and
// the department panel hosted on it.
package companies

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/hmc-console/hmc-console/internal/apiclient"
	"github.com/hmc-console/hmc-console/internal/shared"
	"github.com/hmc-console/hmc-console/internal/view"
	"github.com/hmc-console/hmc-console/internal/viewmodel"
)

// Handler wires the company pages.
type Handler struct {
	logger *slog.Logger
	api    apiclient.API
	pages  *view.Responder
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, api apiclient.API, pages *view.Responder) *Handler {
	return &Handler{logger: logger, api: api, pages: pages}
}

// MountRoutes registers company routes. Callers are expected to wrap them
// in shared.RequireAuth.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/companies", h.list)
	r.Post("/companies", h.create)
	r.Get("/companies/{companyID}", h.detail)
	r.Post("/companies/{companyID}/edit", h.update)
	r.Post("/companies/{companyID}/delete", h.delete)
	r.Get("/companies/{companyID}/departments", h.departments)
	r.Post("/companies/{companyID}/departments", h.createDepartment)
}

func companyAPIPath(id string) string {
	return "/Company/" + url.PathEscape(id)
}

type listPageData struct {
	Companies   []viewmodel.Company
	Mode        view.Mode
	Selected    *viewmodel.Company
	CompanyForm viewmodel.CompanyForm
	Errors      viewmodel.FormErrors
	LoadError   string
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	data := listPageData{Mode: view.ModeFromQuery(r.URL.Query()), Companies: []viewmodel.Company{}}
	status := http.StatusOK

	var dtos []viewmodel.CompanyDTO
	if err := h.api.Get(r.Context(), "/Company", &dtos); err != nil {
		h.pages.LogBackendError(r, "load companies", err)
		data.LoadError = apiclient.Describe("load companies", err)
		status = http.StatusBadGateway
	} else {
		data.Companies = viewmodel.CompaniesFromDTO(dtos)
	}

	if id := data.Mode.ID(); id != "" {
		for i := range data.Companies {
			if data.Companies[i].ID == id {
				data.Selected = &data.Companies[i]
				break
			}
		}
		if data.Selected == nil {
			data.Mode = view.Idle()
		}
	}
	if data.Mode.Kind() == view.ModeEditing {
		data.CompanyForm = viewmodel.CompanyFormFrom(*data.Selected)
	}
	data.Errors, _ = h.pages.RecallForm(r, data.Mode, &data.CompanyForm)

	h.pages.Render(w, r, "pages/companies.html", "Companies", data, status)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	back := view.CompaniesPath()
	var form viewmodel.CompanyForm
	decodeErrs, err := view.DecodeForm(r, &form)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if !h.pages.ConsumeSubmit(w, r, view.Creating().URL(back)) {
		return
	}
	if errs := viewmodel.ValidateCompanyCreate(form).Merge(decodeErrs); errs.Any() {
		h.pages.FailForm(w, r, back, view.Creating(), errs.General(), errs)
		return
	}
	if err := h.api.Post(r.Context(), "/Company", viewmodel.NewCompanyCreateRequest(form), nil); err != nil {
		h.pages.LogBackendError(r, "create company", err)
		h.pages.FailForm(w, r, back, view.Creating(), apiclient.Describe("create company", err), nil)
		return
	}
	h.pages.RedirectWithFlash(w, r, back, shared.FlashSuccess, "Company created successfully!")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")
	var form viewmodel.CompanyForm
	decodeErrs, err := view.DecodeForm(r, &form)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	back := view.Back(r, view.CompaniesPath())
	mode := view.Editing(id)
	if !h.pages.ConsumeSubmit(w, r, mode.URL(back)) {
		return
	}
	if errs := viewmodel.ValidateCompanyUpdate(form).Merge(decodeErrs); errs.Any() {
		h.pages.FailForm(w, r, back, mode, errs.General(), errs)
		return
	}
	if err := h.api.Put(r.Context(), companyAPIPath(id), viewmodel.NewCompanyUpdateRequest(form), nil); err != nil {
		h.pages.LogBackendError(r, "update company", err)
		h.pages.FailForm(w, r, back, mode, apiclient.Describe("update company", err), nil)
		return
	}
	h.pages.RedirectWithFlash(w, r, back, shared.FlashSuccess, "Company updated successfully!")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	back := view.Back(r, view.CompaniesPath())
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, view.ConfirmingDelete(id).URL(back), http.StatusSeeOther)
		return
	}
	if !h.pages.ConsumeSubmit(w, r, back) {
		return
	}
	if err := h.api.Delete(r.Context(), companyAPIPath(id)); err != nil {
		h.pages.LogBackendError(r, "delete company", err)
		h.pages.RedirectWithFlash(w, r, back, shared.FlashError, apiclient.Describe("delete company", err))
		return
	}
	h.pages.RedirectWithFlash(w, r, view.CompaniesPath(), shared.FlashSuccess, "Company deleted successfully!")
}
