// Package employees serves the employee detail page.
package employees

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/hmc-console/hmc-console/internal/apiclient"
	"github.com/hmc-console/hmc-console/internal/shared"
	"github.com/hmc-console/hmc-console/internal/trainings"
	"github.com/hmc-console/hmc-console/internal/view"
	"github.com/hmc-console/hmc-console/internal/viewmodel"
)

const employeeNotFound = "Employee or associated data not found."

// Handler wires the employee pages.
type Handler struct {
	logger *slog.Logger
	api    apiclient.API
	pages  *view.Responder
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, api apiclient.API, pages *view.Responder) *Handler {
	return &Handler{logger: logger, api: api, pages: pages}
}

// MountRoutes registers employee routes.
func (h *Handler) MountRoutes(r chi.Router) {
	const base = "/companies/{companyID}/departments/{departmentID}/employees/{employeeID}"
	r.Get(base, h.detail)
	r.Post(base+"/edit", h.update)
	r.Post(base+"/delete", h.delete)
}

func employeeAPIPath(id string) string {
	return "/Employee/" + url.PathEscape(id)
}

type pageData struct {
	CompanyID    string
	DepartmentID string
	EmployeeID   string
	Employee     viewmodel.Employee
	Mode         view.Mode
	EmployeeForm viewmodel.EmployeeForm
	Trainings    []viewmodel.Training
	CatalogError string
	Errors       viewmodel.FormErrors
	LoadError    string
	Back         string
}

type loaded struct {
	employee   viewmodel.Employee
	catalog    []viewmodel.Training
	catalogErr error
}

// load fetches the employee, then the training catalog. Only the employee
// is required; a catalog failure is reported in catalogErr and leaves the
// employee in place.
func (h *Handler) load(ctx context.Context, id string) (loaded, error) {
	var dto viewmodel.EmployeeDTO
	if err := h.api.Get(ctx, employeeAPIPath(id), &dto); err != nil {
		return loaded{}, err
	}
	out := loaded{employee: viewmodel.EmployeeFromDTO(dto)}
	out.catalog, out.catalogErr = trainings.Catalog(ctx, h.api)
	return out, nil
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	departmentID := chi.URLParam(r, "departmentID")
	id := chi.URLParam(r, "employeeID")
	parent := view.DepartmentPath(companyID, departmentID)
	data := pageData{
		CompanyID:    companyID,
		DepartmentID: departmentID,
		EmployeeID:   id,
		Mode:         view.ModeFromQuery(r.URL.Query()),
		Back:         view.EmployeePath(companyID, departmentID, id),
	}

	res, err := h.load(r.Context(), id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			h.pages.RenderNotFound(w, r, employeeNotFound, parent)
			return
		}
		h.pages.LogBackendError(r, "load employee details", err)
		data.LoadError = apiclient.Describe("load employee details", err)
		h.pages.Render(w, r, "pages/employee_detail.html", "Employee", data, http.StatusBadGateway)
		return
	}
	if res.employee.DepartmentID != "" && res.employee.DepartmentID != departmentID {
		h.pages.RenderNotFound(w, r, employeeNotFound, parent)
		return
	}
	data.Employee = res.employee
	data.Trainings = res.catalog
	if res.catalogErr != nil {
		h.pages.LogBackendError(r, "load trainings", res.catalogErr)
		data.CatalogError = apiclient.Describe("load trainings", res.catalogErr)
	}

	switch {
	case data.Mode.IsEditing(id):
		data.EmployeeForm = viewmodel.EmployeeFormFrom(data.Employee)
	case data.Mode.IsConfirmingDelete(id):
	default:
		data.Mode = view.Idle()
	}
	data.Errors, _ = h.pages.RecallForm(r, data.Mode, &data.EmployeeForm)

	h.pages.Render(w, r, "pages/employee_detail.html", data.Employee.FullName(), data, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	departmentID := chi.URLParam(r, "departmentID")
	id := chi.URLParam(r, "employeeID")
	var form viewmodel.EmployeeForm
	decodeErrs, err := view.DecodeForm(r, &form)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	back := view.Back(r, view.EmployeePath(companyID, departmentID, id))
	mode := view.Editing(id)
	if !h.pages.ConsumeSubmit(w, r, mode.URL(back)) {
		return
	}
	if errs := viewmodel.ValidateEmployee(form).Merge(decodeErrs); errs.Any() {
		h.pages.FailForm(w, r, back, mode, errs.General(), errs)
		return
	}
	req := viewmodel.NewEmployeeUpdateRequest(id, departmentID, form)
	if err := h.api.Put(r.Context(), employeeAPIPath(id), req, nil); err != nil {
		h.pages.LogBackendError(r, "update employee", err)
		h.pages.FailForm(w, r, back, mode, apiclient.Describe("update employee", err), nil)
		return
	}
	h.pages.RedirectWithFlash(w, r, back, shared.FlashSuccess, "Employee updated successfully!")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	departmentID := chi.URLParam(r, "departmentID")
	id := chi.URLParam(r, "employeeID")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	self := view.EmployeePath(companyID, departmentID, id)
	back := view.Back(r, self)
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, view.ConfirmingDelete(id).URL(back), http.StatusSeeOther)
		return
	}
	if !h.pages.ConsumeSubmit(w, r, back) {
		return
	}
	if err := h.api.Delete(r.Context(), employeeAPIPath(id)); err != nil {
		h.pages.LogBackendError(r, "delete employee", err)
		h.pages.RedirectWithFlash(w, r, back, shared.FlashError, apiclient.Describe("delete employee", err))
		return
	}
	next := view.AfterDelete(back, self, view.DepartmentPath(companyID, departmentID))
	h.pages.RedirectWithFlash(w, r, next, shared.FlashSuccess, "Employee deleted successfully!")
}
