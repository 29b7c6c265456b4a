// Package departments serves the department detail page and its employee
// panel.
package departments

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

const departmentNotFound = "Department or associated data not found."

// Handler wires the department pages.
type Handler struct {
	logger *slog.Logger
	api    apiclient.API
	pages  *view.Responder
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, api apiclient.API, pages *view.Responder) *Handler {
	return &Handler{logger: logger, api: api, pages: pages}
}

// MountRoutes registers department routes.
func (h *Handler) MountRoutes(r chi.Router) {
	const base = "/companies/{companyID}/departments/{departmentID}"
	r.Get(base, h.detail)
	r.Post(base+"/edit", h.update)
	r.Post(base+"/delete", h.delete)
	r.Post(base+"/employees", h.createEmployee)
}

func departmentAPIPath(id string) string {
	return "/Department/" + url.PathEscape(id)
}

type pageData struct {
	CompanyID        string
	DepartmentID     string
	Department       viewmodel.Department
	Mode             view.Mode
	DepartmentForm   viewmodel.DepartmentForm
	EmployeeForm     viewmodel.EmployeeForm
	SelectedEmployee *viewmodel.Employee
	Trainings        []viewmodel.Training
	CatalogError     string
	Errors           viewmodel.FormErrors
	LoadError        string
	Back             string
}

// EditingDepartment reports whether the department's own edit form is open.
func (d pageData) EditingDepartment() bool {
	return d.Mode.IsEditing(d.DepartmentID)
}

// DeletingDepartment reports whether department deletion awaits
// confirmation.
func (d pageData) DeletingDepartment() bool {
	return d.Mode.IsConfirmingDelete(d.DepartmentID)
}

type loaded struct {
	department viewmodel.Department
	catalog    []viewmodel.Training
	catalogErr error
}

// load fetches the department, then the training catalog. Only the
// department is required; a catalog failure is reported in catalogErr and
// leaves the department in place.
func (h *Handler) load(ctx context.Context, id string) (loaded, error) {
	var dto viewmodel.DepartmentDTO
	if err := h.api.Get(ctx, departmentAPIPath(id), &dto); err != nil {
		return loaded{}, err
	}
	out := loaded{department: viewmodel.DepartmentFromDTO(dto)}
	out.catalog, out.catalogErr = trainings.Catalog(ctx, h.api)
	return out, nil
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	id := chi.URLParam(r, "departmentID")
	data := pageData{
		CompanyID:    companyID,
		DepartmentID: id,
		Mode:         view.ModeFromQuery(r.URL.Query()),
		Back:         view.DepartmentPath(companyID, id),
	}

	res, err := h.load(r.Context(), id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			h.pages.RenderNotFound(w, r, departmentNotFound, view.CompanyPath(companyID))
			return
		}
		h.pages.LogBackendError(r, "load department details", err)
		data.LoadError = apiclient.Describe("load department details", err)
		h.pages.Render(w, r, "pages/department_detail.html", "Department", data, http.StatusBadGateway)
		return
	}
	if res.department.CompanyID != "" && res.department.CompanyID != companyID {
		h.pages.RenderNotFound(w, r, departmentNotFound, view.CompanyPath(companyID))
		return
	}
	data.Department = res.department
	data.Trainings = res.catalog
	if res.catalogErr != nil {
		h.pages.LogBackendError(r, "load trainings", res.catalogErr)
		data.CatalogError = apiclient.Describe("load trainings", res.catalogErr)
	}
	resolveMode(&data)

	var target any = &data.EmployeeForm
	if data.EditingDepartment() {
		target = &data.DepartmentForm
	}
	data.Errors, _ = h.pages.RecallForm(r, data.Mode, target)

	h.pages.Render(w, r, "pages/department_detail.html", data.Department.Name, data, http.StatusOK)
}

func resolveMode(data *pageData) {
	mode := data.Mode
	switch {
	case mode.IsIdle():
		return
	case mode.IsCreating():
		data.EmployeeForm = viewmodel.NewEmployeeForm()
		return
	case mode.Targets(data.DepartmentID):
		switch mode.Kind() {
		case view.ModeEditing:
			data.DepartmentForm = viewmodel.DepartmentFormFrom(data.Department)
		case view.ModeConfirmingDelete:
		default:
			data.Mode = view.Idle()
		}
		return
	}
	emp, ok := data.Department.FindEmployeeByID(mode.ID())
	if !ok {
		data.Mode = view.Idle()
		return
	}
	data.SelectedEmployee = &emp
	if mode.Kind() == view.ModeEditing {
		data.EmployeeForm = viewmodel.EmployeeFormFrom(emp)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	id := chi.URLParam(r, "departmentID")
	var form viewmodel.DepartmentForm
	decodeErrs, err := view.DecodeForm(r, &form)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	back := view.Back(r, view.DepartmentPath(companyID, id))
	mode := view.Editing(id)
	if !h.pages.ConsumeSubmit(w, r, mode.URL(back)) {
		return
	}
	if errs := viewmodel.ValidateDepartment(form).Merge(decodeErrs); errs.Any() {
		h.pages.FailForm(w, r, back, mode, errs.General(), errs)
		return
	}
	req := viewmodel.NewDepartmentUpdateRequest(id, companyID, form)
	if err := h.api.Put(r.Context(), departmentAPIPath(id), req, nil); err != nil {
		h.pages.LogBackendError(r, "update department", err)
		h.pages.FailForm(w, r, back, mode, apiclient.Describe("update department", err), nil)
		return
	}
	h.pages.RedirectWithFlash(w, r, back, shared.FlashSuccess, "Department updated successfully!")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	id := chi.URLParam(r, "departmentID")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	self := view.DepartmentPath(companyID, id)
	back := view.Back(r, self)
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, view.ConfirmingDelete(id).URL(back), http.StatusSeeOther)
		return
	}
	if !h.pages.ConsumeSubmit(w, r, back) {
		return
	}
	if err := h.api.Delete(r.Context(), departmentAPIPath(id)); err != nil {
		h.pages.LogBackendError(r, "delete department", err)
		h.pages.RedirectWithFlash(w, r, back, shared.FlashError, apiclient.Describe("delete department", err))
		return
	}
	next := view.AfterDelete(back, self, view.CompanyPath(companyID))
	h.pages.RedirectWithFlash(w, r, next, shared.FlashSuccess, "Department deleted successfully!")
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	id := chi.URLParam(r, "departmentID")
	var form viewmodel.EmployeeForm
	decodeErrs, err := view.DecodeForm(r, &form)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	back := view.Back(r, view.DepartmentPath(companyID, id))
	mode := view.Creating()
	if !h.pages.ConsumeSubmit(w, r, mode.URL(back)) {
		return
	}
	if errs := viewmodel.ValidateEmployee(form).Merge(decodeErrs); errs.Any() {
		h.pages.FailForm(w, r, back, mode, errs.General(), errs)
		return
	}
	if err := h.api.Post(r.Context(), "/Employee", viewmodel.NewEmployeeCreateRequest(id, form), nil); err != nil {
		h.pages.LogBackendError(r, "create employee", err)
		h.pages.FailForm(w, r, back, mode, apiclient.Describe("create employee", err), nil)
		return
	}
	h.pages.RedirectWithFlash(w, r, back, shared.FlashSuccess, "Employee created successfully!")
}
