package companies

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hmc-console/hmc-console/internal/apiclient"
	"github.com/hmc-console/hmc-console/internal/shared"
	"github.com/hmc-console/hmc-console/internal/view"
	"github.com/hmc-console/hmc-console/internal/viewmodel"
)

// Search query parameters of the company detail page.
const (
	paramEmployeeFirst  = "emp_first"
	paramEmployeeLast   = "emp_last"
	paramDepartmentName = "dept_name"
	paramDepartmentDesc = "dept_desc"
)

const (
	employeeNotFound   = "No employee found with that first and last name."
	departmentNotFound = "No department found with that name and description."
)

type searchPanel struct {
	EmployeeFirst  string
	EmployeeLast   string
	DepartmentName string
	DepartmentDesc string
	Employee       *viewmodel.EmployeeMatch
	Department     *viewmodel.Department
	Alert          string
}

type detailPageData struct {
	CompanyID      string
	Company        viewmodel.Company
	Loaded         bool
	Mode           view.Mode
	CompanyForm    viewmodel.CompanyForm
	DepartmentForm viewmodel.DepartmentForm
	Selected       *viewmodel.Department
	Errors         viewmodel.FormErrors
	LoadError      string
	Search         searchPanel
	// Back is where forms on this page return to.
	Back string
}

// EditingCompany reports whether the company's own edit form is open.
func (d detailPageData) EditingCompany() bool {
	return d.Mode.IsEditing(d.CompanyID)
}

// DeletingCompany reports whether company deletion awaits confirmation.
func (d detailPageData) DeletingCompany() bool {
	return d.Mode.IsConfirmingDelete(d.CompanyID)
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	h.renderDetail(w, r, "pages/company_detail.html", view.CompanyPath(chi.URLParam(r, "companyID")))
}

func (h *Handler) departments(w http.ResponseWriter, r *http.Request) {
	h.renderDetail(w, r, "pages/company_departments.html", view.DepartmentsPath(chi.URLParam(r, "companyID")))
}

func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, tmpl, back string) {
	id := chi.URLParam(r, "companyID")
	data := detailPageData{CompanyID: id, Mode: view.ModeFromQuery(r.URL.Query()), Back: back}

	var dto viewmodel.CompanyDTO
	if err := h.api.Get(r.Context(), companyAPIPath(id), &dto); err != nil {
		if apiclient.IsNotFound(err) {
			h.pages.RenderNotFound(w, r, "Company not found.", view.CompaniesPath())
			return
		}
		h.pages.LogBackendError(r, "load company details", err)
		data.LoadError = apiclient.Describe("load company details", err)
		h.pages.Render(w, r, tmpl, "Company", data, http.StatusBadGateway)
		return
	}
	data.Company = viewmodel.CompanyFromDTO(dto)
	data.Loaded = true
	data.Search = search(data.Company, r)
	h.resolveMode(&data)

	var target any = &data.DepartmentForm
	if data.EditingCompany() {
		target = &data.CompanyForm
	}
	data.Errors, _ = h.pages.RecallForm(r, data.Mode, target)

	h.pages.Render(w, r, tmpl, data.Company.Name, data, http.StatusOK)
}

// resolveMode drops modes that point at records the page does not hold and
// prepares the form the remaining mode needs.
func (h *Handler) resolveMode(data *detailPageData) {
	mode := data.Mode
	switch {
	case mode.IsIdle():
		return
	case mode.IsCreating():
		return
	case mode.Targets(data.CompanyID):
		switch mode.Kind() {
		case view.ModeEditing:
			data.CompanyForm = viewmodel.CompanyFormFrom(data.Company)
		case view.ModeConfirmingDelete:
		default:
			data.Mode = view.Idle()
		}
		return
	}
	dept, ok := data.Company.FindDepartmentByID(mode.ID())
	if !ok {
		data.Mode = view.Idle()
		return
	}
	data.Selected = &dept
	if mode.Kind() == view.ModeEditing {
		data.DepartmentForm = viewmodel.DepartmentFormFrom(dept)
	}
}

func search(company viewmodel.Company, r *http.Request) searchPanel {
	q := r.URL.Query()
	panel := searchPanel{
		EmployeeFirst:  q.Get(paramEmployeeFirst),
		EmployeeLast:   q.Get(paramEmployeeLast),
		DepartmentName: q.Get(paramDepartmentName),
		DepartmentDesc: q.Get(paramDepartmentDesc),
	}
	if q.Has(paramEmployeeFirst) || q.Has(paramEmployeeLast) {
		if match, ok := viewmodel.FindEmployee(company, panel.EmployeeFirst, panel.EmployeeLast); ok {
			panel.Employee = &match
		} else {
			panel.Alert = employeeNotFound
		}
	}
	if q.Has(paramDepartmentName) || q.Has(paramDepartmentDesc) {
		if dept, ok := viewmodel.FindDepartment(company, panel.DepartmentName, panel.DepartmentDesc); ok {
			panel.Department = &dept
		} else if panel.Alert == "" {
			panel.Alert = departmentNotFound
		}
	}
	return panel
}

func (h *Handler) createDepartment(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	var form viewmodel.DepartmentForm
	decodeErrs, err := view.DecodeForm(r, &form)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	back := view.Back(r, view.CompanyPath(companyID))
	if !h.pages.ConsumeSubmit(w, r, view.Creating().URL(back)) {
		return
	}
	if errs := viewmodel.ValidateDepartment(form).Merge(decodeErrs); errs.Any() {
		h.pages.FailForm(w, r, back, view.Creating(), errs.General(), errs)
		return
	}
	req := viewmodel.NewDepartmentCreateRequest(companyID, form)
	if err := h.api.Post(r.Context(), "/Department", req, nil); err != nil {
		h.pages.LogBackendError(r, "create department", err)
		h.pages.FailForm(w, r, back, view.Creating(), apiclient.Describe("create department", err), nil)
		return
	}
	h.pages.RedirectWithFlash(w, r, back, shared.FlashSuccess, "Department created successfully!")
}
