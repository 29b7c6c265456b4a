package view

import (
	"net/url"
	"strings"
)

// Console paths. Ids are path-escaped so they can be embedded in links and
// redirects as-is.

// CompaniesPath is the company list.
func CompaniesPath() string { return "/companies" }

// CompanyPath is the company detail page.
func CompanyPath(companyID string) string {
	return "/companies/" + url.PathEscape(companyID)
}

// DepartmentsPath is the departments-only view of a company.
func DepartmentsPath(companyID string) string {
	return CompanyPath(companyID) + "/departments"
}

// DepartmentPath is the department detail page.
func DepartmentPath(companyID, departmentID string) string {
	return DepartmentsPath(companyID) + "/" + url.PathEscape(departmentID)
}

// EmployeesPath is where employees of a department are created.
func EmployeesPath(companyID, departmentID string) string {
	return DepartmentPath(companyID, departmentID) + "/employees"
}

// EmployeePath is the employee detail page.
func EmployeePath(companyID, departmentID, employeeID string) string {
	return EmployeesPath(companyID, departmentID) + "/" + url.PathEscape(employeeID)
}

// TrainingsPath is the training catalog.
func TrainingsPath() string { return "/trainings" }

// AfterDelete is where to go once the record at deleted is gone: back to
// the page the delete was posted from, unless that page was the record
// itself.
func AfterDelete(back, deleted, parent string) string {
	if back == deleted || strings.HasPrefix(back, deleted+"/") {
		return parent
	}
	return back
}
