package viewmodel

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EmployeeMatch is what the employee search panel shows.
type EmployeeMatch struct {
	FirstName      string
	LastName       string
	Email          string
	Position       string
	DepartmentName string
}

// FindEmployee scans departments in fetch order, then employees in list
// order, and returns the first employee whose first and last names contain
// the given terms. Empty terms match everything.
func FindEmployee(c Company, firstName, lastName string) (EmployeeMatch, bool) {
	first := normalize(firstName)
	last := normalize(lastName)
	for _, dept := range c.Departments {
		for _, emp := range dept.Employees {
			if contains(emp.FirstName, first) && contains(emp.LastName, last) {
				return EmployeeMatch{
					FirstName:      emp.FirstName,
					LastName:       emp.LastName,
					Email:          emp.Email,
					Position:       emp.Position,
					DepartmentName: dept.Name,
				}, true
			}
		}
	}
	return EmployeeMatch{}, false
}

// FindDepartment returns the first department whose name and description
// contain the given terms. Empty terms match everything.
func FindDepartment(c Company, name, description string) (Department, bool) {
	n := normalize(name)
	d := normalize(description)
	for _, dept := range c.Departments {
		if contains(dept.Name, n) && contains(dept.Description, d) {
			return dept, true
		}
	}
	return Department{}, false
}

// contains expects term already normalized.
func contains(value, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(normalize(value), term)
}

// normalize trims and lower-cases without folding, so "ss" does not match
// "ß". A Caser is not safe for concurrent use so one is built per call.
func normalize(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
