// Package viewmodel holds the console's normalized entity shapes and the
// mapping between them and the backend wire DTOs.
package viewmodel

import (
	"fmt"
	"strings"
)

// Address is a single free-text address line.
type Address struct {
	AddressName string
}

// Training is an entry of the shared training catalog.
type Training struct {
	ID            string
	Type          string
	PositionName  string
	Description   string
	TrainingHours int
}

// Label is the dropdown caption used when assigning a training.
func (t Training) Label() string {
	return fmt.Sprintf("%s - %s (%d hrs)", t.Type, t.PositionName, t.TrainingHours)
}

// DepartmentDetails is the department summary embedded in an employee.
type DepartmentDetails struct {
	ID          string
	Name        string
	Email       string
	Type        string
	PhoneNumber string
	Description string
}

// Employee belongs to exactly one department. TrainingDetails is nil when
// no training is assigned.
type Employee struct {
	ID                string
	FirstName         string
	LastName          string
	Age               int
	Email             string
	Position          string
	Gender            Gender
	DepartmentID      string
	DepartmentDetails *DepartmentDetails
	TrainingDetails   *Training
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// TrainingID returns the assigned training id or "".
func (e Employee) TrainingID() string {
	if e.TrainingDetails == nil {
		return ""
	}
	return e.TrainingDetails.ID
}

// Department belongs to exactly one company.
type Department struct {
	ID                 string
	Name               string
	Description        string
	Email              string
	PhoneNumber        string
	Type               string
	CompanyID          string
	CompanyName        string
	CompanyDescription string
	Addresses          []Address
	Employees          []Employee
}

// FirstAddress returns the first address line, which is the one the edit
// forms expose.
func (d Department) FirstAddress() string {
	if len(d.Addresses) == 0 {
		return ""
	}
	return d.Addresses[0].AddressName
}

// Company is the root of the organisational hierarchy.
type Company struct {
	ID          string
	Name        string
	Description string
	Email       string
	PhoneNumber string
	Addresses   []Address
	Departments []Department
}

// FirstAddress returns the first address line or "".
func (c Company) FirstAddress() string {
	if len(c.Addresses) == 0 {
		return ""
	}
	return c.Addresses[0].AddressName
}

// FindDepartmentByID returns the department with id from an already
// fetched company.
func (c Company) FindDepartmentByID(id string) (Department, bool) {
	for _, dept := range c.Departments {
		if dept.ID == id {
			return dept, true
		}
	}
	return Department{}, false
}

// FindEmployeeByID returns the employee with id from an already fetched
// department.
func (d Department) FindEmployeeByID(id string) (Employee, bool) {
	for _, emp := range d.Employees {
		if emp.ID == id {
			return emp, true
		}
	}
	return Employee{}, false
}

// FindTrainingByID looks id up in a fetched catalog.
func FindTrainingByID(trainings []Training, id string) (Training, bool) {
	for _, t := range trainings {
		if t.ID == id {
			return t, true
		}
	}
	return Training{}, false
}
