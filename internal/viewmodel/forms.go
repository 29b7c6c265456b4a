package viewmodel

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Form structs are decoded from posted HTML forms and validated before any
// backend call is made.

// LoginForm is posted by the login page.
type LoginForm struct {
	UserName string `form:"userName" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm is posted by the registration page. Addresses holds one
// address per line.
type RegisterForm struct {
	Name        string `form:"name" validate:"required"`
	Surname     string `form:"surname" validate:"required"`
	UserName    string `form:"userName" validate:"required"`
	Password    string `form:"password" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Gender      string `form:"gender" validate:"required,oneof=Male Female Other"`
	DateOfBirth string `form:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Addresses   string `form:"addresses"`
}

// CompanyForm carries the editable company fields. AddressName is only
// used on create.
type CompanyForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
	Email       string `form:"email" validate:"omitempty,email"`
	PhoneNumber string `form:"phoneNumber"`
	AddressName string `form:"addressName"`
}

// DepartmentForm carries the editable department fields with a single
// address line.
type DepartmentForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
	Email       string `form:"email" validate:"omitempty,email"`
	PhoneNumber string `form:"phoneNumber"`
	Type        string `form:"type"`
	AddressName string `form:"addressName"`
}

// EmployeeForm carries the editable employee fields. TrainingID is "" when
// no training is selected.
type EmployeeForm struct {
	FirstName  string `form:"name" validate:"required"`
	LastName   string `form:"surname" validate:"required"`
	Age        int    `form:"age" validate:"gte=0,lte=100"`
	Email      string `form:"email" validate:"required,email"`
	Position   string `form:"position" validate:"required"`
	Gender     string `form:"gender" validate:"required,oneof=Male Female Other"`
	TrainingID string `form:"trainingId"`
}

// TrainingForm carries a catalog entry.
type TrainingForm struct {
	Type          string `form:"type" validate:"required"`
	PositionName  string `form:"positionName" validate:"required"`
	Description   string `form:"description"`
	TrainingHours int    `form:"trainingHours" validate:"gt=0"`
}

// CompanyFormFrom pre-populates an edit form from a fetched row.
func CompanyFormFrom(c Company) CompanyForm {
	return CompanyForm{
		Name:        c.Name,
		Description: c.Description,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		AddressName: c.FirstAddress(),
	}
}

// DepartmentFormFrom pre-populates an edit form from a fetched row.
func DepartmentFormFrom(d Department) DepartmentForm {
	return DepartmentForm{
		Name:        d.Name,
		Description: d.Description,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
		Type:        d.Type,
		AddressName: d.FirstAddress(),
	}
}

// EmployeeFormFrom pre-populates an edit form from a fetched row.
func EmployeeFormFrom(e Employee) EmployeeForm {
	return EmployeeForm{
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Age:        e.Age,
		Email:      e.Email,
		Position:   e.Position,
		Gender:     e.Gender.String(),
		TrainingID: e.TrainingID(),
	}
}

// NewEmployeeForm is the blank create form.
func NewEmployeeForm() EmployeeForm {
	return EmployeeForm{Age: 18, Gender: GenderMale.String()}
}

// TrainingFormFrom pre-populates an edit form from a fetched row.
func TrainingFormFrom(t Training) TrainingForm {
	return TrainingForm{
		Type:          t.Type,
		PositionName:  t.PositionName,
		Description:   t.Description,
		TrainingHours: t.TrainingHours,
	}
}

// FormErrors maps form field names (the `form` tag) to messages. The
// "general" key holds the summary shown above the form.
type FormErrors map[string]string

// GeneralKey is the FormErrors key of the summary message.
const GeneralKey = "general"

// Any reports whether at least one error is present.
func (e FormErrors) Any() bool {
	return len(e) > 0
}

// General returns the summary message.
func (e FormErrors) General() string {
	return e[GeneralKey]
}

// Merge copies other into e and returns the result.
func (e FormErrors) Merge(other FormErrors) FormErrors {
	if len(other) == 0 {
		return e
	}
	if e == nil {
		e = FormErrors{}
	}
	for k, v := range other {
		if _, exists := e[k]; !exists || k != GeneralKey {
			e[k] = v
		}
	}
	return e
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// label turns a Go field name into words: "TrainingHours" -> "Training hours".
func label(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func check(form any, summary string) FormErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	errs := FormErrors{GeneralKey: summary}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs[fe.Field()] = fieldMessage(fe)
		}
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	name := label(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// ValidateLogin checks the login form.
func ValidateLogin(f LoginForm) FormErrors {
	return check(f, "Please enter your username and password.")
}

// ValidateRegister checks the registration form.
func ValidateRegister(f RegisterForm) FormErrors {
	return check(f, "Please fill in all required user fields.")
}

// ValidateCompanyCreate requires a name and an address.
func ValidateCompanyCreate(f CompanyForm) FormErrors {
	errs := check(f, "Company Name and Address are required.")
	if strings.TrimSpace(f.AddressName) == "" {
		if errs == nil {
			errs = FormErrors{GeneralKey: "Company Name and Address are required."}
		}
		errs["addressName"] = "Address name is required"
	}
	return errs
}

// ValidateCompanyUpdate requires a name.
func ValidateCompanyUpdate(f CompanyForm) FormErrors {
	return check(f, "Company Name is required.")
}

// ValidateDepartment requires a name.
func ValidateDepartment(f DepartmentForm) FormErrors {
	return check(f, "Department Name is required.")
}

// ValidateEmployee checks the employee form.
func ValidateEmployee(f EmployeeForm) FormErrors {
	return check(f, "Please fill in all required employee fields.")
}

// ValidateTraining requires type, position and positive hours.
func ValidateTraining(f TrainingForm) FormErrors {
	return check(f, "Please fill in all required fields and ensure Training Hours is a positive number.")
}
