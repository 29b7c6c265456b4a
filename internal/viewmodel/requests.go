package viewmodel

import (
	"strings"
	"time"
)

// Write-side payloads. The key spellings below are contract points with
// distinct backend routes and must not be normalised: Company uses
// "addresses", Department uses "DepartmentAddresses", employee create sends
// "trainingId" while employee update sends "trainingID".

// AddressRequest is one address element in a write payload.
type AddressRequest struct {
	AddressName string `json:"addressName"`
}

// LoginRequest is posted to /User/login.
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// RegisterRequest is posted to /User/register. Gender is numeric here.
type RegisterRequest struct {
	Name        string           `json:"name"`
	Surname     string           `json:"surname"`
	UserName    string           `json:"userName"`
	Password    string           `json:"password"`
	Email       string           `json:"email"`
	Gender      int              `json:"gender"`
	DateOfBirth string           `json:"dateOfBirth"`
	Addresses   []AddressRequest `json:"addresses"`
}

// CompanyCreateRequest is posted to /Company.
type CompanyCreateRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Email       string           `json:"email"`
	PhoneNumber string           `json:"phoneNumber"`
	Addresses   []AddressRequest `json:"addresses"`
}

// CompanyUpdateRequest is put to /Company/{id}.
type CompanyUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// DepartmentCreateRequest is posted to /Department.
type DepartmentCreateRequest struct {
	CompanyID           string           `json:"companyId"`
	Name                string           `json:"name"`
	Type                string           `json:"type"`
	Email               string           `json:"email"`
	PhoneNumber         string           `json:"phoneNumber"`
	Description         string           `json:"description"`
	DepartmentAddresses []AddressRequest `json:"DepartmentAddresses"`
}

// DepartmentUpdateRequest is put to /Department/{id}. The owning company
// id is immutable but the route requires it.
type DepartmentUpdateRequest struct {
	ID                  string           `json:"id"`
	Name                string           `json:"Name"`
	Description         string           `json:"Description"`
	Email               string           `json:"Email"`
	PhoneNumber         string           `json:"PhoneNumber"`
	Type                string           `json:"Type"`
	CompanyID           string           `json:"CompanyID"`
	DepartmentAddresses []AddressRequest `json:"DepartmentAddresses"`
}

// EmployeeCreateRequest is posted to /Employee.
type EmployeeCreateRequest struct {
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Age          int     `json:"age"`
	Email        string  `json:"email"`
	Position     string  `json:"position"`
	Gender       Gender  `json:"gender"`
	DepartmentID string  `json:"departmentId"`
	TrainingID   *string `json:"trainingId"`
}

// EmployeeUpdateRequest is put to /Employee/{id}.
type EmployeeUpdateRequest struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Age          int     `json:"age"`
	Email        string  `json:"email"`
	Position     string  `json:"position"`
	Gender       Gender  `json:"gender"`
	DepartmentID string  `json:"departmentId"`
	TrainingID   *string `json:"trainingID"`
}

// TrainingRequest is posted to /Training and put to /Training/{id}.
type TrainingRequest struct {
	Type          string `json:"type"`
	PositionName  string `json:"positionName"`
	Description   string `json:"description"`
	TrainingHours int    `json:"trainingHours"`
}

func singleAddress(name string) []AddressRequest {
	name = strings.TrimSpace(name)
	if name == "" {
		return []AddressRequest{}
	}
	return []AddressRequest{{AddressName: name}}
}

func optionalID(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return &id
}

func genderOf(value string) Gender {
	g, _ := ParseGender(value)
	return g
}

// NewLoginRequest maps the login form.
func NewLoginRequest(f LoginForm) LoginRequest {
	return LoginRequest{UserName: strings.TrimSpace(f.UserName), Password: f.Password}
}

// NewRegisterRequest maps the registration form. Blank address lines are
// dropped and the birth date is sent as an ISO-8601 UTC timestamp.
func NewRegisterRequest(f RegisterForm) RegisterRequest {
	addresses := []AddressRequest{}
	for _, line := range strings.Split(f.Addresses, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			addresses = append(addresses, AddressRequest{AddressName: line})
		}
	}
	dob := strings.TrimSpace(f.DateOfBirth)
	if parsed, err := time.Parse("2006-01-02", dob); err == nil {
		dob = parsed.UTC().Format("2006-01-02T15:04:05.000Z")
	}
	return RegisterRequest{
		Name:        strings.TrimSpace(f.Name),
		Surname:     strings.TrimSpace(f.Surname),
		UserName:    strings.TrimSpace(f.UserName),
		Password:    f.Password,
		Email:       strings.TrimSpace(f.Email),
		Gender:      int(genderOf(f.Gender)),
		DateOfBirth: dob,
		Addresses:   addresses,
	}
}

// NewCompanyCreateRequest maps the create form.
func NewCompanyCreateRequest(f CompanyForm) CompanyCreateRequest {
	return CompanyCreateRequest{
		Name:        strings.TrimSpace(f.Name),
		Description: f.Description,
		Email:       strings.TrimSpace(f.Email),
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
		Addresses:   singleAddress(f.AddressName),
	}
}

// NewCompanyUpdateRequest maps the edit form.
func NewCompanyUpdateRequest(f CompanyForm) CompanyUpdateRequest {
	return CompanyUpdateRequest{
		Name:        strings.TrimSpace(f.Name),
		Description: f.Description,
		Email:       strings.TrimSpace(f.Email),
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
	}
}

// NewDepartmentCreateRequest maps the create form for companyID.
func NewDepartmentCreateRequest(companyID string, f DepartmentForm) DepartmentCreateRequest {
	return DepartmentCreateRequest{
		CompanyID:           companyID,
		Name:                strings.TrimSpace(f.Name),
		Type:                strings.TrimSpace(f.Type),
		Email:               strings.TrimSpace(f.Email),
		PhoneNumber:         strings.TrimSpace(f.PhoneNumber),
		Description:         f.Description,
		DepartmentAddresses: singleAddress(f.AddressName),
	}
}

// NewDepartmentUpdateRequest maps the edit form, re-sending companyID.
func NewDepartmentUpdateRequest(id, companyID string, f DepartmentForm) DepartmentUpdateRequest {
	return DepartmentUpdateRequest{
		ID:                  id,
		Name:                strings.TrimSpace(f.Name),
		Description:         f.Description,
		Email:               strings.TrimSpace(f.Email),
		PhoneNumber:         strings.TrimSpace(f.PhoneNumber),
		Type:                strings.TrimSpace(f.Type),
		CompanyID:           companyID,
		DepartmentAddresses: singleAddress(f.AddressName),
	}
}

// NewEmployeeCreateRequest maps the create form for departmentID.
func NewEmployeeCreateRequest(departmentID string, f EmployeeForm) EmployeeCreateRequest {
	return EmployeeCreateRequest{
		Name:         strings.TrimSpace(f.FirstName),
		Surname:      strings.TrimSpace(f.LastName),
		Age:          f.Age,
		Email:        strings.TrimSpace(f.Email),
		Position:     strings.TrimSpace(f.Position),
		Gender:       genderOf(f.Gender),
		DepartmentID: departmentID,
		TrainingID:   optionalID(f.TrainingID),
	}
}

// NewEmployeeUpdateRequest maps the edit form. An empty training selection
// is sent as null.
func NewEmployeeUpdateRequest(id, departmentID string, f EmployeeForm) EmployeeUpdateRequest {
	return EmployeeUpdateRequest{
		ID:           id,
		Name:         strings.TrimSpace(f.FirstName),
		Surname:      strings.TrimSpace(f.LastName),
		Age:          f.Age,
		Email:        strings.TrimSpace(f.Email),
		Position:     strings.TrimSpace(f.Position),
		Gender:       genderOf(f.Gender),
		DepartmentID: departmentID,
		TrainingID:   optionalID(f.TrainingID),
	}
}

// NewTrainingRequest maps the training form.
func NewTrainingRequest(f TrainingForm) TrainingRequest {
	return TrainingRequest{
		Type:          strings.TrimSpace(f.Type),
		PositionName:  strings.TrimSpace(f.PositionName),
		Description:   f.Description,
		TrainingHours: f.TrainingHours,
	}
}
