package viewmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyCreateRequestAddresses(t *testing.T) {
	body, err := json.Marshal(NewCompanyCreateRequest(CompanyForm{Name: " Acme ", AddressName: "1 Main St"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Acme","description":"","email":"","phoneNumber":"","addresses":[{"addressName":"1 Main St"}]}`, string(body))

	body, err = json.Marshal(NewCompanyCreateRequest(CompanyForm{Name: "Acme", AddressName: "  "}))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"addresses":[]`)
}

func TestCompanyUpdateRequestOmitsAddresses(t *testing.T) {
	body, err := json.Marshal(NewCompanyUpdateRequest(CompanyForm{Name: "Acme", AddressName: "ignored"}))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "addresses")
}

func TestDepartmentRequestsKeySpelling(t *testing.T) {
	form := DepartmentForm{Name: "Engineering", Type: "Tech", AddressName: "Floor 2"}

	body, err := json.Marshal(NewDepartmentCreateRequest("c1", form))
	require.NoError(t, err)
	assert.JSONEq(t, `{"companyId":"c1","name":"Engineering","type":"Tech","email":"","phoneNumber":"","description":"","DepartmentAddresses":[{"addressName":"Floor 2"}]}`, string(body))

	body, err = json.Marshal(NewDepartmentUpdateRequest("d1", "c1", form))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"d1","Name":"Engineering","Description":"","Email":"","PhoneNumber":"","Type":"Tech","CompanyID":"c1","DepartmentAddresses":[{"addressName":"Floor 2"}]}`, string(body))
}

func TestEmployeeRequestsTrainingKey(t *testing.T) {
	form := EmployeeForm{FirstName: "Anna", LastName: "Smith", Age: 30, Email: "a@x.io", Position: "Dev", Gender: "Female"}

	body, err := json.Marshal(NewEmployeeCreateRequest("d1", form))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Anna","surname":"Smith","age":30,"email":"a@x.io","position":"Dev","gender":"Female","departmentId":"d1","trainingId":null}`, string(body))

	form.TrainingID = "t1"
	body, err = json.Marshal(NewEmployeeUpdateRequest("e1", "d1", form))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"e1","name":"Anna","surname":"Smith","age":30,"email":"a@x.io","position":"Dev","gender":"Female","departmentId":"d1","trainingID":"t1"}`, string(body))

	form.TrainingID = ""
	body, err = json.Marshal(NewEmployeeUpdateRequest("e1", "d1", form))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"trainingID":null`)
}

func TestRegisterRequest(t *testing.T) {
	req := NewRegisterRequest(RegisterForm{
		Name:        "Anna",
		Surname:     "Smith",
		UserName:    "anna",
		Password:    "pw",
		Email:       "a@x.io",
		Gender:      "Female",
		DateOfBirth: "1990-05-17",
		Addresses:   "1 Main St\n\n  \r\n2 High St\r\n",
	})
	assert.Equal(t, 1, req.Gender)
	assert.Equal(t, "1990-05-17T00:00:00.000Z", req.DateOfBirth)
	assert.Equal(t, []AddressRequest{{AddressName: "1 Main St"}, {AddressName: "2 High St"}}, req.Addresses)
}

func TestValidateTrainingHours(t *testing.T) {
	form := TrainingForm{Type: "Safety", PositionName: "Ops", TrainingHours: 0}
	errs := ValidateTraining(form)
	require.True(t, errs.Any())
	assert.Equal(t, "Please fill in all required fields and ensure Training Hours is a positive number.", errs.General())
	assert.Contains(t, errs, "trainingHours")

	assert.Equal(t, "Training hours must be greater than 0", errs["trainingHours"])

	form.TrainingHours = 4
	assert.False(t, ValidateTraining(form).Any())
}

func TestValidateCompanyCreateRequiresAddress(t *testing.T) {
	errs := ValidateCompanyCreate(CompanyForm{Name: "Acme"})
	require.True(t, errs.Any())
	assert.Equal(t, "Company Name and Address are required.", errs.General())
	assert.Contains(t, errs, "addressName")

	assert.False(t, ValidateCompanyUpdate(CompanyForm{Name: "Acme"}).Any())
	assert.True(t, ValidateCompanyUpdate(CompanyForm{}).Any())
}

func TestValidateDepartmentAndEmployee(t *testing.T) {
	errs := ValidateDepartment(DepartmentForm{})
	assert.Equal(t, "Department Name is required.", errs.General())

	emp := NewEmployeeForm()
	errs = ValidateEmployee(emp)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")

	emp.FirstName, emp.LastName, emp.Email, emp.Position = "Anna", "Smith", "a@x.io", "Dev"
	assert.False(t, ValidateEmployee(emp).Any())

	emp.Email = "not-an-email"
	assert.Contains(t, ValidateEmployee(emp), "email")
}

func TestValidateRegister(t *testing.T) {
	errs := ValidateRegister(RegisterForm{Name: "Anna"})
	assert.Equal(t, "Please fill in all required user fields.", errs.General())

	ok := RegisterForm{Name: "A", Surname: "B", UserName: "ab", Password: "pw", Email: "a@b.io", Gender: "Male", DateOfBirth: "2000-01-31"}
	assert.False(t, ValidateRegister(ok).Any())

	ok.DateOfBirth = "31/01/2000"
	assert.Contains(t, ValidateRegister(ok), "dateOfBirth")
}

func TestEditFormsPrePopulate(t *testing.T) {
	emp := Employee{FirstName: "Anna", Gender: GenderFemale, TrainingDetails: &Training{ID: "t1"}}
	form := EmployeeFormFrom(emp)
	assert.Equal(t, "Female", form.Gender)
	assert.Equal(t, "t1", form.TrainingID)

	company := Company{Name: "Acme", Addresses: []Address{{AddressName: "1 Main St"}}}
	assert.Equal(t, "1 Main St", CompanyFormFrom(company).AddressName)
}

func TestFormErrorsMerge(t *testing.T) {
	errs := FormErrors{GeneralKey: "first"}.Merge(FormErrors{GeneralKey: "second", "age": "Age is invalid"})
	assert.Equal(t, "first", errs.General())
	assert.Equal(t, "Age is invalid", errs["age"])

	var empty FormErrors
	assert.Equal(t, "x", empty.Merge(FormErrors{"a": "x"})["a"])
	assert.Nil(t, empty.Merge(nil))
}
