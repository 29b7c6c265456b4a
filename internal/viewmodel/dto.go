package viewmodel

// Read-side wire shapes. They differ per endpoint on purpose: the backend
// is not consistent about key names, so each endpoint keeps its own type.

// AddressDTO is the address element of company and department payloads.
type AddressDTO struct {
	AddressName *string `json:"addressName"`
}

// TrainingDTO is returned by /Training and embedded in employees.
type TrainingDTO struct {
	ID            ID      `json:"id"`
	Type          *string `json:"type"`
	PositionName  *string `json:"positionName"`
	Description   *string `json:"description"`
	TrainingHours int     `json:"trainingHours"`
}

// DepartmentDetailsDTO is the department summary embedded in employees.
type DepartmentDetailsDTO struct {
	ID          ID      `json:"id"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Type        *string `json:"type"`
	PhoneNumber *string `json:"phoneNumber"`
	Description *string `json:"description"`
}

// CompanyDTO is returned by GET /Company and GET /Company/{id}.
type CompanyDTO struct {
	ID          ID                     `json:"id"`
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Email       *string                `json:"email"`
	PhoneNumber *string                `json:"phoneNumber"`
	Addresses   []AddressDTO           `json:"addresses"`
	Departments []CompanyDepartmentDTO `json:"departments"`
}

// CompanyDepartmentDTO is a department nested in a company detail payload.
type CompanyDepartmentDTO struct {
	ID                 ID                   `json:"id"`
	Name               *string              `json:"name"`
	Description        *string              `json:"description"`
	Email              *string              `json:"email"`
	PhoneNumber        *string              `json:"phoneNumber"`
	Type               *string              `json:"type"`
	CompanyID          ID                   `json:"companyID"`
	CompanyName        *string              `json:"companyName"`
	CompanyDescription *string              `json:"companyDescription"`
	Addresses          []AddressDTO         `json:"addresses"`
	Employees          []CompanyEmployeeDTO `json:"employees"`
}

// CompanyEmployeeDTO is an employee nested in a company detail payload. It
// uses firstName/lastName and the "trainingDto" key.
type CompanyEmployeeDTO struct {
	ID                ID                    `json:"id"`
	FirstName         *string               `json:"firstName"`
	LastName          *string               `json:"lastName"`
	Age               int                   `json:"age"`
	Email             *string               `json:"email"`
	Position          *string               `json:"position"`
	Gender            Gender                `json:"gender"`
	DepartmentDetails *DepartmentDetailsDTO `json:"departmentDetails"`
	TrainingDto       *TrainingDTO          `json:"trainingDto"`
}

// DepartmentDTO is returned by GET /Department/{id}.
type DepartmentDTO struct {
	ID                 ID                      `json:"id"`
	Name               *string                 `json:"name"`
	Description        *string                 `json:"description"`
	Email              *string                 `json:"email"`
	PhoneNumber        *string                 `json:"phoneNumber"`
	Type               *string                 `json:"type"`
	CompanyID          ID                      `json:"companyID"`
	CompanyName        *string                 `json:"companyName"`
	CompanyDescription *string                 `json:"companyDescription"`
	Addresses          []AddressDTO            `json:"addresses"`
	DepartmentDetails  *DepartmentDetailsDTO   `json:"departmentDetails"`
	Employees          []DepartmentEmployeeDTO `json:"employees"`
}

// DepartmentEmployeeDTO is an employee nested in a department payload. It
// uses name/surname and the "trainingDTO" key.
type DepartmentEmployeeDTO struct {
	ID          ID           `json:"id"`
	Name        *string      `json:"name"`
	Surname     *string      `json:"surname"`
	Age         int          `json:"age"`
	Email       *string      `json:"email"`
	Position    *string      `json:"position"`
	Gender      Gender       `json:"gender"`
	TrainingDTO *TrainingDTO `json:"trainingDTO"`
}

// EmployeeDTO is returned by GET /Employee/{id}.
type EmployeeDTO struct {
	ID                ID                    `json:"id"`
	FirstName         *string               `json:"firstName"`
	LastName          *string               `json:"lastName"`
	Age               int                   `json:"age"`
	Email             *string               `json:"email"`
	Position          *string               `json:"position"`
	Gender            Gender                `json:"gender"`
	DepartmentID      ID                    `json:"departmentId"`
	DepartmentDetails *DepartmentDetailsDTO `json:"departmentDetails"`
	TrainingDetails   *TrainingDTO          `json:"trainingDetails"`
}

// LoginResponse is returned by POST /User/login.
type LoginResponse struct {
	Token string `json:"token"`
}
