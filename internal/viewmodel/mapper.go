package viewmodel

// Read-side mapping. Every function here is pure: missing optional text
// becomes "", missing collections become empty slices and an absent
// training becomes nil.

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func addressesFromDTO(in []AddressDTO) []Address {
	out := make([]Address, 0, len(in))
	for _, a := range in {
		out = append(out, Address{AddressName: str(a.AddressName)})
	}
	return out
}

func trainingFromDTO(in *TrainingDTO) *Training {
	if in == nil {
		return nil
	}
	t := TrainingFromDTO(*in)
	return &t
}

func departmentDetailsFromDTO(in *DepartmentDetailsDTO) *DepartmentDetails {
	if in == nil {
		return nil
	}
	return &DepartmentDetails{
		ID:          string(in.ID),
		Name:        str(in.Name),
		Email:       str(in.Email),
		Type:        str(in.Type),
		PhoneNumber: str(in.PhoneNumber),
		Description: str(in.Description),
	}
}

// TrainingFromDTO maps one catalog entry.
func TrainingFromDTO(in TrainingDTO) Training {
	return Training{
		ID:            string(in.ID),
		Type:          str(in.Type),
		PositionName:  str(in.PositionName),
		Description:   str(in.Description),
		TrainingHours: in.TrainingHours,
	}
}

// TrainingsFromDTO maps the /Training collection.
func TrainingsFromDTO(in []TrainingDTO) []Training {
	out := make([]Training, 0, len(in))
	for _, t := range in {
		out = append(out, TrainingFromDTO(t))
	}
	return out
}

// CompaniesFromDTO maps the /Company collection.
func CompaniesFromDTO(in []CompanyDTO) []Company {
	out := make([]Company, 0, len(in))
	for _, c := range in {
		out = append(out, CompanyFromDTO(c))
	}
	return out
}

// CompanyFromDTO flattens a company detail payload. Employees nested under
// departments carry firstName/lastName and "trainingDto".
func CompanyFromDTO(in CompanyDTO) Company {
	departments := make([]Department, 0, len(in.Departments))
	for _, dept := range in.Departments {
		employees := make([]Employee, 0, len(dept.Employees))
		for _, emp := range dept.Employees {
			employees = append(employees, Employee{
				ID:                string(emp.ID),
				FirstName:         str(emp.FirstName),
				LastName:          str(emp.LastName),
				Age:               emp.Age,
				Email:             str(emp.Email),
				Position:          str(emp.Position),
				Gender:            emp.Gender,
				DepartmentID:      string(dept.ID),
				DepartmentDetails: departmentDetailsFromDTO(emp.DepartmentDetails),
				TrainingDetails:   trainingFromDTO(emp.TrainingDto),
			})
		}
		departments = append(departments, Department{
			ID:                 string(dept.ID),
			Name:               str(dept.Name),
			Description:        str(dept.Description),
			Email:              str(dept.Email),
			PhoneNumber:        str(dept.PhoneNumber),
			Type:               str(dept.Type),
			CompanyID:          string(dept.CompanyID),
			CompanyName:        str(dept.CompanyName),
			CompanyDescription: str(dept.CompanyDescription),
			Addresses:          addressesFromDTO(dept.Addresses),
			Employees:          employees,
		})
	}
	return Company{
		ID:          string(in.ID),
		Name:        str(in.Name),
		Description: str(in.Description),
		Email:       str(in.Email),
		PhoneNumber: str(in.PhoneNumber),
		Addresses:   addressesFromDTO(in.Addresses),
		Departments: departments,
	}
}

// DepartmentFromDTO maps a department detail payload. Its employees carry
// name/surname and "trainingDTO", and share the department-level details
// block. This stays separate from CompanyFromDTO because the two endpoints
// do not agree on key names.
func DepartmentFromDTO(in DepartmentDTO) Department {
	details := departmentDetailsFromDTO(in.DepartmentDetails)
	employees := make([]Employee, 0, len(in.Employees))
	for _, emp := range in.Employees {
		var empDetails *DepartmentDetails
		if details != nil {
			copied := *details
			empDetails = &copied
		}
		employees = append(employees, Employee{
			ID:                string(emp.ID),
			FirstName:         str(emp.Name),
			LastName:          str(emp.Surname),
			Age:               emp.Age,
			Email:             str(emp.Email),
			Position:          str(emp.Position),
			Gender:            emp.Gender,
			DepartmentID:      string(in.ID),
			DepartmentDetails: empDetails,
			TrainingDetails:   trainingFromDTO(emp.TrainingDTO),
		})
	}
	return Department{
		ID:                 string(in.ID),
		Name:               str(in.Name),
		Description:        str(in.Description),
		Email:              str(in.Email),
		PhoneNumber:        str(in.PhoneNumber),
		Type:               str(in.Type),
		CompanyID:          string(in.CompanyID),
		CompanyName:        str(in.CompanyName),
		CompanyDescription: str(in.CompanyDescription),
		Addresses:          addressesFromDTO(in.Addresses),
		Employees:          employees,
	}
}

// EmployeeFromDTO maps GET /Employee/{id}.
func EmployeeFromDTO(in EmployeeDTO) Employee {
	return Employee{
		ID:                string(in.ID),
		FirstName:         str(in.FirstName),
		LastName:          str(in.LastName),
		Age:               in.Age,
		Email:             str(in.Email),
		Position:          str(in.Position),
		Gender:            in.Gender,
		DepartmentID:      string(in.DepartmentID),
		DepartmentDetails: departmentDetailsFromDTO(in.DepartmentDetails),
		TrainingDetails:   trainingFromDTO(in.TrainingDetails),
	}
}
