package viewmodel

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Gender is the employee/user gender enumeration.
type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
	GenderOther
)

// Genders lists the selectable values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Other"
	}
}

// ParseGender accepts the enum name (any case) or its numeric value.
func ParseGender(value string) (Gender, bool) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "male":
		return GenderMale, true
	case "female":
		return GenderFemale, true
	case "other":
		return GenderOther, true
	}
	if n, err := strconv.Atoi(value); err == nil && n >= int(GenderMale) && n <= int(GenderOther) {
		return Gender(n), true
	}
	return GenderMale, false
}

// MarshalJSON writes the enum by name, which is what the employee routes
// bind.
func (g Gender) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON reads either the numeric or the string form. Unknown values
// fall back to Other rather than failing the whole payload.
func (g *Gender) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*g = GenderMale
		return nil
	}
	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}
	parsed, ok := ParseGender(raw)
	if !ok {
		parsed = GenderOther
	}
	*g = parsed
	return nil
}

// ID is a backend identifier. The backend emits GUID strings but numeric
// ids are accepted as well.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
