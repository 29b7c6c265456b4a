package view

import (
	"net/url"
	"strings"
)

// ModeKind enumerates the panels a list or detail page can show.
type ModeKind uint8

const (
	ModeIdle ModeKind = iota
	ModeCreating
	ModeEditing
	ModeViewing
	ModeConfirmingDelete
)

// Query values understood by ModeFromQuery.
const (
	modeParam = "mode"
	idParam   = "id"
)

var modeNames = map[ModeKind]string{
	ModeCreating:         "create",
	ModeEditing:          "edit",
	ModeViewing:          "view",
	ModeConfirmingDelete: "delete",
}

// Mode is the single active panel of a page. Only one variant can be in
// effect, so a create form and an edit form can never be open together.
type Mode struct {
	kind ModeKind
	id   string
}

// Idle shows no panel.
func Idle() Mode { return Mode{} }

// Creating shows the create form.
func Creating() Mode { return Mode{kind: ModeCreating} }

// Editing shows the edit form for id.
func Editing(id string) Mode { return Mode{kind: ModeEditing, id: id} }

// Viewing shows the read-only panel for id.
func Viewing(id string) Mode { return Mode{kind: ModeViewing, id: id} }

// ConfirmingDelete asks for confirmation before deleting id.
func ConfirmingDelete(id string) Mode { return Mode{kind: ModeConfirmingDelete, id: id} }

// ModeFromQuery decodes ?mode=&id=. Variants that need an id fall back to
// Idle when it is missing.
func ModeFromQuery(q url.Values) Mode {
	id := strings.TrimSpace(q.Get(idParam))
	switch strings.ToLower(strings.TrimSpace(q.Get(modeParam))) {
	case "create":
		return Creating()
	case "edit":
		if id != "" {
			return Editing(id)
		}
	case "view":
		if id != "" {
			return Viewing(id)
		}
	case "delete":
		if id != "" {
			return ConfirmingDelete(id)
		}
	}
	return Idle()
}

// Kind returns the active variant.
func (m Mode) Kind() ModeKind { return m.kind }

// ID returns the record the mode targets, "" for Idle and Creating.
func (m Mode) ID() string { return m.id }

// IsIdle reports whether no panel is open.
func (m Mode) IsIdle() bool { return m.kind == ModeIdle }

// IsCreating reports whether the create form is open.
func (m Mode) IsCreating() bool { return m.kind == ModeCreating }

// IsEditing reports whether the edit form for id is open.
func (m Mode) IsEditing(id string) bool { return m.kind == ModeEditing && m.id == id }

// IsViewing reports whether the read-only panel for id is open.
func (m Mode) IsViewing(id string) bool { return m.kind == ModeViewing && m.id == id }

// IsConfirmingDelete reports whether deletion of id awaits confirmation.
func (m Mode) IsConfirmingDelete(id string) bool {
	return m.kind == ModeConfirmingDelete && m.id == id
}

// Targets reports whether the mode holds any panel for id.
func (m Mode) Targets(id string) bool {
	return m.kind != ModeIdle && m.kind != ModeCreating && m.id == id
}

// Values encodes the mode as query values.
func (m Mode) Values() url.Values {
	v := url.Values{}
	name, ok := modeNames[m.kind]
	if !ok {
		return v
	}
	v.Set(modeParam, name)
	if m.id != "" {
		v.Set(idParam, m.id)
	}
	return v
}

// URL returns path with the mode encoded in the query string.
func (m Mode) URL(path string) string {
	if q := m.Values().Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

func (m Mode) String() string {
	if name, ok := modeNames[m.kind]; ok {
		if m.id != "" {
			return name + ":" + m.id
		}
		return name
	}
	return "idle"
}

// ModeURL builds a link that opens the named mode. It backs the "modeURL"
// template function.
func ModeURL(path, mode, id string) string {
	return ModeFromQuery(url.Values{modeParam: {mode}, idParam: {id}}).URL(path)
}
