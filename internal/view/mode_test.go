package view

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeFromQuery(t *testing.T) {
	cases := []struct {
		query string
		want  Mode
	}{
		{"", Idle()},
		{"mode=create", Creating()},
		{"mode=create&id=x", Creating()},
		{"mode=edit&id=c1", Editing("c1")},
		{"mode=EDIT&id=%20c1%20", Editing("c1")},
		{"mode=edit", Idle()},
		{"mode=view&id=e1", Viewing("e1")},
		{"mode=delete&id=d1", ConfirmingDelete("d1")},
		{"mode=delete", Idle()},
		{"mode=bogus&id=c1", Idle()},
	}
	for _, tc := range cases {
		q, err := url.ParseQuery(tc.query)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.query, err)
		}
		assert.Equal(t, tc.want, ModeFromQuery(q), tc.query)
	}
}

func TestModeIsExclusive(t *testing.T) {
	m := Editing("c1")
	assert.True(t, m.IsEditing("c1"))
	assert.False(t, m.IsEditing("c2"))
	assert.False(t, m.IsCreating())
	assert.False(t, m.IsConfirmingDelete("c1"))
	assert.True(t, m.Targets("c1"))
	assert.False(t, Creating().Targets(""))
	assert.False(t, Idle().Targets(""))
}

func TestModeURL(t *testing.T) {
	assert.Equal(t, "/companies", Idle().URL("/companies"))
	assert.Equal(t, "/companies?mode=create", Creating().URL("/companies"))
	assert.Equal(t, "/companies?id=c1&mode=delete", ConfirmingDelete("c1").URL("/companies"))
	assert.Equal(t, "/trainings?id=a+b&mode=edit", Editing("a b").URL("/trainings"))
	assert.Equal(t, "/companies/c1?id=d1&mode=view", ModeURL("/companies/c1", "view", "d1"))
	assert.Equal(t, "/companies", ModeURL("/companies", "edit", ""))
}

func TestModeRoundTripsThroughQuery(t *testing.T) {
	for _, m := range []Mode{Idle(), Creating(), Editing("1"), Viewing("2"), ConfirmingDelete("3")} {
		assert.Equal(t, m, ModeFromQuery(m.Values()), m.String())
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "idle", Idle().String())
	assert.Equal(t, "create", Creating().String())
	assert.Equal(t, "edit:c1", Editing("c1").String())
}
