package companies_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmc-console/hmc-console/internal/consoletest"
	"github.com/hmc-console/hmc-console/internal/viewmodel"
)

const acme = `{"id":"c1","name":"Acme","description":"Tools","email":"info@acme.io","phoneNumber":"555",
"addresses":[{"addressName":"1 Main St"}],
"departments":[{"id":"d1","name":"Engineering","description":"Builds things","type":"Tech","companyID":"c1","addresses":[],
"employees":[{"id":"e1","firstName":"Anna","lastName":"Smith","age":30,"email":"anna@acme.io","position":"Dev","gender":1}]}]}`

func serveRaw(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func newConsole(t *testing.T) *consoletest.Harness {
	t.Helper()
	h := consoletest.New(t)
	h.Backend.HandleFunc("GET /api/Company", serveRaw("["+acme+"]"))
	h.Backend.HandleFunc("GET /api/Company/c1", serveRaw(acme))
	h.SignIn(t, "tok")
	return h
}

func TestCompaniesRequireLogin(t *testing.T) {
	h := consoletest.New(t)

	res, _ := h.Get(t, "/companies")
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/login", res.Header.Get("Location"))
	assert.Empty(t, h.Calls(), "anonymous requests must not reach the backend")
}

func TestCompanyListRendersRows(t *testing.T) {
	h := newConsole(t)

	res, body := h.Get(t, "/companies")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "1 Main St")
	assert.Contains(t, body, `href="/companies/c1"`)

	calls := h.CallsTo(http.MethodGet, "/api/Company")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer tok", calls[0].Authorization)
}

func TestCompanyListBackendFailure(t *testing.T) {
	h := consoletest.New(t)
	h.Backend.HandleFunc("GET /api/Company", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	h.SignIn(t, "tok")

	res, body := h.Get(t, "/companies")
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Contains(t, body, "Failed to load companies: boom")
	assert.NotContains(t, body, "No companies yet.")
}

func TestCreateCompanyValidationKeepsInput(t *testing.T) {
	h := newConsole(t)

	form := url.Values{"name": {"Globex"}, "description": {"Widgets"}}
	res, _ := h.Submit(t, "/companies?mode=create", "/companies", form)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/companies?mode=create", res.Header.Get("Location"))

	_, body := h.Follow(t, res)
	assert.Contains(t, body, "Company Name and Address are required.")
	assert.Contains(t, body, "Address name is required")
	assert.Contains(t, body, `value="Globex"`)
	assert.Empty(t, h.CallsTo(http.MethodPost, "/api/Company"))
}

func TestCreateCompanySendsSingleAddress(t *testing.T) {
	h := newConsole(t)
	h.Backend.HandleFunc("POST /api/Company", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	form := url.Values{"name": {" Globex "}, "addressName": {"2 Side St"}, "email": {"hi@globex.io"}}
	res, _ := h.Submit(t, "/companies?mode=create", "/companies", form)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/companies", res.Header.Get("Location"))

	calls := h.CallsTo(http.MethodPost, "/api/Company")
	require.Len(t, calls, 1)
	var sent viewmodel.CompanyCreateRequest
	consoletest.Decode(t, calls[0], &sent)
	assert.Equal(t, "Globex", sent.Name)
	assert.Equal(t, []viewmodel.AddressRequest{{AddressName: "2 Side St"}}, sent.Addresses)

	_, body := h.Follow(t, res)
	assert.Contains(t, body, "Company created successfully!")
}

func TestCreateCompanyReplayIsRejected(t *testing.T) {
	h := newConsole(t)
	h.Backend.HandleFunc("POST /api/Company", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	_, page := h.Get(t, "/companies?mode=create")
	form := url.Values{"name": {"Globex"}, "addressName": {"2 Side St"}}
	form.Set("csrf_token", between(t, page, `name="csrf_token" value="`, `"`))
	form.Set("submit_token", between(t, page, `name="submit_token" value="`, `"`))

	first, _ := h.Post(t, "/companies", form)
	require.Equal(t, http.StatusSeeOther, first.StatusCode)
	_, _ = h.Follow(t, first)
	second, _ := h.Post(t, "/companies", form)
	require.Equal(t, http.StatusSeeOther, second.StatusCode)
	assert.Equal(t, "/companies?mode=create", second.Header.Get("Location"))

	_, body := h.Follow(t, second)
	assert.Contains(t, body, "This form was already submitted.")
	assert.Len(t, h.CallsTo(http.MethodPost, "/api/Company"), 1)
}

func TestDeleteCompanyAsksForConfirmation(t *testing.T) {
	h := newConsole(t)
	h.Backend.HandleFunc("DELETE /api/Company/c1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	res, _ := h.Submit(t, "/companies", "/companies/c1/delete", url.Values{"back": {"/companies"}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/companies?id=c1&mode=delete", res.Header.Get("Location"))
	assert.Empty(t, h.CallsTo(http.MethodDelete, "/api/Company/c1"))

	_, body := h.Follow(t, res)
	assert.Contains(t, body, "Are you sure you want to delete this company?")

	res, _ = h.Submit(t, "/companies?mode=delete&id=c1", "/companies/c1/delete", url.Values{"back": {"/companies"}, "confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/companies", res.Header.Get("Location"))
	assert.Len(t, h.CallsTo(http.MethodDelete, "/api/Company/c1"), 1)
}

func TestDeleteFromDetailReturnsToList(t *testing.T) {
	h := newConsole(t)
	h.Backend.HandleFunc("DELETE /api/Company/c1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	res, _ := h.Submit(t, "/companies/c1?mode=delete&id=c1", "/companies/c1/delete", url.Values{"back": {"/companies/c1"}, "confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/companies", res.Header.Get("Location"))
}

func TestUpdateCompanyFailureShowsBackendMessage(t *testing.T) {
	h := newConsole(t)
	h.Backend.HandleFunc("PUT /api/Company/c1", func(w http.ResponseWriter, r *http.Request) {
		consoletest.JSON(w, http.StatusBadRequest, map[string]any{
			"errors": map[string][]string{"Name": {"too short"}},
		})
	})

	form := url.Values{"name": {"A"}, "back": {"/companies/c1"}}
	res, _ := h.Submit(t, "/companies/c1?mode=edit&id=c1", "/companies/c1/edit", form)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/companies/c1?id=c1&mode=edit", res.Header.Get("Location"))

	_, body := h.Follow(t, res)
	assert.Contains(t, body, "Failed to update company: Validation Errors: Name: too short")
	assert.Contains(t, body, `value="A"`, "the rejected input is shown again")
}

func TestCompanyDetailNotFound(t *testing.T) {
	h := newConsole(t)

	res, body := h.Get(t, "/companies/missing")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, body, "Company not found.")
	assert.Contains(t, body, `http-equiv="refresh"`)
}

func TestCompanyDetailSearch(t *testing.T) {
	h := newConsole(t)

	_, body := h.Get(t, "/companies/c1?emp_first=ann&emp_last=SMI")
	assert.Contains(t, body, "Employee found")
	assert.Contains(t, body, "anna@acme.io")
	assert.Contains(t, body, "Engineering")

	_, body = h.Get(t, "/companies/c1?dept_name=eng&dept_desc=")
	assert.Contains(t, body, "Department found")

	_, body = h.Get(t, "/companies/c1?emp_first=Bob&emp_last=")
	assert.Contains(t, body, "No employee found with that first and last name.")
	assert.NotContains(t, body, "Employee found")
}

func TestCompanyDetailIgnoresForeignMode(t *testing.T) {
	h := newConsole(t)

	_, body := h.Get(t, "/companies/c1?mode=edit&id=zzz")
	assert.NotContains(t, body, `action="/companies/c1/edit"`)
	assert.Contains(t, body, "Edit company")
}

func TestCreateDepartmentPostsCompanyID(t *testing.T) {
	h := newConsole(t)
	h.Backend.HandleFunc("POST /api/Department", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	form := url.Values{"name": {"Sales"}, "addressName": {"3 Dock Rd"}, "back": {"/companies/c1/departments"}}
	res, _ := h.Submit(t, "/companies/c1/departments?mode=create", "/companies/c1/departments", form)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/companies/c1/departments", res.Header.Get("Location"))

	calls := h.CallsTo(http.MethodPost, "/api/Department")
	require.Len(t, calls, 1)
	var sent viewmodel.DepartmentCreateRequest
	consoletest.Decode(t, calls[0], &sent)
	assert.Equal(t, "c1", sent.CompanyID)
	assert.Equal(t, "Sales", sent.Name)
	assert.Equal(t, []viewmodel.AddressRequest{{AddressName: "3 Dock Rd"}}, sent.DepartmentAddresses)
}

func between(t *testing.T, s, start, end string) string {
	t.Helper()
	_, rest, ok := strings.Cut(s, start)
	if !ok {
		t.Fatalf("%q not found", start)
	}
	value, _, ok := strings.Cut(rest, end)
	if !ok {
		t.Fatalf("%q not found after %q", end, start)
	}
	return value
}
