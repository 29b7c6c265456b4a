package view

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/form"

	"github.com/hmc-console/hmc-console/internal/shared"
	"github.com/hmc-console/hmc-console/internal/viewmodel"
)

// InvalidInputMessage summarizes fields DecodeForm could not convert.
const InvalidInputMessage = "Please correct the highlighted fields."

// Decoder is safe for concurrent use and caches struct metadata.
var decoder = form.NewDecoder()

// secretFields never travel back to the browser in a form echo.
var secretFields = []string{"password", shared.CSRFFormField, shared.SubmitFormField}

// DecodeForm parses the posted form into dst. Fields that cannot be
// converted (a non-numeric age) come back as FormErrors under their form
// name; the error return is reserved for unreadable request bodies.
func DecodeForm(r *http.Request, dst any) (viewmodel.FormErrors, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	err := DecodeValues(r.PostForm, dst)
	if err == nil {
		return nil, nil
	}
	var fieldErrs form.DecodeErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}
	errs := viewmodel.FormErrors{viewmodel.GeneralKey: InvalidInputMessage}
	for field := range fieldErrs {
		errs[field] = "Invalid value"
	}
	return errs, nil
}

// DecodeValues decodes url values into dst using the `form` struct tags.
func DecodeValues(values url.Values, dst any) error {
	return decoder.Decode(dst, values)
}

func echoKey(path string, mode Mode) string {
	return path + "|" + mode.String()
}

// FailForm sends the user back to the form at mode on backPath, keeping the
// submitted values and field errors for one render. message becomes the
// inline error banner.
func (p *Responder) FailForm(w http.ResponseWriter, r *http.Request, backPath string, mode Mode, message string, errs viewmodel.FormErrors) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		values := url.Values{}
		for key, v := range r.PostForm {
			values[key] = v
		}
		for _, key := range secretFields {
			values.Del(key)
		}
		sess.StashForm(echoKey(backPath, mode), shared.FormEcho{Values: values, Errors: errs})
	}
	p.RedirectWithFlash(w, r, mode.URL(backPath), shared.FlashError, message)
}

// RecallForm restores a form rejected by FailForm into dst. It reports
// false when there is nothing to restore for this page and mode.
func (p *Responder) RecallForm(r *http.Request, mode Mode, dst any) (viewmodel.FormErrors, bool) {
	sess := shared.SessionFromContext(r.Context())
	echo, ok := sess.PopForm(echoKey(r.URL.EscapedPath(), mode))
	if !ok {
		return nil, false
	}
	if err := DecodeValues(echo.Values, dst); err != nil {
		p.Logger.Debug("discard form echo", "error", err)
	}
	return viewmodel.FormErrors(echo.Errors), true
}

// Back is the path of the page a form was posted from, taken from the
// hidden "back" field. Anything that is not a local console path falls back
// to fallback.
func Back(r *http.Request, fallback string) string {
	back := strings.TrimSpace(r.PostFormValue("back"))
	if back == "" || !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") || strings.ContainsAny(back, "?#\\") {
		return fallback
	}
	return back
}
