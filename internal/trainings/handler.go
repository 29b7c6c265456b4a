// Package trainings serves the training catalog page.
package trainings

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/hmc-console/hmc-console/internal/apiclient"
	"github.com/hmc-console/hmc-console/internal/shared"
	"github.com/hmc-console/hmc-console/internal/view"
	"github.com/hmc-console/hmc-console/internal/viewmodel"
)

// Handler wires the training catalog.
type Handler struct {
	logger *slog.Logger
	api    apiclient.API
	pages  *view.Responder
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, api apiclient.API, pages *view.Responder) *Handler {
	return &Handler{logger: logger, api: api, pages: pages}
}

// MountRoutes registers training routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/trainings", h.list)
	r.Post("/trainings", h.create)
	r.Post("/trainings/{trainingID}/edit", h.update)
	r.Post("/trainings/{trainingID}/delete", h.delete)
}

func trainingAPIPath(id string) string {
	return "/Training/" + url.PathEscape(id)
}

type pageData struct {
	Trainings []viewmodel.Training
	Mode      view.Mode
	Selected  *viewmodel.Training
	Form      viewmodel.TrainingForm
	Errors    viewmodel.FormErrors
	LoadError string
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	data := pageData{Mode: view.ModeFromQuery(r.URL.Query())}
	status := http.StatusOK

	var err error
	if data.Trainings, err = Catalog(r.Context(), h.api); err != nil {
		h.pages.LogBackendError(r, "load trainings", err)
		data.LoadError = apiclient.Describe("load trainings", err)
		status = http.StatusBadGateway
	}

	if id := data.Mode.ID(); id != "" {
		if t, ok := viewmodel.FindTrainingByID(data.Trainings, id); ok {
			data.Selected = &t
		} else {
			data.Mode = view.Idle()
		}
	}
	if data.Mode.Kind() == view.ModeEditing {
		data.Form = viewmodel.TrainingFormFrom(*data.Selected)
	}
	data.Errors, _ = h.pages.RecallForm(r, data.Mode, &data.Form)

	h.pages.Render(w, r, "pages/trainings.html", "Trainings", data, status)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, view.Creating(), "create training", "Training created successfully!", func(req viewmodel.TrainingRequest) error {
		return h.api.Post(r.Context(), "/Training", req, nil)
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "trainingID")
	h.save(w, r, view.Editing(id), "update training", "Training updated successfully!", func(req viewmodel.TrainingRequest) error {
		return h.api.Put(r.Context(), trainingAPIPath(id), req, nil)
	})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, mode view.Mode, action, success string, send func(viewmodel.TrainingRequest) error) {
	back := view.TrainingsPath()
	var form viewmodel.TrainingForm
	decodeErrs, err := view.DecodeForm(r, &form)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if !h.pages.ConsumeSubmit(w, r, mode.URL(back)) {
		return
	}
	if errs := viewmodel.ValidateTraining(form).Merge(decodeErrs); errs.Any() {
		h.pages.FailForm(w, r, back, mode, errs.General(), errs)
		return
	}
	if err := send(viewmodel.NewTrainingRequest(form)); err != nil {
		h.pages.LogBackendError(r, action, err)
		h.pages.FailForm(w, r, back, mode, apiclient.Describe(action, err), nil)
		return
	}
	h.pages.RedirectWithFlash(w, r, back, shared.FlashSuccess, success)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "trainingID")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	back := view.TrainingsPath()
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, view.ConfirmingDelete(id).URL(back), http.StatusSeeOther)
		return
	}
	if !h.pages.ConsumeSubmit(w, r, back) {
		return
	}
	if err := h.api.Delete(r.Context(), trainingAPIPath(id)); err != nil {
		h.pages.LogBackendError(r, "delete training", err)
		h.pages.RedirectWithFlash(w, r, back, shared.FlashError, apiclient.Describe("delete training", err))
		return
	}
	h.pages.RedirectWithFlash(w, r, back, shared.FlashSuccess, "Training deleted successfully!")
}
