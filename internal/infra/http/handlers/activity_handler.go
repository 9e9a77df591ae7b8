package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
	"github.com/xavierca1/ligue-pipeline/internal/usecase"
)

type ActivityHandler struct {
	Records *usecase.RecordUseCase
	Add     *usecase.AddActivityUseCase
	Log     logrus.FieldLogger
}

// recordUpdateRequest aceita "Id" no corpo, mas o valor é ignorado.
type recordUpdateRequest struct {
	entity.RecordPatch
	ID *int `json:"Id,omitempty"`
}

func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Records.List(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *ActivityHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	rec, err := h.Records.Get(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ActivityHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req recordUpdateRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeInvalidJSON(w, err)
		return
	}

	rec, err := h.Records.Update(r.Context(), id, req.RecordPatch)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *ActivityHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Records.Delete(r.Context(), id); err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLeadActivities lista só as atividades do lead, mais recentes primeiro.
func (h *ActivityHandler) HandleLeadActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	activities, _, err := h.Records.ForLead(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) HandleLeadTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	_, tasks, err := h.Records.ForLead(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// HandleAddActivity registra a atividade no lead da rota.
func (h *ActivityHandler) HandleAddActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var activity entity.Activity
	if err := decodeJSON(r, &activity, false); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	activity.ID = 0
	activity.LeadID = id

	created, err := h.Add.Execute(r.Context(), activity)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
