package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
	"github.com/xavierca1/ligue-pipeline/internal/usecase"
)

type LeadHandler struct {
	Pipeline *usecase.LoadPipelineUseCase
	Get      *usecase.GetLeadUseCase
	Save     *usecase.SaveLeadUseCase
	Update   *usecase.UpdateLeadUseCase
	Delete   *usecase.DeleteLeadUseCase
	Move     *usecase.MoveLeadStageUseCase
	Log      logrus.FieldLogger
}

// leadUpdateRequest aceita "Id" no corpo, mas o valor é ignorado.
type leadUpdateRequest struct {
	entity.LeadPatch
	ID *int `json:"Id,omitempty"`
}

type moveStageRequest struct {
	Stage entity.Stage `json:"stage"`
}

type moveStageResponse struct {
	Lead  entity.Lead `json:"lead"`
	Moved bool        `json:"moved"`
}

func pipelineInput(r *http.Request) usecase.LoadPipelineInput {
	q := r.URL.Query()
	return usecase.LoadPipelineInput{
		Search: q.Get("search"),
		Filters: usecase.LeadFilters{
			Stage:     entity.Stage(q.Get("stage")),
			Source:    entity.Source(q.Get("source")),
			DealValue: q.Get("dealValue"),
		},
	}
}

func (h *LeadHandler) HandlePipeline(w http.ResponseWriter, r *http.Request) {
	out, err := h.Pipeline.Execute(r.Context(), pipelineInput(r))
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *LeadHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Pipeline.ListLeads(r.Context(), pipelineInput(r))
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, usecase.ComputeStats(leads))
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Pipeline.ListLeads(r.Context(), pipelineInput(r))
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	lead, err := h.Get.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var lead entity.Lead
	if err := decodeJSON(r, &lead, false); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	// o repositório atribui o Id
	lead.ID = 0

	created, err := h.Save.Execute(r.Context(), lead)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req leadUpdateRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeInvalidJSON(w, err)
		return
	}

	updated, err := h.Update.Execute(r.Context(), id, req.LeadPatch)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	out, err := h.Delete.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *LeadHandler) HandleMoveStage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req moveStageRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeInvalidJSON(w, err)
		return
	}

	lead, moved, err := h.Move.ExecuteByID(r.Context(), id, req.Stage)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, moveStageResponse{Lead: lead, Moved: moved})
}
