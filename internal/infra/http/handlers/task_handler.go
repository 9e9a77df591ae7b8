package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/entity"
	"github.com/xavierca1/ligue-pipeline/internal/usecase"
)

type TaskHandler struct {
	List     *usecase.ListTasksUseCase
	Create   *usecase.CreateTaskUseCase
	Complete *usecase.CompleteTaskUseCase
	Digest   *usecase.TaskDigestUseCase
	Log      logrus.FieldLogger
}

// createTaskRequest tolera o discriminador "type":"task" vindo do front.
type createTaskRequest struct {
	entity.Task
	Type string `json:"type,omitempty"`
}

type digestRequest struct {
	To string `json:"to"`
}

func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	view, err := usecase.ParseTaskView(r.URL.Query().Get("view"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
		return
	}
	out, err := h.List.Execute(r.Context(), view)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	if req.Type != "" && req.Type != string(entity.TypeTask) {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "type must be task")
		return
	}
	task := req.Task
	task.ID = 0

	created, err := h.Create.Execute(r.Context(), task)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TaskHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	task, err := h.Complete.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) HandleDigest(w http.ResponseWriter, r *http.Request) {
	var req digestRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeInvalidJSON(w, err)
		return
	}
	out, err := h.Digest.Execute(r.Context(), req.To)
	if err != nil {
		writeUseCaseError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
