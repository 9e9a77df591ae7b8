package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/xavierca1/ligue-pipeline/internal/usecase"
)

const (
	CodeInvalidJSON = "INVALID_JSON"
	CodeInvalidID   = "INVALID_ID"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError traduz o código do use case para o status HTTP.
func writeUseCaseError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	code := usecase.ErrorCode(err)

	var status int
	switch code {
	case usecase.CodeNotFound:
		status = http.StatusNotFound
	case usecase.CodeValidation:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		log.WithError(err).Error("❌ erro inesperado")
	}
	writeErrorResponse(w, status, code, err.Error())
}

// decodeJSON lê o corpo recusando campos desconhecidos. allowEmpty aceita corpo vazio.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func writeInvalidJSON(w http.ResponseWriter, err error) {
	writeErrorResponse(w, http.StatusBadRequest, CodeInvalidJSON, "invalid JSON: "+err.Error())
}

// parseID lê {id} da rota; só inteiros positivos.
func parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, CodeInvalidID, "id must be a positive integer, got "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}
