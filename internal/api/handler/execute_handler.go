package handler

import (
	"encoding/json"
	"net/http"

	"algojudge/internal/app/service"
	"algojudge/internal/common"

	"github.com/go-chi/chi/v5"
)

type ExecuteHandler struct {
	executionService *service.ExecutionService
}

func NewExecuteHandler(es *service.ExecutionService) *ExecuteHandler {
	return &ExecuteHandler{executionService: es}
}

func (h *ExecuteHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.execute)
}

func (h *ExecuteHandler) execute(w http.ResponseWriter, r *http.Request) {
	var req service.ExecutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.executionService.Handle(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
