package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"algojudge/internal/api/middleware"
	"algojudge/internal/app/service"
	"algojudge/internal/common"

	"github.com/go-chi/chi/v5"
)

type StarterCodeHandler struct {
	starterCodeService *service.StarterCodeService
}

func NewStarterCodeHandler(scs *service.StarterCodeService) *StarterCodeHandler {
	return &StarterCodeHandler{starterCodeService: scs}
}

func (h *StarterCodeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getStarterCode)
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Post("/", h.updateStarterCode)
	})
}

func (h *StarterCodeHandler) getStarterCode(w http.ResponseWriter, r *http.Request) {
	problemID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid problem id")
		return
	}
	userID := r.URL.Query().Get("userId")

	codes, err := h.starterCodeService.Get(r.Context(), problemID, userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, codes)
}

func (h *StarterCodeHandler) updateStarterCode(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.UpdateStarterCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.starterCodeService.Update(r.Context(), actorID, req); err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Starter code updated successfully.",
	})
}
