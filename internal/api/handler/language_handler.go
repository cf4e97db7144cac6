package handler

import (
	"net/http"

	"algojudge/internal/common"
	"algojudge/internal/judge/registry"

	"github.com/go-chi/chi/v5"
)

type LanguageHandler struct {
	registry *registry.Registry
}

func NewLanguageHandler(reg *registry.Registry) *LanguageHandler {
	return &LanguageHandler{registry: reg}
}

func (h *LanguageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listLanguages)
}

type languageInfo struct {
	Name     string `json:"name"`
	FileName string `json:"file_name"`
	Image    string `json:"image"`
	Compiled bool   `json:"compiled"`
}

func (h *LanguageHandler) listLanguages(w http.ResponseWriter, r *http.Request) {
	descs := h.registry.List()
	out := make([]languageInfo, 0, len(descs))
	for _, d := range descs {
		out = append(out, languageInfo{
			Name:     d.Name,
			FileName: d.FileName,
			Image:    d.Image,
			Compiled: d.Compiled,
		})
	}
	common.RespondWithJSON(w, http.StatusOK, out)
}
