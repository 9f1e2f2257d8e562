package api

import (
	"net/http"
	"time"

	"github.com/recgames/board-game-server/internal/service"
)

type MetaHandler struct {
	meta *service.MetaService
}

func NewMetaHandler(meta *service.MetaService) *MetaHandler {
	return &MetaHandler{meta: meta}
}

type UpdatedAtResponse struct {
	UpdatedAt time.Time `json:"updated_at"`
}

type VersionResponse struct {
	ProjectVersion string `json:"project_version"`
	ServerVersion  string `json:"server_version"`
}

func (h *MetaHandler) UpdatedAt(w http.ResponseWriter, r *http.Request) {
	ts, err := h.meta.ModelUpdatedAt()
	if err != nil {
		http.Error(w, "Model timestamp not available", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, UpdatedAtResponse{UpdatedAt: ts})
}

func (h *MetaHandler) Version(w http.ResponseWriter, r *http.Request) {
	version := h.meta.ProjectVersion()

	writeJSON(w, http.StatusOK, VersionResponse{
		ProjectVersion: version,
		ServerVersion:  version,
	})
}
