package v1

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

func (h *Handler) ListClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.catalogSrv.ListClinics(r.Context())
	if err != nil {
		zap.S().Named("catalog_handler").Errorw("failed to list clinics", "error", err)
		renderError(w, r, http.StatusInternalServerError, "failed to list clinics", nil)
		return
	}
	render.JSON(w, r, clinics)
}

func (h *Handler) ListVoicebots(w http.ResponseWriter, r *http.Request) {
	voicebots, err := h.catalogSrv.ListVoicebots(r.Context())
	if err != nil {
		zap.S().Named("catalog_handler").Errorw("failed to list voicebots", "error", err)
		renderError(w, r, http.StatusInternalServerError, "failed to list voicebots", nil)
		return
	}
	render.JSON(w, r, voicebots)
}
