package v1

import (
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentSrv.ListAppointments(r.Context())
	if err != nil {
		zap.S().Named("appointment_handler").Errorw("failed to list appointments", "error", err)
		renderError(w, r, http.StatusInternalServerError, "failed to list appointments", nil)
		return
	}
	render.JSON(w, r, appointments)
}
