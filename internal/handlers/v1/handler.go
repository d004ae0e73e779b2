// Package v1 wires the report service API onto chi.
package v1

import (
	"net/http"

	"github.com/go-chi/render"
	api "github.com/voicemed/report-service/api/v1"
	"github.com/voicemed/report-service/internal/events"
	"github.com/voicemed/report-service/internal/service"
	"github.com/voicemed/report-service/pkg/requestid"
)

type Handler struct {
	jobSrv         *service.JobService
	catalogSrv     *service.CatalogService
	appointmentSrv *service.AppointmentService
	bus            *events.Bus
}

func NewHandler(jobSrv *service.JobService, catalogSrv *service.CatalogService, appointmentSrv *service.AppointmentService, bus *events.Bus) *Handler {
	return &Handler{
		jobSrv:         jobSrv,
		catalogSrv:     catalogSrv,
		appointmentSrv: appointmentSrv,
		bus:            bus,
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string, fieldErrors []string) {
	render.Status(r, status)
	render.JSON(w, r, api.Error{
		Message:   message,
		Errors:    fieldErrors,
		RequestID: requestid.FromContextPtr(r.Context()),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
