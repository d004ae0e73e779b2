package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	api "github.com/voicemed/report-service/api/v1"
	"github.com/voicemed/report-service/internal/auth"
	"github.com/voicemed/report-service/internal/service"
	"go.uber.org/zap"
)

func (h *Handler) CreateReportJob(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())

	var req api.CreateReportJobRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		renderError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), nil)
		return
	}

	job, err := h.jobSrv.CreateReportJob(r.Context(), req, user)
	if err != nil {
		switch e := err.(type) {
		case *service.ErrInvalidJobRequest:
			renderError(w, r, http.StatusBadRequest, e.Error(), e.FieldErrors)
		default:
			zap.S().Named("report_handler").Errorw("failed to create job", "error", err)
			renderError(w, r, http.StatusInternalServerError, "failed to schedule job", nil)
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/reports/%s", job.ID))
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, api.CreateReportJobResponse{
		Message: "Job scheduled successfully",
		JobID:   job.ID,
	})
}

func (h *Handler) ListReportJobs(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())

	jobs, err := h.jobSrv.ListReportJobs(r.Context(), user)
	if err != nil {
		zap.S().Named("report_handler").Errorw("failed to list jobs", "error", err)
		renderError(w, r, http.StatusInternalServerError, "failed to list jobs", nil)
		return
	}

	render.JSON(w, r, jobs)
}

func (h *Handler) GetReportJob(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid job id", nil)
		return
	}

	job, err := h.jobSrv.GetReportJob(r.Context(), id, user)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			renderError(w, r, http.StatusNotFound, err.Error(), nil)
		default:
			zap.S().Named("report_handler").Errorw("failed to get job", "job_id", id, "error", err)
			renderError(w, r, http.StatusInternalServerError, "failed to get job", nil)
		}
		return
	}

	render.JSON(w, r, job)
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid job id", nil)
		return
	}

	download, err := h.jobSrv.GetReportDownload(r.Context(), id, user)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			renderError(w, r, http.StatusNotFound, err.Error(), nil)
		case *service.ErrReportNotReady:
			renderError(w, r, http.StatusBadRequest, err.Error(), nil)
		case *service.ErrReportFileMissing:
			renderError(w, r, http.StatusNotFound, err.Error(), nil)
		default:
			zap.S().Named("report_handler").Errorw("failed to resolve download", "job_id", id, "error", err)
			renderError(w, r, http.StatusInternalServerError, "failed to download report", nil)
		}
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	http.ServeFile(w, r, download.Path)
}

// Subscribe upgrades the connection to a server-sent event stream delivering
// one update event per job status change until the client disconnects. Events
// are already filtered to the caller's owner by the bus.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		renderError(w, r, http.StatusInternalServerError, "streaming unsupported", nil)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, unsubscribe := h.bus.Subscribe(user.OwnerID)
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(api.ReportJobEvent{
				ID:         event.ID,
				OwnerID:    event.OwnerID,
				Status:     event.Status,
				ReportPath: event.ReportPath,
				UpdatedAt:  event.UpdatedAt,
			})
			if err != nil {
				zap.S().Named("report_handler").Errorw("failed to marshal event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: update\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
