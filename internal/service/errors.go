package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "report job")
}

type ErrReportNotReady struct {
	error
}

func NewErrReportNotReady(id uuid.UUID) *ErrReportNotReady {
	return &ErrReportNotReady{fmt.Errorf("report for job %s is not ready", id)}
}

type ErrReportFileMissing struct {
	error
}

func NewErrReportFileMissing(id uuid.UUID) *ErrReportFileMissing {
	return &ErrReportFileMissing{fmt.Errorf("report file for job %s not found", id)}
}

type ErrInvalidJobRequest struct {
	error
	FieldErrors []string
}

func NewErrInvalidJobRequest(fieldErrors []string) *ErrInvalidJobRequest {
	return &ErrInvalidJobRequest{
		error:       fmt.Errorf("invalid report job request"),
		FieldErrors: fieldErrors,
	}
}
