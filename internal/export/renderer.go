package export

import (
	"io"
	"time"
)

// Row is one denormalized export row. Column order is fixed and shared by
// every renderer.
type Row struct {
	PatientName    string
	PatientAge     int
	PatientContact string
	VisitReason    string
	VisitDoctor    string
	VisitStart     time.Time
	VisitEnd       time.Time
	ClinicName     string
	ClinicAddress  string
	VoicebotName   string
	CreatedAt      time.Time
}

var columns = []string{
	"Patient Name",
	"Patient Age",
	"Patient Contact",
	"Visit Reason",
	"Visit Doctor",
	"Visit Start",
	"Visit End",
	"Clinic Name",
	"Clinic Address",
	"Voicebot Name",
	"Created At",
}

// RowIterator drives rows through the renderer one at a time. Implementations
// must stop and propagate the first error returned by fn.
type RowIterator func(fn func(Row) error) error

// Renderer writes the export in one output format. Render must consume the
// iterator row by row; it never sees the full result set.
type Renderer interface {
	Extension() string
	Render(w io.Writer, rows RowIterator) error
}
