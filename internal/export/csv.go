package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/voicemed/report-service/internal/store/model"
)

type CSVRenderer struct{}

// Make sure we conform to Renderer interface
var _ Renderer = (*CSVRenderer)(nil)

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) Extension() string {
	return model.ReportFormatCSV
}

func (r *CSVRenderer) Render(w io.Writer, rows RowIterator) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return errors.Wrap(err, "writing csv header")
	}

	err := rows(func(row Row) error {
		return cw.Write([]string{
			row.PatientName,
			strconv.Itoa(row.PatientAge),
			row.PatientContact,
			row.VisitReason,
			row.VisitDoctor,
			row.VisitStart.Format(time.RFC3339),
			row.VisitEnd.Format(time.RFC3339),
			row.ClinicName,
			row.ClinicAddress,
			row.VoicebotName,
			row.CreatedAt.Format(time.RFC3339),
		})
	})
	if err != nil {
		return err
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}
