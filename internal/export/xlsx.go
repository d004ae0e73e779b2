package export

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/voicemed/report-service/internal/store/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Report"

type XLSXRenderer struct{}

// Make sure we conform to Renderer interface
var _ Renderer = (*XLSXRenderer)(nil)

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) Extension() string {
	return model.ReportFormatXLSX
}

func (r *XLSXRenderer) Render(w io.Writer, rows RowIterator) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return errors.Wrap(err, "creating sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "deleting default sheet")
	}

	// the stream writer keeps rows out of memory until Flush
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return errors.Wrap(err, "creating stream writer")
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return errors.Wrap(err, "writing header row")
	}

	rowIdx := 2
	err = rows(func(row Row) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		rowIdx++
		return sw.SetRow(cell, []interface{}{
			row.PatientName,
			row.PatientAge,
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

	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "flushing stream writer")
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}
