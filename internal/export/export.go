package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sectorwatch/internal/chrono"
	"sectorwatch/internal/scrapers/sectors"
	"sectorwatch/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_exporter_export = "exporter.export"
)

var tracer = telemetry.Tracer("sectorwatch.export")

// Leading cells naming each row.
const (
	HeaderRowName = "page"
	LabelRowName  = "sector"
	ChangeRowName = "change"
)

// Rows is the three row table written to the spreadsheet, column i of every
// row describes the same entry.
type Rows struct {
	Header []string
	Labels []string
	Change []string
}

// BuildRows lays out a result set, sectors in their configured order and the
// entries of each sector in label order. A sector name is repeated in the
// header once per entry it contributed.
func BuildRows(rs sectors.ResultSet) Rows {
	size := rs.Total() + 1
	rows := Rows{
		Header: make([]string, 0, size),
		Labels: make([]string, 0, size),
		Change: make([]string, 0, size),
	}
	rows.Header = append(rows.Header, HeaderRowName)
	rows.Labels = append(rows.Labels, LabelRowName)
	rows.Change = append(rows.Change, ChangeRowName)

	for _, sector := range rs.Sectors() {
		for _, entry := range rs.Entries(sector) {
			rows.Header = append(rows.Header, string(sector))
			rows.Labels = append(rows.Labels, entry.Label)
			rows.Change = append(rows.Change, entry.Change)
		}
	}
	return rows
}

// Validate checks that all three rows have the same length.
func (r Rows) Validate() error {
	if len(r.Header) != len(r.Labels) || len(r.Header) != len(r.Change) {
		return fmt.Errorf(
			"misaligned rows: header=%d labels=%d change=%d",
			len(r.Header), len(r.Labels), len(r.Change),
		)
	}
	return nil
}

func (r Rows) All() [][]string {
	return [][]string{r.Header, r.Labels, r.Change}
}

// FileName is the name of the export written on the given day.
func FileName(day time.Time) string {
	return fmt.Sprintf("output_%s.xlsx", day.Format(time.DateOnly))
}

type Exporter struct {
	dir  string
	time chrono.TimeAPI
	tel  telemetry.API
}

func NewExporter(dir string, time chrono.TimeAPI, tel telemetry.API) Exporter {
	return Exporter{
		dir:  dir,
		time: time,
		tel:  telemetry.NewScopedAPI("exporter", tel),
	}
}

// Export writes the result set to <dir>/output_<YYYY-MM-DD>.xlsx and
// returns the path of the file.
func (e Exporter) Export(ctx context.Context, rs sectors.ResultSet) (string, error) {
	_, span := tracer.Start(ctx, "Export")
	defer span.End()

	rows := BuildRows(rs)
	err := rows.Validate()
	if err != nil {
		e.tel.ReportBroken(report_exporter_export, err)
		return "", err
	}

	err = os.MkdirAll(e.dir, 0755)
	if err != nil {
		e.tel.ReportBroken(report_exporter_export, err)
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(e.dir, FileName(e.time.Now()))
	err = WriteXLSX(path, rows)
	if err != nil {
		e.tel.ReportBroken(report_exporter_export, err, path)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write spreadsheet")
		return "", err
	}

	span.SetAttributes(
		attribute.String("path", path),
		attribute.Int("entries", rs.Total()),
	)
	return path, nil
}
