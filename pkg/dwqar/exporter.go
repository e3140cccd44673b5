package dwqar

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet and header layout of the official DWQAR reporting template. The
// regulator's ingestion tooling matches on these exactly, so any change
// here breaks submissions.
const (
	SheetReports = "Reports"
	SheetSamples = "Samples"
)

var (
	reportsHeaders = []string{
		"Supply Component ID",
		"Rule ID",
		"Complies With Rule",
		"Samples Required",
		"Samples Taken",
		"Reporting Period",
	}
	samplesHeaders = []string{
		"Rule ID",
		"Supply Component ID",
		"Parameter",
		"Value",
		"Unit",
		"Sample Date",
		"Complies",
	}
)

// GenerateExcel renders an aggregate report into the fixed DWQAR template
// layout: a Reports sheet with one row per rule and a Samples sheet with
// the raw results backing them.
func GenerateExcel(r Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetReports); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetSamples); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	if err := writeHeaderRow(f, SheetReports, reportsHeaders, headerStyle); err != nil {
		return nil, err
	}
	if err := writeHeaderRow(f, SheetSamples, samplesHeaders, headerStyle); err != nil {
		return nil, err
	}

	componentID := r.OrganizationID.String()
	for i, rule := range r.Rules {
		row := i + 2
		values := []interface{}{
			componentID,
			rule.RuleID,
			complyFlag(rule.Passing),
			rule.Required,
			rule.Actual,
			r.PeriodTag,
		}
		if err := setRow(f, SheetReports, row, values); err != nil {
			return nil, err
		}
	}

	for i, s := range r.Samples {
		row := i + 2
		component := s.SupplyComponentID
		if component == "" {
			component = componentID
		}
		values := []interface{}{
			s.RuleID,
			component,
			s.Parameter,
			s.Value,
			s.Unit,
			s.SampledAt,
			complyFlag(s.Complies),
		}
		if err := setRow(f, SheetSamples, row, values); err != nil {
			return nil, err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write DWQAR workbook: %w", err)
	}
	return buffer, nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
		letter, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet, letter, letter, 22); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func complyFlag(pass bool) string {
	if pass {
		return "Yes"
	}
	return "No"
}

// ExportCheck is the result of re-opening a generated workbook before it
// is offered for download.
type ExportCheck struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateExport re-opens the generated buffer and checks structural
// sanity: both template sheets exist and their header rows match the
// template layout. It is a round-trip self-check, not a general parser;
// a failed check means the file must not be delivered.
func ValidateExport(buf []byte) ExportCheck {
	check := ExportCheck{Errors: []string{}}

	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		check.Errors = append(check.Errors, "workbook cannot be opened: "+err.Error())
		return check
	}
	defer f.Close()

	expect := map[string][]string{
		SheetReports: reportsHeaders,
		SheetSamples: samplesHeaders,
	}
	for sheet, headers := range expect {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			check.Errors = append(check.Errors, fmt.Sprintf("missing sheet %q", sheet))
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			check.Errors = append(check.Errors, fmt.Sprintf("sheet %q has no header row", sheet))
			continue
		}
		got := rows[0]
		for col, want := range headers {
			if col >= len(got) || got[col] != want {
				check.Errors = append(check.Errors, fmt.Sprintf("sheet %q column %d header mismatch: want %q", sheet, col+1, want))
			}
		}
	}

	check.Valid = len(check.Errors) == 0
	return check
}
