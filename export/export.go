// Package export writes a statistics record to disk as a spreadsheet, a zip
// archive of CSV files, or raw JSON. A failed export never leaves a
// finalized artifact at the target path: output is staged next to it and
// renamed only after a fully successful write.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/spoo-me/spoo-go/model"
)

// Format selects the export file format.
type Format string

const (
	FormatSpreadsheet Format = "xlsx"
	FormatCSVArchive  Format = "csv"
	FormatJSON        Format = "json"
)

// UnsupportedFormatError reports an unrecognized export format.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q: valid formats are xlsx, csv, json", e.Format)
}

// Export writes stats to path in the given format. For FormatCSVArchive the
// result is a zip holding one CSV per breakdown plus general_info.csv; the
// working directory used to build it is removed unconditionally, including
// on failure.
func Export(stats *model.Statistics, path string, format Format) error {
	switch format {
	case FormatSpreadsheet:
		return exportSpreadsheet(stats, path)
	case FormatCSVArchive:
		return exportCSVArchive(stats, path)
	case FormatJSON:
		return exportJSON(stats, path)
	default:
		return &UnsupportedFormatError{Format: format}
	}
}

func exportSpreadsheet(stats *model.Statistics, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, field := range model.BreakdownSchema() {
		if _, err := f.NewSheet(field.SheetName); err != nil {
			return fmt.Errorf("creating sheet %s: %w", field.SheetName, err)
		}
		if err := f.SetSheetRow(field.SheetName, "A1", &[]interface{}{field.Column, "Count"}); err != nil {
			return err
		}
		for i, e := range stats.BreakdownByWireKey(field.WireKey).Entries() {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(field.SheetName, cell, &[]interface{}{e.Key, e.Count}); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet("General_Info"); err != nil {
		return err
	}
	headers, values := generalInfo(stats)
	headerRow := make([]interface{}, len(headers))
	valueRow := make([]interface{}, len(values))
	for i := range headers {
		headerRow[i] = headers[i]
		valueRow[i] = values[i]
	}
	if err := f.SetSheetRow("General_Info", "A1", &headerRow); err != nil {
		return err
	}
	if err := f.SetSheetRow("General_Info", "A2", &valueRow); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	return writeAtomically(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

func exportCSVArchive(stats *model.Statistics, path string) error {
	workDir, err := os.MkdirTemp("", "spoo-export-")
	if err != nil {
		return fmt.Errorf("creating export working directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	for _, field := range model.BreakdownSchema() {
		rows := [][]string{{field.Column, "Count"}}
		for _, e := range stats.BreakdownByWireKey(field.WireKey).Entries() {
			rows = append(rows, []string{e.Key, strconv.Itoa(e.Count)})
		}
		if err := writeCSV(filepath.Join(workDir, field.CSVFile), rows); err != nil {
			return err
		}
	}

	headers, values := generalInfo(stats)
	if err := writeCSV(filepath.Join(workDir, "general_info.csv"), [][]string{headers, values}); err != nil {
		return err
	}

	return writeAtomically(path, func(w io.Writer) error {
		return zipDirectory(w, workDir)
	})
}

func exportJSON(stats *model.Statistics, path string) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, stats.RawJSON(), "", "    "); err != nil {
		return fmt.Errorf("formatting statistics JSON: %w", err)
	}
	return writeAtomically(path, func(w io.Writer) error {
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// generalInfo returns the aggregate fields as a header row and a value row.
// Absent optional values render as empty cells.
func generalInfo(stats *model.Statistics) (headers, values []string) {
	headers = []string{
		"TOTAL CLICKS", "TOTAL UNIQUE CLICKS", "URL", "SHORT CODE",
		"MAX CLICKS", "PASSWORD", "CREATION DATE", "EXPIRED",
		"AVERAGE DAILY CLICKS", "AVERAGE MONTHLY CLICKS", "AVERAGE WEEKLY CLICKS",
		"LAST CLICK", "LAST CLICK BROWSER", "LAST CLICK OS",
	}
	values = []string{
		strconv.Itoa(stats.TotalClicks),
		strconv.Itoa(stats.TotalUniqueClicks),
		stats.LongURL,
		stats.ShortCode,
		intOrEmpty(stats.MaxClicks),
		stringOrEmpty(stats.Password),
		stats.CreatedAt,
		strconv.FormatBool(stats.Expired),
		formatFloat(stats.AverageDailyClicks),
		formatFloat(stats.AverageMonthlyClicks),
		formatFloat(stats.AverageWeeklyClicks),
		stringOrEmpty(stats.LastClick),
		stringOrEmpty(stats.LastClickBrowser),
		stringOrEmpty(stats.LastClickPlatform),
	}
	return headers, values
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func zipDirectory(w io.Writer, dir string) error {
	zw := zip.NewWriter(w)

	entries, err := os.ReadDir(dir)
	if err != nil {
		zw.Close()
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fw, err := zw.Create(entry.Name())
		if err != nil {
			zw.Close()
			return err
		}
		src, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			zw.Close()
			return err
		}
		_, err = io.Copy(fw, src)
		src.Close()
		if err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

// writeAtomically stages the output in a temp file beside path and renames
// it into place only after write succeeds. The stage file is removed on any
// failure.
func writeAtomically(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".spoo-export-*")
	if err != nil {
		return fmt.Errorf("staging export file: %w", err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}

	log.Debug().Str("path", path).Msg("export written")
	return nil
}
