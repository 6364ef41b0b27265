package export

import (
	"archive/zip"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spoo-me/spoo-go/model"
)

const sampleStatsBody = `{
	"_id": "abc123",
	"url": "https://example.com/landing",
	"creation-date": "2024-01-01",
	"creation-time": "10:34:52",
	"password": null,
	"expired": false,
	"total-clicks": 1000,
	"total_unique_clicks": 750,
	"max-clicks": 2000,
	"average_daily_clicks": 12.5,
	"average_weekly_clicks": 87.5,
	"average_monthly_clicks": 375.0,
	"last-click": "2024-01-15",
	"last-click-browser": "Firefox",
	"last-click-os": "Linux",
	"browser": {"Chrome": 600, "Firefox": 300, "Safari": 100},
	"counter": {"2024-01-10": 100, "2024-01-11": 400, "2024-01-12": 500},
	"country": {"United States of America": 500, "Germany": 300, "India": 200},
	"os_name": {"Windows": 500, "Linux": 300, "Android": 200},
	"referrer": {"google.com": 700, "direct": 300},
	"unique_browser": {"Chrome": 450, "Firefox": 225, "Safari": 75},
	"unique_counter": {"2024-01-10": 75, "2024-01-11": 300, "2024-01-12": 375},
	"unique_country": {"United States of America": 375, "Germany": 225, "India": 150},
	"unique_os_name": {"Windows": 375, "Linux": 225, "Android": 150},
	"unique_referrer": {"google.com": 525, "direct": 225}
}`

func sampleStats(t *testing.T) *model.Statistics {
	t.Helper()
	stats, err := model.ParseStatistics([]byte(sampleStatsBody))
	require.NoError(t, err)
	stats.ShortCode = "abc123"
	return stats
}

// exportTempDirs counts leftover export working directories in the OS temp dir.
func exportTempDirs(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(os.TempDir())
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "spoo-export-") {
			n++
		}
	}
	return n
}

func TestExport_CSVArchive(t *testing.T) {
	stats := sampleStats(t)
	path := filepath.Join(t.TempDir(), "analytics.zip")
	before := exportTempDirs(t)

	require.NoError(t, Export(stats, path, FormatCSVArchive))

	assert.Equal(t, before, exportTempDirs(t), "working directory must be cleaned up")

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = f
	}
	for _, field := range model.BreakdownSchema() {
		assert.Contains(t, names, field.CSVFile)
	}
	assert.Contains(t, names, "general_info.csv")
	assert.Len(t, names, 11)

	rc, err := names["browser.csv"].Open()
	require.NoError(t, err)
	defer rc.Close()
	rows, err := csv.NewReader(rc).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Browser", "Count"}, rows[0])
	assert.Equal(t, []string{"Chrome", "600"}, rows[1], "service order preserved")

	rc, err = names["general_info.csv"].Open()
	require.NoError(t, err)
	defer rc.Close()
	rows, err = csv.NewReader(rc).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	record := map[string]string{}
	for i, h := range rows[0] {
		record[h] = rows[1][i]
	}
	assert.Equal(t, "1000", record["TOTAL CLICKS"])
	assert.Equal(t, "abc123", record["SHORT CODE"])
	assert.Equal(t, "", record["PASSWORD"], "absent optional renders as an empty cell")
	assert.Equal(t, "12.5", record["AVERAGE DAILY CLICKS"])
}

func TestExport_Spreadsheet(t *testing.T) {
	stats := sampleStats(t)
	path := filepath.Join(t.TempDir(), "analytics.xlsx")

	require.NoError(t, Export(stats, path, FormatSpreadsheet))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, field := range model.BreakdownSchema() {
		assert.Contains(t, sheets, field.SheetName)
	}
	assert.Contains(t, sheets, "General_Info")
	assert.NotContains(t, sheets, "Sheet1")

	header, err := f.GetCellValue("Browser", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Browser", header)
	first, err := f.GetCellValue("Browser", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Chrome", first)
	count, err := f.GetCellValue("Counter", "B2")
	require.NoError(t, err)
	assert.Equal(t, "100", count)
}

func TestExport_JSON(t *testing.T) {
	stats := sampleStats(t)
	path := filepath.Join(t.TempDir(), "analytics.json")

	require.NoError(t, Export(stats, path, FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Byte-faithful to the service response, just re-indented.
	var got, want map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.NoError(t, json.Unmarshal([]byte(sampleStatsBody), &want))
	assert.Equal(t, want, got)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	stats := sampleStats(t)
	path := filepath.Join(t.TempDir(), "analytics.out")

	err := Export(stats, path, Format("parquet"))
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, Format("parquet"), unsupported.Format)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExport_FailureLeavesNoArtifact(t *testing.T) {
	stats := sampleStats(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "analytics.zip")
	before := exportTempDirs(t)

	for _, format := range []Format{FormatSpreadsheet, FormatCSVArchive, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			require.Error(t, Export(stats, path, format))
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}

	assert.Equal(t, before, exportTempDirs(t), "working directories cleaned up on the failure path")

	leftovers, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, leftovers, "no stage files left beside the target")
}
