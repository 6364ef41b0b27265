package model

// BreakdownField describes one of the ten breakdown maps in a statistics
// response: its wire key, and the names used for it when exporting. Keeping
// this in one table means the decode step, the CSV archive, and the
// spreadsheet sheets can never disagree on the set of breakdowns.
type BreakdownField struct {
	WireKey   string // key in the stats response body
	CSVFile   string // file name inside the CSV archive
	SheetName string // spreadsheet sheet name
	Column    string // header for the dimension column
}

var breakdownFields = []BreakdownField{
	{WireKey: "browser", CSVFile: "browser.csv", SheetName: "Browser", Column: "Browser"},
	{WireKey: "counter", CSVFile: "counter.csv", SheetName: "Counter", Column: "Date"},
	{WireKey: "country", CSVFile: "country.csv", SheetName: "Country", Column: "Country"},
	{WireKey: "os_name", CSVFile: "os_name.csv", SheetName: "OS_Name", Column: "OS_Name"},
	{WireKey: "referrer", CSVFile: "referrer.csv", SheetName: "Referrer", Column: "Referrer"},
	{WireKey: "unique_browser", CSVFile: "unique_browser.csv", SheetName: "Unique_Browser", Column: "Browser"},
	{WireKey: "unique_counter", CSVFile: "unique_counter.csv", SheetName: "Unique_Counter", Column: "Date"},
	{WireKey: "unique_country", CSVFile: "unique_country.csv", SheetName: "Unique_Country", Column: "Country"},
	{WireKey: "unique_os_name", CSVFile: "unique_os_name.csv", SheetName: "Unique_OS_Name", Column: "OS_Name"},
	{WireKey: "unique_referrer", CSVFile: "unique_referrer.csv", SheetName: "Unique_Referrer", Column: "Referrer"},
}

// BreakdownSchema returns the ten breakdown field descriptors in their
// canonical order.
func BreakdownSchema() []BreakdownField {
	out := make([]BreakdownField, len(breakdownFields))
	copy(out, breakdownFields)
	return out
}
