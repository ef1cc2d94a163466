// Package report reads the Collaborate recording report CSV.
//
// The report is the native "Recording Report" export: a UTF-8 CSV, possibly
// with a byte-order mark, whose first row is a header naming the columns.
// Load returns the rows in file order.
//
// # Usage
//
//	rows, err := report.Load("recording_report.csv")
//	for _, row := range rows {
//	    fmt.Println(row.RecordingLink)
//	}
//
// Load fails up front if the header is missing any of the columns the
// download loop needs.
package report
