// Package data holds the XY series a chart plots and reads them from CSV,
// JSON and XLSX files.
//
// A [Collection] is the data range provider for a plot: its DomainRange and
// ValueRange feed the auto-range of the domain (X) and range (Y) axes.
//
// # Formats
//
// CSV: the first column is X, every further column is one series. A header
// row is detected when its first cell is not a number or timestamp and
// names the series. X values may be numbers or RFC 3339 timestamps;
// timestamps are converted to epoch milliseconds and mark the collection as
// time-based.
//
//	time,cpu,mem
//	2024-01-01T00:00:00Z,0.31,0.52
//	2024-01-01T00:01:00Z,0.35,0.55
//
// JSON:
//
//	{
//	  "time": false,
//	  "series": [
//	    {"name": "cpu", "points": [[0, 0.31], [1, 0.35]]}
//	  ]
//	}
//
// XLSX: same layout as CSV, read from the first sheet unless another is
// named.
package data
