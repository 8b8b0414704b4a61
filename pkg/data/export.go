package data

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/simplecharts/simplecharts/pkg/errors"
)

// WriteJSON encodes c as JSON and writes it to w. Points with a NaN or
// infinite coordinate have no JSON representation and are skipped. The
// output can be re-imported with [ReadJSON].
func WriteJSON(c *Collection, w io.Writer) error {
	out := jsonCollection{Time: c.Time, Series: make([]jsonSeries, len(c.Series))}
	for i, s := range c.Series {
		js := jsonSeries{Name: s.Name, Points: make([][2]float64, 0, len(s.Points))}
		for _, p := range s.Points {
			if finite(p.X) && finite(p.Y) {
				js.Points = append(js.Points, [2]float64{p.X, p.Y})
			}
		}
		out.Series[i] = js
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteCSV writes c as a header row followed by one row per distinct X in
// ascending order. Time collections write X as RFC 3339 timestamps.
func WriteCSV(c *Collection, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"x"}, c.Names()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	cells := make(map[float64][]string)
	for col, s := range c.Series {
		for _, p := range s.Points {
			row, ok := cells[p.X]
			if !ok {
				row = make([]string, len(c.Series))
				cells[p.X] = row
			}
			row[col] = strconv.FormatFloat(p.Y, 'g', -1, 64)
		}
	}
	xs := make([]float64, 0, len(cells))
	for x := range cells {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		if err := cw.Write(append([]string{formatX(x, c.Time)}, cells[x]...)); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func formatX(x float64, isTime bool) string {
	if isTime && finite(x) {
		return time.UnixMilli(int64(x)).UTC().Format(time.RFC3339Nano)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// ExportJSON writes c to a JSON file at path.
func ExportJSON(c *Collection, path string) error {
	return exportWith(c, path, WriteJSON)
}

// ExportCSV writes c to a CSV file at path.
func ExportCSV(c *Collection, path string) error {
	return exportWith(c, path, WriteCSV)
}

func exportWith(c *Collection, path string, write func(*Collection, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(c, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Export writes c to path, choosing the encoder from the extension the same
// way [Import] does.
func Export(c *Collection, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ExportCSV(c, path)
	case ".json":
		return ExportJSON(c, path)
	case ".xlsx":
		return ExportXLSX(c, path)
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported data file extension %q (want .csv, .json or .xlsx)", ext)
	}
}
