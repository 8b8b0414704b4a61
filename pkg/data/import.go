package data

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/simplecharts/simplecharts/pkg/errors"
)

type jsonSeries struct {
	Name   string       `json:"name"`
	Points [][2]float64 `json:"points"`
}

type jsonCollection struct {
	Time   bool         `json:"time,omitempty"`
	Series []jsonSeries `json:"series"`
}

// ReadJSON decodes a collection from r. See the package documentation for
// the layout. A document holding a single series object is also accepted.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Collection, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var doc jsonCollection
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Series == nil {
		var single jsonSeries
		if err := json.Unmarshal(raw, &single); err == nil && single.Points != nil {
			doc.Series = []jsonSeries{single}
		}
	}

	c := &Collection{Time: doc.Time}
	for i, js := range doc.Series {
		s := &Series{Name: js.Name, Points: make([]Point, len(js.Points))}
		if s.Name == "" {
			s.Name = defaultName(i)
		}
		for j, p := range js.Points {
			s.Points[j] = Point{X: p[0], Y: p[1]}
		}
		c.Series = append(c.Series, s)
	}
	return c, nil
}

// ReadCSV decodes a collection from comma-separated rows. ReadCSV does not
// close r.
func ReadCSV(r io.Reader) (*Collection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromRows(rows)
}

// fromRows builds a collection from a table whose first column is X. It is
// shared by the CSV and XLSX readers.
func fromRows(rows [][]string) (*Collection, error) {
	rows = dropBlank(rows)
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyData, "no rows")
	}

	var header []string
	if _, _, ok := parseX(rows[0][0]); !ok {
		header, rows = rows[0], rows[1:]
	}

	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if header != nil {
		cols = max(cols, len(header))
	}
	if cols < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"need an X column and at least one Y column, got %d column(s)", cols)
	}

	c := &Collection{Series: make([]*Series, cols-1)}
	for i := range c.Series {
		name := defaultName(i)
		if i+1 < len(header) && strings.TrimSpace(header[i+1]) != "" {
			name = strings.TrimSpace(header[i+1])
		}
		c.Series[i] = &Series{Name: name}
	}

	for n, row := range rows {
		x, isTime, ok := parseX(row[0])
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"row %d: cannot parse X value %q", n+1, row[0])
		}
		if n == 0 {
			c.Time = isTime
		} else if isTime != c.Time {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"row %d: X column mixes numbers and timestamps", n+1)
		}
		for i, s := range c.Series {
			if i+1 >= len(row) || strings.TrimSpace(row[i+1]) == "" {
				continue
			}
			y, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
					"row %d, column %q", n+1, s.Name)
			}
			s.Add(x, y)
		}
	}
	return c, nil
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

// parseX reads an X cell as a number, or as a timestamp converted to epoch
// milliseconds.
func parseX(cell string) (x float64, isTime, ok bool) {
	cell = strings.TrimSpace(cell)
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v, false, true
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return float64(t.UnixMilli()), true, true
		}
	}
	return math.NaN(), false, false
}

func dropBlank(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		if len(row) > 0 && strings.TrimSpace(strings.Join(row, "")) != "" {
			out = append(out, row)
		}
	}
	return out
}

func defaultName(i int) string { return fmt.Sprintf("series%d", i+1) }

// ImportJSON reads a JSON file at path. See [ReadJSON].
func ImportJSON(path string) (*Collection, error) {
	return importWith(path, ReadJSON)
}

// ImportCSV reads a CSV file at path. See [ReadCSV].
func ImportCSV(path string) (*Collection, error) {
	return importWith(path, ReadCSV)
}

func importWith(path string, read func(io.Reader) (*Collection, error)) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return read(f)
}

// Import reads a data file, choosing the decoder from its extension:
// .csv, .json or .xlsx. Missing files fail with FILE_NOT_FOUND and unknown
// extensions with INVALID_FORMAT.
func Import(path string) (*Collection, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ImportCSV(path)
	case ".json":
		return ImportJSON(path)
	case ".xlsx":
		return ImportXLSX(path, "")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported data file extension %q (want .csv, .json or .xlsx)", ext)
	}
}
