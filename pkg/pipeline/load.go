package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simplecharts/simplecharts/pkg/cache"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/errors"
)

// demoSource identifies the built-in demo collection in cache keys.
const demoSource = "simplecharts:demo:v1"

// Load reads the series named by opts.Input, or the demo collection when
// Input is empty, and returns them with a content hash of the input. A
// collection without a single finite point fails with EMPTY_DATA.
func Load(opts Options) (*data.Collection, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}

	if opts.Input == "" {
		return data.Demo(), cache.Hash([]byte(demoSource)), nil
	}

	raw, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", opts.Input)
		}
		return nil, "", fmt.Errorf("read %s: %w", opts.Input, err)
	}

	var c *data.Collection
	switch strings.ToLower(filepath.Ext(opts.Input)) {
	case ".csv":
		c, err = data.ReadCSV(bytes.NewReader(raw))
	case ".json":
		c, err = data.ReadJSON(bytes.NewReader(raw))
	case ".xlsx":
		c, err = data.ImportXLSX(opts.Input, opts.Sheet)
	default:
		c, err = data.Import(opts.Input)
	}
	if err != nil {
		return nil, "", err
	}
	if _, _, err := c.Ranges(); err != nil {
		return nil, "", err
	}

	return c, cache.Hash(append(raw, opts.Sheet...)), nil
}

// CountPoints returns the number of points across all series.
func CountPoints(c *data.Collection) int {
	n := 0
	for _, s := range c.Series {
		n += s.Len()
	}
	return n
}
