package sink

import (
	"encoding/json"
	"fmt"

	"github.com/simplecharts/simplecharts/pkg/chart"
)

// RenderJSON serialises g with two-space indentation.
func RenderJSON(g chart.Geometry) ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode geometry: %w", err)
	}
	return append(data, '\n'), nil
}
