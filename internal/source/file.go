package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/statlinehq/statline/internal/series"
)

// fileRecord is one game in an imported JSON log. Value/Secondary may be
// null; a record without a game_id is skipped rather than rejected.
type fileRecord struct {
	GameID    string             `json:"game_id"`
	Label     string             `json:"label"`
	Value     *float64           `json:"value"`
	Secondary *float64           `json:"secondary"`
	Raw       map[string]float64 `json:"raw"`
}

// LoadFile reads a JSON array of game records. Malformed points are
// tolerated by omission, matching the rest of the pipeline.
func LoadFile(path string) ([]series.DataPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	out := make([]series.DataPoint, 0, len(records))
	for _, r := range records {
		if r.GameID == "" {
			continue
		}
		label := r.Label
		if label == "" {
			label = r.GameID
		}
		out = append(out, series.DataPoint{
			GameID:    r.GameID,
			XLabel:    label,
			Value:     r.Value,
			Secondary: r.Secondary,
			Raw:       r.Raw,
		})
	}
	return out, nil
}
