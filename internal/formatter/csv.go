package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// csvFormatter formats the gate occupancy as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(s *Snapshot) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"Gate ID",
		"Gate Name",
		"Camera",
		"Count",
		"Capacity",
		"Density %",
		"Status",
		"Guards",
		"Captured At",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	guardsAt := make(map[string]int)
	for _, g := range s.Guards {
		guardsAt[g.AssignedGate]++
	}

	for _, g := range s.Gates {
		record := []string{
			g.ID,
			g.Name,
			g.CameraID,
			strconv.Itoa(g.Count),
			strconv.Itoa(g.Capacity),
			strconv.Itoa(g.DensityPct()),
			string(g.Status),
			strconv.Itoa(guardsAt[g.ShortName()]),
			s.GeneratedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}
