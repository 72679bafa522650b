package experiments

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteGameRecords writes one CSV row per game, after a header row.
func WriteGameRecords(w io.Writer, records []GameRecord) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "seed", "roles", "status", "turns", "actions", "outbreaks", "cured", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		roles := make([]string, 0, len(record.Roles))
		for _, r := range record.Roles {
			roles = append(roles, r.String())
		}
		row := []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			strings.Join(roles, " "),
			record.Status.String(),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Actions),
			strconv.Itoa(record.Outbreaks),
			strconv.Itoa(record.Cured),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
