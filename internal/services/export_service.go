package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/terraincognita07/periodtracker/internal/models"
)

const exportFilePrefix = "period-tracker-backup-"

// ExportStateJSON encodes the whole state the same way it is persisted, so
// a backup can be loaded back by any StateStore.
func ExportStateJSON(state models.CycleState) ([]byte, error) {
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return payload, nil
}

func ExportFilename(now time.Time, location *time.Location) string {
	return exportFilePrefix + DateAtLocation(now, location).Format("2006-01-02") + ".json"
}
