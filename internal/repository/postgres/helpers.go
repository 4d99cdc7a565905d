package postgres

import (
	"database/sql"
	"time"

	"github.com/naologic/reflow/internal/repository"
)

// timeLayout is the wire format used for timestamps stored in JSON columns.
const timeLayout = time.RFC3339

func timeParse(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// requireRowsAffected turns a zero-rows-affected result from an UPDATE or
// DELETE into a NotFoundError, matching the teacher's convention of
// surfacing missing rows without a separate existence query.
func requireRowsAffected(result sql.Result, resourceType, resourceID string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &repository.NotFoundError{ResourceType: resourceType, ResourceID: resourceID}
	}
	return nil
}
