package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/ports/secondary"
)

// ActivityLogRepository implements secondary.ActivityLogRepository with SQLite.
type ActivityLogRepository struct {
	db *sql.DB
}

// NewActivityLogRepository creates a new SQLite activity log repository.
func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// ListForProject retrieves the newest entries touching a project or any
// of its workflow steps, tasks, reviews, and documents. Entries for
// children that have since been deleted are not resolvable and drop out.
func (r *ActivityLogRepository) ListForProject(ctx context.Context, projectID string, limit int) ([]*secondary.ActivityRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at
		FROM activity_log
		WHERE (entity_type = 'project' AND entity_id = ?)
			OR (entity_type = 'workflow_step' AND entity_id IN (SELECT id FROM project_workflow_steps WHERE project_id = ?))
			OR (entity_type = 'task' AND entity_id IN (SELECT id FROM tasks WHERE project_id = ?))
			OR (entity_type = 'review' AND entity_id IN (SELECT id FROM reviews WHERE project_id = ?))
			OR (entity_type = 'document' AND entity_id IN (SELECT id FROM documents WHERE project_id = ?))
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		projectID, projectID, projectID, projectID, projectID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ActivityRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
		)

		record := &secondary.ActivityRecord{}
		err := rows.Scan(
			&record.ID, &actorID, &record.EntityType, &record.EntityID, &record.Action,
			&fieldName, &oldValue, &newValue, &record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}

		record.ActorID = actorID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String

		entries = append(entries, record)
	}

	return entries, rows.Err()
}

// Ensure ActivityLogRepository implements the interface
var _ secondary.ActivityLogRepository = (*ActivityLogRepository)(nil)
