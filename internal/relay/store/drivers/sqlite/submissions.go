package sqlite

import (
	"context"
	"database/sql"

	"github.com/kindlinghq/kindling/internal/relay/domain"
)

const defaultListLimit = 100

type submissionsRepo struct {
	db *sql.DB
}

func (r *submissionsRepo) CreateSubmission(ctx context.Context, sub domain.Submission) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO submissions (id, name, message, user_id, user_email, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Message, sub.UserID, sub.UserEmail, sub.SubmittedAt,
	)
	return err
}

func (r *submissionsRepo) GetSubmissionByID(ctx context.Context, id string) (domain.Submission, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, message, user_id, user_email, submitted_at
		FROM submissions WHERE id = ?`, id)

	var sub domain.Submission
	err := row.Scan(&sub.ID, &sub.Name, &sub.Message, &sub.UserID, &sub.UserEmail, &sub.SubmittedAt)
	if err != nil {
		return domain.Submission{}, mapNotFound(err)
	}
	return sub, nil
}

func (r *submissionsRepo) ListSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	// ULIDs sort lexicographically by creation time, so id DESC is
	// newest-first even across equal timestamps.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, message, user_id, user_email, submitted_at
		FROM submissions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var subs []domain.Submission
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Message, &sub.UserID, &sub.UserEmail, &sub.SubmittedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
