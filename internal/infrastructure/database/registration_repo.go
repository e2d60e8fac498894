package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/output"
)

var _ output.RegistrationRepository = (*RegistrationRepository)(nil)

type RegistrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *entities.Registration) error {
	ts := now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO registrations (event_id, attendee_name, attendee_email, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		reg.EventID, reg.AttendeeName, reg.AttendeeEmail, ts, ts,
	).Scan(&reg.ID)
	if err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	reg.CreatedAt = ts
	reg.UpdatedAt = ts
	return nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id int64) (*entities.Registration, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+registrationColumns+` FROM registrations r WHERE r.id = $1`, id)
	reg, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get registration by id: %w", err)
	}
	return &reg, nil
}

// FindByEventID returns the event's registrations, newest first.
func (r *RegistrationRepository) FindByEventID(ctx context.Context, eventID int64) ([]entities.Registration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations r WHERE r.event_id = $1 ORDER BY r.created_at DESC, r.id DESC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event registrations: %w", err)
	}
	defer rows.Close()

	var out []entities.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *RegistrationRepository) List(ctx context.Context, filter output.RegistrationFilter) ([]entities.Registration, error) {
	var q query
	if filter.EventID > 0 {
		q.and("r.event_id = " + q.arg(filter.EventID))
	}
	if len(filter.IDs) > 0 {
		q.and("r.id IN " + q.in(filter.IDs))
	}
	if filter.Search != "" {
		p := q.arg(likePattern(filter.Search))
		q.and("(LOWER(r.attendee_name) LIKE " + p + " OR LOWER(r.attendee_email) LIKE " + p + " OR LOWER(e.name) LIKE " + p + ")")
	}

	stmt := `SELECT ` + registrationColumns + `, ` + eventColumns +
		` FROM registrations r JOIN events e ON e.id = r.event_id JOIN users u ON u.id = e.user_id` +
		q.whereClause() + ` ORDER BY r.created_at DESC, r.id DESC`
	if filter.Limit > 0 {
		stmt += ` LIMIT ` + q.arg(filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, stmt, q.args...)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var out []entities.Registration
	for rows.Next() {
		reg, err := scanRegistrationWithEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *RegistrationRepository) Update(ctx context.Context, reg *entities.Registration) error {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET attendee_name = $1, attendee_email = $2, updated_at = $3 WHERE id = $4`,
		reg.AttendeeName, reg.AttendeeEmail, ts, reg.ID,
	)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRegistrationNotFound
	}
	reg.UpdatedAt = ts
	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *RegistrationRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var q query
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id IN `+q.in(ids), q.args...)
	if err != nil {
		return 0, fmt.Errorf("delete registrations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete registrations: %w", err)
	}
	return n, nil
}

func (r *RegistrationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *RegistrationRepository) CountDistinctEmails(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT attendee_email) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count attendees: %w", err)
	}
	return n, nil
}
