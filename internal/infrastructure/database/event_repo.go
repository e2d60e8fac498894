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

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventFrom = ` FROM events e JOIN users u ON u.id = e.user_id`

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	ts := now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO events (user_id, name, date, location, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		event.UserID, event.Name, event.Date.UTC(), event.Location, event.Description, ts, ts,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.CreatedAt = ts
	event.UpdatedAt = ts
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+eventFrom+` WHERE e.id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context, filter output.EventFilter) ([]entities.Event, error) {
	var q query
	switch {
	case filter.OwnerID > 0:
		q.and("e.user_id = " + q.arg(filter.OwnerID))
	case filter.OwnerID < 0:
		q.and("1 = 0")
	}
	if filter.Search != "" {
		p := q.arg(likePattern(filter.Search))
		q.and("(LOWER(e.name) LIKE " + p + " OR LOWER(e.location) LIKE " + p + " OR LOWER(COALESCE(e.description, '')) LIKE " + p + ")")
	}

	stmt := `SELECT ` + eventColumns + `, (SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id)` + eventFrom + q.whereClause()
	switch filter.Order {
	case output.EventsNewestFirst:
		stmt += ` ORDER BY e.created_at DESC, e.id DESC`
	default:
		stmt += ` ORDER BY e.date ASC, e.id ASC`
	}
	if filter.Limit > 0 {
		stmt += ` LIMIT ` + q.arg(filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, stmt, q.args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []entities.Event
	for rows.Next() {
		var count int64
		e, err := scanEvent(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.RegistrationCount = count
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET name = $1, date = $2, location = $3, description = $4, updated_at = $5 WHERE id = $6`,
		event.Name, event.Date.UTC(), event.Location, event.Description, ts, event.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrEventNotFound
	}
	event.UpdatedAt = ts
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.DeleteMany(ctx, []int64{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// DeleteMany removes the events and their registrations in one transaction
// and reports how many events were deleted.
func (r *EventRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete events: %w", err)
	}
	defer tx.Rollback()

	var qr query
	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id IN `+qr.in(ids), qr.args...); err != nil {
		return 0, fmt.Errorf("delete event registrations: %w", err)
	}
	var qe query
	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id IN `+qe.in(ids), qe.args...)
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete events: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete events: %w", err)
	}
	return n, nil
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM events`)
}

func (r *EventRepository) CountOwners(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(DISTINCT user_id) FROM events`)
}

func (r *EventRepository) CountWithRegistrations(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(DISTINCT event_id) FROM registrations`)
}

func (r *EventRepository) count(ctx context.Context, stmt string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, stmt).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// CountPerOwner lists every user with the number of events they own,
// ordered by email.
func (r *EventRepository) CountPerOwner(ctx context.Context) ([]entities.OwnerCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.email, COUNT(e.id) FROM users u LEFT JOIN events e ON e.user_id = u.id
		 GROUP BY u.id, u.email ORDER BY u.email`)
	if err != nil {
		return nil, fmt.Errorf("count events per owner: %w", err)
	}
	defer rows.Close()

	var out []entities.OwnerCount
	for rows.Next() {
		var oc entities.OwnerCount
		if err := rows.Scan(&oc.Email, &oc.Count); err != nil {
			return nil, fmt.Errorf("scan owner count: %w", err)
		}
		out = append(out, oc)
	}
	return out, rows.Err()
}
