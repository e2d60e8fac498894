package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"eventreg/internal/domain/entities"
)

type scanner interface {
	Scan(dest ...any) error
}

// query accumulates positional arguments, numbering placeholders $1, $2, ...
// in order. Both pgx and modernc sqlite bind $N by ordinal.
type query struct {
	args  []any
	where []string
}

func (q *query) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *query) in(ids []int64) string {
	ph := make([]string, len(ids))
	for i, id := range ids {
		ph[i] = q.arg(id)
	}
	return "(" + strings.Join(ph, ", ") + ")"
}

func (q *query) and(cond string) {
	q.where = append(q.where, cond)
}

func (q *query) whereClause() string {
	if len(q.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.where, " AND ")
}

func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// now is the write timestamp, in UTC at the precision PostgreSQL keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func roleFromNull(r sql.NullInt64) entities.Role {
	if !r.Valid {
		return entities.RoleRegular
	}
	return entities.Role(r.Int64)
}

const eventColumns = `e.id, e.user_id, e.name, e.date, e.location, COALESCE(e.description, ''), e.created_at, e.updated_at, u.email`

func scanEvent(row scanner, extra ...any) (entities.Event, error) {
	var e entities.Event
	dest := []any{&e.ID, &e.UserID, &e.Name, &e.Date, &e.Location, &e.Description, &e.CreatedAt, &e.UpdatedAt, &e.OwnerEmail}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return entities.Event{}, err
	}
	return e, nil
}

const registrationColumns = `r.id, r.event_id, r.attendee_name, r.attendee_email, r.created_at, r.updated_at`

func scanRegistration(row scanner) (entities.Registration, error) {
	var r entities.Registration
	if err := row.Scan(&r.ID, &r.EventID, &r.AttendeeName, &r.AttendeeEmail, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return entities.Registration{}, err
	}
	return r, nil
}

func scanRegistrationWithEvent(row scanner) (entities.Registration, error) {
	var (
		r entities.Registration
		e entities.Event
	)
	err := row.Scan(
		&r.ID, &r.EventID, &r.AttendeeName, &r.AttendeeEmail, &r.CreatedAt, &r.UpdatedAt,
		&e.ID, &e.UserID, &e.Name, &e.Date, &e.Location, &e.Description, &e.CreatedAt, &e.UpdatedAt, &e.OwnerEmail,
	)
	if err != nil {
		return entities.Registration{}, err
	}
	r.Event = &e
	return r, nil
}
