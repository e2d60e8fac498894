// Package csvexport renders registration exports as CSV text.
//
// Fields are escaped by hand: a field is quoted only when it contains a comma,
// a double quote or a newline, and internal quotes are doubled. Lines are
// joined with "\n" and the document has no trailing newline, so N rows always
// produce N+1 lines.
package csvexport

import (
	"bytes"
	"strings"
	"time"
)

// DateLayout formats event dates and registration timestamps.
const DateLayout = "2006-01-02 15:04"

// Filename prefixes for whole-list and explicit-selection exports.
const (
	AllPrefix      = "registrations_export"
	SelectedPrefix = "selected_registrations_export"
)

// Header is the fixed first line of every export.
var Header = []string{
	"Event Name",
	"Event Date",
	"Event Location",
	"Attendee Name",
	"Attendee Email",
	"Registration Date",
	"Event Organizer",
}

// Row is one exported registration.
type Row struct {
	EventName     string
	EventDate     time.Time
	EventLocation string
	AttendeeName  string
	AttendeeEmail string
	RegisteredAt  time.Time
	Organizer     string
}

func (r Row) fields(loc *time.Location) []string {
	return []string{
		r.EventName,
		r.EventDate.In(loc).Format(DateLayout),
		r.EventLocation,
		r.AttendeeName,
		r.AttendeeEmail,
		r.RegisteredAt.In(loc).Format(DateLayout),
		r.Organizer,
	}
}

// EscapeField quotes s when it contains a comma, a double quote or a newline.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Build renders the header and one line per row, formatting times in loc.
func Build(rows []Row, loc *time.Location) []byte {
	if loc == nil {
		loc = time.UTC
	}
	var b bytes.Buffer
	writeLine(&b, Header)
	for _, r := range rows {
		b.WriteByte('\n')
		writeLine(&b, r.fields(loc))
	}
	return b.Bytes()
}

func writeLine(b *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeField(f))
	}
}

// Filename returns "<prefix>_YYYYMMDD.csv" for day.
func Filename(prefix string, day time.Time) string {
	return prefix + "_" + day.Format("20060102") + ".csv"
}
