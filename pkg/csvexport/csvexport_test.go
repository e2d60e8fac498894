package csvexport

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRow(name string) Row {
	return Row{
		EventName:     name,
		EventDate:     time.Date(2025, 10, 1, 18, 30, 0, 0, time.UTC),
		EventLocation: "Hall A",
		AttendeeName:  "Jane Smith",
		AttendeeEmail: "jane@example.com",
		RegisteredAt:  time.Date(2025, 9, 15, 9, 5, 0, 0, time.UTC),
		Organizer:     "owner@example.com",
	}
}

func TestEscapeField(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"Convention Center, New York", `"Convention Center, New York"`},
		{`The "Big" Night`, `"The ""Big"" Night"`},
		{"line one\nline two", "\"line one\nline two\""},
		{"semi;colon", "semi;colon"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeField(tt.in), "input %q", tt.in)
	}
}

func TestBuildLineCount(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		rows := make([]Row, n)
		for i := range rows {
			rows[i] = sampleRow("Meetup")
		}
		out := string(Build(rows, time.UTC))
		assert.Len(t, strings.Split(out, "\n"), n+1, "rows=%d", n)
		assert.False(t, strings.HasSuffix(out, "\n"))
	}
}

func TestBuildContent(t *testing.T) {
	out := string(Build([]Row{sampleRow("Food, Wine & Friends")}, time.UTC))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "Event Name,Event Date,Event Location,Attendee Name,Attendee Email,Registration Date,Event Organizer", lines[0])
	assert.Equal(t, `"Food, Wine & Friends",2025-10-01 18:30,Hall A,Jane Smith,jane@example.com,2025-09-15 09:05,owner@example.com`, lines[1])
}

func TestBuildUsesLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	out := string(Build([]Row{sampleRow("Meetup")}, paris))
	assert.Contains(t, out, "2025-10-01 20:30")
	assert.Contains(t, out, "2025-09-15 11:05")
}

func TestFilename(t *testing.T) {
	day := time.Date(2025, 9, 16, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "registrations_export_20250916.csv", Filename(AllPrefix, day))
	assert.Equal(t, "selected_registrations_export_20250916.csv", Filename(SelectedPrefix, day))
}
