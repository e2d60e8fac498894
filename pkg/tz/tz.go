package tz

import (
	"fmt"
	"time"
)

// Local is the application time zone used for dates shown to people (exports,
// filenames, form values). It stays UTC until Set is called.
var Local = time.UTC

// Set loads name (e.g. "Europe/Paris") as the application time zone.
func Set(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("tz: load %s: %w", name, err)
	}
	Local = loc
	return nil
}

// Today returns the current date in the application time zone.
func Today() time.Time {
	return time.Now().In(Local)
}
