// Package settings holds the library-wide defaults consulted by field
// constructors: temporal input and output formats, decimal string coercion,
// and file URL composition.
//
// Settings load from FIELDKIT_* environment variables (a .env file is picked
// up once per process when present). Hosts that prefer explicit wiring start
// from Defaults and call Override at startup:
//
//	s := settings.Defaults()
//	s.DateTimeInputFormats = []string{settings.ISO8601, "2006-01-02 15:04"}
//	s.DefaultTimezone = "Europe/Prague"
//	settings.Override(s)
package settings
