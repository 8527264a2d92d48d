package fields

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/fieldkit/settings"
)

// ISO 8601 shapes accepted when an input layout list names the marker. Go
// layouts cannot make seconds optional, so the minute-precision shapes are
// spelled out.
var isoDateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04Z0700",
	"2006-01-02 15:04",
}

var isoTimeLayouts = []string{
	"15:04:05.999999999",
	"15:04",
}

const isoDateLayout = "2006-01-02"

const (
	isoDateTimeHuman = "YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]"
	isoDateHuman     = "YYYY-MM-DD"
	isoTimeHuman     = "hh:mm[:ss[.uuuuuu]]"
)

// layoutHumanizer rewrites Go reference-layout tokens into the placeholder
// alphabet used in error messages. Longer tokens come first so they win.
var layoutHumanizer = strings.NewReplacer(
	".999999999", "[.uuuuuu]",
	".999999", "[.uuuuuu]",
	".000000", ".uuuuuu",
	"Monday", "DAY",
	"January", "MONTH",
	"Jan", "MON",
	"Mon", "DAY",
	"2006", "YYYY",
	"01", "MM",
	"02", "DD",
	"15", "hh",
	"03", "hh",
	"04", "mm",
	"05", "ss",
	"Z07:00", "[+HH:MM|-HH:MM|Z]",
	"Z0700", "[+HHMM|-HHMM|Z]",
	"-07:00", "+HH:MM",
	"-0700", "+HHMM",
	"PM", "[AM|PM]",
	"pm", "[am|pm]",
)

func humanizeLayouts(layouts []string, isoHuman string) string {
	parts := make([]string, 0, len(layouts))
	for _, layout := range layouts {
		if strings.EqualFold(layout, settings.ISO8601) {
			parts = append(parts, isoHuman)
			continue
		}
		parts = append(parts, layoutHumanizer.Replace(layout))
	}
	return strings.Join(parts, ", ")
}

// DateTime coerces input to time.Time.
//
// When a zone is configured, wall-clock inputs without an explicit offset
// are interpreted in it and explicit offsets are kept. Without a zone,
// every value is normalized to UTC.
type DateTime struct {
	// Layout is the output layout, or the "iso-8601" marker. Empty uses
	// the FIELDKIT_DATETIME_FORMAT setting.
	Layout string

	// InputLayouts are the accepted layouts, tried in order; the
	// "iso-8601" marker expands to the standard shapes. Empty uses the
	// FIELDKIT_DATETIME_INPUT_FORMATS setting.
	InputLayouts []string

	// Timezone interprets offset-less inputs. Nil uses the
	// FIELDKIT_DEFAULT_TIMEZONE setting.
	Timezone *time.Location
}

func (*DateTime) Name() string { return "datetime" }

func (*DateTime) Messages() map[string]string {
	return map[string]string{
		"invalid": "Datetime has wrong format. Use one of these formats instead: %{format}",
		"date":    "Expected a datetime but got a date.",
	}
}

func (dt *DateTime) inputLayouts() []string {
	if len(dt.InputLayouts) > 0 {
		return dt.InputLayouts
	}
	return settings.Current().DateTimeInputFormats
}

func (dt *DateTime) outputLayout() string {
	if dt.Layout != "" {
		return dt.Layout
	}
	return settings.Current().DateTimeFormat
}

func (dt *DateTime) location() *time.Location {
	if dt.Timezone != nil {
		return dt.Timezone
	}
	loc, err := settings.Current().Location()
	if err != nil {
		return nil
	}
	return loc
}

// enforceZone converts a parsed instant into the configured zone, or UTC
// when none is configured.
func (dt *DateTime) enforceZone(t time.Time) time.Time {
	if loc := dt.location(); loc != nil {
		return t.In(loc)
	}
	return t.In(time.UTC)
}

func (dt *DateTime) Parse(f *Field, value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return dt.enforceZone(v), nil
	case Date:
		return nil, f.Fail("date")
	case string:
		loc := dt.location()
		for _, layout := range dt.inputLayouts() {
			if strings.EqualFold(layout, settings.ISO8601) {
				for _, iso := range isoDateTimeLayouts {
					if t, ok := parseInZone(iso, v, loc); ok {
						return dt.enforceZone(t), nil
					}
				}
				continue
			}
			if t, ok := parseInZone(layout, v, loc); ok {
				return dt.enforceZone(t), nil
			}
		}
	}
	return nil, f.Fail("invalid", "format", humanizeLayouts(dt.inputLayouts(), isoDateTimeHuman))
}

func (dt *DateTime) Format(f *Field, value any) (any, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, fmt.Errorf("fields: datetime output expects time.Time, got %T", value)
	}
	layout := dt.outputLayout()
	if strings.EqualFold(layout, settings.ISO8601) {
		return t.Format(time.RFC3339Nano), nil
	}
	return t.Format(layout), nil
}

// parseInZone parses s with layout, resolving offset-less inputs against
// loc when set. Zone normalization is the caller's job.
func parseInZone(layout, s string, loc *time.Location) (time.Time, bool) {
	if loc != nil {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateOnly coerces input to a Date. A datetime input is refused rather than
// silently truncated.
type DateOnly struct {
	// Layout is the output layout, or the "iso-8601" marker. Empty uses
	// the FIELDKIT_DATE_FORMAT setting.
	Layout string

	// InputLayouts are the accepted layouts. Empty uses the
	// FIELDKIT_DATE_INPUT_FORMATS setting.
	InputLayouts []string
}

func (*DateOnly) Name() string { return "date" }

func (*DateOnly) Messages() map[string]string {
	return map[string]string{
		"invalid":  "Date has wrong format. Use one of these formats instead: %{format}",
		"datetime": "Expected a date but got a datetime.",
	}
}

func (d *DateOnly) inputLayouts() []string {
	if len(d.InputLayouts) > 0 {
		return d.InputLayouts
	}
	return settings.Current().DateInputFormats
}

func (d *DateOnly) outputLayout() string {
	if d.Layout != "" {
		return d.Layout
	}
	return settings.Current().DateFormat
}

func (d *DateOnly) Parse(f *Field, value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return nil, f.Fail("datetime")
	case Date:
		return v, nil
	case string:
		for _, layout := range d.inputLayouts() {
			if strings.EqualFold(layout, settings.ISO8601) {
				if t, err := time.Parse(isoDateLayout, v); err == nil {
					return DateOf(t), nil
				}
				continue
			}
			if t, err := time.Parse(layout, v); err == nil {
				return DateOf(t), nil
			}
		}
	}
	return nil, f.Fail("invalid", "format", humanizeLayouts(d.inputLayouts(), isoDateHuman))
}

func (d *DateOnly) Format(f *Field, value any) (any, error) {
	switch v := value.(type) {
	case Date:
		layout := d.outputLayout()
		if strings.EqualFold(layout, settings.ISO8601) {
			return v.String(), nil
		}
		return v.Time(nil).Format(layout), nil
	case time.Time:
		return nil, fmt.Errorf(
			"fields: date output got a time.Time; refusing to coerce a datetime, truncate it explicitly",
		)
	}
	return nil, fmt.Errorf("fields: date output expects fields.Date, got %T", value)
}

// TimeOnly coerces input to a Clock.
type TimeOnly struct {
	// Layout is the output layout, or the "iso-8601" marker. Empty uses
	// the FIELDKIT_TIME_FORMAT setting.
	Layout string

	// InputLayouts are the accepted layouts. Empty uses the
	// FIELDKIT_TIME_INPUT_FORMATS setting.
	InputLayouts []string
}

func (*TimeOnly) Name() string { return "time" }

func (*TimeOnly) Messages() map[string]string {
	return map[string]string{
		"invalid": "Time has wrong format. Use one of these formats instead: %{format}",
	}
}

func (t *TimeOnly) inputLayouts() []string {
	if len(t.InputLayouts) > 0 {
		return t.InputLayouts
	}
	return settings.Current().TimeInputFormats
}

func (t *TimeOnly) outputLayout() string {
	if t.Layout != "" {
		return t.Layout
	}
	return settings.Current().TimeFormat
}

func (t *TimeOnly) Parse(f *Field, value any) (any, error) {
	switch v := value.(type) {
	case Clock:
		return v, nil
	case string:
		for _, layout := range t.inputLayouts() {
			if strings.EqualFold(layout, settings.ISO8601) {
				for _, iso := range isoTimeLayouts {
					if parsed, err := time.Parse(iso, v); err == nil {
						return ClockOf(parsed), nil
					}
				}
				continue
			}
			if parsed, err := time.Parse(layout, v); err == nil {
				return ClockOf(parsed), nil
			}
		}
	}
	return nil, f.Fail("invalid", "format", humanizeLayouts(t.inputLayouts(), isoTimeHuman))
}

func (t *TimeOnly) Format(f *Field, value any) (any, error) {
	switch v := value.(type) {
	case Clock:
		layout := t.outputLayout()
		if strings.EqualFold(layout, settings.ISO8601) {
			return v.String(), nil
		}
		return v.layout(layout), nil
	case time.Time:
		return nil, fmt.Errorf(
			"fields: time output got a time.Time; refusing to coerce a datetime, truncate it explicitly",
		)
	}
	return nil, fmt.Errorf("fields: time output expects fields.Clock, got %T", value)
}
