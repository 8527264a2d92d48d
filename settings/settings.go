package settings

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ISO8601 is the marker accepted by the temporal format settings and by the
// field input-format lists. It expands to the ISO 8601 layout family instead
// of being used as a literal layout.
const ISO8601 = "iso-8601"

// Settings carries the library-wide defaults fields consult at construction
// time. All of them can be set through FIELDKIT_* environment variables.
type Settings struct {
	DateFormat     string `env:"FIELDKIT_DATE_FORMAT" envDefault:"iso-8601"`
	TimeFormat     string `env:"FIELDKIT_TIME_FORMAT" envDefault:"iso-8601"`
	DateTimeFormat string `env:"FIELDKIT_DATETIME_FORMAT" envDefault:"iso-8601"`

	DateInputFormats     []string `env:"FIELDKIT_DATE_INPUT_FORMATS" envSeparator:"," envDefault:"iso-8601"`
	TimeInputFormats     []string `env:"FIELDKIT_TIME_INPUT_FORMATS" envSeparator:"," envDefault:"iso-8601"`
	DateTimeInputFormats []string `env:"FIELDKIT_DATETIME_INPUT_FORMATS" envSeparator:"," envDefault:"iso-8601"`

	CoerceDecimalToString bool `env:"FIELDKIT_COERCE_DECIMAL_TO_STRING" envDefault:"true"`

	UploadedFilesUseURL bool   `env:"FIELDKIT_UPLOADED_FILES_USE_URL" envDefault:"true"`
	MediaURL            string `env:"FIELDKIT_MEDIA_URL" envDefault:""`

	// DefaultTimezone is an IANA zone name. When set, naive datetime inputs
	// are interpreted in that zone and aware inputs converted to it. Empty
	// means no default zone.
	DefaultTimezone string `env:"FIELDKIT_DEFAULT_TIMEZONE" envDefault:""`
}

// Location resolves DefaultTimezone. A nil location with a nil error means
// no default zone is configured.
func (s Settings) Location() (*time.Location, error) {
	if s.DefaultTimezone == "" {
		return nil, nil
	}
	return time.LoadLocation(s.DefaultTimezone)
}

// Defaults returns the built-in settings, ignoring the environment.
func Defaults() Settings {
	return Settings{
		DateFormat:            ISO8601,
		TimeFormat:            ISO8601,
		DateTimeFormat:        ISO8601,
		DateInputFormats:      []string{ISO8601},
		TimeInputFormats:      []string{ISO8601},
		DateTimeInputFormats:  []string{ISO8601},
		CoerceDecimalToString: true,
		UploadedFilesUseURL:   true,
	}
}

var (
	mu     sync.RWMutex
	active *Settings

	defaultEnvLoaded sync.Once
)

// Load reads the settings from the environment. A .env file is loaded once
// per process when present.
func Load() (Settings, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, errors.Join(ErrParsingSettings, err)
	}
	return s, nil
}

// MustLoad works like Load but panics when parsing fails.
func MustLoad() Settings {
	s, err := Load()
	if err != nil {
		panic("settings: " + err.Error())
	}
	return s
}

// Current returns the process-wide settings, loading them from the
// environment on first use. A malformed environment falls back to Defaults.
func Current() Settings {
	mu.RLock()
	if active != nil {
		s := *active
		mu.RUnlock()
		return s
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		s, err := Load()
		if err != nil {
			s = Defaults()
		}
		active = &s
	}
	return *active
}

// Override replaces the process-wide settings. Hosts use it to configure the
// library without the environment; tests use it to pin behavior.
func Override(s Settings) {
	mu.Lock()
	defer mu.Unlock()
	active = &s
}

// Reset drops any loaded or overridden settings so the next Current call
// reads the environment again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	active = nil
}
