package validator

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidEmail validates that a string is a well-formed email address for
// typical web use: RFC 5322 parseable with a dotted, non-empty domain.
func ValidEmail() Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		if emailOK(s) {
			return nil
		}
		return Errors{{
			Code:    "invalid",
			Message: "must be a valid email address",
		}}
	})
}

func emailOK(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	parts := strings.Split(addr.Address, "@")
	if len(parts) != 2 {
		return false
	}

	localPart, domain := parts[0], parts[1]
	if localPart == "" {
		return false
	}

	// Domain must contain at least one dot and no empty labels.
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return false
		}
	}

	return true
}

// ValidURL validates that a string is an absolute http or https URL.
func ValidURL() Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		u, err := url.Parse(s)
		if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			return nil
		}
		return Errors{{
			Code:    "invalid",
			Message: "must be a valid URL",
		}}
	})
}

// ValidSlug validates that a string contains only letters, numbers,
// underscores and hyphens.
func ValidSlug() Rule {
	return RuleFunc(func(value any) error {
		s, ok := value.(string)
		if !ok || slugRegex.MatchString(s) {
			return nil
		}
		return Errors{{
			Code:    "invalid",
			Message: "must be a valid slug consisting of letters, numbers, underscores or hyphens",
		}}
	})
}

// NonZeroTime validates that a time value is set.
func NonZeroTime() Rule {
	return RuleFunc(func(value any) error {
		t, ok := value.(time.Time)
		if !ok || !t.IsZero() {
			return nil
		}
		return Errors{{
			Code:    "invalid",
			Message: "must be a non-zero time",
		}}
	})
}
