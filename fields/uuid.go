package fields

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Output encodings for UUID values.
const (
	UUIDCanonical = "canonical" // 8-4-4-4-12 hex groups
	UUIDHex       = "hex"       // 32 hex digits, no dashes
	UUIDURN       = "urn"       // urn:uuid: prefixed canonical form
)

// UUID coerces input to uuid.UUID, accepting canonical, braced, bare-hex and
// URN spellings as well as raw 16-byte values.
type UUID struct {
	// Encoding picks the output form, defaulting to canonical.
	Encoding string
}

func (*UUID) Name() string { return "uuid" }

func (*UUID) Messages() map[string]string {
	return map[string]string{
		"invalid": "\"%{value}\" is not a valid UUID.",
	}
}

func (u *UUID) construct(f *Field) {
	switch u.Encoding {
	case "", UUIDCanonical, UUIDHex, UUIDURN:
	default:
		panic(fmt.Sprintf("fields: UUID Encoding must be canonical, hex or urn, got %q", u.Encoding))
	}
}

func (*UUID) Parse(f *Field, value any) (any, error) {
	if id, ok := uuidFromValue(value); ok {
		return id, nil
	}
	return nil, f.Fail("invalid", "value", value)
}

func (u *UUID) Format(f *Field, value any) (any, error) {
	id, ok := uuidFromValue(value)
	if !ok {
		return nil, f.Fail("invalid", "value", value)
	}
	switch u.Encoding {
	case UUIDHex:
		return strings.ReplaceAll(id.String(), "-", ""), nil
	case UUIDURN:
		return id.URN(), nil
	}
	return id.String(), nil
}

func uuidFromValue(value any) (uuid.UUID, bool) {
	switch v := value.(type) {
	case uuid.UUID:
		return v, true
	case [16]byte:
		return uuid.UUID(v), true
	case []byte:
		if id, err := uuid.FromBytes(v); err == nil {
			return id, true
		}
	case string:
		if id, err := uuid.Parse(v); err == nil {
			return id, true
		}
	}
	return uuid.UUID{}, false
}
