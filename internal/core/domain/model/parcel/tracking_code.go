package parcel

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"time"

	"parceltrack/internal/pkg/errs"
)

// trackingCodeAlphabet holds the characters used for the random suffix.
// Uppercase alphanumerics only, per the wire contract.
const trackingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const trackingCodeSuffixLen = 6

var trackingCodePattern = regexp.MustCompile(`^TRK-\d{8}-[A-Z0-9]{6}$`)

// TrackingCode is the human-readable public identifier of a parcel, with the
// fixed shape TRK-YYYYMMDD-XXXXXX. It is generated at creation, unique across
// all parcels, and immutable once set.
type TrackingCode struct {
	value string
}

// GenerateTrackingCode mints a new tracking code for the given creation time.
// The six-character suffix is drawn from crypto/rand; uniqueness against the
// store is the caller's responsibility (creation retries on collision).
func GenerateTrackingCode(createdAt time.Time) (TrackingCode, error) {
	suffix := make([]byte, trackingCodeSuffixLen)
	if _, err := rand.Read(suffix); err != nil {
		return TrackingCode{}, fmt.Errorf("generating tracking code suffix: %w", err)
	}
	for i, b := range suffix {
		suffix[i] = trackingCodeAlphabet[int(b)%len(trackingCodeAlphabet)]
	}

	return TrackingCode{
		value: fmt.Sprintf("TRK-%s-%s", createdAt.Format("20060102"), suffix),
	}, nil
}

// TrackingCodeFromString parses and validates an existing tracking code,
// typically from persistence or a public tracking request.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	if s == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("trackingCode")
	}
	if !trackingCodePattern.MatchString(s) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause("trackingCode",
			fmt.Errorf("%q does not match TRK-YYYYMMDD-XXXXXX", s))
	}
	return TrackingCode{value: s}, nil
}

// String returns the code in its wire form.
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual reports whether two tracking codes are the same.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

// Validate returns an error for the zero value.
func (c TrackingCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("trackingCode")
	}
	return nil
}
