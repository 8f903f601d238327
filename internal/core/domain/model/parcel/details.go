package parcel

import (
	"fmt"
	"time"

	"parceltrack/internal/pkg/errs"
)

const (
	minWeightKg        = 0.1
	maxWeightKg        = 50.0
	maxDescriptionLen  = 500
	maxInstructionsLen = 200
)

// Type classifies the contents of a parcel.
type Type int

const (
	TypeUnknown Type = iota
	TypeDocument
	TypePackage
	TypeFragile
	TypeElectronics
	TypeClothing
	TypeOther
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeDocument:    "document",
		TypePackage:     "package",
		TypeFragile:     "fragile",
		TypeElectronics: "electronics",
		TypeClothing:    "clothing",
		TypeOther:       "other",
	}
}

// TypeFromString parses the wire representation of a parcel type.
func TypeFromString(s string) (Type, error) {
	for t, str := range getTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("parcelType",
		fmt.Errorf("%q is not a valid parcel type", s))
}

// String returns the wire name of the type, or "unknown" for invalid values.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Type is one of the six known classifications.
func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("parcelType",
			fmt.Errorf("%d is not a valid parcel type", t))
	}
	return nil
}

// Details is a value object holding the physical attributes of a parcel:
// type, weight (0.1-50 kg), optional dimensions, description (<=500 chars),
// and optional declared value.
type Details struct {
	parcelType    Type
	weightKg      float64
	dimensions    string
	description   string
	declaredValue *float64
}

// NewDetails validates and constructs the parcel attributes.
func NewDetails(parcelType Type, weightKg float64, dimensions, description string, declaredValue *float64) (Details, error) {
	if err := parcelType.Validate(); err != nil {
		return Details{}, err
	}
	if weightKg < minWeightKg || weightKg > maxWeightKg {
		return Details{}, errs.NewValueIsOutOfRangeError("weightKg", weightKg, minWeightKg, maxWeightKg)
	}
	if len(description) > maxDescriptionLen {
		return Details{}, errs.NewValueIsOutOfRangeError("description length", len(description), 0, maxDescriptionLen)
	}
	if declaredValue != nil && *declaredValue < 0 {
		return Details{}, errs.NewValueIsInvalidError("declaredValue must be non-negative")
	}

	return Details{
		parcelType:    parcelType,
		weightKg:      weightKg,
		dimensions:    dimensions,
		description:   description,
		declaredValue: declaredValue,
	}, nil
}

// ParcelType returns the content classification.
func (d Details) ParcelType() Type { return d.parcelType }

// WeightKg returns the declared weight in kilograms.
func (d Details) WeightKg() float64 { return d.weightKg }

// Dimensions returns the free-form dimensions string, if any.
func (d Details) Dimensions() string { return d.dimensions }

// Description returns the parcel description.
func (d Details) Description() string { return d.description }

// DeclaredValue returns the declared value, or nil if none was given.
func (d Details) DeclaredValue() *float64 { return d.declaredValue }

// Preferences is a value object holding delivery preferences: an optional
// preferred delivery date (strictly in the future at validation time),
// optional instructions (<=200 chars), and the urgency flag.
type Preferences struct {
	deliveryDate *time.Time
	instructions string
	urgent       bool
}

// NewPreferences validates and constructs the delivery preferences.
// now anchors the future-date check so callers (and tests) control the clock.
func NewPreferences(deliveryDate *time.Time, instructions string, urgent bool, now time.Time) (Preferences, error) {
	if deliveryDate != nil && !deliveryDate.After(now) {
		return Preferences{}, errs.NewValueIsInvalidError("preferredDeliveryDate must be in the future")
	}
	if len(instructions) > maxInstructionsLen {
		return Preferences{}, errs.NewValueIsOutOfRangeError("instructions length", len(instructions), 0, maxInstructionsLen)
	}

	return Preferences{deliveryDate: deliveryDate, instructions: instructions, urgent: urgent}, nil
}

// RestorePreferences reconstructs preferences from persistence without the
// future-date check, which only applies at creation time.
func RestorePreferences(deliveryDate *time.Time, instructions string, urgent bool) Preferences {
	return Preferences{deliveryDate: deliveryDate, instructions: instructions, urgent: urgent}
}

// DeliveryDate returns the preferred delivery date, or nil.
func (p Preferences) DeliveryDate() *time.Time { return p.deliveryDate }

// Instructions returns the delivery instructions.
func (p Preferences) Instructions() string { return p.instructions }

// Urgent reports whether urgent delivery was requested.
func (p Preferences) Urgent() bool { return p.urgent }
