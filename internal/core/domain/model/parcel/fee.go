package parcel

import "parceltrack/internal/pkg/errs"

// Pricing constants. The fee is computed once at parcel creation and never
// recomputed on edits.
const (
	baseFee         = 50.0
	perKgFee        = 20.0
	urgentSurcharge = 100.0
)

// Fee is the immutable fee breakdown of a parcel:
// total = base + weight*perKg + (urgent ? surcharge : 0).
type Fee struct {
	base   float64
	weight float64
	urgent float64
	total  float64
	isPaid bool
}

// NewFee computes the fee breakdown for the given weight and urgency.
func NewFee(weightKg float64, urgent bool) (Fee, error) {
	if weightKg <= 0 {
		return Fee{}, errs.NewValueIsOutOfRangeError("weightKg", weightKg, minWeightKg, maxWeightKg)
	}

	weightFee := weightKg * perKgFee
	urgentFee := 0.0
	if urgent {
		urgentFee = urgentSurcharge
	}

	return Fee{
		base:   baseFee,
		weight: weightFee,
		urgent: urgentFee,
		total:  baseFee + weightFee + urgentFee,
	}, nil
}

// RestoreFee reconstructs a fee breakdown from persistence without
// recomputation, preserving historical pricing.
func RestoreFee(base, weight, urgent, total float64, isPaid bool) (Fee, error) {
	if base < 0 || weight < 0 || urgent < 0 || total < 0 {
		return Fee{}, errs.NewValueIsInvalidError("fee amounts must be non-negative")
	}
	return Fee{base: base, weight: weight, urgent: urgent, total: total, isPaid: isPaid}, nil
}

// Base returns the fixed base fee.
func (f Fee) Base() float64 { return f.base }

// Weight returns the weight-proportional fee component.
func (f Fee) Weight() float64 { return f.weight }

// Urgent returns the urgency surcharge (zero for non-urgent parcels).
func (f Fee) Urgent() float64 { return f.urgent }

// Total returns the sum of all components.
func (f Fee) Total() float64 { return f.total }

// IsPaid reports whether the fee has been settled. Payment collection itself
// happens outside this service; the flag only feeds revenue reporting.
func (f Fee) IsPaid() bool { return f.isPaid }
