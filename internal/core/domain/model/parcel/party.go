package parcel

import (
	"strings"

	"parceltrack/internal/pkg/errs"
)

// PartyInfo is a denormalized snapshot of a sender or receiver captured at
// parcel creation. It stays frozen afterward so the audit trail reflects the
// parties as they were when the parcel was created; only the address may be
// corrected later through support edits.
type PartyInfo struct {
	name    string
	email   string
	phone   string
	address string
}

// NewPartyInfo validates and constructs a party snapshot.
// Name and email are required; email is stored lowercased for matching.
func NewPartyInfo(name, email, phone, address string) (PartyInfo, error) {
	if name == "" {
		return PartyInfo{}, errs.NewValueIsRequiredError("name")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return PartyInfo{}, errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return PartyInfo{}, errs.NewValueIsInvalidError("email")
	}

	return PartyInfo{name: name, email: email, phone: phone, address: address}, nil
}

// Name returns the party's display name.
func (p PartyInfo) Name() string { return p.name }

// Email returns the party's lowercased email address.
func (p PartyInfo) Email() string { return p.email }

// Phone returns the party's phone number, if any.
func (p PartyInfo) Phone() string { return p.phone }

// Address returns the party's address.
func (p PartyInfo) Address() string { return p.address }

// WithAddress returns a copy of the snapshot with a corrected address.
// This is the only mutation allowed on a snapshot after creation.
func (p PartyInfo) WithAddress(address string) PartyInfo {
	p.address = address
	return p
}

// Validate returns an error for the zero value.
func (p PartyInfo) Validate() error {
	if p.name == "" || p.email == "" {
		return errs.NewValueIsRequiredError("party info must be created via NewPartyInfo")
	}
	return nil
}
