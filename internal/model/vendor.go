package model

import "time"

// SupportLevel is the contracted vendor support tier.
type SupportLevel string

const (
	SupportStandard SupportLevel = "standard"
	SupportBusiness SupportLevel = "business"
	SupportPremium  SupportLevel = "premium"
	SupportPlatinum SupportLevel = "platinum"
)

// Valid reports whether l is one of the known tiers.
func (l SupportLevel) Valid() bool {
	switch l {
	case SupportStandard, SupportBusiness, SupportPremium, SupportPlatinum:
		return true
	}
	return false
}

// Vendor is a supplier the team holds a support relationship with.
// PrimaryContactID and SecondaryContactID reference TeamMember ids and may dangle.
type Vendor struct {
	ID                 int64        `json:"id"`
	Name               string       `json:"name"`
	Product            *string      `json:"product"`
	AccountRep         *string      `json:"account_rep"`
	AccountRepPhone    *string      `json:"account_rep_phone"`
	AccountRepEmail    *string      `json:"account_rep_email"`
	SupportLevel       SupportLevel `json:"support_level"`
	Notes              *string      `json:"notes"`
	PrimaryContactID   *int64       `json:"primary_contact_id"`
	SecondaryContactID *int64       `json:"secondary_contact_id"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// VendorView is a Vendor with its contact references resolved to display values.
type VendorView struct {
	Vendor
	PrimaryContactName   *string `json:"primary_contact_name"`
	PrimaryContactEmail  *string `json:"primary_contact_email"`
	SecondaryContactName *string `json:"secondary_contact_name"`
}

// VendorDetail is the single-vendor view: the enriched vendor plus its documents, newest first.
type VendorDetail struct {
	VendorView
	Documents []DocumentView `json:"documents"`
}
