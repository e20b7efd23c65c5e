package leadform

import (
	"fmt"

	"rentaid-waitlist/pkg/models"
)

// FormState keeps both variants resident so switching never loses input.
// It does not validate; it is only a data sink. Callers synchronise access.
type FormState struct {
	Tenant   models.TenantLeadForm   `json:"tenant"`
	Landlord models.LandlordLeadForm `json:"landlord"`
	Active   models.Variant          `json:"active"`
	Open     bool                    `json:"open"`
}

// NewFormState returns empty forms with active as the selected variant
func NewFormState(active models.Variant) FormState {
	if _, ok := models.ParseVariant(string(active)); !ok {
		active = models.VariantTenant
	}
	return FormState{Active: active}
}

// SetField replaces exactly one field on the targeted variant's form
func (s *FormState) SetField(variant models.Variant, field string, value interface{}) error {
	switch variant {
	case models.VariantTenant:
		return s.Tenant.SetField(field, value)
	case models.VariantLandlord:
		return s.Landlord.SetField(field, value)
	}
	return fmt.Errorf("unknown variant %q", variant)
}

// Select changes which form is active for submission
func (s *FormState) Select(variant models.Variant) {
	s.Active = variant
}

// Record returns a copy of the given variant's form
func (s *FormState) Record(variant models.Variant) models.LeadForm {
	if variant == models.VariantLandlord {
		return s.Landlord
	}
	return s.Tenant
}

// Reset empties both forms; the active variant and open flag are left alone
func (s *FormState) Reset() {
	s.Tenant = models.TenantLeadForm{}
	s.Landlord = models.LandlordLeadForm{}
}
