package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Variant selects which of the two lead forms is being edited or submitted
type Variant string

const (
	VariantTenant   Variant = "tenant"
	VariantLandlord Variant = "landlord"
)

// ParseVariant accepts "tenant" or "landlord" (case and surrounding space ignored)
func ParseVariant(s string) (Variant, bool) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantTenant:
		return VariantTenant, true
	case VariantLandlord:
		return VariantLandlord, true
	}
	return "", false
}

// ErrUnknownField is returned when a field name does not exist on the targeted form
var ErrUnknownField = errors.New("unknown form field")

// LeadForm is implemented by both form shapes. The concrete type is the variant.
type LeadForm interface {
	Variant() Variant
	ContactDetails() Contact
}

// Contact holds the fields both forms share
type Contact struct {
	FullName        string `json:"fullName"`
	WhatsApp        string `json:"whatsapp"`
	WhatsAppConsent bool   `json:"whatsappConsent"`
	Email           string `json:"email"`
	Location        string `json:"location"`
}

// Represents the tenant signup form coming from the landing page
type TenantLeadForm struct {
	Contact
	MoveTimeline    string `json:"moveTimeline"`
	BiggestHeadache string `json:"biggestHeadache"`
}

// Represents the landlord signup form coming from the landing page
type LandlordLeadForm struct {
	Contact
	PropertyType string `json:"propertyType"`
	BiggestPain  string `json:"biggestPain"`
	ActiveUnits  string `json:"activeUnits"`
}

func (f TenantLeadForm) Variant() Variant { return VariantTenant }

func (f TenantLeadForm) ContactDetails() Contact { return f.Contact }

func (f LandlordLeadForm) Variant() Variant { return VariantLandlord }

func (f LandlordLeadForm) ContactDetails() Contact { return f.Contact }

// SetField replaces a single field on the tenant form
func (f *TenantLeadForm) SetField(field string, value interface{}) error {
	switch field {
	case "moveTimeline":
		return assignString(&f.MoveTimeline, field, value)
	case "biggestHeadache":
		return assignString(&f.BiggestHeadache, field, value)
	}
	return f.Contact.setField(field, value)
}

// SetField replaces a single field on the landlord form
func (f *LandlordLeadForm) SetField(field string, value interface{}) error {
	switch field {
	case "propertyType":
		return assignString(&f.PropertyType, field, value)
	case "biggestPain":
		return assignString(&f.BiggestPain, field, value)
	case "activeUnits":
		return assignString(&f.ActiveUnits, field, value)
	}
	return f.Contact.setField(field, value)
}

func (c *Contact) setField(field string, value interface{}) error {
	switch field {
	case "fullName":
		return assignString(&c.FullName, field, value)
	case "whatsapp":
		return assignString(&c.WhatsApp, field, value)
	case "email":
		return assignString(&c.Email, field, value)
	case "location":
		return assignString(&c.Location, field, value)
	case "whatsappConsent":
		switch v := value.(type) {
		case bool:
			c.WhatsAppConsent = v
			return nil
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("field %s: expected a boolean, got %q", field, v)
			}
			c.WhatsAppConsent = parsed
			return nil
		}
		return fmt.Errorf("field %s: expected a boolean, got %T", field, value)
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func assignString(dst *string, field string, value interface{}) error {
	switch v := value.(type) {
	case string:
		*dst = v
	case nil:
		*dst = ""
	default:
		return fmt.Errorf("field %s: expected a string, got %T", field, value)
	}
	return nil
}
