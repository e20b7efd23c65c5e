package leadform

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"rentaid-waitlist/pkg/models"
)

var whatsappPattern = regexp.MustCompile(`^[0-9]{10}$`)

// Validator runs the form rules in a fixed order and reports the first failure
type Validator struct {
	v *validator.Validate
}

type rule struct {
	value func(models.LeadForm) string
	tag   string
	err   error
}

// Rules run in order and the first failure is reported.
var contactRules = []rule{
	{value: func(f models.LeadForm) string { return f.ContactDetails().FullName }, tag: "required", err: ErrMissingRequiredField},
	{value: func(f models.LeadForm) string { return f.ContactDetails().WhatsApp }, tag: "required", err: ErrMissingRequiredField},
	{value: func(f models.LeadForm) string { return f.ContactDetails().WhatsApp }, tag: "whatsapp", err: ErrInvalidPhoneFormat},
	{value: func(f models.LeadForm) string { return f.ContactDetails().Email }, tag: "omitempty,contains=@", err: ErrInvalidEmailFormat},
	{value: func(f models.LeadForm) string { return f.ContactDetails().Location }, tag: "required", err: ErrMissingLocation},
}

var landlordRules = []rule{
	{value: func(f models.LeadForm) string { return landlordOf(f).PropertyType }, tag: "required", err: ErrMissingPropertyType},
	{value: func(f models.LeadForm) string { return landlordOf(f).ActiveUnits }, tag: "required", err: ErrMissingActiveUnits},
}

var tenantRules = []rule{
	{value: func(f models.LeadForm) string { return tenantOf(f).MoveTimeline }, tag: "required", err: ErrMissingMoveTimeline},
}

// NewValidator registers the whatsapp tag on a fresh validator instance
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterValidation("whatsapp", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return whatsappPattern.MatchString(value)
	})
	return &Validator{v: v}
}

// Validate checks the form and returns nil or the first failing rule's error.
// Email only needs an "@"; nothing stricter is applied.
func (v *Validator) Validate(form models.LeadForm) error {
	if err := v.apply(form, contactRules); err != nil {
		return err
	}
	switch form.Variant() {
	case models.VariantLandlord:
		return v.apply(form, landlordRules)
	case models.VariantTenant:
		return v.apply(form, tenantRules)
	}
	return nil
}

func (v *Validator) apply(form models.LeadForm, rules []rule) error {
	for _, r := range rules {
		if err := v.v.Var(r.value(form), r.tag); err != nil {
			return r.err
		}
	}
	return nil
}

func landlordOf(f models.LeadForm) models.LandlordLeadForm {
	switch form := f.(type) {
	case models.LandlordLeadForm:
		return form
	case *models.LandlordLeadForm:
		return *form
	}
	return models.LandlordLeadForm{}
}

func tenantOf(f models.LeadForm) models.TenantLeadForm {
	switch form := f.(type) {
	case models.TenantLeadForm:
		return form
	case *models.TenantLeadForm:
		return *form
	}
	return models.TenantLeadForm{}
}
