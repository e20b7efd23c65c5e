package leadform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentaid-waitlist/pkg/models"
)

func validContact() models.Contact {
	return models.Contact{
		FullName: "Asha Rao",
		WhatsApp: "9876543210",
		Location: "gachibowli",
	}
}

func TestValidator_Tenant(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		form models.TenantLeadForm
		want error
	}{
		{
			name: "valid without email",
			form: models.TenantLeadForm{Contact: validContact(), MoveTimeline: "0-30"},
		},
		{
			name: "empty name wins over everything",
			form: models.TenantLeadForm{Contact: models.Contact{WhatsApp: "12"}},
			want: ErrMissingRequiredField,
		},
		{
			name: "missing whatsapp",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A"}, MoveTimeline: "0-30"},
			want: ErrMissingRequiredField,
		},
		{
			name: "nine digits",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "987654321", Location: "kondapur"}, MoveTimeline: "0-30"},
			want: ErrInvalidPhoneFormat,
		},
		{
			name: "five digits",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "12345", Location: "kondapur"}, MoveTimeline: "0-30"},
			want: ErrInvalidPhoneFormat,
		},
		{
			name: "eleven digits",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "12345678901", Location: "kondapur"}, MoveTimeline: "0-30"},
			want: ErrInvalidPhoneFormat,
		},
		{
			name: "well formed email",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "9876543210", Email: "a@b.com", Location: "kondapur"}, MoveTimeline: "0-30"},
		},
		{
			name: "phone with country code",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "+919876543210", Location: "kondapur"}, MoveTimeline: "0-30"},
			want: ErrInvalidPhoneFormat,
		},
		{
			name: "email without at sign",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "9876543210", Email: "asha.example.com"}, MoveTimeline: "0-30"},
			want: ErrInvalidEmailFormat,
		},
		{
			name: "email checked before location",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "9876543210", Email: "bad"}},
			want: ErrInvalidEmailFormat,
		},
		{
			name: "loose email accepted",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "9876543210", Email: "a@", Location: "other"}, MoveTimeline: "60-90"},
		},
		{
			name: "missing location",
			form: models.TenantLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "9876543210"}, MoveTimeline: "0-30"},
			want: ErrMissingLocation,
		},
		{
			name: "missing move timeline",
			form: models.TenantLeadForm{Contact: validContact()},
			want: ErrMissingMoveTimeline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.form)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidator_Landlord(t *testing.T) {
	v := NewValidator()

	err := v.Validate(models.LandlordLeadForm{Contact: validContact()})
	assert.ErrorIs(t, err, ErrMissingPropertyType)
	assert.ErrorIs(t, err, ErrMissingVariantField)

	err = v.Validate(models.LandlordLeadForm{Contact: validContact(), PropertyType: "pg"})
	assert.ErrorIs(t, err, ErrMissingActiveUnits)

	err = v.Validate(&models.LandlordLeadForm{Contact: validContact(), PropertyType: "pg", ActiveUnits: "6+"})
	assert.NoError(t, err)

	// tenant-only fields do not matter for landlords
	assert.NoError(t, v.Validate(models.LandlordLeadForm{Contact: validContact(), PropertyType: "apartment", ActiveUnits: "1-2"}))
}

func TestValidator_ContactErrorsBeforeVariantErrors(t *testing.T) {
	v := NewValidator()
	form := models.LandlordLeadForm{Contact: models.Contact{FullName: "A", WhatsApp: "9876543210"}}
	assert.ErrorIs(t, v.Validate(form), ErrMissingLocation)
}
