package leadform

import "rentaid-waitlist/pkg/models"

// Shape maps a validated form onto the canonical submission record
func Shape(form models.LeadForm) models.SubmissionRecord {
	contact := form.ContactDetails()
	record := models.SubmissionRecord{
		FullName:    contact.FullName,
		PhoneNumber: contact.WhatsApp,
		Email:       contact.Email,
		Location:    contact.Location,
	}

	switch form.Variant() {
	case models.VariantLandlord:
		landlord := landlordOf(form)
		record.IsLandlord = true
		record.RentOutType = stringPtr(landlord.PropertyType)
		record.ActiveUnits = stringPtr(landlord.ActiveUnits)
		record.ExtraComments = landlord.BiggestPain
	default:
		tenant := tenantOf(form)
		record.IsTenant = true
		record.DateToMoveIn = stringPtr(tenant.MoveTimeline)
		record.ExtraComments = tenant.BiggestHeadache
	}

	return record
}

func stringPtr(s string) *string {
	return &s
}
