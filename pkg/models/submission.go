package models

// SubmissionRecord is the flat row written to contact_form_submissions.
// Fields owned by the other variant are nil so they serialise as null.
type SubmissionRecord struct {
	FullName      string  `json:"full_name"`
	PhoneNumber   string  `json:"phone_number"`
	Email         string  `json:"email"`
	Location      string  `json:"location"`
	RentOutType   *string `json:"rent_out_type"`
	ExtraComments string  `json:"extra_comments"`
	ActiveUnits   *string `json:"activeunits"`
	IsLandlord    bool    `json:"islandlord"`
	IsTenant      bool    `json:"istenant"`
	DateToMoveIn  *string `json:"date_to_move_in"`
}

// Variant reports which form produced the record
func (r SubmissionRecord) Variant() Variant {
	if r.IsLandlord {
		return VariantLandlord
	}
	return VariantTenant
}
