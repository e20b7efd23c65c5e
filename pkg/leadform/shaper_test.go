package leadform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaid-waitlist/pkg/models"
)

func TestShape_Landlord(t *testing.T) {
	record := Shape(models.LandlordLeadForm{
		Contact:      validContact(),
		PropertyType: "apartment",
		BiggestPain:  "late rent",
		ActiveUnits:  "3-5",
	})

	assert.True(t, record.IsLandlord)
	assert.False(t, record.IsTenant)
	require.NotNil(t, record.RentOutType)
	assert.Equal(t, "apartment", *record.RentOutType)
	require.NotNil(t, record.ActiveUnits)
	assert.Equal(t, "3-5", *record.ActiveUnits)
	assert.Nil(t, record.DateToMoveIn)
	assert.Equal(t, "late rent", record.ExtraComments)
	assert.Equal(t, "", record.Email)
	assert.Equal(t, "9876543210", record.PhoneNumber)
}

func TestShape_Tenant(t *testing.T) {
	contact := validContact()
	contact.Email = "asha@example.com"
	record := Shape(models.TenantLeadForm{Contact: contact, MoveTimeline: "30-60"})

	assert.True(t, record.IsTenant)
	assert.False(t, record.IsLandlord)
	assert.Nil(t, record.RentOutType)
	assert.Nil(t, record.ActiveUnits)
	require.NotNil(t, record.DateToMoveIn)
	assert.Equal(t, "30-60", *record.DateToMoveIn)
	assert.Equal(t, "", record.ExtraComments)
	assert.Equal(t, "asha@example.com", record.Email)
}

func TestShape_NullsSerialiseAsNull(t *testing.T) {
	body, err := json.Marshal(Shape(models.TenantLeadForm{Contact: validContact(), MoveTimeline: "0-30"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"full_name": "Asha Rao",
		"phone_number": "9876543210",
		"email": "",
		"location": "gachibowli",
		"rent_out_type": null,
		"extra_comments": "",
		"activeunits": null,
		"islandlord": false,
		"istenant": true,
		"date_to_move_in": "0-30"
	}`, string(body))
}
