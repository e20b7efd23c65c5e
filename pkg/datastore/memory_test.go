package datastore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaid-waitlist/pkg/models"
)

func ptr(s string) *string { return &s }

func tenant(phone string) models.SubmissionRecord {
	return models.SubmissionRecord{
		FullName:     "Asha Rao",
		PhoneNumber:  phone,
		Location:     "other",
		IsTenant:     true,
		DateToMoveIn: ptr("60-90"),
	}
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var dsErr *Error
	require.True(t, errors.As(err, &dsErr), "expected *datastore.Error, got %v", err)
	return dsErr.Code
}

func TestMemoryStore_InsertAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.Insert(ctx, SubmissionsTable, tenant("9876543210"))
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	record, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "9876543210", record.PhoneNumber)

	_, err = store.Insert(ctx, SubmissionsTable, tenant("9876543210"))
	assert.Equal(t, CodeUniqueViolation, codeOf(t, err))
	assert.Equal(t, 1, store.Count())
}

func TestMemoryStore_CheckConstraints(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	both := tenant("9000000001")
	both.IsLandlord = true
	_, err := store.Insert(ctx, SubmissionsTable, both)
	assert.Equal(t, CodeCheckViolation, codeOf(t, err))

	badUnits := models.SubmissionRecord{
		FullName:    "Ravi",
		PhoneNumber: "9000000002",
		Location:    "kondapur",
		IsLandlord:  true,
		RentOutType: ptr("pg"),
		ActiveUnits: ptr("100"),
	}
	_, err = store.Insert(ctx, SubmissionsTable, badUnits)
	assert.Equal(t, CodeCheckViolation, codeOf(t, err))

	_, err = store.Insert(ctx, "leads", tenant("9000000003"))
	assert.Equal(t, "42P01", codeOf(t, err))
	assert.Equal(t, 0, store.Count())
}

func TestMemoryStore_Reachability(t *testing.T) {
	store := NewMemoryStore()
	assert.True(t, store.TestConnection(context.Background()))
	store.SetReachable(false)
	assert.False(t, store.TestConnection(context.Background()))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "boom (code 23505)", (&Error{Code: "23505", Message: "boom"}).Error())
	assert.Equal(t, "boom", (&Error{Message: "boom"}).Error())
}
