package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaid-waitlist/pkg/datastore"
	"rentaid-waitlist/pkg/models"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func landlordRecord() models.SubmissionRecord {
	kind, units := "independent", "3-5"
	return models.SubmissionRecord{
		FullName:      "Ravi Kumar",
		PhoneNumber:   "9123456789",
		Location:      "madhapur",
		RentOutType:   &kind,
		ActiveUnits:   &units,
		ExtraComments: "tenants leave without notice",
		IsLandlord:    true,
	}
}

func TestTestConnection(t *testing.T) {
	mock := newMock(t)
	store := NewStore(mock, nil)

	mock.ExpectPing()
	assert.True(t, store.TestConnection(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.False(t, store.TestConnection(context.Background()))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert(t *testing.T) {
	mock := newMock(t)
	store := NewStore(mock, nil)
	record := landlordRecord()

	mock.ExpectQuery(`INSERT INTO "contact_form_submissions"`).
		WithArgs(record.FullName, record.PhoneNumber, record.Email, record.Location, record.RentOutType,
			record.ExtraComments, record.ActiveUnits, true, false, record.DateToMoveIn).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := store.Insert(context.Background(), datastore.SubmissionsTable, record)

	require.NoError(t, err)
	assert.Equal(t, "7", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_MapsPgError(t *testing.T) {
	mock := newMock(t)
	store := NewStore(mock, nil)

	mock.ExpectQuery(`INSERT INTO "contact_form_submissions"`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{
			Code:    "23514",
			Message: `new row for relation "contact_form_submissions" violates check constraint`,
			Detail:  "Failing row contains (...)",
		})

	_, err := store.Insert(context.Background(), datastore.SubmissionsTable, landlordRecord())

	var dsErr *datastore.Error
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, datastore.CodeCheckViolation, dsErr.Code)
	assert.Equal(t, "Failing row contains (...)", dsErr.Details)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_TransportError(t *testing.T) {
	mock := newMock(t)
	store := NewStore(mock, nil)

	mock.ExpectQuery(`INSERT INTO`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("conn closed"))

	_, err := store.Insert(context.Background(), datastore.SubmissionsTable, landlordRecord())

	require.Error(t, err)
	var dsErr *datastore.Error
	assert.False(t, errors.As(err, &dsErr))
	assert.Contains(t, err.Error(), "conn closed")
}
