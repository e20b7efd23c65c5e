package datastore

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"rentaid-waitlist/pkg/models"
)

// MemoryStore keeps submissions in process. It enforces the same unique and
// check constraints as the SQL schema so error classification can be exercised
// without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	records   map[string]models.SubmissionRecord
	byPhone   map[string]string
	nextID    int64
	reachable bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:   make(map[string]models.SubmissionRecord),
		byPhone:   make(map[string]string),
		reachable: true,
	}
}

// SetReachable toggles the connectivity probe result
func (m *MemoryStore) SetReachable(reachable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reachable = reachable
}

func (m *MemoryStore) TestConnection(ctx context.Context) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reachable
}

func (m *MemoryStore) Insert(ctx context.Context, table string, record models.SubmissionRecord) (string, error) {
	if table != SubmissionsTable {
		return "", &Error{Code: "42P01", Message: fmt.Sprintf("relation %q does not exist", table)}
	}
	if err := checkConstraints(record); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byPhone[record.PhoneNumber]; exists {
		return "", &Error{
			Code:    CodeUniqueViolation,
			Message: `duplicate key value violates unique constraint "contact_form_submissions_phone_number_key"`,
			Details: fmt.Sprintf("Key (phone_number)=(%s) already exists.", record.PhoneNumber),
		}
	}

	m.nextID++
	id := strconv.FormatInt(m.nextID, 10)
	m.records[id] = record
	m.byPhone[record.PhoneNumber] = id
	return id, nil
}

// Get returns a stored record by id
func (m *MemoryStore) Get(id string) (models.SubmissionRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	return record, ok
}

func (m *MemoryStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func checkConstraints(r models.SubmissionRecord) error {
	violation := func(name string) error {
		return &Error{
			Code:    CodeCheckViolation,
			Message: fmt.Sprintf(`new row for relation "%s" violates check constraint "%s"`, SubmissionsTable, name),
		}
	}

	if r.IsLandlord == r.IsTenant {
		return violation("contact_form_submissions_one_variant")
	}
	if !models.Contains(models.DefaultFormOptions.Locations, r.Location) {
		return violation("contact_form_submissions_location_check")
	}
	if r.RentOutType != nil && !models.Contains(models.DefaultFormOptions.PropertyTypes, *r.RentOutType) {
		return violation("contact_form_submissions_rent_out_type_check")
	}
	if r.ActiveUnits != nil && !models.Contains(models.DefaultFormOptions.ActiveUnits, *r.ActiveUnits) {
		return violation("contact_form_submissions_activeunits_check")
	}
	if r.DateToMoveIn != nil && !models.Contains(models.DefaultFormOptions.MoveTimelines, *r.DateToMoveIn) {
		return violation("contact_form_submissions_date_to_move_in_check")
	}
	return nil
}
