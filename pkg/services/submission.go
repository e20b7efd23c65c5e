package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rentaid-waitlist/pkg/datastore"
	"rentaid-waitlist/pkg/leadform"
	"rentaid-waitlist/pkg/metrics"
	"rentaid-waitlist/pkg/models"
	"rentaid-waitlist/pkg/utils"
)

// SubmissionWriter checks the datastore is reachable and appends one record.
// A failed attempt is reported as-is; nothing is retried.
type SubmissionWriter interface {
	Submit(ctx context.Context, record models.SubmissionRecord) (string, error)
}

type submissionWriterImpl struct {
	store   datastore.Client
	table   string
	metrics *metrics.SubmissionMetrics
	log     *zap.Logger
}

// NewSubmissionWriter creates the writer for the given table. metrics may be nil.
func NewSubmissionWriter(
	store datastore.Client,
	table string,
	m *metrics.SubmissionMetrics,
	log *zap.Logger,
) SubmissionWriter {
	if table == "" {
		table = datastore.SubmissionsTable
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &submissionWriterImpl{
		store:   store,
		table:   table,
		metrics: m,
		log:     log,
	}
}

// Submit probes first and only inserts when the probe succeeds
func (w *submissionWriterImpl) Submit(ctx context.Context, record models.SubmissionRecord) (string, error) {
	start := time.Now()
	log := w.log.With(
		zap.String("variant", string(record.Variant())),
		zap.String("phone_hash", utils.HashPhone(record.PhoneNumber)),
	)

	log.Info("Processing submission", zap.String("table", w.table))

	if !w.store.TestConnection(ctx) {
		log.Warn("Datastore unreachable, insert not attempted")
		w.metrics.ObserveWrite(leadform.Kind(leadform.ErrUnreachable), time.Since(start))
		return "", leadform.ErrUnreachable
	}

	id, err := w.store.Insert(ctx, w.table, record)
	if err != nil {
		classified := classifyInsertError(err)
		log.Warn("Insert failed",
			zap.String("kind", leadform.Kind(classified)),
			zap.Error(err),
		)
		w.metrics.ObserveWrite(leadform.Kind(classified), time.Since(start))
		return "", classified
	}

	w.metrics.ObserveWrite(leadform.Kind(nil), time.Since(start))
	log.Info("Successfully stored submission", zap.String("record_id", id))
	return id, nil
}

func classifyInsertError(err error) error {
	var dsErr *datastore.Error
	if errors.As(err, &dsErr) {
		switch dsErr.Code {
		case datastore.CodeUniqueViolation:
			return fmt.Errorf("%w: %s", leadform.ErrDuplicatePhone, dsErr.Message)
		case datastore.CodeCheckViolation:
			return fmt.Errorf("%w: %s", leadform.ErrInvalidData, dsErr.Message)
		}
		return &leadform.StoreError{Message: dsErr.Message}
	}
	return &leadform.StoreError{Message: err.Error()}
}
