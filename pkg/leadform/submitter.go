package leadform

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rentaid-waitlist/pkg/models"
	"rentaid-waitlist/pkg/utils"
)

// Writer persists a canonical record and returns the new record id
type Writer interface {
	Submit(ctx context.Context, record models.SubmissionRecord) (string, error)
}

// Notifier is told about every record that was written
type Notifier interface {
	LeadSubmitted(ctx context.Context, recordID string, form models.LeadForm)
}

// Submitter runs validate, shape and write for a single form
type Submitter struct {
	validator *Validator
	writer    Writer
	notifier  Notifier
	log       *zap.Logger
}

// NewSubmitter wires the pipeline. notifier may be nil.
func NewSubmitter(validator *Validator, writer Writer, notifier Notifier, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Submitter{
		validator: validator,
		writer:    writer,
		notifier:  notifier,
		log:       log,
	}
}

// Submit validates the form, shapes it and hands it to the writer once
func (s *Submitter) Submit(ctx context.Context, form models.LeadForm) (id string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Unexpected error submitting form", zap.Any("panic", r))
			id, err = "", fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()

	log := s.log.With(
		zap.String("variant", string(form.Variant())),
		zap.String("phone_hash", utils.HashPhone(form.ContactDetails().WhatsApp)),
	)

	if err := s.validator.Validate(form); err != nil {
		log.Info("Form rejected by validation", zap.String("reason", err.Error()))
		return "", err
	}

	record := Shape(form)
	log.Debug("Submitting record", zap.String("location", record.Location))

	id, err = s.writer.Submit(ctx, record)
	if err != nil {
		return "", err
	}

	if s.notifier != nil {
		s.notifier.LeadSubmitted(ctx, id, form)
	}

	log.Info("Form submitted", zap.String("record_id", id))
	return id, nil
}
