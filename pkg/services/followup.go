package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"rentaid-waitlist/pkg/metrics"
	"rentaid-waitlist/pkg/models"
	"rentaid-waitlist/pkg/utils"
)

// FollowupEvent asks the messaging side to send the early-access WhatsApp message
type FollowupEvent struct {
	RecordID    string         `json:"record_id"`
	Variant     models.Variant `json:"variant"`
	PhoneNumber string         `json:"phone_number"`
	PhoneHash   string         `json:"phone_hash"`
	FullName    string         `json:"full_name"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// Publisher delivers an encoded event to a broker
type Publisher interface {
	Publish(ctx context.Context, routingKey, messageID string, body []byte) error
}

// FollowupService publishes a follow-up for every stored lead that opted in
// to WhatsApp contact. Publishing runs in the background and never changes
// the outcome of the submission.
type FollowupService struct {
	publisher  Publisher
	routingKey string
	timeout    time.Duration
	metrics    *metrics.SubmissionMetrics
	log        *zap.Logger
	now        func() time.Time
	wg         sync.WaitGroup
}

// NewFollowupService creates the service. A nil publisher disables publishing.
func NewFollowupService(publisher Publisher, routingKey string, m *metrics.SubmissionMetrics, log *zap.Logger) *FollowupService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FollowupService{
		publisher:  publisher,
		routingKey: routingKey,
		timeout:    8 * time.Second,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

func (s *FollowupService) LeadSubmitted(ctx context.Context, recordID string, form models.LeadForm) {
	contact := form.ContactDetails()
	phoneHash := utils.HashPhone(contact.WhatsApp)

	if !contact.WhatsAppConsent {
		s.log.Debug("Skipping follow-up, no WhatsApp consent", zap.String("phone_hash", phoneHash))
		s.metrics.ObserveFollowup("skipped")
		return
	}
	if s.publisher == nil {
		s.metrics.ObserveFollowup("disabled")
		return
	}

	event := FollowupEvent{
		RecordID:    recordID,
		Variant:     form.Variant(),
		PhoneNumber: contact.WhatsApp,
		PhoneHash:   phoneHash,
		FullName:    contact.FullName,
		SubmittedAt: s.now().UTC(),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		publishCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.publish(publishCtx, event); err != nil {
			s.log.Warn("Error publishing follow-up",
				zap.String("record_id", recordID),
				zap.String("phone_hash", phoneHash),
				zap.Error(err),
			)
			s.metrics.ObserveFollowup("failed")
			return
		}
		s.log.Info("Queued follow-up", zap.String("record_id", recordID), zap.String("phone_hash", phoneHash))
		s.metrics.ObserveFollowup("published")
	}()
}

func (s *FollowupService) publish(ctx context.Context, event FollowupEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, s.routingKey, event.RecordID, body)
}

// Wait blocks until in-flight publishes have finished
func (s *FollowupService) Wait() {
	s.wg.Wait()
}
