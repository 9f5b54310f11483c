package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devblog/pkg/logger"
	"devblog/pkg/models"

	"github.com/google/uuid"
)

var ErrInvalidContact = errors.New("invalid contact message")

// ContactService simulates delivery of contact form messages. Nothing is
// sent or stored; a valid message always succeeds after Delay.
type ContactService struct {
	Delay time.Duration
	now   func() time.Time
}

func NewContactService(delay time.Duration) *ContactService {
	return &ContactService{Delay: delay, now: time.Now}
}

func ValidateContact(msg models.ContactMessage) error {
	fields := []struct{ name, value string }{
		{"name", msg.Name}, {"email", msg.Email}, {"subject", msg.Subject}, {"message", msg.Message},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidContact, strings.Join(missing, ", "))
	}
	if !IsValidEmail(msg.Email) {
		return fmt.Errorf("%w: malformed email", ErrInvalidContact)
	}
	return nil
}

// Submit waits out the simulated delay and returns a receipt. It returns
// ctx.Err() if the context ends first.
func (s *ContactService) Submit(ctx context.Context, msg models.ContactMessage) (models.ContactReceipt, error) {
	if err := ValidateContact(msg); err != nil {
		return models.ContactReceipt{}, err
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.ContactReceipt{}, ctx.Err()
		case <-timer.C:
		}
	}

	now := s.now
	if now == nil {
		now = time.Now
	}
	receipt := models.ContactReceipt{
		ID:         uuid.NewString(),
		ReceivedAt: now().UTC().Format(time.RFC3339),
	}
	logger.Infof("contact: accepted message %s from %s (subject %q)", receipt.ID, msg.Email, msg.Subject)
	return receipt, nil
}
