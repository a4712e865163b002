package service

import (
	"context"
	"fmt"

	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/pkg/mailer"
	"study-assistant-be/pkg/events"
	pktNats "study-assistant-be/pkg/nats"
)

// EventSubscriber is implemented by the NATS subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler pktNats.EventHandler) error
}

// NotificationService reacts to domain events: welcome mails for new users
// and an activity trail for generated notes and finished exams.
type NotificationService struct {
	subscriber EventSubscriber
	mail       mailer.IEmailService
	logger     logger.ILogger
}

func NewNotificationService(sub EventSubscriber, mail mailer.IEmailService, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		mail:       mail,
		logger:     log,
	}
}

// Start registers one durable consumer per event type.
func (s *NotificationService) Start(ctx context.Context) error {
	handlers := map[string]pktNats.EventHandler{
		events.UserRegistered: s.HandleUserRegistered,
		events.NotesGenerated: s.HandleActivity,
		events.ExamCompleted:  s.HandleActivity,
	}

	for eventType, handler := range handlers {
		durable := "notification-" + eventType
		if err := s.subscriber.Subscribe(ctx, eventType, durable, handler); err != nil {
			return fmt.Errorf("subscribe %s: %w", eventType, err)
		}
	}

	s.logger.Info("NotificationService", "Notification service started", nil)
	return nil
}

func (s *NotificationService) HandleUserRegistered(ctx context.Context, event events.Event) error {
	email := events.String(event, "email")
	if email == "" {
		s.logger.Warn("NotificationService", "USER_REGISTERED without email, skipping", nil)
		return nil
	}

	if err := s.mail.SendWelcome(email, events.String(event, "display_name")); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}

	s.logger.Info("NotificationService", "Welcome mail sent", map[string]interface{}{
		"user_id": events.String(event, "user_id"),
	})
	return nil
}

func (s *NotificationService) HandleActivity(ctx context.Context, event events.Event) error {
	s.logger.Info("ACTIVITY", event.EventType(), event.Payload())
	return nil
}
