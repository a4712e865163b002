package service

import (
	"context"
	"encoding/json"

	"study-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// CollectionChangedMessage tells the feed which lists of a user went stale.
type CollectionChangedMessage struct {
	UserId      uuid.UUID `json:"user_id"`
	Collections []string  `json:"collections"`
}

// IPublisherService puts change notifications on the in-process bus.
type IPublisherService interface {
	CollectionChanged(ctx context.Context, userId uuid.UUID, collections ...string)
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	logger    logger.ILogger
}

func NewPublisherService(topicName string, publisher message.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		logger:    log,
	}
}

// CollectionChanged never fails the caller; a lost notification only delays the sidebar.
func (s *publisherService) CollectionChanged(ctx context.Context, userId uuid.UUID, collections ...string) {
	payload, err := json.Marshal(CollectionChangedMessage{UserId: userId, Collections: collections})
	if err != nil {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := s.publisher.Publish(s.topicName, msg); err != nil {
		s.logger.Warn("PUBLISHER", "Failed to publish collection change", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}
