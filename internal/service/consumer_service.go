package service

import (
	"context"
	"encoding/json"

	"study-assistant-be/internal/pkg/logger"
	"study-assistant-be/internal/repository/unitofwork"
	"study-assistant-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// FeedCollections are pushed to every socket right after it connects.
var FeedCollections = []string{
	CollectionStudySessions,
	CollectionSessionNotes,
	CollectionExams,
	CollectionGeneratedNotes,
}

// FeedSender delivers frames to the sockets of one user.
type FeedSender interface {
	SendToUser(userID uuid.UUID, frame websocket.Frame)
}

// IConsumerService turns collection change notifications into list snapshots.
type IConsumerService interface {
	Consume(ctx context.Context) error
	PushAll(ctx context.Context, userId uuid.UUID)
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	sender     FeedSender
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	sender FeedSender,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		sender:     sender,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Snapshots are rebuilt from storage, so a dropped message is never retried.
	defer msg.Ack()

	var payload CollectionChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("FEED", "Failed to unmarshal collection change", map[string]interface{}{"error": err.Error()})
		return
	}

	for _, collection := range payload.Collections {
		cs.push(ctx, payload.UserId, collection)
	}
}

func (cs *consumerService) PushAll(ctx context.Context, userId uuid.UUID) {
	for _, collection := range FeedCollections {
		cs.push(ctx, userId, collection)
	}
}

func (cs *consumerService) push(ctx context.Context, userId uuid.UUID, collection string) {
	items, err := listCollection(ctx, cs.uowFactory.NewUnitOfWork(ctx), userId, collection)
	if err != nil {
		cs.logger.Error("FEED", "Failed to build snapshot", map[string]interface{}{
			"user_id":    userId,
			"collection": collection,
			"error":      err.Error(),
		})
		return
	}

	cs.sender.SendToUser(userId, websocket.SnapshotFrame(collection, items))
	cs.logger.Info("FEED", "Snapshot pushed", map[string]interface{}{
		"user_id":    userId,
		"collection": collection,
		"items":      len(items),
	})
}
