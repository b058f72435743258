package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/unitofwork"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the interaction topic and persists each turn
// as an interaction_logs row. Logging is asynchronous so a slow insert
// never delays the user-facing reply.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var payload interactionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal interaction", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"reply":  payload.Reply,
		"action": payload.Action,
		"source": payload.Source,
	})
	if err != nil {
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	record := &entity.InteractionLog{
		Id:           payload.InteractionId,
		SessionId:    payload.SessionId,
		UserMessage:  payload.UserMessage,
		ResponseJSON: responseJSON,
	}
	if err := uow.InteractionLogRepository().Create(ctx, record); err != nil {
		cs.logger.Error("consumer", "failed to persist interaction", map[string]interface{}{
			"interaction_id": payload.InteractionId.String(),
			"error":          err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
