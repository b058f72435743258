package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/internal/dto"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/pkg/assistant/intent"
	"shop-assistant-be/pkg/assistant/resolver"
	"shop-assistant-be/pkg/assistant/session"
)

type IChatService interface {
	HandleMessage(ctx context.Context, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error)
}

// TurnResolver is the state machine a chat turn runs through.
type TurnResolver interface {
	HandleTurn(ctx context.Context, sessionID, message string) (*resolver.TurnResult, error)
}

// IMessageDeduper claims webhook message ids so transport retries of an
// already-answered delivery are not re-processed. A claim must be
// released when the turn fails, so the retry can run the turn again.
type IMessageDeduper interface {
	Claim(ctx context.Context, messageID string) bool
	Release(ctx context.Context, messageID string)
}

// interactionMessage is the payload the consumer persists asynchronously.
type interactionMessage struct {
	InteractionId uuid.UUID `json:"interaction_id"`
	SessionId     string    `json:"session_id"`
	UserMessage   string    `json:"user_message"`
	Reply         string    `json:"reply"`
	Action        string    `json:"action"`
	Source        string    `json:"source,omitempty"`
}

// chatService owns one conversational turn end to end: per-session
// serialization, webhook dedup, state resolution, async interaction
// logging.
type chatService struct {
	resolver         TurnResolver
	locker           *session.Locker
	deduper          IMessageDeduper
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewChatService(
	res TurnResolver,
	locker *session.Locker,
	deduper IMessageDeduper,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		resolver:         res,
		locker:           locker,
		deduper:          deduper,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *chatService) HandleMessage(ctx context.Context, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	claimed := false
	if req.MessageId != "" {
		if !s.deduper.Claim(ctx, req.MessageId) {
			s.logger.Info("chat", "duplicate message delivery ignored", map[string]interface{}{
				"session_id": req.SessionId,
				"message_id": req.MessageId,
			})
			return &dto.ChatMessageResponse{SessionId: req.SessionId, Duplicate: true}, nil
		}
		claimed = true
	}

	// One turn per session at a time: the read-decide-write sequence
	// against the context store must not interleave.
	unlock := s.locker.Lock(req.SessionId)
	defer unlock()

	result, err := s.resolver.HandleTurn(ctx, req.SessionId, req.Message)
	if err != nil {
		// The turn produced nothing. Releasing the claim lets the
		// transport's retry of this message id run the turn again
		// instead of being swallowed as a duplicate.
		if claimed {
			s.deduper.Release(ctx, req.MessageId)
		}
		return nil, err
	}

	interactionId := uuid.New()
	s.publishInteraction(ctx, interactionMessage{
		InteractionId: interactionId,
		SessionId:     req.SessionId,
		UserMessage:   req.Message,
		Reply:         result.Reply,
		Action:        result.Action,
		Source:        result.ClassifierSource,
	})

	return &dto.ChatMessageResponse{
		SessionId:        req.SessionId,
		Reply:            result.Reply,
		Action:           result.Action,
		ClassifierSource: result.ClassifierSource,
		InteractionId:    interactionId,
	}, nil
}

// redisMessageDeduper claims message ids with SETNX. Redis being down
// degrades to processing the message; the additive cart contract and
// context dedup bound the damage of a rare duplicate.
type redisMessageDeduper struct {
	client *redis.Client
	logger logger.ILogger
}

func NewMessageDeduper(client *redis.Client, log logger.ILogger) IMessageDeduper {
	return &redisMessageDeduper{client: client, logger: log}
}

func (d *redisMessageDeduper) Claim(ctx context.Context, messageID string) bool {
	if d.client == nil {
		return true
	}
	ok, err := d.client.SetNX(ctx, "chat:msg:"+messageID, 1, 24*time.Hour).Result()
	if err != nil {
		d.logger.Warn("chat", "message dedup unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return true
	}
	return ok
}

func (d *redisMessageDeduper) Release(ctx context.Context, messageID string) {
	if d.client == nil {
		return
	}
	if err := d.client.Del(ctx, "chat:msg:"+messageID).Err(); err != nil {
		d.logger.Warn("chat", "failed to release message claim", map[string]interface{}{
			"message_id": messageID,
			"error":      err.Error(),
		})
	}
}

func (s *chatService) publishInteraction(ctx context.Context, msg interactionMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("chat", "failed to marshal interaction", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("chat", "failed to publish interaction", map[string]interface{}{
			"session_id": msg.SessionId,
			"error":      err.Error(),
		})
	}
}

// classifierAdapter bridges the intent package to the resolver's
// Decision type.
type classifierAdapter struct {
	classifier *intent.Classifier
}

func NewClassifierAdapter(classifier *intent.Classifier) resolver.Classifier {
	return &classifierAdapter{classifier: classifier}
}

func (a *classifierAdapter) Classify(ctx context.Context, message string) resolver.Decision {
	call := a.classifier.Classify(ctx, message)
	decision := resolver.Decision{
		ToolName: call.ToolName,
		Source:   call.Source,
	}
	switch call.ToolName {
	case constant.ToolSearchProducts:
		decision.Query = call.Query()
		decision.OffersOnly = call.OffersOnly()
		decision.Sort = call.Sort()
	case constant.ToolSmallTalk:
		if reply, ok := call.Parameters["reply"].(string); ok {
			decision.Reply = reply
		}
	}
	return decision
}
