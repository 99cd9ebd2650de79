package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"recruitment-platform/internal/domain"
	"recruitment-platform/internal/events"
	"recruitment-platform/pkg/apperror"
	"recruitment-platform/pkg/logger"
)

const maxMessageLength = 5000

type messageUsecase struct {
	messageRepo domain.MessageRepository
	userRepo    domain.UserRepository
	notifier    domain.Notifier
	publisher   domain.EventPublisher
}

func NewMessageUsecase(
	messageRepo domain.MessageRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	publisher domain.EventPublisher,
) domain.MessageUsecase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &messageUsecase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		publisher:   publisher,
	}
}

// GetConversation returns the caller's messages to other followed by other's
// messages to the caller. The two directions are concatenated, not merged by time.
func (uc *messageUsecase) GetConversation(ctx context.Context, who domain.Identity, otherUserID int64) ([]domain.Message, error) {
	if _, err := uc.userRepo.GetByID(ctx, otherUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	sent, err := uc.messageRepo.ListFromTo(ctx, who.UserID, otherUserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	received, err := uc.messageRepo.ListFromTo(ctx, otherUserID, who.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]domain.Message, 0, len(sent)+len(received))
	out = append(out, sent...)
	return append(out, received...), nil
}

// Send stores the message and then pushes it to the receiver. A failed push
// does not fail the send; the stored row is the source of truth.
func (uc *messageUsecase) Send(ctx context.Context, who domain.Identity, receiverID int64, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("Message content is required")
	}
	if len(content) > maxMessageLength {
		return nil, apperror.BadRequest("Message content is too long")
	}

	receiver, err := uc.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Receiver not found")
		}
		return nil, apperror.Internal(err)
	}

	msg := &domain.Message{
		SenderID:         who.UserID,
		ReceiverID:       receiver.ID,
		Content:          content,
		SentAt:           time.Now(),
		SenderUsername:   who.Username,
		ReceiverUsername: receiver.Username,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Receiver not found")
		}
		return nil, apperror.Internal(err)
	}

	if uc.notifier != nil {
		if err := uc.notifier.Notify(ctx, receiver.Username, msg); err != nil {
			logger.Log.Warn("realtime push failed", "message_id", msg.ID, "receiver", receiver.Username, "error", err)
		}
	}

	uc.publisher.Publish(ctx, domain.Event{
		Type:    domain.EventMessageSent,
		Key:     strconv.FormatInt(receiver.ID, 10),
		Payload: map[string]int64{"message_id": msg.ID, "sender_id": msg.SenderID, "receiver_id": msg.ReceiverID},
	})
	return msg, nil
}

// ListConversations keeps the newest message per counterpart, newest first.
func (uc *messageUsecase) ListConversations(ctx context.Context, who domain.Identity) ([]domain.Conversation, error) {
	msgs, err := uc.messageRepo.ListByParticipant(ctx, who.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	seen := make(map[int64]bool)
	conversations := make([]domain.Conversation, 0)
	for _, m := range msgs {
		otherID, otherName := m.ReceiverID, m.ReceiverUsername
		if m.ReceiverID == who.UserID {
			otherID, otherName = m.SenderID, m.SenderUsername
		}
		if seen[otherID] {
			continue
		}
		seen[otherID] = true
		conversations = append(conversations, domain.Conversation{
			UserID:      otherID,
			Username:    otherName,
			LastMessage: m,
		})
	}
	return conversations, nil
}
