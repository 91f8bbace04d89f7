package service

import (
	"context"
	"strings"

	"github.com/lalith-99/lockerroom/internal/apperr"
	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/pagination"
	"github.com/lalith-99/lockerroom/internal/repository"
)

type DirectMessageInput struct {
	Receiver string `json:"receiver" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// DirectMessageService handles user-to-user messages. Only the sender may
// change or remove a message; the receiver can read it and nothing else.
type DirectMessageService struct {
	users    repository.UserRepository
	messages repository.DirectMessageRepository
	parser   pagination.Parser
}

func NewDirectMessageService(users repository.UserRepository, messages repository.DirectMessageRepository, parser pagination.Parser) *DirectMessageService {
	return &DirectMessageService{users: users, messages: messages, parser: parser}
}

// Send delivers to the user whose nickname is in.Receiver.
func (s *DirectMessageService) Send(ctx context.Context, user *models.User, in DirectMessageInput) (*models.DirectMessage, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	in.Receiver = strings.TrimSpace(in.Receiver)
	in.Content = strings.TrimSpace(in.Content)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	receiver, err := s.users.GetByNickname(ctx, in.Receiver)
	if err != nil {
		return nil, internal("failed to look up receiver", err)
	}
	if receiver == nil {
		return nil, apperr.Validation("receiver not found")
	}

	msg, err := s.messages.Create(ctx, user, receiver, in.Content)
	if err != nil {
		return nil, internal("failed to send message", err)
	}
	return msg, nil
}

// List pages through everything user sent or received.
func (s *DirectMessageService) List(ctx context.Context, user *models.User, rawPage, rawPageSize string) (*models.Page[models.DirectMessage], error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	params := s.parser.Parse(rawPage, rawPageSize)

	items, total, err := s.messages.ListForUser(ctx, user.ID, params.Limit(), params.Offset())
	if err != nil {
		return nil, internal("failed to list messages", err)
	}
	if items == nil {
		items = []models.DirectMessage{}
	}
	return &models.Page[models.DirectMessage]{
		Items:       items,
		TotalItems:  total,
		TotalPages:  pagination.TotalPages(total, params.PageSize),
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
	}, nil
}

func (s *DirectMessageService) ownMessage(ctx context.Context, user *models.User, messageID int64) (*models.DirectMessage, error) {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, internal("failed to load message", err)
	}
	if msg == nil {
		return nil, apperr.NotFound("message not found")
	}
	if msg.SenderID != user.ID {
		return nil, apperr.Forbidden("only the sender can change this message")
	}
	return msg, nil
}

func (s *DirectMessageService) Edit(ctx context.Context, user *models.User, messageID int64, in MessageInput) (*models.DirectMessage, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	in.Content = strings.TrimSpace(in.Content)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	msg, err := s.ownMessage(ctx, user, messageID)
	if err != nil {
		return nil, err
	}

	updated, err := s.messages.UpdateContent(ctx, msg.ID, in.Content)
	if err != nil {
		return nil, internal("failed to update message", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("message not found")
	}
	return updated, nil
}

func (s *DirectMessageService) Delete(ctx context.Context, user *models.User, messageID int64) error {
	if err := requireUser(user); err != nil {
		return err
	}
	msg, err := s.ownMessage(ctx, user, messageID)
	if err != nil {
		return err
	}
	if err := s.messages.Delete(ctx, msg.ID); err != nil {
		return internal("failed to delete message", err)
	}
	return nil
}
