package service

import (
	"context"
	"strings"

	"github.com/lalith-99/lockerroom/internal/apperr"
	"github.com/lalith-99/lockerroom/internal/models"
	"github.com/lalith-99/lockerroom/internal/pagination"
	"github.com/lalith-99/lockerroom/internal/realtime"
	"github.com/lalith-99/lockerroom/internal/repository"
)

type MessageInput struct {
	Content string `json:"content" validate:"required"`
}

// MessageService posts, lists and moderates team messages.
type MessageService struct {
	authority *MembershipAuthority
	messages  repository.TeamMessageRepository
	parser    pagination.Parser
	cursor    *pagination.Cursor
	events    Publisher
}

func NewMessageService(
	authority *MembershipAuthority,
	messages repository.TeamMessageRepository,
	parser pagination.Parser,
	cursor *pagination.Cursor,
	events Publisher,
) *MessageService {
	return &MessageService{
		authority: authority,
		messages:  messages,
		parser:    parser,
		cursor:    cursor,
		events:    publisherOrNop(events),
	}
}

// Create posts a message as user. The author's current nickname is copied
// onto the message. Surrounding whitespace is dropped, so blank content is
// rejected as empty.
func (s *MessageService) Create(ctx context.Context, user *models.User, teamID int64, in MessageInput) (*models.TeamMessage, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	in.Content = strings.TrimSpace(in.Content)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	team, err := s.authority.RequireMember(ctx, user, teamID)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.Create(ctx, team.ID, user.ID, user.Nickname, in.Content)
	if err != nil {
		return nil, internal("failed to create message", err)
	}

	s.events.Publish(team.ID, realtime.Event{Type: realtime.EventMessageCreated, MessageID: msg.ID, Message: msg})
	return msg, nil
}

// List returns one page of the team's messages, newest first.
func (s *MessageService) List(ctx context.Context, user *models.User, teamID int64, rawPage, rawPageSize string) (*models.Page[models.TeamMessage], error) {
	team, err := s.authority.RequireMember(ctx, user, teamID)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, team.ID, s.parser.Parse(rawPage, rawPageSize))
}

// Next serves the page after the one user last read from this team, unless
// rawPage names one explicitly. The cursor only moves once the page has been
// read, so a failed listing is retried at the same page.
func (s *MessageService) Next(ctx context.Context, user *models.User, teamID int64, rawPage, rawPageSize string) (*models.Page[models.TeamMessage], error) {
	team, err := s.authority.RequireMember(ctx, user, teamID)
	if err != nil {
		return nil, err
	}

	page, err := s.cursor.Resolve(ctx, user.ID, team.ID, rawPage)
	if err != nil {
		return nil, internal("failed to read page cursor", err)
	}

	params := s.parser.Parse("", rawPageSize)
	params.Page = min(page, pagination.MaxPage(params.PageSize))
	result, err := s.page(ctx, team.ID, params)
	if err != nil {
		return nil, err
	}
	if err := s.cursor.Commit(ctx, user.ID, team.ID, params.Page); err != nil {
		return nil, internal("failed to advance page cursor", err)
	}
	return result, nil
}

func (s *MessageService) page(ctx context.Context, teamID int64, params pagination.Params) (*models.Page[models.TeamMessage], error) {
	items, total, err := s.messages.ListByTeam(ctx, teamID, params.Limit(), params.Offset())
	if err != nil {
		return nil, internal("failed to list messages", err)
	}
	if items == nil {
		items = []models.TeamMessage{}
	}
	return &models.Page[models.TeamMessage]{
		Items:       items,
		TotalItems:  total,
		TotalPages:  pagination.TotalPages(total, params.PageSize),
		CurrentPage: params.Page,
		PageSize:    params.PageSize,
	}, nil
}

// load resolves the team and message for a mutation and applies the
// admin-or-author rule.
func (s *MessageService) load(ctx context.Context, user *models.User, teamID, messageID int64) (*models.Team, *models.TeamMessage, error) {
	team, err := s.authority.Team(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}
	msg, err := s.messages.GetByID(ctx, team.ID, messageID)
	if err != nil {
		return nil, nil, internal("failed to load message", err)
	}
	if msg == nil {
		return nil, nil, apperr.NotFound("message not found")
	}
	if !canModerate(user, team, msg) {
		return nil, nil, apperr.Forbidden("only the author or the team admin can change this message")
	}
	return team, msg, nil
}

func (s *MessageService) Edit(ctx context.Context, user *models.User, teamID, messageID int64, in MessageInput) (*models.TeamMessage, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	in.Content = strings.TrimSpace(in.Content)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	team, msg, err := s.load(ctx, user, teamID, messageID)
	if err != nil {
		return nil, err
	}

	updated, err := s.messages.UpdateContent(ctx, team.ID, msg.ID, in.Content)
	if err != nil {
		return nil, internal("failed to update message", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("message not found")
	}

	s.events.Publish(team.ID, realtime.Event{Type: realtime.EventMessageUpdated, MessageID: updated.ID, Message: updated})
	return updated, nil
}

func (s *MessageService) Delete(ctx context.Context, user *models.User, teamID, messageID int64) error {
	if err := requireUser(user); err != nil {
		return err
	}
	team, msg, err := s.load(ctx, user, teamID, messageID)
	if err != nil {
		return err
	}

	if err := s.messages.Delete(ctx, team.ID, msg.ID); err != nil {
		return internal("failed to delete message", err)
	}

	s.events.Publish(team.ID, realtime.Event{Type: realtime.EventMessageDeleted, MessageID: msg.ID})
	return nil
}
