package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/pkg/logger"
	"loan-marketplace-be/internal/repository/session"
	"loan-marketplace-be/internal/repository/specification"
	"loan-marketplace-be/internal/repository/unitofwork"
)

type IMessageService interface {
	SendFromLender(ctx context.Context, lenderId uuid.UUID, req *dto.SendLenderMessageRequest) (*dto.MessageResponse, error)
	SendFromUser(ctx context.Context, req *dto.SendUserMessageRequest) (*dto.MessageResponse, error)
	LenderConversation(ctx context.Context, lenderId, userId uuid.UUID) (*dto.ConversationResponse, error)
	UserConversation(ctx context.Context, userId, lenderId uuid.UUID) (*dto.ConversationResponse, error)
}

type messageService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionStore session.IStore
	log          logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	sessionStore session.IStore,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:   uowFactory,
		sessionStore: sessionStore,
		log:          log,
	}
}

func (s *messageService) SendFromLender(ctx context.Context, lenderId uuid.UUID, req *dto.SendLenderMessageRequest) (*dto.MessageResponse, error) {
	userId, err := uuid.Parse(req.UserId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid userId")
	}

	msg := &entity.LenderMessage{
		Id:               uuid.New(),
		LenderId:         lenderId,
		UserId:           userId,
		FromRole:         entity.MessageRoleLender,
		Message:          req.Message,
		Attachments:      req.Attachments,
		IsSanctionLetter: req.IsSanctionLetter,
		CreatedAt:        time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LenderMessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}

	return toMessageResponse(msg), nil
}

func (s *messageService) SendFromUser(ctx context.Context, req *dto.SendUserMessageRequest) (*dto.MessageResponse, error) {
	lenderId, err := uuid.Parse(req.LenderId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid lenderId")
	}

	userId, err := s.resolveSender(ctx, req)
	if err != nil {
		return nil, err
	}

	msg := &entity.LenderMessage{
		Id:        uuid.New(),
		LenderId:  lenderId,
		UserId:    userId,
		FromRole:  entity.MessageRoleUser,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LenderMessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}

	return toMessageResponse(msg), nil
}

// resolveSender prefers the session's registered user and falls back to an
// explicit userId for clients that lost their session.
func (s *messageService) resolveSender(ctx context.Context, req *dto.SendUserMessageRequest) (uuid.UUID, error) {
	sess, err := s.sessionStore.Get(ctx, req.SessionId)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		s.log.Warn("MessageService", "session lookup failed", map[string]interface{}{
			"sessionId": req.SessionId,
			"error":     err.Error(),
		})
	}
	if sess != nil && sess.UserId != "" {
		if id, err := uuid.Parse(sess.UserId); err == nil {
			return id, nil
		}
	}
	if req.UserId != "" {
		if id, err := uuid.Parse(req.UserId); err == nil {
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User not identified")
}

func (s *messageService) LenderConversation(ctx context.Context, lenderId, userId uuid.UUID) (*dto.ConversationResponse, error) {
	return s.conversation(ctx, lenderId, userId, false)
}

func (s *messageService) UserConversation(ctx context.Context, userId, lenderId uuid.UUID) (*dto.ConversationResponse, error) {
	return s.conversation(ctx, lenderId, userId, true)
}

func (s *messageService) conversation(ctx context.Context, lenderId, userId uuid.UUID, withLenderName bool) (*dto.ConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msgs, err := uow.LenderMessageRepository().FindAll(ctx,
		specification.ConversationBetween{LenderId: lenderId.String(), UserId: userId.String()},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConversationResponse{
		Messages: make([]dto.MessageResponse, 0, len(msgs)),
	}
	for _, msg := range msgs {
		resp.Messages = append(resp.Messages, *toMessageResponse(msg))
	}

	if withLenderName {
		if lender, err := uow.LenderRepository().FindOne(ctx, specification.ByID{ID: lenderId}); err == nil && lender != nil {
			resp.LenderName = lender.CompanyName
			if resp.LenderName == "" {
				resp.LenderName = lender.Name
			}
		}
	}

	return resp, nil
}

func toMessageResponse(msg *entity.LenderMessage) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:               msg.Id,
		LenderId:         msg.LenderId,
		UserId:           msg.UserId,
		IsLender:         msg.FromRole == entity.MessageRoleLender,
		Message:          msg.Message,
		Attachments:      msg.Attachments,
		IsSanctionLetter: msg.IsSanctionLetter,
		CreatedAt:        msg.CreatedAt,
	}
}
