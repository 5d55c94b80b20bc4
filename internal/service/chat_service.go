package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/pkg/logger"
	"loan-marketplace-be/internal/repository/session"
	"loan-marketplace-be/pkg/chatflow"
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetSession(ctx context.Context, sessionId string) (*chatflow.Session, error)
}

type chatService struct {
	machine      *chatflow.Machine
	sessionStore session.IStore
	log          logger.ILogger
}

func NewChatService(machine *chatflow.Machine, sessionStore session.IStore, log logger.ILogger) IChatService {
	return &chatService{
		machine:      machine,
		sessionStore: sessionStore,
		log:          log,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	sess, err := s.sessionStore.Get(ctx, req.SessionId)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			s.log.Warn("ChatService", "session load failed, starting fresh", map[string]interface{}{
				"sessionId": req.SessionId,
				"error":     err.Error(),
			})
		}
		sess = chatflow.NewSession(req.SessionId)
	}

	response, err := s.machine.Advance(ctx, sess, *req.Message)
	if err != nil {
		// The turn failed; the session stays at its previous saved state so
		// the user can simply retry.
		s.log.Error("ChatService", "turn failed", map[string]interface{}{
			"sessionId": req.SessionId,
			"step":      string(sess.CurrentStep),
			"error":     err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}

	if err := s.sessionStore.Save(ctx, sess); err != nil {
		s.log.Error("ChatService", "session save failed", map[string]interface{}{
			"sessionId": req.SessionId,
			"error":     err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
	}

	lenders := sess.Context.MatchingLenders
	if lenders == nil {
		lenders = []entity.LoanOffer{}
	}

	return &dto.ChatResponse{
		Response:        response,
		CurrentStep:     string(sess.CurrentStep),
		Context:         sess.Context,
		MatchingLenders: lenders,
	}, nil
}

func (s *chatService) GetSession(ctx context.Context, sessionId string) (*chatflow.Session, error) {
	sess, err := s.sessionStore.Get(ctx, sessionId)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return nil, err
	}
	return sess, nil
}
