package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/pkg/mailer"
	"loan-marketplace-be/internal/repository/specification"
	"loan-marketplace-be/internal/repository/unitofwork"
	"loan-marketplace-be/internal/websocket"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	hub          *websocket.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	hub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		hub:          hub,
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
	var payload dto.ApplicationSubmittedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Notifying lender %s of application %s", payload.LenderId, payload.ApplicationId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	lender, err := uow.LenderRepository().FindOne(ctx, specification.ByID{ID: payload.LenderId})
	if err != nil {
		log.Printf("[ERROR] Failed to get lender %s: %v", payload.LenderId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if lender == nil {
		log.Printf("[ERROR] Lender not found: %s", payload.LenderId)
		msg.Ack() // Lender deleted? Ack.
		return
	}

	if cs.hub != nil {
		cs.hub.Push(payload.LenderId, "application_submitted", payload)
	}

	if err := cs.emailService.SendApplicationAlert(lender.Email, payload.ApplicantName, payload.LoanType, payload.UserScore); err != nil {
		log.Printf("[ERROR] Failed to send application alert to %s: %v", lender.Email, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Lender %s notified of application %s", payload.LenderId, payload.ApplicationId)
	msg.Ack()
}
