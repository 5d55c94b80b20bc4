package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"loan-marketplace-be/internal/dto"
)

// TopicApplicationSubmitted carries new applications to the notifier.
const TopicApplicationSubmitted = "application.submitted"

type IPublisherService interface {
	PublishApplicationSubmitted(ctx context.Context, msg *dto.ApplicationSubmittedMessage) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
	}
}

func (s *publisherService) PublishApplicationSubmitted(ctx context.Context, msg *dto.ApplicationSubmittedMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.pubSub.Publish(TopicApplicationSubmitted, message.NewMessage(watermill.NewUUID(), payload))
}
