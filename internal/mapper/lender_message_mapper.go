package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/model"
)

type LenderMessageMapper struct{}

func NewLenderMessageMapper() *LenderMessageMapper {
	return &LenderMessageMapper{}
}

func (m *LenderMessageMapper) ToEntity(msg *model.LenderMessage) *entity.LenderMessage {
	if msg == nil {
		return nil
	}

	var attachments []entity.MessageAttachment
	if len(msg.Attachments) > 0 {
		_ = json.Unmarshal(msg.Attachments, &attachments)
	}

	return &entity.LenderMessage{
		Id:               msg.Id,
		LenderId:         msg.LenderId,
		UserId:           msg.UserId,
		FromRole:         entity.MessageRole(msg.FromRole),
		Message:          msg.Message,
		Attachments:      attachments,
		IsSanctionLetter: msg.IsSanctionLetter,
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *LenderMessageMapper) ToModel(msg *entity.LenderMessage) *model.LenderMessage {
	if msg == nil {
		return nil
	}

	var attachments datatypes.JSON
	if msg.Attachments != nil {
		raw, _ := json.Marshal(msg.Attachments)
		attachments = raw
	}

	return &model.LenderMessage{
		Id:               msg.Id,
		LenderId:         msg.LenderId,
		UserId:           msg.UserId,
		FromRole:         string(msg.FromRole),
		Message:          msg.Message,
		Attachments:      attachments,
		IsSanctionLetter: msg.IsSanctionLetter,
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *LenderMessageMapper) ToEntities(msgs []*model.LenderMessage) []*entity.LenderMessage {
	entities := make([]*entity.LenderMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
