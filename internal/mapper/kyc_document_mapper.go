package mapper

import (
	"encoding/json"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/model"
)

type KycDocumentMapper struct{}

func NewKycDocumentMapper() *KycDocumentMapper {
	return &KycDocumentMapper{}
}

func (m *KycDocumentMapper) ToEntity(d *model.KycDocument) *entity.KycDocument {
	if d == nil {
		return nil
	}

	var extracted entity.ExtractedData
	if len(d.ExtractedData) > 0 {
		_ = json.Unmarshal(d.ExtractedData, &extracted)
	}

	return &entity.KycDocument{
		Id:            d.Id,
		UserId:        d.UserId,
		Type:          entity.DocumentType(d.Type),
		FileUrl:       d.FileUrl,
		ExtractedData: extracted,
		UploadedAt:    d.UploadedAt,
	}
}

func (m *KycDocumentMapper) ToModel(d *entity.KycDocument) *model.KycDocument {
	if d == nil {
		return nil
	}

	raw, _ := json.Marshal(d.ExtractedData)

	return &model.KycDocument{
		Id:            d.Id,
		UserId:        d.UserId,
		Type:          string(d.Type),
		FileUrl:       d.FileUrl,
		ExtractedData: raw,
		UploadedAt:    d.UploadedAt,
	}
}

func (m *KycDocumentMapper) ToEntities(docs []*model.KycDocument) []*entity.KycDocument {
	entities := make([]*entity.KycDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
