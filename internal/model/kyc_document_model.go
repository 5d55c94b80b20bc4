package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type KycDocument struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Type          string    `gorm:"type:varchar(30);not null;index"`
	FileUrl       string    `gorm:"type:text"`
	ExtractedData datatypes.JSON
	UploadedAt    time.Time `gorm:"autoCreateTime"`
}

func (KycDocument) TableName() string {
	return "kyc_documents"
}
