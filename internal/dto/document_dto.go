package dto

import "loan-marketplace-be/internal/entity"

// UploadDocumentRequest is parsed from multipart form fields; the file part
// travels separately.
type UploadDocumentRequest struct {
	SessionId    string `form:"sessionId" validate:"required"`
	DocumentType string `form:"documentType" validate:"required"`
}

type UploadDocumentResponse struct {
	Success       bool                  `json:"success"`
	ExtractedData *entity.ExtractedData `json:"extractedData"`
	DocumentName  string                `json:"documentName"`
	Summary       string                `json:"summary"`
	Message       string                `json:"message"`
}
