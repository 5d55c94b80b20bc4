package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"loan-marketplace-be/internal/dto"
	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/internal/pkg/logger"
	"loan-marketplace-be/internal/repository/session"
	"loan-marketplace-be/internal/repository/unitofwork"
	"loan-marketplace-be/pkg/chatflow"
	"loan-marketplace-be/pkg/extraction"
)

type IDocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentRequest, fileName, mimeType string, fileData []byte) (*dto.UploadDocumentResponse, error)
}

type documentService struct {
	uowFactory   unitofwork.RepositoryFactory
	sessionStore session.IStore
	extractor    extraction.Provider
	log          logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	sessionStore session.IStore,
	extractor extraction.Provider,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:   uowFactory,
		sessionStore: sessionStore,
		extractor:    extractor,
		log:          log,
	}
}

func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest, fileName, mimeType string, fileData []byte) (*dto.UploadDocumentResponse, error) {
	docType, ok := entity.ParseDocumentType(req.DocumentType)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown document type")
	}

	sess, err := s.sessionStore.Get(ctx, req.SessionId)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return nil, err
	}

	userId, err := uuid.Parse(sess.UserId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid userId")
	}

	extracted, err := s.extractor.ExtractDocument(ctx, fileData, mimeType, docType)
	if err != nil {
		s.log.Error("DocumentService", "document extraction failed", map[string]interface{}{
			"sessionId":    req.SessionId,
			"documentType": string(docType),
			"error":        err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to process document")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc := &entity.KycDocument{
		Id:            uuid.New(),
		UserId:        userId,
		Type:          docType,
		FileUrl:       fmt.Sprintf("/uploads/%s/%s", req.SessionId, fileName),
		ExtractedData: *extracted,
		UploadedAt:    time.Now(),
	}
	if err := uow.KycDocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	// Track checklist progress on the session; re-uploads replace the entry
	// so completion stays set-based.
	upsertUploadedDocument(sess, string(docType), doc.FileUrl)
	if err := s.sessionStore.Save(ctx, sess); err != nil {
		return nil, err
	}

	displayName := entity.DocumentDisplayNames[docType]
	summary := extractionSummary(extracted)

	message := fmt.Sprintf("%s uploaded and processed successfully!", displayName)
	if summary != "" {
		message += "\n\nExtracted information:\n" + summary
	}

	return &dto.UploadDocumentResponse{
		Success:       true,
		ExtractedData: extracted,
		DocumentName:  displayName,
		Summary:       summary,
		Message:       message,
	}, nil
}

func upsertUploadedDocument(sess *chatflow.Session, docType, fileUrl string) {
	if sess.Context.UploadedDocuments == nil {
		sess.Context.UploadedDocuments = []chatflow.UploadedDocument{}
	}
	entry := chatflow.UploadedDocument{
		Type:       docType,
		Url:        fileUrl,
		UploadedAt: time.Now(),
	}
	for i, existing := range sess.Context.UploadedDocuments {
		if existing.Type == docType {
			sess.Context.UploadedDocuments[i] = entry
			return
		}
	}
	sess.Context.UploadedDocuments = append(sess.Context.UploadedDocuments, entry)
}

func extractionSummary(data *entity.ExtractedData) string {
	var b strings.Builder
	if data.Name != "" {
		fmt.Fprintf(&b, "Name: %s\n", data.Name)
	}
	if data.AadharNumber != "" {
		fmt.Fprintf(&b, "Aadhar: %s\n", data.AadharNumber)
	}
	if data.PanNumber != "" {
		fmt.Fprintf(&b, "PAN: %s\n", data.PanNumber)
	}
	if data.IncomeSummary != nil && data.IncomeSummary.MonthlyIncome > 0 {
		fmt.Fprintf(&b, "Monthly Income: ₹%s\n", chatflow.FormatRupees(data.IncomeSummary.MonthlyIncome))
	}
	return strings.TrimSpace(b.String())
}
