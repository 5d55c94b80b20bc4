package extraction

import (
	"context"
	"errors"

	"loan-marketplace-be/internal/entity"
)

// FieldKind identifies which structured field to pull out of an utterance.
type FieldKind string

const (
	FieldName       FieldKind = "name"
	FieldLoanType   FieldKind = "loan_type"
	FieldLoanAmount FieldKind = "loan_amount"
	FieldPhoneOrPan FieldKind = "phone_or_pan"
)

// FieldResult is a confidence-scored extraction outcome. An empty Value with
// a nil error means the model answered but found nothing; provider failures
// are returned as errors so callers can decide between fallback and abort.
type FieldResult struct {
	Value      string
	Confidence float64
}

// ErrNotConfigured is returned when the selected backend has no credentials.
var ErrNotConfigured = errors.New("extraction provider not configured")

// Provider abstracts "understand this utterance" and "understand this
// document image" over interchangeable model backends.
type Provider interface {
	// ExtractField pulls one structured field out of free text.
	ExtractField(ctx context.Context, text string, kind FieldKind) (*FieldResult, error)

	// ExtractDocument reads a document image and returns its typed fields.
	ExtractDocument(ctx context.Context, fileData []byte, mimeType string, docType entity.DocumentType) (*entity.ExtractedData, error)
}
