package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"loan-marketplace-be/internal/entity"
	"loan-marketplace-be/pkg/extraction"
)

// GeminiProvider talks to the hosted Gemini generateContent API and parses
// the JSON answers the extraction prompts demand.
type GeminiProvider struct {
	ApiKey     string
	ModelName  string
	Client     *http.Client
	MaxRetries int
	BaseDelay  time.Duration
}

var _ extraction.Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-1.5-pro"
	}
	return &GeminiProvider{
		ApiKey:     apiKey,
		ModelName:  modelName,
		Client:     &http.Client{Timeout: 60 * time.Second},
		MaxRetries: 3,
		BaseDelay:  time.Second,
	}
}

// --- Request/Response structs (internal to this package) ---

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) ExtractField(ctx context.Context, text string, kind extraction.FieldKind) (*extraction.FieldResult, error) {
	if p.ApiKey == "" {
		return nil, extraction.ErrNotConfigured
	}

	prompt, err := fieldPrompt(text, kind)
	if err != nil {
		return nil, err
	}

	raw, err := p.generate(ctx, []geminiPart{{Text: prompt}})
	if err != nil {
		return nil, err
	}

	parsed, err := decodeJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("gemini %s extraction: %w", kind, err)
	}

	value := pickFieldValue(parsed, kind)
	confidence := 0.0
	if value != "" {
		confidence = 0.9
	}
	return &extraction.FieldResult{Value: value, Confidence: confidence}, nil
}

func (p *GeminiProvider) ExtractDocument(ctx context.Context, fileData []byte, mimeType string, docType entity.DocumentType) (*entity.ExtractedData, error) {
	if p.ApiKey == "" {
		return nil, extraction.ErrNotConfigured
	}

	parts := []geminiPart{
		{Text: documentPrompt(docType)},
		{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(fileData),
		}},
	}

	raw, err := p.generate(ctx, parts)
	if err != nil {
		return nil, err
	}

	cleaned, err := extractJSONBlock(raw)
	if err != nil {
		return nil, fmt.Errorf("gemini document extraction: %w", err)
	}

	var data entity.ExtractedData
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("gemini document extraction: invalid JSON: %w", err)
	}
	return &data, nil
}

// generate sends one generateContent call, retrying with exponential backoff
// on rate-limit-class failures only.
func (p *GeminiProvider) generate(ctx context.Context, parts []geminiPart) (string, error) {
	var lastErr error

	for attempt := 0; attempt < p.MaxRetries; attempt++ {
		text, err := p.generateOnce(ctx, parts)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isRateLimit(err) || attempt == p.MaxRetries-1 {
			return "", err
		}

		delay := p.BaseDelay * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", lastErr
}

func (p *GeminiProvider) generateOnce(ctx context.Context, parts []geminiPart) (string, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: parts, Role: "user"}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent",
		p.ModelName,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error: status %d, body: %s", res.StatusCode, string(body))
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(body, &geminiRes); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(geminiRes.Candidates) == 0 || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}

func isRateLimit(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "status 429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "Too Many Requests")
}

// --- Prompt construction and response parsing ---

func fieldPrompt(text string, kind extraction.FieldKind) (string, error) {
	switch kind {
	case extraction.FieldName:
		return fmt.Sprintf(`Extract just the person's name from this message. Remove greetings like "Hello", "Hi", "I'm", "My name is". If no name is found, return null.

Message: %q

Return ONLY a valid JSON object, no markdown, no code blocks:
{"name": "extracted name or null"}`, text), nil
	case extraction.FieldLoanType:
		return fmt.Sprintf(`Extract the loan type from this message. The available loan types are: Personal, Business, Home, Vehicle, Education, Gold.

Message: %q

Return ONLY a valid JSON object, no markdown, no code blocks:
{"loanType": "Personal|Business|Home|Vehicle|Education|Gold|null"}`, text), nil
	case extraction.FieldLoanAmount:
		return fmt.Sprintf(`Extract the loan amount in Indian Rupees from this message. The amount could be in lakhs, crores, or direct numbers. Convert everything to a number in rupees. Examples: "5 lakh" = 500000, "2 crore" = 20000000, "50 thousand" = 50000.

Message: %q

Return ONLY a valid JSON object, no markdown, no code blocks:
{"amount": "number in rupees as string or null"}`, text), nil
	case extraction.FieldPhoneOrPan:
		return fmt.Sprintf(`Extract a phone number (exactly 10 digits) or a PAN card number (format ABCDE1234F: 5 letters, 4 digits, 1 letter) from this message.

Message: %q

Return ONLY a valid JSON object, no markdown, no code blocks:
{"phone": "10 digit number or null", "pan": "PAN number or null"}`, text), nil
	default:
		return "", fmt.Errorf("unknown field kind: %s", kind)
	}
}

func documentPrompt(docType entity.DocumentType) string {
	return fmt.Sprintf(`Extract the following information from this %s document. Return a JSON object with the extracted data. If a field is not found, omit it.

For Aadhar: name, dateOfBirth, address, aadharNumber
For PAN: name, dateOfBirth, panNumber
For Bank Statement: incomeSummary (monthlyIncome, annualIncome), expenseSummary (monthlyExpenses, categories), savings, emiObligations (totalEMI, loans array with lender, amount, remainingTenure)
For Income Proof: incomeSummary (monthlyIncome, annualIncome)
For other documents: extract any relevant information

Return only valid JSON, no markdown formatting.`, docType)
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSONBlock strips markdown fences and pulls the first JSON object
// out of a model answer.
func extractJSONBlock(text string) (string, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	match := jsonObjectPattern.FindString(cleaned)
	if match == "" {
		return "", fmt.Errorf("no JSON object found in response: %.200s", text)
	}
	return match, nil
}

func decodeJSONObject(text string) (map[string]interface{}, error) {
	block, err := extractJSONBlock(text)
	if err != nil {
		return nil, err
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}
	return parsed, nil
}

// pickFieldValue reads the task-specific key, treating JSON null and the
// literal string "null" as absent.
func pickFieldValue(parsed map[string]interface{}, kind extraction.FieldKind) string {
	get := func(key string) string {
		v, ok := parsed[key].(string)
		if !ok || strings.EqualFold(v, "null") {
			return ""
		}
		return strings.TrimSpace(v)
	}

	switch kind {
	case extraction.FieldName:
		return get("name")
	case extraction.FieldLoanType:
		return get("loanType")
	case extraction.FieldLoanAmount:
		return get("amount")
	case extraction.FieldPhoneOrPan:
		if phone := get("phone"); phone != "" {
			return phone
		}
		return get("pan")
	}
	return ""
}
