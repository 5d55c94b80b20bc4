package ollama

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

// OllamaProvider runs extraction against a local Ollama instance. Document
// extraction needs a vision-capable model (e.g. llava); utterance extraction
// works with any instruct model.
type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ extraction.Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if modelName == "" {
		modelName = "llama3.2"
	}
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type ollamaGenerateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Format string   `json:"format,omitempty"`
	Stream bool     `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (o *OllamaProvider) ExtractField(ctx context.Context, text string, kind extraction.FieldKind) (*extraction.FieldResult, error) {
	prompt, err := fieldPrompt(text, kind)
	if err != nil {
		return nil, err
	}

	raw, err := o.generate(ctx, prompt, nil)
	if err != nil {
		return nil, err
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		// Some models wrap the object in prose despite format=json.
		block := jsonObjectPattern.FindString(raw)
		if block == "" {
			return nil, fmt.Errorf("ollama %s extraction: no JSON in response: %.200s", kind, raw)
		}
		if err := json.Unmarshal([]byte(block), &parsed); err != nil {
			return nil, fmt.Errorf("ollama %s extraction: invalid JSON: %w", kind, err)
		}
	}

	value := pickFieldValue(parsed, kind)
	confidence := 0.0
	if value != "" {
		confidence = 0.8
	}
	return &extraction.FieldResult{Value: value, Confidence: confidence}, nil
}

func (o *OllamaProvider) ExtractDocument(ctx context.Context, fileData []byte, mimeType string, docType entity.DocumentType) (*entity.ExtractedData, error) {
	prompt := fmt.Sprintf(`Extract structured information from this %s document image. Return a JSON object. Possible fields: name, dateOfBirth, address, aadharNumber, panNumber, incomeSummary {monthlyIncome, annualIncome}, expenseSummary {monthlyExpenses}, savings, emiObligations {totalEMI}. Omit fields that are not present. Return only valid JSON.`, docType)

	raw, err := o.generate(ctx, prompt, []string{base64.StdEncoding.EncodeToString(fileData)})
	if err != nil {
		return nil, err
	}

	block := jsonObjectPattern.FindString(raw)
	if block == "" {
		return nil, fmt.Errorf("ollama document extraction: no JSON in response: %.200s", raw)
	}

	var data entity.ExtractedData
	if err := json.Unmarshal([]byte(block), &data); err != nil {
		return nil, fmt.Errorf("ollama document extraction: invalid JSON: %w", err)
	}
	return &data, nil
}

// Healthy reports whether the Ollama server answers at all. Used for a
// startup warning only; failures at call time still surface normally.
func (o *OllamaProvider) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", o.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	res, err := o.Client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}

func (o *OllamaProvider) generate(ctx context.Context, prompt string, images []string) (string, error) {
	payload, err := json.Marshal(ollamaGenerateRequest{
		Model:  o.ModelName,
		Prompt: prompt,
		Images: images,
		Format: "json",
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := o.BaseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama error: status %d, body: %s", res.StatusCode, string(body))
	}

	var ollamaRes ollamaGenerateResponse
	if err := json.Unmarshal(body, &ollamaRes); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return ollamaRes.Response, nil
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

func fieldPrompt(text string, kind extraction.FieldKind) (string, error) {
	switch kind {
	case extraction.FieldName:
		return fmt.Sprintf(`Extract just the person's name from this message, removing greetings. Message: %q. Answer with JSON: {"name": "name or null"}`, text), nil
	case extraction.FieldLoanType:
		return fmt.Sprintf(`Extract the loan type (Personal, Business, Home, Vehicle, Education or Gold) from this message. Message: %q. Answer with JSON: {"loanType": "type or null"}`, text), nil
	case extraction.FieldLoanAmount:
		return fmt.Sprintf(`Extract the loan amount in Indian Rupees from this message, converting lakhs/crores/thousands to a plain number ("5 lakh" = 500000, "2 crore" = 20000000). Message: %q. Answer with JSON: {"amount": "number as string or null"}`, text), nil
	case extraction.FieldPhoneOrPan:
		return fmt.Sprintf(`Extract a 10-digit phone number or a PAN number (ABCDE1234F format) from this message. Message: %q. Answer with JSON: {"phone": "number or null", "pan": "PAN or null"}`, text), nil
	default:
		return "", fmt.Errorf("unknown field kind: %s", kind)
	}
}

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
