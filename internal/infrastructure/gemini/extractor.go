// Package gemini implements the AI-extraction collaborator on top of the
// Gemini generative API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// maxContentChars bounds how much page content goes into the prompt.
const maxContentChars = 8000

var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Extractor asks Gemini for a structured product description of a page.
type Extractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
}

// NewExtractor creates the Gemini-backed extractor. modelName falls back to
// gemini-1.5-flash when empty.
func NewExtractor(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*Extractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Low temperature for deterministic field extraction.
	model.SetTemperature(0.1)
	model.SetTopK(1)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(1000)

	return &Extractor{client: client, model: model, logger: logger}, nil
}

// Extract prompts the model with the page content and parses the JSON it
// returns. Absence of usable data is reported as ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, rawContent, reference string) (*domain.ExtractedProduct, error) {
	if len(rawContent) > maxContentChars {
		rawContent = rawContent[:maxContentChars]
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(buildPrompt(rawContent, reference)))
	if err != nil {
		e.logger.Debug("gemini request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("%w: empty model response", domain.ErrExtractionFailed)
	}

	jsonBlock := jsonBlockPattern.FindString(text)
	if jsonBlock == "" {
		return nil, fmt.Errorf("%w: no JSON in model response", domain.ErrExtractionFailed)
	}

	var info domain.ExtractedProduct
	if err := json.Unmarshal([]byte(jsonBlock), &info); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if info.Name == "" || info.Name == "null" {
		return nil, fmt.Errorf("%w: no product name extracted", domain.ErrExtractionFailed)
	}
	return &info, nil
}

// Close releases the underlying API client.
func (e *Extractor) Close() error {
	return e.client.Close()
}

func buildPrompt(content, reference string) string {
	return fmt.Sprintf(`Analyze this product page HTML and extract structured product information. Focus on the main product being sold.

URL: %s

HTML Content (truncated):
%s

Extract and return ONLY a JSON object with these fields (omit missing data):
{
  "name": "Complete product name/title",
  "brand": "Brand name",
  "model": "Model number/name",
  "category": "Product category (Electronics/Fashion/Beauty/Grocery/etc)",
  "price": 0,
  "currency": "Currency code (INR/USD/etc)",
  "color": "Product color/variant",
  "size": "Size/dimensions",
  "capacity": "Storage/memory capacity",
  "ram": "RAM specification",
  "description": "Brief product description",
  "availability": true,
  "primaryId": "Amazon ASIN or equivalent catalog id",
  "sku": "Product SKU/ID",
  "gtin": "GTIN/EAN/UPC code"
}

Be precise and extract only confirmed information. Return valid JSON only.`, reference, content)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
