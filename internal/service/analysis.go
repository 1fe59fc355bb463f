package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/models"
)

// AnalysisService turns a food description or photo into a
// FoodAnalysisResult via a generative inference service.
type AnalysisService struct {
	apiKey string
	apiURL string
	text   config.ModelConfig
	image  config.ModelConfig
	cache  *AnalysisCache
	client *http.Client
}

// NewAnalysisService creates a new AnalysisService instance. cache may
// be nil when Redis is not configured.
func NewAnalysisService(cfg *config.Config, cache *AnalysisCache) *AnalysisService {
	return &AnalysisService{
		apiKey: cfg.GeminiAPIKey,
		apiURL: cfg.GeminiAPIURL,
		text:   cfg.TextModel,
		image:  cfg.ImageModel,
		cache:  cache,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// generatePart is one part of a generateContent request.
type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

// generateRequest is the wire format of a generateContent call.
type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// analysisResponseSchema is the strict output schema requested from
// schema-capable models.
var analysisResponseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"name":     map[string]any{"type": "STRING"},
		"calories": map[string]any{"type": "NUMBER"},
		"quantity": map[string]any{"type": "STRING"},
		"macros": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"protein": map[string]any{"type": "NUMBER"},
				"carbs":   map[string]any{"type": "NUMBER"},
				"fat":     map[string]any{"type": "NUMBER"},
			},
			"required": []string{"protein", "carbs", "fat"},
		},
		"confidence": map[string]any{
			"type": "STRING",
			"enum": []string{"high", "medium", "low"},
		},
	},
	"required": []string{"name", "calories", "quantity", "macros", "confidence"},
}

// promptSchema is the same contract spelled out in prose, for models
// that do not support schema-constrained generation.
const promptSchema = `Return ONLY a raw JSON object (no markdown formatting, no backticks) with the following structure:
{
  "name": "Short descriptive name",
  "calories": number (integer),
  "quantity": "e.g. 1 bowl, 200g",
  "macros": {
    "protein": number (grams),
    "carbs": number (grams),
    "fat": number (grams)
  },
  "confidence": "high" | "medium" | "low"
}`

// AnalyzeText analyzes a free-text food description.
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) (*models.FoodAnalysisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty description", ErrValidation)
	}

	if cached, ok := s.cache.GetText(ctx, text); ok {
		return cached, nil
	}

	prompt := fmt.Sprintf("Analyze the following food description: %q. Provide the name, estimated calories, and macronutrients (protein, carbs, fat) in grams. Also estimate the quantity.", text)

	req := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: prompt}}},
		},
	}
	if s.text.SchemaEnforced {
		req.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   analysisResponseSchema,
		}
	} else {
		req.Contents[0].Parts[0].Text = prompt + "\n\n" + promptSchema
	}

	raw, err := s.generate(ctx, s.text.Model, req)
	if err != nil {
		return nil, err
	}

	if !s.text.SchemaEnforced {
		raw = stripFences(raw)
	}

	result, err := parseAnalysisResult(raw)
	if err != nil {
		log.Printf("[AnalysisService] text analysis returned unparseable content: %s", raw)
		return nil, err
	}

	s.cache.SetText(ctx, text, result)
	return result, nil
}

// AnalyzeImage analyzes a still image supplied as a data URI (or bare
// base64 with an implied image/jpeg mime type).
func (s *AnalysisService) AnalyzeImage(ctx context.Context, dataURI string) (*models.FoodAnalysisResult, error) {
	mimeType, payload, err := splitDataURI(dataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	prompt := "Identify the food in this image. Estimate the portion size, calories, and macronutrients (protein, carbs, fat)."
	req := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{
				{InlineData: &inlineData{MimeType: mimeType, Data: payload}},
				{Text: prompt},
			}},
		},
	}
	if s.image.SchemaEnforced {
		req.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   analysisResponseSchema,
		}
	} else {
		req.Contents[0].Parts[1].Text = prompt + "\n" + promptSchema
	}

	raw, err := s.generate(ctx, s.image.Model, req)
	if err != nil {
		return nil, err
	}

	if !s.image.SchemaEnforced {
		raw = stripFences(raw)
	}

	result, err := parseAnalysisResult(raw)
	if err != nil {
		log.Printf("[AnalysisService] image analysis returned unparseable content: %s", raw)
		return nil, err
	}

	return result, nil
}

// generate performs one generateContent call and returns the text of
// the first candidate.
func (s *AnalysisService) generate(ctx context.Context, model string, reqBody generateRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.apiURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[AnalysisService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoResponse
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", ErrNoResponse
	}

	return text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseAnalysisResult parses raw model output into the canonical
// result, requiring every contract field to be present and typed.
func parseAnalysisResult(raw string) (*models.FoodAnalysisResult, error) {
	var probe struct {
		Name     *string  `json:"name"`
		Calories *float64 `json:"calories"`
		Quantity *string  `json:"quantity"`
		Macros   *struct {
			Protein *float64 `json:"protein"`
			Carbs   *float64 `json:"carbs"`
			Fat     *float64 `json:"fat"`
		} `json:"macros"`
		Confidence *string `json:"confidence"`
	}

	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}

	if probe.Name == nil || probe.Calories == nil || probe.Quantity == nil || probe.Confidence == nil {
		return nil, fmt.Errorf("%w: missing required field", ErrMalformedContent)
	}
	if probe.Macros == nil || probe.Macros.Protein == nil || probe.Macros.Carbs == nil || probe.Macros.Fat == nil {
		return nil, fmt.Errorf("%w: missing macros field", ErrMalformedContent)
	}

	return &models.FoodAnalysisResult{
		Name:     *probe.Name,
		Calories: *probe.Calories,
		Quantity: *probe.Quantity,
		Macros: models.MacroNutrients{
			Protein: *probe.Macros.Protein,
			Carbs:   *probe.Macros.Carbs,
			Fat:     *probe.Macros.Fat,
		},
		Confidence: models.Confidence(*probe.Confidence),
	}, nil
}

// stripFences removes Markdown code-fence markers that models wrap
// around JSON output despite instructions not to.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// splitDataURI splits a self-describing data URI into mime type and
// base64 payload. A bare base64 string is accepted as image/jpeg.
func splitDataURI(s string) (string, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", fmt.Errorf("empty image payload")
	}

	if !strings.HasPrefix(s, "data:") {
		return "image/jpeg", s, nil
	}

	header, payload, ok := strings.Cut(s, ",")
	if !ok || payload == "" {
		return "", "", fmt.Errorf("invalid data URI")
	}

	mimeType := strings.TrimPrefix(header, "data:")
	mimeType = strings.TrimSuffix(mimeType, ";base64")
	if !strings.HasPrefix(mimeType, "image/") {
		return "", "", fmt.Errorf("unsupported mime type %q", mimeType)
	}

	return mimeType, payload, nil
}
