package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/utils"
)

// Classifier is an implementation of the MLClassifier interface using
// Google Gemini as the opaque fraud scorer. The underlying client is
// created lazily in LoadModel.
type Classifier struct {
	apiKey        string
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

// fraudResponse represents the structured response expected from the model.
type fraudResponse struct {
	IsFraud    bool    `json:"is_fraud"`
	Confidence float64 `json:"confidence"`
	Details    string  `json:"details"`
}

// NewClassifier creates a new Gemini-backed classifier.
func NewClassifier(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Classifier {
	return &Classifier{
		apiKey:        apiKey,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
		promptFormat: `You are a fraud detection system for mobile messages. Analyze the following message and determine if it is fraudulent (phishing, smishing, OTP theft, fake rewards, impersonation).
Respond with a JSON object containing:
- is_fraud: boolean (true if fraudulent)
- confidence: number between 0 and 1 (how confident you are)
- details: string (brief explanation)

%s

Respond only with the JSON object and nothing else.`,
	}
}

// LoadModel creates the Gemini client and generative model.
func (c *Classifier) LoadModel(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(c.modelName)
	model.SetTemperature(c.temperature)
	model.SetTopP(c.topP)
	model.SetMaxOutputTokens(int32(c.maxTokens))

	c.client = client
	c.model = model
	c.logger.Info("Gemini model loaded", zap.String("model", c.modelName))
	return nil
}

// IsLoaded reports whether the Gemini client has been created.
func (c *Classifier) IsLoaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client != nil
}

// Classify sends the prepared message text to Gemini and parses the
// structured verdict.
func (c *Classifier) Classify(ctx context.Context, text string) (*core.MLVerdict, error) {
	c.mu.Lock()
	model := c.model
	c.mu.Unlock()
	if model == nil {
		return nil, fmt.Errorf("gemini model not loaded")
	}

	processed := c.textProcessor.ProcessText(text, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, processed)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from Gemini model")
	}

	var responseText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			responseText += string(textPart)
		}
	}

	parsed, err := parseFraudResponse(responseText)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Gemini classification complete",
		zap.Bool("is_fraud", parsed.IsFraud),
		zap.Float64("confidence", parsed.Confidence))

	return &core.MLVerdict{
		IsFraud:    parsed.IsFraud,
		Confidence: parsed.Confidence,
		Details:    parsed.Details,
	}, nil
}

// Close closes the Gemini client.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// parseFraudResponse parses the model's JSON reply, tolerating
// surrounding prose by extracting the outermost JSON object.
func parseFraudResponse(responseText string) (*fraudResponse, error) {
	var parsed fraudResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err == nil {
		return &parsed, nil
	}

	jsonStart := -1
	jsonEnd := -1
	for i := 0; i < len(responseText); i++ {
		if responseText[i] == '{' {
			jsonStart = i
			break
		}
	}
	for i := len(responseText) - 1; i >= 0; i-- {
		if responseText[i] == '}' {
			jsonEnd = i + 1
			break
		}
	}
	if jsonStart < 0 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("failed to extract JSON from model response")
	}
	if err := json.Unmarshal([]byte(responseText[jsonStart:jsonEnd]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}
	return &parsed, nil
}
