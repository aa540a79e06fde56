package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/utils"
)

// Classifier is an implementation of the MLClassifier interface using
// an OpenAI chat model as the opaque fraud scorer.
type Classifier struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	promptFormat  string
}

// fraudResponse represents the structured response expected from the model.
type fraudResponse struct {
	IsFraud    bool    `json:"is_fraud"`
	Confidence float64 `json:"confidence"`
	Details    string  `json:"details"`
}

// NewClassifier creates a new OpenAI-backed classifier.
func NewClassifier(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Classifier {
	return &Classifier{
		client:        client,
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

// LoadModel is a no-op: the remote model needs no local loading.
func (c *Classifier) LoadModel(ctx context.Context) error {
	return nil
}

// IsLoaded reports whether the classifier can serve predictions.
func (c *Classifier) IsLoaded() bool {
	return c.client != nil
}

// Classify sends the prepared message text to the model and parses the
// structured verdict.
func (c *Classifier) Classify(ctx context.Context, text string) (*core.MLVerdict, error) {
	processed := c.textProcessor.ProcessText(text, c.maxBodySize)
	prompt := fmt.Sprintf(c.promptFormat, processed)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.modelName,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI model")
	}

	parsed, err := parseFraudResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("OpenAI classification complete",
		zap.Bool("is_fraud", parsed.IsFraud),
		zap.Float64("confidence", parsed.Confidence))

	return &core.MLVerdict{
		IsFraud:    parsed.IsFraud,
		Confidence: parsed.Confidence,
		Details:    parsed.Details,
	}, nil
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
