package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// TextProcessor prepares raw SMS, QR and OCR text for analysis.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor.
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// Normalize applies NFKC normalization so fullwidth characters and
// compatibility forms can't slip past the pattern rules. OCR output and
// pasted text are the usual offenders.
func (tp *TextProcessor) Normalize(text string) string {
	normalized := norm.NFKC.String(text)
	if normalized != text {
		tp.logger.Debug("Text normalized",
			zap.Int("original_size", len(text)),
			zap.Int("normalized_size", len(normalized)))
	}
	return normalized
}

// TruncateText safely truncates text to the specified maximum size
// and ensures the result is valid UTF-8.
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated + "\n[... Content truncated due to size limits ...]"
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters.
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// ProcessText sanitizes, normalizes and trims text in one operation.
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	sanitized := tp.SanitizeUTF8(text)
	normalized := tp.Normalize(sanitized)
	truncated := tp.TruncateText(normalized, maxSize)
	return strings.TrimSpace(truncated)
}
