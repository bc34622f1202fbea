package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Translator turns one text into several target languages.
type Translator interface {
	TranslateMultiple(ctx context.Context, text string, targets []string, source string) (map[string]string, error)
}

// LibreTranslate talks to a LibreTranslate-compatible /translate endpoint.
type LibreTranslate struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

func NewLibreTranslate(baseURL, apiKey string, log *zap.Logger) *LibreTranslate {
	return &LibreTranslate{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With(zap.String("component", "translator")),
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

func (l *LibreTranslate) Translate(ctx context.Context, text, target, source string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: l.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("marshal translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate %s->%s: %w", source, target, err)
	}
	defer resp.Body.Close()

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate %s->%s: status %d: %s", source, target, resp.StatusCode, out.Error)
	}
	return out.TranslatedText, nil
}

// TranslateMultiple returns one entry per target language. The source language
// maps to the text itself. A failed target is logged and left out.
func (l *LibreTranslate) TranslateMultiple(ctx context.Context, text string, targets []string, source string) (map[string]string, error) {
	result := make(map[string]string, len(targets))
	var lastErr error
	for _, target := range targets {
		if strings.EqualFold(target, source) {
			result[target] = text
			continue
		}
		translated, err := l.Translate(ctx, text, target, source)
		if err != nil {
			l.log.Warn("Translation failed", zap.String("target", target), zap.Error(err))
			lastErr = err
			continue
		}
		result[target] = translated
	}

	if len(result) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return result, nil
}
