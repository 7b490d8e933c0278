// Package aisvc talks to the Gemini generateContent endpoint. It implements
// prediction.TextGenerator; everything specific to the Gemini wire format
// stays in this package.
package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core"
	"github.com/trezcool/hatari/core/prediction"
)

var (
	errNoAPIKey      = errors.New("no Gemini API key configured")
	errEmptyResponse = errors.New("empty response from Gemini")
)

// KeyFunc returns the API key to use for a call. Looked up per request so a
// key saved through the settings API takes effect without a restart.
type KeyFunc func() (string, error)

type geminiClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	keyFunc    KeyFunc
	logger     core.Logger
}

var _ prediction.TextGenerator = (*geminiClient)(nil)

func NewGeminiClient(conf *core.Config, keyFunc KeyFunc, logger core.Logger) prediction.TextGenerator {
	return &geminiClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    conf.GeminiBaseURL,
		model:      conf.GeminiModel,
		keyFunc:    keyFunc,
		logger:     logger,
	}
}

type (
	generateRequest struct {
		Contents []content `json:"contents"`
	}
	content struct {
		Parts []part `json:"parts"`
	}
	part struct {
		Text string `json:"text"`
	}

	generateResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	key, err := c.keyFunc()
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", errNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding request")
	}

	url := c.baseURL + "/models/" + c.model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", key)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling Gemini")
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading response")
	}
	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("Gemini API request failed: %d: %s", res.StatusCode, resBody)
	}

	var parsed generateResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyResponse
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
