package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// failedPrefix starts every transport-level failure message.
	failedPrefix = "API request failed:"
	// msgMalformedResponse is the fixed message for responses missing the
	// extraction path.
	msgMalformedResponse = "Failed to extract summary from API response."
)

// Client calls the generative-language summarization endpoint. The wire
// shape is fixed: a contents/parts request, a candidates/content/parts
// response.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   strings.TrimSpace(apiKey),
		http:     &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Role  string        `json:"role"`
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
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

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize posts the prompt and extracts the summary text. Every error
// it returns carries the single-line message shown to the user.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(generateRequest{
		Contents: []requestContent{
			{Role: "user", Parts: []requestPart{{Text: prompt}}},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s %v", failedPrefix, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %v", failedPrefix, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s %v", failedPrefix, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(respBody, &e) == nil && strings.TrimSpace(e.Error.Message) != "" {
			return "", fmt.Errorf("%s %s", failedPrefix, strings.TrimSpace(e.Error.Message))
		}
		return "", fmt.Errorf("%s status %d", failedPrefix, resp.StatusCode)
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", errors.New(msgMalformedResponse)
	}
	if len(result.Candidates) == 0 ||
		len(result.Candidates[0].Content.Parts) == 0 ||
		result.Candidates[0].Content.Parts[0].Text == "" {
		return "", errors.New(msgMalformedResponse)
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
