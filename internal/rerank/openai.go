package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openai.com"

// arrayPattern extracts the first JSON array of integers from the model
// output, tolerating prose around it.
var arrayPattern = regexp.MustCompile(`\[[\d,\s]+\]`)

// OpenAIClient reranks candidates through the OpenAI chat completions API.
type OpenAIClient struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewOpenAIClient creates a reranker client. timeout bounds each request.
func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "Voce e um especialista em farmacia que ordena resultados de busca de medicamentos por relevancia. Responda somente com um array JSON de indices, do mais relevante para o menos relevante, sem nenhum outro texto."

// Rank submits the candidate summaries and parses the returned index array.
func (c *OpenAIClient) Rank(ctx context.Context, query string, items []Summary) ([]int, error) {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal candidates: %w", err)
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Consulta do cliente: %q\n\n", query)
	fmt.Fprintf(&prompt, "Candidatos (%d itens):\n%s\n\n", len(items), itemsJSON)
	fmt.Fprintf(&prompt, "Reordene TODOS os %d indices do mais relevante para a consulta ao menos relevante. Responda apenas com o array JSON, por exemplo: [2, 0, 1].", len(items))

	payload := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt.String()},
		},
		Temperature: 0.3,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	return parseIndices(chatResp.Choices[0].Message.Content)
}

// parseIndices extracts the ordered index array from the model output.
// Markdown code fences are tolerated.
func parseIndices(content string) ([]int, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	match := arrayPattern.FindString(cleaned)
	if match == "" {
		return nil, fmt.Errorf("no index array in response: %q", content)
	}

	inner := strings.Trim(match, "[]")
	parts := strings.Split(inner, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", part, err)
		}
		indices = append(indices, idx)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("empty index array in response")
	}
	return indices, nil
}
