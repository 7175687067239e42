// Package scoring consumes the AI résumé-match service. The core treats
// the scorer as an opaque function: a score in [0,100] plus a free-text
// analysis, or an error.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Request carries the texts handed to the scorer.
type Request struct {
	Resume          string
	CoverLetter     string
	JobDescription  string
	JobRequirements string
}

// Result is the scorer's answer. Score is always within [0,100].
type Result struct {
	Score    int    `json:"match_score"`
	Analysis string `json:"analysis"`
}

// Scorer produces a match score and analysis for one application.
type Scorer interface {
	Score(ctx context.Context, req Request) (Result, error)
}

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// geminiModels is tried in order; the first model that answers wins.
var geminiModels = []string{
	"gemini-2.0-flash-001",
	"gemini-2.0-flash",
	"gemini-2.5-flash",
	"gemini-flash-latest",
}

// GeminiScorer calls the Gemini generateContent REST API.
type GeminiScorer struct {
	apiKey string
	client *http.Client
	models []string
}

// NewGeminiScorer builds a scorer with the given API key. The HTTP
// timeout is a backstop; callers bound individual calls with ctx.
func NewGeminiScorer(apiKey string) *GeminiScorer {
	return &GeminiScorer{
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
		models: geminiModels,
	}
}

func (g *GeminiScorer) Score(ctx context.Context, req Request) (Result, error) {
	prompt := buildPrompt(req)

	var lastErr error
	for _, model := range g.models {
		text, err := g.generate(ctx, model, prompt)
		if err != nil {
			lastErr = err
			continue
		}
		var res Result
		if err := json.Unmarshal([]byte(cleanJSONResponse(text)), &res); err != nil {
			lastErr = fmt.Errorf("parse scorer response: %w", err)
			continue
		}
		res.Score = ClampScore(res.Score)
		return res, nil
	}
	return Result{}, fmt.Errorf("all models failed: %w", lastErr)
}

func buildPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("You are an expert HR analyst evaluating a job applicant against a job posting.\n\n")

	sb.WriteString("## JOB DESCRIPTION\n")
	sb.WriteString(req.JobDescription)
	sb.WriteString("\n\n")

	if req.JobRequirements != "" {
		sb.WriteString("## REQUIREMENTS\n")
		sb.WriteString(req.JobRequirements)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## RESUME\n")
	sb.WriteString(req.Resume)
	sb.WriteString("\n\n")

	if req.CoverLetter != "" {
		sb.WriteString("## COVER LETTER\n")
		sb.WriteString(req.CoverLetter)
		sb.WriteString("\n\n")
	}

	sb.WriteString("## EVALUATION INSTRUCTIONS\n")
	sb.WriteString("Rate how well the applicant matches the posting. Missing required qualifications should significantly lower the score.\n\n")
	sb.WriteString("Return strict JSON with structure:\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "match_score": <integer 0-100>,` + "\n")
	sb.WriteString(`  "analysis": "<short narrative in the language of the posting explaining the match>"` + "\n")
	sb.WriteString("}\n\n")
	sb.WriteString("Return ONLY the raw JSON without any markdown formatting, code blocks, or additional text.\n")

	return sb.String()
}

func (g *GeminiScorer) generate(ctx context.Context, model, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf(geminiEndpoint, model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var apiResponse map[string]interface{}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", fmt.Errorf("parse API response: %w", err)
	}
	return extractTextFromResponse(apiResponse)
}

func extractTextFromResponse(apiResponse map[string]interface{}) (string, error) {
	candidates, ok := apiResponse["candidates"].([]interface{})
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	firstCandidate, ok := candidates[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid candidate format")
	}
	content, ok := firstCandidate["content"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid content format")
	}
	parts, ok := content["parts"].([]interface{})
	if !ok || len(parts) == 0 {
		return "", fmt.Errorf("no parts in content")
	}
	firstPart, ok := parts[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid part format")
	}
	text, ok := firstPart["text"].(string)
	if !ok {
		return "", fmt.Errorf("no text in part")
	}
	return text, nil
}

// cleanJSONResponse strips markdown fences and surrounding prose the
// model sometimes adds despite the prompt.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end != -1 && end > start {
		content = content[start : end+1]
	}
	return strings.TrimSpace(content)
}

// ClampScore forces a score into [0,100].
func ClampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
