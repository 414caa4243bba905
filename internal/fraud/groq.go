package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mohammad-safakhou/finadvisor/config"
)

const systemPrompt = `You are FraudAwarenessGPT, an AI expert in detecting financial scams and suspicious content.
Your task:
1. Identify any scam, spam, phishing, or fraud-related content in the given text.
2. Summarize the scam method in simple words.
3. Generate a short awareness warning for the public.

Format your response as:
{
  "detected_content": "...",
  "awareness_message": "..."
}

If no suspicious content is found, reply with:
{"detected_content": "None", "awareness_message": "No scam detected."}`

const financialPromptTemplate = `You are FraudAwarenessGPT, specialized in detecting financial scams and fraudulent schemes.

Analyze this financial content for:
- Investment scams (Ponzi schemes, fake investments)
- Phishing attempts (fake bank emails, credential theft)
- Romance scams involving money
- Cryptocurrency scams
- Fake loan offers
- Identity theft attempts
- Advance fee frauds
- Fake financial advisors

Text to analyze: %q

Respond in JSON format:
{
  "detected_content": "Description of any scam/fraud detected or 'None'",
  "awareness_message": "Public warning message or 'No scam detected.'"
}`

// Result is the outcome of one fraud scan.
type Result struct {
	DetectedContent  string `json:"detected_content"`
	AwarenessMessage string `json:"awareness_message"`
	Provider         string `json:"provider"`
	Model            string `json:"model"`
	Success          bool   `json:"success"`
	AnalysisType     string `json:"analysis_type,omitempty"`
}

// Detector scans text for scam indicators through the Groq chat-completions
// API.
type Detector struct {
	cfg    config.GroqConfig
	client *http.Client
}

// NewDetector creates a Groq-backed detector from configuration.
func NewDetector(cfg config.GroqConfig) *Detector {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Detector{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

// Configured reports whether a vendor credential is present.
func (d *Detector) Configured() bool { return d.cfg.APIKey != "" }

// Detect runs the general scam scan over the given text.
func (d *Detector) Detect(ctx context.Context, text string) (Result, error) {
	content, err := d.complete(ctx,
		systemPrompt,
		fmt.Sprintf("Analyze this text for fraud/scam content: %s", text),
		500)
	if err != nil {
		return Result{}, err
	}
	return d.parse(content, ""), nil
}

// AnalyzeFinancial runs the financially-focused scan with extra scam-category
// context.
func (d *Detector) AnalyzeFinancial(ctx context.Context, content string) (Result, error) {
	reply, err := d.complete(ctx,
		"You are an expert fraud detection AI specializing in financial scams.",
		fmt.Sprintf(financialPromptTemplate, content),
		600)
	if err != nil {
		return Result{}, err
	}
	return d.parse(reply, "financial"), nil
}

func (d *Detector) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	type chatMsg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type chatReq struct {
		Model       string    `json:"model"`
		Messages    []chatMsg `json:"messages"`
		Temperature float64   `json:"temperature"`
		MaxTokens   int       `json:"max_tokens"`
		TopP        float64   `json:"top_p"`
	}

	body, err := json.Marshal(chatReq{
		Model: d.cfg.Model,
		Messages: []chatMsg{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.1,
		MaxTokens:   maxTokens,
		TopP:        1,
	})
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// parse extracts the structured verdict from the model reply. Replies that are
// not valid JSON are still useful, so they become the awareness message.
func (d *Detector) parse(content, analysisType string) Result {
	res := Result{
		Provider:     "groq",
		Model:        d.cfg.Model,
		Success:      true,
		AnalysisType: analysisType,
	}
	var verdict struct {
		DetectedContent  string `json:"detected_content"`
		AwarenessMessage string `json:"awareness_message"`
	}
	if err := json.Unmarshal([]byte(content), &verdict); err == nil {
		res.DetectedContent = verdict.DetectedContent
		res.AwarenessMessage = verdict.AwarenessMessage
		if res.DetectedContent == "" {
			res.DetectedContent = "Unknown"
		}
		if res.AwarenessMessage == "" {
			res.AwarenessMessage = "Analysis completed"
		}
		return res
	}
	res.DetectedContent = "Analysis completed"
	res.AwarenessMessage = content
	return res
}
