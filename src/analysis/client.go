package analysis

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// FallbackDescription is returned whenever the analysis endpoint cannot
// produce a result. The save flow must never be blocked by analysis failures,
// so AnalyzeImage has no error return.
const FallbackDescription = "Archaeological artifact image. Automatic analysis was not available for this image."

const systemPrompt = "You are an expert archaeologist. Describe the artifact in the image: " +
	"its likely type, material, period and condition. Be concise and factual."

// Client calls a chat-completions style endpoint with an inlined base64 image.
type Client struct {
	endpoint   string
	apiKey     string
	deployment string
	httpClient *http.Client
}

// NewClientFromEnv builds a client from ANALYSIS_ENDPOINT, ANALYSIS_API_KEY
// and ANALYSIS_DEPLOYMENT. Missing configuration is a warning, not a failure:
// the client stays usable and always answers with the fallback text.
func NewClientFromEnv() *Client {
	endpoint := os.Getenv("ANALYSIS_ENDPOINT")
	apiKey := os.Getenv("ANALYSIS_API_KEY")
	deployment := os.Getenv("ANALYSIS_DEPLOYMENT")
	if endpoint == "" || apiKey == "" {
		log.Println("Image analysis endpoint not configured, analysis disabled")
	}
	return NewClient(endpoint, apiKey, deployment)
}

func NewClient(endpoint, apiKey, deployment string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		deployment: deployment,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether the endpoint is configured at all.
func (c *Client) Enabled() bool {
	return c.endpoint != "" && c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type imageContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

type chatRequest struct {
	Model     string        `json:"model,omitempty"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeImage sends the image to the analysis endpoint and returns its
// free-text description. Every failure path returns FallbackDescription.
func (c *Client) AnalyzeImage(image []byte, mimeType string) string {
	if !c.Enabled() {
		return FallbackDescription
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	imagePart := imageContent{Type: "image_url"}
	imagePart.ImageURL = &struct {
		URL string `json:"url"`
	}{URL: dataURL}

	reqBody := chatRequest{
		Model: c.deployment,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []imageContent{
				{Type: "text", Text: "Analyze this artifact image."},
				imagePart,
			}},
		},
		MaxTokens: 400,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		log.Printf("Image analysis request marshal failed: %v\n", err)
		return FallbackDescription
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		log.Printf("Image analysis request failed: %v\n", err)
		return FallbackDescription
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Image analysis call failed: %v\n", err)
		return FallbackDescription
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Image analysis endpoint returned status %d\n", resp.StatusCode)
		return FallbackDescription
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("Image analysis response decode failed: %v\n", err)
		return FallbackDescription
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return FallbackDescription
	}

	return parsed.Choices[0].Message.Content
}
