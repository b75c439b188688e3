// Package vision sends a captured band image to the vision model and returns
// a literal free-text description plus a heuristically extracted name.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/humiapp/humi/internal/models"
)

// bandInstruction deliberately asks for a description, not a brand guess;
// asking the vision model for a name invites confident hallucinations.
const bandInstruction = "Describe the cigar band shown in the image, including all visible words, symbols, colors, and layout. Focus on descriptive detail — not just brand name."

// ExtractionError wraps any vision call or parsing failure. It is fatal to
// the current identification attempt; the caller distinguishes it from a
// weak assistant answer, which degrades instead.
type ExtractionError struct {
	Op  string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("vision extraction failed (%s): %v", e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// probableName matches a quoted fragment following phrasing like
// `the label says "..."` in the model's description.
var probableName = regexp.MustCompile(`(?i)(?:label says|says|reads)\s*[‘'"“”]?([A-Za-z0-9][A-Za-z0-9 \-]*)`)

// ExtractProbableName opportunistically pulls a probable cigar name out of a
// band description. Returns the empty string when nothing matches.
func ExtractProbableName(description string) string {
	m := probableName.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Extractor calls a chat-completions style vision endpoint.
type Extractor struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewExtractor(baseURL, apiKey, model string) *Extractor {
	return &Extractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Extract issues a single vision request for imageBytes and returns the
// description plus the probable name heuristic. All failures are returned as
// *ExtractionError; there is no internal fallback.
func (e *Extractor) Extract(ctx context.Context, imageBytes []byte) (models.VisionResult, error) {
	var zero models.VisionResult

	encoded := base64.StdEncoding.EncodeToString(imageBytes)

	reqBody := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: bandInstruction},
					{Type: "image_url", ImageURL: &imageURL{
						URL:    "data:image/jpeg;base64," + encoded,
						Detail: "high",
					}},
				},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return zero, &ExtractionError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return zero, &ExtractionError{Op: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return zero, &ExtractionError{Op: "vision call", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, &ExtractionError{Op: "read response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return zero, &ExtractionError{Op: "vision call", Err: fmt.Errorf("status %s: %s", resp.Status, body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return zero, &ExtractionError{Op: "decode response", Err: err}
	}
	if parsed.Error != nil {
		return zero, &ExtractionError{Op: "vision call", Err: fmt.Errorf("%s", parsed.Error.Message)}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return zero, &ExtractionError{Op: "decode response", Err: fmt.Errorf("no visual detail returned")}
	}

	description := parsed.Choices[0].Message.Content
	return models.VisionResult{
		ProbableName:    ExtractProbableName(description),
		BandDescription: description,
	}, nil
}
