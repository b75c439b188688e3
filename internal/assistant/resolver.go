// Package assistant resolves a vision description into a structured
// identification record via a stateful conversational assistant run:
// create thread, post message, start run, poll until terminal, fetch reply.
//
// Resolution never fails from the caller's point of view: every error path
// degrades to a fallback record, so the user can still name and save the
// entry by hand.
package assistant

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

	"github.com/humiapp/humi/internal/logging"
	"github.com/humiapp/humi/internal/models"
	"github.com/sethvargo/go-retry"
)

const (
	defaultPollInterval = time.Second
	defaultPollTimeout  = 60 * time.Second
)

var errRunInProgress = errors.New("assistant run still in progress")

// Resolver drives the assistant call sequence against an OpenAI-compatible
// threads API.
type Resolver struct {
	baseURL     string
	apiKey      string
	assistantID string
	client      *http.Client
	logger      logging.Logger

	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewResolver(baseURL, apiKey, assistantID string, logger logging.Logger) *Resolver {
	return &Resolver{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		assistantID:  assistantID,
		client:       &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
		pollInterval: defaultPollInterval,
		pollTimeout:  defaultPollTimeout,
	}
}

// WithPolling overrides the poll interval and the overall deadline.
// Used by tests and callers with unusual latency requirements.
func (r *Resolver) WithPolling(interval, timeout time.Duration) *Resolver {
	r.pollInterval = interval
	r.pollTimeout = timeout
	return r
}

// assistantRecord is the JSON shape the assistant is instructed to return.
type assistantRecord struct {
	FullName            string `json:"fullName"`
	CigarBrand          string `json:"cigarBrand"`
	CigarLine           string `json:"cigarLine"`
	Description         string `json:"description"`
	OriginCountry       string `json:"originCountry"`
	WrapperType         string `json:"wrapperType"`
	Strength            string `json:"strength"`
	CommonNotes         string `json:"commonNotes"`
	RecommendedPairings string `json:"recommendedPairings"`
}

// Resolve submits the prompt and polls the run to completion. On any run
// failure, deadline expiry, or malformed response it returns a fallback
// record instead of an error.
func (r *Resolver) Resolve(ctx context.Context, vr models.VisionResult, interests []string, nameHint string) models.IdentificationRecord {
	prompt := BuildPrompt(vr, interests, nameHint)

	content, err := r.runAssistant(ctx, prompt)
	if err != nil {
		r.logger.Warn(ctx, "assistant run failed, falling back", "error", err)
		return Fallback(vr, FallbackMessageFail)
	}

	var parsed assistantRecord
	if err := json.Unmarshal([]byte(StripFences(content)), &parsed); err != nil {
		r.logger.Warn(ctx, "assistant returned non-JSON, falling back", "error", err)
		return Fallback(vr, FallbackMessageFail)
	}

	rec := models.IdentificationRecord{
		FullName:            parsed.FullName,
		Brand:               parsed.CigarBrand,
		Line:                parsed.CigarLine,
		Description:         parsed.Description,
		OriginCountry:       parsed.OriginCountry,
		WrapperType:         parsed.WrapperType,
		Strength:            parsed.Strength,
		CommonNotes:         parsed.CommonNotes,
		RecommendedPairings: parsed.RecommendedPairings,
	}
	if nameHint != "" {
		rec.IsUserCorrected = true
	}
	return rec
}

// runAssistant performs the HTTP sequence and returns the raw reply text.
func (r *Resolver) runAssistant(ctx context.Context, prompt string) (string, error) {
	threadID, err := r.createThread(ctx)
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}

	if err := r.postMessage(ctx, threadID, prompt); err != nil {
		return "", fmt.Errorf("post message: %w", err)
	}

	runID, err := r.startRun(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}

	status, err := r.pollRun(ctx, threadID, runID)
	if err != nil {
		return "", fmt.Errorf("poll run: %w", err)
	}
	if status != "completed" {
		return "", fmt.Errorf("run ended with status %q", status)
	}

	content, err := r.latestMessage(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("fetch reply: %w", err)
	}
	return content, nil
}

// pollRun waits for the run to reach a terminal status, using exponential
// backoff capped at 5x the base interval, bounded by the overall timeout.
// Deadline expiry is reported like a failed run.
func (r *Resolver) pollRun(ctx context.Context, threadID, runID string) (string, error) {
	backoff := retry.NewExponential(r.pollInterval)
	backoff = retry.WithCappedDuration(5*r.pollInterval, backoff)
	backoff = retry.WithMaxDuration(r.pollTimeout, backoff)

	var status string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		st, err := r.runStatus(ctx, threadID, runID)
		if err != nil {
			return err
		}
		switch st {
		case "completed", "failed", "cancelled", "expired":
			status = st
			return nil
		default:
			return retry.RetryableError(errRunInProgress)
		}
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *Resolver) createThread(ctx context.Context) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := r.doJSON(ctx, http.MethodPost, "/threads", nil, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("thread response missing id")
	}
	return out.ID, nil
}

func (r *Resolver) postMessage(ctx context.Context, threadID, prompt string) error {
	in := map[string]string{"role": "user", "content": prompt}
	return r.doJSON(ctx, http.MethodPost, "/threads/"+threadID+"/messages", in, nil)
}

func (r *Resolver) startRun(ctx context.Context, threadID string) (string, error) {
	in := map[string]string{"assistant_id": r.assistantID}
	var out struct {
		ID string `json:"id"`
	}
	if err := r.doJSON(ctx, http.MethodPost, "/threads/"+threadID+"/runs", in, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("run response missing id")
	}
	return out.ID, nil
}

func (r *Resolver) runStatus(ctx context.Context, threadID, runID string) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := r.doJSON(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (r *Resolver) latestMessage(ctx context.Context, threadID string) (string, error) {
	var out struct {
		Data []struct {
			Content []struct {
				Text struct {
					Value string `json:"value"`
				} `json:"text"`
			} `json:"content"`
		} `json:"data"`
	}
	if err := r.doJSON(ctx, http.MethodGet, "/threads/"+threadID+"/messages", nil, &out); err != nil {
		return "", err
	}
	if len(out.Data) == 0 || len(out.Data[0].Content) == 0 {
		return "", errors.New("no assistant reply in thread")
	}
	return out.Data[0].Content[0].Text.Value, nil
}

func (r *Resolver) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %s: %s", resp.Status, raw)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// StripFences removes a markdown code fence wrapping, with or without a
// language tag, leaving the inner text untouched.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line ("json", "JSON", or empty)
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
