package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xhad/docintel/internal/models"
	"golang.org/x/time/rate"
)

const (
	DefaultModelID    = "prebuilt-layout"
	DefaultAPIVersion = "2023-07-31"

	statusNotStarted = "notStarted"
	statusRunning    = "running"
	statusSucceeded  = "succeeded"
	statusFailed     = "failed"
)

type AzureConfig struct {
	Endpoint     string
	APIKey       string
	ModelID      string
	APIVersion   string
	PollInterval time.Duration

	// Timeout bounds each poll request; UploadTimeout bounds the document upload.
	Timeout       time.Duration
	UploadTimeout time.Duration
	HTTPClient    *http.Client
}

// AzureAnalyzer submits documents to Azure AI Document Intelligence and polls
// the long-running operation until it finishes.
type AzureAnalyzer struct {
	config  AzureConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewAzure(config AzureConfig) (*AzureAnalyzer, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("analysis endpoint is required")
	}
	if _, err := url.Parse(config.Endpoint); err != nil {
		return nil, fmt.Errorf("invalid analysis endpoint: %w", err)
	}
	if config.ModelID == "" {
		config.ModelID = DefaultModelID
	}
	if config.APIVersion == "" {
		config.APIVersion = DefaultAPIVersion
	}
	if config.PollInterval == 0 {
		config.PollInterval = time.Second
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 5 * time.Minute
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &AzureAnalyzer{
		config:  config,
		client:  client,
		limiter: rate.NewLimiter(rate.Every(config.PollInterval), 1),
	}, nil
}

type serviceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error serviceError `json:"error"`
}

type operationResponse struct {
	Status        string                 `json:"status"`
	AnalyzeResult *models.AnalysisResult `json:"analyzeResult"`
	Error         *serviceError          `json:"error"`
}

// Analyze runs layout analysis on the document and blocks until a result is available.
func (a *AzureAnalyzer) Analyze(ctx context.Context, document []byte) (*models.AnalysisResult, error) {
	location, err := a.submit(ctx, document)
	if err != nil {
		return nil, err
	}
	return a.poll(ctx, location)
}

func (a *AzureAnalyzer) analyzeURL() string {
	endpoint := strings.TrimRight(a.config.Endpoint, "/")
	return fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s",
		endpoint, url.PathEscape(a.config.ModelID), url.QueryEscape(a.config.APIVersion))
}

func (a *AzureAnalyzer) submit(ctx context.Context, document []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.UploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.analyzeURL(), bytes.NewReader(document))
	if err != nil {
		return "", &AnalysisError{Op: "submit", Err: err}
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", a.config.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &AnalysisError{Op: "submit", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return "", responseError("submit", resp)
	}

	location := resp.Header.Get("Operation-Location")
	if location == "" {
		return "", &AnalysisError{Op: "submit", StatusCode: resp.StatusCode, Message: "missing Operation-Location header"}
	}
	return location, nil
}

func (a *AzureAnalyzer) poll(ctx context.Context, location string) (*models.AnalysisResult, error) {
	for {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, &AnalysisError{Op: "poll", Err: err}
		}

		op, retryAfter, err := a.fetch(ctx, location)
		if err != nil {
			return nil, err
		}

		switch op.Status {
		case statusNotStarted, statusRunning:
			if err := a.backoff(ctx, retryAfter); err != nil {
				return nil, &AnalysisError{Op: "poll", Err: err}
			}
		case statusSucceeded:
			if op.AnalyzeResult == nil {
				return nil, &AnalysisError{Op: "poll", Message: "operation succeeded without a result"}
			}
			return op.AnalyzeResult, nil
		case statusFailed:
			ae := &AnalysisError{Op: "poll", Message: "operation failed"}
			if op.Error != nil {
				ae.Code = op.Error.Code
				ae.Message = op.Error.Message
			}
			return nil, ae
		default:
			return nil, &AnalysisError{
				Op:      "poll",
				Code:    op.Status,
				Message: fmt.Sprintf("operation ended with status %q", op.Status),
			}
		}
	}
}

// backoff waits out a Retry-After hint that is longer than the poll interval.
func (a *AzureAnalyzer) backoff(ctx context.Context, retryAfter time.Duration) error {
	if retryAfter <= a.config.PollInterval {
		return nil
	}
	timer := time.NewTimer(retryAfter - a.config.PollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (a *AzureAnalyzer) fetch(ctx context.Context, location string) (*operationResponse, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, 0, &AnalysisError{Op: "poll", Err: err}
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.config.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, &AnalysisError{Op: "poll", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, responseError("poll", resp)
	}

	var op operationResponse
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return nil, 0, &AnalysisError{Op: "poll", StatusCode: resp.StatusCode, Err: fmt.Errorf("decode operation: %w", err)}
	}
	return &op, parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()), nil
}

// parseRetryAfter reads a Retry-After value given in seconds or as an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

func responseError(op string, resp *http.Response) error {
	ae := &AnalysisError{Op: op, StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error.Code != "" {
		ae.Code = er.Error.Code
		ae.Message = er.Error.Message
	} else if len(body) > 0 {
		ae.Message = strings.TrimSpace(string(body))
	}
	return ae
}
