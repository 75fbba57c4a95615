package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultModelServerURL = "http://localhost:8500"

// ModelServer is a Classifier backed by a local model-serving process that
// hosts the trained models and exposes them over a JSON API.
type ModelServer struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewModelServer creates a classifier client for one hosted model.
func NewModelServer(baseURL, model string) *ModelServer {
	if baseURL == "" {
		baseURL = defaultModelServerURL
	}
	return &ModelServer{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (m *ModelServer) Name() string {
	return m.model
}

// predictRequest represents a request to the model server's predict API.
type predictRequest struct {
	Model    string    `json:"model"`
	Features []float32 `json:"features"`
}

// predictResponse represents a response from the model server's predict API.
type predictResponse struct {
	Model string `json:"model"`
	Label string `json:"label"`
}

func (m *ModelServer) Predict(ctx context.Context, features []float32) (string, error) {
	reqBody := predictRequest{
		Model:    m.model,
		Features: features,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v1/predict", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var predictResp predictResponse
	if err := json.Unmarshal(body, &predictResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if predictResp.Label == "" {
		return "", fmt.Errorf("model server returned empty label")
	}

	return predictResp.Label, nil
}

// Ping checks whether the model server hosts the configured model. Used once
// at startup to decide the dispatch policy for a modality.
func (m *ModelServer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/v1/models/"+m.model, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("model server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model %s not available (status %d)", m.model, resp.StatusCode)
	}
	return nil
}
