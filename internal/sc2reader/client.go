package sc2reader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
)

// Client talks to the external sc2reader sidecar that decodes binary
// .SC2Replay files into fingerprint JSON. Parsing itself happens there;
// this service only ships bytes over and decodes the response.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        logger.Default().WithPrefix("sc2reader"),
	}
}

type parseResp struct {
	Success     bool                      `json:"success"`
	Fingerprint *models.ReplayFingerprint `json:"fingerprint"`
	Error       string                    `json:"error"`
}

// ParseReplay uploads the replay bytes and returns the extracted fingerprint.
func (c *Client) ParseReplay(ctx context.Context, filename string, data []byte) (*models.ReplayFingerprint, error) {
	log := logger.FromContext(ctx).WithPrefix("sc2reader").WithField("filename", filename)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		log.Error("failed to build multipart body: %v", err)
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		log.Error("failed to write replay bytes: %v", err)
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	url := c.baseURL + "/parse"
	log.Debug("posting replay to %s (%d bytes)", url, len(data))
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to reach sc2reader: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("parse response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("parse request failed: status=%d, body=%s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("sc2reader status %d: %s", resp.StatusCode, string(respBody))
	}

	var out parseResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode parse response: %v", err)
		return nil, err
	}
	if !out.Success || out.Fingerprint == nil {
		log.Error("sc2reader rejected replay: %s", out.Error)
		return nil, fmt.Errorf("sc2reader rejected replay: %s", out.Error)
	}

	log.Info("parsed replay %s: matchup=%s, race=%s", filename, out.Fingerprint.Matchup, out.Fingerprint.Race)
	return out.Fingerprint, nil
}
