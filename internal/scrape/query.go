package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"linkedin-scraper/internal/models"
	"linkedin-scraper/internal/utils"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// FetchProfiles posts criteria to the scraping service and returns the profiles it found.
// Empty fields are sent as they are. Every failure is a *FetchFailure.
func (c *Client) FetchProfiles(ctx context.Context, criteria models.SearchCriteria) (models.ResultSet, error) {
	requestID := uuid.New().String()
	logger := c.logger.WithField("request_id", requestID)

	body, err := json.Marshal(criteria)
	if err != nil {
		return nil, c.failure(FailureTransport, 0, fmt.Errorf("failed to encode criteria: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, c.failure(FailureTransport, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	logger.WithFields(log.Fields{
		"industry": criteria.Industry,
		"country":  criteria.Country,
		"pages":    criteria.Pages,
	}).Debug("sending scrape request")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.failure(FailureTransport, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		// keep the connection reusable
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, c.failure(FailureStatus, resp.StatusCode, fmt.Errorf("%s", resp.Status))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, c.failure(FailureTransport, resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}
	if int64(len(data)) > c.maxBody {
		return nil, c.failure(FailurePayload, resp.StatusCode, fmt.Errorf("response exceeds %d bytes", c.maxBody))
	}

	profiles, err := c.extractor.ExtractProfiles(data)
	if err != nil {
		return nil, c.failure(FailurePayload, resp.StatusCode, err)
	}

	logger.WithFields(log.Fields{
		"profiles": profiles.Len(),
		"took":     utils.FormatDuration(time.Since(start)),
	}).Info("scrape request completed")

	return profiles, nil
}

func (c *Client) failure(kind FailureKind, status int, err error) *FetchFailure {
	return &FetchFailure{Kind: kind, Endpoint: c.endpoint, StatusCode: status, Err: err}
}
