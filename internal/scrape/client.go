package scrape

import (
	"net/http"
	"time"

	"github.com/apex/log"

	"linkedin-scraper/internal/models"
)

// Client talks to the scraping service
type Client struct {
	endpoint  string
	http      *http.Client
	maxBody   int64
	extractor *ProfileExtractor
	logger    log.Interface
}

// New creates a Client for the endpoint and limits in config
func New(config models.Config, logger log.Interface) *Client {
	transport := &http.Transport{
		Proxy:                  http.ProxyFromEnvironment,
		MaxIdleConns:           config.MaxIdleConns,
		MaxIdleConnsPerHost:    config.MaxIdleConns,
		IdleConnTimeout:        90 * time.Second,
		ForceAttemptHTTP2:      true,
		MaxResponseHeaderBytes: 1 << 20, // 1MB limit
		ExpectContinueTimeout:  1 * time.Second,
	}

	return NewWithHTTPClient(config, &http.Client{
		Timeout:   config.RequestTimeout,
		Transport: transport,
	}, logger)
}

// NewWithHTTPClient creates a Client that sends requests through hc
func NewWithHTTPClient(config models.Config, hc *http.Client, logger log.Interface) *Client {
	if logger == nil {
		logger = log.Log
	}
	maxBody := config.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = 16 << 20
	}
	return &Client{
		endpoint:  config.ScrapeEndpoint,
		http:      hc,
		maxBody:   maxBody,
		extractor: NewProfileExtractor(),
		logger:    logger.WithField("endpoint", config.ScrapeEndpoint),
	}
}

// Endpoint returns the URL searches are posted to
func (c *Client) Endpoint() string { return c.endpoint }

// Close releases idle connections
func (c *Client) Close() {
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
}
