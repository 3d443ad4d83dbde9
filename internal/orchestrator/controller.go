package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/semaphore"

	"linkedin-scraper/internal/export"
	"linkedin-scraper/internal/models"
)

// Fetcher retrieves profiles for a search
type Fetcher interface {
	FetchProfiles(ctx context.Context, criteria models.SearchCriteria) (models.ResultSet, error)
}

// Controller owns one ViewState and applies user actions to it.
// It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	state    ViewState
	lastSeen time.Time

	fetcher Fetcher
	exports *semaphore.Weighted
	logger  log.Interface
}

// NewController creates a controller in the idle state.
// exports bounds how many exports may render at once across controllers.
func NewController(fetcher Fetcher, exports *semaphore.Weighted, pageSize int, logger log.Interface) *Controller {
	if logger == nil {
		logger = log.Log
	}
	if exports == nil {
		exports = semaphore.NewWeighted(1)
	}
	return &Controller{
		state:    NewViewState(pageSize),
		lastSeen: time.Now(),
		fetcher:  fetcher,
		exports:  exports,
		logger:   logger,
	}
}

// State returns a snapshot of the current state
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetField updates a form field
func (c *Controller) SetField(name, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ok bool
	c.state, ok = c.state.SetField(name, value)
	return ok
}

// SetCriteria replaces all three form fields
func (c *Controller) SetCriteria(criteria models.SearchCriteria) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Criteria = criteria
}

// Submit enters Loading and fetches the current criteria in the background.
// The returned channel yields the fetch error (nil on success) once the
// response has been applied. Earlier in-flight submits are not cancelled.
func (c *Controller) Submit(ctx context.Context) <-chan error {
	c.mu.Lock()
	var gen uint64
	c.state, gen = c.state.BeginFetch()
	criteria := c.state.Criteria
	c.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- c.fetch(ctx, gen, criteria)
	}()
	return done
}

func (c *Controller) fetch(ctx context.Context, gen uint64, criteria models.SearchCriteria) error {
	logger := c.logger.WithField("generation", gen)
	profiles, err := c.fetcher.FetchProfiles(ctx, criteria)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		logger.WithError(err).Error("error fetching profiles")
		c.state = c.state.FailFetch(gen, err)
		return err
	}

	if gen != c.state.issued {
		logger.Debug("dropping response of a superseded search")
	}
	c.state = c.state.CompleteFetch(gen, profiles)
	return nil
}

// ChangePage moves the table cursor
func (c *Controller) ChangePage(page, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.ChangePage(page, size)
}

// ToggleTheme flips the page theme
func (c *Controller) ToggleTheme() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.ToggleTheme()
}

// ExportPDF renders the current results as a PDF report dated now
func (c *Controller) ExportPDF(ctx context.Context, now time.Time) (export.PDFResult, error) {
	if err := c.exports.Acquire(ctx, 1); err != nil {
		return export.PDFResult{}, err
	}
	defer c.exports.Release(1)

	s := c.State()
	res, err := export.PDF(s.Results, s.Criteria, now)
	if err != nil {
		return export.PDFResult{}, fmt.Errorf("pdf export: %w", err)
	}
	c.logger.WithFields(log.Fields{"profiles": s.Results.Len(), "pages": res.Pages}).Info("exported pdf")
	return res, nil
}

// ExportSpreadsheet renders the current results as an XLSX workbook
func (c *Controller) ExportSpreadsheet(ctx context.Context) ([]byte, error) {
	if err := c.exports.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.exports.Release(1)

	s := c.State()
	data, err := export.Spreadsheet(s.Results)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet export: %w", err)
	}
	c.logger.WithField("profiles", s.Results.Len()).Info("exported spreadsheet")
	return data, nil
}

func (c *Controller) touch(now time.Time) {
	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()
}

// idleSince reports whether the controller has been unused since before t
// and has no search in flight
func (c *Controller) idleSince(t time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.state.Loading && c.lastSeen.Before(t)
}
