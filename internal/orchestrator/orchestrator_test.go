package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/sync/semaphore"

	"linkedin-scraper/internal/models"
)

func testLogger() log.Interface {
	return &log.Logger{Handler: discard.Default, Level: log.DebugLevel}
}

func makeProfiles(prefix string, n int) models.ResultSet {
	rs := make(models.ResultSet, 0, n)
	for i := 1; i <= n; i++ {
		rs = append(rs, models.ProfileRecord{
			Name: fmt.Sprintf("%s %d", prefix, i),
			Link: fmt.Sprintf("https://www.linkedin.com/in/%s-%d", prefix, i),
		})
	}
	return rs
}

type fetchReply struct {
	profiles models.ResultSet
	err      error
}

// gatedFetcher blocks every call until a reply is pushed for it
type gatedFetcher struct {
	mu      sync.Mutex
	calls   []models.SearchCriteria
	started chan struct{}
	replies []chan fetchReply
}

func newGatedFetcher(n int) *gatedFetcher {
	f := &gatedFetcher{started: make(chan struct{}, n)}
	for i := 0; i < n; i++ {
		f.replies = append(f.replies, make(chan fetchReply, 1))
	}
	return f
}

func (f *gatedFetcher) FetchProfiles(ctx context.Context, criteria models.SearchCriteria) (models.ResultSet, error) {
	f.mu.Lock()
	idx := len(f.calls)
	f.calls = append(f.calls, criteria)
	f.mu.Unlock()
	f.started <- struct{}{}

	select {
	case r := <-f.replies[idx]:
		return r.profiles, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type staticFetcher struct {
	profiles models.ResultSet
	err      error
}

func (f staticFetcher) FetchProfiles(context.Context, models.SearchCriteria) (models.ResultSet, error) {
	return f.profiles, f.err
}

func wait(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for fetch")
		return nil
	}
}

func TestSubmitSuccess(t *testing.T) {
	profiles := makeProfiles("ok", 25)
	ctrl := NewController(staticFetcher{profiles: profiles}, nil, 10, testLogger())

	ctrl.SetField(models.FieldIndustry, "Fintech")
	ctrl.ChangePage(2, 10)

	if err := wait(t, ctrl.Submit(context.Background())); err != nil {
		t.Fatal(err)
	}
	s := ctrl.State()
	if s.Loading {
		t.Fatal("loading should be cleared")
	}
	if diff := cmp.Diff(profiles, s.Results); diff != "" {
		t.Fatal(diff)
	}
	if s.Pagination.CurrentPage != 1 {
		t.Fatalf("a new result set starts on page 1, got %d", s.Pagination.CurrentPage)
	}
	if !s.CanExport() {
		t.Fatal("exports should be enabled")
	}
}

func TestSubmitFailureKeepsResults(t *testing.T) {
	fetcher := newGatedFetcher(2)
	ctrl := NewController(fetcher, nil, 10, testLogger())

	first := ctrl.Submit(context.Background())
	<-fetcher.started
	previous := makeProfiles("prev", 3)
	fetcher.replies[0] <- fetchReply{profiles: previous}
	if err := wait(t, first); err != nil {
		t.Fatal(err)
	}

	second := ctrl.Submit(context.Background())
	<-fetcher.started
	if !ctrl.State().Loading {
		t.Fatal("expected loading while the request is in flight")
	}
	transportErr := errors.New("connection refused")
	fetcher.replies[1] <- fetchReply{err: transportErr}
	if err := wait(t, second); !errors.Is(err, transportErr) {
		t.Fatalf("unexpected error %v", err)
	}

	s := ctrl.State()
	if s.Loading {
		t.Fatal("loading should be cleared after a failure")
	}
	if diff := cmp.Diff(previous, s.Results); diff != "" {
		t.Fatal(diff)
	}
	if s.LastError == "" {
		t.Fatal("the failure should be recorded")
	}
}

func TestLatestSubmitWins(t *testing.T) {
	fetcher := newGatedFetcher(2)
	ctrl := NewController(fetcher, nil, 10, testLogger())

	ctrl.SetField(models.FieldCountry, "India")
	older := ctrl.Submit(context.Background())
	<-fetcher.started

	ctrl.SetField(models.FieldCountry, "Brazil")
	newer := ctrl.Submit(context.Background())
	<-fetcher.started

	// the newer request resolves first
	latest := makeProfiles("brazil", 2)
	fetcher.replies[1] <- fetchReply{profiles: latest}
	if err := wait(t, newer); err != nil {
		t.Fatal(err)
	}
	if ctrl.State().Loading {
		t.Fatal("latest request resolved, loading should be cleared")
	}

	fetcher.replies[0] <- fetchReply{profiles: makeProfiles("india", 5)}
	if err := wait(t, older); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(latest, ctrl.State().Results); diff != "" {
		t.Fatalf("superseded response replaced the results: %s", diff)
	}
	if got := fetcher.calls[0].Country; got != "India" {
		t.Fatalf("first request sent %q", got)
	}
}

func TestOlderResponseDoesNotClearLoading(t *testing.T) {
	fetcher := newGatedFetcher(2)
	ctrl := NewController(fetcher, nil, 10, testLogger())

	older := ctrl.Submit(context.Background())
	<-fetcher.started
	newer := ctrl.Submit(context.Background())
	<-fetcher.started

	fetcher.replies[0] <- fetchReply{profiles: makeProfiles("old", 1)}
	wait(t, older)
	s := ctrl.State()
	if !s.Loading {
		t.Fatal("the latest request is still pending")
	}
	if !s.Results.Empty() {
		t.Fatal("a superseded response must not be shown")
	}

	fetcher.replies[1] <- fetchReply{err: errors.New("boom")}
	wait(t, newer)
	if ctrl.State().Loading {
		t.Fatal("loading should clear once the latest request fails")
	}
}

func TestToggleThemeTouchesOnlyPresentation(t *testing.T) {
	ctrl := NewController(staticFetcher{profiles: makeProfiles("p", 12)}, nil, 10, testLogger())
	ctrl.SetField(models.FieldIndustry, "Retail")
	wait(t, ctrl.Submit(context.Background()))
	ctrl.ChangePage(2, 10)

	before := ctrl.State()
	ctrl.ToggleTheme()
	after := ctrl.State()

	if !after.DarkMode || after.Theme() != ThemeDark {
		t.Fatal("theme did not toggle")
	}
	ignoreTheme := cmpopts.IgnoreFields(ViewState{}, "DarkMode")
	if diff := cmp.Diff(before, after, ignoreTheme, cmp.AllowUnexported(ViewState{})); diff != "" {
		t.Fatal(diff)
	}

	ctrl.ToggleTheme()
	if ctrl.State().Theme() != ThemeLight {
		t.Fatal("theme did not toggle back")
	}
}

func TestViewStateSetField(t *testing.T) {
	s := NewViewState(10)
	s, ok := s.SetField(models.FieldPages, "4")
	if !ok || s.Criteria.Pages != "4" {
		t.Fatalf("pages not set: %+v", s.Criteria)
	}
	if _, ok := s.SetField("unknown", "x"); ok {
		t.Fatal("unknown field accepted")
	}
}

func TestChangePageClamps(t *testing.T) {
	s := NewViewState(10).CompleteFetch(0, makeProfiles("p", 25))
	s = s.ChangePage(7, 10)
	if s.Pagination.CurrentPage != 3 {
		t.Fatalf("page should clamp to 3, got %d", s.Pagination.CurrentPage)
	}
	if got := s.Pagination.Serial(0); got != 21 {
		t.Fatalf("serial = %d, want 21", got)
	}
}

func TestExportsOnEmptyResults(t *testing.T) {
	ctrl := NewController(staticFetcher{}, semaphore.NewWeighted(2), 10, testLogger())
	if ctrl.State().CanExport() {
		t.Fatal("exports must be disabled without results")
	}

	res, err := ctrl.ExportPDF(context.Background(), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if res.Pages != 1 || res.Blocks != 0 {
		t.Fatalf("pages=%d blocks=%d", res.Pages, res.Blocks)
	}

	data, err := ctrl.ExportSpreadsheet(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook bytes")
	}
}

func TestExportHonoursContext(t *testing.T) {
	sem := semaphore.NewWeighted(1)
	if err := sem.Acquire(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	ctrl := NewController(staticFetcher{}, sem, 10, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ctrl.ExportSpreadsheet(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSessions(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(func() *Controller {
		return NewController(staticFetcher{}, nil, 10, testLogger())
	}, time.Hour, testLogger())
	sessions.now = func() time.Time { return now }

	id, ctrl, created := sessions.Get("")
	if !created {
		t.Fatal("expected a new session")
	}
	gotID, again, created := sessions.Get(id.String())
	if created || again != ctrl || gotID != id {
		t.Fatal("expected the same session back")
	}
	if _, _, created := sessions.Get("not-a-uuid"); !created {
		t.Fatal("a malformed id gets a fresh session")
	}
	if sessions.Len() != 2 {
		t.Fatalf("sessions = %d", sessions.Len())
	}

	now = now.Add(30 * time.Minute)
	sessions.Get(id.String())
	now = now.Add(45 * time.Minute)

	if n := sessions.Evict(); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	if _, _, created := sessions.Get(id.String()); created {
		t.Fatal("recently used session was evicted")
	}
}

func TestSessionsKeepLoadingControllers(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fetcher := newGatedFetcher(1)
	sessions := NewSessions(func() *Controller {
		return NewController(fetcher, nil, 10, testLogger())
	}, time.Minute, testLogger())
	sessions.now = func() time.Time { return now }

	_, ctrl, _ := sessions.Get("")
	done := ctrl.Submit(context.Background())
	<-fetcher.started

	now = now.Add(time.Hour)
	if n := sessions.Evict(); n != 0 {
		t.Fatal("a session with a search in flight must survive eviction")
	}

	fetcher.replies[0] <- fetchReply{profiles: models.ResultSet{}}
	wait(t, done)
	if n := sessions.Evict(); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
}
