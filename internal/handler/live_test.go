package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ravenshold/guildhall/api/internal/middleware"
	"github.com/ravenshold/guildhall/api/internal/model"
	"github.com/ravenshold/guildhall/api/internal/service"
)

// ============================================================================
// Mock repository
// ============================================================================

type mockMemberRepo struct {
	listFunc func(ctx context.Context) ([]*model.Member, error)
}

func (m *mockMemberRepo) Create(ctx context.Context, member *model.Member) error { return nil }
func (m *mockMemberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	return nil, nil
}
func (m *mockMemberRepo) List(ctx context.Context) ([]*model.Member, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []*model.Member{}, nil
}
func (m *mockMemberRepo) ListByParty(ctx context.Context, partyID string) ([]*model.Member, error) {
	return []*model.Member{}, nil
}
func (m *mockMemberRepo) ListUnassigned(ctx context.Context) ([]*model.Member, error) {
	return []*model.Member{}, nil
}
func (m *mockMemberRepo) SetParty(ctx context.Context, id string, partyID *string) error {
	return nil
}
func (m *mockMemberRepo) ClearParty(ctx context.Context, partyID string) error { return nil }
func (m *mockMemberRepo) Delete(ctx context.Context, id string) error          { return nil }

// ============================================================================
// Stream
// ============================================================================

// newLiveServer runs the live handler under a real HTTP server, behind
// the same middleware wrappers as deployment, so connection deadlines
// and writer unwrapping behave as they do in production.
func newLiveServer(t *testing.T, feed *service.Feed, writeTimeout time.Duration) *httptest.Server {
	t.Helper()

	roster := service.NewRosterService(&mockMemberRepo{}, feed)
	h := NewLiveHandler(feed, roster, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/live/{collection}", h.Stream)

	srv := httptest.NewUnstartedServer(middleware.Chain(mux, middleware.Logger, middleware.Compress))
	srv.Config.WriteTimeout = writeTimeout
	srv.Start()
	t.Cleanup(srv.Close)
	return srv
}

// openStream connects to the live endpoint the way an EventSource client
// does.
func openStream(t *testing.T, url string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// readEvents forwards the "event:" name of every SSE frame on the stream.
// The channel closes when the server drops the connection.
func readEvents(body *bufio.Scanner) <-chan string {
	events := make(chan string, 16)
	go func() {
		defer close(events)
		for body.Scan() {
			line := body.Text()
			if strings.HasPrefix(line, "event: ") {
				events <- strings.TrimPrefix(line, "event: ")
			}
		}
	}()
	return events
}

func waitForEvent(t *testing.T, events <-chan string, want string) {
	t.Helper()
	for {
		select {
		case got, ok := <-events:
			if !ok {
				t.Fatalf("stream closed while waiting for %q event", want)
			}
			if got == want {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q event", want)
		}
	}
}

func TestStream_SurvivesServerWriteTimeout(t *testing.T) {
	feed := service.NewFeed()
	defer feed.Close()

	writeTimeout := 250 * time.Millisecond
	srv := newLiveServer(t, feed, writeTimeout)

	resp := openStream(t, srv.URL+"/v1/live/members")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected Content-Type text/event-stream, got %q", ct)
	}

	events := readEvents(bufio.NewScanner(resp.Body))
	waitForEvent(t, events, "connected")
	waitForEvent(t, events, "snapshot")

	// Outlive the write deadline, then verify publishes still flow
	time.Sleep(3 * writeTimeout)
	feed.Publish(service.CollectionMembers)
	waitForEvent(t, events, "snapshot")
}

func TestStream_PublishYieldsFreshSnapshot(t *testing.T) {
	feed := service.NewFeed()
	defer feed.Close()

	srv := newLiveServer(t, feed, 5*time.Second)

	resp := openStream(t, srv.URL+"/v1/live/members")
	events := readEvents(bufio.NewScanner(resp.Body))
	waitForEvent(t, events, "connected")
	waitForEvent(t, events, "snapshot")

	feed.Publish(service.CollectionMembers)
	waitForEvent(t, events, "snapshot")

	feed.Publish(service.CollectionMembers)
	waitForEvent(t, events, "snapshot")
}

func TestStream_UnknownCollection(t *testing.T) {
	feed := service.NewFeed()
	defer feed.Close()

	srv := newLiveServer(t, feed, 5*time.Second)

	resp := openStream(t, srv.URL+"/v1/live/treasury")

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected Content-Type application/problem+json, got %q", ct)
	}
}
