package zendesk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testCreds = Credentials{Email: "agent@example.com", Token: "s3cret"}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	ts := httptest.NewTLSServer(handler)
	t.Cleanup(ts.Close)
	return ts, NewClient(ts.Client())
}

func serverDomain(ts *httptest.Server) string {
	return strings.TrimPrefix(ts.URL, "https://")
}

func TestFetchIncrementalTickets_RequestShape(t *testing.T) {
	var gotPath, gotQuery, gotUser, gotPass string
	ts, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUser, gotPass, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tickets":[{"id":7,"subject":"printer on fire","status":"open"}],"count":1,"end_time":1700000100}`))
	})

	page, err := client.FetchIncrementalTickets(context.Background(), serverDomain(ts), testCreds, 1700000000)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/api/v2/incremental/tickets.json" {
		t.Fatalf("path=%s", gotPath)
	}
	if !strings.Contains(gotQuery, "start_time=1700000000") {
		t.Fatalf("query missing start_time: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "include=users%2Cmetric_sets%2Cbrands") {
		t.Fatalf("query missing sideloads: %s", gotQuery)
	}
	if gotUser != "agent@example.com/token" || gotPass != "s3cret" {
		t.Fatalf("basic auth user=%q pass=%q", gotUser, gotPass)
	}
	if len(page.Tickets) != 1 || page.Tickets[0].ID != 7 || page.EndTime != 1700000100 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestFetchStaff_FiltersRoles(t *testing.T) {
	ts, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/users.json" {
			t.Errorf("path=%s", r.URL.Path)
		}
		roles := r.URL.Query()["role[]"]
		if len(roles) != 2 || roles[0] != "agent" || roles[1] != "admin" {
			t.Errorf("roles=%v", roles)
		}
		w.Write([]byte(`{"users":[{"id":11,"name":"Nora","role":"agent","photo":{"content_url":"https://cdn/x.png"}}],"count":1}`))
	})

	page, err := client.FetchStaff(context.Background(), serverDomain(ts), testCreds)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(page.Users) != 1 || page.Users[0].Name != "Nora" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Users[0].Photo == nil || page.Users[0].Photo.ContentURL != "https://cdn/x.png" {
		t.Fatalf("photo not decoded: %+v", page.Users[0].Photo)
	}
}

func TestDoRequest_APIErrorTruncatesBody(t *testing.T) {
	ts, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(strings.Repeat("x", 2000)))
	})

	_, err := client.FetchIncrementalTickets(context.Background(), serverDomain(ts), testCreds, 0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Fatalf("status=%d", apiErr.Status)
	}
	if len(apiErr.Body) != maxErrorBody {
		t.Fatalf("body len=%d want %d", len(apiErr.Body), maxErrorBody)
	}
}

func TestSanitizeDomain(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"acme.zendesk.com", "acme.zendesk.com"},
		{"https://acme.zendesk.com", "acme.zendesk.com"},
		{"HTTP://acme.zendesk.com/", "acme.zendesk.com"},
		{"https://acme.zendesk.com//", "acme.zendesk.com"},
		{"  ", ""},
	}
	for _, tc := range cases {
		if got := SanitizeDomain(tc.in); got != tc.want {
			t.Errorf("SanitizeDomain(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestFetchIncrementalTickets_EmptyDomain(t *testing.T) {
	client := NewClient(nil)
	if _, err := client.FetchIncrementalTickets(context.Background(), "https:///", testCreds, 0); err == nil {
		t.Fatal("expected error for empty domain")
	}
}
