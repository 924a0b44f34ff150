package zendesk

import (
	"context"
	"net/http"
	"testing"
)

func TestFetchAgentStatuses_FirstEndpointWins(t *testing.T) {
	ts, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/agent_availabilities.json" {
			t.Errorf("unexpected call to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"agent_availabilities":[{"agent_id":4,"status":"online","via":"talk"}]}`))
	})

	result, err := client.FetchAgentStatuses(context.Background(), serverDomain(ts), testCreds)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Endpoint != "/api/v2/agent_availabilities.json" {
		t.Fatalf("endpoint=%s", result.Endpoint)
	}
	if len(result.Statuses) != 1 || result.Statuses[0].AgentID != 4 || result.Statuses[0].Channel != "talk" {
		t.Fatalf("statuses=%+v", result.Statuses)
	}
}

func TestFetchAgentStatuses_FallsBackInOrder(t *testing.T) {
	var calls []string
	ts, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		switch r.URL.Path {
		case "/api/agent_availability/availabilities":
			w.Write([]byte(`{"data":[{"id":"9","attributes":{"agent_status":"away","channel":"support"}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	result, err := client.FetchAgentStatuses(context.Background(), serverDomain(ts), testCreds)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Endpoint != "/api/agent_availability/availabilities" {
		t.Fatalf("endpoint=%s", result.Endpoint)
	}
	if len(calls) != 2 || calls[0] != "/api/v2/agent_availabilities.json" {
		t.Fatalf("call order=%v", calls)
	}
	if result.Statuses[0].AgentID != 9 || result.Statuses[0].Status != "away" {
		t.Fatalf("statuses=%+v", result.Statuses)
	}
}

func TestFetchAgentStatuses_ChatShapeIsLastResort(t *testing.T) {
	ts, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v2/chats/agents.json" {
			w.Write([]byte(`{"agents":[{"id":2,"presence":"online"}]}`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	})

	result, err := client.FetchAgentStatuses(context.Background(), serverDomain(ts), testCreds)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Endpoint != "/api/v2/chats/agents.json" {
		t.Fatalf("endpoint=%s", result.Endpoint)
	}
	if result.Statuses[0].Channel != "chat" {
		t.Fatalf("statuses=%+v", result.Statuses)
	}
}

func TestFetchAgentStatuses_AllEndpointsFail(t *testing.T) {
	ts, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := client.FetchAgentStatuses(context.Background(), serverDomain(ts), testCreds); err == nil {
		t.Fatal("expected error when every endpoint fails")
	}
}

func TestFetchAgentStatuses_UnparsableShapeFallsThrough(t *testing.T) {
	ts, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/agent_availabilities.json":
			// 200 but the expected field is missing; the next adapter
			// must still be tried.
			w.Write([]byte(`{"something_else":[]}`))
		case "/api/v2/chats/agents.json":
			w.Write([]byte(`{"agents":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	result, err := client.FetchAgentStatuses(context.Background(), serverDomain(ts), testCreds)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Endpoint != "/api/v2/chats/agents.json" {
		t.Fatalf("endpoint=%s", result.Endpoint)
	}
	if len(result.Statuses) != 0 {
		t.Fatalf("statuses=%+v", result.Statuses)
	}
}
