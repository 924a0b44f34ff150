package service

import (
	"encoding/json"
	"testing"
	"time"

	"beezen/internal/client/zendesk"
)

func TestReconcilePage_SentinelResolution(t *testing.T) {
	brandID := int64(10)
	unknownBrandID := int64(99)
	page := &zendesk.IncrementalPage{
		Tickets: []zendesk.RawTicket{
			{ID: 1, BrandID: &brandID, Via: &zendesk.Via{Channel: "email"}},
			{ID: 2, BrandID: &unknownBrandID},
			{ID: 3},
		},
		Brands: []zendesk.Brand{{ID: brandID, Name: "Bee2link"}},
	}

	tickets, _ := reconcilePage(testInstance, page, time.Now())

	if tickets[0].BrandName != "Bee2link" {
		t.Fatalf("brand=%q want Bee2link", tickets[0].BrandName)
	}
	if tickets[0].Channel != "email" {
		t.Fatalf("channel=%q want email", tickets[0].Channel)
	}
	if tickets[1].BrandName != BrandUnknown {
		t.Fatalf("unresolvable brand=%q want %q", tickets[1].BrandName, BrandUnknown)
	}
	if tickets[2].BrandName != BrandUnknown {
		t.Fatalf("missing brand=%q want %q", tickets[2].BrandName, BrandUnknown)
	}
	if tickets[2].Channel != ChannelUnknown {
		t.Fatalf("missing channel=%q want %q", tickets[2].Channel, ChannelUnknown)
	}
}

func TestReconcilePage_MetricsJoin(t *testing.T) {
	var metric zendesk.MetricSet
	raw := []byte(`{"ticket_id":1,"reply_time_in_minutes":{"calendar":30,"business":12}}`)
	if err := json.Unmarshal(raw, &metric); err != nil {
		t.Fatalf("unmarshal metric: %v", err)
	}
	page := &zendesk.IncrementalPage{
		Tickets:    []zendesk.RawTicket{{ID: 1}, {ID: 2}},
		MetricSets: []zendesk.MetricSet{metric},
	}

	tickets, _ := reconcilePage(testInstance, page, time.Now())

	if string(tickets[0].MetricsJSON) != string(raw) {
		t.Fatalf("metrics blob altered: %s", tickets[0].MetricsJSON)
	}
	// Unmatched metrics stay null, not an error and not an empty object.
	if tickets[1].MetricsJSON != nil {
		t.Fatalf("expected nil metrics for unmatched ticket, got %s", tickets[1].MetricsJSON)
	}
}

func TestReconcilePage_UsersCarriedThrough(t *testing.T) {
	page := &zendesk.IncrementalPage{
		Users: []zendesk.RawUser{
			{ID: 5, Name: "Alice", Email: "alice@acme.com", Role: "agent", Active: true},
		},
	}
	_, users := reconcilePage(testInstance, page, time.Now())
	if len(users) != 1 {
		t.Fatalf("users=%d want 1", len(users))
	}
	if users[0].InstanceID != testInstance || users[0].Name != "Alice" {
		t.Fatalf("unexpected user row: %+v", users[0])
	}
	if users[0].PhotoURL != nil {
		t.Fatalf("delta sync must not set photo_url")
	}
}

func TestDedupeTickets_LastOccurrenceWins(t *testing.T) {
	a, _ := reconcilePage(testInstance, &zendesk.IncrementalPage{
		Tickets: []zendesk.RawTicket{
			{ID: 1, Status: "open"},
			{ID: 2, Status: "open"},
			{ID: 1, Status: "solved"},
		},
	}, time.Now())

	deduped := dedupeTickets(a)
	if len(deduped) != 2 {
		t.Fatalf("len=%d want 2", len(deduped))
	}
	if deduped[0].ID != 1 || deduped[0].Status != "solved" {
		t.Fatalf("expected later occurrence of ticket 1 to win, got %+v", deduped[0])
	}
	if deduped[1].ID != 2 {
		t.Fatalf("order not preserved: %+v", deduped)
	}
}
