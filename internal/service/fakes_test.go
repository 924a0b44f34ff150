package service

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"beezen/internal/client/zendesk"
	"beezen/internal/models"
)

type ticketKey struct {
	instanceID string
	id         int64
}

// fakeStore mimics the gorm store's conflict semantics in memory: inserts
// keep every field, conflicts overwrite only the mutable ones.
type fakeStore struct {
	mu       sync.Mutex
	statuses map[string]models.SyncStatus
	tickets  map[ticketKey]models.Ticket
	users    map[ticketKey]models.User
	runs     []models.SyncRun

	ticketWrites    int
	failTicketWrite int // 1-based write index that fails; 0 = never
	failStatusRead  bool
	statusSaves     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		statuses: map[string]models.SyncStatus{},
		tickets:  map[ticketKey]models.Ticket{},
		users:    map[ticketKey]models.User{},
	}
}

func (f *fakeStore) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (f *fakeStore) GetSyncStatus(ctx context.Context, instanceID string) (*models.SyncStatus, error) {
	if f.failStatusRead {
		return nil, fmt.Errorf("cursor store unreachable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	status, ok := f.statuses[instanceID]
	if !ok {
		return nil, nil
	}
	return &status, nil
}

func (f *fakeStore) SaveSyncStatusTx(ctx context.Context, tx *gorm.DB, status *models.SyncStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusSaves++
	f.statuses[status.InstanceID] = *status
	return nil
}

func (f *fakeStore) ListSyncStatuses(ctx context.Context) ([]models.SyncStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.SyncStatus, 0, len(f.statuses))
	for _, status := range f.statuses {
		out = append(out, status)
	}
	return out, nil
}

func (f *fakeStore) UpsertTicketsTx(ctx context.Context, tx *gorm.DB, items []models.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(items) > 0 {
		f.ticketWrites++
		if f.failTicketWrite > 0 && f.ticketWrites == f.failTicketWrite {
			return fmt.Errorf("write refused")
		}
	}
	for _, item := range items {
		key := ticketKey{instanceID: item.InstanceID, id: item.ID}
		if existing, ok := f.tickets[key]; ok {
			existing.Subject = item.Subject
			existing.Status = item.Status
			existing.UpdatedAt = item.UpdatedAt
			existing.BrandName = item.BrandName
			existing.Channel = item.Channel
			existing.MetricsJSON = item.MetricsJSON
			existing.AssigneeID = item.AssigneeID
			existing.LastSeenAt = item.LastSeenAt
			f.tickets[key] = existing
			continue
		}
		f.tickets[key] = item
	}
	return nil
}

func (f *fakeStore) UpsertUsersTx(ctx context.Context, tx *gorm.DB, items []models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		key := ticketKey{instanceID: item.InstanceID, id: item.ID}
		if existing, ok := f.users[key]; ok {
			existing.Name = item.Name
			existing.Email = item.Email
			existing.Role = item.Role
			existing.Active = item.Active
			existing.LastSeenAt = item.LastSeenAt
			f.users[key] = existing
			continue
		}
		f.users[key] = item
	}
	return nil
}

func (f *fakeStore) UpsertStaffTx(ctx context.Context, tx *gorm.DB, items []models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		f.users[ticketKey{instanceID: item.InstanceID, id: item.ID}] = item
	}
	return nil
}

func (f *fakeStore) CountTicketsTx(ctx context.Context, tx *gorm.DB, instanceID string) (int64, error) {
	return f.CountTickets(ctx, instanceID)
}

func (f *fakeStore) CountTickets(ctx context.Context, instanceID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for key := range f.tickets {
		if key.instanceID == instanceID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) ListTickets(ctx context.Context, instanceID string, limit int) ([]models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Ticket, 0)
	for key, ticket := range f.tickets {
		if key.instanceID == instanceID {
			out = append(out, ticket)
		}
	}
	return out, nil
}

func (f *fakeStore) ListUsers(ctx context.Context, instanceID string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0)
	for key, user := range f.users {
		if key.instanceID == instanceID {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertSyncRun(ctx context.Context, item *models.SyncRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, *item)
	return nil
}

func (f *fakeStore) ListSyncRuns(ctx context.Context, instanceID string, limit int) ([]models.SyncRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SyncRun(nil), f.runs...), nil
}

// fakeFetcher replays scripted incremental pages in order. After the script
// runs out it keeps returning an empty, exhausted page.
type fakeFetcher struct {
	pages  []*zendesk.IncrementalPage
	failAt int // 1-based call index that fails; 0 = never
	calls  int
	starts []int64
}

func (f *fakeFetcher) FetchIncrementalTickets(ctx context.Context, domain string, creds zendesk.Credentials, startTime int64) (*zendesk.IncrementalPage, error) {
	f.calls++
	f.starts = append(f.starts, startTime)
	if f.failAt > 0 && f.calls == f.failAt {
		return nil, &zendesk.APIError{Status: 429, Body: "rate limited"}
	}
	if f.calls <= len(f.pages) {
		return f.pages[f.calls-1], nil
	}
	return &zendesk.IncrementalPage{}, nil
}

func makeRawTickets(n int, firstID int64, status string) []zendesk.RawTicket {
	out := make([]zendesk.RawTicket, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, zendesk.RawTicket{
			ID:      firstID + int64(i),
			Subject: fmt.Sprintf("ticket %d", firstID+int64(i)),
			Status:  status,
		})
	}
	return out
}
