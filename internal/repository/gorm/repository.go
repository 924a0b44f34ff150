package gormrepository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"beezen/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- cursor store -----------------------------------------------------------

func (s *Store) GetSyncStatus(ctx context.Context, instanceID string) (*models.SyncStatus, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var status models.SyncStatus
	err := s.db.WithContext(ctx).First(&status, "instance_id = ?", instanceID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *Store) SaveSyncStatusTx(ctx context.Context, tx *gorm.DB, status *models.SyncStatus) error {
	if status == nil {
		return nil
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "instance_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"last_sync_timestamp",
			"last_sync_date",
			"ticket_count",
		}),
	}).Create(status).Error
}

func (s *Store) ListSyncStatuses(ctx context.Context) ([]models.SyncStatus, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var statuses []models.SyncStatus
	if err := s.db.WithContext(ctx).Order("instance_id asc").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// --- upsert writer ----------------------------------------------------------

// UpsertTicketsTx writes a reconciled page of tickets. The conflict path
// only touches the mutable columns, so created_at from the first insert
// survives later observations of the same ticket.
func (s *Store) UpsertTicketsTx(ctx context.Context, tx *gorm.DB, items []models.Ticket) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}, {Name: "instance_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"subject",
			"status",
			"updated_at",
			"brand_name",
			"channel",
			"metrics_json",
			"assignee_id",
			"last_seen_at",
		}),
	}), items, 200)
}

func (s *Store) UpsertUsersTx(ctx context.Context, tx *gorm.DB, items []models.User) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}, {Name: "instance_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"email",
			"role",
			"active",
			"last_seen_at",
		}),
	}), items, 200)
}

// UpsertStaffTx also overwrites photo_url, which only the roster
// endpoint knows about.
func (s *Store) UpsertStaffTx(ctx context.Context, tx *gorm.DB, items []models.User) error {
	if len(items) == 0 {
		return nil
	}
	return createInBatches(tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}, {Name: "instance_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"email",
			"role",
			"active",
			"photo_url",
			"last_seen_at",
		}),
	}), items, 200)
}

// --- reads ------------------------------------------------------------------

func (s *Store) CountTicketsTx(ctx context.Context, tx *gorm.DB, instanceID string) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("instance_id = ?", instanceID).
		Count(&count).Error
	return count, err
}

func (s *Store) CountTickets(ctx context.Context, instanceID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	return s.CountTicketsTx(ctx, s.db, instanceID)
}

func (s *Store) ListTickets(ctx context.Context, instanceID string, limit int) ([]models.Ticket, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	limit = normalizeLimit(limit, 3000)
	var items []models.Ticket
	err := s.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("instance_id = ?", instanceID).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListUsers(ctx context.Context, instanceID string) ([]models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.User
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("instance_id = ?", instanceID).
		Order("name asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- sync audit trail -------------------------------------------------------

func (s *Store) InsertSyncRun(ctx context.Context, item *models.SyncRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListSyncRuns(ctx context.Context, instanceID string, limit int) ([]models.SyncRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	limit = normalizeLimit(limit, 50)
	query := s.db.WithContext(ctx).Model(&models.SyncRun{})
	if instanceID != "" {
		query = query.Where("instance_id = ?", instanceID)
	}
	var items []models.SyncRun
	if err := query.Order("started_at desc").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers ----------------------------------------------------------------

func createInBatches[T any](db *gorm.DB, items []T, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := db.CreateInBatches(items[i:end], batchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 5000 {
		return 5000
	}
	return limit
}
