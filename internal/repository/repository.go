package repository

import (
	"context"

	"gorm.io/gorm"

	"beezen/internal/models"
)

// Repository is the persistence surface for the sync pipeline and the
// read endpoints. Tx-suffixed methods run inside a caller-owned
// transaction so a page's rows and its cursor advance commit together.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Cursor store.
	GetSyncStatus(ctx context.Context, instanceID string) (*models.SyncStatus, error)
	SaveSyncStatusTx(ctx context.Context, tx *gorm.DB, status *models.SyncStatus) error
	ListSyncStatuses(ctx context.Context) ([]models.SyncStatus, error)

	// Upsert writer.
	UpsertTicketsTx(ctx context.Context, tx *gorm.DB, items []models.Ticket) error
	UpsertUsersTx(ctx context.Context, tx *gorm.DB, items []models.User) error
	UpsertStaffTx(ctx context.Context, tx *gorm.DB, items []models.User) error

	// Reads.
	CountTicketsTx(ctx context.Context, tx *gorm.DB, instanceID string) (int64, error)
	CountTickets(ctx context.Context, instanceID string) (int64, error)
	ListTickets(ctx context.Context, instanceID string, limit int) ([]models.Ticket, error)
	ListUsers(ctx context.Context, instanceID string) ([]models.User, error)

	// Sync audit trail.
	InsertSyncRun(ctx context.Context, item *models.SyncRun) error
	ListSyncRuns(ctx context.Context, instanceID string, limit int) ([]models.SyncRun, error)
}
