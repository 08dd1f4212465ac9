package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/recordkeeper/recordkeeper/internal/dbx"
	"github.com/recordkeeper/recordkeeper/internal/logging"
	"github.com/recordkeeper/recordkeeper/internal/server/config"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/accounts"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/documents"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/headers"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/items"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/reminders"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/repomanager"
)

// -------- test fakes --------

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeAccountsRepo struct {
	accounts.Repository

	created    *models.Account
	createErr  error
	byEmail    *models.Account
	byEmailErr error
	disableErr error
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *a
	out.ID = 1
	f.created = &out
	return &out, nil
}

func (f *fakeAccountsRepo) GetActiveByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
}

func (f *fakeAccountsRepo) Disable(ctx context.Context, id int64) error {
	return f.disableErr
}

type fakeHeadersRepo struct {
	headers.Repository

	created   *models.Header
	createErr error
	byID      *models.Header
	byIDErr   error
	selected  []*models.Header
	selErr    error
}

func (f *fakeHeadersRepo) Create(ctx context.Context, h *models.Header) (*models.Header, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *h
	out.ID = 11
	f.created = &out
	return &out, nil
}

func (f *fakeHeadersRepo) GetByID(ctx context.Context, accountID, id int64) (*models.Header, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeHeadersRepo) SelectByAccount(ctx context.Context, accountID int64) ([]*models.Header, error) {
	return f.selected, f.selErr
}

type fakeItemsRepo struct {
	items.Repository

	created   *models.Item
	createErr error
	selected  []*models.Item
	selErr    error
	deleteErr error
	deleted   []int64
}

func (f *fakeItemsRepo) Create(ctx context.Context, it *models.Item) (*models.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *it
	out.ID = 21
	f.created = &out
	return &out, nil
}

func (f *fakeItemsRepo) SelectByAccount(ctx context.Context, accountID int64) ([]*models.Item, error) {
	return f.selected, f.selErr
}

func (f *fakeItemsRepo) Delete(ctx context.Context, accountID, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRemindersRepo struct {
	reminders.Repository

	created     *models.Reminder
	createErr   error
	updateErr   error
	updated     *models.Reminder
	deleteErr   error
	deleted     []int64
	byItemErr   error
	byItemCalls []int64
	selected    []*models.Reminder
	selErr      error
}

func (f *fakeRemindersRepo) Create(ctx context.Context, r *models.Reminder) (*models.Reminder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *r
	out.ID = 31
	f.created = &out
	return &out, nil
}

func (f *fakeRemindersRepo) Update(ctx context.Context, r *models.Reminder) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = r
	return nil
}

func (f *fakeRemindersRepo) Delete(ctx context.Context, accountID, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRemindersRepo) DeleteByItem(ctx context.Context, accountID, itemID int64) error {
	if f.byItemErr != nil {
		return f.byItemErr
	}
	f.byItemCalls = append(f.byItemCalls, itemID)
	return nil
}

func (f *fakeRemindersRepo) SelectByAccount(ctx context.Context, accountID int64) ([]*models.Reminder, error) {
	return f.selected, f.selErr
}

type fakeDocumentsRepo struct {
	documents.Repository

	created     *models.Document
	createErr   error
	byID        *models.Document
	byIDErr     error
	updated     *models.Document
	updateErr   error
	deleteErr   error
	deleted     []int64
	byItemErr   error
	byItemCalls []int64
	keysByItem  []string
	keysErr     error
	recent      []*models.Document
	recentErr   error
}

func (f *fakeDocumentsRepo) Create(ctx context.Context, d *models.Document) (*models.Document, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *d
	out.ID = 41
	f.created = &out
	return &out, nil
}

func (f *fakeDocumentsRepo) GetByID(ctx context.Context, accountID, id int64) (*models.Document, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeDocumentsRepo) Update(ctx context.Context, d *models.Document) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = d
	return nil
}

func (f *fakeDocumentsRepo) Delete(ctx context.Context, accountID, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDocumentsRepo) DeleteByItem(ctx context.Context, accountID, itemID int64) error {
	if f.byItemErr != nil {
		return f.byItemErr
	}
	f.byItemCalls = append(f.byItemCalls, itemID)
	return nil
}

func (f *fakeDocumentsRepo) SelectKeysByItem(ctx context.Context, accountID, itemID int64) ([]string, error) {
	return f.keysByItem, f.keysErr
}

func (f *fakeDocumentsRepo) SelectRecent(ctx context.Context, accountID int64, limit int) ([]*models.Document, error) {
	return f.recent, f.recentErr
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	a *fakeAccountsRepo
	h *fakeHeadersRepo
	i *fakeItemsRepo
	r *fakeRemindersRepo
	d *fakeDocumentsRepo
}

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository   { return m.a }
func (m *fakeRepoManager) Headers(db dbx.DBTX) headers.Repository     { return m.h }
func (m *fakeRepoManager) Items(db dbx.DBTX) items.Repository         { return m.i }
func (m *fakeRepoManager) Reminders(db dbx.DBTX) reminders.Repository { return m.r }
func (m *fakeRepoManager) Documents(db dbx.DBTX) documents.Repository { return m.d }

type fakeBlobStore struct {
	putKeys    []string
	putTypes   []string
	putErr     error
	deleted    []string
	deleteErr  error
	signedURL  string
	signedKeys []string
	signedTTLs []time.Duration
	signErr    error
}

func (f *fakeBlobStore) Put(ctx context.Context, key string, content []byte, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	f.putTypes = append(f.putTypes, contentType)
	return nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeBlobStore) SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signedKeys = append(f.signedKeys, key)
	f.signedTTLs = append(f.signedTTLs, ttl)
	return f.signedURL, nil
}

// -------- helpers --------

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DownloadLinkTTL = 300 * time.Second
	return cfg
}
