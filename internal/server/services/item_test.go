package services

import (
	"context"
	"errors"
	"testing"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

func TestItemCreate_DenormalizesHeaderName(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	h := &fakeHeadersRepo{byID: &models.Header{ID: 11, AccountID: 7, Name: "Insurance"}}
	i := &fakeItemsRepo{}
	s := NewItemService(db, &fakeRepoManager{h: h, i: i}, testLogger())

	item, err := s.Create(context.Background(), 7, 11, "Car policy", "annual", "", "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.HeaderName != "Insurance" {
		t.Fatalf("header name not denormalized: %+v", item)
	}
	if i.created == nil || i.created.HeaderID != 11 || i.created.Title != "Car policy" {
		t.Fatalf("unexpected created item: %+v", i.created)
	}
}

func TestItemCreate_ForeignHeader(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	h := &fakeHeadersRepo{byIDErr: common.ErrNotFound}
	s := NewItemService(db, &fakeRepoManager{h: h, i: &fakeItemsRepo{}}, testLogger())

	if _, err := s.Create(context.Background(), 7, 999, "X", "", "", ""); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want not-found, got %v", err)
	}
}

func TestItemCreate_EmptyTitle(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()
	s := NewItemService(db, &fakeRepoManager{h: &fakeHeadersRepo{}, i: &fakeItemsRepo{}}, testLogger())

	if _, err := s.Create(context.Background(), 7, 11, "", "", "", ""); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestItemList(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	i := &fakeItemsRepo{selected: []*models.Item{
		{ID: 21, Title: "Car policy"},
		{ID: 22, Title: "Passport"},
	}}
	s := NewItemService(db, &fakeRepoManager{i: i}, testLogger())

	items, err := s.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 2 || items[1].Title != "Passport" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestItemDelete_CascadeInOneTx(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	r := &fakeRemindersRepo{}
	d := &fakeDocumentsRepo{keysByItem: []string{"documents/2025/01/01/1-a.pdf"}}
	i := &fakeItemsRepo{}
	s := NewItemService(db, &fakeRepoManager{r: r, d: d, i: i}, testLogger())

	if err := s.Delete(context.Background(), 7, 21); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(r.byItemCalls) != 1 || r.byItemCalls[0] != 21 {
		t.Fatalf("reminders not cascaded: %v", r.byItemCalls)
	}
	if len(d.byItemCalls) != 1 || d.byItemCalls[0] != 21 {
		t.Fatalf("document rows not cascaded: %v", d.byItemCalls)
	}
	if len(i.deleted) != 1 || i.deleted[0] != 21 {
		t.Fatalf("item row not deleted: %v", i.deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestItemDelete_RollsBackWhenItemMissing(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &fakeRemindersRepo{}
	d := &fakeDocumentsRepo{}
	i := &fakeItemsRepo{deleteErr: common.ErrNotFound}
	s := NewItemService(db, &fakeRepoManager{r: r, d: d, i: i}, testLogger())

	if err := s.Delete(context.Background(), 7, 404); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want not-found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestItemDelete_DependentFailureRollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	r := &fakeRemindersRepo{byItemErr: errBoom{}}
	i := &fakeItemsRepo{}
	s := NewItemService(db, &fakeRepoManager{r: r, d: &fakeDocumentsRepo{}, i: i}, testLogger())

	if err := s.Delete(context.Background(), 7, 21); !errors.Is(err, common.ErrStore) {
		t.Fatalf("want store error, got %v", err)
	}
	if len(i.deleted) != 0 {
		t.Fatalf("item must not be deleted after dependent failure")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestItemDelete_KeyCollectionInsideTx(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	// The orphan-key select runs inside the cascade transaction, so its
	// failure must abort the whole delete before any rows go.
	r := &fakeRemindersRepo{}
	i := &fakeItemsRepo{}
	d := &fakeDocumentsRepo{keysErr: errBoom{}}
	s := NewItemService(db, &fakeRepoManager{r: r, d: d, i: i}, testLogger())

	if err := s.Delete(context.Background(), 7, 21); !errors.Is(err, common.ErrStore) {
		t.Fatalf("want store error, got %v", err)
	}
	if len(r.byItemCalls) != 0 || len(i.deleted) != 0 {
		t.Fatalf("nothing may be deleted after a failed key select")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestOverview_GroupsItemsUnderHeaders(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	h := &fakeHeadersRepo{selected: []*models.Header{
		{ID: 1, Name: "Insurance"},
		{ID: 2, Name: "Vehicles"},
	}}
	i := &fakeItemsRepo{selected: []*models.Item{
		{ID: 10, HeaderID: 1, Title: "Car policy"},
		{ID: 11, HeaderID: 1, Title: "Home policy"},
	}}
	d := &fakeDocumentsRepo{recent: []*models.Document{{ID: 41, Name: "scan.pdf"}}}
	s := NewItemService(db, &fakeRepoManager{h: h, i: i, d: d}, testLogger())

	overview, err := s.Overview(context.Background(), 7)
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if len(overview.Headers) != 2 {
		t.Fatalf("unexpected headers: %+v", overview.Headers)
	}
	if len(overview.Headers[0].Items) != 2 || overview.Headers[0].Items[1].Title != "Home policy" {
		t.Fatalf("items not grouped: %+v", overview.Headers[0].Items)
	}
	if len(overview.Headers[1].Items) != 0 {
		t.Fatalf("empty header must have empty item list, got %+v", overview.Headers[1].Items)
	}
	if len(overview.RecentDocuments) != 1 || overview.RecentDocuments[0].Name != "scan.pdf" {
		t.Fatalf("unexpected recent documents: %+v", overview.RecentDocuments)
	}
}
