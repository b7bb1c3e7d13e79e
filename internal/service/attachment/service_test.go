package attachment

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"tailorshop/internal/domain"
)

type stubRepo struct {
	created    *domain.Attachment
	createErr  error
	lastCreate domain.Attachment
	byID       *domain.Attachment
	byIDErr    error
	list       []domain.Attachment
	listErr    error
	deleteErr  error
	deleted    string
}

func (s *stubRepo) Create(_ context.Context, a domain.Attachment) (*domain.Attachment, error) {
	s.lastCreate = a
	return s.created, s.createErr
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Attachment, error) {
	return s.byID, s.byIDErr
}

func (s *stubRepo) ListByOrder(_ context.Context, _ string) ([]domain.Attachment, error) {
	return s.list, s.listErr
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.deleted = id
	return s.deleteErr
}

type stubOrderRepo struct {
	order *domain.Order
	err   error
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.err
}

type stubStore struct {
	saveKey  string
	saveErr  error
	signErr  error
	removed  []string
	lastSave string
}

func (s *stubStore) Save(r io.Reader, ext string) (string, error) {
	data, _ := io.ReadAll(r)
	s.lastSave = string(data)
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if s.saveKey != "" {
		return s.saveKey, nil
	}
	return "generated-key" + ext, nil
}

func (s *stubStore) Remove(key string) error {
	s.removed = append(s.removed, key)
	return nil
}

func (s *stubStore) SignedURL(key string, _ time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return "https://shop.example/files/" + key + "?sig=y", nil
}

func testOrder() *domain.Order {
	return &domain.Order{ID: "o1", OwnerID: "op", Currency: "KES", Status: domain.StatusActive}
}

func TestUploadStoresAndRecords(t *testing.T) {
	created := &domain.Attachment{ID: "a1", OrderID: "o1", ObjectKey: "generated-key.jpg"}
	repo := &stubRepo{created: created}
	store := &stubStore{}
	svc := New(repo, &stubOrderRepo{order: testOrder()}, store, time.Hour)

	got, err := svc.Upload(context.Background(), "op", "o1", "sketch.JPG", "image/jpeg", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != created {
		t.Fatalf("unexpected attachment: %+v", got)
	}
	if store.lastSave != "bytes" {
		t.Fatalf("binary not saved")
	}
	if repo.lastCreate.ObjectKey == "" || repo.lastCreate.Kind != "image/jpeg" {
		t.Fatalf("unexpected row: %+v", repo.lastCreate)
	}
}

func TestUploadCleansUpOnRowFailure(t *testing.T) {
	repo := &stubRepo{createErr: errors.New("insert failed")}
	store := &stubStore{saveKey: "orphan.jpg"}
	svc := New(repo, &stubOrderRepo{order: testOrder()}, store, time.Hour)
	if _, err := svc.Upload(context.Background(), "op", "o1", "a.jpg", "", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error")
	}
	if len(store.removed) != 1 || store.removed[0] != "orphan.jpg" {
		t.Fatalf("expected stored object to be removed, got %v", store.removed)
	}
}

func TestUploadOwnership(t *testing.T) {
	svc := New(&stubRepo{}, &stubOrderRepo{order: testOrder()}, &stubStore{}, time.Hour)
	_, err := svc.Upload(context.Background(), "intruder", "o1", "a.jpg", "", strings.NewReader("x"))
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestListSignsEachAttachment(t *testing.T) {
	repo := &stubRepo{list: []domain.Attachment{
		{ID: "a1", ObjectKey: "k1.jpg"},
		{ID: "a2", ObjectKey: "k2.jpg"},
	}}
	svc := New(repo, &stubOrderRepo{order: testOrder()}, &stubStore{}, time.Hour)
	got, err := svc.List(context.Background(), "op", "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || !strings.Contains(got[0].URL, "k1.jpg") {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestSignedURLFailureReturnsNotOK(t *testing.T) {
	svc := New(&stubRepo{}, &stubOrderRepo{}, &stubStore{signErr: errors.New("no key")}, time.Hour)
	url, ok := svc.SignedURL(&domain.Attachment{ObjectKey: "k.jpg"}, time.Hour)
	if ok || url != "" {
		t.Fatalf("expected signing failure to return not-ok, got %q %v", url, ok)
	}
}

func TestDeleteRemovesRowThenObject(t *testing.T) {
	repo := &stubRepo{byID: &domain.Attachment{ID: "a1", OrderID: "o1", ObjectKey: "k.jpg"}}
	store := &stubStore{}
	svc := New(repo, &stubOrderRepo{order: testOrder()}, store, time.Hour)
	if err := svc.Delete(context.Background(), "op", "a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.deleted != "a1" || len(store.removed) != 1 {
		t.Fatalf("expected row and object removal")
	}
}

func TestDeleteOwnership(t *testing.T) {
	repo := &stubRepo{byID: &domain.Attachment{ID: "a1", OrderID: "o1", ObjectKey: "k.jpg"}}
	svc := New(repo, &stubOrderRepo{order: testOrder()}, &stubStore{}, time.Hour)
	if err := svc.Delete(context.Background(), "intruder", "a1"); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if repo.deleted != "" {
		t.Fatalf("row must not be deleted")
	}
}
