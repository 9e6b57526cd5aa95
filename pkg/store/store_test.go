package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/rclayout/pkg/errors"
	"github.com/matzehuels/rclayout/pkg/form"
)

func testRecord(formID string, at time.Time) *Record {
	rec := NewRecord(form.Form{ID: formID}, form.Layout{Form: formID, Root: form.Node{Type: "column"}}, "h-"+formID)
	rec.CreatedAt = at
	return rec
}

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := testRecord("IDD_A", base)
	b := testRecord("IDD_B", base.Add(time.Minute))
	a2 := testRecord("IDD_A", base.Add(2*time.Minute))
	for _, r := range []*Record{a, b, a2} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := s.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Form.ID != "IDD_B" || got.Hash != "h-IDD_B" || got.Layout.Root.Type != "column" {
		t.Errorf("Get returned %+v", got)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, b.CreatedAt)
	}

	all, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != a2.ID || all[2].ID != a.ID {
		t.Errorf("List order wrong: %v", ids(all))
	}

	onlyA, err := s.List(ctx, ListOptions{Form: "IDD_A", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyA) != 1 || onlyA[0].ID != a2.ID {
		t.Errorf("filtered list = %v, want [%s]", ids(onlyA), a2.ID)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, a.ID); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("Get after delete = %v, want LAYOUT_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, a.ID); err != nil {
		t.Errorf("deleting a missing record should not fail: %v", err)
	}
}

func ids(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close(context.Background())
	exerciseStore(t, s)
}

func TestMemoryStoreRejectsEmptyID(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Save(context.Background(), &Record{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(empty id) = %v, want INVALID_INPUT", err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	rec := testRecord("IDD_A", time.Now())
	_ = s.Save(ctx, rec)

	got, _ := s.Get(ctx, rec.ID)
	got.Hash = "changed"
	again, _ := s.Get(ctx, rec.ID)
	if again.Hash != "h-IDD_A" {
		t.Error("Get exposed internal state")
	}
}

func TestNewRecord(t *testing.T) {
	r1 := NewRecord(form.Form{ID: "A"}, form.Layout{}, "")
	r2 := NewRecord(form.Form{ID: "A"}, form.Layout{}, "")
	if r1.ID == r2.ID {
		t.Error("record ids should be unique")
	}
	if !ValidID(r1.ID) {
		t.Errorf("ValidID(%q) = false", r1.ID)
	}
	if ValidID("not-a-uuid") {
		t.Error("ValidID accepted garbage")
	}
	if r1.CreatedAt.IsZero() || r1.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want UTC now", r1.CreatedAt)
	}
}

func TestListOptionsLimit(t *testing.T) {
	if got := (ListOptions{}).limit(); got != DefaultListLimit {
		t.Errorf("limit() = %d, want %d", got, DefaultListLimit)
	}
	if got := (ListOptions{Limit: 7}).limit(); got != 7 {
		t.Errorf("limit() = %d, want 7", got)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("RCLAYOUT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("RCLAYOUT_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, MongoOptions{
		URI:        uri,
		Database:   "rclayout_test",
		Collection: "layouts_" + time.Now().Format("150405.000000"),
	})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer s.Close(ctx)
	t.Cleanup(func() { _ = s.coll.Drop(context.Background()) })
	exerciseStore(t, s)
}

func TestNewMongoStoreErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := NewMongoStore(ctx, MongoOptions{URI: "localhost:27017"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad uri = %v, want INVALID_INPUT", err)
	}

	if testing.Short() {
		t.Skip("dials an unreachable server")
	}
	_, err := NewMongoStore(ctx, MongoOptions{
		URI:            "mongodb://127.0.0.1:1",
		ConnectTimeout: 200 * time.Millisecond,
	})
	if !errors.Is(err, errors.ErrCodeStoreUnavailable) {
		t.Errorf("unreachable = %v, want STORE_UNAVAILABLE", err)
	}
}
