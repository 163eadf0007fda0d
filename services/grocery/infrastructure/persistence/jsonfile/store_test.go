package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghuser/grocerylists/pkg/config"
	"github.com/ghuser/grocerylists/pkg/logger"
	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grocery-lists.json")
	return NewStore(path, logger.New(&config.Config{LogLevel: "error"}))
}

func sampleCollection() *models.Collection {
	return &models.Collection{Lists: []*models.GroceryList{
		{
			ID:          "2f7c1f0e-7c4b-4d0c-9f6e-2d1b9f3c4a11",
			Name:        "Weekly",
			DateCreated: "2024-01-15T10:30:00.000Z",
			DateUpdated: "2024-01-16T08:00:00.250Z",
			Items: []*models.Item{
				{ID: "i-1", Name: "Milk", Quantity: 2, Category: "dairy", Position: 1},
				{ID: "i-2", Name: "Flour", Quantity: 0.5, Category: "", Position: 2, Checked: true},
			},
		},
		{
			ID:          "9a0b2c3d-1e2f-4a5b-8c7d-6e5f4a3b2c1d",
			Name:        "Party",
			DateCreated: "2024-02-01T00:00:00.000Z",
			DateUpdated: "2024-02-01T00:00:00.000Z",
			Items:       []*models.Item{},
		},
	}}
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)
	coll := s.Load(context.Background())
	if coll == nil || len(coll.Lists) != 0 {
		t.Fatalf("expected empty collection, got %+v", coll)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	tests := map[string]string{
		"not json":      "{bad json",
		"wrong type":    `{"lists": "nope"}`,
		"empty file":    "",
		"truncated doc": `{"lists": [{"id": "a", "name": "x"`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.WriteFile(s.Path(), []byte(content), 0o600); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			if coll := s.Load(context.Background()); len(coll.Lists) != 0 {
				t.Fatalf("expected empty collection, got %d lists", len(coll.Lists))
			}
		})
	}
}

func TestLoad_NullListsIsEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte(`{"lists": null}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	coll := s.Load(context.Background())
	if coll.Lists == nil || len(coll.Lists) != 0 {
		t.Fatalf("expected empty non-nil lists, got %#v", coll.Lists)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := sampleCollection()

	if err := s.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := s.Load(context.Background())

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_DocumentLayout(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(context.Background(), sampleCollection()); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"lists\": [") {
		t.Errorf("expected two-space indented document, got:\n%s", data)
	}

	var raw map[string][]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	list := raw["lists"][0]
	for _, field := range []string{"id", "name", "date_created", "date_updated", "items"} {
		if _, ok := list[field]; !ok {
			t.Errorf("list missing field %q", field)
		}
	}
	item := list["items"].([]any)[0].(map[string]any)
	for _, field := range []string{"id", "name", "quantity", "category", "position", "checked"} {
		if _, ok := item[field]; !ok {
			t.Errorf("item missing field %q", field)
		}
	}
}

func TestSave_EmptyCollection(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(context.Background(), models.NewCollection()); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(s.Path())
	if strings.TrimSpace(string(data)) != "{\n  \"lists\": []\n}" {
		t.Fatalf("unexpected document: %q", data)
	}
}

func TestSave_OverwritesPreviousContents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, sampleCollection()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(ctx, models.NewCollection()); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if got := s.Load(ctx); len(got.Lists) != 0 {
		t.Fatalf("expected overwritten file to be empty, got %d lists", len(got.Lists))
	}

	entries, _ := os.ReadDir(filepath.Dir(s.Path()))
	if len(entries) != 1 {
		t.Fatalf("expected only the data file to remain, got %d entries", len(entries))
	}
}

func TestSave_MissingDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "grocery-lists.json")
	s := NewStore(path, logger.New(&config.Config{LogLevel: "error"}))

	if err := s.Save(context.Background(), sampleCollection()); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail for a missing directory")
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
