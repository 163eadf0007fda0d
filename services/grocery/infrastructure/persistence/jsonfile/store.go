// Package jsonfile persists the grocery collection as a single indented JSON
// document on the local filesystem.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghuser/grocerylists/pkg/logger"
	"github.com/ghuser/grocerylists/services/grocery/domain/models"
)

// document is the on-disk layout: {"lists": [...]}.
type document struct {
	Lists []listRecord `json:"lists"`
}

type listRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	DateCreated string       `json:"date_created"`
	DateUpdated string       `json:"date_updated"`
	Items       []itemRecord `json:"items"`
}

type itemRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Category string  `json:"category"`
	Position int     `json:"position"`
	Checked  bool    `json:"checked"`
}

// Store implements repositories.Store against a JSON file.
type Store struct {
	path string
	log  logger.Logger
}

// NewStore returns a Store reading and writing the file at path.
func NewStore(path string, log logger.Logger) *Store {
	return &Store{path: path, log: log}
}

// Path returns the file the store writes to.
func (s *Store) Path() string {
	return s.path
}

// Load reads the collection from disk. A missing, unreadable or malformed
// file yields an empty collection so the service can always start.
func (s *Store) Load(ctx context.Context) *models.Collection {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.InfoContext(ctx, "data file not found, starting empty", "path", s.path)
		} else {
			s.log.WarnContext(ctx, "data file unreadable, starting empty", "path", s.path, "error", err)
		}
		return models.NewCollection()
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.WarnContext(ctx, "data file malformed, starting empty", "path", s.path, "error", err)
		return models.NewCollection()
	}

	coll := fromDocument(doc)
	s.log.InfoContext(ctx, "grocery lists loaded", "path", s.path, "lists", len(coll.Lists))
	return coll
}

// Save writes the whole collection. The document goes to a temporary file in
// the same directory which is then renamed over the target, so a failed write
// never truncates the previous contents.
func (s *Store) Save(_ context.Context, coll *models.Collection) error {
	data, err := json.MarshalIndent(toDocument(coll), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Ping reports whether the directory holding the data file is reachable.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", filepath.Dir(s.path))
	}
	return nil
}

func toDocument(coll *models.Collection) document {
	doc := document{Lists: make([]listRecord, 0, len(coll.Lists))}
	for _, l := range coll.Lists {
		rec := listRecord{
			ID:          l.ID,
			Name:        l.Name.String(),
			DateCreated: l.DateCreated,
			DateUpdated: l.DateUpdated,
			Items:       make([]itemRecord, 0, len(l.Items)),
		}
		for _, item := range l.Items {
			rec.Items = append(rec.Items, itemRecord{
				ID:       item.ID,
				Name:     item.Name.String(),
				Quantity: item.Quantity,
				Category: item.Category,
				Position: item.Position,
				Checked:  item.Checked,
			})
		}
		doc.Lists = append(doc.Lists, rec)
	}
	return doc
}

func fromDocument(doc document) *models.Collection {
	coll := &models.Collection{Lists: make([]*models.GroceryList, 0, len(doc.Lists))}
	for _, rec := range doc.Lists {
		l := &models.GroceryList{
			ID:          rec.ID,
			Name:        models.ListName(rec.Name),
			DateCreated: rec.DateCreated,
			DateUpdated: rec.DateUpdated,
			Items:       make([]*models.Item, 0, len(rec.Items)),
		}
		for _, ir := range rec.Items {
			l.Items = append(l.Items, &models.Item{
				ID:       ir.ID,
				Name:     models.ItemName(ir.Name),
				Quantity: ir.Quantity,
				Category: ir.Category,
				Position: ir.Position,
				Checked:  ir.Checked,
			})
		}
		coll.Lists = append(coll.Lists, l)
	}
	return coll
}
