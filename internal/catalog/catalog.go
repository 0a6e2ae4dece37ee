// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads the term catalogues produced by upstream
// preprocessing: the allowed GO subtree (id, name pairs) and the curated
// metabolite name list. Catalogue names are exact-match literals; no
// normalization is applied here.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
)

// GOCatalog is the pre-loaded subset of ontology concepts in scope for a
// mining run. Ancestor expansion never leaves this subset.
type GOCatalog struct {
	ids    []string
	byID   map[string]string // id → name
	byName map[string]string // name → id
}

// LoadGOCatalog reads a GO catalogue CSV with header columns GOID, Name.
func LoadGOCatalog(path string) (*GOCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GO catalogue: %w", err)
	}
	defer f.Close()

	cat, err := readGOCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("parsing GO catalogue %s: %w", path, err)
	}
	return cat, nil
}

func readGOCatalog(r io.Reader) (*GOCatalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if header[0] != "GOID" || header[1] != "Name" {
		return nil, fmt.Errorf("unexpected header %v, want [GOID Name]", header)
	}

	cat := &GOCatalog{
		byID:   make(map[string]string),
		byName: make(map[string]string),
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		id, name := rec[0], rec[1]
		if _, seen := cat.byID[id]; seen {
			continue
		}
		cat.ids = append(cat.ids, id)
		cat.byID[id] = name
		cat.byName[name] = id
	}
	return cat, nil
}

// WriteGOCatalog writes id, name pairs as a catalogue CSV, sorted by id
// so the file is stable across runs.
func WriteGOCatalog(path string, names map[string]string) error {
	ids := make([]string, 0, len(names))
	byID := make(map[string]string, len(names))
	for name, id := range names {
		ids = append(ids, id)
		byID[id] = name
	}
	sort.Strings(ids)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating GO catalogue: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"GOID", "Name"}); err != nil {
		return err
	}
	for _, id := range ids {
		if err := cw.Write([]string{id, byID[id]}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Len returns the number of catalogue entries.
func (c *GOCatalog) Len() int { return len(c.ids) }

// IDs returns the catalogue ids in file order.
func (c *GOCatalog) IDs() []string { return c.ids }

// Names returns the catalogue names in file order.
func (c *GOCatalog) Names() []string {
	names := make([]string, len(c.ids))
	for i, id := range c.ids {
		names[i] = c.byID[id]
	}
	return names
}

// IDByName resolves a display name back to its ontology id.
func (c *GOCatalog) IDByName(name string) (string, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// NameByID resolves an ontology id to its display name.
func (c *GOCatalog) NameByID(id string) (string, bool) {
	name, ok := c.byID[id]
	return name, ok
}

// ContainsID reports whether the id belongs to the allowed catalogue.
func (c *GOCatalog) ContainsID(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// LoadMetaboliteNames reads the metabolite name CSV (header columns ID,
// name) and returns the deduplicated names in first-seen order.
func LoadMetaboliteNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metabolite catalogue: %w", err)
	}
	defer f.Close()

	names, err := readMetaboliteNames(f)
	if err != nil {
		return nil, fmt.Errorf("parsing metabolite catalogue %s: %w", path, err)
	}
	return names, nil
}

func readMetaboliteNames(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if header[0] != "ID" || header[1] != "name" {
		return nil, fmt.Errorf("unexpected header %v, want [ID name]", header)
	}

	seen := make(map[string]bool)
	var names []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := rec[1]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
