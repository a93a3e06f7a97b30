package loot

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/twinstick/internal/game/geom"
)

// DropTable lists the loot an enemy kind can leave behind.
type DropTable struct {
	ID      string         `yaml:"id"`
	Entries []PossibleLoot `yaml:"entries"`
}

// Validate checks that the table has an ID and only known entries.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff every entry is a known loot key; an empty
// entry list is valid.
func (t *DropTable) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("drop table: id must not be empty"))
	}
	for i, e := range t.Entries {
		if _, err := Parse(string(e)); err != nil {
			errs = append(errs, fmt.Errorf("drop table %q: entries[%d]: %w", t.ID, i, err))
		}
	}
	return errors.Join(errs...)
}

// Pickups lays every entry out in a row starting at pos, one pickup width
// apart.
//
// Precondition: t.Validate() returned nil.
func (t *DropTable) Pickups(pos geom.Vec2) []*Pickup {
	out := make([]*Pickup, 0, len(t.Entries))
	for _, e := range t.Entries {
		out = append(out, e.Drop(pos))
		pos.X += PickupSize.X
	}
	return out
}

// TotalWeight returns the sum of the drop weights of every entry.
func (t *DropTable) TotalWeight() int {
	n := 0
	for _, e := range t.Entries {
		n += e.Weight()
	}
	return n
}

// LoadDropTables reads every *.yaml file in dir as a DropTable.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns tables keyed by ID, or an error if any file fails to
// parse or validate.
func LoadDropTables(dir string) (map[string]*DropTable, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading drop table dir %q: %w", dir, err)
	}
	tables := make(map[string]*DropTable)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var t DropTable
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		if _, dup := tables[t.ID]; dup {
			return nil, fmt.Errorf("duplicate drop table %q in %q", t.ID, path)
		}
		tables[t.ID] = &t
	}
	return tables, nil
}
