package combat

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// WeaponDef is the static description of a weapon loaded from YAML.
type WeaponDef struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	ClipSize       int     `yaml:"clip_size"`
	MaxAmmo        int     `yaml:"max_ammo"`
	FiringSpeed    float64 `yaml:"firing_speed"`
	ReloadSpeed    float64 `yaml:"reload_speed"`
	JamChance      float64 `yaml:"jam_chance"`
	JamSpeed       float64 `yaml:"jam_speed"`
	BulletLifeTime float64 `yaml:"bullet_life_time"`
	Species        string  `yaml:"species"` // empty = basic
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *WeaponDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.ClipSize <= 0 {
		errs = append(errs, fmt.Errorf("clip_size must be > 0, got %d", d.ClipSize))
	}
	if d.MaxAmmo < 0 {
		errs = append(errs, fmt.Errorf("max_ammo must be >= 0, got %d", d.MaxAmmo))
	}
	if d.FiringSpeed < 0 {
		errs = append(errs, fmt.Errorf("firing_speed must be >= 0, got %v", d.FiringSpeed))
	}
	if d.ReloadSpeed < 0 {
		errs = append(errs, fmt.Errorf("reload_speed must be >= 0, got %v", d.ReloadSpeed))
	}
	if d.JamChance < 0 || d.JamChance > 1 {
		errs = append(errs, fmt.Errorf("jam_chance must be in [0,1], got %v", d.JamChance))
	}
	if d.JamSpeed < 0 {
		errs = append(errs, fmt.Errorf("jam_speed must be >= 0, got %v", d.JamSpeed))
	}
	if d.BulletLifeTime <= 0 {
		errs = append(errs, fmt.Errorf("bullet_life_time must be > 0, got %v", d.BulletLifeTime))
	}
	if _, err := ParseSpecies(d.Species); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// Config converts d into WeaponConfig.
// Precondition: d.Validate() returned nil.
func (d *WeaponDef) Config() WeaponConfig {
	species, _ := ParseSpecies(d.Species)
	return WeaponConfig{
		ClipSize:       d.ClipSize,
		MaxAmmo:        d.MaxAmmo,
		FiringSpeed:    d.FiringSpeed,
		ReloadSpeed:    d.ReloadSpeed,
		JamChance:      d.JamChance,
		JamSpeed:       d.JamSpeed,
		BulletLifeTime: d.BulletLifeTime,
		Species:        species,
	}
}

// NewWeaponFromDef builds a fresh weapon from d.
// Precondition: d.Validate() returned nil.
func NewWeaponFromDef(d *WeaponDef, logger *zap.Logger) *Weapon {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewWeapon(d.Config(), WithLogger(logger.With(zap.String("weapon", d.ID))))
}

// LoadWeaponDefs reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it and returns the definitions keyed by ID.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeaponDefs(dir string) (map[string]*WeaponDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeaponDefs: cannot read directory %q: %w", dir, err)
	}
	defs := make(map[string]*WeaponDef)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeaponDefs: cannot read file %q: %w", path, err)
		}
		var d WeaponDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("LoadWeaponDefs: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeaponDefs: invalid weapon in %q: %w", path, err)
		}
		if _, dup := defs[d.ID]; dup {
			return nil, fmt.Errorf("LoadWeaponDefs: duplicate weapon id %q in %q", d.ID, path)
		}
		defs[d.ID] = &d
	}
	return defs, nil
}

// SortedIDs returns the keys of defs in ascending order.
func SortedIDs(defs map[string]*WeaponDef) []string {
	ids := make([]string, 0, len(defs))
	for id := range defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
