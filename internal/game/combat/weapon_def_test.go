package combat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/twinstick/internal/game/combat"
)

func validDef() *combat.WeaponDef {
	return &combat.WeaponDef{
		ID:             "pistol",
		Name:           "Pistol",
		ClipSize:       6,
		MaxAmmo:        24,
		FiringSpeed:    0.5,
		ReloadSpeed:    2,
		JamChance:      0.05,
		JamSpeed:       0.33,
		BulletLifeTime: 0.5,
	}
}

func TestWeaponDef_Validate_AcceptsMinimal(t *testing.T) {
	assert.NoError(t, validDef().Validate())
}

func TestWeaponDef_Validate_RejectsEmpty(t *testing.T) {
	err := (&combat.WeaponDef{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clip_size")
	assert.Contains(t, err.Error(), "bullet_life_time")
}

func TestWeaponDef_Validate_RejectsBadSpeciesAndChance(t *testing.T) {
	d := validDef()
	d.Species = "plasma"
	d.JamChance = 1.5
	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plasma")
	assert.Contains(t, err.Error(), "jam_chance")
}

func TestNewWeaponFromDef(t *testing.T) {
	d := validDef()
	d.ClipSize = 12
	d.Species = "ice"
	w := combat.NewWeaponFromDef(d, nil)
	assert.Equal(t, 12, w.ClipSize())
	assert.Equal(t, combat.SpeciesIce, w.DefaultSpecies())
	assert.Equal(t, combat.KindIceProjectile, w.ActiveChain()[0].Buff.Kind())
}

func TestLoadWeaponDefs_LoadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := `id: smg
name: SMG
clip_size: 30
max_ammo: 120
firing_speed: 0.1
reload_speed: 1.5
jam_chance: 0.02
jam_speed: 0.3
bullet_life_time: 0.4
species: electric
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "smg.yaml"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	defs, err := combat.LoadWeaponDefs(dir)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, 30, defs["smg"].ClipSize)
	assert.Equal(t, []string{"smg"}, combat.SortedIDs(defs))
}

func TestLoadWeaponDefs_RejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: x\nclip_size: 1\nbullet_life_time: 1\nbarrels: 2\n"), 0o644))
	_, err := combat.LoadWeaponDefs(dir)
	assert.Error(t, err)
}

func TestLoadWeaponDefs_RejectsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	body := []byte("id: x\nclip_size: 1\nbullet_life_time: 1\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), body, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), body, 0o644))
	_, err := combat.LoadWeaponDefs(dir)
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoadWeaponDefs_MissingDir(t *testing.T) {
	_, err := combat.LoadWeaponDefs(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
