package main

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cory-johannsen/twinstick/internal/config"
	"github.com/cory-johannsen/twinstick/internal/game/combat"
	"github.com/cory-johannsen/twinstick/internal/game/dice"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
	"github.com/cory-johannsen/twinstick/internal/game/loot"
	"github.com/cory-johannsen/twinstick/internal/game/sim"
	"github.com/cory-johannsen/twinstick/internal/game/stats"
	"github.com/cory-johannsen/twinstick/internal/scripting"
)

// Character templates for the skirmish roster.
var (
	playerStats = stats.New(100, combat.CharacterSize, 400, 1, 0)
	enemyStats  = stats.New(20, combat.CharacterSize, 300, 1, 0)
)

type content struct {
	weapons map[string]*combat.WeaponDef
	tables  map[string]*loot.DropTable
	scripts *scripting.Manager
	brains  []string
}

func (c *content) close() { c.scripts.Close() }

// loadContent reads every configured content directory. Empty directories in
// cfg are skipped.
func loadContent(cfg config.ContentConfig, roller *dice.Roller, logger *zap.Logger) (*content, error) {
	c := &content{
		weapons: map[string]*combat.WeaponDef{},
		tables:  map[string]*loot.DropTable{},
		scripts: scripting.NewManager(roller, logger),
	}
	var err error
	if cfg.WeaponsDir != "" {
		if c.weapons, err = combat.LoadWeaponDefs(cfg.WeaponsDir); err != nil {
			return nil, err
		}
	}
	if cfg.LootDir != "" {
		if c.tables, err = loot.LoadDropTables(cfg.LootDir); err != nil {
			return nil, err
		}
	}
	if cfg.ScriptsDir != "" {
		if c.brains, err = c.scripts.LoadDir(cfg.ScriptsDir, cfg.ScriptInstructionLimit); err != nil {
			c.scripts.Close()
			return nil, err
		}
	}
	return c, nil
}

// weaponConfig converts the weapon section into combat tunables.
func weaponConfig(w config.WeaponConfig) combat.WeaponConfig {
	cfg := combat.DefaultWeaponConfig()
	cfg.ClipSize = w.ClipSize
	cfg.MaxAmmo = w.MaxAmmo
	cfg.FiringSpeed = w.FiringSpeed
	cfg.ReloadSpeed = w.ReloadSpeed
	cfg.JamChance = w.JamChance
	cfg.JamSpeed = w.JamSpeed
	cfg.BulletLifeTime = w.BulletLifeTime
	return cfg
}

// newWeapon issues the weapon named id, or one built from the weapon section
// when id is empty.
func (c *content) newWeapon(id string, fallback config.WeaponConfig, logger *zap.Logger) (*combat.Weapon, error) {
	if id == "" {
		return combat.NewWeapon(weaponConfig(fallback), combat.WithLogger(logger)), nil
	}
	def, ok := c.weapons[id]
	if !ok {
		return nil, fmt.Errorf("unknown weapon %q (have %v)", id, combat.SortedIDs(c.weapons))
	}
	return combat.NewWeaponFromDef(def, logger), nil
}

// buildArena spawns the player at the origin facing +Y, the enemies evenly
// spaced on a ring facing the player, and the drop table's pickups between
// them.
func buildArena(cfg config.Config, c *content, rng dice.Source, logger *zap.Logger) (*sim.Arena, error) {
	simCfg := cfg.Simulation
	arena := sim.NewArena(rng, sim.WithLogger(logger), sim.WithBulletCap(simCfg.BulletCap))

	pw, err := c.newWeapon(simCfg.PlayerWeapon, cfg.Weapon, logger)
	if err != nil {
		return nil, fmt.Errorf("player weapon: %w", err)
	}
	player := combat.NewCharacter("player", geom.Vec2{}, playerStats, combat.StylePlayer, pw)
	arena.Spawn(player, sim.AlwaysFire{Aim: true})

	var enemyBrain sim.Brain = sim.AlwaysFire{Aim: true}
	if simCfg.EnemyBrain != "" {
		if !slices.Contains(c.brains, simCfg.EnemyBrain) {
			return nil, fmt.Errorf("unknown brain script %q (have %v)", simCfg.EnemyBrain, c.brains)
		}
		enemyBrain = sim.NewScriptedBrain(c.scripts, simCfg.EnemyBrain)
	}
	for i := 0; i < simCfg.Enemies; i++ {
		w, err := c.newWeapon(simCfg.EnemyWeapon, cfg.Weapon, logger)
		if err != nil {
			return nil, fmt.Errorf("enemy weapon: %w", err)
		}
		angle := 360 * float64(i) / float64(simCfg.Enemies)
		pos := geom.Heading(angle).Scale(simCfg.ArenaRadius)
		e := combat.NewCharacter(fmt.Sprintf("enemy-%d", i+1), pos, enemyStats, combat.StyleEnemyCharacter, w)
		e.SetRotation(geom.RotationTowards(pos, geom.Vec2{}))
		arena.Spawn(e, enemyBrain)
	}

	if simCfg.DropTable != "" {
		table, ok := c.tables[simCfg.DropTable]
		if !ok {
			return nil, fmt.Errorf("unknown drop table %q", simCfg.DropTable)
		}
		for _, p := range table.Pickups(geom.V(0, -simCfg.ArenaRadius/2)) {
			arena.AddPickup(p)
		}
	}
	return arena, nil
}
