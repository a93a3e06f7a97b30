// Package config provides Viper-based configuration loading for the skirmish
// simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimulationConfig holds arena and tick loop settings.
type SimulationConfig struct {
	// TickRateHz is the number of fixed simulation steps per second.
	TickRateHz int `mapstructure:"tick_rate_hz"`
	// Seed seeds the jam roller. Zero uses a crypto source.
	Seed int64 `mapstructure:"seed"`
	// MaxTicks stops the run after this many ticks. Zero runs until signalled.
	MaxTicks int `mapstructure:"max_ticks"`
	// BulletCap is the live bullet limit.
	BulletCap int `mapstructure:"bullet_cap"`
	// Enemies is the number of hostile characters spawned around the player.
	Enemies int `mapstructure:"enemies"`
	// ArenaRadius is the distance from the player at which enemies spawn.
	ArenaRadius float64 `mapstructure:"arena_radius"`
	// PlayerWeapon and EnemyWeapon name weapon definitions; empty uses the
	// weapon section.
	PlayerWeapon string `mapstructure:"player_weapon"`
	EnemyWeapon  string `mapstructure:"enemy_weapon"`
	// EnemyBrain names a brain script; empty uses the built-in gunner.
	EnemyBrain string `mapstructure:"enemy_brain"`
	// DropTable names a drop table laid out in front of the player; empty
	// drops nothing.
	DropTable string `mapstructure:"drop_table"`
}

// WeaponConfig holds the tunables of a weapon issued without a definition.
type WeaponConfig struct {
	ClipSize       int     `mapstructure:"clip_size"`
	MaxAmmo        int     `mapstructure:"max_ammo"`
	FiringSpeed    float64 `mapstructure:"firing_speed"`
	ReloadSpeed    float64 `mapstructure:"reload_speed"`
	JamChance      float64 `mapstructure:"jam_chance"`
	JamSpeed       float64 `mapstructure:"jam_speed"`
	BulletLifeTime float64 `mapstructure:"bullet_life_time"`
}

// ContentConfig holds content directory locations. An empty directory is
// skipped.
type ContentConfig struct {
	WeaponsDir string `mapstructure:"weapons_dir"`
	LootDir    string `mapstructure:"loot_dir"`
	ScriptsDir string `mapstructure:"scripts_dir"`
	// ScriptInstructionLimit bounds each brain script call. Zero uses the
	// scripting default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Weapon     WeaponConfig     `mapstructure:"weapon"`
	Content    ContentConfig    `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateWeapon(c.Weapon); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Content.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("content.script_instruction_limit must be >= 0, got %d", c.Content.ScriptInstructionLimit))
	}
	if c.Simulation.EnemyBrain != "" && c.Content.ScriptsDir == "" {
		errs = append(errs, "simulation.enemy_brain requires content.scripts_dir")
	}
	if (c.Simulation.PlayerWeapon != "" || c.Simulation.EnemyWeapon != "") && c.Content.WeaponsDir == "" {
		errs = append(errs, "simulation weapons require content.weapons_dir")
	}
	if c.Simulation.DropTable != "" && c.Content.LootDir == "" {
		errs = append(errs, "simulation.drop_table requires content.loot_dir")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.TickRateHz < 1 {
		errs = append(errs, fmt.Sprintf("simulation.tick_rate_hz must be >= 1, got %d", s.TickRateHz))
	}
	if s.MaxTicks < 0 {
		errs = append(errs, fmt.Sprintf("simulation.max_ticks must be >= 0, got %d", s.MaxTicks))
	}
	if s.BulletCap < 1 {
		errs = append(errs, fmt.Sprintf("simulation.bullet_cap must be >= 1, got %d", s.BulletCap))
	}
	if s.Enemies < 0 {
		errs = append(errs, fmt.Sprintf("simulation.enemies must be >= 0, got %d", s.Enemies))
	}
	if s.ArenaRadius <= 0 {
		errs = append(errs, fmt.Sprintf("simulation.arena_radius must be > 0, got %g", s.ArenaRadius))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateWeapon(w WeaponConfig) error {
	var errs []string
	if w.ClipSize < 1 {
		errs = append(errs, fmt.Sprintf("weapon.clip_size must be >= 1, got %d", w.ClipSize))
	}
	if w.MaxAmmo < w.ClipSize {
		errs = append(errs, fmt.Sprintf("weapon.max_ammo must be >= weapon.clip_size, got %d", w.MaxAmmo))
	}
	if w.FiringSpeed < 0 || w.ReloadSpeed < 0 || w.JamSpeed < 0 || w.BulletLifeTime < 0 {
		errs = append(errs, "weapon timings must not be negative")
	}
	if w.JamChance < 0 || w.JamChance > 1 {
		errs = append(errs, fmt.Sprintf("weapon.jam_chance must be in [0, 1], got %g", w.JamChance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with TWINSTICK_ prefix
	v.SetEnvPrefix("TWINSTICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("simulation.tick_rate_hz", 60)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.max_ticks", 0)
	v.SetDefault("simulation.bullet_cap", 512)
	v.SetDefault("simulation.enemies", 3)
	v.SetDefault("simulation.arena_radius", 400.0)

	v.SetDefault("weapon.clip_size", 6)
	v.SetDefault("weapon.max_ammo", 24)
	v.SetDefault("weapon.firing_speed", 0.5)
	v.SetDefault("weapon.reload_speed", 2.0)
	v.SetDefault("weapon.jam_chance", 0.05)
	v.SetDefault("weapon.jam_speed", 0.33)
	v.SetDefault("weapon.bullet_life_time", 0.5)

	v.SetDefault("content.script_instruction_limit", 0)
}
