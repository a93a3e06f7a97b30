package combat

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/cory-johannsen/twinstick/internal/game/dice"
	"github.com/cory-johannsen/twinstick/internal/game/geom"
)

// Defaults for a freshly issued weapon.
const (
	DefaultClipSize       = 6
	DefaultMaxAmmo        = 24
	DefaultFiringSpeed    = 0.5
	DefaultReloadSpeed    = 2.0
	DefaultJamChance      = 0.05
	DefaultJamSpeed       = 0.33
	DefaultBulletLifeTime = 0.5
)

// State is the operational state of a weapon.
type State string

const (
	StateReady     State = "ready"
	StateCooldown  State = "cooldown"
	StateReloading State = "reloading"
	StateJammed    State = "jammed"
	StateUnjamming State = "unjamming"
)

const (
	eventFire     = "fire"
	eventCooled   = "cooled"
	eventJam      = "jam"
	eventReload   = "reload"
	eventReloaded = "reloaded"
	eventUnjam    = "unjam"
	eventUnjammed = "unjammed"
)

var weaponEvents = fsm.Events{
	{Name: eventFire, Src: []string{string(StateReady)}, Dst: string(StateCooldown)},
	{Name: eventCooled, Src: []string{string(StateCooldown)}, Dst: string(StateReady)},
	{Name: eventJam, Src: []string{string(StateReady)}, Dst: string(StateJammed)},
	{Name: eventReload, Src: []string{string(StateReady), string(StateCooldown)}, Dst: string(StateReloading)},
	{Name: eventReloaded, Src: []string{string(StateReloading)}, Dst: string(StateReady)},
	{Name: eventUnjam, Src: []string{string(StateJammed)}, Dst: string(StateUnjamming)},
	{Name: eventUnjammed, Src: []string{string(StateUnjamming)}, Dst: string(StateReady)},
}

// WeaponConfig holds the tunables of a weapon.
type WeaponConfig struct {
	ClipSize       int
	MaxAmmo        int
	FiringSpeed    float64
	ReloadSpeed    float64
	JamChance      float64
	JamSpeed       float64
	BulletLifeTime float64
	// Species is the intrinsic bullet species seeded into every shot.
	Species Species
}

// DefaultWeaponConfig returns the stock weapon tunables.
func DefaultWeaponConfig() WeaponConfig {
	return WeaponConfig{
		ClipSize:       DefaultClipSize,
		MaxAmmo:        DefaultMaxAmmo,
		FiringSpeed:    DefaultFiringSpeed,
		ReloadSpeed:    DefaultReloadSpeed,
		JamChance:      DefaultJamChance,
		JamSpeed:       DefaultJamSpeed,
		BulletLifeTime: DefaultBulletLifeTime,
		Species:        SpeciesBasic,
	}
}

// WeaponOption configures optional Weapon collaborators.
type WeaponOption func(*Weapon)

// WithLogger sets the logger state transitions and jams are reported to.
func WithLogger(logger *zap.Logger) WeaponOption {
	return func(w *Weapon) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Weapon owns ammo, the firing/reload/jam timers, the chain bank and the
// flat buff list.
//
// Weapon is not safe for concurrent use; the owning entity serialises access.
type Weapon struct {
	mag *Magazine

	firingSpeed    float64
	reloadSpeed    float64
	jamSpeed       float64
	jamChance      float64
	bulletLifeTime float64
	species        Species

	firingTimer float64
	reloadTimer float64
	jamTimer    float64

	chains *ChainBank
	buffs  []Buff

	machine *fsm.FSM
	logger  *zap.Logger
}

// NewWeapon returns a ready weapon with a full clip, a full reserve and one
// chain seeded with the species buff of cfg.Species.
//
// Precondition:  cfg.ClipSize > 0 and cfg.MaxAmmo >= 0 (panics otherwise).
// Postcondition: State() == StateReady; ChainCount() == 1.
func NewWeapon(cfg WeaponConfig, opts ...WeaponOption) *Weapon {
	w := &Weapon{
		mag:            NewMagazine(cfg.ClipSize, cfg.MaxAmmo),
		firingSpeed:    max(cfg.FiringSpeed, 0),
		reloadSpeed:    max(cfg.ReloadSpeed, 0),
		jamSpeed:       max(cfg.JamSpeed, 0),
		jamChance:      clampUnit(cfg.JamChance),
		bulletLifeTime: max(cfg.BulletLifeTime, 0),
		species:        cfg.Species,
		chains:         NewChainBank(SpeciesBuff(cfg.Species)),
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.machine = fsm.NewFSM(string(StateReady), weaponEvents, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			w.logger.Debug("weapon state changed",
				zap.String("event", e.Event),
				zap.String("from", e.Src),
				zap.String("to", e.Dst),
			)
		},
	})
	return w
}

func newBulletWeapon(species Species) *Weapon {
	return NewWeapon(WeaponConfig{ClipSize: 1, Species: species})
}

// State returns the current operational state.
func (w *Weapon) State() State { return State(w.machine.Current()) }

// Jammed reports whether the weapon is jammed, including while unjamming.
func (w *Weapon) Jammed() bool {
	s := w.State()
	return s == StateJammed || s == StateUnjamming
}

// Unjamming reports whether an unjam is in progress.
func (w *Weapon) Unjamming() bool { return w.State() == StateUnjamming }

// Reloading reports whether a reload is in progress.
func (w *Weapon) Reloading() bool { return w.State() == StateReloading }

// CurrentAmmo returns the rounds loaded in the clip.
func (w *Weapon) CurrentAmmo() int { return w.mag.Loaded() }

// TotalAmmo returns the rounds held in reserve.
func (w *Weapon) TotalAmmo() int { return w.mag.Reserve() }

// ClipSize returns the clip capacity.
func (w *Weapon) ClipSize() int { return w.mag.ClipSize() }

// MaxAmmo returns the reserve capacity.
func (w *Weapon) MaxAmmo() int { return w.mag.MaxReserve() }

// Tunables, in seconds except JamChance.
func (w *Weapon) FiringSpeed() float64    { return w.firingSpeed }
func (w *Weapon) ReloadSpeed() float64    { return w.reloadSpeed }
func (w *Weapon) JamSpeed() float64       { return w.jamSpeed }
func (w *Weapon) JamChance() float64      { return w.jamChance }
func (w *Weapon) BulletLifeTime() float64 { return w.bulletLifeTime }

// Remaining time on each timer, in seconds. Timers never go below zero.
func (w *Weapon) FiringTimer() float64 { return w.firingTimer }
func (w *Weapon) ReloadTimer() float64 { return w.reloadTimer }
func (w *Weapon) JamTimer() float64    { return w.jamTimer }

// DefaultSpecies returns the species seeded into every shot.
func (w *Weapon) DefaultSpecies() Species { return w.species }

// SetClipSize changes the clip capacity; it never drops below one.
func (w *Weapon) SetClipSize(n int) { w.mag.SetClipSize(n) }

// SetMaxAmmo changes the reserve capacity; it never drops below zero.
func (w *Weapon) SetMaxAmmo(n int) { w.mag.SetMaxReserve(n) }

// SetTotalAmmo sets the reserve, clamped to [0, MaxAmmo()].
func (w *Weapon) SetTotalAmmo(n int) { w.mag.SetReserve(n) }

// RefillAmmo fills the reserve. It is honoured in every state, jammed included.
func (w *Weapon) RefillAmmo() { w.mag.Refill() }

// SetFiringSpeed sets the seconds between shots.
func (w *Weapon) SetFiringSpeed(s float64) { w.firingSpeed = max(s, 0) }

// SetReloadSpeed sets the seconds a reload takes.
func (w *Weapon) SetReloadSpeed(s float64) { w.reloadSpeed = max(s, 0) }

// SetJamSpeed sets the seconds an unjam takes.
func (w *Weapon) SetJamSpeed(s float64) { w.jamSpeed = max(s, 0) }

// SetJamChance sets the per-shot jam probability, clamped to [0, 1].
func (w *Weapon) SetJamChance(p float64) { w.jamChance = clampUnit(p) }

// AddBuff appends b to the flat buff list applied to every bullet.
func (w *Weapon) AddBuff(b Buff) { w.buffs = append(w.buffs, b) }

// Buffs returns a copy of the flat buff list.
func (w *Weapon) Buffs() []Buff {
	out := make([]Buff, len(w.buffs))
	copy(out, w.buffs)
	return out
}

// ClearBuffs empties the flat buff list.
func (w *Weapon) ClearBuffs() { w.buffs = nil }

// AddPrimaryBuff adds a new loadout led by b right after the active one and
// makes it active.
func (w *Weapon) AddPrimaryBuff(b Buff) ChainID {
	id := w.chains.InsertAfterActive(b)
	w.logger.Debug("loadout added", zap.Stringer("buff", b), zap.Int("chains", w.chains.Len()))
	return id
}

// AddToActiveChain appends b to the active loadout as a new firing group.
func (w *Weapon) AddToActiveChain(b Buff) { w.chains.AppendToActive(b, PriorityPrimary) }

// AddToActiveChainAsSecondary appends b to the active loadout as a refinement
// of its last firing group.
func (w *Weapon) AddToActiveChainAsSecondary(b Buff) {
	w.chains.AppendToActive(b, PrioritySecondary)
}

// ActiveChain returns a copy of the active loadout.
func (w *Weapon) ActiveChain() []ChainEntry { return w.chains.Active() }

// CurrentChain returns the index of the active loadout.
func (w *Weapon) CurrentChain() int { return w.chains.Cursor() }

// ChainCount returns the number of loadouts.
func (w *Weapon) ChainCount() int { return w.chains.Len() }

// Chains exposes the chain bank.
func (w *Weapon) Chains() *ChainBank { return w.chains }

// MoreThanOnePrimaryInChain reports whether the active loadout fires more
// than one bullet per shot.
func (w *Weapon) MoreThanOnePrimaryInChain() bool { return w.chains.PrimaryCount() > 1 }

// ResetLoadout drops every loadout and flat buff, leaving the seed loadout.
func (w *Weapon) ResetLoadout() {
	w.chains.Reset(SpeciesBuff(w.species))
	w.buffs = nil
}

// CanFire reports whether a trigger pull would be attempted now. A cooldown
// whose timer has run out counts as ready even before the next Update.
func (w *Weapon) CanFire() bool {
	if w.firingTimer > 0 || w.mag.IsEmpty() {
		return false
	}
	s := w.State()
	return s == StateReady || s == StateCooldown
}

// Fire pulls the trigger once. When the weapon may fire it first rolls for a
// jam: a jam emits nothing and costs no ammo. Otherwise it consumes one round,
// restarts the firing timer and runs the firing pipeline.
//
// Postcondition: a refused or jammed pull returns nil and leaves ammo unchanged.
func (w *Weapon) Fire(rng dice.Source, spawn geom.Vec2, angle float64, friendly bool, dt float64) []Shot {
	if !w.CanFire() {
		return nil
	}
	w.settleCooldown()
	if rollJam(rng, w.jamChance) {
		w.transition(eventJam)
		w.logger.Debug("weapon jammed", zap.Int("ammo", w.mag.Loaded()))
		return nil
	}
	w.mag.Consume()
	w.firingTimer = w.firingSpeed
	w.transition(eventFire)
	shots := w.runPipeline(spawn, angle, friendly, dt)
	w.logger.Debug("weapon fired",
		zap.Int("bullets", len(shots)),
		zap.Int("ammo", w.mag.Loaded()),
		zap.Int("chain", w.chains.Cursor()),
	)
	return shots
}

// Reload requests a reload. A jammed weapon treats it as an unjam request,
// and a second request while unjamming restarts the unjam timer. Otherwise the
// reload starts only when the clip is not full and the reserve holds more
// rounds than the clip; starting it advances to the next loadout.
func (w *Weapon) Reload() {
	switch w.State() {
	case StateJammed:
		w.jamTimer = w.jamSpeed
		w.transition(eventUnjam)
	case StateUnjamming:
		w.jamTimer = w.jamSpeed
	case StateReady, StateCooldown:
		if w.mag.Full() || w.mag.Reserve() <= w.mag.Loaded() {
			return
		}
		if w.transition(eventReload) {
			w.reloadTimer = w.reloadSpeed
			w.chains.Cycle()
		}
	}
}

// Update advances every timer by dt and resolves finished cooldowns, reloads
// and unjams.
func (w *Weapon) Update(dt float64) {
	w.firingTimer = max(w.firingTimer-dt, 0)
	w.reloadTimer = max(w.reloadTimer-dt, 0)
	w.jamTimer = max(w.jamTimer-dt, 0)

	w.settleCooldown()
	switch w.State() {
	case StateReloading:
		if w.reloadTimer <= 0 {
			moved := w.mag.TopUp()
			w.transition(eventReloaded)
			w.logger.Debug("weapon reloaded", zap.Int("rounds", moved), zap.Int("reserve", w.mag.Reserve()))
		}
	case StateUnjamming:
		if w.jamTimer <= 0 {
			w.transition(eventUnjammed)
		}
	}
}

func (w *Weapon) settleCooldown() {
	if w.State() == StateCooldown && w.firingTimer <= 0 {
		w.transition(eventCooled)
	}
}

func (w *Weapon) transition(event string) bool {
	err := w.machine.Event(context.Background(), event)
	if err == nil {
		return true
	}
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return true
	}
	w.logger.Debug("weapon transition refused",
		zap.String("event", event),
		zap.String("state", w.machine.Current()),
		zap.Error(err),
	)
	return false
}

type chanceRoller interface {
	Chance(label string, p float64) bool
}

func rollJam(rng dice.Source, p float64) bool {
	if r, ok := rng.(chanceRoller); ok {
		return r.Chance("weapon jam", p)
	}
	return rng.Float64() < p
}

func clampUnit(p float64) float64 { return max(0, min(p, 1)) }
