package combat

import "fmt"

// Priority tags an entry within a chain.
type Priority int

const (
	// PriorityPrimary starts a new firing group and may define its species.
	PriorityPrimary Priority = iota
	// PrioritySecondary refines the bullets of the current group.
	PrioritySecondary
)

// String returns "primary" or "secondary".
func (p Priority) String() string {
	if p == PriorityPrimary {
		return "primary"
	}
	return "secondary"
}

// ChainEntry is one buff slotted into a chain.
type ChainEntry struct {
	Buff     Buff
	Priority Priority
}

// ChainID is a stable handle to one chain in a ChainBank. IDs are never reused.
type ChainID int

type chainSlot struct {
	id      ChainID
	entries []ChainEntry
}

// ChainBank is the ordered set of loadouts a weapon cycles through.
//
// Invariant: Len() >= 1; 0 <= cursor < Len(); every chain is non-empty and its
// first entry is PriorityPrimary.
type ChainBank struct {
	slots  []chainSlot
	cursor int
	nextID ChainID
}

// NewChainBank returns a bank holding one chain made of seed alone.
//
// Postcondition: Len() == 1; Active() == [{seed, PriorityPrimary}].
func NewChainBank(seed Buff) *ChainBank {
	cb := &ChainBank{}
	cb.Reset(seed)
	return cb
}

// Reset drops every chain and leaves one chain made of seed alone.
func (cb *ChainBank) Reset(seed Buff) {
	cb.slots = cb.slots[:0]
	cb.cursor = 0
	cb.slots = append(cb.slots, cb.newSlot(seed))
}

func (cb *ChainBank) newSlot(first Buff) chainSlot {
	id := cb.nextID
	cb.nextID++
	return chainSlot{id: id, entries: []ChainEntry{{Buff: first, Priority: PriorityPrimary}}}
}

// Len returns the number of chains.
func (cb *ChainBank) Len() int { return len(cb.slots) }

// Cursor returns the index of the active chain.
func (cb *ChainBank) Cursor() int { return cb.cursor }

// ActiveID returns the stable ID of the active chain.
func (cb *ChainBank) ActiveID() ChainID { return cb.slots[cb.cursor].id }

// Active returns a copy of the active chain.
//
// Postcondition: len(result) >= 1 and result[0].Priority == PriorityPrimary.
func (cb *ChainBank) Active() []ChainEntry {
	return cloneEntries(cb.slots[cb.cursor].entries)
}

// Chain returns a copy of the chain with the given ID.
func (cb *ChainBank) Chain(id ChainID) ([]ChainEntry, bool) {
	i := cb.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return cloneEntries(cb.slots[i].entries), true
}

// IDs returns every chain ID in bank order.
func (cb *ChainBank) IDs() []ChainID {
	ids := make([]ChainID, len(cb.slots))
	for i, s := range cb.slots {
		ids[i] = s.id
	}
	return ids
}

// Cycle advances the cursor to the next chain, wrapping at the end.
//
// Postcondition: calling Cycle Len() times restores the original cursor.
func (cb *ChainBank) Cycle() {
	cb.cursor = (cb.cursor + 1) % len(cb.slots)
}

// Select moves the cursor to the chain with the given ID.
func (cb *ChainBank) Select(id ChainID) error {
	i := cb.indexOf(id)
	if i < 0 {
		return fmt.Errorf("combat: ChainBank.Select: unknown chain %d", id)
	}
	cb.cursor = i
	return nil
}

// InsertAfterActive adds a new chain led by b immediately after the active
// chain and makes it active.
//
// Postcondition: Len() grows by one; Active() == [{b, PriorityPrimary}].
func (cb *ChainBank) InsertAfterActive(b Buff) ChainID {
	slot := cb.newSlot(b)
	at := cb.cursor + 1
	cb.slots = append(cb.slots, chainSlot{})
	copy(cb.slots[at+1:], cb.slots[at:])
	cb.slots[at] = slot
	cb.cursor = at
	cb.validate()
	return slot.id
}

// AppendToActive appends b to the end of the active chain with priority p.
func (cb *ChainBank) AppendToActive(b Buff, p Priority) {
	s := &cb.slots[cb.cursor]
	s.entries = append(s.entries, ChainEntry{Buff: b, Priority: p})
}

// PrimaryCount returns the number of PriorityPrimary entries in the active chain.
func (cb *ChainBank) PrimaryCount() int {
	n := 0
	for _, e := range cb.slots[cb.cursor].entries {
		if e.Priority == PriorityPrimary {
			n++
		}
	}
	return n
}

func (cb *ChainBank) indexOf(id ChainID) int {
	for i, s := range cb.slots {
		if s.id == id {
			return i
		}
	}
	return -1
}

func (cb *ChainBank) validate() {
	if cb.cursor < 0 || cb.cursor >= len(cb.slots) {
		cb.cursor = 0
	}
}

func cloneEntries(in []ChainEntry) []ChainEntry {
	out := make([]ChainEntry, len(in))
	copy(out, in)
	return out
}
