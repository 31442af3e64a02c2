package dpb

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/videomem/memutils"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

// EmptySlot is the value of a slot that holds no picture. It sorts below every real sequence
// number, so empty slots are always chosen as victims first.
const EmptySlot int32 = -1

// SlotManager tracks which frame sequence number occupies each slot of a decoded picture buffer,
// and decides which slot each new frame overwrites and which slot it references. A SlotManager
// is not safe for concurrent use.
type SlotManager struct {
	slots    []int32
	strategy ReferenceStrategy
	logger   *slog.Logger
}

// Decision is the slot assignment for a single frame
type Decision struct {
	Sequence int32
	// Victim is the slot the frame's reconstructed picture is written to
	Victim int
	// Reference is the slot the frame predicts from. Only meaningful if HasReference is true
	Reference    int
	HasReference bool
}

// Len returns the number of slots
func (m *SlotManager) Len() int {
	return len(m.slots)
}

// Slot returns the sequence number held in slot index, or EmptySlot. It panics if index is not in
// [0, Len()), while Mark returns ErrInvalidSlot for the same index.
func (m *SlotManager) Slot(index int) int32 {
	return m.slots[index]
}

// Slots returns a copy of every slot's sequence number
func (m *SlotManager) Slots() []int32 {
	return slices.Clone(m.slots)
}

// Reset empties every slot, as at the start of a new encode session
func (m *SlotManager) Reset() {
	for i := range m.slots {
		m.slots[i] = EmptySlot
	}
}

// SelectVictim returns the slot holding the smallest sequence number, which is the slot the next
// frame should overwrite. Empty slots are chosen before any occupied slot, and ties go to the
// lowest index.
func (m *SlotManager) SelectVictim() int {
	victim := 0
	for i := 1; i < len(m.slots); i++ {
		if m.slots[i] < m.slots[victim] {
			victim = i
		}
	}

	return victim
}

// SelectReference returns the slot the next frame should reference, as chosen by the manager's
// ReferenceStrategy. The second return value is false when no slot is usable as a reference, in
// which case the frame must be coded without one.
func (m *SlotManager) SelectReference() (int, bool) {
	return m.strategy.SelectReference(m.slots, m.SelectVictim())
}

// Mark records that slot index now holds the picture with the given sequence number
func (m *SlotManager) Mark(index int, sequence int32) error {
	if index < 0 || index >= len(m.slots) {
		return errors.Wrapf(memutils.ErrInvalidSlot, "slot %d of %d", index, len(m.slots))
	}

	m.slots[index] = sequence
	return nil
}

// Advance assigns slots for the frame with the given sequence number: it selects a victim and a
// reference, then marks the victim as holding the new frame. The manager is unchanged if an
// error is returned.
func (m *SlotManager) Advance(sequence int32) (Decision, error) {
	victim := m.SelectVictim()
	reference, hasReference := m.strategy.SelectReference(m.slots, victim)

	if hasReference && reference == victim {
		return Decision{}, errors.Wrapf(memutils.ErrReferenceIsVictim, "frame %d, slot %d", sequence, victim)
	}

	err := m.Mark(victim, sequence)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{
		Sequence:     sequence,
		Victim:       victim,
		Reference:    reference,
		HasReference: hasReference,
	}

	if hasReference {
		m.logger.Debug("SlotManager::Advance", slog.Int("Sequence", int(sequence)), slog.Int("Victim", victim), slog.Int("Reference", reference))
	} else {
		m.logger.Debug("SlotManager::Advance", slog.Int("Sequence", int(sequence)), slog.Int("Victim", victim), slog.String("Reference", "none"))
	}

	return decision, nil
}
