package dpb

import (
	"golang.org/x/exp/rand"
)

// ReferenceStrategy chooses which slot a frame references. slots holds the current sequence
// number of every slot and victim is the slot the frame is about to overwrite. Implementations
// must not modify slots, and must return false rather than an empty slot.
type ReferenceStrategy interface {
	SelectReference(slots []int32, victim int) (int, bool)
}

// MostRecentReference references the slot holding the largest sequence number, with ties going
// to the lowest index. It returns no reference while every slot is empty.
type MostRecentReference struct{}

func (MostRecentReference) SelectReference(slots []int32, victim int) (int, bool) {
	if len(slots) == 0 {
		return 0, false
	}

	reference := 0
	for i := 1; i < len(slots); i++ {
		if slots[i] > slots[reference] {
			reference = i
		}
	}

	if slots[reference] < 0 {
		return 0, false
	}

	return reference, true
}

// RandomReference picks a slot uniformly at random for every frame. The pick is only used if it
// holds a picture and is not the victim, otherwise the frame gets no reference.
type RandomReference struct {
	rnd *rand.Rand
}

// NewRandomReference creates a RandomReference. The same seed always produces the same picks.
func NewRandomReference(seed uint64) *RandomReference {
	return &RandomReference{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

func (r *RandomReference) SelectReference(slots []int32, victim int) (int, bool) {
	if len(slots) == 0 {
		return 0, false
	}

	i := r.rnd.Intn(len(slots))
	if slots[i] >= 0 && i != victim {
		return i, true
	}

	return 0, false
}
