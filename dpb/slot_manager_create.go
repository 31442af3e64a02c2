package dpb

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/videomem/memutils"
	"golang.org/x/exp/slog"
)

// DefaultSlotCount is the number of picture buffer slots an encoder session uses when it has no
// reason to choose otherwise
const DefaultSlotCount int = 4

// CreateOptions contains optional settings when creating a SlotManager
type CreateOptions struct {
	// Strategy chooses the reference slot for each frame. If nil, MostRecentReference is used
	Strategy ReferenceStrategy
	// Logger receives debug output for each frame. If nil, output is discarded
	Logger *slog.Logger
}

// New creates a SlotManager with size slots, all of which start empty
//
// size - The number of picture buffer slots. Must be at least 2, so that a frame can always be
// written without overwriting its reference
//
// options - Optional parameters: it is valid to leave all the fields blank
func New(size int, options CreateOptions) (*SlotManager, error) {
	if size < 2 {
		return nil, errors.Wrapf(memutils.ErrInvalidConfiguration, "slot manager needs at least 2 slots, got %d", size)
	}

	strategy := options.Strategy
	if strategy == nil {
		strategy = MostRecentReference{}
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	manager := &SlotManager{
		slots:    make([]int32, size),
		strategy: strategy,
		logger:   logger,
	}
	manager.Reset()

	return manager, nil
}
