package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/five82/holocron/internal/logging"
	"github.com/five82/holocron/internal/state"
	"github.com/five82/holocron/internal/swapi"
)

// Load runs one load cycle against loader and dispatches its outcome into
// store. It is the only writer of the store; the returned state is the
// settled snapshot.
func Load(ctx context.Context, store *state.Store, loader swapi.Loader, filmURL string, logger *logging.Logger) state.LoadState {
	cycleID := newCycleID()
	log := logger.WithCycle(cycleID)

	store.Dispatch(state.Start{CycleID: cycleID})
	log.Info("loading species", "film_url", filmURL)

	list, err := loader.LoadSpecies(ctx, filmURL)
	if err != nil {
		log.Error("species load failed", "error", err)
		return store.Dispatch(state.Fail{Err: err})
	}

	log.Info("species loaded", "count", len(list))
	return store.Dispatch(state.Succeed{Species: list})
}

func newCycleID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// logTransitions returns a store subscriber that records every phase change.
func logTransitions(logger *logging.Logger) func(state.LoadState) {
	var last state.Phase
	return func(st state.LoadState) {
		if st.Phase == last {
			return
		}
		last = st.Phase
		args := []any{"phase", st.Phase.String()}
		if st.Settled() && !st.StartedAt.IsZero() {
			args = append(args, "elapsed", st.SettledAt.Sub(st.StartedAt).String())
		}
		logger.WithCycle(st.CycleID).Debug("load state changed", args...)
	}
}
