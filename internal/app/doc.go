// Package app wires configuration, logging, the swapi client, the state
// store and the UI into the holocron program.
//
// # Startup
//
//	Run()
//	  ├─> config.Load()      defaults, config.toml, HOLOCRON_* env
//	  ├─> applyOverrides()   command-line flags
//	  ├─> logging.New()      JSON log under the log dir
//	  ├─> prefs.Load()       theme and layout
//	  ├─> swapi.NewClient()
//	  ├─> state.Store{}      plus a subscriber that logs transitions
//	  └─> ui.Run() or ui.RenderPlain()
//
// # Load effect
//
// Load performs exactly one load cycle. It tags the cycle with a v7 UUID,
// dispatches Start, waits for swapi.Loader.LoadSpecies, and dispatches
// Succeed or Fail. It is the only code that writes to the store.
//
// The interactive UI calls Load once from its Init command. Plain mode,
// used with --plain or when stdout is not a terminal, calls it directly
// and prints the settled state once. A failed load in plain mode is also
// returned as an error so the process exits non-zero.
package app
