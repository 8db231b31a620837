// Package swapi is a small client for the Star Wars API (https://swapi.dev).
//
// LoadSpecies is the aggregation used by the rest of holocron: it fetches a
// film, then fetches every species URL the film lists concurrently, and
// returns the species in the film's order. If the film or any species
// request fails, the whole load fails with an error wrapping ErrLoadFailed
// and no partial list is returned.
//
// Responses with status 400 or above count as failures. Each request is
// bounded by the client timeout; MaxConcurrency optionally caps in-flight
// species requests.
package swapi
