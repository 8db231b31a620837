// Package species turns swapi species records into display cards: artwork
// lookup by name and centimeter-to-inch height conversion.
package species
