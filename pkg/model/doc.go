// Package model defines the owned, human-authorable form of the game data:
// GameConfig and its nested tables, PlayerState, and the journal Output
// record. This is the shape a configuration author edits (YAML or JSON);
// pkg/codec compiles it into the zero-copy archive the simulation core
// consumes.
package model
