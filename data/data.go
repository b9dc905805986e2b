// Package data holds the default verb table and world that ship with the
// game.
package data

import (
	_ "embed"
)

// Verbs is the default verb table, in JSON.
//
//go:embed verbs.json
var Verbs []byte

// World is the default world, in TOML.
//
//go:embed world.toml
var World []byte
