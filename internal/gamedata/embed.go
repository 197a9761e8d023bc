// Package gamedata provides the embedded hero, monster and item data and the
// registries built from it.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
