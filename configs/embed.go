// Package configs embeds the default game content and settings.
package configs

import "embed"

//go:embed *.json
var FS embed.FS
