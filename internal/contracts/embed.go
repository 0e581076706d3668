package contracts

import "embed"

//go:embed events
var schemasFS embed.FS
