package acceptor

import _ "embed"

// Version is the release of the acceptor module.
//
//go:embed VERSION
var Version string
