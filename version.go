package folio

import _ "embed"

// Version is the release version, read from version.txt.
//
//go:embed version.txt
var Version string
