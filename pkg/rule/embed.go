package rule

import "embed"

// builtinCatalogFS embeds the built-in catalog: the default directive
// inventory and detection rules.
//
//go:embed catalog/*.yml
var builtinCatalogFS embed.FS
