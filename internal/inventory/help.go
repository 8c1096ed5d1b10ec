package inventory

import "github.com/nwpfetch/nwpfetch/pkg/log"

// Dialect names the index-file dialect, mirrored from internal/model to
// keep this package free of a dependency on the template registry.
type Dialect string

const (
	Wgrib2  Dialect = "wgrib2"
	Eccodes Dialect = "eccodes"
)

// exampleRegexes ports the illustrative selector examples from Herbie's
// help.py, one set per dialect, shown when a filter matches nothing.
var exampleRegexes = map[Dialect][]string{
	Wgrib2: {
		`:TMP:2 m above ground:`,
		`:UGRD:10 m above ground:`,
		`:APCP:surface:`,
		`:REFC:entire atmosphere:`,
	},
	Eccodes: {
		`:2t:sfc:`,
		`:10u:sfc:`,
		`:tp:sfc:`,
		`:2t:.*:\d+:`,
	},
}

func logHelp(pattern string, dialect Dialect) {
	log.Warnf("inventory: search %q matched no rows", pattern)
	examples, ok := exampleRegexes[dialect]
	if !ok {
		return
	}
	log.Warn("inventory: example selectors for this dialect:")
	for _, ex := range examples {
		log.Warnf("  %s", ex)
	}
}
