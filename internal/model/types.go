// Package model is the Model Template Registry (C1): pure functions that
// turn a Request into an ordered set of candidate mirror URLs plus the
// index-file dialect and naming rule needed by every other component.
package model

import (
	"github.com/nwpfetch/nwpfetch/internal/coreerr"
	"github.com/nwpfetch/nwpfetch/internal/request"
)

// Dialect names one of the two supported index-file dialects (§4.4).
type Dialect string

const (
	Wgrib2  Dialect = "wgrib2"
	Eccodes Dialect = "eccodes"
)

// Source is one named mirror with its fully-interpolated URL for a given
// request. Order within Output.Sources is the default probe order.
type Source struct {
	Name string
	URL  string
}

// Output is the immutable record a template emits for one Request (§3.2).
type Output struct {
	Description string
	Details     string
	Products    map[string]string
	Sources     []Source
	IdxSuffixes []string
	IdxDialect  Dialect

	// LocalFilename is the on-disk basename (§3.4, §4.7); for a subset
	// this is wrapped by cache.SubsetName, it is never computed here.
	LocalFilename string
}

// SourceNames returns the declared source names in template order.
func (o Output) SourceNames() []string {
	names := make([]string, len(o.Sources))
	for i, s := range o.Sources {
		names[i] = s.Name
	}
	return names
}

// URL returns the URL for a named source, or "" if not declared.
func (o Output) URL(name string) string {
	for _, s := range o.Sources {
		if s.Name == name {
			return s.URL
		}
	}
	return ""
}

// Template is implemented once per model. Build is pure: the same Request
// always produces the same Output, and it performs no I/O.
type Template interface {
	Build(req request.Request) (Output, error)
}

// BuildFunc adapts a plain function to the Template interface, the way
// most of the built-in models are expressed.
type BuildFunc func(req request.Request) (Output, error)

func (f BuildFunc) Build(req request.Request) (Output, error) { return f(req) }

// missingField is a small helper every template uses to reject a request
// that lacks a field the template requires (ensemble member, storm id...).
func missingField(req request.Request, field string) (Output, error) {
	return Output{}, coreerr.NewMissingField(req.Identity(), field)
}
