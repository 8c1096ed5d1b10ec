package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
	"github.com/nwpfetch/nwpfetch/internal/request"
	"github.com/nwpfetch/nwpfetch/pkg/log"
)

// Registry holds every known model template plus the alias table that
// resolves to it. A zero Registry is not usable; use NewRegistry.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]Template
	aliases   map[string]string
	// deprecated maps a deprecated alias to the warning message logged
	// each time it is resolved (§4.1 "ecmwf" -> "ifs").
	deprecated map[string]string
}

// NewRegistry returns a Registry pre-populated with the built-in models
// (§3.1's model list: hrrr, gfs, ifs, nam, rap, rrfs, nbm, gefs, hafsa,
// cfs, hrdps) and their aliases.
func NewRegistry() *Registry {
	r := &Registry{
		templates:  map[string]Template{},
		aliases:    map[string]string{},
		deprecated: map[string]string{},
	}
	registerBuiltins(r)
	return r
}

// Register adds or replaces a named model template.
func (r *Registry) Register(name string, t Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[strings.ToLower(name)] = t
}

// Alias makes `from` resolve to the already-registered model `to`.
func (r *Registry) Alias(from, to string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(from)] = strings.ToLower(to)
}

// DeprecateAlias is like Alias but also logs a warning every time the
// alias is used, per §4.1's "ecmwf" -> "ifs" example.
func (r *Registry) DeprecateAlias(from, to string) {
	r.Alias(from, to)
	r.mu.Lock()
	r.deprecated[strings.ToLower(from)] = fmt.Sprintf("model alias %q is deprecated, use %q", from, to)
	r.mu.Unlock()
}

// canonical resolves aliases (case-insensitively) to the registered name.
func (r *Registry) canonical(model string) string {
	name := strings.ToLower(model)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if msg, ok := r.deprecated[name]; ok {
		log.Warn(msg)
	}
	for i := 0; i < 8; i++ { // bounded in case of an alias cycle
		next, ok := r.aliases[name]
		if !ok {
			return name
		}
		name = next
	}
	return name
}

// Build resolves req.Model through the alias table and invokes its
// template. Returns KindInvalidRequest if the model is unknown.
func (r *Registry) Build(req request.Request) (Output, error) {
	name := r.canonical(req.Model)
	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return Output{}, coreerr.New(coreerr.KindInvalidRequest, req.Identity(),
			fmt.Errorf("unknown model %q", req.Model))
	}
	req.Model = name
	out, err := tmpl.Build(req)
	if err != nil {
		return Output{}, err
	}
	if req.Product != "" {
		if _, ok := out.Products[req.Product]; !ok {
			return Output{}, coreerr.New(coreerr.KindInvalidRequest, req.Identity(),
				fmt.Errorf("unknown product %q for model %q", req.Product, name))
		}
	}
	if len(out.Sources) == 0 {
		return Output{}, coreerr.New(coreerr.KindInvalidRequest, req.Identity(),
			fmt.Errorf("template for %q declared no sources", name))
	}
	return out, nil
}

// extensionSource is one named mirror in an extension template's
// declaration order; §3.2 requires sources be ordered since that order
// is the default probe order, so this is a JSON array (order-preserving)
// rather than a map.
type extensionSource struct {
	Name    string `json:"name"`
	Pattern string `json:"url_pattern"`
}

// extensionTemplate is the JSON shape accepted from the user-provided
// extension directory (§4.1): a URL pattern per source using the
// {placeholder} names expandPattern substitutes, with no custom
// per-model logic. This intentionally covers only
// the common case; models needing cutover dates or extra validation are
// built in.
type extensionTemplate struct {
	Model         string            `json:"model"`
	Description   string            `json:"description"`
	Products      map[string]string `json:"products"`
	Sources       []extensionSource `json:"sources"`
	IdxSuffixes   []string          `json:"idx_suffixes"`
	IdxDialect    string            `json:"idx_dialect"`
	LocalFilename string            `json:"local_filename"`
}

// LoadExtensions reads every *.json file in dir and registers the model
// templates it describes, overriding the corresponding built-in if one by
// that name already exists. A directory that does not exist is not an
// error -- extensions are optional (§4.1).
func (r *Registry) LoadExtensions(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read extension template %s: %w", path, err)
		}
		var ext extensionTemplate
		if err := json.Unmarshal(raw, &ext); err != nil {
			return fmt.Errorf("parse extension template %s: %w", path, err)
		}
		if ext.Model == "" {
			return fmt.Errorf("extension template %s: missing \"model\"", path)
		}
		r.Register(ext.Model, newExtensionTemplate(ext))
		log.Infof("registered extension model template %q from %s", ext.Model, path)
	}
	return nil
}

func newExtensionTemplate(ext extensionTemplate) Template {
	dialect := Wgrib2
	if ext.IdxDialect == string(Eccodes) {
		dialect = Eccodes
	}
	return BuildFunc(func(req request.Request) (Output, error) {
		sources := make([]Source, 0, len(ext.Sources))
		for _, s := range ext.Sources {
			sources = append(sources, Source{Name: s.Name, URL: expandPattern(s.Pattern, req)})
		}
		return Output{
			Description:   ext.Description,
			Products:      ext.Products,
			Sources:       sources,
			IdxSuffixes:   ext.IdxSuffixes,
			IdxDialect:    dialect,
			LocalFilename: filepath.Base(expandPattern(ext.LocalFilename, req)),
		}, nil
	})
}
