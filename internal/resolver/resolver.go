// Package resolver implements the Source Resolver (C3): it locates the
// GRIB payload and its index file, each independently, across the
// template's declared mirrors.
package resolver

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nwpfetch/nwpfetch/internal/cache"
	"github.com/nwpfetch/nwpfetch/internal/httpx"
	"github.com/nwpfetch/nwpfetch/internal/mirror"
	"github.com/nwpfetch/nwpfetch/internal/model"
	"github.com/nwpfetch/nwpfetch/internal/request"
	"github.com/nwpfetch/nwpfetch/pkg/log"
)

// Location names where a resolved artifact lives: either a local
// filesystem path or a remote URL/object key, tagged with the source
// name it came from ("local", "aws", "nomads", ...).
type Location struct {
	Path   string // non-empty for a local filesystem hit.
	URL    string // non-empty for a remote hit.
	Source string
}

func (l Location) Resolved() bool { return l.Path != "" || l.URL != "" }

// Result is the four-tuple returned by Resolve (§4.3).
type Result struct {
	GRIB Location
	Idx  Location
}

// Resolver probes mirrors declared by a model.Output in priority order.
type Resolver struct {
	HTTP           *httpx.Client
	S3             *mirror.Client // optional; nil falls back to a plain HTTPS probe/GET for "aws" sources.
	ProbeTimeout   float64
	GribLocalDir   string // not read by Resolve; index write-through goes to the directory passed to inventory.Loader.Load.
}

// New returns a Resolver with a 5s default HEAD timeout (§5).
func New(http *httpx.Client) *Resolver {
	return &Resolver{HTTP: http, ProbeTimeout: 5}
}

// Resolve implements the 5-step algorithm of §4.3.
func (r *Resolver) Resolve(ctx context.Context, req request.Request, out model.Output) Result {
	localPath := cache.LocalPath(req, out)

	// Step 1-2: local cache hit.
	if !req.Overwrite {
		if _, err := os.Stat(localPath); err == nil {
			return Result{
				GRIB: Location{Path: localPath, Source: "local"},
				Idx:  r.resolveIndexFile(ctx, localPath, out, req.EffectivePriority()),
			}
		}
	}

	// Step 3: probe GRIB across sources in effective order.
	order := effectiveOrder(out, req.EffectivePriority())
	var gribLoc Location
	for _, name := range order {
		url := out.URL(name)
		if url == "" {
			continue
		}
		if r.probe(ctx, name, url) {
			gribLoc = Location{URL: url, Source: name}
			break
		}
	}

	// Step 4: resolve the index file independently, preferring one that
	// already sits beside the expected local path.
	idxLoc := r.resolveIndexFile(ctx, localPath, out, req.EffectivePriority())

	return Result{GRIB: gribLoc, Idx: idxLoc}
}

// effectiveOrder filters the template's declared sources against the
// request's priority, preserving user order; falls back to template
// order when priority is empty (§3.1, §4.3).
func effectiveOrder(out model.Output, priority []string) []string {
	if len(priority) == 0 {
		return out.SourceNames()
	}
	declared := map[string]bool{}
	for _, n := range out.SourceNames() {
		declared[n] = true
	}
	var order []string
	for _, p := range priority {
		if declared[p] {
			order = append(order, p)
		}
	}
	if len(order) == 0 {
		return out.SourceNames()
	}
	return order
}

func (r *Resolver) probe(ctx context.Context, sourceName, url string) bool {
	if r.S3 != nil {
		if src, ok := mirror.ParseS3URL(url); ok {
			return r.S3.Exists(ctx, src)
		}
	}
	if strings.EqualFold(sourceName, "azure") {
		url = mirror.SignAzureURL(url)
	}
	return r.HTTP.Exists(ctx, url, r.ProbeTimeout)
}

// resolveIndexFile looks for an inventory sitting next to localGribPath
// (whether or not the GRIB file itself is there) and otherwise probes the
// remote sources in effective order.
func (r *Resolver) resolveIndexFile(ctx context.Context, localGribPath string, out model.Output, priority []string) Location {
	for _, suffix := range out.IdxSuffixes {
		candidate := deriveIdxName(localGribPath, suffix)
		if _, err := os.Stat(candidate); err == nil {
			return Location{Path: candidate, Source: "local"}
		}
	}
	return r.resolveIndexURL(ctx, out, effectiveOrder(out, priority))
}

// resolveIndexURL iterates sources again, probing each candidate suffix
// against that source's GRIB URL (§4.3 step 4).
func (r *Resolver) resolveIndexURL(ctx context.Context, out model.Output, order []string) Location {
	for _, name := range order {
		base := out.URL(name)
		if base == "" {
			continue
		}
		for _, suffix := range out.IdxSuffixes {
			candidate := deriveIdxName(base, suffix)
			if r.probe(ctx, name, candidate) {
				return Location{URL: candidate, Source: name}
			}
		}
	}
	log.Debugf("resolver: no index file resolved among %d sources", len(order))
	return Location{}
}

// deriveIdxName appends or substitutes suffix onto base depending on
// whether base already ends in a recognized GRIB extension (§3.2),
// mirroring Herbie's _check_idx: a recognized extension is stripped
// before the suffix is appended, so templates whose convention is to
// keep the extension (wgrib2's "<file>.grib2.idx") declare a suffix
// that reintroduces it, while a true substitution (eccodes' ".index")
// declares just the replacement.
func deriveIdxName(base, suffix string) string {
	ext := filepath.Ext(base)
	for _, grib := range []string{".grib2", ".grb2", ".grib", ".grb"} {
		if strings.EqualFold(ext, grib) {
			return strings.TrimSuffix(base, ext) + suffix
		}
	}
	return base + suffix
}
