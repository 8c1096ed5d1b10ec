package inventory

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
	"github.com/nwpfetch/nwpfetch/internal/httpx"
	"github.com/nwpfetch/nwpfetch/pkg/lrucache"
)

// Loader fetches and parses index files, write-through caching remote
// fetches to disk and memoizing the parsed table per process (§4.4.4).
// The memoization cache is grounded on the teacher's pkg/lrucache, used
// here exactly as the teacher's metric store uses it: a ComputeValue
// closure computed once per key, with concurrent callers for the same
// key blocking on the first caller's result.
type Loader struct {
	HTTP  *httpx.Client
	cache *lrucache.Cache
}

// NewLoader returns a Loader with a 64MiB in-memory table cache, enough
// to hold a few hundred parsed inventories without unbounded growth.
func NewLoader(http *httpx.Client) *Loader {
	return &Loader{HTTP: http, cache: lrucache.New(64 * 1024 * 1024)}
}

type loadResult struct {
	table Table
	err   error
}

// Load resolves idxLocation (an http(s) URL or a local path; "" means
// unresolved) into a Table. If idxLocation is empty but gribPath exists
// locally, it falls back to shelling out to wgrib2 (§4.4.3). A
// successful remote fetch is written through to gribLocalDir so later
// calls avoid the round-trip (§4.4.4).
func (l *Loader) Load(ctx context.Context, idxLocation, gribPath string, dialect Dialect, gribLocalDir string, id coreerr.Identity, timeoutSeconds float64) (Table, error) {
	key := fmt.Sprintf("%s|%s|%s|%s", id.Model, idxLocation, gribPath, dialect)

	v := l.cache.Get(key, func() (interface{}, time.Duration, int) {
		table, err := l.load(ctx, idxLocation, gribPath, dialect, gribLocalDir, id, timeoutSeconds)
		size := len(table.Rows) * 128
		return loadResult{table: table, err: err}, time.Hour, size
	})

	res := v.(loadResult)
	return res.table, res.err
}

func (l *Loader) load(ctx context.Context, idxLocation, gribPath string, dialect Dialect, gribLocalDir string, id coreerr.Identity, timeoutSeconds float64) (Table, error) {
	if idxLocation == "" {
		return l.generationFallback(ctx, gribPath, id)
	}

	raw, isRemote, err := l.fetchRaw(ctx, idxLocation, timeoutSeconds, id)
	if err != nil {
		return l.generationFallbackOrErr(ctx, gribPath, id, err)
	}
	if isRemote && gribLocalDir != "" {
		writeThrough(gribLocalDir, idxLocation, raw)
	}

	switch dialect {
	case Wgrib2:
		return ParseWgrib2(bytes.NewReader(raw), id)
	case Eccodes:
		return ParseEccodes(bytes.NewReader(raw), id)
	default:
		return Table{}, coreerr.New(coreerr.KindBadDialect, id, fmt.Errorf("unknown dialect %q", dialect))
	}
}

func (l *Loader) generationFallbackOrErr(ctx context.Context, gribPath string, id coreerr.Identity, fetchErr error) (Table, error) {
	if gribPath == "" {
		return Table{}, fetchErr
	}
	table, err := l.generationFallback(ctx, gribPath, id)
	if err != nil {
		return Table{}, fetchErr
	}
	return table, nil
}

func (l *Loader) generationFallback(ctx context.Context, gribPath string, id coreerr.Identity) (Table, error) {
	if gribPath == "" {
		return Table{}, coreerr.New(coreerr.KindNoIndex, id, fmt.Errorf("no index location and no local GRIB"))
	}
	if _, err := os.Stat(gribPath); err != nil {
		return Table{}, coreerr.New(coreerr.KindNoIndex, id, fmt.Errorf("no index location and local GRIB absent: %w", err))
	}
	return GenerateWgrib2Index(ctx, gribPath, id)
}

func (l *Loader) fetchRaw(ctx context.Context, idxLocation string, timeoutSeconds float64, id coreerr.Identity) ([]byte, bool, error) {
	if strings.HasPrefix(idxLocation, "http://") || strings.HasPrefix(idxLocation, "https://") {
		var buf bytes.Buffer
		if _, err := l.HTTP.GetFull(ctx, idxLocation, &buf, timeoutSeconds, id); err != nil {
			return nil, true, err
		}
		return buf.Bytes(), true, nil
	}
	data, err := os.ReadFile(idxLocation)
	if err != nil {
		return nil, false, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	return data, false, nil
}

func writeThrough(gribLocalDir, idxLocation string, raw []byte) {
	base := filepath.Base(idxLocation)
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	if err := os.MkdirAll(gribLocalDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(gribLocalDir, base), raw, 0o644)
}
