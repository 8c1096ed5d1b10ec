package bulk

import (
	"context"
	"fmt"
	"time"

	"github.com/nwpfetch/nwpfetch/internal/model"
	"github.com/nwpfetch/nwpfetch/internal/request"
	"github.com/nwpfetch/nwpfetch/internal/resolver"
	"github.com/nwpfetch/nwpfetch/pkg/log"
)

// Cadence is how far apart successive model cycles are, used by Latest
// to step backward through candidate init times (§4.8: "hourly for
// short-range models, six-hourly for global models").
type Cadence time.Duration

const (
	Hourly    Cadence = Cadence(time.Hour)
	SixHourly Cadence = Cadence(6 * time.Hour)
)

// Latest sweeps backward from the most recent whole cadence boundary
// before now, resolving each candidate cycle until one GRIB is found or
// maxTries candidates have been exhausted.
func Latest(ctx context.Context, reg *model.Registry, res *resolver.Resolver, base request.Request, cadence Cadence, maxTries int) (request.Request, resolver.Result, error) {
	step := time.Duration(cadence)
	if step <= 0 {
		step = time.Hour
	}
	candidate := time.Now().UTC().Truncate(step)

	for i := 0; i < maxTries; i++ {
		req := base
		req.InitTime = candidate
		out, err := reg.Build(req)
		if err == nil {
			result := res.Resolve(ctx, req, out)
			if result.GRIB.Resolved() {
				return req, result, nil
			}
			log.Debugf("bulk: latest sweep miss at %s (try %d/%d)", candidate, i+1, maxTries)
		}
		candidate = candidate.Add(-step)
	}
	return request.Request{}, resolver.Result{}, fmt.Errorf("bulk: no cycle found for %s within %d tries", base.Model, maxTries)
}
