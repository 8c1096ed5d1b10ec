package bulk

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/nwpfetch/nwpfetch/internal/model"
	"github.com/nwpfetch/nwpfetch/internal/request"
	"github.com/nwpfetch/nwpfetch/internal/resolver"
	"github.com/nwpfetch/nwpfetch/pkg/log"
)

// Wait polls req's GRIB availability at a fixed interval until it
// resolves or timeout elapses (§4.8's "wait" variant). It uses gocron
// the way the teacher's taskManager schedules its recurring jobs
// (DurationJob + a single task), but tears the scheduler down once the
// cycle resolves or the deadline passes rather than running forever.
func Wait(ctx context.Context, reg *model.Registry, res *resolver.Resolver, req request.Request, interval, timeout time.Duration) (resolver.Result, error) {
	out, err := reg.Build(req)
	if err != nil {
		return resolver.Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s, err := gocron.NewScheduler()
	if err != nil {
		return resolver.Result{}, fmt.Errorf("bulk: create scheduler: %w", err)
	}

	type poll struct {
		result resolver.Result
		found  bool
	}
	results := make(chan poll, 1)

	_, err = s.NewJob(gocron.DurationJob(interval), gocron.NewTask(func() {
		result := res.Resolve(ctx, req, out)
		if result.GRIB.Resolved() {
			select {
			case results <- poll{result: result, found: true}:
			default:
			}
		} else {
			log.Debugf("bulk: wait poll miss for %s at %s", req.Model, req.InitTime)
		}
	}))
	if err != nil {
		return resolver.Result{}, fmt.Errorf("bulk: schedule poll: %w", err)
	}

	s.Start()
	defer s.Shutdown()

	select {
	case p := <-results:
		return p.result, nil
	case <-ctx.Done():
		return resolver.Result{}, fmt.Errorf("bulk: wait for %s timed out after %s", req.Model, timeout)
	}
}
