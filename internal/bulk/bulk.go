// Package bulk implements the Bulk Orchestrator (C8): it fans a cross
// product of (dates, leads) requests out across a fixed-size worker
// pool, and offers a "latest" sweep variant (a backward loop over
// candidate cycles) and a "wait" variant (a gocron polling job).
package bulk

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nwpfetch/nwpfetch/internal/model"
	"github.com/nwpfetch/nwpfetch/internal/notify"
	"github.com/nwpfetch/nwpfetch/internal/request"
	"github.com/nwpfetch/nwpfetch/internal/resolver"
)

// Item is one (init_time, lead) cell of a bulk sweep, paired with its
// outcome.
type Item struct {
	InitTime time.Time
	Lead     time.Duration
	Request  request.Request
	Result   resolver.Result
	Err      error
}

// Op is the per-request operation a bulk sweep performs: resolve-only by
// default, but callers may plug in inventory loading or full download.
type Op func(ctx context.Context, req request.Request) (resolver.Result, error)

// Orchestrator runs Op across a cross product of dates and leads under a
// bounded worker pool, grounded on the teacher's channel+WaitGroup
// archiver pattern (internal/archiver/archiveWorker.go).
type Orchestrator struct {
	MaxWorkers int
}

// New returns an Orchestrator with maxWorkers concurrent requests. A
// non-positive value is treated as 1.
func New(maxWorkers int) *Orchestrator {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Orchestrator{MaxWorkers: maxWorkers}
}

// Run constructs len(dates)*len(leads) requests by applying fields to a
// template request, executes op for each under the worker pool, and
// returns results sorted by (lead, init_time) regardless of completion
// order (§4.8).
func (o *Orchestrator) Run(ctx context.Context, base request.Request, dates []time.Time, leads []time.Duration, op Op) []Item {
	jobs := make(chan *Item)
	items := make([]*Item, 0, len(dates)*len(leads))
	for _, d := range dates {
		for _, l := range leads {
			req := base
			req.InitTime = d
			req.Lead = l
			items = append(items, &Item{InitTime: d, Lead: l, Request: req})
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < o.MaxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				item.Result, item.Err = op(ctx, item.Request)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, item := range items {
			select {
			case jobs <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	sort.Slice(items, func(i, j int) bool {
		if items[i].Lead != items[j].Lead {
			return items[i].Lead < items[j].Lead
		}
		return items[i].InitTime.Before(items[j].InitTime)
	})

	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = *it
	}

	if nc := notify.GetClient(); nc != nil {
		failed := Failures(out)
		_ = nc.Publish("nwpfetch.bulk.completed",
			[]byte(fmt.Sprintf(`{"model":%q,"total":%d,"failed":%d}`, base.Model, len(out), len(failed))))
	}

	return out
}

// Failures returns the subset of items that errored, preserving sorted
// order, for per-request failure reporting without aborting the batch.
func Failures(items []Item) []Item {
	var failed []Item
	for _, it := range items {
		if it.Err != nil {
			failed = append(failed, it)
		}
	}
	return failed
}

// ResolveOp adapts a resolver.Resolver into an Op, looking up the
// request's model template via reg.
func ResolveOp(reg *model.Registry, res *resolver.Resolver) Op {
	return func(ctx context.Context, req request.Request) (resolver.Result, error) {
		out, err := reg.Build(req)
		if err != nil {
			return resolver.Result{}, err
		}
		return res.Resolve(ctx, req, out), nil
	}
}
