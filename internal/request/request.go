// Package request defines the Request type that fully determines a single
// core operation (resolve/inventory/download), per §3.1.
package request

import (
	"strconv"
	"strings"
	"time"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
)

// Request fully determines a core operation. It is keyed by InitTime;
// ValidTime() derives the valid time as InitTime + Lead. A Request cannot
// be built from a valid time alone.
type Request struct {
	Model    string
	Product  string
	InitTime time.Time
	Lead     time.Duration

	Priority []string
	SaveDir  string
	Overwrite bool

	// Extras carries model-specific free-form fields (member, nest,
	// storm_id, variable, level, ...). Each template consumes whichever
	// subset it needs and ignores the rest.
	Extras map[string]string
}

// Identity returns the (model, init time, lead) triple used to stamp
// errors and cache keys.
func (r Request) Identity() coreerr.Identity {
	return coreerr.Identity{Model: r.Model, InitTime: r.InitTime, Lead: r.Lead}
}

// Extra returns Extras[key] or "" if absent.
func (r Request) Extra(key string) string {
	if r.Extras == nil {
		return ""
	}
	return r.Extras[key]
}

// ValidTime is init_time + lead.
func (r Request) ValidTime() time.Time {
	return r.InitTime.Add(r.Lead)
}

// normalClock is overridable in tests so "now" boundary checks are
// deterministic; production callers never set it.
var normalClock = time.Now

// Validate enforces the invariants of §3.1: init_time < now, lead >= 0,
// model non-empty (an empty product is allowed; the template supplies its
// default). It does NOT check the template registry -- unknown models and
// products are rejected by model.Registry.Build.
func (r Request) Validate() error {
	id := r.Identity()
	if r.Model == "" {
		return coreerr.New(coreerr.KindInvalidRequest, id, errString("model is required"))
	}
	if !r.InitTime.Before(normalClock()) {
		return coreerr.New(coreerr.KindInvalidRequest, id, errString("init_time must be strictly before now"))
	}
	if r.Lead < 0 {
		return coreerr.New(coreerr.KindInvalidRequest, id, errString("lead must be >= 0"))
	}
	return nil
}

// EffectivePriority drops "nomads" when init_time is more than 14 days in
// the past, per §3.1. The caller's slice is not mutated.
func (r Request) EffectivePriority() []string {
	out := make([]string, 0, len(r.Priority))
	dropNomads := normalClock().Sub(r.InitTime) > 14*24*time.Hour
	for _, name := range r.Priority {
		if dropNomads && strings.EqualFold(name, "nomads") {
			continue
		}
		out = append(out, name)
	}
	return out
}

// ParseLead accepts either an integer number of hours ("3") or a Go
// duration string ("3h", "90m") and returns a whole-hour duration.
func ParseLead(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if hours, err := strconv.Atoi(s); err == nil {
		return time.Duration(hours) * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return d.Round(time.Hour), nil
}

type errString string

func (e errString) Error() string { return string(e) }
