package model

import (
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// cutover compiles a boolean expr program once, at package init, and
// evaluates it per request against the init time. This is how templates
// implement §4.1's "Date-dependent URL layouts": the decision lives next
// to the URL patterns it selects between, as a small declarative
// condition instead of a scattered if/else per model file. Mirrors the
// compiled-rule shape internal/tagger/classifyJob.go uses for job
// classification rules in the teacher repo.
type cutover struct {
	program *vm.Program
}

// mustCutover compiles src (an expr boolean expression over `year`,
// `month`, `day` -- the init time's UTC calendar date) or panics; it is
// only ever called with literal strings at package init, so a compile
// failure is a programming error, not a runtime one.
func mustCutover(src string) cutover {
	p, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		panic("model: invalid cutover expression " + src + ": " + err.Error())
	}
	return cutover{program: p}
}

// After reports whether t's UTC calendar date satisfies the compiled
// cutover condition (typically "date on/after the layout change").
func (c cutover) After(t time.Time) bool {
	u := t.UTC()
	env := map[string]any{
		"year":  u.Year(),
		"month": int(u.Month()),
		"day":   u.Day(),
	}
	out, err := expr.Run(c.program, env)
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}

// Cutover dates named in §4.1: GFS's 2021-03 directory reorg, IFS's
// 2024-02 resolution change (from 2024-02-01) and its "ifs/" path
// segment (from 2024-02-28).
var (
	gfsDirReorg  = mustCutover(`year > 2021 || (year == 2021 && month > 3) || (year == 2021 && month == 3 && day >= 22)`)
	ifsHiRes     = mustCutover(`year > 2024 || (year == 2024 && month >= 2)`)
	ifsPathReorg = mustCutover(`year > 2024 || (year == 2024 && month > 2) || (year == 2024 && month == 2 && day >= 28)`)
)
