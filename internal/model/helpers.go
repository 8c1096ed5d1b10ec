package model

import (
	"fmt"
	"strings"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

// leadHours returns the whole-hour forecast lead, as every built-in
// template's URL encodes it (fHHH / f%03d style).
func leadHours(req request.Request) int {
	return int(req.Lead.Hours())
}

// fxx formats the lead the way NOAA/NOMADS path segments do: zero-padded
// to at least width digits, uncapped (HRRR goes past 48, GFS past 384).
func fxx(req request.Request, width int) string {
	return fmt.Sprintf("%0*d", width, leadHours(req))
}

func yyyymmdd(req request.Request) string { return req.InitTime.Format("20060102") }
func hh(req request.Request) string       { return req.InitTime.Format("15") }

// expandPattern fills in the small set of placeholders the extension
// template format supports (§4.1 user-provided templates). Built-in
// models format their own URLs directly with fmt.Sprintf instead, since
// they need more than simple substitution (cutover dates, per-source
// quirks).
func expandPattern(pattern string, req request.Request) string {
	r := strings.NewReplacer(
		"{date}", yyyymmdd(req),
		"{hour}", hh(req),
		"{fxx}", fxx(req, 2),
		"{fxx3}", fxx(req, 3),
		"{product}", req.Product,
		"{member}", req.Extra("member"),
		"{nest}", req.Extra("nest"),
		"{storm_id}", req.Extra("storm_id"),
	)
	return r.Replace(pattern)
}

// resolveProduct returns req.Product, or defaultProduct if req.Product is
// empty, per §3.1 "If absent, defaults to the first product declared by
// the template."
func resolveProduct(req request.Request, defaultProduct string) string {
	if req.Product != "" {
		return req.Product
	}
	return defaultProduct
}
