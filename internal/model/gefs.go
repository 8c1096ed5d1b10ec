package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var gefsProducts = map[string]string{
	"atmos.5": "ensemble, 0.5deg",
	"atmos.25": "ensemble, 0.25deg",
}

// buildGEFS requires the ensemble "member" extra (e.g. "avg", "c00",
// "p01".."p30"), per §3.1's "Template Output... MissingField naming the
// field" contract.
func buildGEFS(req request.Request) (Output, error) {
	member := req.Extra("member")
	if member == "" {
		return missingField(req, "member")
	}
	product := resolveProduct(req, "atmos.5")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 3)
	file := fmt.Sprintf("ge%s.t%sz.pgrb2%s.f%s", member, hour, productSuffix(product), f)
	dir := fmt.Sprintf("gefs.%s/%s/%s", date, hour, productFamily(product))

	return Output{
		Description: "NOAA Global Ensemble Forecast System",
		Products:    gefsProducts,
		Sources: []Source{
			{Name: "aws", URL: fmt.Sprintf("https://noaa-gefs-pds.s3.amazonaws.com/%s/%s", dir, file)},
			{Name: "nomads", URL: fmt.Sprintf("https://nomads.ncep.noaa.gov/pub/data/nccf/com/gens/prod/%s/%s", dir, file)},
		},
		IdxSuffixes:   []string{".idx"},
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}

func productSuffix(product string) string {
	switch product {
	case "atmos.25":
		return "s.0p25"
	default:
		return "s.0p50"
	}
}

func productFamily(string) string { return "atmos" }
