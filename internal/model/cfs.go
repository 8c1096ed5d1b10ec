package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var cfsProducts = map[string]string{
	"flxf": "flux fields",
	"pgbf": "pressure-level fields",
}

// buildCFS requires the "member" extra (1..4, CFS runs 4 members per
// cycle).
func buildCFS(req request.Request) (Output, error) {
	member := req.Extra("member")
	if member == "" {
		return missingField(req, "member")
	}
	product := resolveProduct(req, "pgbf")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 3)
	validDate := req.ValidTime().Format("2006010215")
	file := fmt.Sprintf("%s.%s.%s.grib2", product, validDate, f)
	dir := fmt.Sprintf("cfs.%s/%s/6hrly_grib_%s", date, hour, member)

	return Output{
		Description: "NOAA Climate Forecast System",
		Products:    cfsProducts,
		Sources: []Source{
			{Name: "aws", URL: fmt.Sprintf("https://noaa-cfs-pds.s3.amazonaws.com/%s/%s", dir, file)},
			{Name: "nomads", URL: fmt.Sprintf("https://nomads.ncep.noaa.gov/pub/data/nccf/com/cfs/prod/%s/%s", dir, file)},
		},
		IdxSuffixes:   []string{".grib2.idx"},
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}
