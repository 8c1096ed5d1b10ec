package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var hafsaProducts = map[string]string{
	"storm": "storm-centered nest",
	"parent": "parent domain",
}

// buildHAFSA requires the "storm_id" extra (e.g. "06l"), the NHC storm
// identifier the hurricane model is keyed by.
func buildHAFSA(req request.Request) (Output, error) {
	stormID := req.Extra("storm_id")
	if stormID == "" {
		return missingField(req, "storm_id")
	}
	product := resolveProduct(req, "storm")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 3)
	file := fmt.Sprintf("%s.%s%s.hfsa.%s.f%s.grib2", stormID, date, hour, product, f)
	dir := fmt.Sprintf("hafs.%s/%s", date, hour)

	return Output{
		Description: "NOAA Hurricane Analysis and Forecast System (HAFS-A)",
		Products:    hafsaProducts,
		Sources: []Source{
			{Name: "aws", URL: fmt.Sprintf("https://noaa-nws-hafs-pds.s3.amazonaws.com/%s/%s/%s", dir, stormID, file)},
			{Name: "nomads", URL: fmt.Sprintf("https://nomads.ncep.noaa.gov/pub/data/nccf/com/hafs/prod/%s/%s/%s", dir, stormID, file)},
		},
		IdxSuffixes:   []string{".grib2.idx"},
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}
