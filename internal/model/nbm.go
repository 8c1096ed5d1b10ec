package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
	"github.com/nwpfetch/nwpfetch/pkg/log"
)

var nbmProducts = map[string]string{
	"co": "CONUS blended forecast",
	"ak": "Alaska blended forecast",
}

// nbmSmallestLead is the smallest lead NBM actually publishes: it does
// not produce an analysis (lead 0), per §8's boundary behavior.
const nbmSmallestLead = 1

func buildNBM(req request.Request) (Output, error) {
	product := resolveProduct(req, "co")
	lead := leadHours(req)
	if lead == 0 {
		log.Warnf("nbm: model does not publish an analysis, substituting lead %dh for the requested 0h", nbmSmallestLead)
		lead = nbmSmallestLead
	}

	date, hour := yyyymmdd(req), hh(req)
	f := fmt.Sprintf("%03d", lead)
	file := fmt.Sprintf("blend.t%sz.%s.f%s.%s.grib2", hour, product, f, product)
	dir := fmt.Sprintf("blend.%s/%s/core", date, hour)

	return Output{
		Description: "NOAA National Blend of Models",
		Products:    nbmProducts,
		Sources: []Source{
			{Name: "aws", URL: fmt.Sprintf("https://noaa-nbm-pds.s3.amazonaws.com/%s/%s", dir, file)},
			{Name: "nomads", URL: fmt.Sprintf("https://nomads.ncep.noaa.gov/pub/data/nccf/com/blend/prod/%s/%s", dir, file)},
		},
		IdxSuffixes:   []string{".grib2.idx"},
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}
