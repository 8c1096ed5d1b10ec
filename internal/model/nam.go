package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var namProducts = map[string]string{
	"awphys": "CONUS 12km analysis/forecast fields",
}

func buildNAM(req request.Request) (Output, error) {
	product := resolveProduct(req, "awphys")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 2)
	file := fmt.Sprintf("nam.t%sz.%s%s.tm00.grib2", hour, product, f)
	dir := fmt.Sprintf("nam.%s", date)

	return Output{
		Description: "NOAA North American Mesoscale model",
		Products:    namProducts,
		Sources: []Source{
			{Name: "aws", URL: fmt.Sprintf("https://noaa-nam-pds.s3.amazonaws.com/%s/%s", dir, file)},
			{Name: "nomads", URL: fmt.Sprintf("https://nomads.ncep.noaa.gov/pub/data/nccf/com/nam/prod/%s/%s", dir, file)},
		},
		IdxSuffixes:   []string{".grib2.idx"},
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}
