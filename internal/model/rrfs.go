package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var rrfsProducts = map[string]string{
	"prslev": "native/pressure-level fields",
}

func buildRRFS(req request.Request) (Output, error) {
	product := resolveProduct(req, "prslev")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 3)
	file := fmt.Sprintf("rrfs.t%sz.%s.f%s.grib2", hour, product, f)
	dir := fmt.Sprintf("rrfs.%s/%s", date, hour)

	return Output{
		Description: "NOAA Rapid Refresh Forecast System (experimental)",
		Products:    rrfsProducts,
		Sources: []Source{
			{Name: "aws", URL: fmt.Sprintf("https://noaa-rrfs-pds.s3.amazonaws.com/%s/%s", dir, file)},
		},
		IdxSuffixes:   []string{".grib2.idx"},
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}
