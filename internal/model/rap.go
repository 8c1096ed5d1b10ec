package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var rapProducts = map[string]string{
	"awp130pgrb": "CONUS 13km pressure-level fields",
	"awp252pgrb": "Alaska 45km pressure-level fields",
}

// buildRAP's index files are the ones §4.6/§9 call out as occasionally
// containing sub-message byte ranges that coalesce into an inverted
// group; nothing template-specific is needed to handle that, the
// downloader detects and skips it generically.
func buildRAP(req request.Request) (Output, error) {
	product := resolveProduct(req, "awp130pgrb")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 2)
	file := fmt.Sprintf("rap.t%sz.%sf%s.grib2", hour, product, f)
	dir := fmt.Sprintf("rap.%s", date)

	return Output{
		Description: "NOAA Rapid Refresh model",
		Products:    rapProducts,
		Sources: []Source{
			{Name: "aws", URL: fmt.Sprintf("https://noaa-rap-pds.s3.amazonaws.com/%s/%s", dir, file)},
			{Name: "nomads", URL: fmt.Sprintf("https://nomads.ncep.noaa.gov/pub/data/nccf/com/rap/prod/%s/%s", dir, file)},
		},
		IdxSuffixes:   []string{".grib2.idx"},
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}
