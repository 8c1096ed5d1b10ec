package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var gfsProducts = map[string]string{
	"pgrb2.0p25": "pressure-level fields, 0.25deg",
	"pgrb2.0p50": "pressure-level fields, 0.50deg",
	"pgrb2.1p00": "pressure-level fields, 1.00deg",
	"pgrb2b.0p25": "pressure-level fields, supplemental set, 0.25deg",
}

// buildGFS implements §4.1's date-dependent URL layout example: the
// directory scheme reorganized around 2021-03-22 to add an "atmos"
// sub-directory. gfsDirReorg (cutover.go) decides which form applies.
func buildGFS(req request.Request) (Output, error) {
	product := resolveProduct(req, "pgrb2.0p25")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 3)
	file := fmt.Sprintf("gfs.t%sz.%s.f%s", hour, product, f)

	var dir string
	if gfsDirReorg.After(req.InitTime) {
		dir = fmt.Sprintf("gfs.%s/%s/atmos", date, hour)
	} else {
		dir = fmt.Sprintf("gfs.%s/%s", date, hour)
	}

	nomads := fmt.Sprintf("https://nomads.ncep.noaa.gov/pub/data/nccf/com/gfs/prod/%s/%s", dir, file)
	aws := fmt.Sprintf("https://noaa-gfs-bdp-pds.s3.amazonaws.com/%s/%s", dir, file)
	google := fmt.Sprintf("https://storage.googleapis.com/global-forecast-system/%s/%s", dir, file)

	return Output{
		Description: "NOAA Global Forecast System",
		Details:     "Global model, multiple resolutions",
		Products:    gfsProducts,
		Sources: []Source{
			{Name: "aws", URL: aws},
			{Name: "nomads", URL: nomads},
			{Name: "google", URL: google},
		},
		IdxSuffixes:   []string{".idx"},
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}
