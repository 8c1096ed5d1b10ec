package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var hrrrProducts = map[string]string{
	"sfc":  "2D surface fields",
	"prs":  "3D pressure-level fields",
	"nat":  "native hybrid-level fields",
	"subh": "sub-hourly surface fields",
}

// buildHRRR is the template for CONUS HRRR. hrrrak (below) reuses most of
// its logic with an "ak" domain suffix.
func buildHRRR(req request.Request) (Output, error) {
	return hrrrTemplate(req, "hrrr", "conus")
}

func buildHRRRAK(req request.Request) (Output, error) {
	return hrrrTemplate(req, "hrrr", "alaska")
}

func hrrrTemplate(req request.Request, modelDir, domain string) (Output, error) {
	product := resolveProduct(req, "sfc")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 2)
	file := fmt.Sprintf("%s.t%sz.wrfsfcf%s.grib2", modelDir, hour, f)
	if product != "sfc" {
		file = fmt.Sprintf("%s.t%sz.wrf%sf%s.grib2", modelDir, hour, product, f)
	}

	nomads := fmt.Sprintf("https://nomads.ncep.noaa.gov/pub/data/nccf/com/hrrr/prod/hrrr.%s/%s/%s", date, domain, file)
	aws := fmt.Sprintf("https://noaa-hrrr-bdp-pds.s3.amazonaws.com/hrrr.%s/%s/%s", date, domain, file)
	google := fmt.Sprintf("https://storage.googleapis.com/high-resolution-rapid-refresh/hrrr.%s/%s/%s", date, domain, file)
	azure := fmt.Sprintf("https://noaahrrr.blob.core.windows.net/hrrr/hrrr.%s/%s/%s", date, domain, file)
	pando := fmt.Sprintf("https://pando-rgw01.chpc.utah.edu/hrrr/%s/%s/%s", domain, date, file)
	pando2 := fmt.Sprintf("https://pando-rgw02.chpc.utah.edu/hrrr/%s/%s/%s", domain, date, file)

	return Output{
		Description: "NOAA High-Resolution Rapid Refresh",
		Details:     "3km CONUS/Alaska convection-allowing model",
		Products:    hrrrProducts,
		Sources: []Source{
			{Name: "aws", URL: aws},
			{Name: "nomads", URL: nomads},
			{Name: "google", URL: google},
			{Name: "azure", URL: azure},
			{Name: "pando", URL: pando},
			{Name: "pando2", URL: pando2},
		},
		IdxSuffixes:   []string{".grib2.idx"},
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}
