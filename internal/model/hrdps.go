package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var hrdpsProducts = map[string]string{
	"continental": "2.5km continental domain",
}

// buildHRDPS is Environment and Climate Change Canada's deterministic
// HRDPS model, served from the MSC GeoMet datamart ("msc" source name).
func buildHRDPS(req request.Request) (Output, error) {
	product := resolveProduct(req, "continental")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 3)
	file := fmt.Sprintf("%s_HRDPS_%s_RegSciFcst_ps2.5km_%s%s_P%s-00.grib2", date, product, date, hour, f)
	dir := fmt.Sprintf("hrdps/%s/%s", product, hour)

	return Output{
		Description: "ECCC High Resolution Deterministic Prediction System",
		Products:    hrdpsProducts,
		Sources: []Source{
			{Name: "msc", URL: fmt.Sprintf("https://dd.weather.gc.ca/model_hrdps/%s/%s", dir, file)},
		},
		IdxSuffixes:   []string{}, // MSC datamart publishes no sidecar index
		IdxDialect:    Wgrib2,
		LocalFilename: file,
	}, nil
}
