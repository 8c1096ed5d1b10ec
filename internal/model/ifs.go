package model

import (
	"fmt"

	"github.com/nwpfetch/nwpfetch/internal/request"
)

var ifsProducts = map[string]string{
	"oper": "high-resolution deterministic forecast",
	"enfo": "ensemble forecast",
	"waef": "wave ensemble forecast",
}

// buildIFS implements §4.1's other date-dependent example: ECMWF's open
// data moved from 0.4deg to 0.25deg (and changed its path layout) around
// 2024-02. ifsHiRes (cutover.go) decides which form applies. The index
// dialect is eccodes (line-delimited JSON), unlike every US model above.
func buildIFS(req request.Request) (Output, error) {
	product := resolveProduct(req, "oper")
	date, hour, f := yyyymmdd(req), hh(req), fxx(req, 3)

	productSuffix := "fc"
	if product == "enfo" || product == "waef" {
		productSuffix = "ef"
	}
	file := fmt.Sprintf("%s%s0000-%sh-%s-%s.grib2", date, hour, stripLeadZeros(f), product, productSuffix)

	res := "0p4-beta"
	if ifsHiRes.After(req.InitTime) {
		res = "0p25"
	}

	// The 2024-02-28 layout change also inserted an "ifs/" path segment
	// ahead of the resolution directory; earlier dates never had it.
	var postRoot string
	if ifsPathReorg.After(req.InitTime) {
		postRoot = fmt.Sprintf("%s/%sz/ifs/%s/%s/%s", date, hour, res, product, file)
	} else {
		postRoot = fmt.Sprintf("%s/%sz/%s/%s/%s", date, hour, res, product, file)
	}

	ecmwf := fmt.Sprintf("https://data.ecmwf.int/forecasts/%s", postRoot)
	aws := fmt.Sprintf("https://ecmwf-forecasts.s3.eu-central-1.amazonaws.com/%s", postRoot)
	azure := fmt.Sprintf("https://ai4edataeuwest.blob.core.windows.net/ecmwf/%s", postRoot)

	return Output{
		Description: "ECMWF Integrated Forecasting System (open data)",
		Details:     "Global deterministic/ensemble forecast, eccodes index dialect",
		Products:    ifsProducts,
		Sources: []Source{
			{Name: "ecmwf", URL: ecmwf},
			{Name: "aws", URL: aws},
			{Name: "azure", URL: azure},
		},
		IdxSuffixes:   []string{".index"},
		IdxDialect:    Eccodes,
		LocalFilename: file,
	}, nil
}

func stripLeadZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
