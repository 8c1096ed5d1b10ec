package resolver

import "testing"

func TestDeriveIdxNameSubstitutesKnownGribExtension(t *testing.T) {
	got := deriveIdxName("https://data.ecmwf.int/forecasts/20240301/00z/ifs/0p25/oper/20240301000000-0h-oper-fc.grib2", ".index")
	want := "https://data.ecmwf.int/forecasts/20240301/00z/ifs/0p25/oper/20240301000000-0h-oper-fc.index"
	if got != want {
		t.Fatalf("deriveIdxName() = %q, want %q", got, want)
	}
}

func TestDeriveIdxNameAppendsWhenSuffixReincludesExtension(t *testing.T) {
	got := deriveIdxName("https://noaa-hrrr-bdp-pds.s3.amazonaws.com/hrrr.20240301/conus/hrrr.t00z.wrfsfcf00.grib2", ".grib2.idx")
	want := "https://noaa-hrrr-bdp-pds.s3.amazonaws.com/hrrr.20240301/conus/hrrr.t00z.wrfsfcf00.grib2.idx"
	if got != want {
		t.Fatalf("deriveIdxName() = %q, want %q", got, want)
	}
}

func TestDeriveIdxNameAppendsWhenNoRecognizedExtension(t *testing.T) {
	got := deriveIdxName("https://nomads.ncep.noaa.gov/pub/data/nccf/com/gfs/prod/gfs.20240301/00/atmos/gfs.t00z.pgrb2.0p25.f000", ".idx")
	want := "https://nomads.ncep.noaa.gov/pub/data/nccf/com/gfs/prod/gfs.20240301/00/atmos/gfs.t00z.pgrb2.0p25.f000.idx"
	if got != want {
		t.Fatalf("deriveIdxName() = %q, want %q", got, want)
	}
}
