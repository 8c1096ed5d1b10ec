package model

func registerBuiltins(r *Registry) {
	r.Register("hrrr", BuildFunc(buildHRRR))
	r.Register("hrrrak", BuildFunc(buildHRRRAK))
	r.Register("gfs", BuildFunc(buildGFS))
	r.Register("ifs", BuildFunc(buildIFS))
	r.Register("nam", BuildFunc(buildNAM))
	r.Register("rap", BuildFunc(buildRAP))
	r.Register("rrfs", BuildFunc(buildRRFS))
	r.Register("nbm", BuildFunc(buildNBM))
	r.Register("gefs", BuildFunc(buildGEFS))
	r.Register("hafsa", BuildFunc(buildHAFSA))
	r.Register("cfs", BuildFunc(buildCFS))
	r.Register("hrdps", BuildFunc(buildHRDPS))

	// Aliases (§4.1). "ecmwf" -> "ifs" is the one historical, deprecated
	// alias named explicitly by the spec; the rest are undocumented
	// synonyms recovered from the original Python model registry
	// (herbie/models/hrrrak.py and its sibling alias table).
	r.Alias("alaska", "hrrrak")
	r.Alias("akhrrr", "hrrrak")
	r.Alias("hrrr-ak", "hrrrak")
	r.DeprecateAlias("ecmwf", "ifs")
	r.Alias("ecmwf-ifs", "ifs")
}
