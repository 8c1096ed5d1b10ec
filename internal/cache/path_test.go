package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nwpfetch/nwpfetch/internal/cache"
	"github.com/nwpfetch/nwpfetch/internal/request"
)

func testReq() request.Request {
	return request.Request{
		Model:    "hrrr",
		Product:  "sfc",
		InitTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Lead:     3 * time.Hour,
		SaveDir:  "/data",
	}
}

func TestBasePathIsPure(t *testing.T) {
	req := testReq()
	p1 := cache.BasePath(req, "hrrr.t12z.wrfsfcf03.grib2")
	p2 := cache.BasePath(req, "hrrr.t12z.wrfsfcf03.grib2")
	require.Equal(t, p1, p2)
	require.Equal(t, "/data/hrrr/20240601/hrrr.t12z.wrfsfcf03.grib2", p1)
}

func TestSubsetNameDeterministicOnMessageSet(t *testing.T) {
	req := testReq()
	// Different orderings of the same message set must produce the same name.
	n1 := cache.SubsetName(req, "hrrr.grib2", []int{3, 1, 2})
	n2 := cache.SubsetName(req, "hrrr.grib2", []int{1, 2, 3})
	require.Equal(t, n1, n2)
	require.Contains(t, n1, "subset_")
	require.Contains(t, n1, "__hrrr.grib2")
}

func TestSubsetNameVariesWithMessageSet(t *testing.T) {
	req := testReq()
	n1 := cache.SubsetName(req, "hrrr.grib2", []int{1, 2})
	n2 := cache.SubsetName(req, "hrrr.grib2", []int{1, 2, 3})
	require.NotEqual(t, n1, n2)
}

func TestSubsetNameVariesWithLead(t *testing.T) {
	req1 := testReq()
	req2 := testReq()
	req2.Lead = 6 * time.Hour
	n1 := cache.SubsetName(req1, "hrrr.grib2", []int{1})
	n2 := cache.SubsetName(req2, "hrrr.grib2", []int{1})
	require.NotEqual(t, n1, n2)
}

func TestExpandSaveDirLeavesAbsolutePathAlone(t *testing.T) {
	require.Equal(t, "/data/x", cache.ExpandSaveDir("/data/x"))
}
