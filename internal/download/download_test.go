package download

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nwpfetch/nwpfetch/internal/inventory"
)

func row(msg int, start, end int64) inventory.Row {
	return inventory.Row{Message: msg, StartByte: start, EndByte: end}
}

func TestGroupsCoalescesConsecutiveMessages(t *testing.T) {
	rows := []inventory.Row{
		row(1, 0, 99),
		row(2, 100, 199),
		row(5, 500, 599),
		row(6, 600, 699),
	}
	groups := Groups(rows)
	require.Len(t, groups, 2)
	require.Equal(t, int64(0), groups[0].start)
	require.Equal(t, int64(199), groups[0].end)
	require.Equal(t, int64(500), groups[1].start)
	require.Equal(t, int64(699), groups[1].end)
}

func TestGroupsHandlesOpenEndedFinalRow(t *testing.T) {
	rows := []inventory.Row{
		row(1, 0, 99),
		row(2, 100, -1),
	}
	groups := Groups(rows)
	require.Len(t, groups, 1)
	require.Equal(t, int64(-1), groups[0].end)
}

func TestGroupsSkipsInvertedRange(t *testing.T) {
	rows := []inventory.Row{
		row(1, 0, 99),
		row(5, 200, 50), // isolated (not consecutive with 1): inverted, skipped
	}
	groups := Groups(rows)
	require.Len(t, groups, 1)
	require.Equal(t, int64(0), groups[0].start)
	require.Equal(t, int64(99), groups[0].end)
}

func TestGroupsSortsByMessageFirst(t *testing.T) {
	rows := []inventory.Row{
		row(2, 100, 199),
		row(1, 0, 99),
	}
	groups := Groups(rows)
	require.Len(t, groups, 1)
	require.Equal(t, int64(0), groups[0].start)
	require.Equal(t, int64(199), groups[0].end)
}

func TestIsS3SourceRecognizesVirtualHostedAwsURL(t *testing.T) {
	require.True(t, isS3Source("https://noaa-hrrr-bdp-pds.s3.amazonaws.com/hrrr.20240301/conus/hrrr.t00z.wrfsfcf00.grib2"))
	require.True(t, isS3Source("s3://noaa-hrrr-bdp-pds/hrrr.20240301/conus/hrrr.t00z.wrfsfcf00.grib2"))
	require.False(t, isS3Source("https://nomads.ncep.noaa.gov/pub/data/nccf/com/hrrr/prod/hrrr.20240301/conus/hrrr.t00z.wrfsfcf00.grib2"))
}
