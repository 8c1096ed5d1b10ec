package inventory_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
	"github.com/nwpfetch/nwpfetch/internal/inventory"
)

func testID() coreerr.Identity {
	return coreerr.Identity{Model: "test", InitTime: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
}

func TestParseWgrib2Basic(t *testing.T) {
	idx := strings.Join([]string{
		"1:0:d=2024060100:TMP:2 m above ground:anl:",
		"2:523102:d=2024060100:UGRD:10 m above ground:anl:",
		"3:1139514:d=2024060100:VGRD:10 m above ground:anl:",
	}, "\n")

	table, err := inventory.ParseWgrib2(strings.NewReader(idx), testID())
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	require.Equal(t, 1, table.Rows[0].Message)
	require.Equal(t, int64(0), table.Rows[0].StartByte)
	require.Equal(t, int64(523101), table.Rows[0].EndByte)
	require.Equal(t, ":TMP:2 m above ground:anl", table.Rows[0].SearchKey)

	// Last row is open-ended.
	require.True(t, table.Rows[2].HasOpenEnd())

	for _, r := range table.Rows {
		require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), r.ReferenceTime)
	}
}

func TestParseWgrib2RejectsShortLine(t *testing.T) {
	_, err := inventory.ParseWgrib2(strings.NewReader("1:0:bad"), testID())
	require.Error(t, err)
	require.ErrorIs(t, err, coreerr.BadDialect)
}

func TestParseWgrib2RejectsDuplicateMessage(t *testing.T) {
	idx := strings.Join([]string{
		"1:0:d=2024060100:TMP:2 m above ground:anl:",
		"1:523102:d=2024060100:UGRD:10 m above ground:anl:",
	}, "\n")

	_, err := inventory.ParseWgrib2(strings.NewReader(idx), testID())
	require.Error(t, err)
	require.ErrorIs(t, err, coreerr.BadDialect)
}

func TestParseEccodesBasic(t *testing.T) {
	lines := []string{
		`{"_offset":0,"_length":1000,"date":"20240301","time":"0","step":"0","param":"10u","levelist":"","levtype":"sfc","number":"0","domain":"g","expver":"0001","class":"od","type":"fc","stream":"oper"}`,
		`{"_offset":1000,"_length":900,"date":"20240301","time":"0","step":"0","param":"10v","levelist":"","levtype":"sfc","number":"0","domain":"g","expver":"0001","class":"od","type":"fc","stream":"oper"}`,
	}
	table, err := inventory.ParseEccodes(strings.NewReader(strings.Join(lines, "\n")), testID())
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Equal(t, int64(0), table.Rows[0].StartByte)
	require.Equal(t, int64(1000), table.Rows[0].EndByte)
	require.Contains(t, table.Rows[0].SearchKey, "10u")
	require.Contains(t, table.Rows[1].SearchKey, "10v")
}

func TestFilterSelectsByRegexAcrossBothUVMessages(t *testing.T) {
	lines := []string{
		`{"_offset":0,"_length":1000,"date":"20240301","time":"0","step":"0","param":"10u","levelist":"","levtype":"sfc","number":"0","domain":"g","expver":"0001","class":"od","type":"fc","stream":"oper"}`,
		`{"_offset":1000,"_length":900,"date":"20240301","time":"0","step":"0","param":"10v","levelist":"","levtype":"sfc","number":"0","domain":"g","expver":"0001","class":"od","type":"fc","stream":"oper"}`,
		`{"_offset":1900,"_length":500,"date":"20240301","time":"0","step":"0","param":"2t","levelist":"","levtype":"sfc","number":"0","domain":"g","expver":"0001","class":"od","type":"fc","stream":"oper"}`,
	}
	table, err := inventory.ParseEccodes(strings.NewReader(strings.Join(lines, "\n")), testID())
	require.NoError(t, err)

	filtered, err := inventory.Filter(table, `:10(?:u|v):`, inventory.Eccodes)
	require.NoError(t, err)
	require.Len(t, filtered.Rows, 2)
}

func TestFilterPassThroughOnNullRegex(t *testing.T) {
	idx := "1:0:d=2024060100:TMP:2 m above ground:anl:\n2:523102:d=2024060100:UGRD:10 m above ground:anl:"
	table, err := inventory.ParseWgrib2(strings.NewReader(idx), testID())
	require.NoError(t, err)

	filtered, err := inventory.Filter(table, ":", inventory.Wgrib2)
	require.NoError(t, err)
	require.Len(t, filtered.Rows, 2)
}

func TestFilterEmptyMatchReturnsEmptyTable(t *testing.T) {
	idx := "1:0:d=2024060100:TMP:2 m above ground:anl:"
	table, err := inventory.ParseWgrib2(strings.NewReader(idx), testID())
	require.NoError(t, err)

	filtered, err := inventory.Filter(table, "NOSUCHVAR", inventory.Wgrib2)
	require.NoError(t, err)
	require.Empty(t, filtered.Rows)
}
