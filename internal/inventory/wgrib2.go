package inventory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
)

// ParseWgrib2 parses a colon-separated wgrib2-dialect index (§4.4.1):
//
//	<msg>:<start_byte>:d=<YYYYMMDDHH[MM]>:<variable>:<level>:<forecast_time>[:...]
func ParseWgrib2(r io.Reader, id coreerr.Identity) (Table, error) {
	var lines []wgrib2Line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lineNo++
		parsed, err := parseWgrib2Line(line)
		if err != nil {
			return Table{}, coreerr.New(coreerr.KindBadDialect, id, fmt.Errorf("wgrib2 index line %d: %w", lineNo, err))
		}
		lines = append(lines, parsed)
	}
	if err := sc.Err(); err != nil {
		return Table{}, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	if len(lines) == 0 {
		return Table{}, coreerr.New(coreerr.KindNoIndex, id, fmt.Errorf("empty wgrib2 index"))
	}

	rows := make([]Row, len(lines))
	for i, l := range lines {
		endByte := int64(-1)
		if i+1 < len(lines) {
			endByte = lines[i+1].startByte - 1
		}
		refTime := id.InitTime
		if !l.refTime.IsZero() {
			refTime = l.refTime
		}
		rows[i] = Row{
			Message:       l.message,
			StartByte:     l.startByte,
			EndByte:       endByte,
			ReferenceTime: refTime,
			ValidTime:     refTime.Add(parseForecastHours(l.forecastTime)),
			Variable:      l.variable,
			Level:         l.level,
			ForecastTime:  l.forecastTime,
			SearchKey:     buildSearchKey(append([]string{l.variable, l.level, l.forecastTime}, l.trailing...)...),
		}
	}
	if err := validateMessageSequence(rows); err != nil {
		return Table{}, coreerr.New(coreerr.KindBadDialect, id, err)
	}
	return Table{Rows: rows}, nil
}

type wgrib2Line struct {
	message      int
	startByte    int64
	refTime      time.Time
	variable     string
	level        string
	forecastTime string
	trailing     []string
}

func parseWgrib2Line(line string) (wgrib2Line, error) {
	fields := strings.Split(line, ":")
	if len(fields) < 6 {
		return wgrib2Line{}, fmt.Errorf("expected at least 6 colon-separated fields, got %d", len(fields))
	}
	msg, err := strconv.Atoi(fields[0])
	if err != nil {
		return wgrib2Line{}, fmt.Errorf("message index %q: %w", fields[0], err)
	}
	startByte, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return wgrib2Line{}, fmt.Errorf("start_byte %q: %w", fields[1], err)
	}
	refTime, err := parseDField(fields[2])
	if err != nil {
		return wgrib2Line{}, err
	}

	out := wgrib2Line{
		message:      msg,
		startByte:    startByte,
		refTime:      refTime,
		variable:     fields[3],
		level:        fields[4],
		forecastTime: fields[5],
	}
	if len(fields) > 6 {
		out.trailing = fields[6:]
	}
	return out, nil
}

// parseDField parses "d=YYYYMMDDHH" or "d=YYYYMMDDHHMM" into a UTC time.
func parseDField(field string) (time.Time, error) {
	const prefix = "d="
	if !strings.HasPrefix(field, prefix) {
		return time.Time{}, fmt.Errorf("expected %q prefix, got %q", prefix, field)
	}
	digits := field[len(prefix):]
	switch len(digits) {
	case 10:
		digits += "00"
	case 12:
		// already minute-resolution
	default:
		return time.Time{}, fmt.Errorf("reference time %q: expected 10 or 12 digits", digits)
	}
	t, err := time.Parse("200601021504", digits)
	if err != nil {
		return time.Time{}, fmt.Errorf("reference time %q: %w", digits, err)
	}
	return t.UTC(), nil
}

// parseForecastHours extracts a lead duration from a wgrib2 forecast_time
// field such as "3 hour fcst" or "anl". Unrecognized forms yield 0.
func parseForecastHours(forecastTime string) time.Duration {
	fields := strings.Fields(forecastTime)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Hour
}
