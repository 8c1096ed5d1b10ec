package inventory

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
)

// eccodesRecord mirrors one line of an eccodes-dialect index (§4.4.2).
// Fields come back as json.Number/string since eccodes emits numeric
// step/number values but textual everything else.
type eccodesRecord struct {
	Offset json.Number `json:"_offset"`
	Length json.Number `json:"_length"`
	Date   json.Number `json:"date"`
	Time   json.Number `json:"time"`
	Step   json.Number `json:"step"`

	Param    string      `json:"param"`
	Levelist string      `json:"levelist"`
	Levtype  string      `json:"levtype"`
	Number   json.Number `json:"number"`
	Domain   string      `json:"domain"`
	Expver   string      `json:"expver"`
	Class    string      `json:"class"`
	Type     string      `json:"type"`
	Stream   string      `json:"stream"`
}

// ParseEccodes parses a line-delimited-JSON eccodes-dialect index
// (§4.4.2).
func ParseEccodes(r io.Reader, id coreerr.Identity) (Table, error) {
	var rows []Row
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lineNo++
		var rec eccodesRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return Table{}, coreerr.New(coreerr.KindBadDialect, id, fmt.Errorf("eccodes index line %d: %w", lineNo, err))
		}
		row, err := rec.toRow(lineNo)
		if err != nil {
			return Table{}, coreerr.New(coreerr.KindBadDialect, id, fmt.Errorf("eccodes index line %d: %w", lineNo, err))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return Table{}, coreerr.New(coreerr.KindIOFailed, id, err)
	}
	if len(rows) == 0 {
		return Table{}, coreerr.New(coreerr.KindNoIndex, id, fmt.Errorf("empty eccodes index"))
	}
	if err := validateMessageSequence(rows); err != nil {
		return Table{}, coreerr.New(coreerr.KindBadDialect, id, err)
	}
	return Table{Rows: rows}, nil
}

func (rec eccodesRecord) toRow(message int) (Row, error) {
	offset, err := rec.Offset.Int64()
	if err != nil {
		return Row{}, fmt.Errorf("_offset: %w", err)
	}
	length, err := rec.Length.Int64()
	if err != nil {
		return Row{}, fmt.Errorf("_length: %w", err)
	}

	refTime, err := parseDateTimeFields(rec.Date.String(), rec.Time.String())
	if err != nil {
		return Row{}, err
	}
	stepHours, _ := strconv.ParseFloat(rec.Step.String(), 64)

	number := rec.Number.String()

	return Row{
		Message:       message,
		StartByte:     offset,
		EndByte:       offset + length,
		ReferenceTime: refTime,
		ValidTime:     refTime.Add(time.Duration(stepHours * float64(time.Hour))),
		Param:         rec.Param,
		Levelist:      rec.Levelist,
		Levtype:       rec.Levtype,
		Number:        number,
		Domain:        rec.Domain,
		Expver:        rec.Expver,
		Class:         rec.Class,
		Type:          rec.Type,
		Stream:        rec.Stream,
		Step:          rec.Step.String(),
		SearchKey: buildSearchKey(
			rec.Param, rec.Levelist, rec.Levtype, number,
			rec.Domain, rec.Expver, rec.Class, rec.Type, rec.Stream,
		),
	}, nil
}

// parseDateTimeFields combines eccodes "date" (YYYYMMDD) and "time"
// (HMM or HHMM, zero-padded) fields into a UTC timestamp.
func parseDateTimeFields(date, clock string) (time.Time, error) {
	if len(date) != 8 {
		return time.Time{}, fmt.Errorf("date %q: expected 8 digits", date)
	}
	clock = strings.TrimSpace(clock)
	for len(clock) < 4 {
		clock = "0" + clock
	}
	t, err := time.Parse("200601021504", date+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q time %q: %w", date, clock, err)
	}
	return t.UTC(), nil
}
