package inventory

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/nwpfetch/nwpfetch/internal/coreerr"
)

// Wgrib2Available reports whether an external wgrib2 binary is on PATH
// (§4.4.3, §7 "External-process dependency").
func Wgrib2Available() bool {
	_, err := exec.LookPath("wgrib2")
	return err == nil
}

// GenerateWgrib2Index shells out to "wgrib2 -s <path>" and parses its
// stdout as a wgrib2-dialect index, synthesizing an inventory for a GRIB
// file that has no locatable index (§4.4.3). This is the same
// synchronous, single-shot external-process pattern the teacher uses for
// systemd-notify in its archiver service.
func GenerateWgrib2Index(ctx context.Context, gribPath string, id coreerr.Identity) (Table, error) {
	if !Wgrib2Available() {
		return Table{}, coreerr.New(coreerr.KindNoIndex, id, fmt.Errorf("wgrib2 binary not found on PATH"))
	}

	cmd := exec.CommandContext(ctx, "wgrib2", "-s", gribPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return Table{}, coreerr.New(coreerr.KindNoIndex, id,
			fmt.Errorf("wgrib2 -s %s: %w: %s", gribPath, err, stderr.String()))
	}
	return ParseWgrib2(&stdout, id)
}
