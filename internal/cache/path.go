// Package cache implements the Local Path & Naming component (C7): it
// derives the deterministic on-disk location for a request, and the
// content-addressed subset filename described in §3.4/§4.7.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/nwpfetch/nwpfetch/internal/model"
	"github.com/nwpfetch/nwpfetch/internal/request"
)

// BasePath returns <save_dir>/<model>/<YYYYMMDD>/<local_filename> (§3.4).
// It is a pure function of its inputs, per §8 property 2.
func BasePath(req request.Request, localFilename string) string {
	return filepath.Join(
		ExpandSaveDir(req.SaveDir),
		req.Model,
		req.InitTime.Format("20060102"),
		localFilename,
	)
}

// ExpandSaveDir resolves a leading "~" to the user's home directory, per
// §3.1's "user-home-relative expansions resolved".
func ExpandSaveDir(dir string) string {
	if dir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return dir
	}
	if strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[2:])
		}
	}
	return dir
}

// LocalPath computes the final path for a request, honoring a "local*"
// source override (§4.7): if out declares a source whose name starts
// with "local" and whose URL is a path that exists on disk, that path
// supersedes the default <save_dir> layout entirely.
func LocalPath(req request.Request, out model.Output) string {
	for _, s := range out.Sources {
		if strings.HasPrefix(s.Name, "local") {
			if _, err := os.Stat(s.URL); err == nil {
				return s.URL
			}
		}
	}
	return BasePath(req, out.LocalFilename)
}

// SubsetPath computes the destination for a subset selection: the base
// directory of LocalPath, with the basename replaced by
// "subset_<h1><h2><h3>__<local_filename>" (§3.4, §4.7).
func SubsetPath(req request.Request, out model.Output, messages []int) string {
	dir := filepath.Dir(LocalPath(req, out))
	return filepath.Join(dir, SubsetName(req, out.LocalFilename, messages))
}

// SubsetName renders the content-addressed subset basename. It is a pure
// function of (init_time, lead, sorted set of selected message numbers)
// per §8 property 3: two requests differing only in regex but selecting
// the same messages produce the same name.
func SubsetName(req request.Request, localFilename string, messages []int) string {
	sorted := append([]int(nil), messages...)
	sort.Ints(sorted)

	parts := make([]string, len(sorted))
	for i, m := range sorted {
		parts[i] = strconv.Itoa(m)
	}
	msgList := strings.Join(parts, "-")

	h1 := shortHash(req.InitTime.Format("200601021504"), 1)
	h2 := shortHash(strconv.Itoa(int(req.Lead.Hours())), 1)
	h3 := shortHash(msgList, 2)

	return fmt.Sprintf("subset_%s%s%s__%s", h1, h2, h3, localFilename)
}

// shortHash returns the hex-encoded BLAKE2b digest of ascii computed with
// a digest size of size bytes (§4.7: sizes 1, 1, 2 bytes for the three
// hashes).
func shortHash(ascii string, size int) string {
	h, err := blake2b.New(size, nil)
	if err != nil {
		// size is always 1 or 2, both valid for blake2b; unreachable.
		panic(fmt.Sprintf("cache: invalid blake2b size %d: %v", size, err))
	}
	h.Write([]byte(ascii))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// EnsureDir creates the directory containing path, tolerating concurrent
// creators (§5: "a filesystem mkdir ... must be idempotent against
// concurrent creators").
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && !os.IsExist(err) {
		return err
	}
	return nil
}
