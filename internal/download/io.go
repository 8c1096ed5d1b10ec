package download

import (
	"bytes"
	"io"
	"os"
)

// fixedBuffer is an in-memory io.Writer used to buffer one group's bytes
// before assembly, so concurrent group fetches never touch the shared
// destination file directly.
type fixedBuffer struct {
	buf bytes.Buffer
}

func (b *fixedBuffer) Write(p []byte) (int, error) { return b.buf.Write(p) }
func (b *fixedBuffer) Bytes() []byte               { return b.buf.Bytes() }

// fetchLocalRange reads bytes [start, end] (inclusive) from a local
// GRIB file; end < 0 reads to EOF (§4.6 step 4).
func fetchLocalRange(path string, start, end int64, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return err
	}
	if end < 0 {
		_, err := io.Copy(w, f)
		return err
	}
	_, err = io.CopyN(w, f, end-start+1)
	return err
}

func copyAll(dst io.Writer, src io.Reader) (int64, error) {
	return io.Copy(dst, src)
}
