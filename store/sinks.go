package store

import(
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// {{{ local files

func openLocal(p string) (*os.File, error) {
	f,err := os.Open(p)
	if err != nil { return nil, err }
	return f, nil
}

// Writes go to a temp file alongside the target, renamed into place on Commit, so a
// reader never sees a half-written output.
type localSink struct {
	target  string
	tmp    *os.File
}

func newLocalSink(p string) (*localSink, error) {
	dir,base := filepath.Split(p)
	if dir == "" { dir = "." }
	tmp,err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil { return nil, err }
	return &localSink{target:p, tmp:tmp}, nil
}

func (s *localSink)Write(p []byte) (int, error) { return s.tmp.Write(p) }

func (s *localSink)Commit() error {
	if err := s.tmp.Chmod(0644); err != nil {
		s.Abort()
		return err
	}
	if err := s.tmp.Sync(); err != nil {
		s.Abort()
		return err
	}
	if err := s.tmp.Close(); err != nil {
		os.Remove(s.tmp.Name())
		return err
	}
	if err := os.Rename(s.tmp.Name(), s.target); err != nil {
		os.Remove(s.tmp.Name())
		return err
	}
	return nil
}

func (s *localSink)Abort() {
	s.tmp.Close()
	os.Remove(s.tmp.Name())
}

// }}}
// {{{ GCS objects

// A GCS object is only created when the writer is closed; cancelling the writer's context
// first makes the upload fail, leaving no object.
type gcsSink struct {
	bucket, object  string
	w              *storage.Writer
	cancel          context.CancelFunc
}

func newGCSSink(ctx context.Context, client *storage.Client, bucket, object, contentType string) *gcsSink {
	wctx,cancel := context.WithCancel(ctx)
	w := client.Bucket(bucket).Object(object).NewWriter(wctx)
	if contentType != "" { w.ContentType = contentType }
	return &gcsSink{bucket:bucket, object:object, w:w, cancel:cancel}
}

func (s *gcsSink)Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *gcsSink)Commit() error {
	defer s.cancel()
	if err := s.w.Close(); err != nil {
		return fmt.Errorf("GCS-Write %s|%s: %v", s.bucket, s.object, err)
	}
	return nil
}

func (s *gcsSink)Abort() {
	s.cancel()
	s.w.Close() // returns the cancellation error; nothing was written
}

// }}}

// {{{ compression

func compressionOf(p string) string {
	p = strings.ToLower(p)
	switch {
	case strings.HasSuffix(p, ".gz"): return "gzip"
	case strings.HasSuffix(p, ".zst"): return "zstd"
	}
	return ""
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser)Close() error {
	var first error
	for _,c := range rc.closers {
		if err := c(); err != nil && first == nil { first = err }
	}
	return first
}

func decompress(p string, raw io.ReadCloser) (io.ReadCloser, error) {
	switch compressionOf(p) {
	case "gzip":
		gz,err := gzip.NewReader(raw)
		if err != nil { return nil, err }
		return &readCloser{gz, []func() error{gz.Close, raw.Close}}, nil
	case "zstd":
		zd,err := zstd.NewReader(raw)
		if err != nil { return nil, err }
		return &readCloser{zd, []func() error{func() error { zd.Close(); return nil }, raw.Close}}, nil
	}
	return raw, nil
}

type nopWriteCloser struct { io.Writer }

func (nopWriteCloser)Close() error { return nil }

func compress(p string, w io.Writer) (io.WriteCloser, error) {
	switch compressionOf(p) {
	case "gzip":
		return gzip.NewWriter(w), nil
	case "zstd":
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	}
	return nopWriteCloser{w}, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
