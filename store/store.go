// Package store opens inputs and creates outputs, either on local disk or in Google Cloud
// Storage (paths like gs://bucket/some/object). A .gz or .zst suffix adds compression.
//
// Outputs are all-or-nothing: a Writer's bytes only become visible at the target path on
// Commit. Abort (or any failure before Commit) leaves nothing behind.
package store

import(
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type Store struct {
	opts    []option.ClientOption

	mu        sync.Mutex
	client   *storage.Client
	owned     bool
}

// New returns a store; the GCS client is only created when a gs:// path is first used.
func New(opts ...option.ClientOption) *Store {
	return &Store{opts:opts}
}

// NewWithClient uses a caller-provided GCS client, which it will not close.
func NewWithClient(client *storage.Client) *Store {
	return &Store{client:client}
}

func (s *Store)gcs(ctx context.Context) (*storage.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		client,err := storage.NewClient(ctx, s.opts...)
		if err != nil { return nil, fmt.Errorf("storage.NewClient: %v", err) }
		s.client = client
		s.owned = true
	}
	return s.client, nil
}

// Close releases the GCS client, if this store made one.
func (s *Store)Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil && s.owned {
		err := s.client.Close()
		s.client, s.owned = nil, false
		return err
	}
	return nil
}

// {{{ ParseGCSPath

// ParseGCSPath splits gs://bucket/path/to/object; ok is false for anything else.
func ParseGCSPath(p string) (bucket, object string, ok bool) {
	if !strings.HasPrefix(p, "gs://") { return "", "", false }
	rest := strings.TrimPrefix(p, "gs://")
	i := strings.Index(rest, "/")
	if i <= 0 || i == len(rest)-1 { return "", "", false }
	return rest[:i], rest[i+1:], true
}

func IsGCSPath(p string) bool { return strings.HasPrefix(p, "gs://") }

// }}}
// {{{ s.Open

// Open returns a reader over the (decompressed) contents of the path.
func (s *Store)Open(ctx context.Context, p string) (io.ReadCloser, error) {
	var raw io.ReadCloser

	if IsGCSPath(p) {
		bucket,object,ok := ParseGCSPath(p)
		if !ok { return nil, fmt.Errorf("bad GCS path '%s'", p) }
		client,err := s.gcs(ctx)
		if err != nil { return nil, err }
		rdr,err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil { return nil, fmt.Errorf("GCS-Open %s|%s: %v", bucket, object, err) }
		raw = rdr
	} else {
		f,err := openLocal(p)
		if err != nil { return nil, err }
		raw = f
	}

	rc,err := decompress(p, raw)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("open %s: %v", p, err)
	}
	return rc, nil
}

// }}}
// {{{ s.Create

// Create starts an output at the path. Nothing exists there until Commit succeeds.
func (s *Store)Create(ctx context.Context, p, contentType string) (*Writer, error) {
	var sink committer

	if IsGCSPath(p) {
		bucket,object,ok := ParseGCSPath(p)
		if !ok { return nil, fmt.Errorf("bad GCS path '%s'", p) }
		client,err := s.gcs(ctx)
		if err != nil { return nil, err }
		sink = newGCSSink(ctx, client, bucket, object, contentType)
	} else {
		ls,err := newLocalSink(p)
		if err != nil { return nil, err }
		sink = ls
	}

	wc,err := compress(p, sink)
	if err != nil {
		sink.Abort()
		return nil, fmt.Errorf("create %s: %v", p, err)
	}

	return &Writer{path:p, sink:sink, w:wc}, nil
}

// }}}

// {{{ Writer

// committer is where the bytes end up; Commit makes them visible, Abort throws them away.
type committer interface {
	io.Writer
	Commit() error
	Abort()
}

type Writer struct {
	path   string
	sink   committer
	w      io.WriteCloser // compression layer, or a no-op closer on top of sink
	done   bool
}

func (w *Writer)Path() string { return w.path }

func (w *Writer)Write(p []byte) (int, error) {
	if w.done { return 0, fmt.Errorf("write %s: already closed", w.path) }
	return w.w.Write(p)
}

// Commit flushes everything and makes the output visible.
func (w *Writer)Commit() error {
	if w.done { return fmt.Errorf("commit %s: already closed", w.path) }
	w.done = true
	if err := w.w.Close(); err != nil {
		w.sink.Abort()
		return err
	}
	return w.sink.Commit()
}

// Abort discards the output. It is safe to call after Commit, when it does nothing, so it
// can be deferred.
func (w *Writer)Abort() {
	if w.done { return }
	w.done = true
	w.w.Close()
	w.sink.Abort()
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
