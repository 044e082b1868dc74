package store

// go test -v github.com/skypies/flightregions/store

import(
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

var ctx = context.Background()

func TestParseGCSPath(t *testing.T) {
	tests := []struct{
		Path            string
		Bucket, Object  string
		OK              bool
	}{
		{"gs://my-bucket/flights/newData.json", "my-bucket", "flights/newData.json", true},
		{"gs://b/o", "b", "o", true},
		{"gs://bucket-only", "", "", false},
		{"gs://bucket/", "", "", false},
		{"gs:///obj", "", "", false},
		{"/tmp/newData.json", "", "", false},
	}
	for _,test := range tests {
		b,o,ok := ParseGCSPath(test.Path)
		if ok != test.OK || b != test.Bucket || o != test.Object {
			t.Errorf("%s: expected (%q,%q,%v), got (%q,%q,%v)", test.Path, test.Bucket, test.Object,
				test.OK, b, o, ok)
		}
	}
}

func TestLocalRoundTrip(t *testing.T) {
	s := New()
	defer s.Close()
	dir := t.TempDir()
	payload := `[{"AirportFrom":"JFK","AirportTo":"LAX"}]`

	for _,name := range []string{"out.json", "out.json.gz", "out.ndjson.zst"} {
		p := filepath.Join(dir, name)

		w,err := s.Create(ctx, p, "application/json")
		if err != nil { t.Fatalf("%s: create: %v", name, err) }
		if _,err := io.WriteString(w, payload); err != nil { t.Fatalf("%s: write: %v", name, err) }

		if _,err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s: visible before commit", name)
		}
		if err := w.Commit(); err != nil { t.Fatalf("%s: commit: %v", name, err) }
		w.Abort() // no-op after commit

		rc,err := s.Open(ctx, p)
		if err != nil { t.Fatalf("%s: open: %v", name, err) }
		b,err := io.ReadAll(rc)
		rc.Close()
		if err != nil { t.Fatalf("%s: read: %v", name, err) }
		if string(b) != payload { t.Errorf("%s: expected %s, got %s", name, payload, string(b)) }
	}

	raw,_ := os.ReadFile(filepath.Join(dir, "out.json.gz"))
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b { t.Errorf("out.json.gz is not gzip") }
}

func TestLocalAbortLeavesNothing(t *testing.T) {
	s := New()
	dir := t.TempDir()
	p := filepath.Join(dir, "newData.json")

	w,err := s.Create(ctx, p, "")
	if err != nil { t.Fatal(err) }
	io.WriteString(w, "[partial")
	w.Abort()

	if _,err := w.Write([]byte("x")); err == nil { t.Errorf("write after abort should fail") }
	if err := w.Commit(); err == nil { t.Errorf("commit after abort should fail") }

	entries,err := os.ReadDir(dir)
	if err != nil { t.Fatal(err) }
	if len(entries) != 0 {
		names := []string{}
		for _,e := range entries { names = append(names, e.Name()) }
		t.Errorf("expected an empty dir, found %v", names)
	}
}

func TestLocalAbortKeepsPreviousOutput(t *testing.T) {
	s := New()
	p := filepath.Join(t.TempDir(), "newData.json")
	if err := os.WriteFile(p, []byte("old"), 0644); err != nil { t.Fatal(err) }

	w,err := s.Create(ctx, p, "")
	if err != nil { t.Fatal(err) }
	io.WriteString(w, "new")
	w.Abort()

	if b,_ := os.ReadFile(p); string(b) != "old" { t.Errorf("previous output clobbered: %q", b) }
}

func TestCreateInMissingDir(t *testing.T) {
	s := New()
	p := filepath.Join(t.TempDir(), "no", "such", "dir", "out.json")
	if _,err := s.Create(ctx, p, ""); err == nil { t.Errorf("expected an error") }
}

func TestOpenMissing(t *testing.T) {
	s := New()
	if _,err := s.Open(ctx, filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Errorf("expected an error")
	}
	if _,err := s.Open(ctx, "gs://bucket-only"); err == nil {
		t.Errorf("expected an error for a bad GCS path")
	}
}

func TestOpenCorruptGzip(t *testing.T) {
	s := New()
	p := filepath.Join(t.TempDir(), "bad.json.gz")
	os.WriteFile(p, []byte("definitely not gzip"), 0644)
	if _,err := s.Open(ctx, p); err == nil { t.Errorf("expected an error") }
}
