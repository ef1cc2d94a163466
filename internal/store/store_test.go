package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCreatesNestedDirs(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	st, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	payload := []byte("fake mp4 bytes")
	n, err := st.Write(ctx, "cs101/20220601_1000_intro-lecture_part-1.mp4", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != int64(len(payload)) {
		t.Errorf("wrote %d bytes, want %d", n, len(payload))
	}

	got, err := os.ReadFile(filepath.Join(root, "cs101", "20220601_1000_intro-lecture_part-1.mp4"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("file content = %q, want %q", got, payload)
	}
}

func TestWriteNoSidecarFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	st, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	if _, err := st.Write(ctx, "_none/rec.mp4", strings.NewReader("data")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "_none"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".attrs") {
			t.Errorf("unexpected metadata sidecar %s", e.Name())
		}
	}
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	st, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	ok, err := st.Exists(ctx, "cs101/missing.mp4")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("expected missing key to not exist")
	}

	if _, err := st.Write(ctx, "cs101/present.mp4", strings.NewReader("data")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	ok, err = st.Exists(ctx, "cs101/present.mp4")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Error("expected written key to exist")
	}
}

func TestOpenCreatesRoot(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "not", "yet", "there")

	st, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	if _, err := st.Write(ctx, "a/b.mp4", strings.NewReader("data")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "a", "b.mp4")); err != nil {
		t.Errorf("expected file under created root: %v", err)
	}
}
