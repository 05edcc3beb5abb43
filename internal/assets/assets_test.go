package assets

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeBundle(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating bundle: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating entry: %v", err)
		}
		w.Write([]byte(content))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing bundle: %v", err)
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in   string
		want Source
	}{
		{"model.obj", Source{Path: "model.obj"}},
		{"dir/scene.zip", Source{Path: "dir/scene.zip", Entry: "result.obj"}},
		{"scene.ZIP", Source{Path: "scene.ZIP", Entry: "result.obj"}},
		{"scene.zip:parts/wheel.obj", Source{Path: "scene.zip", Entry: "parts/wheel.obj"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseSource(tt.in, "result.obj"); got != tt.want {
				t.Errorf("ParseSource(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSource_String(t *testing.T) {
	if got := (Source{Path: "a.zip", Entry: "b.obj"}).String(); got != "a.zip:b.obj" {
		t.Errorf("got %q", got)
	}
	if got := (Source{Path: "a.obj"}).String(); got != "a.obj" {
		t.Errorf("got %q", got)
	}
}

func TestManager_LoadFileAndCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.obj")
	if err := os.WriteFile(path, []byte("g cube\n"), 0644); err != nil {
		t.Fatalf("writing obj: %v", err)
	}

	m := NewManager()
	defer m.Close()

	for i := 0; i < 2; i++ {
		data, err := m.Load(Source{Path: path})
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(data) != "g cube\n" {
			t.Errorf("data = %q", data)
		}
	}
	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses; want 1, 1", hits, misses)
	}

	// After invalidation the file is read again.
	if err := os.WriteFile(path, []byte("g changed\n"), 0644); err != nil {
		t.Fatalf("rewriting obj: %v", err)
	}
	m.Invalidate(path)
	data, err := m.Load(Source{Path: path})
	if err != nil || string(data) != "g changed\n" {
		t.Errorf("after Invalidate: %q, %v", data, err)
	}
}

func TestManager_LoadBundle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.zip")
	writeBundle(t, path, map[string]string{
		"result.obj":      "g main\n",
		"parts/wheel.obj": "g wheel\n",
	})

	m := NewManager()
	defer m.Close()

	tests := []struct {
		src  Source
		want string
	}{
		{Source{Path: path, Entry: "result.obj"}, "g main\n"},
		{Source{Path: path, Entry: "parts/wheel.obj"}, "g wheel\n"},
		{Source{Path: path}, "g main\n"},
	}
	for _, tt := range tests {
		data, err := m.Load(tt.src)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", tt.src, err)
		}
		if string(data) != tt.want {
			t.Errorf("Load(%s) = %q, want %q", tt.src, data, tt.want)
		}
	}

	if _, err := m.Load(Source{Path: path, Entry: "missing.obj"}); err == nil {
		t.Error("expected error for missing entry")
	}
}

func TestManager_LoadBundleWithoutDefaultEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "car.zip")
	writeBundle(t, path, map[string]string{
		"body.obj":  "g body\n",
		"notes.txt": "hello",
	})

	m := NewManager()
	defer m.Close()

	data, err := m.Load(ParseSource(path, "result.obj"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "g body\n" {
		t.Errorf("Load = %q, want body.obj contents", data)
	}
}

func TestManager_LoadMissingFile(t *testing.T) {
	m := NewManager()
	defer m.Close()

	if _, err := m.Load(Source{Path: filepath.Join(t.TempDir(), "nope.obj")}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	for _, key := range []string{
		"a.zip:x.obj",
		"a.zip:y.obj",
		"a.zip.bak",
		"/d/a.obj",
		"/d/a.obj.bak",
		"/d/a.objx",
	} {
		c.Set(key, []byte(key))
	}

	c.DeleteSource("a.zip")
	c.DeleteSource("/d/a.obj")

	for key, want := range map[string]bool{
		"a.zip:x.obj":  false,
		"a.zip:y.obj":  false,
		"a.zip.bak":    true,
		"/d/a.obj":     false,
		"/d/a.obj.bak": true,
		"/d/a.objx":    true,
	} {
		if _, ok := c.Get(key); ok != want {
			t.Errorf("after DeleteSource, %s present = %v, want %v", key, ok, want)
		}
	}

	hits, misses := c.Stats()
	if hits != 3 || misses != 3 {
		t.Errorf("stats = %d/%d, want 3/3", hits, misses)
	}

	c.Clear()
	hits, misses = c.Stats()
	if hits != 0 || misses != 0 {
		t.Errorf("stats after Clear = %d/%d", hits, misses)
	}
}

func TestManager_LoadDuringInvalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.zip")
	writeBundle(t, path, map[string]string{
		"result.obj": "g main\n",
	})

	m := NewManager()
	defer m.Close()

	const loaders = 8
	const rounds = 200
	errs := make(chan error, loaders*rounds)
	var wg sync.WaitGroup
	for i := 0; i < loaders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				if _, err := m.Load(Source{Path: path, Entry: "result.obj"}); err != nil {
					errs <- err
				}
			}
		}()
	}
	stop := make(chan struct{})
	invalidated := make(chan struct{})
	go func() {
		defer close(invalidated)
		for {
			select {
			case <-stop:
				return
			default:
				m.Invalidate(path)
			}
		}
	}()

	wg.Wait()
	close(stop)
	<-invalidated
	close(errs)
	for err := range errs {
		t.Errorf("Load raced with Invalidate: %v", err)
	}
}
