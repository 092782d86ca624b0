package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yildizm/CrowdGuard/internal/state"
)

func TestResolveVideo(t *testing.T) {
	dir := t.TempDir()
	clip := filepath.Join(dir, "gate1.MP4")
	notes := filepath.Join(dir, "notes.txt")
	os.WriteFile(clip, []byte("not really a video"), 0o644)
	os.WriteFile(notes, []byte("x"), 0o644)

	tests := []struct {
		name        string
		path        string
		wantErr     bool
		wantWarning bool
	}{
		{"video", clip, false, false},
		{"other file", notes, false, true},
		{"missing", filepath.Join(dir, "missing.mp4"), true, false},
		{"directory", dir, true, false},
		{"empty", "  ", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video, warning, err := ResolveVideo(tt.path)
			if tt.wantErr {
				if !state.IsValidationError(err, "file") {
					t.Errorf("err = %v, want file validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveVideo: %v", err)
			}
			if (warning != "") != tt.wantWarning {
				t.Errorf("warning = %q", warning)
			}
			if video.Size == 0 || !filepath.IsAbs(video.Path) {
				t.Errorf("video = %+v", video)
			}
		})
	}
}

func TestDropFolderReportsNewFiles(t *testing.T) {
	dir := t.TempDir()
	drop, err := NewDropFolder(dir, 0, nil)
	if err != nil {
		t.Fatalf("NewDropFolder: %v", err)
	}
	defer drop.Close()

	if err := os.WriteFile(filepath.Join(dir, "north.mp4"), []byte("frames"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	video, err := drop.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if video.Name != "north.mp4" {
		t.Errorf("video = %+v", video)
	}
}

func TestDropFolderRateLimit(t *testing.T) {
	dir := t.TempDir()
	drop, err := NewDropFolder(dir, time.Hour, nil)
	if err != nil {
		t.Fatalf("NewDropFolder: %v", err)
	}
	defer drop.Close()

	for _, name := range []string{"a.mp4", "b.mp4", "c.mp4"} {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := drop.Next(ctx); err != nil {
		t.Fatalf("first Next: %v", err)
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel2()
	if v, err := drop.Next(ctx2); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("burst not limited: video=%+v err=%v", v, err)
	}
}

func TestDropFolderDeliversLastFileOfBurst(t *testing.T) {
	dir := t.TempDir()
	drop, err := NewDropFolder(dir, 300*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewDropFolder: %v", err)
	}
	defer drop.Close()

	for _, name := range []string{"a.mp4", "b.mp4", "c.mp4"} {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	first, err := drop.Next(ctx)
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if first.Name != "a.mp4" {
		t.Errorf("first = %s, want a.mp4", first.Name)
	}

	start := time.Now()
	last, err := drop.Next(ctx)
	if err != nil {
		t.Fatalf("held file never delivered: %v", err)
	}
	if last.Name != "c.mp4" {
		t.Errorf("held = %s, want c.mp4", last.Name)
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("held file delivered after %v", time.Since(start))
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel2()
	if v, err := drop.Next(ctx2); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("replaced file delivered: video=%+v err=%v", v, err)
	}
}

func TestNewDropFolderRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	os.WriteFile(file, nil, 0o644)
	if _, err := NewDropFolder(file, time.Second, nil); err == nil {
		t.Error("file accepted as drop folder")
	}
}
