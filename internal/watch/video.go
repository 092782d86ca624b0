package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yildizm/CrowdGuard/internal/common"
	"github.com/yildizm/CrowdGuard/internal/state"
)

var videoExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".webm", ".m4v", ".mpg", ".mpeg", ".wmv", ".flv"}

// IsVideoFile reports whether name has a known video extension
func IsVideoFile(name string) bool {
	return slices.Contains(videoExtensions, strings.ToLower(filepath.Ext(name)))
}

// ResolveVideo turns a user supplied path into a handle. The file must exist
// and be a regular file; its content is never read. A non-empty warning is
// returned for files that do not look like videos.
func ResolveVideo(path string) (common.VideoHandle, string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return common.VideoHandle{}, "", state.NewValidationError("file", path, "path is required")
	}
	path = expandHome(path)

	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return common.VideoHandle{}, "", state.NewValidationError("file", path, "file does not exist")
		}
		return common.VideoHandle{}, "", state.NewValidationError("file", path, err.Error())
	}
	if !info.Mode().IsRegular() {
		return common.VideoHandle{}, "", state.NewValidationError("file", path, "not a regular file")
	}

	var warning string
	if !IsVideoFile(info.Name()) {
		warning = fmt.Sprintf("%s does not look like a video file", info.Name())
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return common.VideoHandle{Path: abs, Name: info.Name(), Size: info.Size()}, warning, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
