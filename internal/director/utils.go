package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// OutputPath creates a timestamped output filename for scene in dir
func OutputPath(dir, scene, ext string) string {
	name := strings.TrimSuffix(filepath.Base(scene), filepath.Ext(scene))
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, timestamp, ext))
}

// FindLatestScene finds the most recently modified scene file in dir
func FindLatestScene(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read scenes directory: %w", err)
	}

	type scene struct {
		path string
		mod  time.Time
	}
	var scenes []scene
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", err
		}
		scenes = append(scenes, scene{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(scenes) == 0 {
		return "", fmt.Errorf("no scene files found in %s", dir)
	}

	// Сначала самые новые
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].mod.After(scenes[j].mod)
	})

	return scenes[0].path, nil
}
