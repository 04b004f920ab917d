package engine

import (
	"fmt"
	"os"
	"time"
)

// Stats are the timings of one export.
type Stats struct {
	Frames  uint64
	Resolve time.Duration
	Render  time.Duration
	Encode  time.Duration
	Total   time.Duration
}

// FPS is the effective export rate.
func (s Stats) FPS() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Total.Seconds()
}

func (s Stats) Report(build string) string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Resolve: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		build, s.Frames, s.Total.Seconds(), s.Resolve.Seconds(), s.Render.Seconds(), s.Encode.Seconds(), s.FPS(),
	)
}

// AppendBenchmark appends a one-line summary of the export to path.
func (s Stats) AppendBenchmark(path, build, scene string) error {
	line := fmt.Sprintf("[%s] Build: %s | Scene: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		build, scene, s.Frames, s.Total.Seconds(), s.Render.Seconds(), s.Encode.Seconds(), s.FPS(),
	)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
