// Package system probes the host: available encoders, CPU and memory.
package system

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Аппаратные энкодеры в порядке приоритета, libx264 как запасной вариант.
var h264Encoders = []string{"h264_videotoolbox", "h264_nvenc"}

// GetBestH264Encoder returns the preferred H.264 encoder known to the local
// ffmpeg build.
func GetBestH264Encoder(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264"
	}
	return pickEncoder(string(out))
}

func pickEncoder(listing string) string {
	for _, name := range h264Encoders {
		if strings.Contains(listing, name) {
			return name
		}
	}
	return "libx264"
}

// DefaultQuality is the quality value used when none is configured: a
// bitrate factor for VideoToolbox, CQ for NVENC, CRF for x264.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75
	case "h264_nvenc":
		return 28
	default:
		return 23
	}
}

// Workers returns how many frames may be processed concurrently: one per
// logical CPU, bounded so that in-flight frames of frameBytes each take at
// most a quarter of the available memory.
func Workers(frameBytes int) int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}
	if frameBytes <= 0 {
		return n
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return n
	}
	if limit := int(vm.Available / 4 / uint64(frameBytes)); limit < n {
		n = max(limit, 1)
	}
	return n
}

// LogResources logs the CPU and memory the process can use.
func LogResources(ctx context.Context, log *slog.Logger) {
	attrs := []slog.Attr{slog.Int("goroutines", runtime.NumGoroutine())}
	if n, err := cpu.Counts(true); err == nil {
		attrs = append(attrs, slog.Int("cpus", n))
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		attrs = append(attrs,
			slog.Uint64("mem_total_mb", vm.Total>>20),
			slog.Uint64("mem_available_mb", vm.Available>>20),
		)
	}
	log.LogAttrs(ctx, slog.LevelDebug, "resources", attrs...)
}
