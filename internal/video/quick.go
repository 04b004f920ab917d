package video

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// To picks an exporter for target: "mqtt://host:port/topic" streams over
// MQTT, a .mp4/.mov/.mkv path is encoded with ffmpeg, and a .png
// path or a path without extension is a PNG sequence directory.
func To(ctx context.Context, target string, opts Options) (Exporter, error) {
	if strings.HasPrefix(target, "mqtt://") {
		client, topic, err := DialMQTT(target)
		if err != nil {
			return nil, err
		}
		return NewMQTTExporter(client, topic, opts.LEDSize, opts.Log), nil
	}

	switch ext := strings.ToLower(filepath.Ext(target)); ext {
	case ".mp4", ".mov", ".mkv":
		return NewFFmpegExporter(ctx, target, opts), nil
	case ".png":
		return NewPNGExporter(strings.TrimSuffix(target, filepath.Ext(target)), opts), nil
	case "":
		return NewPNGExporter(target, opts), nil
	default:
		return nil, fmt.Errorf("no exporter for %q", ext)
	}
}
