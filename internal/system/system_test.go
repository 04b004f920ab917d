package system

import (
	"image"
	"testing"
)

func TestPickEncoder(t *testing.T) {
	tests := []struct {
		listing string
		want    string
	}{
		{" V....D h264_nvenc  NVIDIA NVENC H.264 encoder", "h264_nvenc"},
		{" V....D h264_videotoolbox VideoToolbox\n V....D h264_nvenc", "h264_videotoolbox"},
		{" V....D libx264 libx264 H.264", "libx264"},
		{"", "libx264"},
	}
	for _, tt := range tests {
		if got := pickEncoder(tt.listing); got != tt.want {
			t.Errorf("pickEncoder(%q) = %s, want %s", tt.listing, got, tt.want)
		}
	}
}

func TestDefaultQuality(t *testing.T) {
	for enc, want := range map[string]int{"h264_videotoolbox": 75, "h264_nvenc": 28, "libx264": 23, "": 23} {
		if got := DefaultQuality(enc); got != want {
			t.Errorf("DefaultQuality(%q) = %d, want %d", enc, got, want)
		}
	}
}

func TestWorkers(t *testing.T) {
	if n := Workers(0); n < 1 {
		t.Errorf("expected at least one worker, got %d", n)
	}
	if n := Workers(1 << 62); n != 1 {
		t.Errorf("huge frames must leave one worker, got %d", n)
	}
}

func TestImagePoolCopy(t *testing.T) {
	p := NewImagePool()
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = byte(i)
	}
	dst := p.Copy(src)
	if dst == src || string(dst.Pix) != string(src.Pix) {
		t.Fatal("copy does not match source")
	}
	p.Put(dst)
	p.Put(nil)

	again := p.Get(image.Rect(0, 0, 3, 2))
	if again.Rect != src.Rect {
		t.Errorf("unexpected bounds %v", again.Rect)
	}
}
