package timeline

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Time is the timing context of one node during resolution. Video values
// refer to the whole output, Sequence values to the enclosing clip and Clip
// values to the current clip.
type Time struct {
	VideoFrame    uint64
	VideoTime     float64
	VideoProgress float64

	SequenceFrame    uint64
	SequenceTime     float64
	SequenceProgress float64

	ClipFrame    uint64
	ClipTime     float64
	ClipProgress float64
}

// VideoTimeAt is the context of the root clip at frame of a total-frame
// video. All three levels start out equal.
func VideoTimeAt(frame, total uint64, fps float64) Time {
	var progress float64
	if total > 0 {
		progress = float64(frame) / float64(total)
	}
	seconds := float64(frame) / fps
	return Time{
		VideoFrame: frame, VideoTime: seconds, VideoProgress: progress,
		SequenceFrame: frame, SequenceTime: seconds, SequenceProgress: progress,
		ClipFrame: frame, ClipTime: seconds, ClipProgress: progress,
	}
}

// Push descends into a child clip: the current clip values become the
// sequence values and the child's values become the clip values.
func (t Time) Push(frame uint64, seconds, progress float64) Time {
	t.SequenceFrame, t.SequenceTime, t.SequenceProgress = t.ClipFrame, t.ClipTime, t.ClipProgress
	t.ClipFrame, t.ClipTime, t.ClipProgress = frame, seconds, progress
	return t
}

const timeBinarySize = 9 * 8

// MarshalBinary encodes t as nine little endian 64-bit words: frames as
// unsigned integers, times and progresses as IEEE 754.
func (t Time) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, timeBinarySize)
	for _, lvl := range [3]struct {
		frame       uint64
		time, progr float64
	}{
		{t.VideoFrame, t.VideoTime, t.VideoProgress},
		{t.SequenceFrame, t.SequenceTime, t.SequenceProgress},
		{t.ClipFrame, t.ClipTime, t.ClipProgress},
	} {
		b = binary.LittleEndian.AppendUint64(b, lvl.frame)
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(lvl.time))
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(lvl.progr))
	}
	return b, nil
}

func (t *Time) UnmarshalBinary(b []byte) error {
	if len(b) != timeBinarySize {
		return fmt.Errorf("time: expected %d bytes, got %d", timeBinarySize, len(b))
	}
	word := func(i int) uint64 { return binary.LittleEndian.Uint64(b[i*8:]) }
	t.VideoFrame, t.VideoTime, t.VideoProgress = word(0), math.Float64frombits(word(1)), math.Float64frombits(word(2))
	t.SequenceFrame, t.SequenceTime, t.SequenceProgress = word(3), math.Float64frombits(word(4)), math.Float64frombits(word(5))
	t.ClipFrame, t.ClipTime, t.ClipProgress = word(6), math.Float64frombits(word(7)), math.Float64frombits(word(8))
	return nil
}
