package video

import (
	"encoding/binary"
	"fmt"
	"image"
	"log/slog"
	"net/url"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/motionclip/internal/config"
	"github.com/ivlev/motionclip/internal/errdefs"
)

// MQTTExporter publishes every frame as one binary message: width and
// height as little endian uint16, then packed RGB8 pixels.
type MQTTExporter struct {
	client mqtt.Client
	topic  string
	qos    byte
	size   image.Point
	log    *slog.Logger

	settings config.Settings
	scaled   *image.RGBA
	frames   uint64
}

// NewMQTTExporter publishes through client. A non-zero size downsamples the
// frames before publishing.
func NewMQTTExporter(client mqtt.Client, topic string, size image.Point, log *slog.Logger) *MQTTExporter {
	if log == nil {
		log = slog.Default()
	}
	return &MQTTExporter{
		client: client,
		topic:  topic,
		qos:    1,
		size:   size,
		log:    log.With(slog.String("component", "mqtt")),
	}
}

// DialMQTT parses mqtt://[user:pass@]host:port/topic into client options
// and a topic.
func DialMQTT(target string) (mqtt.Client, string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, "", err
	}
	topic := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || topic == "" {
		return nil, "", fmt.Errorf("mqtt target %q needs a host and a topic", target)
	}
	options := mqtt.NewClientOptions().
		AddBroker("tcp://" + u.Host).
		SetClientID("motionclip").
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	if u.User != nil {
		options.SetUsername(u.User.Username())
		if pw, ok := u.User.Password(); ok {
			options.SetPassword(pw)
		}
	}
	return mqtt.NewClient(options), topic, nil
}

func (e *MQTTExporter) Begin(s config.Settings) error {
	e.settings = s
	if e.size.X > 0 && e.size.Y > 0 {
		e.scaled = image.NewRGBA(image.Rectangle{Max: e.size})
	}
	if token := e.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("%w: mqtt connect: %v", errdefs.ErrResource, token.Error())
	}
	e.log.Info("streaming", slog.String("topic", e.topic))
	return nil
}

func (e *MQTTExporter) PushFrame(_ bool, rgba []byte) error {
	if err := checkFrame(e.settings, rgba); err != nil {
		return err
	}
	img := wrap(e.settings, rgba)
	if e.scaled != nil {
		xdraw.ApproxBiLinear.Scale(e.scaled, e.scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = e.scaled
	}
	token := e.client.Publish(e.topic, e.qos, false, marshalRGB(img))
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("%w: mqtt publish frame %d: %v", errdefs.ErrResource, e.frames, token.Error())
	}
	e.frames++
	return nil
}

func (e *MQTTExporter) End() error {
	e.client.Disconnect(250)
	e.log.Info("stream closed", slog.Uint64("frames", e.frames))
	return nil
}

func marshalRGB(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	data := make([]byte, 4, 4+w*h*3)
	binary.LittleEndian.PutUint16(data[0:], uint16(w))
	binary.LittleEndian.PutUint16(data[2:], uint16(h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			data = append(data, row[x], row[x+1], row[x+2])
		}
	}
	return data
}
