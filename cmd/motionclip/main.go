package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ivlev/motionclip/internal/config"
	"github.com/ivlev/motionclip/internal/director"
	"github.com/ivlev/motionclip/internal/engine"
	"github.com/ivlev/motionclip/internal/renderer"
	"github.com/ivlev/motionclip/internal/system"
	"github.com/ivlev/motionclip/internal/video"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Создаем нужные директории, если их нет
	for _, d := range []string{"scenes", "output"} {
		os.MkdirAll(d, 0755)
	}

	scenePtr := flag.String("scene", "", "Путь к YAML-сцене (по умолчанию: самая свежая сцена в scenes/)")
	profilePtr := flag.String("profile", "", "TOML-профиль рендера (разрешение, FPS, кодек, качество)")
	outputPtr := flag.String("output", "", "Куда писать: .mp4/.mov/.mkv, папка для PNG или mqtt://host:port/topic (если пусто, генерируется в output/)")
	previewPtr := flag.Bool("preview", false, "Проиграть сцену без записи кадров")
	loopsPtr := flag.Int("loops", 1, "Сколько раз проиграть сцену в режиме -preview (0 - до Ctrl+C)")
	fpsPtr := flag.Float64("fps", 0, "FPS (0 - из сцены или профиля)")
	widthPtr := flag.Int("width", 0, "Ширина (0 - из сцены или профиля)")
	heightPtr := flag.Int("height", 0, "Высота (0 - из сцены или профиля)")
	durationPtr := flag.Duration("duration", 0, "Длительность видео, например 12s (0 - из сцены или профиля)")
	encoderPtr := flag.String("encoder", "", "Кодек ffmpeg (по умолчанию: лучший доступный H.264)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	workersPtr := flag.Int("workers", 0, "Потоки записи PNG (0 - по числу ядер и свободной памяти)")
	audioPtr := flag.String("audio", "", "Путь к аудиодорожке для видео")
	ledPtr := flag.String("led", "", "Размер LED-матрицы для mqtt://, например 64x32")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности и дописать его в benchmarks.log")
	logPtr := flag.String("log", "info", "Уровень логов: debug, info, warn, error")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logPtr)); err != nil {
		log.Fatalf("[-] Неверный уровень логов %q: %v", *logPtr, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &config.Config{
		ScenePath:    *scenePtr,
		ProfilePath:  *profilePtr,
		Output:       *outputPtr,
		Preview:      *previewPtr,
		PreviewLoops: *loopsPtr,
		Video: config.Settings{
			FPS:      *fpsPtr,
			Width:    *widthPtr,
			Height:   *heightPtr,
			Duration: *durationPtr,
		},
		VideoEncoder: *encoderPtr,
		Quality:      *qualityPtr,
		Workers:      *workersPtr,
		ShowStats:    *statsPtr,
		BuildVersion: version,
	}

	if cfg.ScenePath == "" {
		latest, err := director.FindLatestScene("scenes")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите сцену в scenes/", err)
		}
		cfg.ScenePath = latest
		fmt.Printf("[*] Выбрана сцена: %s\n", cfg.ScenePath)
	}

	if err := run(ctx, cfg, *audioPtr, *ledPtr, logger); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, audio, led string, logger *slog.Logger) error {
	system.LogResources(ctx, logger)

	settings := config.DefaultSettings()
	if cfg.ProfilePath != "" {
		p, err := config.LoadProfile(cfg.ProfilePath)
		if err != nil {
			return err
		}
		settings = settings.Merge(p.Video)
		// Флаги важнее профиля
		if cfg.VideoEncoder == "" {
			cfg.VideoEncoder = p.Encoder
		}
		if cfg.Quality == 0 {
			cfg.Quality = p.Quality
		}
		if cfg.Workers == 0 {
			cfg.Workers = p.Workers
		}
	}

	scene, err := director.ReadScene(cfg.ScenePath)
	if err != nil {
		return err
	}
	settings = scene.Settings(settings).Merge(cfg.Video)
	if err := settings.Validate(); err != nil {
		return err
	}
	cfg.Video = settings

	project := engine.NewProject(settings, logger)
	if err := director.Build(scene, project); err != nil {
		return err
	}
	fmt.Printf("[*] Сцена: %s, %dx%d, %.0f FPS, %d кадров\n",
		filepath.Base(cfg.ScenePath), settings.Width, settings.Height, settings.FPS, project.Frames())

	if cfg.Preview {
		r, err := renderer.NewRaster(settings, renderer.Present, logger)
		if err != nil {
			return err
		}
		fmt.Println("[*] Предпросмотр... (Ctrl+C для выхода)")
		return project.Preview(ctx, r, cfg.PreviewLoops)
	}

	if cfg.Output == "" {
		cfg.Output = director.OutputPath("output", cfg.ScenePath, ".mp4")
	}
	opts := video.Options{
		Quality: cfg.Quality,
		Audio:   audio,
		Workers: cfg.Workers,
		Log:     logger,
	}
	if led != "" {
		if _, err := fmt.Sscanf(led, "%dx%d", &opts.LEDSize.X, &opts.LEDSize.Y); err != nil {
			return fmt.Errorf("led size %q: %w", led, err)
		}
	}
	if isVideoFile(cfg.Output) {
		if cfg.VideoEncoder == "" {
			cfg.VideoEncoder = system.GetBestH264Encoder(ctx)
			if cfg.VideoEncoder != "libx264" {
				fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
			}
		}
		if cfg.Quality == 0 {
			cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
		}
		opts.Encoder, opts.Quality = cfg.VideoEncoder, cfg.Quality
	}
	if opts.Workers == 0 {
		opts.Workers = system.Workers(settings.Width * settings.Height * 4)
	}

	exp, err := video.To(ctx, cfg.Output, opts)
	if err != nil {
		return err
	}
	r, err := renderer.NewRaster(settings, renderer.Export, logger)
	if err != nil {
		return err
	}

	fmt.Printf("[*] Рендер в %s...\n", cfg.Output)
	stats, err := project.Export(r, exp)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("[!] Прервано пользователем")
		}
		return err
	}

	if cfg.ShowStats {
		fmt.Print(stats.Report(cfg.BuildVersion))
		if err := stats.AppendBenchmark("benchmarks.log", cfg.BuildVersion, filepath.Base(cfg.ScenePath)); err != nil {
			logger.Warn("benchmark log not written", slog.Any("error", err))
		}
	}

	fmt.Printf("[+++] Успех! Результат: %s (%d кадров за %s)\n",
		cfg.Output, stats.Frames, stats.Total.Round(time.Millisecond))
	return nil
}

func isVideoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mov", ".mkv":
		return !strings.HasPrefix(path, "mqtt://")
	}
	return false
}
