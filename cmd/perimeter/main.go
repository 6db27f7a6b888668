package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/perimeter/audio"
	"github.com/lixenwraith/perimeter/config"
	"github.com/lixenwraith/perimeter/console"
	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/network"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/render"
	"github.com/lixenwraith/perimeter/service"
	"github.com/lixenwraith/perimeter/skin"
	"github.com/lixenwraith/perimeter/store"
	"github.com/lixenwraith/perimeter/system"
)

var (
	configFlag  = flag.String("config", "", "Path to YAML config file")
	debugFlag   = flag.Bool("debug", false, "Write debug logs to logs/perimeter.log")
	dbFlag      = flag.String("db", "", "SQLite database path, overrides config")
	observeFlag = flag.String("observe", "", "Observer listen address, e.g. 127.0.0.1:8787")
	langFlag    = flag.String("lang", "", "Console language: en, cs")
	muteFlag    = flag.Bool("mute", false, "Start with sound muted")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the simulation crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logger, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dbFlag != "" {
		cfg.Store.Path = *dbFlag
	}
	if *observeFlag != "" {
		cfg.Observer.Addr = *observeFlag
	}
	if *langFlag != "" {
		cfg.Console.Lang = *langFlag
	}

	lang, err := console.ParseLang(cfg.Console.Lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid language: %v\n", err)
		os.Exit(1)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persisted user scalars override config defaults
	opts := cfg.EngineOptions()
	var st *store.Store
	if cfg.Store.Path != "" {
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			logger.Warn("store unavailable, continuing without persistence", "path", cfg.Store.Path, "err", err)
			st = nil
		} else {
			defer st.Close()
			if persisted := restore(runCtx, st, &opts, logger); persisted != "" && *langFlag == "" {
				lang = persisted
			}
		}
	}

	// Initialize terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashReset(screen.Fini)
	defer screen.Fini()
	screen.HideCursor()

	cols, rows := screen.Size()
	opts.Width, opts.Height = render.ViewportPx(cols, rows)

	// Create world on a pausable clock
	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	res := engine.NewResource(logger)
	world := engine.NewWorld(engine.NewSimulationContext(opts, clock.Now()), res, clock)

	clog := console.NewLog(parameter.ConsoleCapacity, lang)
	if cfg.Console.JournalDir != "" {
		journal := console.NewJournal(cfg.Console.JournalDir, "console")
		clog.SetSink(journal)
		defer journal.Close()
	}

	// Create and add systems to the world
	seed := uint64(time.Now().UnixNano())
	world.AddSystem(system.NewIntentSystem(world, rand.New(rand.NewPCG(seed, 1))))
	world.AddSystem(system.NewMotionSystem(world))
	world.AddSystem(system.NewTerminalSystem(world))
	world.AddSystem(system.NewAgentSystem(world))
	world.AddSystem(system.NewParticleSystem(world, rand.New(rand.NewPCG(seed, 2))))
	world.AddSystem(system.NewTransformSystem(world))
	world.AddSystem(system.NewConsoleSystem(world, clog))
	world.AddSystem(system.NewAudioSystem(world))
	hardware := system.NewHardwareSystem(world, rand.New(rand.NewPCG(seed, 3)))

	if st != nil {
		persistence := system.NewPersistenceSystem(world, st)
		world.AddSystem(persistence)
		persistence.Start(runCtx)
		defer persistence.Close()
	}

	// Services
	observerCfg := network.DebugConfig(cfg.Observer.Addr)
	observerCfg.PushInterval = cfg.PushInterval()
	skinCfg := &skin.Config{
		Endpoint:          cfg.Skin.Endpoint,
		RequestsPerMinute: cfg.Skin.RequestsPerMinute,
		Burst:             cfg.Skin.Burst,
		Timeout:           cfg.SkinTimeout(),
	}

	observer := network.NewServer(world, res.Status, logger.WithPrefix("network"))
	audioSvc := audio.NewService(nil)
	skinSvc := skin.NewService(nil, world, res.Status, logger.WithPrefix("skin"))

	hub := service.NewHub(logger.WithPrefix("service"))
	for _, s := range []service.Service{observer, audioSvc, skinSvc} {
		if err := hub.Register(s); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register service: %v\n", err)
			return
		}
	}
	if err := hub.InitAll(map[string][]any{
		observer.Name(): {observerCfg},
		audioSvc.Name(): {audio.ServiceOptions{Muted: *muteFlag, Enabled: cfg.Audio.Enabled}},
		skinSvc.Name():  {skinCfg},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize services: %v\n", err)
		return
	}
	hub.Contribute(func(resource any) {
		if a, ok := resource.(*engine.AudioResource); ok {
			res.Audio = a
		}
	})
	if err := hub.StartAll(); err != nil {
		logger.Error("service start failed", "err", err)
		return
	}
	defer hub.StopAll()

	// Render orchestrator
	orchestrator := render.NewDefaultOrchestrator(screen)
	orchestrator.Resize(cols, rows)
	draw := func() {
		w, h := screen.Size()
		orchestrator.RenderFrame(render.NewRenderContext(world, clog, clock.IsPaused(), w, h))
	}

	// Frame loop and periodic jobs
	frameReady := make(chan struct{}, 1)
	driver := engine.NewFrameDriver(world)
	scheduler := engine.NewClockScheduler(world, clock, driver, parameter.FrameUpdateInterval)
	scheduler.OnFrame(func() {
		select {
		case frameReady <- struct{}{}:
		default:
			// Render still pending, skip signal
		}
	})
	scheduler.Every("hardware", parameter.HardwareInterval, hardware.Run)
	if observer.IsRunning() {
		scheduler.Every("snapshot", observerCfg.PushInterval, observer.Publish)
		logger.Info("observer listening", "addr", observer.Addr())
	}

	clog.Add(clock.Now(), core.LevelInfo, console.KeyWelcome)
	scheduler.Start()
	defer scheduler.Stop()

	input := newInputHandler(world, clock, clog, skinSvc)

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	// The scheduler skips frames while paused; this ticker keeps the overlay drawn
	pausedTicker := time.NewTicker(parameter.PausedPollInterval)
	defer pausedTicker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !input.HandleKey(ev) {
					return
				}
				if clock.IsPaused() {
					draw()
				}

			case *tcell.EventResize:
				w, h := ev.Size()
				orchestrator.Resize(w, h)
				screen.Sync()
				wpx, hpx := render.ViewportPx(w, h)
				world.PushEvent(event.EventViewportResize, &event.ViewportPayload{Width: wpx, Height: hpx})
			}

		case <-frameReady:
			draw()

		case <-pausedTicker.C:
			if clock.IsPaused() {
				draw()
			}
		}
	}
}

// restore loads persisted user scalars into opts and returns the persisted language, empty if none
func restore(ctx context.Context, st *store.Store, opts *engine.Options, logger *log.Logger) console.Lang {
	var lang console.Lang
	if a, ok, err := st.LoadAnchor(ctx); err != nil {
		logger.Warn("anchor restore failed", "err", err)
	} else if ok {
		opts.Anchor = &engine.Anchor{X: a.X, Y: a.Y}
	}

	if records, err := st.LoadHubs(ctx); err != nil {
		logger.Warn("hub restore failed", "err", err)
	} else {
		for _, r := range records {
			opts.Hubs = append(opts.Hubs, engine.Hub{
				ID:           r.ID,
				Kind:         r.Kind,
				LoopDistance: r.LoopDistance,
				Waiting:      r.Waiting,
			})
		}
	}

	if c, ok, err := st.LoadLivery(ctx); err != nil {
		logger.Warn("livery restore failed", "err", err)
	} else if ok {
		opts.Livery = c
	}

	if code, ok, err := st.LoadLanguage(ctx); err != nil {
		logger.Warn("language restore failed", "err", err)
	} else if ok {
		if l, err := console.ParseLang(code); err == nil {
			lang = l
		}
	}
	return lang
}
