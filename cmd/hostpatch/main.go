package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/hostpatch/audio"
	"github.com/lixenwraith/hostpatch/config"
	"github.com/lixenwraith/hostpatch/core"
	"github.com/lixenwraith/hostpatch/host"
	"github.com/lixenwraith/hostpatch/patch"
	"github.com/lixenwraith/hostpatch/registry"
	"github.com/lixenwraith/hostpatch/resolve"
	"github.com/lixenwraith/hostpatch/service"
	"github.com/lixenwraith/hostpatch/status"
	"github.com/lixenwraith/hostpatch/view"
)

var (
	configFlag  = flag.String("config", "", "TOML config file")
	rolesFlag   = flag.String("roles", "", "TOML binding table merged over the config's [roles]")
	buildFlag   = flag.String("build", "", "host build: named, obfuscated")
	patchesFlag = flag.String("patches", "", "comma-separated patch modules (default: all)")
	rdFlag      = flag.Int("rd", 0, "render distance in chunks")
	audioFlag   = flag.Bool("audio", false, "start with the cave drone unmuted")
	debugFlag   = flag.Bool("debug", false, "write logs to logs/hostpatch.log")
	dumpFlag    = flag.Bool("dump-config", false, "print the effective config and exit")
	listFlag    = flag.Bool("list", false, "list patch modules and services and exit")
)

const (
	torchLight   = 14
	nightSkip    = 6000
	torchOffsetX = 2
)

func main() {
	flag.Parse()

	if *listFlag {
		fmt.Println("patches: ", strings.Join(registry.PatchNames(), ", "))
		fmt.Println("services:", strings.Join(registry.ServiceNames(), ", "))
		return
	}

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg := loadConfig()
	if *dumpFlag {
		data, err := cfg.Encode()
		if err != nil {
			fmt.Fprintf(os.Stderr, "encode config: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// Restore the terminal before any crash output
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mHOSTPATCH CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	core.SetCrashHandler(func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mHOSTPATCH CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	})

	reg := status.Default()
	app, err := newApp(cfg, reg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer app.hub.StopAll()

	hud := view.NewDefault(screen)
	message := reg.Labels.Get("ui.message")
	app.loop.OnFrame(func() {
		snap := view.Capture(app.client, app.suite, reg, app.loop.Partial())
		snap.Paused = app.loop.Clock().IsPaused()
		if app.engine != nil {
			snap.Audio = true
			snap.Muted = app.engine.IsMuted()
			snap.Gain = app.engine.Gain()
		}
		if m := message.Load(); m != "" {
			snap.Messages = []string{m}
		}
		hud.Render(snap)
	})

	if err := app.hub.StartAll(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start services: %v\n", err)
		os.Exit(1)
	}

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	for ev := range events {
		switch ev := ev.(type) {
		case *tcell.EventResize:
			hud.Resize()
		case *tcell.EventKey:
			if !app.handleKey(ev, message) {
				return
			}
		}
	}
}

// loadConfig merges defaults, the config file, the binding table and flags.
// Bad files fall back to defaults with a warning
func loadConfig() config.Config {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
			core.Logger().Warn("config rejected, using defaults", "path", *configFlag, "error", err)
		} else {
			cfg = loaded
		}
	}

	if *rolesFlag != "" {
		table, err := resolve.LoadTable(*rolesFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "roles: %v (ignored)\n", err)
			core.Logger().Warn("binding table rejected", "path", *rolesFlag, "error", err)
		} else {
			if cfg.Roles == nil {
				cfg.Roles = make(resolve.Table, len(table))
			}
			for name, spec := range table {
				cfg.Roles[name] = spec
			}
		}
	}

	if *buildFlag != "" {
		cfg.Build = *buildFlag
	}
	if *patchesFlag != "" {
		cfg.Patches = strings.Split(*patchesFlag, ",")
	}
	if *rdFlag > 0 {
		cfg.RenderDistance = *rdFlag
	}
	if *audioFlag {
		cfg.Audio.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "flags: %v (using defaults)\n", err)
		core.Logger().Warn("flag overrides rejected, using defaults", "error", err)
		return config.Default()
	}
	return cfg
}

// app holds the wired services and the resources they contribute
type app struct {
	hub    *service.Hub
	suite  *patch.Suite
	client *host.Client
	server *host.Server
	loop   *host.Loop
	engine *audio.Engine
}

// newApp instantiates every registered service, initializes them in
// dependency order and collects their resources
func newApp(cfg config.Config, reg *status.Registry) (*app, error) {
	a := &app{hub: service.NewHub()}
	for _, name := range registry.ServiceNames() {
		factory, _ := registry.GetService(name)
		svc, ok := factory().(service.Service)
		if !ok {
			return nil, fmt.Errorf("service %q: factory returned %T", name, factory())
		}
		if err := a.hub.Register(svc); err != nil {
			return nil, err
		}
	}

	hostSvc := service.MustGet[*hostService](a.hub, "host")
	if err := a.hub.InitAll(cfg, reg, cfg.AudioConfig(), audio.LevelFunc(hostSvc.Ambience)); err != nil {
		return nil, err
	}

	a.hub.Contribute(func(r any) {
		switch v := r.(type) {
		case *patch.Suite:
			a.suite = v
		case *host.Client:
			a.client = v
		case *host.Server:
			a.server = v
		case *host.Loop:
			a.loop = v
		case *audio.Engine:
			a.engine = v
		}
	})
	if a.suite == nil || a.loop == nil {
		return nil, fmt.Errorf("host service contributed no loop")
	}
	return a, nil
}

// handleKey applies one key press. Client state is changed through Post so
// it happens on the step goroutine. Returns false to quit
func (a *app) handleKey(ev *tcell.EventKey, message *status.Label) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.client.Post(func(c *host.Client) {
			p := c.Player()
			c.SetPlayer(host.BlockPos{X: p.X, Y: p.Y + 1, Z: p.Z})
		})
		return true
	case tcell.KeyDown:
		a.client.Post(func(c *host.Client) {
			p := c.Player()
			c.SetPlayer(host.BlockPos{X: p.X, Y: p.Y - 1, Z: p.Z})
		})
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 't':
		a.client.Post(func(c *host.Client) {
			pos := torchPos(c)
			if a.server.Place(pos, torchLight) {
				message.Store("torch placed at " + pos.String())
			}
		})
	case 'b':
		a.client.Post(func(c *host.Client) {
			pos := torchPos(c)
			if a.server.Break(pos) {
				message.Store("torch broken at " + pos.String())
			}
		})
	case 'n':
		a.client.Post(func(c *host.Client) {
			if w := c.World(); w != nil {
				c.SetTime(w.Time() + nightSkip)
			}
		})
		message.Store("time skipped")
	case 'p':
		clock := a.loop.Clock()
		if clock.IsPaused() {
			clock.Resume()
			message.Store("resumed")
		} else {
			clock.Pause()
			message.Store("paused")
		}
	case 'r':
		a.client.Post(func(c *host.Client) {
			dim := 0
			if w := c.World(); w != nil {
				dim = w.Dimension()
			}
			c.LoadWorld(dim)
		})
		message.Store("world reloaded")
	case 'd':
		a.client.Post(func(c *host.Client) {
			dim := -1
			if w := c.World(); w != nil && w.Dimension() != 0 {
				dim = 0
			}
			c.LoadWorld(dim)
		})
		message.Store("dimension switched")
	case 'm':
		if a.engine == nil {
			message.Store("audio unavailable")
			break
		}
		if a.engine.ToggleMute() {
			message.Store("muted")
		} else {
			message.Store("unmuted")
		}
	}
	return true
}

// torchPos is next to the player so the torch lights the player's block.
// Client goroutine only
func torchPos(c *host.Client) host.BlockPos {
	p := c.Player()
	return host.BlockPos{X: p.X + torchOffsetX, Y: p.Y, Z: p.Z}
}
