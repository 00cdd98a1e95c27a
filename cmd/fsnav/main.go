// Command fsnav is a terminal 3D navigator for directory hierarchies
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/johndoe6345789/3dfsnav/audio"
	"github.com/johndoe6345789/3dfsnav/config"
	"github.com/johndoe6345789/3dfsnav/engine"
	"github.com/johndoe6345789/3dfsnav/input"
	"github.com/johndoe6345789/3dfsnav/nav"
	"github.com/johndoe6345789/3dfsnav/render"
	"github.com/johndoe6345789/3dfsnav/tree"
)

// flags holds command line overrides applied on top of the config file
type flags struct {
	configPath string
	treePath   string
	startPath  string
	pickMode   string
	debug      bool
	noAudio    bool
	watch      bool
}

func main() {
	os.Exit(execute(newRootCmd()))
}

// execute runs cmd and reports any error once on its error stream
// Errors are silenced inside cobra so the root and every subcommand share this path
func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "fsnav: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "fsnav",
		Short:         "Fly through a directory hierarchy in 3D",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cfg, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", config.DefaultFile, "TOML configuration file")
	pf.StringVarP(&f.treePath, "tree", "t", "", "YAML tree document, the built-in demo tree when empty")
	pf.StringVarP(&f.startPath, "path", "p", "", "start path")
	pf.StringVar(&f.pickMode, "pick", "", "hit-test mode: pixel or ndc")
	root.Flags().BoolVarP(&f.debug, "debug", "d", false, "write logs to "+logDir+"/"+logFileName)
	root.Flags().BoolVar(&f.noAudio, "no-audio", false, "disable sound cues")
	root.Flags().BoolVarP(&f.watch, "watch", "w", false, "reload the tree document when it changes")

	root.AddCommand(newLayoutCmd(f))
	return root
}

// loadConfig reads the config file and applies the flags the user set
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("tree") {
		cfg.Tree.Document = f.treePath
	}
	if changed("path") {
		cfg.Tree.Start = f.startPath
	}
	if changed("pick") {
		cfg.Pick.Mode = f.pickMode
	}
	if changed("watch") {
		cfg.Tree.Watch = f.watch
	}
	if changed("no-audio") && f.noAudio {
		cfg.Audio.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// loadSource returns the configured tree document or the demo tree
func loadSource(cfg *config.Config) (tree.Source, error) {
	if cfg.Tree.Document == "" {
		return tree.Demo(), nil
	}
	doc, err := tree.LoadDocument(cfg.Tree.Document)
	if err != nil {
		return nil, err
	}
	src, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", cfg.Tree.Document, err)
	}
	return src, nil
}

func run(cfg *config.Config, f *flags) (err error) {
	logFile := setupLogging(f.debug)
	if logFile != nil {
		defer logFile.Close()
	}
	log := logrus.StandardLogger()

	src, err := loadSource(cfg)
	if err != nil {
		return err
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	// Panic recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nFSNAV CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	screen.EnableMouse()
	screen.HideCursor()

	acfg := audio.DefaultConfig()
	acfg.Enabled = cfg.Audio.Enabled
	acfg.MasterVolume = cfg.Audio.Volume
	sound := audio.NewSoundManager(acfg, log)
	if err := sound.Initialize(); err != nil {
		log.WithError(err).Warn("audio unavailable")
	}
	defer sound.Cleanup()

	renderer := render.New(render.DefaultPalette(), render.Options{
		CellW:  cfg.Render.CellWidth,
		CellH:  cfg.Render.CellHeight,
		Grid:   cfg.Render.Grid,
		Labels: cfg.Render.Labels,
		Toast:  time.Duration(cfg.Render.ToastMs) * time.Millisecond,
	})

	clock := engine.NewTimeProvider()
	navigator := nav.New(src, cfg.NavOptions(), clock, log, nav.Listeners{renderer, sound})
	mapper := input.NewMapper(keys, cfg.Render.CellWidth, cfg.Render.CellHeight)

	a := newApp(clock, navigator, mapper, renderer)
	a.resize(screen.Size())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := engine.NewLoop(screen, clock, cfg.Render.FPS, log)
	if cfg.Tree.Watch && cfg.Tree.Document != "" {
		if err := watchDocument(ctx, cfg.Tree.Document, loop, navigator, log); err != nil {
			log.WithError(err).Warn("tree watch disabled")
		}
	}

	err = loop.Run(ctx, a)
	s := loop.Stats().Snapshot()
	log.WithFields(logrus.Fields{"frames": s.Frames, "events": s.Events, "dropped": s.Dropped}).Info("exit")
	return err
}

// watchDocument hands rebuilt trees to the navigator on the loop goroutine
func watchDocument(ctx context.Context, path string, loop *engine.Loop, n *nav.Navigator, log logrus.FieldLogger) error {
	docs, err := tree.Watch(ctx, path, log)
	if err != nil {
		return err
	}
	go func() {
		for doc := range docs {
			src, err := doc.Build()
			if err != nil {
				log.WithError(err).WithField("path", path).Warn("tree reload rejected")
				continue
			}
			loop.Post(ctx, func() { n.SetSource(src) })
		}
	}()
	return nil
}
