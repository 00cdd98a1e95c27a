// Package config loads fsnav.toml onto built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/johndoe6345789/3dfsnav/anim"
	"github.com/johndoe6345789/3dfsnav/camera"
	"github.com/johndoe6345789/3dfsnav/input"
	"github.com/johndoe6345789/3dfsnav/layout"
	"github.com/johndoe6345789/3dfsnav/nav"
	"github.com/johndoe6345789/3dfsnav/pick"
)

// DefaultFile is the config file looked up in the working directory
const DefaultFile = "fsnav.toml"

type CameraConfig struct {
	Yaw            float64 `toml:"yaw"`
	Pitch          float64 `toml:"pitch"`
	Distance       float64 `toml:"distance"`
	FOV            float64 `toml:"fov"`
	PitchMin       float64 `toml:"pitch_min"`
	PitchMax       float64 `toml:"pitch_max"`
	DistanceMin    float64 `toml:"distance_min"`
	DistanceMax    float64 `toml:"distance_max"`
	VerticalOffset float64 `toml:"vertical_offset"`
}

type LayoutConfig struct {
	Radius  float64 `toml:"radius"`
	Step    float64 `toml:"step"`
	Variant string  `toml:"variant"`
}

type InteractionConfig struct {
	DragYawGain   float64 `toml:"drag_yaw_gain"`
	DragPitchGain float64 `toml:"drag_pitch_gain"`
	ClickSlop     float64 `toml:"click_slop"`
	DoubleClickMs int     `toml:"double_click_ms"`
	WheelStep     float64 `toml:"wheel_step"`
	KeyZoomStep   float64 `toml:"key_zoom_step"`
	OrbitStep     float64 `toml:"orbit_step"`
	FlyApproach   float64 `toml:"fly_approach"`
	FlyPitch      float64 `toml:"fly_pitch"`
	DrillSpin     float64 `toml:"drill_spin"`
	PullBack      float64 `toml:"pull_back"`
	Rise          float64 `toml:"rise"`
}

type AnimationConfig struct {
	FlyToMs     int     `toml:"fly_to_ms"`
	DrillDownMs int     `toml:"drill_down_ms"`
	DrillOutMs  int     `toml:"drill_out_ms"`
	AppearMs    int     `toml:"appear_ms"`
	StaggerMs   int     `toml:"stagger_ms"`
	ZoomMs      int     `toml:"zoom_ms"`
	OrbitMs     int     `toml:"orbit_ms"`
	AppearEase  string  `toml:"appear_easing"`
	HoverMode   string  `toml:"hover_mode"`
	HoverFactor float64 `toml:"hover_factor"`
	HoverLift   float64 `toml:"hover_lift"`
}

type PickConfig struct {
	Mode        string  `toml:"mode"`
	NDCEpsilon  float64 `toml:"ndc_epsilon"`
	DirBase     float64 `toml:"dir_base"`
	FileBase    float64 `toml:"file_base"`
	RefDepth    float64 `toml:"ref_depth"`
	MinDepth    float64 `toml:"min_depth"`
	MaxDepth    float64 `toml:"max_depth"`
	MinRadius   float64 `toml:"min_radius"`
	MaxRadius   float64 `toml:"max_radius"`
	PickOpacity float64 `toml:"pick_opacity"`
}

type RenderConfig struct {
	FPS        int     `toml:"fps"`
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	Grid       bool    `toml:"grid"`
	Labels     bool    `toml:"labels"`
	ToastMs    int     `toml:"toast_ms"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type TreeConfig struct {
	Start      string `toml:"start"`
	Document   string `toml:"document"`
	Watch      bool   `toml:"watch"`
	ChildLimit int    `toml:"child_limit"`
}

// Config is the full application configuration
type Config struct {
	Camera      CameraConfig      `toml:"camera"`
	Layout      LayoutConfig      `toml:"layout"`
	Interaction InteractionConfig `toml:"interaction"`
	Animation   AnimationConfig   `toml:"animation"`
	Pick        PickConfig        `toml:"pick"`
	Render      RenderConfig      `toml:"render"`
	Audio       AudioConfig       `toml:"audio"`
	Tree        TreeConfig        `toml:"tree"`

	// Keymap overrides, action names as in input.ActionBinding
	Keys  map[string]string `toml:"keys"`
	Runes map[string]string `toml:"runes"`
}

// Default returns the built-in configuration
func Default() *Config {
	o := nav.DefaultOptions()
	return &Config{
		Camera: CameraConfig{
			Yaw:            o.Home.Yaw,
			Pitch:          o.Home.Pitch,
			Distance:       o.Home.Distance,
			FOV:            o.Home.FOV,
			PitchMin:       o.Limits.PitchMin,
			PitchMax:       o.Limits.PitchMax,
			DistanceMin:    o.Limits.DistMin,
			DistanceMax:    o.Limits.DistMax,
			VerticalOffset: o.VerticalOffset,
		},
		Layout: LayoutConfig{
			Radius:  o.Layout.Radius,
			Step:    o.Layout.Step,
			Variant: o.Layout.Variant.String(),
		},
		Interaction: InteractionConfig{
			DragYawGain:   o.DragYawGain,
			DragPitchGain: o.DragPitchGain,
			ClickSlop:     o.ClickSlop,
			DoubleClickMs: int(o.DoubleClick / time.Millisecond),
			WheelStep:     o.WheelStep,
			KeyZoomStep:   o.KeyZoomStep,
			OrbitStep:     o.OrbitStep,
			FlyApproach:   o.FlyApproach,
			FlyPitch:      o.FlyPitch,
			DrillSpin:     o.DrillSpin,
			PullBack:      o.PullBack,
			Rise:          o.Rise,
		},
		Animation: AnimationConfig{
			FlyToMs:     int(o.FlyTo / time.Millisecond),
			DrillDownMs: int(o.DrillDown / time.Millisecond),
			DrillOutMs:  int(o.DrillOut / time.Millisecond),
			AppearMs:    int(o.Appear / time.Millisecond),
			StaggerMs:   int(o.Stagger / time.Millisecond),
			ZoomMs:      int(o.Zoom / time.Millisecond),
			OrbitMs:     int(o.Orbit / time.Millisecond),
			AppearEase:  o.AppearEase.String(),
			HoverMode:   o.HoverMode.String(),
			HoverFactor: o.HoverFactor,
			HoverLift:   o.HoverLift,
		},
		Pick: PickConfig{
			Mode:        o.PickMode.String(),
			NDCEpsilon:  o.Tolerance.NDCEpsilon,
			DirBase:     o.Tolerance.DirBase,
			FileBase:    o.Tolerance.FileBase,
			RefDepth:    o.Tolerance.RefDepth,
			MinDepth:    o.Tolerance.MinDepth,
			MaxDepth:    o.Tolerance.MaxDepth,
			MinRadius:   o.Tolerance.MinR,
			MaxRadius:   o.Tolerance.MaxR,
			PickOpacity: o.PickOpacity,
		},
		Render: RenderConfig{
			FPS:        60,
			CellWidth:  input.DefaultCellW,
			CellHeight: input.DefaultCellH,
			Grid:       true,
			Labels:     true,
			ToastMs:    2000,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Tree: TreeConfig{
			Start:      "/home/user",
			ChildLimit: o.ChildLimit,
		},
	}
}

// Load decodes path over the defaults and validates the result
// A missing file is not an error when path is the default file name
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Camera.PitchMin < c.Camera.PitchMax, "camera: pitch_min %.3f must be below pitch_max %.3f", c.Camera.PitchMin, c.Camera.PitchMax)
	check(c.Camera.DistanceMin > 0, "camera: distance_min must be positive")
	check(c.Camera.DistanceMin < c.Camera.DistanceMax, "camera: distance_min %.3f must be below distance_max %.3f", c.Camera.DistanceMin, c.Camera.DistanceMax)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera: fov %.1f must be within (0, 180)", c.Camera.FOV)

	check(c.Layout.Radius > 0, "layout: radius must be positive")
	_, ok := layout.ParseVariant(c.Layout.Variant)
	check(ok, "layout: unknown variant %q", c.Layout.Variant)

	check(c.Interaction.DoubleClickMs > 0, "interaction: double_click_ms must be positive")
	check(c.Interaction.ClickSlop >= 0, "interaction: click_slop must not be negative")

	for name, ms := range map[string]int{
		"fly_to_ms":     c.Animation.FlyToMs,
		"drill_down_ms": c.Animation.DrillDownMs,
		"drill_out_ms":  c.Animation.DrillOutMs,
		"appear_ms":     c.Animation.AppearMs,
		"zoom_ms":       c.Animation.ZoomMs,
		"orbit_ms":      c.Animation.OrbitMs,
	} {
		check(ms > 0, "animation: %s must be positive", name)
	}
	check(c.Animation.StaggerMs >= 0, "animation: stagger_ms must not be negative")
	_, ok = anim.ParseEasing(c.Animation.AppearEase)
	check(ok, "animation: unknown appear_easing %q", c.Animation.AppearEase)
	_, ok = nav.ParseHoverMode(c.Animation.HoverMode)
	check(ok, "animation: unknown hover_mode %q", c.Animation.HoverMode)
	check(c.Animation.HoverFactor > 0 && c.Animation.HoverFactor <= 1, "animation: hover_factor must be within (0, 1]")

	_, ok = pick.ParseMode(c.Pick.Mode)
	check(ok, "pick: unknown mode %q", c.Pick.Mode)
	check(c.Pick.MinRadius <= c.Pick.MaxRadius, "pick: min_radius must not exceed max_radius")
	check(c.Pick.MinDepth > 0 && c.Pick.MinDepth <= c.Pick.MaxDepth, "pick: depth clamp must be positive and ordered")

	check(c.Render.FPS > 0, "render: fps must be positive")
	check(c.Render.CellWidth > 0 && c.Render.CellHeight > 0, "render: cell size must be positive")

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio: volume must be within [0, 1]")

	check(strings.HasPrefix(c.Tree.Start, "/"), "tree: start %q must be absolute", c.Tree.Start)
	check(c.Tree.ChildLimit >= 0, "tree: child_limit must not be negative")

	if _, err := c.KeyTable(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// NavOptions converts the configuration into navigator options
func (c *Config) NavOptions() nav.Options {
	o := nav.DefaultOptions()
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	o.Start = c.Tree.Start
	o.ChildLimit = c.Tree.ChildLimit

	variant, _ := layout.ParseVariant(c.Layout.Variant)
	o.Layout = layout.Params{Radius: c.Layout.Radius, Step: c.Layout.Step, Variant: variant}

	o.Home = camera.Pose{Yaw: c.Camera.Yaw, Pitch: c.Camera.Pitch, Distance: c.Camera.Distance, FOV: c.Camera.FOV}
	o.Limits = camera.Limits{
		PitchMin: c.Camera.PitchMin,
		PitchMax: c.Camera.PitchMax,
		DistMin:  c.Camera.DistanceMin,
		DistMax:  c.Camera.DistanceMax,
	}
	o.VerticalOffset = c.Camera.VerticalOffset

	o.PickMode, _ = pick.ParseMode(c.Pick.Mode)
	o.Tolerance = pick.Tolerance{
		NDCEpsilon: c.Pick.NDCEpsilon,
		DirBase:    c.Pick.DirBase,
		FileBase:   c.Pick.FileBase,
		RefDepth:   c.Pick.RefDepth,
		MinDepth:   c.Pick.MinDepth,
		MaxDepth:   c.Pick.MaxDepth,
		MinR:       c.Pick.MinRadius,
		MaxR:       c.Pick.MaxRadius,
	}
	o.PickOpacity = c.Pick.PickOpacity

	o.DragYawGain = c.Interaction.DragYawGain
	o.DragPitchGain = c.Interaction.DragPitchGain
	o.ClickSlop = c.Interaction.ClickSlop
	o.DoubleClick = ms(c.Interaction.DoubleClickMs)
	o.WheelStep = c.Interaction.WheelStep
	o.KeyZoomStep = c.Interaction.KeyZoomStep
	o.OrbitStep = c.Interaction.OrbitStep
	o.FlyApproach = c.Interaction.FlyApproach
	o.FlyPitch = c.Interaction.FlyPitch
	o.DrillSpin = c.Interaction.DrillSpin
	o.PullBack = c.Interaction.PullBack
	o.Rise = c.Interaction.Rise

	o.FlyTo = ms(c.Animation.FlyToMs)
	o.DrillDown = ms(c.Animation.DrillDownMs)
	o.DrillOut = ms(c.Animation.DrillOutMs)
	o.Appear = ms(c.Animation.AppearMs)
	o.Stagger = ms(c.Animation.StaggerMs)
	o.Zoom = ms(c.Animation.ZoomMs)
	o.Orbit = ms(c.Animation.OrbitMs)
	o.AppearEase, _ = anim.ParseEasing(c.Animation.AppearEase)
	o.HoverMode, _ = nav.ParseHoverMode(c.Animation.HoverMode)
	o.HoverFactor = c.Animation.HoverFactor
	o.HoverLift = c.Animation.HoverLift

	return o
}

// KeyTable returns the default key table with the configured overrides applied
func (c *Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.ParseKeyConfig(c.Keys, c.Runes)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}
