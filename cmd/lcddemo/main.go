// Command lcddemo renders the LCD subpixel text sample to a PNG file.
//
// Usage:
//
//	lcddemo [flags] [truetype-font-dir]
//
// With -watch and -config the image is rendered again whenever the Lua
// settings file changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/lcdtext"
	"github.com/gogpu/lcdtext/config"
	"github.com/gogpu/lcdtext/fontpath"
	"github.com/gogpu/lcdtext/lcd"
	"github.com/gogpu/lcdtext/surface"
	"github.com/gogpu/lcdtext/text"
)

// Names the embedded Go fonts are registered under.
const (
	goRegularName = "gofont/Go-Regular.ttf"
	goItalicName  = "gofont/Go-Italic.ttf"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

type options struct {
	output  string
	config  string
	watch   bool
	verbose bool
	width   int
	height  int
	gofont  bool
}

func run(args []string, stdout, stderr io.Writer) int {
	name := "lcddemo"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}
	var o options
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.output, "o", "lcdtext.png", "output PNG file")
	fs.StringVar(&o.config, "config", "", "Lua settings file")
	fs.BoolVar(&o.watch, "watch", false, "render again when the settings file changes")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.IntVar(&o.width, "width", 640, "image width")
	fs.IntVar(&o.height, "height", 560, "image height")
	fs.BoolVar(&o.gofont, "gofont", false, "use the embedded Go fonts for every typeface")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "usage: %s [truetype-font-dir]\n", name)
		return 1
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	lcdtext.SetLogger(logger)

	settings := config.Default()
	if o.config != "" {
		var err error
		if settings, err = config.ParseFile(o.config, settings); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	argDir := ""
	if fs.NArg() == 1 {
		argDir = fs.Arg(0)
	}
	app := newDemo(o, argDir, logger)
	if argDir == "" && settings.FontDir == "" {
		fmt.Fprintf(stdout, "Looking for truetype fonts in %s.\n", app.fontDir(settings))
		fmt.Fprintf(stdout, "Pass another directory as the first argument: %s <truetype-font-dir>\n", name)
	}

	if err := app.render(settings); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if !o.watch {
		return 0
	}
	if o.config == "" {
		fmt.Fprintln(stderr, "-watch requires -config")
		return 1
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.watch(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

type demo struct {
	opts   options
	argDir string
	logger *slog.Logger

	// provider outlives renderers so parsed faces are kept across reloads.
	provider *text.SFNTProvider
	renderer *lcdtext.Renderer
	key      rendererKey
}

// rendererKey holds the settings a Renderer is built with.
type rendererKey struct {
	dir       string
	order     lcd.ChannelOrder
	normalize bool
}

func newDemo(o options, argDir string, logger *slog.Logger) *demo {
	return &demo{
		opts:   o,
		argDir: argDir,
		logger: logger,
		provider: text.NewSFNTProvider(
			text.WithFontData(goRegularName, goregular.TTF),
			text.WithFontData(goItalicName, goitalic.TTF),
		),
	}
}

// fontDir returns the font directory for s. The command line argument wins
// over the settings file.
func (d *demo) fontDir(s config.Settings) string {
	switch {
	case d.argDir != "":
		return d.argDir
	case s.FontDir != "":
		return s.FontDir
	default:
		return fontpath.DefaultDirectory()
	}
}

// rendererFor returns the renderer for s, building a new one only when the
// font directory or the filter settings changed.
func (d *demo) rendererFor(s config.Settings) *lcdtext.Renderer {
	key := rendererKey{dir: d.fontDir(s), order: s.ChannelOrder, normalize: s.NormalizeKernel}
	if d.renderer != nil && key == d.key {
		return d.renderer
	}
	var fonts *fontpath.Table
	if d.renderer != nil && key.dir == d.key.dir {
		fonts = d.renderer.Fonts()
	} else {
		fonts = d.fonts(key.dir)
	}
	d.renderer = lcdtext.NewRenderer(
		lcdtext.WithProvider(d.provider),
		lcdtext.WithFontPaths(fonts),
		lcdtext.WithChannelOrder(key.order),
		lcdtext.WithKernelNormalization(key.normalize),
		lcdtext.WithLogger(d.logger),
	)
	d.key = key
	return d.renderer
}

// fonts builds the typeface table for dir. Typefaces whose files cannot be
// found fall back to the embedded Go fonts.
func (d *demo) fonts(dir string) *fontpath.Table {
	fonts := fontpath.Initialize(dir)
	missing := map[string]bool{}
	if !d.opts.gofont {
		for _, p := range fonts.Resolve() {
			missing[p] = true
		}
	}
	goFace := fontpath.Face{Name: "Go", Regular: goRegularName, Italic: goItalicName}
	for i, f := range fonts.Faces() {
		if d.opts.gofont || missing[f.Regular] || missing[f.Italic] {
			if !d.opts.gofont {
				d.logger.Info("typeface not found, using Go fonts", "face", f.Name)
			}
			_ = fonts.Override(i, goFace)
		}
	}
	if d.logger.Enabled(context.Background(), slog.LevelDebug) {
		for i, f := range fonts.Faces() {
			d.logger.Debug("typeface", "index", i, "regular", f.Regular, "family", d.family(f.Regular))
		}
	}
	return fonts
}

// family returns the family name of the font at path, or the open error.
func (d *demo) family(path string) string {
	if err := d.provider.OpenFont(path, 0, text.RenderOutline); err != nil {
		return err.Error()
	}
	name, err := d.provider.Name()
	if err != nil {
		return err.Error()
	}
	return name
}

// render draws one frame for s and writes it to the output file.
func (d *demo) render(s config.Settings) error {
	surf := surface.NewImageSurface(d.opts.width, d.opts.height, true)
	if err := d.rendererFor(s).RenderFrame(surf, s.Controls); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	f, err := os.Create(d.opts.output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, surf); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", d.opts.output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	d.logger.Debug("frame written", "file", d.opts.output, "width", d.opts.width, "height", d.opts.height)
	return nil
}

// watch renders again on every settings update until ctx is canceled.
func (d *demo) watch(ctx context.Context) error {
	w, err := config.NewWatcher(d.opts.config, config.Default(),
		config.WithErrorHandler(func(err error) {
			d.logger.Warn("settings not reloaded", "error", err)
		}))
	if err != nil {
		return fmt.Errorf("watch %s: %w", d.opts.config, err)
	}
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	for s := range w.Updates() {
		if err := d.render(s); err != nil {
			d.logger.Error("render failed", "error", err)
		}
	}
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
