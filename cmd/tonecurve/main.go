package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kovidgoyal/tonecurve"
	"github.com/kovidgoyal/tonecurve/curvefile"
	"github.com/kovidgoyal/tonecurve/pipeline"
)

var _ = fmt.Print

type options struct {
	curves       string
	output       string
	frames       int
	duration     time.Duration
	hold         time.Duration
	svg          string
	svg_size     float64
	dump         string
	verbose      bool
	no_orient    bool
	show_version bool
	quality      int
	compression  string
}

func parse_args(args []string) (opts options, input string, err error) {
	fs := flag.NewFlagSet("tonecurve", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: tonecurve [options] input-file")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.curves, "curves", "", "curves file (.yaml, .toml or .json) to apply")
	fs.StringVar(&opts.output, "o", "", "output file, defaults to the input file with a .png or .apng extension")
	fs.IntVar(&opts.frames, "frames", 0, "write an animated PNG with this many frames easing the curves in")
	fs.DurationVar(&opts.duration, "duration", time.Second, "duration of the ease in animation")
	fs.DurationVar(&opts.hold, "hold", 2*time.Second, "how long the last animation frame is shown")
	fs.StringVar(&opts.svg, "svg", "", "print the SVG path of the curve of this channel")
	fs.Float64Var(&opts.svg_size, "svg-size", tonecurve.DomainMax, "width and height of the SVG canvas")
	fs.StringVar(&opts.dump, "dump", "", "print the curves, after repair, in this format (yaml, toml or json)")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.BoolVar(&opts.no_orient, "no-orientation", false, "ignore the EXIF orientation of the input")
	fs.IntVar(&opts.quality, "quality", 95, "JPEG quality, 1 to 100, when the output is a JPEG file")
	fs.StringVar(&opts.compression, "png-compression", "default", "PNG compression: default, none, fast or best")
	fs.BoolVar(&opts.show_version, "version", false, "print the version and exit")
	if err = fs.Parse(args); err != nil {
		return
	}
	if opts.show_version {
		return
	}
	if fs.NArg() > 1 || (fs.NArg() == 0 && opts.svg == "" && opts.dump == "") {
		fs.Usage()
		return opts, "", fmt.Errorf("expected exactly one input file")
	}
	return opts, fs.Arg(0), nil
}

var png_compression_levels = map[string]png.CompressionLevel{
	"":        png.DefaultCompression,
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"fast":    png.BestSpeed,
	"best":    png.BestCompression,
}

func encode_options(opts options) ([]tonecurve.EncodeOption, error) {
	level, ok := png_compression_levels[strings.ToLower(opts.compression)]
	if !ok {
		return nil, fmt.Errorf("unknown PNG compression: %q", opts.compression)
	}
	ans := []tonecurve.EncodeOption{tonecurve.PNGCompressionLevel(level)}
	if opts.quality != 0 {
		if opts.quality < 1 || opts.quality > 100 {
			return nil, fmt.Errorf("JPEG quality must be between 1 and 100, got %d", opts.quality)
		}
		ans = append(ans, tonecurve.JPEGQuality(opts.quality))
	}
	return ans, nil
}

func dump_format(name string) (curvefile.Format, error) {
	return curvefile.FormatFromPath("curves." + strings.ToLower(name))
}

func run(opts options, input string, stdout io.Writer, logger *slog.Logger) (err error) {
	enc, err := encode_options(opts)
	if err != nil {
		return err
	}
	var cfg tonecurve.Config
	if opts.curves != "" {
		if cfg, err = curvefile.Load(opts.curves); err != nil {
			return err
		}
		logger.Info("loaded curves", "file", opts.curves, "channels", len(cfg))
	}
	set := tonecurve.NewChannelSet(cfg, tonecurve.WithLogger(logger))
	snap := set.Snapshot()
	if opts.dump != "" {
		f, err := dump_format(opts.dump)
		if err != nil {
			return err
		}
		if err = curvefile.Encode(stdout, snap.Config(), f); err != nil {
			return err
		}
	}
	if opts.svg != "" {
		ch, err := tonecurve.ParseChannel(opts.svg)
		if err != nil {
			return err
		}
		v := tonecurve.Viewport{Width: opts.svg_size, Height: opts.svg_size}
		fmt.Fprintln(stdout, tonecurve.PathSVG(tonecurve.CurvePath(set.Points(ch), v)))
	}
	if input == "" {
		return nil
	}
	img, err := tonecurve.Open(input, tonecurve.AutoOrientation(!opts.no_orient))
	if err != nil {
		return err
	}
	logger.Debug("decoded image", "file", input, "bounds", img.Bounds())
	output := opts.output
	if opts.frames > 1 {
		if output == "" {
			output = input + ".apng"
		}
		start := time.Now()
		anim, err := pipeline.EaseIn(img, snap, opts.frames, opts.duration, opts.hold)
		if err != nil {
			return err
		}
		logger.Info("rendered animation", "frames", len(anim.Frames), "elapsed", time.Since(start))
		if err = anim.Save(output); err != nil {
			return err
		}
	} else {
		if output == "" {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
			if output == input {
				output = input + ".png"
			}
		}
		start := time.Now()
		e := pipeline.NewEvaluator(snap)
		if img, err = e.Apply(img); err != nil {
			return err
		}
		logger.Info("applied curves", "identity", e.IsIdentity(), "elapsed", time.Since(start))
		if err = tonecurve.Save(img, output, enc...); err != nil {
			return err
		}
	}
	fmt.Fprintln(stdout, "Saved to:", output)
	return nil
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	opts, input, err := parse_args(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			err = nil
		}
		return
	}
	if opts.show_version {
		fmt.Println("tonecurve", tonecurve.Version)
		return
	}
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	err = run(opts, input, os.Stdout, logger)
}
