package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/chenyukang/fiber-world/frame"
	"github.com/chenyukang/fiber-world/stats"
	"github.com/chenyukang/fiber-world/theme"
)

type renderFlags struct {
	width, height float64
	seed          uint32
	frames        int
	every         int
	out           string
	mode          string
}

func renderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render animation frames to PNG files",
		Example: "  fiberworld render --frames 120 --every 30 --out frames\n" +
			"  fiberworld render --width 1280 --height 720 --theme light",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&f.width, "width", 0, "Canvas width (default from config)")
	fl.Float64Var(&f.height, "height", 0, "Canvas height (default from config)")
	fl.Uint32Var(&f.seed, "seed", 0, "Layout seed (default from config)")
	fl.IntVar(&f.frames, "frames", 1, "Number of frames to simulate")
	fl.IntVar(&f.every, "every", 0, "Write every Nth frame; 0 writes only the last")
	fl.StringVarP(&f.out, "out", "o", "frames", "Output directory")
	fl.StringVar(&f.mode, "theme", "", "dark or light (default from config)")
	return cmd
}

func (a *app) render(cmd *cobra.Command, f renderFlags) error {
	if f.frames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", f.frames)
	}
	if f.every < 0 {
		return fmt.Errorf("--every must not be negative, got %d", f.every)
	}
	modeName := a.cfg.Canvas.Theme
	if f.mode != "" {
		modeName = f.mode
	}
	mode, err := theme.ParseMode(modeName)
	if err != nil {
		return err
	}

	opts := append(a.cfg.FrameOptions(),
		frame.WithTheme(theme.NewState(mode)),
		frame.WithLogger(a.log),
	)
	w, h := a.cfg.Canvas.Width, a.cfg.Canvas.Height
	if f.width > 0 {
		w = f.width
	}
	if f.height > 0 {
		h = f.height
	}
	opts = append(opts, frame.WithSize(w, h))
	if cmd.Flags().Changed("seed") {
		opts = append(opts, frame.WithSeed(f.seed))
	}
	d, err := frame.New(opts...)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	step := 1000 / float64(a.cfg.Animation.FPS)
	var written []string
	start := time.Now()
	for i := 0; i < f.frames; i++ {
		if err := d.Tick(float64(i) * step); err != nil {
			return err
		}
		last := i == f.frames-1
		if !last && (f.every == 0 || (i+1)%f.every != 0) {
			continue
		}
		path := filepath.Join(f.out, fmt.Sprintf("frame-%04d.png", i+1))
		if err := writeFrame(d, path); err != nil {
			return err
		}
		written = append(written, path)
	}
	a.log.Info("render finished", "frames", f.frames, "written", len(written), "elapsed", time.Since(start))

	st := d.State()
	d.SampleStats(0)
	v := d.Stats().Target()
	out := cmd.OutOrStdout()
	field(out, "Canvas", fmt.Sprintf("%.0f×%.0f @%.2fx (%s)", st.Width, st.Height, st.DPR, st.Theme))
	field(out, "Network", fmt.Sprintf("%s nodes, %s channels", stats.Format(float64(st.Nodes)), stats.Format(float64(st.Edges))))
	field(out, "Routes", fmt.Sprintf("%d active, %d hot channels, %s tps", st.Routes, st.Hot, stats.Format(v.Throughput)))
	for _, p := range written {
		fmt.Fprintf(out, "  %s %s\n", good.Sprint("✓"), p)
	}
	return nil
}

func writeFrame(d *frame.Driver, path string) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("write %s: %w", path, cerr)
		}
	}()
	return d.WritePNG(fh)
}
