// Package figures renders the derived views into PNG artifacts under a fixed
// output directory. Figure filenames are deterministic and overwritten on
// every run.
package figures

import (
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/veloscope/stagereport/pkg/errors"
	"github.com/veloscope/stagereport/pkg/log"
)

// Renderer writes figure artifacts into one output directory, creating it on
// first use.
type Renderer struct {
	dir string
}

// NewRenderer returns a renderer bound to the given output directory.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Dir returns the output directory.
func (r *Renderer) Dir() string {
	return r.dir
}

func (r *Renderer) ensureDir() error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errors.NewOutputError("create output directory", r.dir, err)
	}
	return nil
}

// savePlot writes a single plot as a PNG of the given size and logs the
// artifact name.
func (r *Renderer) savePlot(p *plot.Plot, w, h vg.Length, name string) error {
	if err := r.ensureDir(); err != nil {
		return err
	}
	path := filepath.Join(r.dir, name)
	if err := p.Save(w, h, path); err != nil {
		return errors.NewOutputError("save figure", path, err)
	}
	slog.Info("saved figure", log.Figure(name), log.Path(path))
	return nil
}

// saveCanvas writes a composite canvas as a PNG and logs the artifact name.
func (r *Renderer) saveCanvas(c *vgimg.Canvas, name string) error {
	if err := r.ensureDir(); err != nil {
		return err
	}
	path := filepath.Join(r.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errors.NewOutputError("create figure", path, err)
	}
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return errors.NewOutputError("save figure", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewOutputError("save figure", path, err)
	}
	slog.Info("saved figure", log.Figure(name), log.Path(path))
	return nil
}
