package source

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Dimensions is the pixel size of one image.
type Dimensions struct {
	Width  int
	Height int
}

// Prober reads image sizes concurrently.
type Prober struct {
	Workers int
	Logger  zerolog.Logger
}

func NewProber(workers int, logger zerolog.Logger) *Prober {
	if workers < 1 {
		workers = 1
	}
	return &Prober{Workers: workers, Logger: logger}
}

// Probe returns the sizes of the images it could read. Unreadable files are
// logged and left out; only cancellation of ctx is an error.
func (p *Prober) Probe(ctx context.Context, paths []string) (map[string]Dimensions, error) {
	var mu sync.Mutex
	sizes := make(map[string]Dimensions, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Workers)
	for _, path := range paths {
		path := path // per-iteration copy; go.mod targets go 1.21 (pre-1.22 loopvar semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w, h, err := DecodeSize(path)
			if err != nil {
				p.Logger.Warn().Err(err).Str("path", path).Msg("could not read image size")
				return nil
			}
			mu.Lock()
			sizes[path] = Dimensions{Width: w, Height: h}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sizes, nil
}
