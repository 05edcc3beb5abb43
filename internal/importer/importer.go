// Package importer runs OBJ imports: it loads a source, decodes its text,
// parses it off the caller's goroutine and reports each job exactly once.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/objmesh/internal/assets"
	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/pkg/encoding"
	"github.com/Faultbox/objmesh/pkg/obj"
)

// Result is the outcome of one import job. Meshes is nil whenever Err is set.
type Result struct {
	JobID    uuid.UUID
	Source   assets.Source
	Meshes   []obj.MeshRecord
	Err      error
	Duration time.Duration
}

// Importer loads and parses OBJ sources.
type Importer struct {
	cfg    *config.Config
	assets *assets.Manager
	log    *zap.Logger
}

// New creates an importer reading through am.
func New(cfg *config.Config, am *assets.Manager) *Importer {
	return &Importer{
		cfg:    cfg,
		assets: am,
		log:    logger.For("importer"),
	}
}

// Source resolves a command-line argument such as "scene.zip:part.obj".
func (im *Importer) Source(arg string) assets.Source {
	return assets.ParseSource(arg, im.cfg.Bundle.Entry)
}

// Import loads and parses one source synchronously.
func (im *Importer) Import(ctx context.Context, arg string) Result {
	return im.run(ctx, im.Source(arg))
}

// ImportAsync runs the import on its own goroutine. The channel delivers
// exactly one Result and is then closed.
func (im *Importer) ImportAsync(ctx context.Context, arg string) <-chan Result {
	ch := make(chan Result, 1)
	src := im.Source(arg)
	go func() {
		defer close(ch)
		ch <- im.run(ctx, src)
	}()
	return ch
}

// ImportAll imports args with at most Import.Workers parses in flight.
// Results keep the order of args. The first failure cancels the jobs that
// have not finished yet and is returned as the error.
func (im *Importer) ImportAll(ctx context.Context, args []string) ([]Result, error) {
	results := make([]Result, len(args))

	g, gctx := errgroup.WithContext(ctx)
	if im.cfg.Import.Workers > 0 {
		g.SetLimit(im.cfg.Import.Workers)
	}
	for i, arg := range args {
		i := i
		src := im.Source(arg)
		g.Go(func() error {
			results[i] = im.run(gctx, src)
			return results[i].Err
		})
	}
	err := g.Wait()
	return results, err
}

// Parse decodes data with the configured charset and parses it.
func (im *Importer) Parse(ctx context.Context, data []byte) ([]obj.MeshRecord, error) {
	text, err := encoding.ToUTF8(data, im.cfg.Parse.Charset)
	if err != nil {
		return nil, err
	}
	return obj.ParseContext(ctx, text,
		obj.WithRequireGroup(im.cfg.Parse.RequireGroup),
		obj.WithCapacityHint(im.cfg.Parse.CapacityHint),
	)
}

func (im *Importer) run(ctx context.Context, src assets.Source) Result {
	res := Result{JobID: uuid.New(), Source: src}
	log := logger.Job(im.log, res.JobID, src)

	if timeout := im.cfg.Import.Timeout.Std(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	data, err := im.assets.Load(src)
	if err != nil {
		res.Err = err
		log.Error("load failed", zap.Error(err))
		return res
	}
	log.Debug("loaded", zap.Int("bytes", len(data)), logger.Took(time.Since(start)))

	meshes, err := im.Parse(ctx, data)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = fmt.Errorf("importing %s: %w", src, err)
		log.Error("import failed", zap.Error(err), logger.Took(res.Duration))
		return res
	}

	res.Meshes = meshes
	log.Info("imported",
		zap.Int("meshes", len(meshes)),
		zap.Int("triangles", countTriangles(meshes)),
		logger.Took(res.Duration),
	)
	return res
}

func countTriangles(meshes []obj.MeshRecord) int {
	n := 0
	for i := range meshes {
		n += meshes[i].TriangleCount()
	}
	return n
}

// Invalidate forgets cached bytes for path so the next import rereads it.
func (im *Importer) Invalidate(path string) {
	im.assets.Invalidate(path)
}
