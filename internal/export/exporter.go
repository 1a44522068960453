package export

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneexport/internal/scene"
)

// DefaultPlatform is the manifest platform used when none is configured.
const DefaultPlatform = "Windows"

// Options controls one exporter.
type Options struct {
	LogEnabled       bool   // log every converted node and a summary
	ExportMeshData   bool   // reserved; per-node geometry is not exported
	PrettyPrint      bool   // indent the document
	ExportTextures   bool   // record referenced textures in Result.Textures
	WholeScene       bool   // ModeWholeScene instead of ModeSubtree
	Directory        string // output directory, created if missing
	Filename         string // document name without the .json extension
	PlatformManifest bool   // update {Directory}/Content.mgcb
	ManifestPlatform string
	LegacyZeroScale  bool // give the navigation record a zero scale
}

// DefaultOptions returns the options the CLI starts from.
func DefaultOptions() Options {
	return Options{
		LogEnabled:       true,
		ExportMeshData:   true,
		PrettyPrint:      true,
		ExportTextures:   true,
		Directory:        "export",
		Filename:         "GameMap",
		ManifestPlatform: DefaultPlatform,
	}
}

// Mode returns the collection mode the options select.
func (o Options) Mode() Mode {
	if o.WholeScene {
		return ModeWholeScene
	}
	return ModeSubtree
}

// DocumentPath returns {Directory}/{Filename}.json.
func (o Options) DocumentPath() string {
	return filepath.Join(o.Directory, o.Filename+".json")
}

// ManifestWriter adds a written document to a content pipeline manifest
// and returns the manifest path.
type ManifestWriter interface {
	Emit(fs afero.Fs, docPath, platform string) (string, error)
}

// Result describes a finished export.
type Result struct {
	Document     Document
	Path         string
	ManifestPath string            // empty when no manifest was written
	Textures     map[string]string // texture name to relative path
	Bytes        int
	Duration     time.Duration
}

// Exporter turns scene nodes into documents on a file system.
type Exporter struct {
	scene    Scene
	opts     Options
	fs       afero.Fs
	ids      IDProvider
	log      *zap.Logger
	manifest ManifestWriter
	tracer   trace.Tracer

	exported metric.Int64Counter
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFs sets the file system. The default is the OS file system.
func WithFs(fs afero.Fs) Option {
	return func(e *Exporter) { e.fs = fs }
}

// WithIDs sets the id provider. The default is HandleIDs.
func WithIDs(ids IDProvider) Option {
	return func(e *Exporter) { e.ids = ids }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(e *Exporter) { e.log = log }
}

// WithManifest sets the manifest writer used when PlatformManifest is on.
func WithManifest(w ManifestWriter) Option {
	return func(e *Exporter) { e.manifest = w }
}

// WithTracerProvider sets where export spans go. The default is the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Exporter) { e.tracer = tp.Tracer(instrumentationName) }
}

// New creates an exporter over s.
func New(s Scene, opts Options, options ...Option) (*Exporter, error) {
	e := &Exporter{
		scene:  s,
		opts:   opts,
		fs:     afero.NewOsFs(),
		ids:    HandleIDs{},
		log:    zap.NewNop(),
		tracer: tracer(),
	}
	for _, o := range options {
		o(e)
	}
	if e.opts.ManifestPlatform == "" {
		e.opts.ManifestPlatform = DefaultPlatform
	}
	if e.opts.PlatformManifest && e.manifest == nil {
		return nil, fmt.Errorf("%w: platform manifest enabled without a manifest writer", ErrConfiguration)
	}

	var err error
	e.exported, err = meter().Int64Counter(
		"export.nodes.exported",
		metric.WithDescription("Total node records written"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating exported counter: %w", err)
	}
	return e, nil
}

// Options returns the exporter's effective options.
func (e *Exporter) Options() Options {
	return e.opts
}

// Export writes the document for root (ignored in whole-scene mode) and,
// when enabled, updates the manifest. It runs to completion; ctx only
// carries tracing.
func (e *Exporter) Export(ctx context.Context, root scene.Handle) (res *Result, err error) {
	start := time.Now()
	mode := e.opts.Mode()

	ctx, span := e.tracer.Start(ctx, "export.Export",
		trace.WithAttributes(attribute.String("mode", mode.String())))
	defer func() { endSpan(span, err) }()

	handles, err := Collect(e.scene, root, mode)
	if err != nil {
		return nil, err
	}

	if err := e.fs.MkdirAll(e.opts.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %w", ErrConfiguration, e.opts.Directory, err)
	}

	doc, textures := e.convert(ctx, handles)

	data, err := doc.Encode(e.opts.PrettyPrint)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	path := e.opts.DocumentPath()
	if err := e.write(ctx, path, data); err != nil {
		return nil, err
	}

	res = &Result{
		Document: doc,
		Path:     path,
		Textures: textures,
		Bytes:    len(data),
	}

	if e.opts.PlatformManifest {
		_, mspan := e.tracer.Start(ctx, "export.Manifest")
		res.ManifestPath, err = e.manifest.Emit(e.fs, path, e.opts.ManifestPlatform)
		endSpan(mspan, err)
		if err != nil {
			return nil, fmt.Errorf("%w: updating manifest: %w", ErrIO, err)
		}
	}

	e.exported.Add(ctx, int64(len(doc)), metric.WithAttributes(attribute.String("mode", mode.String())))
	res.Duration = time.Since(start)

	if e.opts.LogEnabled {
		e.log.Info("Export complete",
			zap.Int("nodes", len(handles)),
			zap.Int("records", len(doc)),
			zap.String("path", path),
			zap.String("size", humanize.Bytes(uint64(len(data)))),
			zap.Int("textures", len(textures)),
			zap.Duration("took", res.Duration))
	}
	return res, nil
}

// convert builds one record per handle plus the navigation record. The
// texture map is local to this call.
func (e *Exporter) convert(ctx context.Context, handles []scene.Handle) (Document, map[string]string) {
	_, span := e.tracer.Start(ctx, "export.Convert",
		trace.WithAttributes(attribute.Int("nodes", len(handles))))
	defer span.End()

	textures := make(map[string]string)
	nodes := make([]Node, 0, len(handles))
	for _, h := range handles {
		n := ConvertNode(e.scene, e.ids, h)
		if e.opts.LogEnabled {
			e.log.Info("Exported node", zap.String("id", n.ID), zap.String("name", n.Name))
		}
		if e.opts.ExportTextures {
			for _, t := range e.scene.Textures(h) {
				textures[t.Name] = t.Path
			}
		}
		nodes = append(nodes, n)
	}

	nav := NavMeshNode(e.scene.NavMeshTriangulation(), e.opts.LegacyZeroScale)
	return Assemble(nodes, nav), textures
}

func (e *Exporter) write(ctx context.Context, path string, data []byte) (err error) {
	_, span := e.tracer.Start(ctx, "export.Write",
		trace.WithAttributes(attribute.String("path", path)))
	defer func() { endSpan(span, err) }()

	if err := afero.WriteFile(e.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	return nil
}
