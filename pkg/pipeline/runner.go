package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/typetower/pkg/cache"
	"github.com/matzehuels/typetower/pkg/emit/languages"
	"github.com/matzehuels/typetower/pkg/graphio"
	"github.com/matzehuels/typetower/pkg/httputil"
	"github.com/matzehuels/typetower/pkg/observability"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, HTTP client, and logger -
// it doesn't store pipeline results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Client *httputil.Client
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache, keyer, and HTTP client.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If client is nil, URL sources are fetched without a document cache.
func NewRunner(c cache.Cache, keyer cache.Keyer, client *httputil.Client, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if client == nil {
		client = httputil.NewClient(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Client: client,
		Logger: logger,
	}
}

// Execute runs the complete decode → infer → emit pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	runID := uuid.NewString()
	logger := r.Logger.With("run", runID[:8])

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, opts.Source, opts.Format)
	data, err := ReadSource(ctx, r.Client, opts)
	var docs []any
	if err == nil {
		docs, err = DecodeDocuments(data, opts)
	}
	observability.Pipeline().OnDecodeComplete(ctx, opts.Source, opts.Format, len(docs), time.Since(decodeStart), err)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.DocCount = len(docs)

	logger.Info("decoded input",
		"source", opts.Source,
		"format", opts.Format,
		"docs", len(docs),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Infer
	inferStart := time.Now()
	observability.Pipeline().OnInferStart(ctx, opts.Source, len(docs))
	graph, inferHit, err := r.InferWithCacheInfo(ctx, data, docs, opts)
	typeCount := 0
	if err == nil {
		typeCount = len(typegraph.AllNamedTypes(graph, nil))
	}
	observability.Pipeline().OnInferComplete(ctx, opts.Source, typeCount, time.Since(inferStart), err)
	if err != nil {
		return nil, fmt.Errorf("infer: %w", err)
	}
	result.Graph = graph
	result.Stats.InferTime = time.Since(inferStart)
	result.Stats.TypeCount = typeCount
	result.CacheInfo.InferHit = inferHit

	// Compute graph hash for cache keys and reporting
	if graphData, err := graphio.MarshalGraph(graph); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	logger.Info("inferred types",
		"types", typeCount,
		"duration", result.Stats.InferTime)

	// Stage 3: Emit
	emitStart := time.Now()
	observability.Pipeline().OnEmitStart(ctx, opts.Languages)
	artifacts, emitHit, err := r.EmitWithCacheInfo(ctx, graph, result.GraphHash, opts)
	observability.Pipeline().OnEmitComplete(ctx, opts.Languages, time.Since(emitStart), err)
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.EmitTime = time.Since(emitStart)
	result.CacheInfo.EmitHit = emitHit

	logger.Info("emitted code",
		"languages", opts.Languages,
		"duration", result.Stats.EmitTime)

	return result, nil
}

// Decode reads the input and decodes it into generic document values.
func (r *Runner) Decode(ctx context.Context, opts Options) ([]any, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	data, err := ReadSource(ctx, r.Client, opts)
	if err != nil {
		return nil, err
	}
	return DecodeDocuments(data, opts)
}

// InferWithCacheInfo infers a type graph with caching and returns cache hit
// info. The raw source bytes feed the cache key, so the same document with
// the same options reuses the stored graph.
func (r *Runner) InferWithCacheInfo(ctx context.Context, data []byte, docs []any, opts Options) (*typegraph.TopLevels, bool, error) {
	if err := opts.ValidateForInfer(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	sourceHash := cache.Hash(data)
	cacheKey := r.Keyer.GraphKey(sourceHash, opts.GraphKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			graph, err := graphio.ReadGraph(bytes.NewReader(cached))
			if err == nil {
				return graph, true, nil // Cache hit
			}
		}
	}

	// Infer
	graph, err := Infer(docs, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if graphData, err := graphio.MarshalGraph(graph); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, graphData, cache.DefaultTTL)
	}

	return graph, false, nil // Cache miss
}

// Infer is a convenience wrapper that infers a type graph from decoded
// documents without consulting the cache.
func (r *Runner) Infer(ctx context.Context, docs []any, opts Options) (*typegraph.TopLevels, error) {
	if err := opts.ValidateForInfer(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	return Infer(docs, opts)
}

// EmitWithCacheInfo generates source code with caching and returns cache
// hit info. graphHash may be empty, in which case it is computed from the
// graph.
func (r *Runner) EmitWithCacheInfo(ctx context.Context, graph *typegraph.TopLevels, graphHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForEmit(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if graphHash == "" {
		graphData, err := graphio.MarshalGraph(graph)
		if err != nil {
			return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
		}
		graphHash = cache.Hash(graphData)
	}

	// Try to get all languages from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, name := range opts.Languages {
		lang := languages.Find(name)
		if lang == nil {
			return nil, false, fmt.Errorf("unsupported language: %s", name)
		}
		cacheKey := r.Keyer.OutputKey(graphHash, lang.Name, opts.PackageName)
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[lang.Name] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Languages) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Emit all languages
	rendered, err := Emit(graph, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each language
	for name, data := range rendered {
		cacheKey := r.Keyer.OutputKey(graphHash, name, opts.PackageName)
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultTTL)
	}

	return rendered, false, nil // Cache miss
}

// Emit is a convenience wrapper that calls EmitWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Emit(ctx context.Context, graph *typegraph.TopLevels, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.EmitWithCacheInfo(ctx, graph, "", opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
