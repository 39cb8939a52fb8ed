package index

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/counselit/ai"
	"github.com/poiesic/counselit/core"
	"github.com/poiesic/counselit/storage"
)

// Pipeline builds the searchable document index from college records.
// Embedding is fanned out over a worker pool; the index swap happens only
// after every document has been embedded, so a failed build leaves the
// previously active index untouched.
type Pipeline struct {
	index          storage.DocumentIndex
	embedder       ai.Embedder
	pool           *ants.Pool
	logger         *slog.Logger
	progressWriter io.Writer
	reportInterval int
	maxAttempts    int
	retryDelay     time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithProgress reports embedding progress to writer every reportInterval
// documents. Default is no progress output.
func WithProgress(writer io.Writer, reportInterval int) Option {
	return func(p *Pipeline) error {
		if reportInterval < 1 {
			reportInterval = 1
		}
		p.progressWriter = writer
		p.reportInterval = reportInterval
		return nil
	}
}

// WithEmbedRetry retries failed embedding calls with exponential backoff.
// Default is a single attempt.
func WithEmbedRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new index build pipeline.
func NewPipeline(index storage.DocumentIndex, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		index:       index,
		embedder:    provider.Embedder(),
		pool:        pool,
		logger:      slog.Default().With("component", "index-pipeline"),
		maxAttempts: 1,
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Build converts records to documents, embeds them concurrently, and
// atomically replaces the index contents. Unlike ingestion-style pipelines
// the whole operation is synchronous: callers need the swap to have
// happened before serving searches against the new data.
func (p *Pipeline) Build(ctx context.Context, records ...*core.CollegeRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	p.logger.Info("building document index", "colleges", len(records))

	docs := make([]*core.SearchDocument, len(records))
	for i, record := range records {
		docs[i] = BuildDocument(record)
	}

	var tracker *ProgressTracker
	if p.progressWriter != nil {
		tracker = NewProgressTracker(p.progressWriter, len(docs), p.reportInterval)
		tracker.Start()
	}

	// Fan embedding out over the pool. First error wins; remaining tasks
	// still run but their results are discarded with the failed build.
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		buildErr error
	)
	for _, doc := range docs {
		doc := doc
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			err := retryWithBackoff(ctx, func() error {
				vector, embedErr := p.embedder.EmbedText(ctx, doc.Text)
				if embedErr != nil {
					return embedErr
				}
				doc.Vector = vector
				return nil
			}, p.maxAttempts, p.retryDelay)
			if err != nil {
				errOnce.Do(func() { buildErr = err })
				return
			}
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if submitErr != nil {
			wg.Done()
			errOnce.Do(func() { buildErr = submitErr })
		}
	}
	wg.Wait()

	if tracker != nil && buildErr == nil {
		tracker.Finish()
	}

	if buildErr != nil {
		p.logger.Error("index build failed, keeping previous generation", "err", buildErr)
		return buildErr
	}

	if err := p.index.ReplaceAll(ctx, docs...); err != nil {
		return err
	}

	p.logger.Info("document index built", "documents", len(docs))
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
