// Package news runs one aggregation request: warm up the model, fetch
// headlines, summarize every article concurrently and join the cards.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/deusflow/newshub/internal/article"
	"github.com/deusflow/newshub/internal/llm"
	"github.com/deusflow/newshub/internal/logger"
	"github.com/deusflow/newshub/internal/metrics"
)

const DefaultPageSize = 15

// Source returns headline records for a category.
type Source interface {
	TopHeadlines(ctx context.Context, category string, pageSize int) ([]article.Record, error)
}

// Processor renders one record; it must not fail.
type Processor interface {
	Process(ctx context.Context, rec article.Record, language string) string
}

type Aggregator struct {
	source    Source
	processor Processor
	warmup    llm.Client
	pageSize  int
}

// NewAggregator wires the pipeline. warmup may be nil to skip the warm-up call.
func NewAggregator(source Source, processor Processor, warmup llm.Client, pageSize int) *Aggregator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Aggregator{
		source:    source,
		processor: processor,
		warmup:    warmup,
		pageSize:  pageSize,
	}
}

// AggregateForUI is the entry point for the web UI and CLI.
func (a *Aggregator) AggregateForUI(ctx context.Context, category, language string) string {
	if strings.TrimSpace(category) == "" || strings.TrimSpace(language) == "" {
		return MsgSelectInput
	}
	return a.Aggregate(ctx, category, language)
}

// Aggregate returns the concatenated cards for category in language, or a
// user-facing message. It never panics and never returns raw errors.
func (a *Aggregator) Aggregate(ctx context.Context, category, language string) (out string) {
	log := logger.With("request_id", uuid.NewString(), "category", category, "language", language)
	start := time.Now()
	metrics.Global.IncrementAggregations()

	defer func() {
		if r := recover(); r != nil {
			metrics.Global.SetError(fmt.Sprint(r))
			log.Error("Error in news aggregation", "panic", r, "stack", string(debug.Stack()))
			out = MsgTechnicalIssue
		}
	}()

	a.warmUp(ctx, log)

	log.Info("Fetching headlines")
	records, err := a.source.TopHeadlines(ctx, category, a.pageSize)
	if err != nil {
		metrics.Global.IncrementFetchErrors()
		metrics.Global.SetError(err.Error())
		log.Error("Error fetching headlines", "error", err)
		records = nil
	}
	if len(records) == 0 {
		return MsgNoArticles
	}

	log.Info("Processing articles", "articles", len(records))
	cards := a.processAll(ctx, records, language)
	if len(cards) == 0 {
		return MsgProcessingFail
	}

	elapsed := time.Since(start)
	metrics.Global.RecordProcessingTime(elapsed)
	metrics.Global.SetLastRun()
	log.Info("Successfully processed articles", "articles", len(cards), "elapsed", elapsed)
	return strings.Join(cards, "")
}

// processAll runs one goroutine per record and waits for all of them. Cards
// land in the slot of their record, so the output keeps the fetch order.
func (a *Aggregator) processAll(ctx context.Context, records []article.Record, language string) []string {
	cards := make([]string, len(records))
	var g errgroup.Group

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Panic in article worker", "index", i, "panic", r)
					cards[i] = article.ErrorCard(article.ProcessingError(fmt.Errorf("%v", r)))
				}
			}()
			cards[i] = a.processor.Process(ctx, rec, language)
			return nil
		})
	}
	_ = g.Wait()

	return cards
}

func (a *Aggregator) warmUp(ctx context.Context, log *slog.Logger) {
	if a.warmup == nil {
		return
	}
	if err := llm.WarmUp(ctx, a.warmup); err != nil {
		log.Error("Failed to warm up LLM connection", "error", err)
		return
	}
	log.Info("LLM connection warmed up successfully")
}
