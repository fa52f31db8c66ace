package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Gappu824/aura-ai-hackathon/internal/config"
	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"github.com/Gappu824/aura-ai-hackathon/internal/logger"
	"github.com/Gappu824/aura-ai-hackathon/internal/reviews"
	"github.com/Gappu824/aura-ai-hackathon/internal/slots"
	"github.com/Gappu824/aura-ai-hackathon/pkg/analysis"
	"github.com/Gappu824/aura-ai-hackathon/pkg/sinks"
)

// ErrUnknownExample is returned for example ids missing from the catalog.
var ErrUnknownExample = errors.New("unknown example")

// PublishTimeout bounds how long a resolution waits on the sinks.
const PublishTimeout = 10 * time.Second

// errEmptyReview is what the input slots show for blank text.
var errEmptyReview = &domain.ValidationError{Reason: "Please enter a review for analysis."}

// Analyzer is the backend surface the console drives.
type Analyzer interface {
	RequestClarityAlert(ctx context.Context, batch domain.ReviewBatch) (domain.ClarityResult, error)
	RequestAuthenticityAnalysis(ctx context.Context, review domain.SingleReview) (domain.AuthenticityResult, error)
}

// Publisher receives every applied slot resolution.
type Publisher interface {
	Publish(ctx context.Context, evt sinks.Event) (int, error)
}

// Option customizes a Console.
type Option func(*Console)

// WithAnalyzer replaces the backend client built from config.
func WithAnalyzer(a Analyzer) Option {
	return func(c *Console) { c.analyzer = a }
}

// WithCatalog replaces the catalog loaded from config.
func WithCatalog(cat reviews.Catalog) Option {
	return func(c *Console) {
		c.catalog = cat
		c.catalogSet = true
	}
}

// WithPublisher replaces the sink fan-out loaded from config.
func WithPublisher(p Publisher) Option {
	return func(c *Console) { c.publisher = p }
}

// Console is the presentation controller behind the web page: it owns the
// review catalog, the user's input text and the slot board.
type Console struct {
	cfg        *config.Config
	log        logger.Logger
	analyzer   Analyzer
	publisher  Publisher
	catalog    reviews.Catalog
	catalogSet bool
	board      *slots.Board

	publishTimeout time.Duration

	mu    sync.RWMutex
	input string

	wg sync.WaitGroup
}

// State is a point-in-time copy of everything the page renders.
type State struct {
	Product           string         `json:"product"`
	Batch             []string       `json:"batch"`
	Input             string         `json:"input"`
	Overall           slots.View     `json:"overall_clarity"`
	InputClarity      slots.View     `json:"input_clarity"`
	InputAuthenticity slots.View     `json:"input_authenticity"`
	Examples          []ExampleState `json:"examples"`
}

// ExampleState pairs a catalog example with its slot.
type ExampleState struct {
	reviews.Example
	View slots.View `json:"view"`
}

// NewConsole builds a console from config. Options take precedence over the
// client, catalog and sinks config would otherwise produce.
func NewConsole(cfg *config.Config, log logger.Logger, opts ...Option) (*Console, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)

	c := &Console{cfg: cfg, log: log, publishTimeout: PublishTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.analyzer == nil {
		c.analyzer = analysis.New(cfg.APIURL,
			analysis.WithLogger(log),
			analysis.WithTimeout(cfg.RequestTimeout),
		)
	}

	if !c.catalogSet {
		cat, err := reviews.LoadOrDefault(cfg.ReviewsFile, reviews.Options{Selector: cfg.ReviewsSelector})
		if err != nil {
			return nil, fmt.Errorf("load reviews catalog: %w", err)
		}
		c.catalog = cat
	}

	if c.publisher == nil {
		fanout, err := sinks.LoadFanout(context.Background(), cfg.SinksFile, log)
		if err != nil {
			return nil, fmt.Errorf("load sinks: %w", err)
		}
		c.publisher = fanout
		log.InfoObj("sinks loaded", "sinks_count", fanout.Size())
	}

	ids := []slots.ID{slots.OverallClarity, slots.InputClarity, slots.InputAuthenticity}
	for _, ex := range c.catalog.Examples {
		ids = append(ids, slots.Example(ex.ID))
	}
	c.board = slots.NewBoard(ids...)

	log.InfoObj("console ready", "console_state", map[string]any{
		"product":        c.catalog.Product,
		"batch_size":     len(c.catalog.Batch),
		"examples_count": len(c.catalog.Examples),
	})
	return c, nil
}

// Catalog returns the reviews the console was built with.
func (c *Console) Catalog() reviews.Catalog { return c.catalog }

// Start kicks off the catalog clarity analysis in the background, the way a
// page load does. The slot is loading by the time Start returns.
func (c *Console) Start(ctx context.Context) {
	ticket := c.board.Begin(slots.OverallClarity)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_, _ = c.runClarity(ctx, ticket, c.catalog.BatchReviews())
	}()
}

// Wait blocks until background analyses started by Start have resolved.
func (c *Console) Wait() { c.wg.Wait() }

// RefreshOverall re-runs the catalog clarity analysis and returns the slot.
func (c *Console) RefreshOverall(ctx context.Context) slots.View {
	ticket := c.board.Begin(slots.OverallClarity)
	view, _ := c.runClarity(ctx, ticket, c.catalog.BatchReviews())
	return view
}

// AnalyzeExample runs the authenticity analysis for a catalog example.
func (c *Console) AnalyzeExample(ctx context.Context, exampleID string) (slots.View, error) {
	ex, ok := c.catalog.ExampleByID(exampleID)
	if !ok {
		return slots.View{}, fmt.Errorf("%w: %q", ErrUnknownExample, exampleID)
	}
	ticket := c.board.Begin(slots.Example(ex.ID))
	return c.runAuthenticity(ctx, ticket, domain.SingleReview(ex.Text))
}

// SetInput stores the user's review text and clears both input slots.
func (c *Console) SetInput(text string) {
	c.mu.Lock()
	c.input = text
	c.mu.Unlock()
	c.board.Reset(slots.InputClarity, slots.InputAuthenticity)
}

// Input returns the stored user text.
func (c *Console) Input() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.input
}

// AnalyzeInput runs the authenticity analysis on the stored text. Blank text
// fails the slot locally and returns a validation error.
func (c *Console) AnalyzeInput(ctx context.Context) (slots.View, error) {
	review, err := c.beginInput(slots.InputAuthenticity)
	if err != nil {
		return c.board.Get(slots.InputAuthenticity), err
	}
	ticket := c.board.Begin(slots.InputAuthenticity)
	return c.runAuthenticity(ctx, ticket, review)
}

// ClarifyInput runs the clarity analysis on the stored text as a batch of one.
func (c *Console) ClarifyInput(ctx context.Context) (slots.View, error) {
	review, err := c.beginInput(slots.InputClarity)
	if err != nil {
		return c.board.Get(slots.InputClarity), err
	}
	ticket := c.board.Begin(slots.InputClarity)
	return c.runClarity(ctx, ticket, domain.ReviewBatch{string(review)})
}

// beginInput clears the results shown in both input slots and validates the
// stored text, failing the target slot when it is blank. Requests already in
// flight are kept; whichever resolves last is what its slot shows.
func (c *Console) beginInput(target slots.ID) (domain.SingleReview, error) {
	c.board.Clear(slots.InputClarity, slots.InputAuthenticity)

	review := domain.SingleReview(c.Input())
	if err := review.Validate(); err != nil {
		c.board.Reject(target, errEmptyReview)
		c.publish(context.Background(), sinks.FailureEvent(string(target), operationFor(target), errEmptyReview))
		return "", errEmptyReview
	}
	return review, nil
}

// Snapshot returns the current page state.
func (c *Console) Snapshot() State {
	st := State{
		Product:           c.catalog.Product,
		Batch:             append([]string(nil), c.catalog.Batch...),
		Input:             c.Input(),
		Overall:           c.board.Get(slots.OverallClarity),
		InputClarity:      c.board.Get(slots.InputClarity),
		InputAuthenticity: c.board.Get(slots.InputAuthenticity),
	}
	for _, ex := range c.catalog.Examples {
		st.Examples = append(st.Examples, ExampleState{Example: ex, View: c.board.Get(slots.Example(ex.ID))})
	}
	return st
}

// Close waits for background work and releases sink clients.
func (c *Console) Close() error {
	c.wg.Wait()
	if closer, ok := c.publisher.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Console) runClarity(ctx context.Context, ticket slots.Ticket, batch domain.ReviewBatch) (slots.View, error) {
	start := time.Now()
	res, err := c.analyzer.RequestClarityAlert(ctx, batch)
	id := ticket.Slot()
	if err != nil {
		if c.board.Fail(ticket, err) {
			c.publish(ctx, sinks.FailureEvent(string(id), sinks.OperationClarity, err))
		}
		c.logResolution(id, start, err)
		return c.board.Get(id), err
	}
	if c.board.ResolveClarity(ticket, res) {
		c.publish(ctx, sinks.ClarityEvent(string(id), res))
	}
	c.logResolution(id, start, nil)
	return c.board.Get(id), nil
}

func (c *Console) runAuthenticity(ctx context.Context, ticket slots.Ticket, review domain.SingleReview) (slots.View, error) {
	start := time.Now()
	res, err := c.analyzer.RequestAuthenticityAnalysis(ctx, review)
	id := ticket.Slot()
	if err != nil {
		if c.board.Fail(ticket, err) {
			c.publish(ctx, sinks.FailureEvent(string(id), sinks.OperationAuthenticity, err))
		}
		c.logResolution(id, start, err)
		return c.board.Get(id), err
	}
	if c.board.ResolveAuthenticity(ticket, res) {
		c.publish(ctx, sinks.AuthenticityEvent(string(id), res))
	}
	c.logResolution(id, start, nil)
	return c.board.Get(id), nil
}

// publish hands evt to the sinks, giving up after publishTimeout. Sink
// failures are logged only.
func (c *Console) publish(ctx context.Context, evt sinks.Event) {
	if c.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.publishTimeout)
	defer cancel()
	if _, err := c.publisher.Publish(ctx, evt); err != nil {
		c.log.WarnObj("sink publish failed", "sink_error", map[string]any{
			"slot":  evt.Slot,
			"error": err.Error(),
		})
	}
}

func (c *Console) logResolution(id slots.ID, start time.Time, err error) {
	meta := map[string]any{
		"slot":       string(id),
		"elapsed_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		meta["error"] = err.Error()
		c.log.WarnObj("analysis failed", "analysis", meta)
		return
	}
	c.log.InfoObj("analysis resolved", "analysis", meta)
}

func operationFor(id slots.ID) string {
	if id == slots.OverallClarity || id == slots.InputClarity {
		return sinks.OperationClarity
	}
	return sinks.OperationAuthenticity
}
