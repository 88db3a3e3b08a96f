package tritone

import (
	"context"
	"errors"
	"sync"
)

// ErrRendererStopped is returned for requests submitted after Run has returned.
var ErrRendererStopped = errors.New("renderer stopped")

// RenderResult is delivered once per submitted request.
type RenderResult struct {
	Seq      uint64
	Gradient Gradient
	PNG      []byte
	Err      error
}

type renderRequest struct {
	seq   uint64
	gr    Gradient
	reply chan RenderResult
}

// Renderer serializes renders of one Source through a single-slot queue where
// the latest request wins. A queued request replaced by a newer one, or an
// in-flight render overtaken by one, completes with ErrSuperseded.
type Renderer struct {
	src  *Source
	slot chan renderRequest

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	stopped bool
}

// NewRenderer creates a renderer for src, call Run to start it.
func NewRenderer(src *Source) *Renderer {
	return &Renderer{
		src:  src,
		slot: make(chan renderRequest, 1),
	}
}

// Submit queues a render and returns a channel receiving exactly one result.
func (r *Renderer) Submit(gr Gradient) <-chan RenderResult {
	reply := make(chan RenderResult, 1)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	req := renderRequest{seq: r.seq, gr: gr, reply: reply}
	if r.stopped {
		reply <- RenderResult{Seq: req.seq, Gradient: gr, Err: ErrRendererStopped}
		return reply
	}

	select {
	case old := <-r.slot:
		old.reply <- RenderResult{Seq: old.seq, Gradient: old.gr, Err: ErrSuperseded}
	default:
	}
	if r.cancel != nil {
		r.cancel()
	}
	// Only Submit sends, under the lock, after draining: this never blocks.
	r.slot <- req

	return reply
}

// Latest returns the sequence number of the most recent request.
func (r *Renderer) Latest() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Run processes requests until ctx is done.
func (r *Renderer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.stop()
			return ctx.Err()
		case req := <-r.slot:
			r.render(ctx, req)
		}
	}
}

func (r *Renderer) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopped = true
	select {
	case req := <-r.slot:
		req.reply <- RenderResult{Seq: req.seq, Gradient: req.gr, Err: ErrRendererStopped}
	default:
	}
}

func (r *Renderer) render(ctx context.Context, req renderRequest) {
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	if req.seq != r.seq {
		r.mu.Unlock()
		req.reply <- RenderResult{Seq: req.seq, Gradient: req.gr, Err: ErrSuperseded}
		return
	}
	r.cancel = cancel
	r.mu.Unlock()

	out, err := r.src.RenderPNG(rctx, req.gr)

	r.mu.Lock()
	stale := req.seq != r.seq
	r.cancel = nil
	r.mu.Unlock()

	if stale {
		out, err = nil, ErrSuperseded
	}
	req.reply <- RenderResult{Seq: req.seq, Gradient: req.gr, PNG: out, Err: err}
}
