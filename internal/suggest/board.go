package suggest

import (
	"context"
	"sync"
	"time"
)

// Snapshot is the persisted form of a Board.
type Snapshot struct {
	Guess     string    `json:"guess"`
	Text      string    `json:"text"`
	Failed    bool      `json:"failed"`
	Sequence  uint64    `json:"sequence"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Board is an output region shared by concurrent requests. Only the most
// recently started request may write to it; older ones are cancelled and
// their results discarded.
type Board struct {
	mu        sync.Mutex
	seq       uint64
	committed uint64
	cancel    context.CancelFunc
	guess     string
	text      string
	failed    bool
	updatedAt time.Time
}

// NewBoard returns an empty Board.
func NewBoard() *Board {
	return &Board{}
}

// Begin starts a request, cancelling any request still in flight. The
// returned context is cancelled when a newer request begins or when the
// returned cancel func is called.
func (b *Board) Begin(ctx context.Context) (context.Context, uint64, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
	b.seq++
	b.cancel = cancel
	return ctx, b.seq, cancel
}

// Commit renders res into the board if seq is the newest request.
// It returns false when the result is stale.
func (b *Board) Commit(seq uint64, guess string, res Result) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq || seq <= b.committed {
		return false
	}
	b.committed = seq
	b.guess = guess
	b.text = Render(res)
	b.failed = !res.OK()
	b.updatedAt = time.Now()
	b.cancel = nil
	return true
}

// Run requests suggestions for guess and commits the result. It reports
// whether the result reached the board.
func (b *Board) Run(ctx context.Context, r *Requester, guess string) (Result, bool) {
	ctx, seq, cancel := b.Begin(ctx)
	defer cancel()
	res := r.Request(ctx, guess)
	return res, b.Commit(seq, guess, res)
}

// SetText overwrites the board text directly, making Board a Display.
func (b *Board) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	b.failed = text == ServerErrorText
	b.updatedAt = time.Now()
}

// Text returns the current output text.
func (b *Board) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// Failed reports whether the last committed result was a failure.
func (b *Board) Failed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failed
}

// Guess returns the guess behind the current text.
func (b *Board) Guess() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.guess
}

// Sequence returns the number of the newest request started.
func (b *Board) Sequence() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// Reset cancels any in-flight request and clears the board. Results of
// requests started before the reset are discarded.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.seq++
	b.committed = b.seq
	b.guess = ""
	b.text = ""
	b.failed = false
	b.updatedAt = time.Now()
}

// Snapshot returns a copy of the board state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Guess:     b.guess,
		Text:      b.text,
		Failed:    b.failed,
		Sequence:  b.seq,
		UpdatedAt: b.updatedAt,
	}
}

// Restore loads a snapshot into an idle board.
func (b *Board) Restore(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.seq = s.Sequence
	b.committed = s.Sequence
	b.guess = s.Guess
	b.text = s.Text
	b.failed = s.Failed
	b.updatedAt = s.UpdatedAt
}
