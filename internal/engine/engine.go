// Package engine executes operations and maintains undo/redo history.
//
// The engine is the single gateway to the scene graph: every structural edit
// goes through Invoke or InvokeAndPush, and history replay goes through Undo
// and Redo.
//
// SERIALIZATION: one mutex spans every Perform, Undo and Redo call. An
// operation's Perform may suspend (e.g. while an asset is fetched before a
// node attaches); no second call may start mutating the shared identifier and
// group maps while a prior call is suspended, and the mutex makes that
// guarantee structural rather than an accident of the host's scheduling.
package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/roach88/stagehand/internal/ops"
)

// RecordKind distinguishes journal records.
type RecordKind string

const (
	RecordPush RecordKind = "push"
	RecordUndo RecordKind = "undo"
	RecordRedo RecordKind = "redo"
)

// Record is the plain-data form of a history event, serializable for
// diagnostics. The journal never replays records into the graph.
type Record struct {
	Seq     int64
	Kind    RecordKind
	Op      string
	Label   string
	Payload []byte
}

// Journal receives history records. Implemented by the sqlite journal;
// a nil journal disables recording.
type Journal interface {
	Record(ctx context.Context, rec Record) error
}

// entry is one committed operation on the history stacks.
type entry struct {
	seq    int64
	op     string
	commit *ops.Commit
}

// Engine executes operations against a fixed Env and keeps the two history
// stacks. Pushing a new commit clears the redo stack; the redo stack is only
// ever non-empty immediately after an undo with no intervening new mutation.
type Engine struct {
	env     *ops.Env
	clock   *Clock
	journal Journal
	log     *slog.Logger

	mu chan struct{} // capacity-1 semaphore; see lock()

	// stackMu guards the two history stacks. It is never held across a
	// Perform or commit closure, so read-only queries (CanUndo, CanRedo,
	// UndoLabels) stay responsive while a Perform is suspended.
	stackMu   sync.Mutex
	undoStack []entry
	redoStack []entry
}

// Option configures an Engine.
type Option func(*Engine)

// WithJournal attaches a history journal.
func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// WithLogger overrides the default slog logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine bound to env.
func New(env *ops.Env, opts ...Option) *Engine {
	e := &Engine{
		env:   env,
		clock: NewClock(),
		log:   slog.Default(),
		mu:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// lock acquires the serialization semaphore, honoring context cancellation
// for callers queued behind a suspended Perform.
func (e *Engine) lock(ctx context.Context) error {
	select {
	case e.mu <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) unlock() { <-e.mu }

// Invoke executes op without touching history. Used when a caller wants the
// side effect but explicitly no undo entry (e.g. transient UI-flag toggles).
func (e *Engine) Invoke(ctx context.Context, op ops.Operation) (ops.Result, error) {
	if err := e.lock(ctx); err != nil {
		return ops.Result{}, err
	}
	defer e.unlock()
	return op.Perform(ctx, e.env)
}

// InvokeAndPush executes op and, if it mutated and produced a commit, pushes
// the commit onto the undo stack and clears the redo stack. Returns whether
// a mutation occurred.
//
// A Perform error propagates unchanged with no history entry; operations
// guarantee the graph is untouched in that case.
func (e *Engine) InvokeAndPush(ctx context.Context, op ops.Operation) (bool, error) {
	if err := e.lock(ctx); err != nil {
		return false, err
	}
	defer e.unlock()

	res, err := op.Perform(ctx, e.env)
	if err != nil {
		e.log.Error("operation failed", "op", op.Name(), "error", err)
		return false, err
	}
	if !res.DidMutate || res.Commit == nil {
		e.log.Debug("operation was a no-op", "op", op.Name())
		return false, nil
	}

	ent := entry{seq: e.clock.Next(), op: op.Name(), commit: res.Commit}
	e.stackMu.Lock()
	e.undoStack = append(e.undoStack, ent)
	e.redoStack = nil
	e.stackMu.Unlock()
	e.record(ctx, RecordPush, ent, op)

	e.log.Info("operation committed",
		"op", op.Name(),
		"label", res.Commit.Label,
		"seq", ent.seq,
		"depth", len(e.undoStack),
	)
	return true, nil
}

// Undo pops the top undo entry, runs its undo closure and moves the entry to
// the redo stack. Returns false when the undo stack is empty.
func (e *Engine) Undo(ctx context.Context) (bool, error) {
	if err := e.lock(ctx); err != nil {
		return false, err
	}
	defer e.unlock()

	e.stackMu.Lock()
	if len(e.undoStack) == 0 {
		e.stackMu.Unlock()
		return false, nil
	}
	ent := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.stackMu.Unlock()

	if err := ent.commit.Undo(ctx); err != nil {
		// The edit may have partially reverted; keep the entry on the undo
		// stack so the caller can inspect rather than silently lose it.
		e.stackMu.Lock()
		e.undoStack = append(e.undoStack, ent)
		e.stackMu.Unlock()
		return false, err
	}
	e.stackMu.Lock()
	e.redoStack = append(e.redoStack, ent)
	e.stackMu.Unlock()
	e.record(ctx, RecordUndo, ent, nil)
	e.log.Info("undone", "label", ent.commit.Label, "seq", ent.seq)
	return true, nil
}

// Redo pops the top redo entry, runs its redo closure and moves the entry
// back to the undo stack. Returns false when the redo stack is empty.
func (e *Engine) Redo(ctx context.Context) (bool, error) {
	if err := e.lock(ctx); err != nil {
		return false, err
	}
	defer e.unlock()

	e.stackMu.Lock()
	if len(e.redoStack) == 0 {
		e.stackMu.Unlock()
		return false, nil
	}
	ent := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.stackMu.Unlock()

	if err := ent.commit.Redo(ctx); err != nil {
		e.stackMu.Lock()
		e.redoStack = append(e.redoStack, ent)
		e.stackMu.Unlock()
		return false, err
	}
	e.stackMu.Lock()
	e.undoStack = append(e.undoStack, ent)
	e.stackMu.Unlock()
	e.record(ctx, RecordRedo, ent, nil)
	e.log.Info("redone", "label", ent.commit.Label, "seq", ent.seq)
	return true, nil
}

// CanUndo reports whether the undo stack is non-empty. Safe to call while a
// Perform is suspended.
func (e *Engine) CanUndo() bool {
	e.stackMu.Lock()
	defer e.stackMu.Unlock()
	return len(e.undoStack) > 0
}

// CanRedo reports whether the redo stack is non-empty. Safe to call while a
// Perform is suspended.
func (e *Engine) CanRedo() bool {
	e.stackMu.Lock()
	defer e.stackMu.Unlock()
	return len(e.redoStack) > 0
}

// UndoLabels returns the undo stack labels, most recent first. For menus;
// safe to call while a Perform is suspended.
func (e *Engine) UndoLabels() []string {
	e.stackMu.Lock()
	defer e.stackMu.Unlock()
	labels := make([]string, 0, len(e.undoStack))
	for i := len(e.undoStack) - 1; i >= 0; i-- {
		labels = append(labels, e.undoStack[i].commit.Label)
	}
	return labels
}

// Env returns the engine's bound environment.
func (e *Engine) Env() *ops.Env { return e.env }

// record journals a history event. Journal failures are logged and dropped:
// diagnostics must never block or roll back an already-applied edit.
func (e *Engine) record(ctx context.Context, kind RecordKind, ent entry, op ops.Operation) {
	if e.journal == nil {
		return
	}
	rec := Record{
		Seq:   ent.seq,
		Kind:  kind,
		Op:    ent.op,
		Label: ent.commit.Label,
	}
	if op != nil {
		if payload, err := json.Marshal(op); err == nil {
			rec.Payload = payload
		}
	}
	if err := e.journal.Record(ctx, rec); err != nil {
		e.log.Warn("journal write failed", "kind", kind, "seq", ent.seq, "error", err)
	}
}
