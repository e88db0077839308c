package meridian

import "time"

// DefaultLockTimeout is the commit-lock deadline applied when a
// TransactionManager is constructed with NewTransactionManager. The lock
// timeout always wins: a slow or buggy client cannot stall the round.
const DefaultLockTimeout = 200 * time.Millisecond

// TransactionManager is the single process-wide coordinator that promotes
// every dirty entity's pending state into committed, then current, in one
// atomic round. It exposes four signals in order — BeforeCommit, Commit,
// Apply, AfterApply — plus a commit-lock counter that entities needing a
// client round-trip (an XDG configure ack) can hold to delay the round's
// Apply phase.
//
// A real event-loop integration drives RunQueued from its idle callback
// and binds the lock-timeout deadline to its own timer source; the
// time.AfterFunc used here is a standalone stand-in for that binding.
type TransactionManager struct {
	BeforeCommit Signal[struct{}]
	Commit       Signal[struct{}]
	Apply        Signal[struct{}]
	AfterApply   Signal[struct{}]

	// LockTimeout bounds how long Apply waits for outstanding commit locks
	// to release before proceeding regardless.
	LockTimeout time.Duration

	queued  bool
	pending bool
	locks   int
	timer   *time.Timer
}

// NewTransactionManager constructs a manager with the default lock timeout.
func NewTransactionManager() *TransactionManager {
	return &TransactionManager{LockTimeout: DefaultLockTimeout}
}

// EnsureQueued schedules one flush on the next idle tick if no flush is
// already queued. Idempotent. A call made while a round is in progress
// queues the next round, which RunQueued starts once the current one has
// applied.
func (tm *TransactionManager) EnsureQueued() {
	if tm.queued {
		return
	}
	tm.queued = true
}

// RunQueued executes one full round if one is queued and none is already
// in progress: it emits BeforeCommit then Commit, then waits (via the lock
// counter) before Apply/AfterApply. No-op if nothing is queued.
func (tm *TransactionManager) RunQueued() {
	if !tm.queued || tm.pending {
		return
	}
	tm.queued = false
	tm.pending = true
	tm.BeforeCommit.Emit(struct{}{})
	tm.Commit.Emit(struct{}{})
	tm.checkLocks()
}

// AcquireCommitLock increments the outstanding-lock counter. Call during a
// Commit listener when the entity requires a client acknowledgement before
// the round may apply.
func (tm *TransactionManager) AcquireCommitLock() {
	tm.locks++
}

// ReleaseCommitLock decrements the outstanding-lock counter, completing
// the round immediately if it was the last one and a round is pending.
func (tm *TransactionManager) ReleaseCommitLock() {
	if tm.locks > 0 {
		tm.locks--
	}
	tm.checkLocks()
}

// PendingLocks reports the number of outstanding commit locks in the
// in-progress round.
func (tm *TransactionManager) PendingLocks() int {
	return tm.locks
}

// InProgress reports whether a round has started (Commit emitted) but not
// yet applied.
func (tm *TransactionManager) InProgress() bool {
	return tm.pending
}

func (tm *TransactionManager) checkLocks() {
	if !tm.pending {
		return
	}
	if tm.locks == 0 {
		tm.completeRound()
		return
	}
	if tm.timer == nil {
		tm.timer = time.AfterFunc(tm.LockTimeout, tm.onDeadline)
	}
}

func (tm *TransactionManager) onDeadline() {
	if !tm.pending {
		return
	}
	// A late acknowledgement does not re-open the round: apply regardless,
	// leaving any window with an outstanding configure to render its saved
	// buffer until a future round catches up.
	tm.completeRound()
}

func (tm *TransactionManager) completeRound() {
	if tm.timer != nil {
		tm.timer.Stop()
		tm.timer = nil
	}
	tm.locks = 0
	tm.pending = false
	tm.Apply.Emit(struct{}{})
	tm.AfterApply.Emit(struct{}{})
}

// ForceDeadline immediately expires the in-progress round's lock-timeout
// wait, as if LockTimeout had elapsed. Exposed for tests that exercise the
// "configure never acknowledged" path without a real sleep.
func (tm *TransactionManager) ForceDeadline() {
	tm.onDeadline()
}
