package meridian

import "testing"

func TestTransactionOrderingAcrossListeners(t *testing.T) {
	tm := NewTransactionManager()
	var order []string

	tm.Commit.Connect(func(struct{}) { order = append(order, "A.commit") })
	tm.Apply.Connect(func(struct{}) { order = append(order, "A.apply") })
	tm.Commit.Connect(func(struct{}) { order = append(order, "B.commit") })
	tm.Apply.Connect(func(struct{}) { order = append(order, "B.apply") })

	tm.EnsureQueued()
	tm.RunQueued()

	want := []string{"A.commit", "B.commit", "A.apply", "B.apply"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestTransactionPhaseOrderWithBeforeCommitAndAfterApply(t *testing.T) {
	tm := NewTransactionManager()
	var order []string
	tm.BeforeCommit.Connect(func(struct{}) { order = append(order, "before_commit") })
	tm.Commit.Connect(func(struct{}) { order = append(order, "commit") })
	tm.Apply.Connect(func(struct{}) { order = append(order, "apply") })
	tm.AfterApply.Connect(func(struct{}) { order = append(order, "after_apply") })

	tm.EnsureQueued()
	tm.RunQueued()

	want := []string{"before_commit", "commit", "apply", "after_apply"}
	for i, w := range want {
		if order[i] != w {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestTransactionEnsureQueuedIsIdempotent(t *testing.T) {
	tm := NewTransactionManager()
	var commits int
	tm.Commit.Connect(func(struct{}) { commits++ })

	tm.EnsureQueued()
	tm.EnsureQueued()
	tm.EnsureQueued()
	tm.RunQueued()

	if commits != 1 {
		t.Fatalf("expected exactly one commit emission for three EnsureQueued calls, got %d", commits)
	}
}

func TestTransactionWaitsForCommitLockThenApplies(t *testing.T) {
	tm := NewTransactionManager()
	applied := false
	tm.Commit.Connect(func(struct{}) { tm.AcquireCommitLock() })
	tm.Apply.Connect(func(struct{}) { applied = true })

	tm.EnsureQueued()
	tm.RunQueued()

	if applied {
		t.Fatal("expected apply to wait while a commit lock is outstanding")
	}
	if tm.PendingLocks() != 1 {
		t.Fatalf("expected 1 pending lock, got %d", tm.PendingLocks())
	}

	tm.ReleaseCommitLock()

	if !applied {
		t.Fatal("expected apply to run once the last lock releases")
	}
	if tm.InProgress() {
		t.Fatal("expected round to be complete after apply/after_apply")
	}
}

func TestTransactionForceDeadlineAppliesRegardlessOfLock(t *testing.T) {
	tm := NewTransactionManager()
	applied := false
	tm.Commit.Connect(func(struct{}) { tm.AcquireCommitLock() })
	tm.Apply.Connect(func(struct{}) { applied = true })

	tm.EnsureQueued()
	tm.RunQueued()
	tm.ForceDeadline()

	if !applied {
		t.Fatal("expected the forced deadline to apply the round despite the outstanding lock")
	}

	// A late release after the deadline must not panic or double-apply.
	tm.ReleaseCommitLock()
}

func TestTransactionNewDirtyDuringRoundWaitsForNextRound(t *testing.T) {
	tm := NewTransactionManager()
	var applyCount int
	tm.Commit.Connect(func(struct{}) { tm.AcquireCommitLock() })
	tm.Apply.Connect(func(struct{}) { applyCount++ })

	tm.EnsureQueued()
	tm.RunQueued()

	// A new round queued while the first is still in progress must not run
	// until the in-progress round completes.
	tm.EnsureQueued()
	tm.RunQueued()
	if applyCount != 0 {
		t.Fatalf("expected the second round to be blocked while the first is pending, got applyCount=%d", applyCount)
	}

	tm.ReleaseCommitLock()
	if applyCount != 1 {
		t.Fatalf("expected exactly one apply for the first round, got %d", applyCount)
	}

	tm.RunQueued()
	if applyCount != 2 {
		t.Fatalf("expected the queued second round to now run, got applyCount=%d", applyCount)
	}
}
