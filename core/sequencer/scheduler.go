// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

// Scheduler composes a forced queue drain and a normal pool drain into a
// single ordered sequence: every forced transaction first, in original
// order, followed by the normal transactions ordered by the selected
// policy.
type Scheduler struct {
	policy Policy
}

// NewScheduler returns a Scheduler applying policy to normal
// transactions.
func NewScheduler(policy Policy) *Scheduler {
	return &Scheduler{policy: policy}
}

// PolicyName reports the name of the scheduler's configured policy, used
// to populate BatchMetadata.SchedulingPolicy.
func (s *Scheduler) PolicyName() string {
	return s.policy.Name()
}

// Schedule returns forced (wrapped, in order) followed by normal
// (wrapped, ordered by policy).
func (s *Scheduler) Schedule(forced []ForcedTransaction, normal []UserTransaction) []Transaction {
	ordered := s.policy.Order(normal)

	out := make([]Transaction, 0, len(forced)+len(ordered))
	for _, tx := range forced {
		out = append(out, WrapForced(tx))
	}
	for _, tx := range ordered {
		out = append(out, WrapNormal(tx))
	}
	return out
}
