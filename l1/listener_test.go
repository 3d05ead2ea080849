// Copyright (c) 2024 The sequencer-core Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package l1

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/sequencer-core/config"
	"github.com/luxfi/sequencer-core/core/sequencer"
)

type recordingQueue struct {
	pushed []sequencer.ForcedTransaction
}

func (q *recordingQueue) Push(tx sequencer.ForcedTransaction) {
	q.pushed = append(q.pushed, tx)
}

func TestListenerIngestForwardsToQueue(t *testing.T) {
	queue := &recordingQueue{}
	l := NewListener(config.L1Config{}, queue)

	tx := sequencer.ForcedTransaction{Nonce: 1}
	l.Ingest(tx)

	require.Len(t, queue.pushed, 1)
	require.Equal(t, tx, queue.pushed[0])
}

func TestListenerStartBlocksUntilContextCancelled(t *testing.T) {
	queue := &recordingQueue{}
	l := NewListener(config.L1Config{RPCURL: "http://example.invalid"}, queue)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Start(ctx) }()

	select {
	case err := <-errCh:
		t.Fatalf("Start returned early: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}
