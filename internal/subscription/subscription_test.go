package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/gaze-network/tokensale/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishDeliversEverything(t *testing.T) {
	ctx := context.Background()
	ch := make(chan int)
	sub := NewSubscription(ch)
	client := sub.Client()

	go func() {
		for i := 0; i < 20; i++ {
			_ = sub.Send(ctx, i)
		}
		_ = sub.Finish(ctx)
	}()

	var got []int
	for {
		select {
		case v := <-ch:
			got = append(got, v)
			continue
		case <-client.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("timeout")
		}
		break
	}
	assert.Len(t, got, 20)
	assert.Equal(t, 19, got[len(got)-1])
	assert.True(t, client.IsClosed())

	// unsubscribing a finished subscription returns immediately
	require.NoError(t, client.UnsubscribeWithContext(ctx))
	assert.ErrorIs(t, sub.Send(ctx, 1), errs.Closed)
}

func TestUnsubscribe(t *testing.T) {
	ctx := context.Background()
	sub := NewSubscription(make(chan int))

	require.NoError(t, sub.Send(ctx, 1))
	sub.Client().Unsubscribe()
	assert.True(t, sub.IsClosed())
	assert.ErrorIs(t, sub.SendError(ctx, assert.AnError), errs.Closed)
}
