package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wadhifa/internal/queue"
)

func TestInProcessPublishConsume(t *testing.T) {
	q := queue.NewInProcess(4)

	got := make(chan queue.ScoringJob, 4)
	require.NoError(t, q.Consume(func(job queue.ScoringJob) {
		got <- job
	}))

	require.NoError(t, q.Publish(context.Background(), queue.ScoringJob{ApplicationID: 7}))

	select {
	case job := <-got:
		require.Equal(t, 7, job.ApplicationID)
	case <-time.After(time.Second):
		t.Fatal("job was not consumed")
	}
}

func TestInProcessPublishFullBuffer(t *testing.T) {
	q := queue.NewInProcess(1)

	// No consumer: second publish must fail instead of blocking intake.
	require.NoError(t, q.Publish(context.Background(), queue.ScoringJob{ApplicationID: 1}))
	err := q.Publish(context.Background(), queue.ScoringJob{ApplicationID: 2})
	require.Error(t, err)
}
