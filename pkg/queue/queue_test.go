package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/jzx17/gothreadpool/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestQueue_FIFO(t *testing.T) {
	q := New[int]()

	for i := 0; i < 10; i++ {
		require.NoError(t, q.Push(i))
	}
	assert.Equal(t, 10, q.Len())

	for i := 0; i < 10; i++ {
		item, draining, ok := q.Pop()
		require.True(t, ok)
		assert.False(t, draining)
		assert.Equal(t, i, item)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_PopBlocksUntilPush(t *testing.T) {
	q := New[string]()

	var got string
	done := testutils.RunWithin(func() {
		got, _, _ = q.Pop()
	})

	testutils.AssertOpen(t, done, 20*time.Millisecond, "Pop must block on an empty queue")

	require.NoError(t, q.Push("hello"))
	testutils.RequireClosed(t, done, testutils.DefaultTimeout)
	assert.Equal(t, "hello", got)
}

func TestQueue_CloseWakesAllWaiters(t *testing.T) {
	q := New[int]()

	const waiters = 5
	var wg sync.WaitGroup
	results := make([]bool, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, _, ok := q.Pop()
			results[idx] = ok
		}(i)
	}

	time.Sleep(10 * time.Millisecond)
	assert.True(t, q.Close())

	done := testutils.RunWithin(wg.Wait)
	testutils.RequireClosed(t, done, testutils.DefaultTimeout)

	for i, ok := range results {
		assert.False(t, ok, "waiter %d should see termination", i)
	}
}

func TestQueue_PushAfterClose(t *testing.T) {
	q := New[int]()
	require.NoError(t, q.Push(1))

	assert.True(t, q.Close())
	assert.False(t, q.Close(), "second Close is a no-op")
	assert.True(t, q.Closed())

	err := q.Push(2)
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 1, q.Len(), "rejected push must not modify the queue")
}

func TestQueue_DrainAfterClose(t *testing.T) {
	q := New[int]()
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Push(i))
	}
	q.Close()

	for i := 0; i < 3; i++ {
		item, draining, ok := q.Pop()
		require.True(t, ok)
		assert.True(t, draining)
		assert.Equal(t, i, item)
	}

	_, _, ok := q.Pop()
	assert.False(t, ok)
}

func TestQueue_ConcurrentProducersConsumers(t *testing.T) {
	q := New[int]()

	const (
		producers   = 8
		perProducer = 500
		consumers   = 4
	)

	seen := make([][]int, consumers)
	var cg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		cg.Add(1)
		go func(idx int) {
			defer cg.Done()
			for {
				item, _, ok := q.Pop()
				if !ok {
					return
				}
				seen[idx] = append(seen[idx], item)
			}
		}(c)
	}

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		base := p * perProducer
		g.Go(func() error {
			for i := 0; i < perProducer; i++ {
				if err := q.Push(base + i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	q.Close()
	testutils.RequireClosed(t, testutils.RunWithin(cg.Wait), testutils.DefaultTimeout)

	counts := make(map[int]int, producers*perProducer)
	for _, items := range seen {
		for _, item := range items {
			counts[item]++
		}
	}

	assert.Len(t, counts, producers*perProducer, "no item may be lost")
	for item, n := range counts {
		assert.Equal(t, 1, n, "item %d delivered more than once", item)
	}
}

func TestQueue_EachConsumerSeesIncreasingOrder(t *testing.T) {
	q := New[int]()

	const total = 2000
	for i := 0; i < total; i++ {
		require.NoError(t, q.Push(i))
	}
	q.Close()

	const consumers = 4
	seen := make([][]int, consumers)
	var wg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for {
				item, _, ok := q.Pop()
				if !ok {
					return
				}
				seen[idx] = append(seen[idx], item)
			}
		}(c)
	}
	wg.Wait()

	sum := 0
	for idx, items := range seen {
		sum += len(items)
		for i := 1; i < len(items); i++ {
			assert.Less(t, items[i-1], items[i], "consumer %d dequeued out of order", idx)
		}
	}
	assert.Equal(t, total, sum)
}
