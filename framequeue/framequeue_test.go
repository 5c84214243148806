package framequeue_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e7canasta/camsim/framequeue"
)

func newFrame(id int64) *framequeue.Frame {
	return &framequeue.Frame{ID: id, Timestamp: time.Now()}
}

func TestNewRejectsInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		_, err := framequeue.New(capacity)
		assert.ErrorIs(t, err, framequeue.ErrInvalidCapacity, "capacity %d", capacity)
	}
}

// TestDropOldest validates the eviction law: pushing into a full queue
// evicts the current front frame, and the evicted frame is returned to
// the caller and never seen by a consumer.
//
// Scenario: capacity=2, push frames 1,2,3 with no pops between.
// Expected: queue contains [2,3], frame 1 reported dropped.
func TestDropOldest(t *testing.T) {
	q, err := framequeue.New(2)
	require.NoError(t, err)

	require.Nil(t, q.Push(newFrame(1)))
	require.Nil(t, q.Push(newFrame(2)))

	evicted := q.Push(newFrame(3))
	require.NotNil(t, evicted)
	assert.Equal(t, int64(1), evicted.ID)

	assert.Equal(t, 2, q.Size())

	first, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(2), first.ID)

	second, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(3), second.ID)

	stats := q.Stats()
	assert.Equal(t, uint64(3), stats.Pushed)
	assert.Equal(t, uint64(1), stats.Dropped)
}

// TestCapacityInvariant validates size <= capacity after every push.
func TestCapacityInvariant(t *testing.T) {
	const capacity = 5
	q, err := framequeue.New(capacity)
	require.NoError(t, err)

	for i := int64(0); i < 100; i++ {
		q.Push(newFrame(i))
		require.LessOrEqual(t, q.Size(), capacity, "after push %d", i)
	}
	assert.Equal(t, capacity, q.Size())
	assert.Equal(t, capacity, q.Stats().HighWater)
}

// TestFIFOAmongSurvivors validates that frames that are not evicted are
// delivered in push order.
func TestFIFOAmongSurvivors(t *testing.T) {
	q, err := framequeue.New(3)
	require.NoError(t, err)

	// Push 0..9; capacity 3 keeps the last three.
	for i := int64(0); i < 10; i++ {
		q.Push(newFrame(i))
	}

	var got []int64
	for {
		f, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, f.ID)
	}
	assert.Equal(t, []int64{7, 8, 9}, got)
}

// TestEmptyQueueSentinels validates Pop/Front on an empty queue never
// crash and report an absent frame.
func TestEmptyQueueSentinels(t *testing.T) {
	q, err := framequeue.New(4)
	require.NoError(t, err)

	f, ok := q.Pop()
	assert.Nil(t, f)
	assert.False(t, ok)

	f, ok = q.Front()
	assert.Nil(t, f)
	assert.False(t, ok)

	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Size())
}

func TestFrontDoesNotRemove(t *testing.T) {
	q, err := framequeue.New(4)
	require.NoError(t, err)

	q.Push(newFrame(42))

	f, ok := q.Front()
	require.True(t, ok)
	assert.Equal(t, int64(42), f.ID)
	assert.Equal(t, 1, q.Size())

	f, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(42), f.ID)
	assert.Equal(t, 0, q.Size())
}

// TestTakeBlocksUntilPush validates the consumer wait/wake protocol:
// Take parks on an empty queue and wakes when a frame arrives.
func TestTakeBlocksUntilPush(t *testing.T) {
	q, err := framequeue.New(4)
	require.NoError(t, err)

	got := make(chan *framequeue.Frame, 1)
	go func() {
		f, ok := q.Take()
		if ok {
			got <- f
		}
	}()

	// Give the consumer time to park.
	time.Sleep(20 * time.Millisecond)
	q.Push(newFrame(7))

	select {
	case f := <-got:
		assert.Equal(t, int64(7), f.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("Take did not wake after Push")
	}
}

// TestCloseInputReleasesAllConsumers validates the broadcast-on-done
// step: after CloseInput, every parked consumer terminates once the
// queue is empty, within one wake cycle.
func TestCloseInputReleasesAllConsumers(t *testing.T) {
	q, err := framequeue.New(4)
	require.NoError(t, err)

	const consumers = 5
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, ok := q.Take(); !ok {
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond) // let consumers park
	q.CloseInput()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumers still parked after CloseInput")
	}
}

// TestAbortReleasesAllConsumers mirrors the CloseInput test for the
// abort flag: any external actor may set it at any time.
func TestAbortReleasesAllConsumers(t *testing.T) {
	q, err := framequeue.New(4)
	require.NoError(t, err)

	const consumers = 3
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, ok := q.Take(); !ok {
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	q.Abort()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumers still parked after Abort")
	}
	assert.True(t, q.Aborted())
}

// TestTakeDrainsBeforeExit validates drain-then-exit: frames already
// queued when input closes are still delivered, in order, before Take
// reports done.
func TestTakeDrainsBeforeExit(t *testing.T) {
	q, err := framequeue.New(10)
	require.NoError(t, err)

	for i := int64(0); i < 5; i++ {
		q.Push(newFrame(i))
	}
	q.CloseInput()

	var got []int64
	for {
		f, ok := q.Take()
		if !ok {
			break
		}
		got = append(got, f.ID)
	}
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, got)
}

func TestCloseInputIdempotent(t *testing.T) {
	q, err := framequeue.New(4)
	require.NoError(t, err)

	q.CloseInput()
	q.CloseInput()
	assert.True(t, q.InputClosed())

	q.Abort()
	q.Abort()
	assert.True(t, q.Aborted())
}

// TestConcurrentAccounting runs one producer against several consumers
// and verifies the conservation law: every pushed frame is either taken
// by exactly one consumer or reported dropped.
func TestConcurrentAccounting(t *testing.T) {
	q, err := framequeue.New(8)
	require.NoError(t, err)

	const frames = 2000
	const consumers = 4

	var taken sync.Map
	var wg sync.WaitGroup
	var takes, drops int64
	var mu sync.Mutex

	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				f, ok := q.Take()
				if !ok {
					return
				}
				if _, loaded := taken.LoadOrStore(f.ID, true); loaded {
					t.Errorf("frame %d delivered twice", f.ID)
				}
				mu.Lock()
				takes++
				mu.Unlock()
			}
		}()
	}

	for i := int64(0); i < frames; i++ {
		if evicted := q.Push(newFrame(i)); evicted != nil {
			mu.Lock()
			drops++
			mu.Unlock()
			if _, wasTaken := taken.Load(evicted.ID); wasTaken {
				t.Errorf("frame %d both taken and dropped", evicted.ID)
			}
		}
	}
	q.CloseInput()
	wg.Wait()

	assert.Equal(t, int64(frames), takes+drops, "every frame taken or dropped")
	assert.Equal(t, uint64(drops), q.Stats().Dropped)
	assert.True(t, q.Empty())
}
