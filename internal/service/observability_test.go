package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/effortlog/internal/domain"
	"github.com/alexanderramin/effortlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func TestUseCaseObserver_SubmitWeekEvent(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	obs := &recordingObserver{}
	svc := env.newService(testutil.NewTestUoW(env.db), testutil.Wednesday10AM, obs)

	sub := env.week(domain.DayLog{Date: testutil.Day(0), Trainer: &domain.EffortDetail{Hours: testutil.HoursPtr(4)}})
	sub.Location = "Chennai"
	_, err := svc.SubmitWeek(context.Background(), sub, env.audit)
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	ev := obs.events[0]
	assert.Equal(t, "effort.submit_week", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 1, ev.Fields["written"])
	assert.Equal(t, "4.00", ev.Fields["total_hours"])
	assert.Equal(t, "Chennai", ev.Fields["location"])
}

func TestUseCaseObserver_FailureEvent(t *testing.T) {
	env := setupEffortEnv(t, testutil.Wednesday10AM)
	obs := &recordingObserver{}
	svc := env.newService(testutil.NewTestUoW(env.db), testutil.Wednesday10AM, obs)

	_, err := svc.RecomputeWeek(context.Background(), "ghost", testutil.Monday)
	require.Error(t, err)

	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "summary.recompute", obs.events[0].Name)
	assert.Error(t, obs.events[0].Err)
}

func TestUseCaseObserverOrNoop_FansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	obs := useCaseObserverOrNoop([]UseCaseObserver{nil, a, b})

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)

	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.Same(t, a, useCaseObserverOrNoop([]UseCaseObserver{a}))
}

func TestLogUseCaseObserver_WritesLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "effort.submit", Success: true, Fields: map[string]any{"role": "TRAINER"}})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "effort.delete", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "service_use_case")
	assert.Contains(t, out, "use_case=effort.submit")
	assert.Contains(t, out, "role=TRAINER")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=boom")

	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	k := newKeyedMutex()
	var counter, maxSeen int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("cohort")
			defer unlock()

			mu.Lock()
			counter++
			if counter > maxSeen {
				maxSeen = counter
			}
			mu.Unlock()

			mu.Lock()
			counter--
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)

	// Different keys do not block each other.
	unlockA := k.Lock("a")
	unlockB := k.Lock("b")
	unlockB()
	unlockA()
}
