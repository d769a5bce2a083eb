package service

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/state"
)

type clientCount struct{ n int }

func (c *clientCount) ClientConnected(delta int) { c.n += delta }

func TestStateHubBroadcastsTransitions(t *testing.T) {
	store := state.NewStore(state.Initial(), zap.NewNop())
	clients := &clientCount{}
	hub := NewStateHub(store, clients, zap.NewNop())
	defer hub.Close()

	ch, release := hub.Subscribe()
	assert.Equal(t, 1, clients.n)

	store.Dispatch(state.Navigated{View: models.ViewMigration})

	select {
	case msg := <-ch:
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg, &decoded))
		assert.Equal(t, string(models.ViewMigration), decoded["active_view"])
		assert.EqualValues(t, 0, decoded["student_count"])
	case <-time.After(time.Second):
		t.Fatal("no state message received")
	}

	release()
	release()
	assert.Equal(t, 0, clients.n)
	_, open := <-ch
	assert.False(t, open)
}

func TestStateHubLaggingClientKeepsLatestState(t *testing.T) {
	store := state.NewStore(state.Initial(), zap.NewNop())
	hub := NewStateHub(store, nil, zap.NewNop())
	ch, release := hub.Subscribe()
	defer release()

	views := []models.ViewTab{models.ViewMigration, models.ViewProfileList, models.ViewFinalList, models.ViewCustomReport}
	for _, view := range views {
		store.Dispatch(state.Navigated{View: view})
	}
	require.Len(t, ch, hubClientBuffer)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(<-ch, &decoded))
	assert.Equal(t, string(models.ViewCustomReport), decoded["active_view"])

	hub.Close()
	store.Dispatch(state.ToastDismissed{})
}

func TestStateHubConcurrentDispatchEndsOnCurrentState(t *testing.T) {
	store := state.NewStore(state.Initial(), zap.NewNop())
	store.Dispatch(state.LoggedIn{User: models.User{Name: "Admin"}})
	hub := NewStateHub(store, nil, zap.NewNop())
	defer hub.Close()
	ch, release := hub.Subscribe()
	defer release()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("op-%d", i)
			store.Dispatch(state.OperationStarted{Token: token})
			store.Dispatch(state.OperationFinished{Token: token})
		}(i)
	}
	wg.Wait()

	require.False(t, store.Snapshot().Loading)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(<-ch, &decoded))
	assert.Equal(t, false, decoded["loading"])
}

func TestMetricsServiceSnapshot(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveHTTPRequest("GET", "/api/v1/state", 200, 10*time.Millisecond)
	metrics.ObserveGatewayCall("read_joined", true, 20*time.Millisecond)
	metrics.ObserveGatewayCall("bulk_enroll", false, 40*time.Millisecond)
	metrics.RecordExport("csv")
	metrics.ClientConnected(1)

	snap := metrics.Snapshot()
	assert.EqualValues(t, 1, snap.RequestsTotal)
	assert.InDelta(t, 10, snap.AverageRequestDurationMs, 0.001)
	assert.EqualValues(t, 2, snap.BackendCalls)
	assert.EqualValues(t, 1, snap.BackendFailures)
	assert.InDelta(t, 30, snap.AverageBackendDurationMs, 0.001)
	assert.NotNil(t, metrics.Handler())

	var nilMetrics *MetricsService
	nilMetrics.ObserveGatewayCall("x", true, time.Millisecond)
	assert.Zero(t, nilMetrics.Snapshot().RequestsTotal)
}
