package integration_tests

import (
	"context"
	"testing"
	"time"

	"github.com/specialistvlad/nodesim/internal/addressspace"
	"github.com/specialistvlad/nodesim/internal/app"
	"github.com/specialistvlad/nodesim/internal/config"
	"github.com/specialistvlad/nodesim/internal/nodeid"
	"github.com/specialistvlad/nodesim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoRatesJSON = `{
  "Folder": "Rates",
  "NodeList": [
    { "NodeId": "fast", "Parameters": { "$type": "CountUp", "IntervalMilliseconds": 10 } },
    { "NodeId": "slow", "Parameters": { "$type": "CountUp", "IntervalMilliseconds": 2000, "Start": 100 } }
  ]
}`

func startApp(t *testing.T, nodesFile string) (*app.App, func()) {
	t.Helper()
	logs := &testutil.SafeBuffer{}
	a := app.NewApp(logs, &app.Config{NodesFile: nodesFile, LogLevel: "debug", LogFormat: "text"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case <-a.Started():
	case err := <-done:
		cancel()
		t.Fatalf("app stopped before starting: %v\n%s", err, logs.String())
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("app did not start in time")
	}

	t.Cleanup(func() {
		if testutil.LogsEnabled() {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func valueOf(t *testing.T, s *addressspace.Space, id string) int64 {
	t.Helper()
	ns, err := s.NamespaceIndexFor(addressspace.NamespaceApplications)
	require.NoError(t, err)
	v, ok := s.Lookup(ns, nodeid.NewString(id))
	require.True(t, ok, "node %s not found", id)
	val, _ := v.Value()
	if val.IsNull() {
		return -1
	}
	n, ok := val.AsInt()
	require.True(t, ok, "node %s holds %s", id, val.Kind())
	return n
}

// Test for: nodes with different intervals advance independently
func TestSimulation_IntervalsAreIndependent(t *testing.T) {
	// --- Arrange ---
	a, stop := startApp(t, testutil.WriteFile(t, "nodes.json", twoRatesJSON))

	// --- Act ---
	// Within well under two seconds the fast node has ticked many times
	// while the slow one has not ticked at all.
	require.Eventually(t, func() bool { return valueOf(t, a.Space(), "fast") >= 10 }, 1500*time.Millisecond, 5*time.Millisecond)
	slow := valueOf(t, a.Space(), "slow")
	stop()

	// --- Assert ---
	assert.Equal(t, int64(-1), slow, "the 2000ms node ticked early")
}

// Test for: no value changes after the simulation is stopped
func TestSimulation_NoWritesAfterStop(t *testing.T) {
	// --- Arrange ---
	a, stop := startApp(t, testutil.WriteFile(t, "nodes.json", twoRatesJSON))
	require.Eventually(t, func() bool { return a.Space().Writes() >= 3 }, 5*time.Second, 5*time.Millisecond)

	// --- Act ---
	stop()
	writes := a.Space().Writes()
	fast := valueOf(t, a.Space(), "fast")
	time.Sleep(100 * time.Millisecond)

	// --- Assert ---
	assert.Equal(t, writes, a.Space().Writes())
	assert.Equal(t, fast, valueOf(t, a.Space(), "fast"))
}

// Test for: wrapped counters stay inside their bounds
func TestSimulation_CounterWrapsAtBounds(t *testing.T) {
	// --- Arrange ---
	path := testutil.WriteFile(t, "nodes.yaml", `
Folder: Wrap
NodeList:
  - NodeId: wrap
    Parameters:
      $type: CountUp
      IntervalMilliseconds: 5
      ShouldRestart: true
      RestartWhenLessThan: 0
      RestartWhenGreaterThan: 3
`)
	a, stop := startApp(t, path)
	defer stop()

	seen := map[int64]bool{}
	changes := make(chan config.Value, 64)
	unsubscribe := a.Space().Subscribe(func(c addressspace.Change) {
		select {
		case changes <- c.Value:
		default:
		}
	})
	defer unsubscribe()

	// --- Act ---
	deadline := time.After(5 * time.Second)
	for len(seen) < 4 {
		select {
		case v := <-changes:
			n, ok := v.AsInt()
			require.True(t, ok)
			// --- Assert ---
			require.GreaterOrEqual(t, n, int64(0))
			require.LessOrEqual(t, n, int64(3))
			seen[n] = true
		case <-deadline:
			t.Fatalf("counter did not cycle through 0..3, saw %v", seen)
		}
	}
}
