// Package metrics exposes Prometheus counters for machine transitions.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	hsm "github.com/FukaMiya/HybridStateMachine"
)

// Metric definitions with appropriate labels.
var (
	// transitionsTotal tracks completed transitions by machine, source and
	// destination.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hsm_transitions_total",
		Help: "Total number of completed transitions by machine, from state and to state",
	}, []string{"machine", "from", "to"})

	// reentriesTotal tracks transitions that re-entered their source state.
	reentriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hsm_reentries_total",
		Help: "Total number of reentrant transitions by machine and state",
	}, []string{"machine", "state"})
)

// Attach registers an observer that counts every completed transition of the
// machine, labeled with the machine's id and the state names. Reentrant
// transitions additionally increment the reentry counter.
func Attach[TState, TEvent comparable](m *hsm.Machine[TState, TEvent]) {
	id := m.ID()
	m.OnTransitioned(func(change hsm.Change[TState, TEvent]) {
		from := fmt.Sprint(change.From)
		to := fmt.Sprint(change.To)

		transitionsTotal.WithLabelValues(id, from, to).Inc()

		if change.IsReentry() {
			reentriesTotal.WithLabelValues(id, to).Inc()
		}
	})
}
