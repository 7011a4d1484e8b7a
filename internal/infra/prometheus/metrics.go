package prometheus

import (
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "site"

var (
	songRequestsSubmitted = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "song_requests_submitted_total",
		Help:      "Song requests accepted into the queue.",
	})

	songRequestsRejected = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "song_requests_rejected_total",
		Help:      "Song request submissions that were not stored, by reason.",
	}, []string{"reason"})

	songSearches = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "song_search_total",
		Help:      "Song searches against the lyrics provider, by outcome.",
	}, []string{"outcome"})

	songRequestsArchived = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "song_requests_archived_total",
		Help:      "Song requests moved out of the active queue, by trigger.",
	}, []string{"trigger"})

	leads = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "leads_total",
		Help:      "Contact and intake forms received, by kind.",
	}, []string{"kind"})
)

var registerMetrics sync.Once

// Register adds the site collectors to the default registry. Safe to call more than once.
func Register() {
	registerMetrics.Do(func() {
		prom.MustRegister(
			songRequestsSubmitted,
			songRequestsRejected,
			songSearches,
			songRequestsArchived,
			leads,
		)
	})
}

func ObserveSongRequestSubmitted() {
	songRequestsSubmitted.Inc()
}

func ObserveSongRequestRejected(reason string) {
	songRequestsRejected.WithLabelValues(reason).Inc()
}

// ObserveSearch records one search call; outcome is ok, unconfigured, shape or upstream.
func ObserveSearch(outcome string) {
	songSearches.WithLabelValues(outcome).Inc()
}

// ObserveSongRequestsArchived records n archived requests. Trigger is single, bulk or stale.
func ObserveSongRequestsArchived(trigger string, n int64) {
	if n <= 0 {
		return
	}
	songRequestsArchived.WithLabelValues(trigger).Add(float64(n))
}

func ObserveLead(kind string) {
	leads.WithLabelValues(kind).Inc()
}
