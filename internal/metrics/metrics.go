package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "consultbr_http_requests_total", Help: "Total HTTP requests"},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "consultbr_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	ProposalsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "consultbr_proposals_created_total", Help: "Proposals created"},
		[]string{"kind"}, // initial, counter_offer
	)
	ProposalTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "consultbr_proposal_transitions_total", Help: "Proposal status changes"},
		[]string{"status"},
	)
	ProjectTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "consultbr_project_transitions_total", Help: "Project status changes"},
		[]string{"status"},
	)
	MessagesSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "consultbr_messages_sent_total", Help: "Messages sent"},
	)
	EmailsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "consultbr_emails_failed_total", Help: "Notification emails that failed to send"},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "consultbr_logins_total", Help: "Identity provider callbacks"},
		[]string{"result"}, // ok, rejected, failed
	)
)

var registerOnce sync.Once

// Register регистрирует метрики в глобальном реестре; повторные вызовы игнорируются
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequests,
			HTTPDuration,
			ProposalsCreated,
			ProposalTransitions,
			ProjectTransitions,
			MessagesSent,
			EmailsFailed,
			Logins,
		)
	})
}
