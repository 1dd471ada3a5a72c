// Package metrics defines the custom Prometheus metrics of the portal API.
// It is the single source of truth for metric names, labels, and help strings.
//
// The metrics are registered with the default Prometheus registry on import;
// HTTP request metrics are added by echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsTotal counts gateway operations.
// Labels:
//   - event: "register", "login", "logout", "profile"
//   - result: "success" or "failure"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of auth gateway operations, by event and result.",
	},
	[]string{"event", "result"},
)

// ── Entity metrics ────────────────────────────────────────────────────────────

// EntityOperationsTotal counts CRUD operations.
// Labels:
//   - entity: "user", "client", "member", "project"
//   - operation: "add", "list", "update", "delete"
//   - result: "success" or "failure"
var EntityOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_operations_total",
		Help:      "Total number of entity CRUD operations, by entity, operation and result.",
	},
	[]string{"entity", "operation", "result"},
)

// AttachmentsUploadedTotal counts binary parts received with entity writes.
// Label:
//   - field: the multipart field name (e.g. "certification", "avatar")
var AttachmentsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attachments_uploaded_total",
		Help:      "Total number of attachment files received, by field.",
	},
	[]string{"field"},
)

// DocumentsExportedTotal counts rendered project documents.
var DocumentsExportedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_exported_total",
		Help:      "Total number of project PDF documents generated.",
	},
)

// Result maps an operation error to its result label.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
