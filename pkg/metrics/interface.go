package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por outro backend sem alterar a lógica de negócio.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// MetricType define os tipos suportados.
type MetricType string

const (
	TypeCount     MetricType = "count"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// MetricDefinition armazena os metadados da métrica (nome real, tipo).
// O namespace ("guest.") é aplicado pelo cliente statsd.
type MetricDefinition struct {
	Name string
	Type MetricType
}

var (
	UsersWritten   = MetricDefinition{Name: "users.written", Type: TypeCount}
	WriteConflicts = MetricDefinition{Name: "write.conflicts", Type: TypeCount}
	WriteFailures  = MetricDefinition{Name: "write.failures", Type: TypeCount}
	WriteLatency   = MetricDefinition{Name: "write.latency_ms", Type: TypeHistogram}
	ListUsersCalls = MetricDefinition{Name: "preview.list_users", Type: TypeCount}
	ListUsersSize  = MetricDefinition{Name: "preview.list_users.items", Type: TypeGauge}
)
