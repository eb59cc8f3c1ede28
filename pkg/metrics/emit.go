package metrics

import "fmt"

// Emit envia o valor pelo método do Provider correspondente ao tipo.
// Um provider nulo descarta a métrica.
func Emit(p Provider, def MetricDefinition, value float64, tags ...string) error {
	if p == nil {
		return nil
	}

	switch def.Type {
	case TypeCount:
		return p.Count(def.Name, value, tags)
	case TypeGauge:
		return p.Gauge(def.Name, value, tags)
	case TypeHistogram:
		return p.Histogram(def.Name, value, tags)
	default:
		return fmt.Errorf("tipo de métrica desconhecido: %s", def.Type)
	}
}
