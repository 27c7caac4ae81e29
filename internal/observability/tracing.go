package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/BruksfildServices01/delivery-scheduler"

// Tracer devolve o tracer global; sem SDK instalado é no-op.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
