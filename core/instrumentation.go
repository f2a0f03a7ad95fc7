package game

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const scopeName = "github.com/codemaster-omvardhan/Echo-Tale/core"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)

	turnsCompleted, _ = meter.Int64Counter("game.turns_completed",
		metric.WithDescription("Completed story turns, including fallbacks."))
	turnFallbacks, _ = meter.Int64Counter("game.turn_fallbacks",
		metric.WithDescription("Turns resolved with the fallback continuation."))
)
