package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

const (
	serviceVersion = "1.0.0"

	// shutdownTimeout bounds provider teardown so a dead collector
	// cannot hang process exit
	shutdownTimeout = 10 * time.Second
)

// serviceResource builds the OTEL resource shared by the trace, metric
// and log pipelines so every signal carries the same service identity.
func serviceResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build telemetry resource: %w", err)
	}
	return res, nil
}

// shutdownPipeline runs a provider's shutdown under the shared timeout
// and logs the outcome under a common shape.
func shutdownPipeline(ctx context.Context, name string, logger *zap.Logger, shutdown func(context.Context) error) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		logger.Error("Telemetry pipeline shutdown failed",
			zap.String("pipeline", name), zap.Error(err))
		return fmt.Errorf("shutdown %s pipeline: %w", name, err)
	}

	logger.Info("Telemetry pipeline shut down", zap.String("pipeline", name))
	return nil
}
