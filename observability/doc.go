// Package observability provides OpenTelemetry metrics for browserkit
// applications.
//
// It initializes an OTLP meter provider and exposes container-level
// instruments that observe the service container's resolution and cache
// statistics.
//
// # Usage
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	observability.ObserveContainer(observability.Meter("automation-cli"), container)
package observability
