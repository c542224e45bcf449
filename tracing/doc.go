// Package tracing wraps OpenTelemetry so that the scheduler and the service
// facade can record spans without importing the upstream packages directly.
package tracing
