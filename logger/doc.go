// Package logger provides structured logging for browserkit applications
// using zerolog.
//
// It supports JSON and console output formats, log level configuration,
// and component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("di")
//	log.Info("container ready", logger.Fields("container_id", id))
package logger
