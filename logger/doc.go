// Package logger provides structured logging for the e-invoice client
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("einvoice").WithComponent("gateway")
//	log.Info("credit summary fetched", logger.Fields("provider", "nes"))
package logger
