// Package logger provides structured logging using zerolog.
//
// Loggers render as console or JSON, carry component and task fields,
// and can be teed into a run's log file while keeping their primary
// output.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Init(&cfg.Logging, "nlpwire", nil)
//	log.WithComponent("Tokenize").Debug("group rejected", logger.Fields(logger.FieldFormat, "txt"))
package logger
