// Package logger is the public API of logfacade. Most users only need to
// import this package.
//
// A Logger accepts log calls at seven levels (trace, debug, info, success,
// warn, error, fatal). The input may be a plain string, an error, or one of
// the event shapes from package core. Every call is normalized into a
// core.Record and inserted into the Logger's canonical buffer, then handed
// to the console sink, the storage sink and any additional sinks. A failing
// sink never affects the others or the caller.
//
// The package keeps a lazily created default Logger. The package-level
// functions delegate to it, so simple programs can log without any setup:
//
//	logger.Info("ready", logger.Data(map[string]any{"port": 8080}))
//
// Configuration is applied with options and may be repeated at any time:
//
//	log := logger.New(
//	    logger.WithApplicationName("shop"),
//	    logger.WithMaxLogs(500),
//	    logger.WithConsoleSink(false),
//	)
//
// When no Source is given, the calling function's name (for example
// "Cart.Add") is recorded in the buffer. Other sinks only see sources the
// caller supplied.
//
// Fatal only logs. It never exits the process.
package logger
