// Package app wires the imbue HTTP service and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from file, .env and environment
//	2. Initialize logging and OpenTelemetry
//	3. Create business metrics shared by the HTTP middleware and the imputation service
//	4. Build the imputation and health services
//	5. Set up the chi router, middleware and routes
//	6. Configure the HTTP server from the server section of the configuration
//
// # Usage
//
//	application, err := app.NewApplication("")
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// # Graceful Shutdown
//
// Run returns after SIGINT, SIGTERM or cancellation of its context. Active
// requests are drained within the configured shutdown timeout, telemetry
// providers are flushed and the rotating log file is closed.
//
// Initialization errors are returned to the caller; the package never calls
// os.Exit.
package app
