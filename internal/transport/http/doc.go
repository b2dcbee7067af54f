// Package http implements the HTTP handlers of the imbue service.
// Handlers stay thin: they decode and validate requests, call the service
// layer and map its errors to RFC 7807 responses.
//
// # Endpoints
//
//	POST /imbue                  fill one dataset (also /api/v1/imbue)
//	POST /api/v1/imbue/batch     fill several datasets concurrently
//	POST /api/v1/imbue/export    fill and download as CSV or XLSX
//	GET  /api/v1/strategies      list strategies
//	GET  /api/health[/ready|/live], /api/version
//	GET  /metrics                Prometheus exposition
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → ImbueService → imbue
//	                                              ↓
//	HTTP Response ← Handler ← FillResult ←───────┘
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/imbue/invalid-dataset",
//	    "title": "Unprocessable Entity",
//	    "status": 422,
//	    "detail": "Dataset cannot be imputed",
//	    "instance": "/imbue",
//	    "error_code": "INVALID_DATASET",
//	    "details": {"kind": "duplicate_position", "index": 1, "position": 1, "reason": "..."},
//	    "trace_id": "..."
//	}
//
// Batch entries that fail carry the same type, status and code inline so the
// rest of the batch is still returned.
//
// # Testing
//
// Handlers are tested with httptest against a testify mock of
// ImbueServiceInterface.
package http
