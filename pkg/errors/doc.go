// Package errors provides structured error types for the archival pipeline.
//
// Every core phase (fetch, snapshot write, index maintenance, publish) wraps
// its failures with a phase code so the single process-exit diagnostic names
// the failing phase. None of the core components swallow errors.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTransport,
//	    "failed to fetch telemetry",
//	    cause,
//	    map[string]interface{}{
//	        "url": url,
//	    },
//	)
package errors
