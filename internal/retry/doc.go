// Package retry provides bounded retry with a table-driven backoff and a
// per-attempt timeout for calls to the remote generative service.
//
// Every attempt runs under WithTimeout, which races the operation against a
// deadline and cancels the attempt context when the deadline wins. Failed
// attempts are classified as timeout, transient, or fatal; fatal failures stop
// the loop at once, the others are retried until the policy's attempts are
// exhausted. The error returned is always the error of the last attempt.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewGenAIErrorClassifier())
//	caption, err := retry.Do(ctx, executor, retry.DefaultPolicy(),
//	    func(ctx context.Context) (string, error) {
//	        return callService(ctx)
//	    })
//
// # Error Classification
//
// GenAIErrorClassifier decides on the closed code enumeration carried by
// *genai.APIError, falling back to connectivity error shapes and a small set of
// message patterns for errors produced elsewhere.
//
// # Backoff
//
// The delay before attempt k+1 is Delays[min(k-1, len(Delays)-1)]. The table is
// never extrapolated and no jitter is applied.
//
// # Known Limitation
//
// Cancellation of a timed-out attempt is best-effort: the attempt context is
// cancelled, but an operation that ignores its context keeps running in the
// background until it returns. Its result is discarded.
//
// # Thread Safety
//
// Executor and Policy values are immutable and safe for concurrent use. The
// With* methods return modified copies.
package retry
