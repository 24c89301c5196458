// Package retry provides exponential backoff retry logic for transient failures.
//
// The [WithExponentialBackoff] function retries an operation with configurable
// max attempts, initial delay, and maximum delay. It is invoked explicitly at
// the call sites that talk to the PCE and to Vault, so the retry policy of
// every outbound call is visible where the call is made.
package retry
