// Package retry holds the backoff policy used for transient catalog clone failures.
package retry
