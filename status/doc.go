// Package status provides the terminal status type shared by streams,
// pagers, and futures. It implements structured error values with
// machine-readable codes, retryable detection, and error-chain interop
// following the gRPC code taxonomy.
package status
