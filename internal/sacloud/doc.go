// Package sacloud implements the request pipeline shared by every Sakura Cloud tool.
//
// The pipeline has two layers:
//
//   - Validation: zone membership (Registry.Validate) and credential presence
//     (Credentials.Check), combined by ValidateRequestContext. A bad zone is
//     always reported before missing credentials.
//   - Execution: Client.Execute performs exactly one HTTP round trip with basic
//     authentication and classifies every failure as a transport, status or
//     unexpected error.
//
// Failures are returned as *Error values. Their Message method renders the
// Japanese text shown to the agent at the tool boundary, so callers can still
// inspect the failure kind with errors.As before formatting it.
//
// Diagnostics for network failures are delivered once per failure to the
// Reporter attached to the request context with WithReporter.
package sacloud
