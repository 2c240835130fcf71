// Package diagnostic collects structured errors and warnings produced while
// interpreting user input against type metadata.
//
// Key capabilities:
//   - Unknown enum member reports with close-match suggestions
//   - Severity levels and stable codes for machine consumption
//   - Folding a batch of errors into a single error value
package diagnostic
