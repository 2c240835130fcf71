// Package match compares identifiers loosely: it folds case and separators
// out of names and ranks near misses by edit distance.
//
// Key functions:
//   - NormalizeIdent: folds an identifier for case- and separator-insensitive lookup
//   - Levenshtein: computes edit distance between strings
//   - Suggest: picks the closest known names for an unknown one
package match
