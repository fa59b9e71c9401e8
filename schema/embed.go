// Package schema ships the declarative mock-data schema consumed by an
// external fake-data engine. The file itself has no runtime behavior; this
// package embeds it and offers an advisory structural check.
package schema

import _ "embed"

// Mock is the mock-data schema embedded at compile time.
//
//go:embed mock.graphql
var Mock string
