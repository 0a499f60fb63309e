// Package domain defines the core business entities for Quanda.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A question/answer pair with its derived type tag
//   - Source: One ingested knowledge-base file and its index
//   - Candidate: A per-query search hit with a distance score
//   - Query: A user question after normalisation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
