// Package textnorm normalises question text for embedding and classifies
// questions into coarse type tags.
//
// Normalisation is deterministic and side-effect-free: lowercase,
// tokenize, drop stopwords and non-alphanumeric tokens, lemmatize, join
// with single spaces. A degraded normaliser (no linguistic tables) falls
// back to simple lowercasing so non-empty input always produces
// non-empty output.
package textnorm
