// Package util provides shared helpers for action naming and
// resource/operation enumeration used across shelfd packages.
//
//   - CamelJoin — derive camel-case action-creator names ("update" + "book_review" → "updateBookReview")
//   - CrossProduct — ordered pairing of two sequences (resource × operation coverage)
package util
