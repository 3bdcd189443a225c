// Package resource defines the declarative resource catalog that drives the
// shelfd API client.
//
// A Resource names one entity collection exposed by the backend (for
// example "books") together with its URL path segment, id field and the
// CRUD operations it supports. A Catalog is the validated registry of all
// resources; it is built once at configuration time and frozen when handed
// to the API factory, so every name/operation mismatch surfaces at
// construction rather than at call time.
package resource
