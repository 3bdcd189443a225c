// Package store implements the client-side state store that API call
// results are committed to.
//
// The store holds one id-keyed entity cache per catalog resource and
// reduces dispatched actions into those caches. Action payloads may settle
// asynchronously (see Pending); Dispatch awaits them before reducing, which
// is how in-flight network responses flow through the store.
//
// The update-action registry is built eagerly from the catalog at
// construction, so a resource without an update action is impossible by
// construction; LookupError survives only for dynamically supplied names.
package store
