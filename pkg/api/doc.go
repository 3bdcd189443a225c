// Package api derives CRUD request clients from a resource catalog.
//
// New builds one client per catalog resource, each exposing the five
// operations create/read/get/update/delete mapped onto POST/GET/GET/PATCH/
// DELETE. Every call dispatches a request-tracking action carrying the
// in-flight response to the store, normalizes array responses into
// id-keyed maps, and commits the result with the resource's update action.
//
// Validation failures (id present on create, id missing on update/delete,
// schema-invalid payloads) are returned before any dispatch or network
// activity. Transport failures are wrapped in *TransportError; idempotent
// requests are retried within the configured bound.
package api
