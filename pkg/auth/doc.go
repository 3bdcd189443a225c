// Package auth provides credential sources for the API client.
//
// Credentials are injected: the client asks a TokenSource for a bearer
// token per call instead of reading ambient persisted state. FileSource
// covers the common case of a token persisted on disk by a login flow; it
// caches the token and re-reads the file when the cached value expires
// (JWT exp claim when present, a fixed TTL otherwise).
package auth
