// Package api provides the HTTP client for the Tally backend.
//
// # Overview
//
// Every collection on the backend exposes the same four endpoints:
//
//	POST   <resource>/search   SearchFilter body -> page of rows
//	POST   <resource>          create            -> saved row
//	PUT    <resource>/<id>     update            -> saved row
//	DELETE <resource>/<id>     delete            -> true or empty body
//
// Responses are wrapped in a single envelope:
//
//	{ "payload": ... }
//
// A 2xx body without a payload member is a decode error. Delete accepts an
// empty body as success.
//
// # Client
//
// Client owns the transport concerns shared by all resources:
//
//   - base URL normalisation (api_base may carry a path such as /api)
//   - Accept, Content-Type and User-Agent headers
//   - an X-Request-ID per request, logged with the outcome
//   - an optional bearer token
//   - client-side rate limiting (golang.org/x/time/rate)
//
// Resource binds the client to one collection path and implements
// listing.Service. Identical concurrent searches on the same resource are
// collapsed into one request with singleflight. The shared request is not
// tied to any one caller's context, so a cancelled caller leaves it running
// for the others.
//
// # Errors
//
// Non-2xx responses become *StatusError carrying the status code and the
// server's message when one is present. A 404 matches ErrNotFound with
// errors.Is. Transport failures are wrapped as "execute request: ...".
package api
