// Package graphql is the single path from a cuebridge tool to the
// lighting backend.
//
// A call is built with Build, sent with (*Client).Send and classified with
// Classify; (*Client).Execute runs all three and decodes the data payload.
// Every failure is an *Error tagged with a Kind:
//
//   - KindNetwork: the connection never completed.
//   - KindTimeout, KindCancelled: the deadline expired or the caller gave up.
//   - KindTransport: the backend answered with a non-2xx status or an
//     undecodable body.
//   - KindExecution: the body carried a GraphQL error.
//   - KindDeviceNotApproved: the GraphQL error denied this device.
//
// Nothing in this package retries, caches or deduplicates requests.
//
// The device fingerprint travels in an immutable Session. The Client keeps a
// default fingerprint that can be replaced at any time; each call takes one
// snapshot of it so the request header and a resulting denial always name
// the same device.
package graphql
