// Package errs defines the error shapes returned to API clients.
//
// Every non-validation failure (bad binding, unknown route, missing
// product, downstream fault) leaves the API as an HTTPError so clients
// receive a consistent JSON body. Validation failures use the
// problem-details envelope from the validation package instead.
package errs
