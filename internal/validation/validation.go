// Package validation contains the logic for validating
// request data before it reaches a feature service.
//
// The pieces, leaf to root:
//   - Ruleset: ordered rules bound to one request type, built with For[T].
//   - Registry: explicit, read-only map from request type to its ruleset.
//   - Engine: evaluates every rule of a ruleset and collects the failures.
//   - Filter: runs every bound argument through the engine and either calls
//     the continuation or short-circuits with ProblemDetails.
//
// Rules can be plain predicates, async checks that honour the request
// context, or `validator` struct-tag expressions (like `required,notblank`).
package validation
