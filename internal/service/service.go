// Package service contains the feature logic.
//
// It sits behind the handler layer. It receives requests that already
// passed validation, performs the feature operation and returns the result.
// The product services are stubs: they simulate downstream latency and
// return canned data.
package service
