// Package handler is the first layer after the router.
//
// It binds requests into typed DTOs, runs them through the validation
// filter and calls the appropriate feature service. It acts as the
// interface between the HTTP request and the feature logic.
package handler
