// Package api translates HTTP requests into validated service calls and
// renders every outcome through the uniform success/error JSON envelope.
package api
