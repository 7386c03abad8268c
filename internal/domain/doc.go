// Package domain defines the core business entities of the task API
// and the validation rules they must satisfy.
package domain
