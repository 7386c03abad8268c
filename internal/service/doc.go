// Package service contains the application services sitting between the API
// layer and the stores. Each operation takes the acting user's ID as an
// explicit parameter; ownership scoping is never derived from ambient state.
package service
