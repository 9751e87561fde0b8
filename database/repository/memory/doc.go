// Package memory holds process-local implementations of the repository
// interfaces. They back STORE=memory runs and the service tests.
package memory
