package syssched

// Task is a unit of work scheduled by AsyncTaskRunner.
type Task interface {
	// Run performs a single iteration.
	Run() error
}
