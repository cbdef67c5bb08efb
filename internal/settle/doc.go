// Package settle implements the polling loop that sits between a
// test-runner's asynchronous steps and the waiter registry. A step is
// allowed to complete only once a settle sweep reports that every
// registered waiter agrees all pending work has finished.
package settle
