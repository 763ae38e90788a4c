// Package queue provides the execution queue: a stable, three-band priority
// FIFO (HIGH, NORMAL, CHAINED-at-head-of-NORMAL) that feeds the drainer.
package queue
