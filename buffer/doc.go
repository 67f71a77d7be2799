// Package buffer implements fixed-capacity circular buffers as device
// objects.
//
// Memory for the elements is supplied by the caller and is used in place.
// One slot is always left empty so that "full" and "empty" can be told apart
// from the head and tail indices alone: a store of N elements queues at most
// N-1 of them. Data pushed into a full buffer is dropped and reported with
// errcode.BufferFull.
//
// A buffer supports exactly one producer and one consumer, which may run in
// different contexts (for example an interrupt handler and the main loop).
// Every index update happens inside the buffer's critical.Section.
package buffer
