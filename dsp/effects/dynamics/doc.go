// Package dynamics provides the bus compressor that sits at the end of the
// render graph, ahead of the master gain.
//
// The compressor uses a peak envelope follower and a log2-domain soft-knee
// gain computer. With the fastmath build tag the log2/power transcendentals
// switch to polynomial approximations; the default build uses the standard
// library.
package dynamics
