// Package reverb provides the convolution reverb send of the render graph
// and the synthetic room impulse response it convolves with.
//
// SyntheticIR generates an exponentially decaying noise tail, so no impulse
// response files ship with the player. ConvolutionReverb runs the kernel
// through uniformly partitioned FFT convolution for a fixed small latency
// regardless of tail length.
package reverb
