package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Partitioned implements streaming uniform partitioned overlap-save
// convolution. The kernel is split into blockSize partitions whose spectra
// are multiplied against a frequency-domain delay line of recent input
// spectra, so the per-block cost stays flat no matter how long the kernel is.
//
// Output is delayed by Latency() = blockSize samples: the convolver must
// assemble a full input block before it can produce that block's result.
// State is maintained between calls so arbitrary-length input chunks join
// seamlessly.
type Partitioned struct {
	kernelLen  int
	blockSize  int
	fftSize    int // = 2 * blockSize
	partitions int

	plan *algofft.Plan[complex128]

	// Kernel partition spectra, one per partition, oldest contribution last.
	kernelFFT [][]complex128

	// Frequency-domain delay line of input spectra. writeIdx points at the
	// spectrum of the most recently assembled block.
	inputFFT [][]complex128
	writeIdx int

	// Time-domain bookkeeping.
	prevBlock   []float64 // previous assembled input block
	inputAccum  []float64 // current block being filled
	outputReady []float64 // result of the last assembled block, drained by reads
	blockPos    int

	timeBuf  []complex128
	specAcc  []complex128
	scratch  []complex128
	primedNo int // blocks assembled so far, capped at partitions
}

// NewPartitioned creates a streaming partitioned convolver. blockSize must
// be a power of two; the FFT size is twice that.
func NewPartitioned(kernel []float64, blockSize int) (*Partitioned, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 || !isPowerOf2(blockSize) {
		return nil, fmt.Errorf("%w: blockSize must be a power of two, got %d", ErrInvalidBlockSize, blockSize)
	}

	fftSize := 2 * blockSize
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	partitions := (len(kernel) + blockSize - 1) / blockSize

	p := &Partitioned{
		kernelLen:   len(kernel),
		blockSize:   blockSize,
		fftSize:     fftSize,
		partitions:  partitions,
		plan:        plan,
		kernelFFT:   make([][]complex128, partitions),
		inputFFT:    make([][]complex128, partitions),
		prevBlock:   make([]float64, blockSize),
		inputAccum:  make([]float64, blockSize),
		outputReady: make([]float64, blockSize),
		timeBuf:     make([]complex128, fftSize),
		specAcc:     make([]complex128, fftSize),
		scratch:     make([]complex128, fftSize),
	}

	// Precompute partition spectra. Each partition occupies the first half
	// of the FFT frame; the second half stays zero so the overlap-save
	// discard region holds all circular wrap-around.
	for part := range partitions {
		clear(p.timeBuf)

		start := part * blockSize
		end := min(start+blockSize, len(kernel))
		for i, v := range kernel[start:end] {
			p.timeBuf[i] = complex(v, 0)
		}

		spec := make([]complex128, fftSize)
		if err := plan.Forward(spec, p.timeBuf); err != nil {
			return nil, fmt.Errorf("conv: kernel partition FFT failed: %w", err)
		}
		p.kernelFFT[part] = spec

		p.inputFFT[part] = make([]complex128, fftSize)
	}

	clear(p.timeBuf)

	return p, nil
}

// ProcessBlock convolves an arbitrary-length chunk of input samples into
// dst. Both slices must have the same length; dst may alias src.
func (p *Partitioned) ProcessBlock(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst length %d != src length %d", ErrLengthMismatch, len(dst), len(src))
	}

	pos := 0
	remaining := len(src)

	for remaining > 0 {
		chunk := min(p.blockSize-p.blockPos, remaining)

		copy(p.inputAccum[p.blockPos:], src[pos:pos+chunk])
		copy(dst[pos:pos+chunk], p.outputReady[p.blockPos:p.blockPos+chunk])

		p.blockPos += chunk
		pos += chunk
		remaining -= chunk

		if p.blockPos == p.blockSize {
			if err := p.convolveBlock(); err != nil {
				return err
			}
			p.blockPos = 0
		}
	}

	return nil
}

// convolveBlock runs once per assembled input block: slide the two-block
// window, push its spectrum into the delay line, accumulate against the
// kernel partitions, and keep the non-aliased half as the block's output.
func (p *Partitioned) convolveBlock() error {
	for i, v := range p.prevBlock {
		p.timeBuf[i] = complex(v, 0)
	}
	for i, v := range p.inputAccum {
		p.timeBuf[p.blockSize+i] = complex(v, 0)
	}

	p.writeIdx--
	if p.writeIdx < 0 {
		p.writeIdx = p.partitions - 1
	}

	if err := p.plan.Forward(p.inputFFT[p.writeIdx], p.timeBuf); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	if p.primedNo < p.partitions {
		p.primedNo++
	}

	clear(p.specAcc)
	for part := range p.primedNo {
		in := p.inputFFT[(p.writeIdx+part)%p.partitions]
		ker := p.kernelFFT[part]
		for i := range p.specAcc {
			p.specAcc[i] += in[i] * ker[i]
		}
	}

	if err := p.plan.Inverse(p.scratch, p.specAcc); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	for i := range p.outputReady {
		p.outputReady[i] = real(p.scratch[p.blockSize+i])
	}

	copy(p.prevBlock, p.inputAccum)

	return nil
}

// Reset clears all internal state, ready for a fresh signal stream.
func (p *Partitioned) Reset() {
	clear(p.prevBlock)
	clear(p.inputAccum)
	clear(p.outputReady)
	for _, spec := range p.inputFFT {
		clear(spec)
	}
	p.blockPos = 0
	p.writeIdx = 0
	p.primedNo = 0
}

// Latency returns the processing latency in samples (= blockSize).
func (p *Partitioned) Latency() int {
	return p.blockSize
}

// BlockSize returns the internal block size.
func (p *Partitioned) BlockSize() int {
	return p.blockSize
}

// KernelLen returns the original kernel length.
func (p *Partitioned) KernelLen() int {
	return p.kernelLen
}

// PartitionCount returns the number of kernel partitions.
func (p *Partitioned) PartitionCount() int {
	return p.partitions
}
