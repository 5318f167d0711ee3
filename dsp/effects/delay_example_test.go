package effects_test

import (
	"fmt"

	"github.com/iamhimateja/vinyl-sub001/dsp/effects"
)

func ExampleDelay_ProcessSample() {
	delay, err := effects.NewDelay(1000)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// Wet-only send: a 10ms echo with half-amplitude repeats.
	_ = delay.SetTime(0.01)
	_ = delay.SetFeedback(0.5)
	_ = delay.SetMix(1)

	out := make([]float64, 35)
	for i := range out {
		input := 0.0
		if i == 0 {
			input = 1
		}

		out[i] = delay.ProcessSample(input)
	}

	fmt.Printf("first echo:  %.3f\n", out[10])
	fmt.Printf("second echo: %.3f\n", out[20])
	fmt.Printf("third echo:  %.3f\n", out[30])
	// Output:
	// first echo:  1.000
	// second echo: 0.500
	// third echo:  0.250
}
