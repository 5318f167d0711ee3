package graph_test

import (
	"fmt"

	"github.com/iamhimateja/vinyl-sub001/music/graph"
	"github.com/iamhimateja/vinyl-sub001/music/voice"
)

func ExampleEngine() {
	e, err := graph.New(44100, 96, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	e.SetReverb(true)
	e.Schedule(voice.NewKick(44100, 1), 0, 0.9)

	buf := make([]float64, 512)
	e.Render(buf)
	fmt.Printf("rendered %d samples, %d voice still sounding\n", e.Pos(), e.Voices())
	// Output: rendered 512 samples, 1 voice still sounding
}
