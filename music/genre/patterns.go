package genre

// StepPattern holds one bar of sixteenth-note triggers for the drum voices.
type StepPattern struct {
	Kick  [StepCount]bool
	Snare [StepCount]bool
	Hat   [StepCount]bool
	Perc  [StepCount]bool
}

// BassPattern marks the steps on which the bass fires.
type BassPattern [StepCount]bool

// Boom bap: kick on the one and the "and" of three, backbeat snare.
var lofiDrums = []StepPattern{
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, false, false,
			false, false, true, false,
			false, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, false,
			false, false, true, false,
		},
	},
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, false, true,
			false, false, true, false,
			false, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			true, false, true, false,
			true, false, true, true,
			true, false, true, false,
			true, false, true, false,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, true, false, false,
			false, false, false, false,
		},
	},
}

// Four on the floor with offbeat hats.
var technoDrums = []StepPattern{
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			true, false, false, false,
			true, false, false, false,
			true, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			false, false, true, false,
			false, false, true, false,
			false, false, true, false,
			false, false, true, false,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, false,
			false, false, false, true,
		},
	},
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			true, false, false, false,
			true, false, false, false,
			true, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			false, false, true, false,
			false, false, true, false,
			false, false, true, false,
			false, false, true, true,
		},
		Perc: [StepCount]bool{
			false, false, false, true,
			false, false, false, false,
			false, false, false, true,
			false, false, false, false,
		},
	},
}

// Midtempo drive with a gated backbeat snare.
var synthwaveDrums = []StepPattern{
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, false,
			false, false, true, false,
		},
	},
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, false, false,
			true, false, true, false,
			false, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
			true, false, true, true,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, true, false,
			false, false, false, false,
			false, false, false, false,
		},
	},
}

// Sparse washes; most hits are thinned out further by the low fire chance.
var ambientDrums = []StepPattern{
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, false, false,
			false, false, false, false,
			false, false, false, false,
		},
		Hat: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, true,
			false, false, false, false,
		},
	},
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, false, false,
			false, false, true, false,
			false, false, false, false,
		},
		Hat: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, false,
			false, false, true, false,
		},
	},
}

// Classic house: four on the floor, clap backbeat, open-feel offbeat hats.
var houseDrums = []StepPattern{
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			true, false, false, false,
			true, false, false, false,
			true, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			false, false, true, false,
			false, false, true, false,
			false, false, true, false,
			false, false, true, false,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, true,
			false, false, false, false,
		},
	},
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			true, false, false, false,
			true, false, false, false,
			true, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, true, false, false,
			false, false, false, false,
			false, true, false, false,
		},
	},
}

// Two-step break: kick on the one and the "and" of three.
var dnbDrums = []StepPattern{
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, false, false,
			false, false, true, false,
			false, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, true,
			false, false, false, false,
			false, false, false, false,
		},
	},
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, true, false,
			false, false, true, false,
			false, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		Hat: [StepCount]bool{
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
			true, false, true, true,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, false,
			false, true, false, false,
		},
	},
}

// Half time: snare only on the three, busy sixteenth hats.
var trapDrums = []StepPattern{
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, false, false,
			false, false, true, false,
			false, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
		},
		Hat: [StepCount]bool{
			true, true, true, true,
			true, true, true, true,
			true, true, true, true,
			true, true, true, true,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, false,
			false, false, false, true,
		},
	},
	{
		Kick: [StepCount]bool{
			true, false, false, false,
			false, false, true, false,
			false, false, true, false,
			false, false, false, false,
		},
		Snare: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
		},
		Hat: [StepCount]bool{
			true, false, true, false,
			true, false, true, false,
			true, false, true, false,
			true, true, true, true,
		},
		Perc: [StepCount]bool{
			false, false, false, false,
			false, false, false, false,
			false, false, false, true,
			false, false, false, false,
		},
	},
}

var drumPools = [genreCount][]StepPattern{
	Lofi:        lofiDrums,
	Techno:      technoDrums,
	Synthwave:   synthwaveDrums,
	Ambient:     ambientDrums,
	House:       houseDrums,
	DrumAndBass: dnbDrums,
	Trap:        trapDrums,
}

var lofiBass = []BassPattern{
	{
		true, false, false, false,
		false, false, false, true,
		false, false, true, false,
		false, false, false, false,
	},
	{
		true, false, false, false,
		false, false, false, false,
		true, false, false, false,
		false, false, true, false,
	},
}

var technoBass = []BassPattern{
	{
		false, false, true, false,
		false, false, true, false,
		false, false, true, false,
		false, false, true, false,
	},
	{
		true, false, true, false,
		true, false, true, false,
		true, false, true, false,
		true, false, true, false,
	},
}

var synthwaveBass = []BassPattern{
	{
		true, false, true, false,
		true, false, true, false,
		true, false, true, false,
		true, false, true, false,
	},
	{
		true, false, false, true,
		false, false, true, false,
		true, false, false, true,
		false, false, true, false,
	},
}

var ambientBass = []BassPattern{
	{
		true, false, false, false,
		false, false, false, false,
		false, false, false, false,
		false, false, false, false,
	},
	{
		true, false, false, false,
		false, false, false, false,
		true, false, false, false,
		false, false, false, false,
	},
}

var houseBass = []BassPattern{
	{
		false, false, true, false,
		false, false, true, false,
		false, false, true, false,
		false, false, true, false,
	},
	{
		true, false, false, false,
		false, false, true, false,
		false, false, true, false,
		false, false, false, false,
	},
}

var dnbBass = []BassPattern{
	{
		true, false, false, false,
		false, false, false, false,
		false, false, true, false,
		false, false, false, false,
	},
	{
		true, false, false, false,
		false, false, true, false,
		false, false, false, true,
		false, false, false, false,
	},
}

var trapBass = []BassPattern{
	{
		true, false, false, false,
		false, false, false, false,
		false, false, true, false,
		false, false, false, false,
	},
	{
		true, false, false, false,
		false, false, true, false,
		false, false, false, false,
		false, true, false, false,
	},
}

var bassPools = [genreCount][]BassPattern{
	Lofi:        lofiBass,
	Techno:      technoBass,
	Synthwave:   synthwaveBass,
	Ambient:     ambientBass,
	House:       houseBass,
	DrumAndBass: dnbBass,
	Trap:        trapBass,
}
