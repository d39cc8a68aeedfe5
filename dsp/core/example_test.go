package core_test

import (
	"fmt"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(48000),
		core.WithFrameSize(512),
		core.WithDecimation(4),
	)

	fmt.Printf("fs_eff=%.0f bin=%.4f raw=%d\n", cfg.EffectiveSampleRate(), cfg.BinSpacing(), cfg.RawLength())

	// Output:
	// fs_eff=12000 bin=23.4375 raw=2048
}

func ExampleClamp() {
	fmt.Println(core.Clamp(470, 420, 460), core.ClampInt(-120, -99, 99))

	// Output:
	// 460 -99
}
