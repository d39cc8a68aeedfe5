package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithFrameSize(256), WithDecimation(2))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.FrameSize != 256 {
		t.Fatalf("frame size = %d, want 256", cfg.FrameSize)
	}
	if cfg.Decimation != 2 {
		t.Fatalf("decimation = %d, want 2", cfg.Decimation)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithFrameSize(300), WithDecimation(-1))
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestDerivedRates(t *testing.T) {
	cfg := DefaultProcessorConfig()

	if got, want := cfg.EffectiveSampleRate(), 100e6/2048/4; got != want {
		t.Fatalf("EffectiveSampleRate() = %v, want %v", got, want)
	}
	if got, want := cfg.BinSpacing(), 100e6/2048/4/512; !NearlyEqual(got, want, 1e-12) {
		t.Fatalf("BinSpacing() = %v, want %v", got, want)
	}
	if got := cfg.RawLength(); got != 2048 {
		t.Fatalf("RawLength() = %d, want 2048", got)
	}
}
