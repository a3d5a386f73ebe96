package quality

import "testing"

func TestExactlyThreePresets(t *testing.T) {
	all := All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d profiles, want 3", len(all))
	}
	want := []Preset{PresetStandard, PresetExtended, PresetMaximum}
	for i, p := range all {
		if p.Preset != want[i] {
			t.Errorf("All()[%d] = %s, want %s", i, p.Preset, want[i])
		}
	}
}

func TestMaxDurationIsFloorOfSizeCap(t *testing.T) {
	cases := []struct {
		preset      Preset
		bytesPerSec int
		maxSeconds  int
	}{
		{PresetStandard, 32000, 655},
		{PresetExtended, 16000, 1310},
		{PresetMaximum, 8000, 2621},
	}
	for _, c := range cases {
		p, err := ForPreset(c.preset)
		if err != nil {
			t.Fatalf("ForPreset(%s): %v", c.preset, err)
		}
		if got := p.BytesPerSecond(); got != c.bytesPerSec {
			t.Errorf("%s: BytesPerSecond() = %d, want %d", c.preset, got, c.bytesPerSec)
		}
		if got := p.MaxDurationSeconds(); got != c.maxSeconds {
			t.Errorf("%s: MaxDurationSeconds() = %d, want %d", c.preset, got, c.maxSeconds)
		}
		// The estimate must never exceed the cap.
		if p.MaxDurationSeconds()*p.BytesPerSecond() > MaxFileSizeBytes {
			t.Errorf("%s: max duration overshoots the size cap", c.preset)
		}
	}
}

func TestForPresetUnknown(t *testing.T) {
	if _, err := ForPreset("cinema"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestParsePresetFallsBackToDefault(t *testing.T) {
	if got := ParsePreset("standard"); got != PresetStandard {
		t.Errorf("ParsePreset(standard) = %s", got)
	}
	if got := ParsePreset("bogus"); got != DefaultPreset {
		t.Errorf("ParsePreset(bogus) = %s, want %s", got, DefaultPreset)
	}
	if got := ParsePreset(""); got != DefaultPreset {
		t.Errorf("ParsePreset(\"\") = %s, want %s", got, DefaultPreset)
	}
}

func TestBitDepth(t *testing.T) {
	standard, _ := ForPreset(PresetStandard)
	if standard.BitDepth() != 16 {
		t.Errorf("standard BitDepth() = %d, want 16", standard.BitDepth())
	}
	maximum, _ := ForPreset(PresetMaximum)
	if maximum.BitDepth() != 8 {
		t.Errorf("maximum BitDepth() = %d, want 8", maximum.BitDepth())
	}
}
