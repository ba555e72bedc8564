package constants

import "testing"

func TestShakeModeRates(t *testing.T) {
	if SHAKE128.Rate() != 168 {
		t.Errorf("SHAKE-128 rate = %d", SHAKE128.Rate())
	}
	if SHAKE256.Rate() != 136 {
		t.Errorf("SHAKE-256 rate = %d", SHAKE256.Rate())
	}
}

func TestShakeModeNames(t *testing.T) {
	if SHAKE128.String() != "SHAKE-128" || SHAKE256.String() != "SHAKE-256" {
		t.Error("mode names")
	}
	if ShakeMode(0).String() != "Unknown" {
		t.Error("unknown mode name")
	}
	if !SHAKE128.IsSupported() || !SHAKE256.IsSupported() || ShakeMode(9).IsSupported() {
		t.Error("IsSupported")
	}
}

func TestLimits(t *testing.T) {
	if CSGMaxRequest != 65536 {
		t.Error("CSGMaxRequest")
	}
	if CSGMaxOutput != uint64(1)<<45 {
		t.Error("CSGMaxOutput")
	}
	if CSGMaxReseed != 1<<29 {
		t.Error("CSGMaxReseed")
	}
	if BCRBufferSize < BCRBufferMin {
		t.Error("buffer defaults inconsistent")
	}
}

func TestEnumNames(t *testing.T) {
	if AHX.String() != "AHX" || SHXCipher.String() != "SHX" {
		t.Error("cipher names")
	}
	if ProviderCSP.String() != "CSP" || ProviderACP.String() != "ACP" || ProviderNone.String() != "None" {
		t.Error("provider names")
	}
}
