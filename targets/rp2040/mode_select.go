//go:build rp2040 || rp2350

package main

import "adclab/lab"

// The exercise is picked at build time:
//
//	tinygo flash -target pico ./targets/rp2040                    single axis
//	tinygo flash -target pico -tags threeaxis ./targets/rp2040    X, Y and Z
//	tinygo flash -target pico -tags oversample ./targets/rp2040   64x averaged X
//
// buildMode is defined by the mode_*.go file the tags select.

// GetConfig returns the lab configuration for this build.
func GetConfig() lab.Config {
	return lab.DefaultConfig(buildMode)
}
