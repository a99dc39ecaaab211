//go:build (rp2040 || rp2350) && oversample && !threeaxis

package main

import "adclab/lab"

const buildMode = lab.OversampledSingleAxis
