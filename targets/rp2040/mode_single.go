//go:build (rp2040 || rp2350) && !threeaxis && !oversample

package main

import "adclab/lab"

const buildMode = lab.SingleAxis
