//go:build rp2040 || rp2350

package main

import (
	"machine"

	"tinygo.org/x/drivers/ssd1331"

	"adclab/core"
)

// OLED wiring: a 96x64 SSD1331 on SPI0.
const (
	oledSCK = machine.GPIO18
	oledSDO = machine.GPIO19
	oledCS  = machine.GPIO17
	oledDC  = machine.GPIO20
	oledRST = machine.GPIO21

	oledWidth  = 96
	oledHeight = 64
)

// oled adapts the ssd1331 driver to core.Display.
type oled struct {
	ssd1331.Device
}

func newOLED() *oled {
	return &oled{Device: ssd1331.New(machine.SPI0, oledRST, oledDC, oledCS)}
}

// Init brings up SPI and the panel and clears it.
func (o *oled) Init() {
	err := machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 8000000,
		SCK:       oledSCK,
		SDO:       oledSDO,
	})
	if err != nil {
		core.DebugPrintln("[OLED] spi configure failed: " + err.Error())
	}
	o.Configure(ssd1331.Config{Width: oledWidth, Height: oledHeight})
	o.FillScreen(core.ClrBlack)
}
