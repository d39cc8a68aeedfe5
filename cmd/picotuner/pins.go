//go:build tinygo

package main

import "machine"

const (
	displaySPIFreq = 20_000_000
	displaySCK     = machine.Pin(26)
	displaySDO     = machine.Pin(27)
	displaySDI     = machine.Pin(28)
	displayReset   = machine.Pin(22)
	displayDC      = machine.Pin(21)
	displayCS      = machine.Pin(20)
	displayBL      = machine.Pin(23)

	displayWidth  = 240
	displayHeight = 320
)

const (
	encA      = machine.Pin(6)
	encB      = machine.Pin(7)
	encButton = machine.Pin(8)

	adcPin = machine.ADC0
)

// buttonPins are panel buttons 1..4: main, debug, calibration, spare.
var buttonPins = [4]machine.Pin{
	machine.Pin(10),
	machine.Pin(11),
	machine.Pin(12),
	machine.Pin(13),
}
