//go:build tinygo

// Command picotuner is the chromatic tuner firmware for an RP2040 board with
// an ST7789 panel, four push buttons and a rotary encoder.
package main

import (
	"context"
	"machine"
	"time"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/trig"
	"github.com/rhythmw9/Chromatic-Tuner/input"
	"github.com/rhythmw9/Chromatic-Tuner/tuner"
)

const (
	// Period of one timebase tick.
	tickPeriod = time.Millisecond
	// Pause between loop passes.
	loopPause = 5 * time.Millisecond
)

func main() {
	time.Sleep(500 * time.Millisecond)
	println("picotuner starting")

	display := setupDisplay()
	screen := newPanel(display)

	board := setupBoard()
	src := newADCSource(adcPin)

	t, err := tuner.New(src, screen, tuner.WithTrig(trig.Series{}))
	if err != nil {
		println("tuner:", err.Error())
		for {
			time.Sleep(time.Second)
		}
	}

	ticker := input.NewTicker(board.Clock, tickPeriod, time.Now())
	pace := func() {
		time.Sleep(loopPause)
		ticker.Advance(time.Now())
	}

	t.Start()
	loop := tuner.NewLoop(t, board, tuner.WithPacer(pace))
	if err := loop.Run(context.Background()); err != nil {
		println("loop:", err.Error())
	}
}

func setupBoard() *input.Board {
	for _, p := range []machine.Pin{encA, encB, encButton} {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	for _, p := range buttonPins {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}

	board := input.NewBoard(readPhase())

	encoderEdge := func(machine.Pin) { board.Encoder.HandleEdge(readLines()) }
	for _, p := range []machine.Pin{encA, encB, encButton} {
		p.SetInterrupt(machine.PinToggle, encoderEdge)
	}

	buttonEdge := func(machine.Pin) {
		var bits uint32
		for i, p := range buttonPins {
			if !p.Get() {
				bits |= 1 << i
			}
		}
		board.Buttons.HandleInterrupt(bits)
	}
	for _, p := range buttonPins {
		p.SetInterrupt(machine.PinFalling, buttonEdge)
	}

	return board
}

func readPhase() input.Phase {
	var p input.Phase
	if encA.Get() {
		p |= 2
	}
	if encB.Get() {
		p |= 1
	}
	return p
}

func readLines() uint8 {
	var lines uint8
	if encA.Get() {
		lines |= input.LineA
	}
	if encB.Get() {
		lines |= input.LineB
	}
	if encButton.Get() {
		lines |= input.LineButton
	}
	return lines
}
