//go:build tinygo

package main

import (
	"image/color"
	"machine"
	"strconv"
	"time"

	"tinygo.org/x/drivers/st7789"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"

	"github.com/rhythmw9/Chromatic-Tuner/dsp/pitch"
	"github.com/rhythmw9/Chromatic-Tuner/dsp/spectrum"
	"github.com/rhythmw9/Chromatic-Tuner/tuner"
)

var (
	colorBackground = color.RGBA{0, 0, 0, 255}
	colorText       = color.RGBA{255, 255, 255, 255}
	colorHeader     = color.RGBA{0, 160, 255, 255}
	colorInTune     = color.RGBA{0, 255, 0, 255}
	colorOff        = color.RGBA{255, 0, 0, 255}
	colorGrid       = color.RGBA{50, 50, 50, 255}
)

// Screen regions, in pixels.
const (
	headerY   = 24
	readoutY  = 80
	noteY     = 150
	barY      = 190
	barHeight = 16
	refY      = 300

	spectrumTop    = 120
	spectrumBottom = 300
)

// inTuneCents is the deviation drawn in the in-tune colour.
const inTuneCents = 5

func setupDisplay() *st7789.Device {
	spi := machine.SPI1
	err := spi.Configure(machine.SPIConfig{
		Frequency: displaySPIFreq,
		SCK:       displaySCK,
		SDO:       displaySDO,
		SDI:       displaySDI,
	})
	if err != nil {
		println("spi:", err.Error())
	}

	d := st7789.New(spi, displayReset, displayDC, displayCS, displayBL)
	d.Configure(st7789.Config{
		Width:     displayWidth,
		Height:    displayHeight,
		FrameRate: st7789.FRAMERATE_60,
	})
	time.Sleep(200 * time.Millisecond)
	d.FillScreen(colorBackground)
	return &d
}

// panel draws the tuner screens on the display.
type panel struct {
	d    *st7789.Device
	bars []float64
}

var _ tuner.Renderer = (*panel)(nil)

func newPanel(d *st7789.Device) *panel {
	return &panel{d: d}
}

func (p *panel) text(y int16, s string, c color.RGBA) {
	tinyfont.WriteLine(p.d, &freemono.Regular12pt7b, 10, y, s, c)
}

func (p *panel) clearRow(y, h int16) {
	p.d.FillRectangle(0, y-h+4, displayWidth, h, colorBackground)
}

func (p *panel) header(title string) {
	p.d.FillScreen(colorBackground)
	p.text(headerY, title, colorHeader)
	p.d.FillRectangle(0, headerY+8, displayWidth, 2, colorGrid)
}

func (p *panel) DrawWelcome() {
	p.d.FillScreen(colorBackground)
	p.text(140, "Chromatic", colorText)
	p.text(170, "Tuner", colorText)
}

func (p *panel) DrawHome(referenceHz float64) {
	p.header("TUNER")
	p.UpdateReference(referenceHz)
}

func (p *panel) DrawCalibration(referenceHz float64) {
	p.header("CALIBRATE")
	p.text(readoutY, "turn to adjust", colorText)
	p.UpdateReference(referenceHz)
}

func (p *panel) DrawDebug(page int) {
	p.header("DEBUG " + strconv.Itoa(page))
}

func (p *panel) UpdateReadout(frequencyHz float64, cents int) {
	p.clearRow(readoutY, 28)
	if frequencyHz <= 0 {
		return
	}
	p.text(readoutY, strconv.FormatFloat(frequencyHz, 'f', 2, 64)+" Hz", colorText)

	p.d.FillRectangle(0, barY, displayWidth, barHeight, colorGrid)
	mid := int16(displayWidth / 2)
	x := mid + int16(cents*(displayWidth/2-4)/pitch.MaxBarCents)
	c := colorOff
	if cents >= -inTuneCents && cents <= inTuneCents {
		c = colorInTune
	}
	p.d.FillRectangle(mid-1, barY, 2, barHeight, colorText)
	p.d.FillRectangle(x-3, barY, 6, barHeight, c)
}

func (p *panel) UpdateNote(n pitch.Note) {
	p.clearRow(noteY, 28)
	p.text(noteY, n.Name+strconv.Itoa(n.Octave), colorText)
}

func (p *panel) ClearNote() {
	p.clearRow(noteY, 28)
	p.d.FillRectangle(0, barY, displayWidth, barHeight, colorBackground)
}

func (p *panel) UpdateReference(referenceHz float64) {
	p.clearRow(refY, 28)
	p.text(refY, "A4="+strconv.Itoa(int(referenceHz))+" Hz", colorHeader)
}

func (p *panel) UpdateDebug(info tuner.DebugInfo) {
	p.clearRow(readoutY, 60)
	if info.Page == 0 {
		note := info.Note.Name
		if note != "--" {
			note += strconv.Itoa(info.Note.Octave)
		}
		p.text(readoutY-28, strconv.FormatFloat(info.FrequencyHz, 'f', 1, 64)+" Hz", colorText)
		p.text(readoutY, note+" "+strconv.Itoa(info.Cents)+"c", colorText)
		return
	}
	p.clearRow(readoutY+90, 90)
	p.text(readoutY-28, "fs "+strconv.FormatFloat(info.EffectiveRateHz, 'f', 0, 64), colorText)
	p.text(readoutY, "bin "+strconv.FormatFloat(info.BinSpacingHz, 'f', 2, 64), colorText)
	p.text(readoutY+28, "N "+strconv.Itoa(info.FrameSize)+" D "+strconv.Itoa(info.Decimation), colorText)
	p.text(readoutY+56, "pk "+strconv.FormatFloat(info.PeakPower, 'f', 1, 64), colorText)
}

func (p *panel) DrawSpectrum(magnitudes []float64) {
	if cap(p.bars) < len(magnitudes) {
		p.bars = make([]float64, len(magnitudes))
	}
	bars := p.bars[:len(magnitudes)]
	spectrum.LogBars(bars, magnitudes)

	p.ClearSpectrum()
	w := int16(displayWidth / len(bars))
	if w < 1 {
		w = 1
	}
	for i, v := range bars {
		h := int16(v * (spectrumBottom - spectrumTop))
		if h > 0 {
			p.d.FillRectangle(int16(i)*w, spectrumBottom-h, w-1, h, colorInTune)
		}
	}
}

func (p *panel) ClearSpectrum() {
	p.d.FillRectangle(0, spectrumTop, displayWidth, spectrumBottom-spectrumTop, colorBackground)
}
