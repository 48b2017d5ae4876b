//go:build !amd64
// +build !amd64

// display shows what was last sent to the board on a ssd1306 oled
package display

import (
	"image"
	"sync"

	"code.sztanpet.net/zvpsz/rrc/internal/buzzer"
	"github.com/juju/loggo"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/devices/ssd1306"
	"periph.io/x/periph/devices/ssd1306/image1bit"
	"periph.io/x/periph/host"
)

var logger = loggo.GetLogger("rrc.display")

var textFont = inconsolata.Bold8x16

type Screen struct {
	mu  sync.Mutex
	bus i2c.BusCloser
	dev *ssd1306.Dev
	img *image1bit.VerticalLSB
}

// NewScreen finds the oled on the default i2c bus
func NewScreen() (*Screen, error) {
	if _, err := host.Init(); err != nil {
		logger.Infof("no display detected, skipping: %v", err)
		return nil, err
	}

	b, err := i2creg.Open("")
	if err != nil {
		logger.Infof("could not open i2c bus, display disabled: %v", err)
		return nil, err
	}

	opts := ssd1306.DefaultOpts
	opts.Rotated = false
	dev, err := ssd1306.NewI2C(b, &opts)
	if err != nil {
		_ = b.Close()
		logger.Infof("could not find ssd1306 screen, display disabled: %v", err)
		return nil, err
	}

	return &Screen{
		bus: b,
		dev: dev,
		img: image1bit.NewVerticalLSB(dev.Bounds()),
	}, nil
}

// ShowPattern replaces the screen contents with p
func (s *Screen) ShowPattern(p buzzer.Pattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.img = image1bit.NewVerticalLSB(s.dev.Bounds())
	for i, l := range patternLines(p) {
		s.drawLine(i, l)
	}

	return s.dev.Draw(s.dev.Bounds(), s.img, image.Point{})
}

func (s *Screen) drawLine(linenum int, text string) {
	height := s.img.Bounds().Dy() - textFont.Descent
	// "invert" the linenumber
	// 0-th line should be the top, 3rd line should be at the bottom
	height -= (lineCount - 1 - linenum) * textFont.Height
	drawer := font.Drawer{
		Dst:  s.img,
		Src:  &image.Uniform{image1bit.On},
		Face: textFont,
		Dot:  fixed.P(0, height),
	}

	drawer.DrawString(text)
}

// Close blanks the screen and releases the bus
func (s *Screen) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	img := image1bit.NewVerticalLSB(s.dev.Bounds())
	if err := s.dev.Draw(s.dev.Bounds(), img, image.Point{}); err != nil {
		logger.Debugf("failed blanking screen: %v", err)
	}

	return s.bus.Close()
}
