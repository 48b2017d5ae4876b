package board

import "fmt"

const rgbSubCommand = 0x01

// maxPixels is how many pixels fit into a single frame
const maxPixels = (MaxPayload - 2) / 4

// Pixel is one of the board's rgb leds, Index starts at 1
type Pixel struct {
	Index   int
	R, G, B uint8
}

// RGB sets the color of the listed pixels, the rest keep theirs
type RGB struct {
	Pixels []Pixel
}

// RGBOff switches the given pixels off
func RGBOff(indices ...int) RGB {
	px := make([]Pixel, 0, len(indices))
	for _, ix := range indices {
		px = append(px, Pixel{Index: ix})
	}

	return RGB{Pixels: px}
}

// RGBAll sets all the given pixels to the same color
func RGBAll(r, g, b uint8, indices ...int) RGB {
	px := make([]Pixel, 0, len(indices))
	for _, ix := range indices {
		px = append(px, Pixel{Index: ix, R: r, G: g, B: b})
	}

	return RGB{Pixels: px}
}

func (c RGB) Function() Function {
	return FuncRGB
}

func (c RGB) Payload() ([]byte, error) {
	if len(c.Pixels) > maxPixels {
		return nil, fmt.Errorf("%w: %v pixels", ErrPayloadTooLong, len(c.Pixels))
	}

	buf := make([]byte, 0, 2+len(c.Pixels)*4)
	buf = append(buf, rgbSubCommand, byte(len(c.Pixels)))
	for _, p := range c.Pixels {
		if p.Index < 1 || p.Index > 256 {
			return nil, fmt.Errorf("%w: pixel index %v", ErrOutOfRange, p.Index)
		}
		// the wire format counts pixels from zero
		buf = append(buf, byte(p.Index-1), p.R, p.G, p.B)
	}

	return buf, nil
}
