package transform

import "math"

// Darken applies fixed-gamma darkening: each channel is normalized to
// [0,1], raised to Gamma, and rescaled to [0,255]. Deterministic and
// stateless; repeated application keeps lowering brightness.
type Darken struct {
	lut [256]byte
}

// NewDarken builds the per-channel lookup table for the given gamma
func NewDarken(gamma float64) *Darken {
	d := &Darken{}
	for v := 0; v < 256; v++ {
		d.lut[v] = byte(math.Pow(float64(v)/255.0, gamma) * 255.0)
	}
	return d
}

// Apply darkens a copy of the frame; alpha is untouched
func (d *Darken) Apply(frame *Frame, _ Position) (*Frame, error) {
	out := frame.Clone()
	for i := 0; i+3 < len(out.Pix); i += 4 {
		out.Pix[i] = d.lut[out.Pix[i]]
		out.Pix[i+1] = d.lut[out.Pix[i+1]]
		out.Pix[i+2] = d.lut[out.Pix[i+2]]
	}
	return out, nil
}
