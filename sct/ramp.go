package sct

// FillRamp populates a gamma ramp for a state. Each channel is a linear ramp
// scaled by the brightness and the channel's white point component, quantized
// round-half-up to the full uint16 range. The channel slices are sized by the
// caller to the output's native ramp size and may differ in length.
func FillRamp(r, g, b []uint16, st State) {
	w := GetWhitePoint(st.Temperature)
	br := Clamp(st.Brightness, 0, 1)
	for i := range r {
		r[i] = uint16(gammaMult*br*float64(i)/float64(len(r))*w[0] + 0.5)
	}
	for i := range g {
		g[i] = uint16(gammaMult*br*float64(i)/float64(len(g))*w[1] + 0.5)
	}
	for i := range b {
		b[i] = uint16(gammaMult*br*float64(i)/float64(len(b))*w[2] + 0.5)
	}
}

// RampEndpoint summarizes a ramp as the final sample of each channel, which
// under FillRamp equals the brightness-scaled white point. Endpoints from
// multiple CRTCs may be added together and passed to EstimateState.
func RampEndpoint(r, g, b []uint16) WhitePoint {
	var w WhitePoint
	if n := len(r); n > 0 {
		w[0] = float64(r[n-1])
	}
	if n := len(g); n > 0 {
		w[1] = float64(g[n-1])
	}
	if n := len(b); n > 0 {
		w[2] = float64(b[n-1])
	}
	return w
}
