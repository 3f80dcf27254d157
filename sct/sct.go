// Package sct converts between a perceptual color temperature plus a
// brightness and the per-channel gamma scaling that produces it, in both
// directions. The forward direction is a piecewise log-linear approximation
// of the redshift table; the reverse direction estimates the temperature and
// brightness that would have produced an existing ramp. It is a fast
// closed-form model for simulating black-body temperature shift, not a
// colorimetrically accurate one.
package sct

import "math"

// Temperature is a color temperature in Kelvin. Lower is warmer/redder,
// higher is cooler/bluer.
type Temperature int

const (
	// MinTemp is the lowest displayable temperature; below it the white
	// point desaturates to pure red.
	MinTemp Temperature = 700

	// NormTemp is the neutral temperature with a white point of (1, 1, 1).
	NormTemp Temperature = 6500
)

const (
	gammaMult = 65535.0

	// brightnessDiv maps the endpoint of a full-brightness neutral ramp
	// back to a brightness of 1.0 on the read path.
	brightnessDiv = 65470.988
)

// Approximation of the redshift table without limits:
// gamma = k0 + k1*ln(T - T0).
const (
	// Red range (T0 = MinTemp).
	k0gr = -1.47751309139817
	k1gr = 0.28590164772055
	k0br = -4.38321650114872
	k1br = 0.6212158769447

	// Blue range (T0 = NormTemp - MinTemp).
	k0rb = 1.75390204039018
	k1rb = -0.1150805671482
	k0gb = 1.49221604915144
	k1gb = -0.07513509588921
)

// WhitePoint is the relative scaling of the red, green, and blue channels of
// a gamma ramp. A component value of 1 is neutral.
type WhitePoint [3]float64

// State is a color temperature plus a brightness in [0, 1]. A temperature of
// 0 is the "no signal" marker: on the write path it means "use the default",
// on the read path it means nothing could be estimated.
type State struct {
	Temperature Temperature
	Brightness  float64
}

// Clamp returns the median of {a, x, b}, which for a <= b is x limited to
// [a, b].
func Clamp(x, a, b float64) float64 {
	buf := [3]float64{a, x, b}
	i := 0
	if x > a {
		i++
	}
	if x > b {
		i++
	}
	return buf[i]
}

// GetWhitePoint computes the white point for a temperature. Below NormTemp
// the red channel is pinned to 1 and green/blue fall off; at or above it the
// blue channel is pinned to 1 and red/green fall off.
func GetWhitePoint(t Temperature) WhitePoint {
	var w WhitePoint
	if t < NormTemp {
		w[0] = 1
		if t > MinTemp {
			g := math.Log(float64(t - MinTemp))
			w[1] = Clamp(k0gr+k1gr*g, 0, 1)
			w[2] = Clamp(k0br+k1br*g, 0, 1)
		}
	} else {
		g := math.Log(float64(t - (NormTemp - MinTemp)))
		w[0] = Clamp(k0rb+k1rb*g, 0, 1)
		w[1] = Clamp(k0gb+k1gb*g, 0, 1)
		w[2] = 1
	}
	return w
}

// EstimateState inverts GetWhitePoint for ramp endpoints summed over ncrtc
// CRTCs. It is only exact for ramps produced by FillRamp; ramps written by
// other tools decode to an approximation, and a zero endpoint (for example
// after setting brightness 0) carries no channel-ratio signal and reports
// temperature 0.
func EstimateState(sum WhitePoint, ncrtc int) State {
	var st State
	st.Brightness = max(sum[0], sum[1], sum[2])
	if st.Brightness <= 0 || ncrtc <= 0 {
		st.Brightness = Clamp(st.Brightness, 0, 1)
		return st
	}
	r := sum[0] / st.Brightness
	g := sum[1] / st.Brightness
	b := sum[2] / st.Brightness
	st.Brightness /= float64(ncrtc)
	st.Brightness /= brightnessDiv
	st.Brightness = Clamp(st.Brightness, 0, 1)

	var t float64
	if gdelta := b - r; gdelta < 0 {
		switch {
		case b > 0:
			// Both green and blue are informative; invert them jointly.
			t = math.Exp((g+1+gdelta-(k0gr+k0br))/(k1gr+k1br)) + float64(MinTemp)
		case g > 0:
			t = math.Exp((g-k0gr)/k1gr) + float64(MinTemp)
		default:
			// Fully desaturated low end.
			t = float64(MinTemp)
		}
	} else {
		t = math.Exp((g+1-gdelta-(k0gb+k0rb))/(k1gb+k1rb)) + float64(NormTemp-MinTemp)
	}
	st.Temperature = Temperature(t + 0.5)
	return st
}
