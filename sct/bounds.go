package sct

import "github.com/rs/zerolog"

// BoundTemperature corrects an out-of-range temperature, logging a warning
// for the correction. A negative dfl selects the model's own fallback:
// NormTemp for temperatures at or below zero, MinTemp for temperatures below
// the displayable floor.
func BoundTemperature(t, dfl Temperature, what string, logger zerolog.Logger) Temperature {
	switch {
	case t <= 0:
		logger.Warn().Str("temperature", what).Msg("temperatures of 0 and below cannot be displayed")
		if dfl < 0 {
			return NormTemp
		}
		return dfl
	case t < MinTemp:
		logger.Warn().Str("temperature", what).Msgf("temperatures below %d cannot be displayed", MinTemp)
		if dfl < 0 {
			return MinTemp
		}
		return dfl
	}
	return t
}

// BoundBrightness clamps a brightness to [0, 1], logging a warning when it
// was out of range.
func BoundBrightness(b float64, logger zerolog.Logger) float64 {
	if b < 0 {
		logger.Warn().Msg("brightness values below 0.0 cannot be displayed")
		return 0
	}
	if b > 1 {
		logger.Warn().Msg("brightness values above 1.0 cannot be displayed")
		return 1
	}
	return b
}

// Bound corrects both members in place, always using the model fallbacks for
// the temperature.
func (s *State) Bound(what string, logger zerolog.Logger) {
	s.Temperature = BoundTemperature(s.Temperature, -1, what, logger)
	s.Brightness = BoundBrightness(s.Brightness, logger)
}
