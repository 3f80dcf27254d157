// Package xsct adjusts the color temperature and brightness of X11 screens
// by writing RandR gamma ramps, and estimates them back from ramps it reads.
package xsct

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xsct-dev/xsct/sct"
)

// Environment variables overriding the built-in day and night temperatures.
const (
	EnvTemperatureDay   = "XSCT_TEMPERATURE_DAY"
	EnvTemperatureNight = "XSCT_TEMPERATURE_NIGHT"
)

// Built-in day and night preset temperatures.
const (
	DefaultDay   = sct.NormTemp
	DefaultNight sct.Temperature = 4500
)

// toggleDelta is how far below the day temperature a screen may read back
// and still count as day mode when toggling.
const toggleDelta = 200

// Solar elevation thresholds (degrees) for location-based toggling,
// spanning civil twilight.
const (
	solarElevationNight = -6.0
	solarElevationDay   = 3.0
)

// Backend reads and writes the color state of screens. *x11.Display
// implements it. A CRTC index that is out of range for a screen selects all
// of that screen's CRTCs.
type Backend interface {
	ScreenCount() int
	ReadState(screen, crtc int) (sct.State, error)
	ApplyState(screen, crtc int, st sct.State) error
}

// Defaults are the day and night preset temperatures used for resets and
// toggling.
type Defaults struct {
	Day   sct.Temperature
	Night sct.Temperature
}

// DefaultsFromEnv returns the preset temperatures, overridden by the
// XSCT_TEMPERATURE_DAY and XSCT_TEMPERATURE_NIGHT environment variables when
// set. Invalid or out-of-range values fall back to the built-in presets with
// a warning.
func DefaultsFromEnv(logger zerolog.Logger) Defaults {
	return Defaults{
		Day:   envTemperature(EnvTemperatureDay, DefaultDay, logger),
		Night: envTemperature(EnvTemperatureNight, DefaultNight, logger),
	}
}

func envTemperature(name string, dfl sct.Temperature, logger zerolog.Logger) sct.Temperature {
	v, ok := os.LookupEnv(name)
	if !ok {
		return dfl
	}
	x, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		logger.Warn().Str("var", name).Str("value", v).Msg("invalid temperature environment variable, expected an integer")
		return dfl
	}
	return sct.BoundTemperature(sct.Temperature(x), dfl, name, logger)
}

// Request is a single invocation's intent. The presence booleans distinguish
// "not given" from legitimate zero or negative values (deltas may be
// negative).
type Request struct {
	Temperature    sct.Temperature // absolute target, or shift in delta mode
	HasTemperature bool
	Brightness     float64 // absolute value, or shift in delta mode
	HasBrightness  bool

	Delta  bool // treat temperature and brightness as relative shifts
	Toggle bool // flip between the day and night presets first

	Screen int // zero-based screen index, negative for all screens
	Crtc   int // zero-based CRTC index, negative or out of range for all

	// Toggle by the sun's elevation at this location instead of by the
	// currently estimated temperature.
	Latitude    float64
	Longitude   float64
	HasLocation bool
}

// Run executes the request against the backend, writing estimates to out.
// Out-of-range values are corrected and logged as warnings through the
// logger; everything that actually failed is returned as a single joined
// error, and a nil result means the run was error-free.
func Run(b Backend, req Request, dfl Defaults, out io.Writer, logger zerolog.Logger) error {
	nscreen := b.ScreenCount()
	if req.Screen >= nscreen {
		if nscreen > 1 {
			return fmt.Errorf("invalid screen index %d, expected 0..%d", req.Screen, nscreen-1)
		}
		return fmt.Errorf("invalid screen index %d, expected 0", req.Screen)
	}
	first, last := 0, nscreen-1
	if req.Screen >= 0 {
		first, last = req.Screen, req.Screen
	}

	var errs []error
	if req.Toggle {
		errs = append(errs, toggle(b, req, dfl, logger)...)
	}
	if !req.HasBrightness && !req.Delta {
		req.Brightness, req.HasBrightness = 1, true
	}
	switch {
	case !req.HasTemperature && !req.Delta:
		errs = append(errs, estimate(b, req, out, first, last)...)
	case !req.Delta:
		errs = append(errs, absolute(b, req, dfl, logger, first, last)...)
	default:
		errs = append(errs, delta(b, req, logger, first, last)...)
	}
	return joinErrors(errs)
}

// toggle flips every screen between the day and night presets, keeping its
// current brightness. This runs before the other modes and is independent of
// the screen selection.
func toggle(b Backend, req Request, dfl Defaults, logger zerolog.Logger) []error {
	var errs []error
	for i := 0; i < b.ScreenCount(); i++ {
		st, err := b.ReadState(i, req.Crtc)
		if err != nil {
			errs = append(errs, screenError(i, err))
			continue
		}
		if req.HasLocation {
			st.Temperature = sct.Solar(time.Now(), req.Latitude, req.Longitude,
				solarElevationNight, solarElevationDay, dfl.Night, dfl.Day)
		} else if st.Temperature > dfl.Day-toggleDelta {
			st.Temperature = dfl.Night
		} else {
			st.Temperature = dfl.Day
		}
		if err := b.ApplyState(i, req.Crtc, st); err != nil {
			errs = append(errs, screenError(i, err))
		}
	}
	return errs
}

func estimate(b Backend, req Request, out io.Writer, first, last int) []error {
	var errs []error
	for i := first; i <= last; i++ {
		st, err := b.ReadState(i, req.Crtc)
		if err != nil {
			errs = append(errs, screenError(i, err))
			continue
		}
		fmt.Fprintf(out, "Screen[%d]: temperature ~ %d %g\n", i, st.Temperature, st.Brightness)
	}
	return errs
}

func absolute(b Backend, req Request, dfl Defaults, logger zerolog.Logger, first, last int) []error {
	ts := sct.State{Temperature: req.Temperature, Brightness: req.Brightness}
	if ts.Temperature == 0 {
		ts.Temperature = dfl.Day
	} else {
		ts.Bound("specified by user", logger)
	}
	var errs []error
	for i := first; i <= last; i++ {
		if err := b.ApplyState(i, req.Crtc, ts); err != nil {
			errs = append(errs, screenError(i, err))
		}
	}
	return errs
}

func delta(b Backend, req Request, logger zerolog.Logger, first, last int) []error {
	if !req.HasTemperature || !req.HasBrightness {
		return []error{fmt.Errorf("temperature and brightness delta must both be specified")}
	}
	var errs []error
	for i := first; i <= last; i++ {
		st, err := b.ReadState(i, req.Crtc)
		if err != nil {
			errs = append(errs, screenError(i, err))
			continue
		}
		st.Temperature += req.Temperature
		st.Brightness += req.Brightness
		st.Bound("specified by user", logger)
		if err := b.ApplyState(i, req.Crtc, st); err != nil {
			errs = append(errs, screenError(i, err))
		}
	}
	return errs
}

func screenError(screen int, err error) error {
	return fmt.Errorf("screen %d: %w", screen, err)
}

func joinErrors(errs []error) error {
	var joined []error
	for _, err := range errs {
		if err != nil {
			joined = append(joined, err)
		}
	}
	if len(joined) == 0 {
		return nil
	}
	return &runError{errs: joined}
}

// runError aggregates everything that went wrong during a run.
type runError struct {
	errs []error
}

func (e *runError) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *runError) Unwrap() []error {
	return e.errs
}
