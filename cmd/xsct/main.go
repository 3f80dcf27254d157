// Command xsct sets the color temperature and brightness of X11 screens
// through RandR gamma ramps, or estimates them from the current ramps when
// invoked without arguments.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/xsct-dev/xsct"
	"github.com/xsct-dev/xsct/sct"
	"github.com/xsct-dev/xsct/x11"
)

const version = "2.4"

func main() {
	os.Exit(run())
}

func run() int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)

	flags := pflag.NewFlagSet("xsct", pflag.ContinueOnError)
	flags.SortFlags = false
	var (
		verbose    = flags.BoolP("verbose", "v", false, "display debugging information")
		deltaMode  = flags.BoolP("delta", "d", false, "treat temperature and brightness as relative shifts")
		toggleMode = flags.BoolP("toggle", "t", false, "toggle between day and night mode")
		screen     = flags.IntP("screen", "s", -1, "only select the screen with this zero-based index")
		crtc       = flags.IntP("crtc", "c", -1, "only select the CRTC with this zero-based index")
		location   = flags.StringP("location", "l", "", "LAT:LNG, toggle by solar elevation instead of the current temperature")
	)
	flags.Usage = func() { usage(flags) }

	flagArgs, positionals := splitNumeric(os.Args[1:])
	if err := flags.Parse(flagArgs); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0 // usage was already printed
		}
		logger.Error().Msg(err.Error())
		flags.Usage()
		return 1
	}
	positionals = append(positionals, flags.Args()...)
	if *verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	req := xsct.Request{
		Delta:  *deltaMode,
		Toggle: *toggleMode,
		Screen: *screen,
		Crtc:   *crtc,
	}
	if len(positionals) > 2 {
		logger.Error().Msgf("unrecognized argument %q", positionals[2])
		flags.Usage()
		return 1
	}
	if len(positionals) >= 1 {
		t, err := strconv.Atoi(positionals[0])
		if err != nil {
			logger.Error().Msgf("invalid temperature argument %q, expected an integer", positionals[0])
			flags.Usage()
			return 1
		}
		req.Temperature, req.HasTemperature = sct.Temperature(t), true
	}
	if len(positionals) == 2 {
		b, err := strconv.ParseFloat(positionals[1], 64)
		if err != nil {
			logger.Error().Msgf("invalid brightness argument %q, expected a number", positionals[1])
			flags.Usage()
			return 1
		}
		req.Brightness, req.HasBrightness = b, true
	}
	if *location != "" {
		lat, lng, err := parseLocation(*location)
		if err != nil {
			logger.Error().Msgf("invalid location %q, expected LAT:LNG", *location)
			flags.Usage()
			return 1
		}
		req.Latitude, req.Longitude, req.HasLocation = lat, lng, true
	}

	dfl := xsct.DefaultsFromEnv(logger)

	d, err := x11.Open("", logger)
	if err != nil {
		logger.Error().Err(err).Msg("could not open a connection to the X server")
		logger.Info().Msg("ensure the DISPLAY environment variable is set correctly")
		return 1
	}
	defer d.Close()

	if err := xsct.Run(d, req, dfl, os.Stdout, logger); err != nil {
		for _, err := range unwrapAll(err) {
			logger.Error().Msg(err.Error())
		}
		return 1
	}
	return 0
}

func usage(flags *pflag.FlagSet) {
	fmt.Printf("xsct (%s)\n", version)
	fmt.Println("Usage: xsct [options] [temperature] [brightness]")
	fmt.Println("\tIf the temperature is 0, xsct resets the display to the default temperature (6500K)")
	fmt.Println("\tIf no arguments are passed, xsct estimates the current display temperature and brightness")
	fmt.Println("Options:")
	fmt.Print(flags.FlagUsages())
}

// splitNumeric separates numeric-looking tokens (the temperature and
// brightness positionals, which may be negative in delta mode) from the flag
// arguments so the flag parser does not mistake a value like -500 for a
// flag. Values of index-taking flags stay with their flag.
func splitNumeric(args []string) (flagArgs, positionals []string) {
	takesValue := map[string]bool{
		"-s": true, "--screen": true,
		"-c": true, "--crtc": true,
		"-l": true, "--location": true,
	}
	for i := 0; i < len(args); i++ {
		if takesValue[args[i]] {
			flagArgs = append(flagArgs, args[i])
			if i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
			continue
		}
		if _, err := strconv.ParseFloat(args[i], 64); err == nil {
			positionals = append(positionals, args[i])
			continue
		}
		flagArgs = append(flagArgs, args[i])
	}
	return flagArgs, positionals
}

func parseLocation(s string) (lat, lng float64, err error) {
	latStr, lngStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("missing separator")
	}
	if lat, err = strconv.ParseFloat(latStr, 64); err != nil {
		return 0, 0, err
	}
	if lng, err = strconv.ParseFloat(lngStr, 64); err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

func unwrapAll(err error) []error {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		return u.Unwrap()
	}
	return []error{err}
}
