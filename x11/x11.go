// Package x11 reads and writes per-CRTC gamma ramps through the RandR
// extension of an X server.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/xsct-dev/xsct/sct"
)

// Display is a connection to an X server with the RandR extension
// initialized. It is used sequentially by a single caller; no locking is
// done.
type Display struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	logger zerolog.Logger
}

// Open connects to the specified X display (empty for the default) and
// initializes RandR. The logger is used for debug output.
func Open(display string, logger zerolog.Logger) (*Display, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	if err := randr.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init randr: %w", err)
	}
	return &Display{conn: conn, setup: xproto.Setup(conn), logger: logger}, nil
}

// Close closes the connection. The gamma ramps are left as they are.
func (d *Display) Close() {
	d.conn.Close()
}

// ScreenCount returns the number of screens on the display.
func (d *Display) ScreenCount() int {
	return len(d.setup.Roots)
}

func (d *Display) screenCrtcs(screen int) ([]randr.Crtc, error) {
	root := d.setup.Roots[screen].Root
	res, err := randr.GetScreenResourcesCurrent(d.conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("get screen resources: %w", err)
	}
	return res.Crtcs, nil
}

// selectCrtcs resolves a requested CRTC index to the concrete set of CRTCs
// to act on: a valid index selects exactly that CRTC, anything else selects
// all of them. Both the read and the write path use this.
func selectCrtcs(crtcs []randr.Crtc, icrtc int) []randr.Crtc {
	if icrtc >= 0 && icrtc < len(crtcs) {
		return crtcs[icrtc : icrtc+1]
	}
	return crtcs
}

// ReadState estimates the temperature and brightness of a screen from the
// gamma ramp endpoints of the selected CRTCs.
func (d *Display) ReadState(screen, icrtc int) (sct.State, error) {
	crtcs, err := d.screenCrtcs(screen)
	if err != nil {
		return sct.State{}, err
	}
	crtcs = selectCrtcs(crtcs, icrtc)
	var sum sct.WhitePoint
	for _, crtc := range crtcs {
		gamma, err := randr.GetCrtcGamma(d.conn, crtc).Reply()
		if err != nil {
			return sct.State{}, fmt.Errorf("get crtc gamma: %w", err)
		}
		e := sct.RampEndpoint(gamma.Red, gamma.Green, gamma.Blue)
		sum[0] += e[0]
		sum[1] += e[1]
		sum[2] += e[2]
	}
	st := sct.EstimateState(sum, len(crtcs))
	d.logger.Debug().
		Int("screen", screen).
		Int("crtcs", len(crtcs)).
		Int("temperature", int(st.Temperature)).
		Float64("brightness", st.Brightness).
		Msg("estimated state")
	return st, nil
}

// ApplyState writes the state to the selected CRTCs of a screen, each at its
// own native ramp size. A failed CRTC aborts the screen's update.
func (d *Display) ApplyState(screen, icrtc int, st sct.State) error {
	crtcs, err := d.screenCrtcs(screen)
	if err != nil {
		return err
	}
	w := sct.GetWhitePoint(st.Temperature)
	d.logger.Debug().
		Int("screen", screen).
		Float64("red", w[0]).
		Float64("green", w[1]).
		Float64("blue", w[2]).
		Float64("brightness", st.Brightness).
		Msg("white point")
	for _, crtc := range selectCrtcs(crtcs, icrtc) {
		size, err := randr.GetCrtcGammaSize(d.conn, crtc).Reply()
		if err != nil {
			return fmt.Errorf("get crtc gamma size: %w", err)
		}
		r := make([]uint16, size.Size)
		g := make([]uint16, size.Size)
		b := make([]uint16, size.Size)
		sct.FillRamp(r, g, b, st)
		if err := randr.SetCrtcGammaChecked(d.conn, crtc, size.Size, r, g, b).Check(); err != nil {
			return fmt.Errorf("set crtc gamma: %w", err)
		}
	}
	return nil
}
