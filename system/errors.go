// Package system holds the frame systems and event handlers that mutate the simulation
package system

import "errors"

var (
	ErrDerailed         = errors.New("train derailed")
	ErrPulseCooldown    = errors.New("pulse cooling down")
	ErrRebootNotNeeded  = errors.New("reboot not needed")
	ErrRebootInFlight   = errors.New("reboot already in flight")
	ErrGodModeDisabled  = errors.New("god mode disabled")
	ErrLiveryOutOfRange = errors.New("livery index out of range")
)
