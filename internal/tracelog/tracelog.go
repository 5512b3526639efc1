// Package tracelog is the one shared logrus logger every package in
// this repo logs through, so a caller can swap formatters/levels in one
// place (grounded on delve's own use of logrus as its structured logging
// library, see _examples/other_examples/manifests/devilkun-delve/go.mod).
package tracelog

import "github.com/sirupsen/logrus"

var std = logrus.New()

// Logger returns the shared logger.
func Logger() *logrus.Logger { return std }

// SetLevel parses level (e.g. "debug", "warn") and applies it, returning
// an error if level isn't a recognized logrus level name.
func SetLevel(level string) error {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lv)
	return nil
}

// WithField is shorthand for the common single-field case (an offset,
// an address, a register number) call sites reach for most often.
func WithField(key string, value interface{}) *logrus.Entry {
	return std.WithField(key, value)
}
