// Package gpiomem lets user space map board-defined GPIO register windows
// without opening up the whole physical address space: a mapping request
// is honored only when it falls entirely inside one of the windows the
// platform declared at probe time.
package gpiomem

import (
	"fmt"

	"github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"

	"github.com/euikook/gpiomem/platform"
	"github.com/euikook/gpiomem/regions"
)

// Device identity defaults.
const (
	DeviceName  = "gpiomem"
	DriverName  = "sunxi-gpiomem"
	DeviceMinor = 0
)

// Device is one probed gpiomem instance: the immutable register-window
// table plus the platform collaborators acquired for it. Open, Release and
// Map are safe for concurrent use; Remove is the owner's job and must not
// race in-flight calls.
type Device struct {
	name     string
	minor    int
	table    *regions.Table
	mapper   platform.Mapper
	releases []func()
}

// Name returns the device-node name.
func (d *Device) Name() string { return d.name }

// Table returns the register-window table. It is read-only.
func (d *Device) Table() *regions.Table { return d.table }

// Open starts a session. The only recognized identity is the minor the
// device was probed with; any other minor is refused and consumes nothing.
func (d *Device) Open(minor int) (*Session, error) {
	if minor != d.minor {
		log.WithFields(log.Fields{"device": d.name, "minor": minor}).Error("unknown minor device")
		return nil, errors.Wrap(ErrUnknownMinor, 0)
	}
	log.WithFields(log.Fields{"device": d.name, "minor": minor}).Info("gpiomem device opened")
	return &Session{dev: d, minor: minor}, nil
}

// Session is the state between Open and Release. It holds no resources and
// keeps no record of the mappings it admitted; those belong to their
// callers.
type Session struct {
	dev   *Device
	minor int
}

// Release ends the session. Like Open it validates the identity; there is
// nothing else to undo.
func (s *Session) Release() error {
	if s.minor != s.dev.minor {
		log.WithFields(log.Fields{"device": s.dev.name, "minor": s.minor}).Error("unknown minor device")
		return errors.Wrap(ErrUnknownMinor, 0)
	}
	return nil
}

// Map decides admission for the requested physical range and, when some
// register window fully contains it, installs the pages through the
// platform mapper. The forwarded range and protection are exactly the
// requested ones; the matched window only gates the decision. A denied
// range stays denied forever, a mapper failure is transient.
func (s *Session) Map(req platform.Request) (platform.Mapping, error) {
	win, ok := s.dev.table.Find(req.Start, req.End())
	if !ok {
		log.WithFields(log.Fields{
			"device": s.dev.name,
			"start":  hex(req.Start),
			"end":    hex(req.End()),
		}).Warning("map request outside register windows")
		return nil, errors.Wrap(ErrAccessDenied, 0)
	}
	log.WithFields(log.Fields{
		"device": s.dev.name,
		"start":  hex(req.Start),
		"end":    hex(req.End()),
		"window": fmt.Sprintf("%s-%s", hex(win.Start), hex(win.End)),
	}).Debug("map request admitted")

	m, err := s.dev.mapper.Map(req)
	if err != nil {
		log.WithFields(log.Fields{
			"device": s.dev.name,
			"start":  hex(req.Start),
			"error":  err,
		}).Error("mapping pages failed")
		return nil, errors.Wrap(fmt.Errorf("%w: %v", ErrMapFailed, err), 0)
	}
	return m, nil
}

func hex(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}
