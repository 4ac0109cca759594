package gpiomem

import (
	"github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"

	"github.com/euikook/gpiomem/platform"
	"github.com/euikook/gpiomem/regions"
)

// Config carries what Probe cannot discover on its own.
type Config struct {
	// Name is the device-node name; DeviceName when empty.
	Name string
	// Minor is the one minor number the session gate recognizes.
	Minor int
	// Mapper is the page-mapping primitive. Probe takes ownership: it is
	// closed when probing fails and when the device is removed.
	Mapper platform.Mapper
	// Registrar, when set, announces the device identity. Its release runs
	// on removal.
	Registrar platform.Registrar
}

// Probe builds the register-window table from the board resources and
// brings one device up. Every acquisition registers its own release; when
// a later step fails, everything acquired so far unwinds in reverse order
// and no device becomes available.
func Probe(res platform.Resources, conf Config) (*Device, error) {
	name := conf.Name
	if name == "" {
		name = DeviceName
	}
	if conf.Mapper == nil {
		return nil, errors.Errorf("probe of %s needs a mapper", name)
	}

	dev := &Device{name: name, minor: conf.Minor}
	up := false
	defer func() {
		if !up {
			dev.unwind()
		}
	}()

	dev.mapper = conf.Mapper
	dev.onRemove(func() {
		if cerr := conf.Mapper.Close(); cerr != nil {
			log.WithFields(log.Fields{"device": name, "error": cerr}).Warning("closing mapper failed")
		}
	})

	count, err := regions.RegionCountFromCells(len(res.RegCells()))
	if err != nil {
		log.WithFields(log.Fields{"device": name, "error": err}).Error("failed to get gpio register area")
		return nil, err
	}
	if count <= 0 || count > regions.MaxRegions {
		log.WithFields(log.Fields{"device": name, "count": count}).Error("failed to get gpio register area")
		return nil, errors.Wrap(regions.ErrRegionCount, 0)
	}

	wins := make([]regions.Region, 0, count)
	for i := 0; i < count; i++ {
		win, ok := res.MemResource(i)
		if !ok || !win.IsValid() {
			log.WithFields(log.Fields{"device": name, "area": i}).Error("failed to get io resource area")
			return nil, errors.Wrap(ErrNoResource, 0)
		}
		wins = append(wins, win)
	}
	dev.table, err = regions.NewTable(wins)
	if err != nil {
		return nil, err
	}

	if conf.Registrar != nil {
		release, rerr := conf.Registrar.Register(name, conf.Minor)
		if rerr != nil {
			log.WithFields(log.Fields{"device": name, "error": rerr}).Error("unable to register device")
			return nil, errors.Wrap(rerr, 0)
		}
		dev.onRemove(release)
	}

	log.WithFields(log.Fields{"driver": DriverName, "device": name, "areas": dev.table.Len()}).Info("initialised gpio register areas")
	for i := 0; i < dev.table.Len(); i++ {
		win := dev.table.At(i)
		log.WithFields(log.Fields{
			"device": name,
			"start":  hex(win.Start),
			"end":    hex(win.End),
			"size":   hex(win.Size()),
		}).Info("registers available")
	}
	up = true
	return dev, nil
}

// onRemove registers one release step. Steps run in reverse order.
func (d *Device) onRemove(f func()) {
	d.releases = append(d.releases, f)
}

func (d *Device) unwind() {
	for i := len(d.releases) - 1; i >= 0; i-- {
		d.releases[i]()
	}
	d.releases = nil
}

// Remove tears the device down: the registration is released and the
// mapper closed, in reverse acquisition order. The caller must make sure
// no call is still in flight; mappings already handed out stay with their
// owners.
func (d *Device) Remove() {
	d.unwind()
	log.WithFields(log.Fields{"device": d.name}).Info("gpiomem device removed")
}
