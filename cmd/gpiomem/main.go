// gpiomem maps a window of GPIO registers and dumps it as 32-bit words.
//
// By default it exposes the sun8i-h3 layout and maps the whole first
// window out of /dev/mem, which needs root. With -sim it runs against a
// simulated register image instead and works anywhere:
//
//	gpiomem -sim -addr 0x01c20800 -len 0x40
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/euikook/gpiomem"
	"github.com/euikook/gpiomem/platform"
	"github.com/euikook/gpiomem/regions"
)

var (
	boardName  = flag.String("board", "sun8i-h3", "board layout to expose")
	rawRegions = flag.String("regions", "", "custom start:size windows overriding the board, e.g. 0x01c20800:0x400,0x01f02c00:0x400")
	devPath    = flag.String("dev", platform.DevMemPath, "physical memory device node")
	useSim     = flag.Bool("sim", false, "use the simulated backend instead of a memory device")
	seed       = flag.Uint64("seed", 0, "seed for the simulated register image")
	addrFlag   = flag.String("addr", "", "window start address; the first board window when empty")
	lenFlag    = flag.String("len", "", "window length in bytes; the whole window when empty")
	protFlag   = flag.String("prot", "rw", "access protection, any of r, w, x")
	verbose    = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	log.SetLevel(log.ErrorLevel)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	res, err := resources()
	check(err, "could not resolve the board layout")

	mapper, registrar, err := backend()
	check(err, "could not open the mapping backend")

	dev, err := gpiomem.Probe(res, gpiomem.Config{Mapper: mapper, Registrar: registrar})
	check(err, "could not load gpiomem")
	defer dev.Remove()

	sess, err := dev.Open(gpiomem.DeviceMinor)
	check(err, "could not open the device")
	defer sess.Release()

	req, err := request(dev)
	check(err, "bad window request")

	win, err := sess.Map(req)
	check(err, "could not map the window")
	defer win.Close()

	dump(req.Start, win.Bytes())
}

func check(err error, msg string) {
	if err != nil {
		log.WithFields(log.Fields{"error": err}).Fatal(msg)
	}
}

func resources() (platform.Resources, error) {
	if *rawRegions != "" {
		wins, err := parseRegions(*rawRegions)
		if err != nil {
			return nil, err
		}
		return platform.NewStaticResources(wins...), nil
	}
	res, ok := platform.Board(*boardName)
	if !ok {
		return nil, fmt.Errorf("unknown board %q", *boardName)
	}
	return res, nil
}

func backend() (platform.Mapper, platform.Registrar, error) {
	if *useSim {
		return platform.NewSim(*seed, platform.DefaultSimSlots), platform.NewSimRegistrar(), nil
	}
	m, err := platform.OpenDevMem(*devPath)
	if err != nil {
		return nil, nil, err
	}
	return m, nil, nil
}

func request(dev *gpiomem.Device) (platform.Request, error) {
	win := dev.Table().At(0)
	start, length := win.Start, win.Size()

	if *addrFlag != "" {
		v, err := strconv.ParseUint(*addrFlag, 0, 64)
		if err != nil {
			return platform.Request{}, fmt.Errorf("-addr %q: %v", *addrFlag, err)
		}
		if *lenFlag == "" {
			return platform.Request{}, fmt.Errorf("-addr needs -len")
		}
		start = v
	}
	if *lenFlag != "" {
		v, err := strconv.ParseUint(*lenFlag, 0, 64)
		if err != nil {
			return platform.Request{}, fmt.Errorf("-len %q: %v", *lenFlag, err)
		}
		length = v
	}

	prot, err := parseProt(*protFlag)
	if err != nil {
		return platform.Request{}, err
	}
	return platform.Request{Start: start, Length: length, Prot: prot}, nil
}

func parseProt(s string) (regions.Prot, error) {
	var prot regions.Prot
	for _, c := range s {
		switch c {
		case 'r':
			prot |= regions.R
		case 'w':
			prot |= regions.W
		case 'x':
			prot |= regions.X
		default:
			return 0, fmt.Errorf("-prot %q: %q is not one of r, w, x", s, c)
		}
	}
	return prot, nil
}

func parseRegions(s string) ([]regions.Region, error) {
	var wins []regions.Region
	for _, part := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 2 {
			return nil, fmt.Errorf("window %q is not start:size", part)
		}
		start, err := strconv.ParseUint(fields[0], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("window %q: %v", part, err)
		}
		size, err := strconv.ParseUint(fields[1], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("window %q: %v", part, err)
		}
		wins = append(wins, regions.Region{Start: start, End: start + size})
	}
	return wins, nil
}

func dump(start uint64, b []byte) {
	words := len(b) / 4 * 4
	for off := 0; off < words; off += 16 {
		fmt.Printf("%#010x:", start+uint64(off))
		for w := off; w < off+16 && w < words; w += 4 {
			fmt.Printf(" %08x", binary.LittleEndian.Uint32(b[w:]))
		}
		fmt.Println()
	}
	if words < len(b) {
		fmt.Printf("%#010x:", start+uint64(words))
		for _, c := range b[words:] {
			fmt.Printf(" %02x", c)
		}
		fmt.Println()
	}
}
