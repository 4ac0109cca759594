package platform

import (
	"sync"

	"github.com/go-errors/errors"
	log "github.com/sirupsen/logrus"
)

// SimRegistrar keeps device registrations in memory: enough for the
// simulated environment and for asserting lifecycle order in tests.
type SimRegistrar struct {
	mu    sync.Mutex
	nodes map[string]int
}

func NewSimRegistrar() *SimRegistrar {
	return &SimRegistrar{nodes: make(map[string]int)}
}

// Register claims the device name. Claiming a name twice fails, like a
// device node that already exists.
func (r *SimRegistrar) Register(name string, minor int) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.nodes[name]; dup {
		return nil, errors.Errorf("device %q is already registered", name)
	}
	r.nodes[name] = minor
	log.WithFields(log.Fields{"device": name, "minor": minor}).Info("registered device node")
	release := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.nodes, name)
		log.WithFields(log.Fields{"device": name}).Info("released device node")
	}
	return release, nil
}

// Registered reports whether name currently has a node.
func (r *SimRegistrar) Registered(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.nodes[name]
	return ok
}
