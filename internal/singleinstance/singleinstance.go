// Package singleinstance keeps one long-running cleaner per user session.
package singleinstance

import (
	"hash/fnv"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/Laisky/errors/v2"
)

const (
	basePort  = 41000
	portRange = 2000
)

// Lock is held for as long as its loopback listener stays open.
type Lock struct {
	name string
	addr string

	mu sync.Mutex
	ln net.Listener
}

func New(name string) *Lock {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "desktopcleaner"
	}
	return &Lock{name: name, addr: Address(name)}
}

// Address maps a lock name to a stable loopback port.
func Address(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	port := basePort + int(h.Sum32()%portRange)
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
}

func (l *Lock) Name() string { return l.name }

// Acquire reports false when another process already holds the lock.
func (l *Lock) Acquire() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln != nil {
		return true, nil
	}
	ln, err := net.Listen("tcp", l.addr)
	if err == nil {
		l.ln = ln
		return true, nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "only one usage") || strings.Contains(msg, "address already in use") {
		return false, nil
	}
	return false, errors.Wrapf(err, "listen on %s", l.addr)
}

func (l *Lock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln != nil {
		_ = l.ln.Close()
		l.ln = nil
	}
}
