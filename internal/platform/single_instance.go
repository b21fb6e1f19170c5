package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrInstanceRunning indicates another instance already holds the lock.
var ErrInstanceRunning = errors.New("instance already running")

const (
	activateMessage = "activate"
	dialTimeout     = 500 * time.Millisecond
)

// InstanceGuard holds the single-instance lock and listens for activation
// requests from later launches.
type InstanceGuard struct {
	listener net.Listener
	address  string

	mu         sync.Mutex
	onActivate func()
	done       chan struct{}
}

// AcquireSingleInstance binds a loopback port derived from the app name.
// When the port is taken, the running instance is asked to show itself and
// ErrInstanceRunning is returned.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if signalErr := signalActivate(address); signalErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInstanceRunning, address, signalErr)
		}
		return nil, fmt.Errorf("%w: %s", ErrInstanceRunning, address)
	}

	guard := &InstanceGuard{
		listener: listener,
		address:  address,
		done:     make(chan struct{}),
	}
	go guard.serve()
	return guard, nil
}

// OnActivate sets the handler run when another launch asks to be shown.
// The handler runs on the listener goroutine.
func (guard *InstanceGuard) OnActivate(handler func()) {
	if guard == nil {
		return
	}
	guard.mu.Lock()
	guard.onActivate = handler
	guard.mu.Unlock()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	<-guard.done
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) serve() {
	defer close(guard.done)
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		guard.handle(conn)
	}
}

func (guard *InstanceGuard) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(dialTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil || strings.TrimSpace(line) != activateMessage {
		return
	}

	guard.mu.Lock()
	handler := guard.onActivate
	guard.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func signalActivate(address string) error {
	conn, err := net.DialTimeout("tcp", address, dialTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Write([]byte(activateMessage + "\n"))
	return err
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return minPort + int(hash.Sum32()%uint32(maxPort-minPort+1))
}
