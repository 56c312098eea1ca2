// Package webserver serves the status page and the two toggle commands over
// a bare TCP listener, one connection at a time.
package webserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/nergy-se/fancontroller/pkg/controller"
	"github.com/nergy-se/fancontroller/pkg/state"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRequestTimeout  = 5 * time.Second
	DefaultMaxRequestBytes = 1024
)

type Server struct {
	store  *state.Store
	toggle controller.Toggle

	requestTimeout  time.Duration
	maxRequestBytes int

	listener net.Listener
	mutex    sync.Mutex
}

// New creates a server rendering store and driving toggle. Zero limits fall back to the defaults.
func New(store *state.Store, toggle controller.Toggle, requestTimeout time.Duration, maxRequestBytes int) *Server {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	if maxRequestBytes <= 0 {
		maxRequestBytes = DefaultMaxRequestBytes
	}
	return &Server{
		store:           store,
		toggle:          toggle,
		requestTimeout:  requestTimeout,
		maxRequestBytes: maxRequestBytes,
	}
}

// Listen binds addr. Failing here is fatal for the caller, the page is the
// only operator interface.
func (s *Server) Listen(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}
	l, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.mutex.Lock()
	s.listener = l
	s.mutex.Unlock()
	return nil
}

// Addr returns the bound address or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts and handles connections sequentially until ctx is done. The
// next connection waits in the accept backlog until the current one is closed.
func (s *Server) Serve(ctx context.Context) error {
	s.mutex.Lock()
	l := s.listener
	s.mutex.Unlock()
	if l == nil {
		return errors.New("webserver: Serve called before Listen")
	}

	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				logrus.Warnf("webserver: accept: %s", err)
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.newSession(conn).run(ctx)
	}
}

func (s *Server) apply(ctx context.Context, cmd Command) {
	var on bool
	switch cmd {
	case CommandAuxOn:
		on = true
	case CommandAuxOff:
		on = false
	default:
		return
	}

	s.store.SetAux(on)
	err := s.toggle.SetLevel(ctx, on)
	if err != nil {
		logrus.Errorf("webserver: error driving toggle: %s", err)
		return
	}
	logrus.WithField("command", cmd.String()).Info("webserver: toggle set")
}
