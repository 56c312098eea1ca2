package webserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

type connState int

const (
	stateAwaitingRequest connState = iota
	stateProcessing
	stateResponding
	stateClosed
)

func (s connState) String() string {
	switch s {
	case stateAwaitingRequest:
		return "awaiting-request"
	case stateProcessing:
		return "processing"
	case stateResponding:
		return "responding"
	}
	return "closed"
}

var (
	errPeerClosed        = errors.New("peer closed connection")
	errRequestTooLarge   = errors.New("request line exceeds size limit")
	errIncompleteRequest = errors.New("connection closed before end of request line")
)

const (
	readChunkSize = 512
	lingerTimeout = 250 * time.Millisecond
)

// session is one accepted connection. It moves strictly forward through
// AwaitingRequest, Processing, Responding and Closed.
type session struct {
	server  *Server
	conn    net.Conn
	state   connState
	buf     []byte
	line    string
	command Command

	responded bool
}

func (s *Server) newSession(conn net.Conn) *session {
	return &session{
		server: s,
		conn:   conn,
		state:  stateAwaitingRequest,
		buf:    make([]byte, 0, readChunkSize),
	}
}

// run drives the session to stateClosed. Errors are per connection and never
// propagate beyond it.
func (ss *session) run(ctx context.Context) {
	defer ss.close()
	log := logrus.WithField("remote", ss.conn.RemoteAddr().String())

	for ss.state != stateClosed {
		var err error
		switch ss.state {
		case stateAwaitingRequest:
			err = ss.readRequestLine()
		case stateProcessing:
			err = ss.process(ctx)
		case stateResponding:
			err = ss.respond()
		}

		if err == nil {
			continue
		}
		if errors.Is(err, errPeerClosed) {
			log.Debug("webserver: peer closed")
		} else {
			log.WithField("state", ss.state.String()).Warnf("webserver: dropping connection: %s", err)
		}
		return
	}
}

func (ss *session) readRequestLine() error {
	err := ss.conn.SetReadDeadline(time.Now().Add(ss.server.requestTimeout))
	if err != nil {
		return err
	}

	chunk := make([]byte, readChunkSize)
	for {
		n, err := ss.conn.Read(chunk)
		if n > 0 {
			remaining := ss.server.maxRequestBytes - len(ss.buf)
			if n > remaining {
				n = remaining
			}
			ss.buf = append(ss.buf, chunk[:n]...)
			if idx := bytes.IndexByte(ss.buf, '\n'); idx >= 0 {
				ss.line = string(bytes.TrimRight(ss.buf[:idx], "\r"))
				ss.state = stateProcessing
				return nil
			}
			if len(ss.buf) >= ss.server.maxRequestBytes {
				return errRequestTooLarge
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(ss.buf) == 0 {
					return errPeerClosed
				}
				return errIncompleteRequest
			}
			return fmt.Errorf("error reading request: %w", err)
		}
	}
}

func (ss *session) process(ctx context.Context) error {
	logrus.Debugf("webserver: request: %s", ss.line)
	ss.command = ResolveCommand(ss.line)
	ss.server.apply(ctx, ss.command)
	ss.state = stateResponding
	return nil
}

func (ss *session) respond() error {
	err := ss.conn.SetWriteDeadline(time.Now().Add(ss.server.requestTimeout))
	if err != nil {
		return err
	}
	err = Render(ss.conn, ss.server.store.Get())
	if err != nil {
		return fmt.Errorf("error writing response: %w", err)
	}
	ss.responded = true
	ss.state = stateClosed
	return nil
}

// drain half-closes the connection and discards what the client still sends
// (remaining headers) so the close does not reset the response in flight.
func (ss *session) drain() {
	cw, ok := ss.conn.(interface{ CloseWrite() error })
	if !ok {
		return
	}
	if cw.CloseWrite() != nil {
		return
	}
	if ss.conn.SetReadDeadline(time.Now().Add(lingerTimeout)) != nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(ss.conn, int64(ss.server.maxRequestBytes)*4))
}

func (ss *session) close() {
	ss.state = stateClosed
	if ss.responded {
		ss.drain()
	}
	err := ss.conn.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		logrus.Debugf("webserver: error closing connection: %s", err)
	}
}
