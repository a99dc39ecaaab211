package telemetry

import (
	"errors"
	"io"
	"sync"
	"time"

	"adclab/lab"
)

// Handler receives decoded reports, or a decode error for a dropped frame.
type Handler func(r lab.Report, err error)

// Stream runs a Decoder over a port in a background goroutine and hands
// every report to a Handler. It is meant for host tools.
type Stream struct {
	port    io.ReadCloser
	dec     *Decoder
	handler Handler

	mu      sync.Mutex
	readErr error
	lost    int

	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// NewStream starts reading port. handler is called from the read
// goroutine.
func NewStream(port io.ReadCloser, handler Handler) *Stream {
	s := &Stream{
		port:     port,
		dec:      NewDecoder(),
		handler:  handler,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *Stream) readLoop() {
	defer close(s.doneChan)

	buf := make([]byte, decoderBuffer)
	for {
		select {
		case <-s.stopChan:
			return
		default:
		}

		// never read more than the decoder can take, so nothing is dropped
		n, err := s.port.Read(buf[:max(s.dec.Free(), 1)])
		if n > 0 {
			s.dec.Feed(buf[:n])
			s.drain()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.setErr(err)
				return
			}
			// serial timeouts and transient errors: back off and retry
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (s *Stream) drain() {
	for {
		r, err := s.dec.Next()
		if errors.Is(err, ErrNeedMore) {
			s.mu.Lock()
			s.lost = s.dec.Lost()
			s.mu.Unlock()
			return
		}
		if s.handler != nil {
			s.handler(r, err)
		}
	}
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	s.readErr = err
	s.mu.Unlock()
}

// Done is closed when the read loop exits.
func (s *Stream) Done() <-chan struct{} { return s.doneChan }

// Err returns the error that ended the read loop, if any.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readErr
}

// Lost returns the decoder's count of missed frames.
func (s *Stream) Lost() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lost
}

// Close stops the read loop and closes the port.
func (s *Stream) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	err := s.port.Close()
	<-s.doneChan
	return err
}
