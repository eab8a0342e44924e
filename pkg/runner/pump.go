package runner

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"
)

type inputResult struct {
	text string
	err  error
}

// linePump reads lines on a goroutine so a cancelled context can unblock a waiting reader.
//
// close releases the goroutine when it is waiting to hand over a line nobody will read.
// A goroutine blocked inside the underlying Read cannot be interrupted; it exits once that
// Read returns.
type linePump struct {
	reader    *bufio.Reader
	inputChan chan inputResult
	done      chan struct{}
	stopped   chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func newLinePump(r io.Reader) *linePump {
	return &linePump{
		reader:  bufio.NewReader(r),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (p *linePump) init() {
	p.startOnce.Do(func() {
		p.inputChan = make(chan inputResult)
		go p.run()
	})
}

func (p *linePump) run() {
	defer close(p.stopped)
	for {
		text, err := p.reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" && !p.send(inputResult{text: text}) {
			return
		}

		if err != nil {
			if err == io.EOF {
				close(p.inputChan)
				return
			}
			if !p.send(inputResult{err: err}) {
				return
			}
			// Backoff for non-fatal errors to prevent CPU spikes on persistent failure
			select {
			case <-p.done:
				return
			case <-time.After(50 * time.Millisecond):
			}
		}
	}
}

func (p *linePump) send(res inputResult) bool {
	select {
	case p.inputChan <- res:
		return true
	case <-p.done:
		return false
	}
}

// next blocks until a line arrives, the input closes (io.EOF) or ctx is done.
// A closed pump behaves like a closed input.
func (p *linePump) next(ctx context.Context) (string, error) {
	select {
	case <-p.done:
		return "", io.EOF
	default:
	}
	p.init()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", io.EOF
	case res, ok := <-p.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return res.text, nil
	}
}

func (p *linePump) close() {
	p.stopOnce.Do(func() { close(p.done) })
}
