package builtin

import (
	"fmt"
	"io"
	"sync"
)

// printer is the terminal sink behind WriteStdOut. It writes one line per
// value and sends nothing useful downstream.
type printer struct {
	writer io.Writer
	mux    sync.Mutex
}

func (p *printer) print(value interface{}) (interface{}, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if _, err := fmt.Fprintln(p.writer, value); err != nil {
		return nil, err
	}
	return nil, nil
}

func newPrinter(w io.Writer) *printer {
	return &printer{writer: w}
}
