package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	logChanDepth  = 1000
	flushInterval = 2 * time.Second
)

// AsyncFileWriter buffers log lines through a channel so logging never blocks
// the request path. Lines are dropped when the channel is full.
type AsyncFileWriter struct {
	writer  *bufio.Writer
	file    *os.File
	mu      sync.Mutex
	logChan chan []byte
	done    chan struct{}
}

func NewAsyncFileWriter(logFile string, bufferSize int) (*AsyncFileWriter, error) {
	file, err := os.OpenFile(filepath.Clean(logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	w := &AsyncFileWriter{
		writer:  bufio.NewWriterSize(file, bufferSize),
		file:    file,
		logChan: make(chan []byte, logChanDepth),
		done:    make(chan struct{}),
	}
	go w.drain()

	return w, nil
}

func (w *AsyncFileWriter) Write(p []byte) (n int, err error) {
	select {
	case w.logChan <- append([]byte{}, p...):
		return len(p), nil
	default:
		return 0, nil
	}
}

func (w *AsyncFileWriter) drain() {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()
	for {
		select {
		case line := <-w.logChan:
			w.mu.Lock()
			if _, err := w.writer.Write(line); err != nil {
				fmt.Println("error writing log line to file", err)
			}
			w.mu.Unlock()

		case <-ticker.C:
			w.flush()

		case <-w.done:
			w.flush()
			return
		}
	}
}

func (w *AsyncFileWriter) flush() {
	w.mu.Lock()
	_ = w.writer.Flush()
	w.mu.Unlock()
}

func (w *AsyncFileWriter) Close() {
	close(w.done)
	_ = w.file.Close()
}
