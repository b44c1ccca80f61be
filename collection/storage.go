package collection

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

var ErrStorageClosed = errors.New("storage closed")

type Storage interface {
	// Persist queues a command. Commands reach the log in call order.
	Persist(cmd *Command) error
	Close() error
}

// --- JSONStorage ---

// JSONStorage appends one JSON encoded command per line.
type JSONStorage struct {
	Filename     string
	file         *os.File
	buffer       *bufio.Writer
	commandQueue chan *Command
	closed       chan struct{}
	closeOnce    sync.Once
	closeErr     error
	wg           sync.WaitGroup
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

func NewJSONStorage(filename string) (*JSONStorage, error) {
	s := &JSONStorage{
		Filename:     filename,
		commandQueue: make(chan *Command, 1000),
		closed:       make(chan struct{}),
	}

	var err error
	s.file, err = os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open file for write: %w", err)
	}

	s.buffer = bufio.NewWriterSize(s.file, 1024*1024)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

func (s *JSONStorage) writerLoop() {
	defer s.wg.Done()
	for {
		select {
		case cmd := <-s.commandQueue:
			s.write(cmd)

		case <-s.closed:
			for {
				select {
				case cmd := <-s.commandQueue:
					s.write(cmd)
				default:
					return
				}
			}
		}
	}
}

func (s *JSONStorage) write(cmd *Command) {
	buf := <-cmd.serialized
	s.buffer.Write(buf.Bytes())
	bufferPool.Put(buf)
}

func (s *JSONStorage) Persist(command *Command) error {
	select {
	case <-s.closed:
		return ErrStorageClosed
	default:
	}

	command.serialized = make(chan *bytes.Buffer, 1)
	go func() {
		buf := bufferPool.Get().(*bytes.Buffer)
		buf.Reset()

		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		enc.Encode(command)

		command.serialized <- buf
	}()

	select {
	case s.commandQueue <- command:
		return nil
	case <-s.closed:
		return ErrStorageClosed
	}
}

func (s *JSONStorage) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.wg.Wait()

		err := s.buffer.Flush()
		if err != nil {
			s.file.Close()
			s.closeErr = fmt.Errorf("flush: %w", err)
			return
		}
		s.closeErr = s.file.Close()
	})
	return s.closeErr
}

// --- memory only ---

type nopStorage struct{}

func (nopStorage) Persist(*Command) error { return nil }

func (nopStorage) Close() error { return nil }
