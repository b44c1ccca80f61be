package collection

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	jsonv2 "github.com/go-json-experiment/json"
)

type loadedCommand struct {
	seq    int
	cmd    *Command
	id     string
	record Record
	err    error
}

func decodeCommand(data []byte) (*loadedCommand, error) {
	loaded := &loadedCommand{cmd: &Command{}}

	err := json.Unmarshal(data, loaded.cmd)
	if err != nil {
		return nil, err
	}

	switch loaded.cmd.Name {
	case CommandInsert:
		loaded.record = Record{}
		err = jsonv2.Unmarshal(loaded.cmd.Payload, &loaded.record)
	case CommandReplace:
		params := &replacePayload{}
		err = json.Unmarshal(loaded.cmd.Payload, params)
		if err == nil {
			loaded.id = params.ID
			loaded.record = Record{}
			err = jsonv2.Unmarshal(params.Record, &loaded.record)
		}
	case CommandRemove:
		params := &removePayload{}
		err = json.Unmarshal(loaded.cmd.Payload, params)
		loaded.id = params.ID
	default:
		err = fmt.Errorf("unknown command '%s'", loaded.cmd.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", loaded.cmd.Name, err)
	}

	return loaded, nil
}

// loadCommands decodes lines with several workers and yields them back in
// file order.
func loadCommands(r io.Reader, concurrency int) (<-chan *loadedCommand, <-chan error) {
	out := make(chan *loadedCommand, 100)
	errChan := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errChan)

		scanner := bufio.NewScanner(r)
		const maxCapacity = 16 * 1024 * 1024
		scanner.Buffer(make([]byte, 64*1024), maxCapacity)

		type line struct {
			seq  int
			data []byte
		}
		lines := make(chan line, 100)
		results := make(chan *loadedCommand, 100)

		var wg sync.WaitGroup
		for i := 0; i < concurrency; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for item := range lines {
					loaded, err := decodeCommand(item.data)
					if err != nil {
						results <- &loadedCommand{seq: item.seq, err: fmt.Errorf("line %d: %w", item.seq+1, err)}
						continue
					}
					loaded.seq = item.seq
					results <- loaded
				}
			}()
		}

		// Feeder
		go func() {
			seq := 0
			for scanner.Scan() {
				if len(scanner.Bytes()) == 0 {
					continue
				}
				// scanner reuses its buffer
				data := make([]byte, len(scanner.Bytes()))
				copy(data, scanner.Bytes())
				lines <- line{seq, data}
				seq++
			}
			close(lines)
			wg.Wait()
			if err := scanner.Err(); err != nil {
				results <- &loadedCommand{seq: -1, err: err}
			}
			close(results)
		}()

		// Re-assembler
		var firstErr error
		buffer := map[int]*loadedCommand{}
		nextSeq := 0

		for res := range results {
			if firstErr != nil {
				continue // drain
			}
			if res.err != nil {
				firstErr = res.err
				continue
			}

			buffer[res.seq] = res
			for {
				loaded, ok := buffer[nextSeq]
				if !ok {
					break
				}
				delete(buffer, nextSeq)
				out <- loaded
				nextSeq++
			}
		}

		if firstErr != nil {
			errChan <- firstErr
		}
	}()

	return out, errChan
}

func LoadCollection(c *Collection) error {
	f, err := os.Open(c.Filename)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	cmds, errs := loadCommands(f, runtime.NumCPU())

	var applyErr error
	for loaded := range cmds {
		if applyErr != nil {
			continue // drain
		}
		switch loaded.cmd.Name {
		case CommandInsert:
			_, applyErr = c.insert(loaded.record, false)
		case CommandReplace:
			_, applyErr = c.replace(loaded.id, loaded.record, false)
		case CommandRemove:
			_, applyErr = c.remove(loaded.id, false)
		}
		if applyErr != nil {
			applyErr = fmt.Errorf("apply %s %s: %w", loaded.cmd.Name, loaded.cmd.Uuid, applyErr)
		}
	}

	if err := <-errs; err != nil {
		return err
	}

	return applyErr
}
