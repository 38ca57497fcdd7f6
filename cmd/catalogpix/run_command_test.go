package main

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncWriterKeepsLinesIntact(t *testing.T) {
	var buf bytes.Buffer
	out := &syncWriter{w: &buf}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				fmt.Fprintf(out, "writer-%d line-%d\n", n, j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 500)
	for _, line := range lines {
		assert.Regexp(t, `^writer-\d line-\d+$`, line)
	}
}
