package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"catalogpix/internal/catalog"
	"catalogpix/internal/cdn"
	"catalogpix/internal/imagegen"
	"catalogpix/internal/queue"
	"catalogpix/internal/settings"
)

const controlHelp = `
	Commands:
	  start              start or continue processing pending items
	  pause              stop picking up new items (in-flight item finishes)
	  resume             continue after a pause
	  retry              reset failed items to pending and start
	  regen <id> [text]  regenerate one item now, optionally with a new prompt
	  status             show the item table
	  export             write succeeded items to the output file
	  help               show this help
	  quit               exit
`

type runOptions struct {
	root       *rootOptions
	inputPath  string
	outputPath string
	delay      time.Duration
	autoStart  bool
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{root: root}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a category list interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.inputPath, "input", "i", "", "input JSON file: array of {id, name, url?}")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "processed_products_with_images.json", "output JSON file for succeeded items")
	cmd.Flags().DurationVar(&opts.delay, "delay", queue.DefaultDelay, "delay between automatically scheduled items")
	cmd.Flags().BoolVar(&opts.autoStart, "start", true, "start processing immediately")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// syncWriter serializes writes from the control loop, the regen goroutines,
// and the scheduler's notify callback so lines never interleave.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func runPipeline(cmd *cobra.Command, opts *runOptions) error {
	out := &syncWriter{w: cmd.OutOrStdout()}

	store, err := openStore(opts.root)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	defer store.Close()

	data, err := os.ReadFile(opts.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	inputs, err := catalog.ParseInput(data)
	if err != nil {
		return err
	}
	list := catalog.NewList(inputs)
	log.Info().Int("items", list.Len()).Str("input", opts.inputPath).Msg("catalog loaded")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	generator, err := imagegen.NewGeminiGenerator(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize image generator: %w", err)
	}

	finished := make(chan struct{}, 1)
	scheduler := queue.New(queue.Config{
		List:        list,
		Generator:   generator,
		Uploader:    cdn.NewClient(),
		Authorizer:  imagegen.NewEnvAuthorizer(),
		Credentials: func() settings.Credentials { return store.Load() },
		Delay:       opts.delay,
		Notify: func(ev queue.Event) {
			switch ev.Kind {
			case queue.EventProgress:
				fmt.Fprintf(out, "Processing: %d / %d\n", ev.Done, ev.Total)
			case queue.EventItemUpdated:
				if ev.Item.Terminal() {
					printItemOutcome(out, ev.Item)
				}
			case queue.EventRunFinished:
				select {
				case finished <- struct{}{}:
				default:
				}
			}
		},
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scheduler.Run(ctx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return controlLoop(ctx, out, scheduler, list, opts, finished)
	})

	if opts.autoStart {
		if err := scheduler.Start(); err != nil {
			fmt.Fprintf(out, "Not started: %v\n", err)
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// controlLoop reads commands from stdin until quit, EOF, or ctx cancellation.
// When the scheduler finishes a run, the result is exported automatically.
func controlLoop(ctx context.Context, out io.Writer, scheduler *queue.Scheduler, list *catalog.List, opts *runOptions, finished <-chan struct{}) error {
	fmt.Fprintln(out, dedent.Dedent(controlHelp))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-finished:
			fmt.Fprintln(out, "All items processed.")
			exportResults(out, list, opts.outputPath)
			if lines == nil {
				return nil
			}
		case line, ok := <-lines:
			if !ok {
				// stdin closed; a scripted invocation still expects the
				// active run to finish and export before exit.
				lines = nil
				if !scheduler.Running() {
					return nil
				}
				continue
			}
			if quit := handleCommand(ctx, out, scheduler, list, opts, line); quit {
				return nil
			}
		}
	}
}

func handleCommand(ctx context.Context, out io.Writer, scheduler *queue.Scheduler, list *catalog.List, opts *runOptions, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "start":
		if err := scheduler.Start(); err != nil {
			fmt.Fprintf(out, "Not started: %v\n", err)
		}
	case "pause":
		scheduler.Pause()
		fmt.Fprintln(out, "Paused. The item in flight will still finish.")
	case "resume":
		scheduler.Resume()
	case "retry":
		n, err := scheduler.RetryFailed()
		if err != nil {
			fmt.Fprintf(out, "Retry: %v\n", err)
		} else {
			fmt.Fprintf(out, "Retrying %d failed item(s).\n", n)
		}
	case "regen":
		if len(fields) < 2 {
			fmt.Fprintln(out, "Usage: regen <id> [new prompt]")
			return false
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(out, "Invalid id %q\n", fields[1])
			return false
		}
		newPrompt := strings.TrimSpace(strings.Join(fields[2:], " "))
		// Run in the background so the prompt stays responsive; the
		// scheduler serializes concurrent calls for the same id.
		go func() {
			if err := scheduler.RegenerateOne(ctx, id, newPrompt); err != nil {
				fmt.Fprintf(out, "Regenerate %d: %v\n", id, err)
			}
		}()
	case "status":
		fmt.Fprintln(out, renderStatusTable(list.Snapshot()))
	case "export":
		exportResults(out, list, opts.outputPath)
	case "help":
		fmt.Fprintln(out, dedent.Dedent(controlHelp))
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(out, "Unknown command %q (try help)\n", fields[0])
	}
	return false
}

func exportResults(out io.Writer, list *catalog.List, path string) {
	doc, err := catalog.Export(list.Snapshot())
	if err != nil {
		fmt.Fprintf(out, "Export: %v\n", err)
		return
	}
	if err := os.WriteFile(path, doc, 0644); err != nil {
		fmt.Fprintf(out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Results written to %s\n", path)
}

func printItemOutcome(out io.Writer, item catalog.Item) {
	if item.Status == catalog.StatusSucceeded {
		fmt.Fprintf(out, "  ok    %d %s -> %s\n", item.ID, item.Name, item.URL)
	} else {
		fmt.Fprintf(out, "  fail  %d %s: %s\n", item.ID, item.Name, item.Error)
	}
}
