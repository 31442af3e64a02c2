package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"github.com/vkngwrapper/videomem/dpb"
	"golang.org/x/exp/slog"
)

type logLevel struct {
	level slog.Level
}

func (l *logLevel) String() string {
	return l.level.String()
}

func (l *logLevel) Set(value string) error {
	return l.level.UnmarshalText([]byte(value))
}

func (l *logLevel) Type() string {
	return "level"
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	level := logLevel{level: slog.LevelWarn}
	pflag.Var(&level, "log-level", "Log level (debug, info, warn, error)")
	slots := pflag.Int("slots", dpb.DefaultSlotCount, "Number of picture buffer slots")
	frames := pflag.Int("frames", 16, "Number of frames to simulate")
	chaos := pflag.Bool("chaos", false, "Pick reference slots at random")
	seed := pflag.Uint64("seed", 1, "Seed for --chaos")
	quiet := pflag.Bool("quiet", false, "Only print the summary")

	pflag.Parse()
	if len(pflag.Args()) != 0 {
		pflag.Usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level.level}))

	options := dpb.CreateOptions{Logger: logger}
	if *chaos {
		options.Strategy = dpb.NewRandomReference(*seed)
	}

	manager, err := dpb.New(*slots, options)
	assert(err == nil, err)

	var intraFrames, referencedFrames int
	references := make([]int, manager.Len())
	for frame := 0; frame < *frames; frame++ {
		decision, err := manager.Advance(int32(frame))
		assert(err == nil, err)

		if decision.HasReference {
			referencedFrames++
			references[decision.Reference]++
		} else {
			intraFrames++
		}

		if !*quiet {
			fmt.Println(formatDecision(decision, manager.Slots()))
		}
	}

	fmt.Printf("%s frames over %d slots: %s with a reference, %s without\n",
		humanize.Comma(int64(*frames)), manager.Len(),
		humanize.Comma(int64(referencedFrames)), humanize.Comma(int64(intraFrames)))
	for slot, count := range references {
		fmt.Printf("  slot %d referenced %s times\n", slot, humanize.Comma(int64(count)))
	}
}

func formatDecision(decision dpb.Decision, slots []int32) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "frame %4d -> slot %d", decision.Sequence, decision.Victim)
	if decision.HasReference {
		fmt.Fprintf(&sb, ", ref %d", decision.Reference)
	} else {
		sb.WriteString(", ref -")
	}

	sb.WriteString("  [")
	for i, sequence := range slots {
		if i > 0 {
			sb.WriteString(" ")
		}
		if sequence == dpb.EmptySlot {
			sb.WriteString("-")
		} else {
			fmt.Fprintf(&sb, "%d", sequence)
		}
	}
	sb.WriteString("]")

	return sb.String()
}

func assert(condition bool, extraArgs ...any) {
	if !condition {
		if len(extraArgs) == 0 {
			fmt.Fprintln(os.Stderr, "assertion failed")
		} else {
			fmt.Fprintln(os.Stderr, extraArgs...)
		}
		os.Exit(1)
	}
}
