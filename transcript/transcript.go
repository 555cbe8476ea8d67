package transcript

import (
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/meshkit/core"
	"github.com/hupe1980/meshkit/internal/util"
)

// Options configures Format and Record.
type Options struct {
	// Timestamps prefixes each line with [HH:MM:SS]. Enabled by default.
	Timestamps bool
	// Location is used to render timestamps (defaults to UTC).
	Location *time.Location
	// Topics restricts output to messages on these topics. Empty keeps all.
	Topics []string
	// MaxTextLen truncates message text to this many runes. Zero disables.
	MaxTextLen int
}

func newOptions(optFns []func(o *Options)) Options {
	opts := Options{Timestamps: true, Location: time.UTC}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return opts
}

// Format renders messages one per line as "[HH:MM:SS] author (topic): text".
// Messages without text are skipped. Continuation lines of multi-line text
// are indented by two spaces.
func Format(msgs []core.Message, optFns ...func(o *Options)) string {
	opts := newOptions(optFns)
	var b strings.Builder
	for _, m := range filter(msgs, opts) {
		b.WriteString(line(m, opts))
		b.WriteByte('\n')
	}
	return b.String()
}

// Lines is like Format but returns the individual lines.
func Lines(msgs []core.Message, optFns ...func(o *Options)) []string {
	opts := newOptions(optFns)
	kept := filter(msgs, opts)
	out := make([]string, 0, len(kept))
	for _, m := range kept {
		out = append(out, line(m, opts))
	}
	return out
}

func filter(msgs []core.Message, opts Options) []core.Message {
	topics := make(map[string]struct{}, len(opts.Topics))
	for _, t := range opts.Topics {
		topics[t] = struct{}{}
	}
	out := make([]core.Message, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m.Text()) == "" {
			continue
		}
		if len(topics) > 0 {
			if _, ok := topics[m.Topic]; !ok {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

func line(m core.Message, opts Options) string {
	var b strings.Builder
	if opts.Timestamps {
		fmt.Fprintf(&b, "[%s] ", m.Timestamp.In(opts.Location).Format("15:04:05"))
	}
	b.WriteString(author(m))
	if m.Topic != "" {
		fmt.Fprintf(&b, " (%s)", m.Topic)
	}
	b.WriteString(": ")
	b.WriteString(text(m, opts))
	return b.String()
}

func author(m core.Message) string {
	if m.Author != "" {
		return m.Author
	}
	if r := m.Role(); r != "" {
		return r
	}
	return "unknown"
}

func text(m core.Message, opts Options) string {
	t := strings.TrimSpace(m.Text())
	if opts.MaxTextLen > 0 {
		t = util.Truncate(opts.MaxTextLen, t)
	}
	return strings.ReplaceAll(t, "\n", "\n  ")
}
