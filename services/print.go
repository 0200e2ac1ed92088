package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/caio-sobreiro/perspecta/types"
)

// Output formats understood by PrintLauncher.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// PrintLauncher is a Launcher that writes a Summary of every plan it is
// given instead of loading anything. It backs the command-line entry point
// and is useful to check what a launch link resolves to.
type PrintLauncher struct {
	mu     sync.Mutex
	w      io.Writer
	format string
}

// NewPrintLauncher creates a launcher writing to w. Unknown formats fall
// back to JSON.
func NewPrintLauncher(w io.Writer, format string) *PrintLauncher {
	if format != FormatText {
		format = FormatJSON
	}
	return &PrintLauncher{w: w, format: format}
}

func (p *PrintLauncher) OpenLocalGroups(ctx context.Context, plan types.LocalGroups) error {
	return p.print(ctx, Summarize(plan))
}

func (p *PrintLauncher) OpenDicomweb(ctx context.Context, plan types.DicomwebSingle) error {
	return p.print(ctx, Summarize(plan))
}

func (p *PrintLauncher) OpenDicomwebGroups(ctx context.Context, plan types.DicomwebGrouped) error {
	return p.print(ctx, Summarize(plan))
}

func (p *PrintLauncher) StartEmpty(ctx context.Context, status string) error {
	s := Summarize(types.EmptyLaunch{})
	s.Status = status
	return p.print(ctx, s)
}

func (p *PrintLauncher) print(ctx context.Context, s Summary) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	slog.DebugContext(ctx, "Printing launch summary", "mode", s.Mode, "format", p.format)

	if p.format == FormatText {
		_, err := io.WriteString(p.w, formatText(s))
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode launch summary: %w", err)
	}
	data = append(data, '\n')
	_, err = p.w.Write(data)
	return err
}

func formatText(s Summary) string {
	var b strings.Builder
	line := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", key, value)
		}
	}

	line("mode", s.Mode)
	line("status", s.Status)
	line("dicomweb", s.Dicomweb)
	line("study", s.StudyUID)
	line("series", s.SeriesUID)
	line("instance", s.InstanceUID)
	line("level", s.Level)
	if s.User != "" {
		line("auth", s.User+":"+s.Password)
	}
	for i, g := range s.Groups {
		marker := " "
		if i == s.OpenGroup {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s group %d: %s\n", marker, i, strings.Join(g, " | "))
	}
	return b.String()
}
