package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/noborus/ov/oviewer"

	"github.com/altinukshini/dnafinder/internal/config"
	"github.com/altinukshini/dnafinder/internal/export"
	"github.com/altinukshini/dnafinder/internal/model"
)

const defaultWidth = 100

// output renders command results as tables on a terminal and as
// tab-separated lines when piped.
type output struct {
	w     io.Writer
	tty   bool
	color bool
	width int
}

func newOutput(w io.Writer) *output {
	t := term.FromEnv()
	o := &output{w: w, width: defaultWidth}
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		o.tty = t.IsTerminalOutput()
		o.color = t.IsColorEnabled()
		if width, _, err := t.Size(); err == nil && width > 0 {
			o.width = width
		}
	}
	return o
}

func (o *output) JSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return jsonpretty.Format(o.w, bytes.NewReader(data), "  ", o.color)
}

func (o *output) Result(r model.SearchResult) error {
	fmt.Fprintf(o.w, "Algorithm: %s  Time: %.2f ms  Matches: %d\n", r.Algorithm, r.ExecutionTimeMS, r.MatchCount)
	if r.Pattern != "" || r.TotalSequences > 0 {
		fmt.Fprintf(o.w, "Pattern: %s  Sequences: %d  Threads: %d  Hash collisions: %d\n",
			r.Pattern, r.TotalSequences, r.ThreadsUsed, r.HashCollisions)
	}
	if len(r.Matches) == 0 {
		fmt.Fprintln(o.w, "No matches.")
		return nil
	}
	fmt.Fprintln(o.w)

	tp := tableprinter.New(o.w, o.tty, o.width)
	tp.AddHeader([]string{"NAME", "COUNT", "POSITIONS"})
	for _, m := range r.Matches {
		tp.AddField(m.Name)
		tp.AddField(strconv.Itoa(len(m.Positions)))
		tp.AddField(export.JoinPositions(m.Positions, ", "))
		tp.EndRow()
	}
	return tp.Render()
}

func (o *output) History(entries []model.HistoryEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(o.w, "No recent searches.")
		return nil
	}

	tp := tableprinter.New(o.w, o.tty, o.width)
	tp.AddHeader([]string{"ID", "PATTERN", "ALGORITHM", "MATCHES", "TIME"})
	for _, e := range entries {
		tp.AddField(string(e.ID))
		tp.AddField(e.Pattern)
		tp.AddField(e.Algorithm)
		tp.AddField(strconv.Itoa(e.MatchCount))
		tp.AddField(e.Duration())
		tp.EndRow()
	}
	return tp.Render()
}

func (o *output) Config(cfg config.Config) error {
	tp := tableprinter.New(o.w, o.tty, o.width)
	tp.AddHeader([]string{"KEY", "VALUE"})
	rows := [][2]string{
		{"api_url", cfg.APIURL},
		{"timeout", cfg.Timeout.String()},
		{"state_path", cfg.StatePath},
		{"log_path", cfg.LogPath},
		{"history_limit", strconv.Itoa(cfg.HistoryLimit)},
		{"algorithm", string(cfg.Algorithm)},
		{"search_mode", string(cfg.SearchMode)},
		{"export_dir", cfg.ExportDir},
		{"debug", strconv.FormatBool(cfg.Debug)},
	}
	for _, row := range rows {
		tp.AddField(row[0])
		tp.AddField(row[1])
		tp.EndRow()
	}
	return tp.Render()
}

// pageResult opens the rendered result in ov.
func pageResult(r model.SearchResult) error {
	var buf bytes.Buffer
	o := &output{w: &buf, tty: true, width: 4096}
	if err := o.Result(r); err != nil {
		return err
	}

	root, err := oviewer.NewRoot(&buf)
	if err != nil {
		return fmt.Errorf("open pager: %w", err)
	}
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)
	return root.Run()
}
