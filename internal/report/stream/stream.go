// Package stream implements the progress stream wire format: frames of
// "data: <json>" separated by a blank line and terminated by "data: [DONE]".
package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ethicsaudit/internal/report/models"
)

const (
	ContentType  = "text/event-stream"
	DoneSentinel = "[DONE]"
	dataPrefix   = "data:"
)

// ErrDone is returned by Decoder.Next once the terminal sentinel was read.
var ErrDone = errors.New("stream done")

// Encoder writes frames and flushes after each one.
type Encoder struct {
	w     io.Writer
	flush func() error
}

// NewEncoder writes to w. flush may be nil.
func NewEncoder(w io.Writer, flush func() error) *Encoder {
	return &Encoder{w: w, flush: flush}
}

func (e *Encoder) Encode(ev models.ProgressEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal progress event: %w", err)
	}
	return e.writeFrame(payload)
}

// Done writes the terminal sentinel frame.
func (e *Encoder) Done() error {
	return e.writeFrame([]byte(DoneSentinel))
}

func (e *Encoder) writeFrame(payload []byte) error {
	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, '\n', '\n')
	if _, err := e.w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if e.flush != nil {
		if err := e.flush(); err != nil {
			return fmt.Errorf("flush frame: %w", err)
		}
	}
	return nil
}

// Decoder reads frames. Frames that are not JSON or have no known shape are
// logged and skipped; they never end the stream.
type Decoder struct {
	r       *bufio.Reader
	logger  *slog.Logger
	skipped int
}

type DecoderOption func(*Decoder)

func WithDecoderLogger(logger *slog.Logger) DecoderOption {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		r:      bufio.NewReaderSize(r, 64*1024),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Skipped returns how many frames were dropped as malformed or unknown.
func (d *Decoder) Skipped() int {
	return d.skipped
}

// Next returns the next well-formed event. It returns ErrDone at the
// sentinel and io.ErrUnexpectedEOF when the input ends without one.
func (d *Decoder) Next() (models.ProgressEvent, error) {
	for {
		data, err := d.readFrame()
		if err != nil {
			return models.ProgressEvent{}, err
		}
		if string(data) == DoneSentinel {
			return models.ProgressEvent{}, ErrDone
		}

		var ev models.ProgressEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			d.skipped++
			d.logger.Warn("skipping malformed stream frame", "frame", truncate(data), "error", err)
			continue
		}
		if ev.Kind() == models.KindUnknown {
			d.skipped++
			d.logger.Warn("skipping stream frame of unknown shape", "frame", truncate(data))
			continue
		}
		return ev, nil
	}
}

// readFrame collects the data lines of one blank-line delimited frame.
// Comments and other fields are ignored.
func (d *Decoder) readFrame() ([]byte, error) {
	var data [][]byte
	for {
		line, err := d.r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read stream: %w", err)
		}
		eof := err != nil
		line = bytes.TrimRight(line, "\r\n")
		if after, ok := bytes.CutPrefix(line, []byte(dataPrefix)); ok {
			data = append(data, bytes.TrimPrefix(after, []byte(" ")))
		}

		switch {
		case eof && data == nil:
			return nil, io.ErrUnexpectedEOF
		case eof, len(line) == 0 && data != nil:
			return bytes.Join(data, []byte("\n")), nil
		}
	}
}

func truncate(b []byte) string {
	const limit = 120
	if len(b) > limit {
		return strings.ToValidUTF8(string(b[:limit]), "") + "..."
	}
	return string(b)
}

// Accumulator folds decoded events into the state a consumer renders.
type Accumulator struct {
	content  strings.Builder
	Phase    models.Phase
	Progress int
	Message  string
	ReportID string
	Err      *models.ProgressEvent
}

// Apply folds ev in. Text is appended, never replaced.
func (a *Accumulator) Apply(ev models.ProgressEvent) {
	switch ev.Kind() {
	case models.KindError:
		e := ev
		a.Err = &e
		return
	case models.KindComplete:
		a.ReportID = ev.ReportID
	case models.KindContent:
		a.content.WriteString(ev.Text)
	}
	if ev.Phase != "" {
		a.Phase = ev.Phase
	}
	if ev.Message != "" {
		a.Message = ev.Message
	}
	if ev.Progress > a.Progress {
		a.Progress = ev.Progress
	}
}

// Content is the text received so far.
func (a *Accumulator) Content() string {
	return a.content.String()
}

// Finished reports whether a terminal event was applied.
func (a *Accumulator) Finished() bool {
	return a.Err != nil || a.ReportID != ""
}
