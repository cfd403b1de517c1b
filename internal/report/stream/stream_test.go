package stream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethicsaudit/internal/report/models"
)

func decodeAll(t *testing.T, d *Decoder) ([]models.ProgressEvent, error) {
	t.Helper()
	var events []models.ProgressEvent
	for {
		ev, err := d.Next()
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}

func TestEncoderFrames(t *testing.T) {
	var buf bytes.Buffer
	flushes := 0
	enc := NewEncoder(&buf, func() error { flushes++; return nil })

	require.NoError(t, enc.Encode(models.PhaseEvent(models.PhaseFetching, "Fetching audit data...", 10)))
	require.NoError(t, enc.Encode(models.ContentEvent("Hello", 30)))
	require.NoError(t, enc.Done())

	assert.Equal(t,
		"data: {\"phase\":\"fetching\",\"message\":\"Fetching audit data...\",\"progress\":10}\n\n"+
			"data: {\"phase\":\"generating\",\"message\":\"Generating report content...\",\"progress\":30,\"text\":\"Hello\"}\n\n"+
			"data: [DONE]\n\n",
		buf.String())
	assert.Equal(t, 3, flushes)
}

func TestEncoderReportsFlushFailure(t *testing.T) {
	enc := NewEncoder(io.Discard, func() error { return errors.New("client gone") })
	err := enc.Encode(models.ContentEvent("x", 31))
	assert.ErrorContains(t, err, "client gone")
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, nil)
	sent := []models.ProgressEvent{
		models.PhaseEvent(models.PhaseInitializing, "Starting report generation...", 5),
		models.ContentEvent("line one\nline two", 31),
		models.CompleteEvent("r-1"),
	}
	for _, ev := range sent {
		require.NoError(t, enc.Encode(ev))
	}
	require.NoError(t, enc.Done())

	got, err := decodeAll(t, NewDecoder(&buf))
	assert.ErrorIs(t, err, ErrDone)
	assert.Equal(t, sent, got)
}

func TestDecoderSkipsMalformedFrames(t *testing.T) {
	input := "data: {\"phase\":\"generating\",\"text\":\"Hello \",\"progress\":31}\n\n" +
		"data: {not valid json\n\n" +
		"data: {\"unexpected\":true}\n\n" +
		"data: {\"phase\":\"generating\",\"text\":\"world\",\"progress\":32}\n\n" +
		"data: [DONE]\n\n"
	d := NewDecoder(strings.NewReader(input))

	var acc Accumulator
	for {
		ev, err := d.Next()
		if errors.Is(err, ErrDone) {
			break
		}
		require.NoError(t, err)
		acc.Apply(ev)
	}

	assert.Equal(t, "Hello world", acc.Content())
	assert.Equal(t, 32, acc.Progress)
	assert.Equal(t, 2, d.Skipped())
}

func TestDecoderIgnoresCommentsAndCRLF(t *testing.T) {
	input := ": keep-alive\r\n\r\n" +
		"event: progress\r\ndata: {\"phase\":\"saving\",\"progress\":95}\r\n\r\n" +
		"data: [DONE]\r\n\r\n"

	got, err := decodeAll(t, NewDecoder(strings.NewReader(input)))
	assert.ErrorIs(t, err, ErrDone)
	require.Len(t, got, 1)
	assert.Equal(t, models.PhaseSaving, got[0].Phase)
}

func TestDecoderJoinsMultilineData(t *testing.T) {
	input := "data: {\"phase\":\"saving\",\ndata: \"progress\":95}\n\ndata: [DONE]\n\n"

	got, err := decodeAll(t, NewDecoder(strings.NewReader(input)))
	assert.ErrorIs(t, err, ErrDone)
	require.Len(t, got, 1)
	assert.Equal(t, 95, got[0].Progress)
}

func TestDecoderTruncatedStream(t *testing.T) {
	t.Run("last frame without blank line is still delivered", func(t *testing.T) {
		d := NewDecoder(strings.NewReader("data: {\"phase\":\"fetching\",\"progress\":10}"))
		got, err := decodeAll(t, d)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Len(t, got, 1)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := NewDecoder(strings.NewReader("")).Next()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestAccumulator(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		var acc Accumulator
		acc.Apply(models.PhaseEvent(models.PhaseGenerating, "Generating report content...", 30))
		acc.Apply(models.ContentEvent("# Executive", 31))
		acc.Apply(models.ContentEvent(" Summary", 31))
		acc.Apply(models.PhaseEvent(models.PhaseSaving, "Saving report...", 95))
		assert.False(t, acc.Finished())
		acc.Apply(models.CompleteEvent("r-9"))

		assert.True(t, acc.Finished())
		assert.Equal(t, "# Executive Summary", acc.Content())
		assert.Equal(t, "r-9", acc.ReportID)
		assert.Equal(t, 100, acc.Progress)
		assert.Nil(t, acc.Err)
	})

	t.Run("error keeps received content", func(t *testing.T) {
		var acc Accumulator
		acc.Apply(models.ContentEvent("partial", 40))
		acc.Apply(models.ErrorEvent("report_not_saved", "Failed to save report", "db down"))

		assert.True(t, acc.Finished())
		require.NotNil(t, acc.Err)
		assert.Equal(t, "report_not_saved", acc.Err.Code)
		assert.Equal(t, "partial", acc.Content())
		assert.Equal(t, 40, acc.Progress)
	})
}
