package generator

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ethicsaudit/internal/report/models"
	"ethicsaudit/internal/report/ports/mocks"
	dErrors "ethicsaudit/pkg/domain-errors"
	"ethicsaudit/pkg/platform/circuit"
)

func TestGuardedOpensAfterFailedStarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGenerator(ctrl)
	next.EXPECT().Stream(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeGenerationBackend, "failed to start generation")).
		Times(2)

	g := NewGuarded(next, circuit.New("llm", circuit.WithFailureThreshold(2)), nil)
	ctx := context.Background()

	for range 2 {
		_, err := g.Stream(ctx, models.Prompt{})
		require.Error(t, err)
	}

	// third call is rejected without reaching the backend
	_, err := g.Stream(ctx, models.Prompt{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeGenerationBackend))
	assert.Equal(t, "generation backend temporarily unavailable", dErrors.MessageOf(err))
}

func TestGuardedRecordsStreamOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGenerator(ctrl)
	breaker := circuit.New("llm", circuit.WithFailureThreshold(1))
	g := NewGuarded(next, breaker, nil)

	broken := mocks.NewMockTokenStream(ctrl)
	gomock.InOrder(
		broken.EXPECT().Recv().Return("Hel", nil),
		broken.EXPECT().Recv().Return("", errors.New("connection reset")),
	)
	next.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(broken, nil)

	stream, err := g.Stream(context.Background(), models.Prompt{})
	require.NoError(t, err)
	_, err = stream.Recv()
	require.NoError(t, err)
	_, err = stream.Recv()
	require.Error(t, err)
	assert.True(t, breaker.IsOpen())

	breaker.Reset()
	healthy := mocks.NewMockTokenStream(ctrl)
	healthy.EXPECT().Recv().Return("", io.EOF)
	next.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(healthy, nil)

	stream, err = g.Stream(context.Background(), models.Prompt{})
	require.NoError(t, err)
	_, err = stream.Recv()
	assert.ErrorIs(t, err, io.EOF)
	assert.False(t, breaker.IsOpen())
}

func TestGuardedIgnoresCancelledStreams(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGenerator(ctrl)
	breaker := circuit.New("llm", circuit.WithFailureThreshold(1))
	g := NewGuarded(next, breaker, nil)

	ctx, cancel := context.WithCancel(context.Background())
	stream := mocks.NewMockTokenStream(ctrl)
	stream.EXPECT().Recv().DoAndReturn(func() (string, error) {
		cancel()
		return "", context.Canceled
	})
	next.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(stream, nil)

	s, err := g.Stream(ctx, models.Prompt{})
	require.NoError(t, err)
	_, err = s.Recv()
	require.Error(t, err)
	assert.False(t, breaker.IsOpen())
}

func TestGuardedLetsOneProbeThroughAtATime(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockGenerator(ctrl)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	breaker := circuit.New("llm",
		circuit.WithFailureThreshold(1),
		circuit.WithCooldown(time.Second),
		circuit.WithClock(func() time.Time { return now }),
	)
	g := NewGuarded(next, breaker, nil)
	ctx := context.Background()

	breaker.RecordFailure()
	now = now.Add(time.Second)

	probe := mocks.NewMockTokenStream(ctrl)
	probe.EXPECT().Close().Return(nil)
	next.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(probe, nil).Times(1)

	first, err := g.Stream(ctx, models.Prompt{})
	require.NoError(t, err)

	_, err = g.Stream(ctx, models.Prompt{})
	require.Error(t, err, "concurrent caller is rejected while the probe runs")
	assert.Equal(t, "generation backend temporarily unavailable", dErrors.MessageOf(err))

	// abandoning the probe hands it to the next caller
	require.NoError(t, first.Close())

	retry := mocks.NewMockTokenStream(ctrl)
	gomock.InOrder(
		retry.EXPECT().Recv().Return("", io.EOF),
		retry.EXPECT().Close().Return(nil),
	)
	next.EXPECT().Stream(gomock.Any(), gomock.Any()).Return(retry, nil)

	second, err := g.Stream(ctx, models.Prompt{})
	require.NoError(t, err)
	_, err = second.Recv()
	assert.ErrorIs(t, err, io.EOF)
	require.NoError(t, second.Close())
	assert.False(t, breaker.IsOpen())
}
