package intake

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/contactform/core/validator"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Append(ctx context.Context, records []Record) ([]byte, error) {
	args := m.Called(ctx, records)
	content, _ := args.Get(0).([]byte)
	return content, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, faculty string, rows []ContactRow, storeContent []byte) error {
	return m.Called(ctx, faculty, rows, storeContent).Error(0)
}

type mockArchiver struct {
	mock.Mock
}

func (m *mockArchiver) Archive(ctx context.Context, content []byte, contentType string) error {
	return m.Called(ctx, content, contentType).Error(0)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func submittable() Draft {
	return Draft{Faculty: "Jane", Rows: []ContactRow{validRow(), {}}}
}

func TestService_Rejected(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	notifier := &mockNotifier{}
	svc := NewService(store, notifier, WithLogger(quietLogger()))

	out := svc.Submit(context.Background(), Draft{Rows: []ContactRow{validRow()}})
	assert.Equal(t, StateRejected, out.State)
	assert.False(t, out.Saved)
	assert.ErrorIs(t, out.Err, validator.ErrValidation)
	assert.Equal(t, "warning", out.Level())

	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_PersistFailedSkipsNotify(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	notifier := &mockNotifier{}
	svc := NewService(store, notifier, WithLogger(quietLogger()))

	diskFull := errors.Join(ErrPersist, errors.New("no space left on device"))
	store.On("Append", mock.Anything, mock.Anything).Return(nil, diskFull).Once()

	out := svc.Submit(context.Background(), submittable())
	assert.Equal(t, StatePersistFailed, out.State)
	assert.False(t, out.Success())
	assert.ErrorIs(t, out.Err, ErrPersist)
	assert.Equal(t, "error", out.Level())

	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_NotifySucceeded(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	notifier := &mockNotifier{}
	archiver := &mockArchiver{}
	svc := NewService(store, notifier, WithArchiver(archiver), WithLogger(quietLogger()))

	content := []byte("csv")
	store.On("Append", mock.Anything, []Record{{Faculty: "Jane", ContactRow: validRow()}}).Return(content, nil).Once()
	archiver.On("Archive", mock.Anything, content, "text/csv").Return(nil).Once()
	notifier.On("Notify", mock.Anything, "Jane", []ContactRow{validRow()}, content).Return(nil).Once()

	out := svc.Submit(context.Background(), submittable())
	assert.Equal(t, StateNotifySucceeded, out.State)
	assert.True(t, out.Saved)
	assert.Equal(t, 1, out.Records)
	assert.NoError(t, out.Err)
	assert.Equal(t, "success", out.Level())

	store.AssertExpectations(t)
	archiver.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_NotifyFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"not configured", ErrNotConfigured, "skipped"},
		{"transport", errors.Join(ErrNotify, errors.New("dial tcp: timeout")), "could not be sent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &mockStore{}
			notifier := &mockNotifier{}
			svc := NewService(store, notifier, WithLogger(quietLogger()))

			store.On("Append", mock.Anything, mock.Anything).Return([]byte("csv"), nil)
			notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(tt.err)

			out := svc.Submit(context.Background(), submittable())
			assert.Equal(t, StateNotifyFailed, out.State)
			assert.True(t, out.Saved, "persisted data is kept")
			assert.ErrorIs(t, out.Err, tt.err)
			assert.Contains(t, out.Message, tt.message)
			assert.Equal(t, "warning", out.Level())
		})
	}
}

func TestService_ArchiveFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	notifier := &mockNotifier{}
	archiver := &mockArchiver{}
	svc := NewService(store, notifier, WithArchiver(archiver), WithLogger(quietLogger()))

	store.On("Append", mock.Anything, mock.Anything).Return([]byte("csv"), nil)
	archiver.On("Archive", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("access denied"))
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	out := svc.Submit(context.Background(), submittable())
	assert.Equal(t, StateNotifySucceeded, out.State)
	archiver.AssertExpectations(t)
}

func TestService_WithCSVStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "submissions.csv")
	sender := &recordingSender{}
	svc := NewService(NewCSVStore(path), NewNotifier(sender, "dean@example.edu", true), WithLogger(quietLogger()))

	first := svc.Submit(context.Background(), submittable())
	require.Equal(t, StateNotifySucceeded, first.State)

	second := Draft{Faculty: "Ann", Rows: []ContactRow{{University: "MIT", ContactName: "Al", Designation: "Chair", Email: "al@mit.edu"}}}
	require.Equal(t, StateNotifySucceeded, svc.Submit(context.Background(), second).State)

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "Jane", rows[1][0])
	assert.Equal(t, "Ann", rows[2][0])

	msgs := sender.messages()
	require.Len(t, msgs, 2)
	require.Len(t, msgs[1].Attachments, 1)
	assert.Equal(t, 3, strings.Count(string(msgs[1].Attachments[0].Content), "\n"))
}
