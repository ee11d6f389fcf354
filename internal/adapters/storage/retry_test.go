package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func fastRetry() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestWithRetry(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantErr   bool
		wantCalls int
	}{
		{name: "success first try", failures: 0, retryable: true, wantCalls: 1},
		{name: "success after retries", failures: 2, retryable: true, wantCalls: 3},
		{name: "exhausts attempts", failures: 5, retryable: true, wantErr: true, wantCalls: 3},
		{name: "non-retryable stops", failures: 5, retryable: false, wantErr: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), fastRetry(), logger, func(ctx context.Context) error {
				calls++
				if calls <= tt.failures {
					return NewStorageError("Store", "k", errors.New("disk busy"), tt.retryable)
				}
				return nil
			})

			if (err != nil) != tt.wantErr {
				t.Errorf("WithRetry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("WithRetry() calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := WithRetry(ctx, fastRetry(), nil, func(ctx context.Context) error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("WithRetry() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("WithRetry() calls = %d, want 0", calls)
	}
}

func TestRetryConfig_CalculateDelay(t *testing.T) {
	config := &RetryConfig{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      300 * time.Millisecond,
		BackoffFactor: 2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 300 * time.Millisecond},
		{6, 300 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := config.calculateDelay(tt.attempt); got != tt.want {
			t.Errorf("calculateDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	if _, err := New(nil, nil, nil); err == nil {
		t.Error("New(nil) expected error")
	}
	if _, err := New(&StorageConfig{Type: "s3"}, nil, nil); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("New(s3) error = %v, want unsupported type", err)
	}
	if _, err := New(&StorageConfig{Type: "local"}, nil, nil); err == nil {
		t.Error("New(local without path) expected error")
	}

	fs, err := New(&StorageConfig{Type: "local", BasePath: t.TempDir()}, fastRetry(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer fs.Close()

	ctx := context.Background()
	if err := fs.Store(ctx, "a.txt", []byte("a"), nil); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if _, ok := fs.(*RetryableFileStorage); !ok {
		t.Errorf("New() returned %T, want *RetryableFileStorage", fs)
	}
}
