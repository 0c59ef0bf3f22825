package services

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestOutboxDeliversOnFirstSuccess(t *testing.T) {
	o := NewOutbox(3, time.Millisecond)

	var calls int32
	o.Enqueue("test", func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	o.Stop()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("send called %d times, want 1", n)
	}
}

func TestOutboxRetriesUntilSuccess(t *testing.T) {
	o := NewOutbox(3, time.Millisecond)

	var calls int32
	o.Enqueue("test", func() error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	})
	o.Stop()

	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("send called %d times, want 3", n)
	}
}

func TestOutboxGivesUpAfterMaxAttempts(t *testing.T) {
	o := NewOutbox(3, time.Millisecond)

	var calls int32
	o.Enqueue("test", func() error {
		atomic.AddInt32(&calls, 1)
		return errors.New("still broken")
	})
	o.Stop()

	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("send called %d times, want 3", n)
	}
}

func TestOutboxDoesNotRetryAuthErrors(t *testing.T) {
	o := NewOutbox(3, time.Millisecond)

	var calls int32
	o.Enqueue("test", func() error {
		atomic.AddInt32(&calls, 1)
		return errors.New("535 authentication failed")
	})
	o.Stop()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("send called %d times, want 1 (auth errors must not retry)", n)
	}
}

func TestOutboxStopWaitsForInflightJobs(t *testing.T) {
	o := NewOutbox(1, time.Millisecond)

	var done int32
	o.Enqueue("test", func() error {
		time.Sleep(10 * time.Millisecond)
		atomic.StoreInt32(&done, 1)
		return nil
	})
	o.Stop()

	if atomic.LoadInt32(&done) != 1 {
		t.Error("Stop returned before the in-flight job finished")
	}
}

func TestIsAuthError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("dial tcp: connection refused"), false},
		{errors.New("535 5.7.8 Bad credentials"), true},
		{errors.New("SMTP Authentication failed"), true},
		{errors.New("Username and Password not accepted"), true},
	}
	for _, c := range cases {
		if got := IsAuthError(c.err); got != c.want {
			t.Errorf("IsAuthError(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
