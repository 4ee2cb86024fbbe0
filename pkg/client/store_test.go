package client

import (
	"errors"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore[[]string]()
	if s.Phase() != PhaseIdle {
		t.Fatalf("new store phase %q, want idle", s.Phase())
	}

	s.Run(func() ([]string, error) {
		return []string{"a", "b"}, nil
	})
	if s.Phase() != PhaseFulfilled {
		t.Fatalf("phase %q, want fulfilled", s.Phase())
	}
	if got := s.Data(); len(got) != 2 || got[0] != "a" {
		t.Fatalf("unexpected data %v", got)
	}
	if s.Message() != "" {
		t.Fatalf("fulfilled store carries message %q", s.Message())
	}
}

func TestStoreRejection(t *testing.T) {
	s := NewStore[[]string]()
	s.Run(func() ([]string, error) {
		return []string{"stale"}, nil
	})

	s.Run(func() ([]string, error) {
		return nil, errors.New("server unreachable")
	})
	if s.Phase() != PhaseRejected {
		t.Fatalf("phase %q, want rejected", s.Phase())
	}
	if s.Message() != "server unreachable" {
		t.Fatalf("unexpected message %q", s.Message())
	}
	// Rejection clears the previous payload.
	if got := s.Data(); got != nil {
		t.Fatalf("rejected store still holds data %v", got)
	}
}

func TestStoreRerunClearsMessage(t *testing.T) {
	s := NewStore[int]()
	s.Run(func() (int, error) { return 0, errors.New("boom") })
	s.Run(func() (int, error) { return 42, nil })

	if s.Phase() != PhaseFulfilled {
		t.Fatalf("phase %q, want fulfilled", s.Phase())
	}
	if s.Message() != "" {
		t.Fatalf("stale message %q survived rerun", s.Message())
	}
	if s.Data() != 42 {
		t.Fatalf("data %d, want 42", s.Data())
	}
}

func TestStorePendingDuringFetch(t *testing.T) {
	s := NewStore[int]()
	observed := make(chan Phase, 1)
	s.Run(func() (int, error) {
		observed <- s.Phase()
		return 1, nil
	})
	if p := <-observed; p != PhasePending {
		t.Fatalf("phase during fetch %q, want pending", p)
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore[int]()
	s.Run(func() (int, error) { return 7, nil })

	s.Reset()
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase %q, want idle", s.Phase())
	}
	if s.Data() != 0 {
		t.Fatalf("data %d survived reset", s.Data())
	}
	if s.Message() != "" {
		t.Fatalf("message %q survived reset", s.Message())
	}
}
