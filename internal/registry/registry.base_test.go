package registry

import (
	"errors"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("kensaDB", "handle")
	if err != nil || !isNew {
		t.Fatalf("Register = %v/%v, want true/nil", isNew, err)
	}

	got, exists := r.Get("kensaDB")
	if !exists || got != "handle" {
		t.Errorf("Get = %q/%v, want handle/true", got, exists)
	}

	isNew, err = r.Register("kensaDB", "other")
	if err != nil || isNew {
		t.Errorf("re-Register = %v/%v, want false/nil", isNew, err)
	}
	if got, _ := r.Get("kensaDB"); got != "other" {
		t.Errorf("Get after overwrite = %q, want other", got)
	}
}

func TestRegisterEmptyName(t *testing.T) {
	r := NewRegistry[int]()
	if _, err := r.Register("", 1); err == nil {
		t.Error("Register with empty name should fail")
	}
}

func TestGetOrCreate(t *testing.T) {
	r := NewRegistry[int]()

	calls := 0
	creator := func() (int, error) {
		calls++
		return 7, nil
	}

	for i := 0; i < 3; i++ {
		v, err := r.GetOrCreate("svc", creator)
		if err != nil || v != 7 {
			t.Fatalf("GetOrCreate = %v/%v, want 7/nil", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("creator called %d times, want 1", calls)
	}
}

func TestGetOrCreateError(t *testing.T) {
	r := NewRegistry[int]()
	wantErr := errors.New("boom")
	_, err := r.GetOrCreate("svc", func() (int, error) { return 0, wantErr })
	if err == nil || !errors.Is(err, wantErr) {
		t.Errorf("GetOrCreate error = %v, want wrapped boom", err)
	}
	if _, exists := r.Get("svc"); exists {
		t.Error("failed creation must not register an entry")
	}
}
