package service

import (
	"errors"
	"reflect"
	"testing"
)

type fakeService struct {
	name    string
	deps    []string
	journal *[]string
	initArg []any
	failOn  string
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	f.initArg = args
	*f.journal = append(*f.journal, "init:"+f.name)
	if f.failOn == "init" {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeService) Start() error {
	*f.journal = append(*f.journal, "start:"+f.name)
	if f.failOn == "start" {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeService) Stop() error {
	*f.journal = append(*f.journal, "stop:"+f.name)
	return nil
}

func (f *fakeService) Contribute(publish ResourcePublisher) {
	publish(f.name)
}

func TestHubOrdersByDependency(t *testing.T) {
	var journal []string
	h := NewHub(nil)
	h.Register(&fakeService{name: "network", deps: []string{"store"}, journal: &journal})
	h.Register(&fakeService{name: "store", journal: &journal})
	h.Register(&fakeService{name: "audio", journal: &journal})

	if err := h.InitAll(nil); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	want := []string{"store", "network", "audio"}
	if got := h.Order(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected order %v, got %v", want, got)
	}

	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := h.StopAll(); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	wantJournal := []string{
		"init:store", "init:network", "init:audio",
		"start:store", "start:network", "start:audio",
		"stop:audio", "stop:network", "stop:store",
	}
	if !reflect.DeepEqual(journal, wantJournal) {
		t.Errorf("Expected journal %v, got %v", wantJournal, journal)
	}
}

func TestHubPassesInitArgs(t *testing.T) {
	var journal []string
	s := &fakeService{name: "audio", journal: &journal}
	h := NewHub(nil)
	h.Register(s)
	if err := h.InitAll(map[string][]any{"audio": {true}}); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if len(s.initArg) != 1 || s.initArg[0] != true {
		t.Errorf("Expected init args [true], got %v", s.initArg)
	}
}

func TestHubRejectsBadGraphs(t *testing.T) {
	var journal []string

	h := NewHub(nil)
	h.Register(&fakeService{name: "a", journal: &journal})
	if err := h.Register(&fakeService{name: "a", journal: &journal}); !errors.Is(err, ErrDuplicateService) {
		t.Errorf("Expected ErrDuplicateService, got %v", err)
	}

	h = NewHub(nil)
	h.Register(&fakeService{name: "a", deps: []string{"ghost"}, journal: &journal})
	if err := h.InitAll(nil); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("Expected ErrMissingDependency, got %v", err)
	}

	h = NewHub(nil)
	h.Register(&fakeService{name: "a", deps: []string{"b"}, journal: &journal})
	h.Register(&fakeService{name: "b", deps: []string{"a"}, journal: &journal})
	if err := h.InitAll(nil); !errors.Is(err, ErrDependencyCycle) {
		t.Errorf("Expected ErrDependencyCycle, got %v", err)
	}
}

func TestHubStartFailureStopsStarted(t *testing.T) {
	var journal []string
	h := NewHub(nil)
	h.Register(&fakeService{name: "a", journal: &journal})
	h.Register(&fakeService{name: "b", journal: &journal, failOn: "start"})
	if err := h.InitAll(nil); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err == nil {
		t.Fatal("Expected start error")
	}
	last := journal[len(journal)-1]
	if last != "stop:a" {
		t.Errorf("Expected started service to be stopped, journal %v", journal)
	}
}

func TestHubContribute(t *testing.T) {
	var journal []string
	h := NewHub(nil)
	h.Register(&fakeService{name: "a", journal: &journal})
	h.Register(&fakeService{name: "b", journal: &journal})
	h.InitAll(nil)

	var got []any
	h.Contribute(func(r any) { got = append(got, r) })
	if len(got) != 2 {
		t.Errorf("Expected 2 contributions, got %d", len(got))
	}
}
