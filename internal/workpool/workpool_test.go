package workpool

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestExecuteAllRunsEveryJob(t *testing.T) {
	p := New(4)
	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	p.ExecuteAll(work)
	if got := counter.Load(); got != 100 {
		t.Errorf("counter = %d, want 100", got)
	}
}

func TestForEachIndexedErrReturnsFirstError(t *testing.T) {
	p := New(4)
	sentinel := errors.New("boom")
	err := p.ForEachIndexedErr(10, func(i int) error {
		if i == 3 {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want %v", err, sentinel)
	}
}

func TestForEachIndexedErrNilWhenAllSucceed(t *testing.T) {
	p := New(2)
	err := p.ForEachIndexedErr(10, func(i int) error { return nil })
	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}
