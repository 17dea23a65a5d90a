// File: internal/concurrency/syncvar_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Timeout: condition never held")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSyncVar_ReadFFOnFullReturnsImmediately(t *testing.T) {
	v := NewSyncVar(Full, 42)
	assert.Equal(t, uint64(42), v.ReadFF())
	assert.Equal(t, Full, v.State())
	assert.Zero(t, v.Waiters())
}

func TestSyncVar_ZeroValueIsEmpty(t *testing.T) {
	var v SyncVar
	assert.Equal(t, Empty, v.State())
	assert.Equal(t, "empty", v.State().String())
	v.Fill(7)
	assert.Equal(t, "full", v.State().String())
	assert.Equal(t, uint64(7), v.ReadFF())
}

func TestSyncVar_OneFillReleasesAllReaders(t *testing.T) {
	v := NewSyncVar(Empty, 0)
	const readers = 8
	got := make(chan uint64, readers)
	for i := 0; i < readers; i++ {
		go func() { got <- v.ReadFF() }()
	}
	waitFor(t, func() bool { return v.Waiters() == readers })

	select {
	case <-got:
		t.Fatal("reader returned from an empty cell")
	default:
	}

	v.Fill(99)
	for i := 0; i < readers; i++ {
		select {
		case val := <-got:
			assert.Equal(t, uint64(99), val)
		case <-time.After(5 * time.Second):
			t.Fatal("Timeout: reader not released by Fill")
		}
	}
	assert.Zero(t, v.Waiters())
}

func TestSyncVar_EmptyReleasesNobody(t *testing.T) {
	v := NewSyncVar(Full, 1)
	v.Empty()
	done := make(chan struct{})
	go func() {
		v.ReadFF()
		close(done)
	}()
	waitFor(t, func() bool { return v.Waiters() == 1 })
	v.Empty()
	select {
	case <-done:
		t.Fatal("Empty released a reader")
	case <-time.After(20 * time.Millisecond):
	}
	v.Fill(2)
	<-done
}

func TestSyncVar_FillOnFullDoesNotQueue(t *testing.T) {
	v := NewSyncVar(Empty, 0)
	v.Fill(1)
	v.Fill(2)
	assert.Equal(t, uint64(2), v.ReadFF())
	v.Empty()

	done := make(chan uint64)
	go func() { done <- v.ReadFF() }()
	waitFor(t, func() bool { return v.Waiters() == 1 })
	select {
	case <-done:
		t.Fatal("earlier fills leaked into a later read")
	case <-time.After(20 * time.Millisecond):
	}
	v.Fill(3)
	assert.Equal(t, uint64(3), <-done)
}

func TestSyncVar_FillHappensBeforeRelease(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := NewSyncVar(Empty, 0)
		var shared []int
		var wg sync.WaitGroup
		for r := 0; r < 4; r++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v.ReadFF()
				// run under -race: an unordered read would be reported
				assert.Len(t, shared, 3)
			}()
		}
		shared = append(shared, 1, 2, 3)
		v.Fill(1)
		wg.Wait()
	}
}
