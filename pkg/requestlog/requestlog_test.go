package requestlog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func entry(path string) *Entry {
	return &Entry{Method: "GET", Path: path, Status: 200}
}

func TestLogAndRecent(t *testing.T) {
	s := NewMemoryStore(10)

	s.Log(entry("/a"))
	s.Log(entry("/b"))
	s.Log(entry("/c"))

	recent := s.Recent(2)
	assert.Len(t, recent, 2)
	assert.Equal(t, "/b", recent[0].Path)
	assert.Equal(t, "/c", recent[1].Path)
}

func TestRecentMoreThanStored(t *testing.T) {
	s := NewMemoryStore(10)
	s.Log(entry("/only"))

	recent := s.Recent(5)
	assert.Len(t, recent, 1)
}

func TestCapacityEviction(t *testing.T) {
	s := NewMemoryStore(3)
	for i := 0; i < 5; i++ {
		s.Log(entry(fmt.Sprintf("/%d", i)))
	}

	assert.Equal(t, 3, s.Count())
	recent := s.Recent(3)
	assert.Equal(t, "/2", recent[0].Path)
	assert.Equal(t, "/4", recent[2].Path)
}

func TestClear(t *testing.T) {
	s := NewMemoryStore(10)
	s.Log(entry("/a"))
	s.Clear()

	assert.Zero(t, s.Count())
	assert.Empty(t, s.Recent(5))
}
