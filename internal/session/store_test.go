package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutOverwrites(t *testing.T) {
	s := NewStore()

	s.Put(42, PendingRequest{URL: "https://youtu.be/A"})
	s.Put(42, PendingRequest{URL: "https://youtu.be/B"})

	req, ok := s.Get(42)
	require.True(t, ok)
	assert.Equal(t, "https://youtu.be/B", req.URL)
	assert.Equal(t, int64(42), req.ChatID)
	assert.False(t, req.CreatedAt.IsZero())
	assert.Equal(t, 1, s.Len())
}

func TestStore_TakeRemoves(t *testing.T) {
	s := NewStore()
	s.Put(1, PendingRequest{URL: "https://youtu.be/A"})

	req, ok := s.Take(1)
	require.True(t, ok)
	assert.Equal(t, "https://youtu.be/A", req.URL)

	_, ok = s.Take(1)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	s := NewStore()
	s.Put(1, PendingRequest{URL: "one"})
	s.Put(2, PendingRequest{URL: "two"})

	_, _ = s.Take(1)

	req, ok := s.Get(2)
	require.True(t, ok)
	assert.Equal(t, "two", req.URL)
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chat := int64(i % 5)
			s.Put(chat, PendingRequest{URL: fmt.Sprintf("u%d", i)})
			s.Get(chat)
			s.Take(chat)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 5)
}

func TestStore_UpdateKeepsNewerLink(t *testing.T) {
	s := NewStore()
	s.Put(7, PendingRequest{URL: "https://youtu.be/A"})
	s.Put(7, PendingRequest{URL: "https://youtu.be/B"})

	ok := s.Update(7, "https://youtu.be/A", func(req *PendingRequest) {
		req.Title = "A title"
	})
	assert.False(t, ok)

	req, _ := s.Get(7)
	assert.Equal(t, "https://youtu.be/B", req.URL)
	assert.Empty(t, req.Title)

	ok = s.Update(7, "https://youtu.be/B", func(req *PendingRequest) {
		req.Title = "B title"
		req.URL = "https://youtu.be/other"
	})
	assert.True(t, ok)

	req, _ = s.Get(7)
	assert.Equal(t, "https://youtu.be/B", req.URL)
	assert.Equal(t, "B title", req.Title)
	assert.Equal(t, int64(7), req.ChatID)
}

func TestStore_UpdateWithoutPending(t *testing.T) {
	s := NewStore()

	called := false
	ok := s.Update(7, "https://youtu.be/A", func(req *PendingRequest) { called = true })

	assert.False(t, ok)
	assert.False(t, called)
	assert.Equal(t, 0, s.Len())
}
