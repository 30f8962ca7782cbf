// Package session хранит ссылку, ожидающую выбора формата, для каждого чата.
package session

import (
	"sync"
	"time"
)

// PendingRequest ссылка, ожидающая выбора формата
type PendingRequest struct {
	ChatID    int64
	URL       string
	Title     string
	Author    string
	CreatedAt time.Time
}

// Store хранит не больше одной ожидающей ссылки на чат.
// Состояние живет только в памяти процесса и не истекает.
type Store struct {
	mu      sync.Mutex
	pending map[int64]PendingRequest
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{pending: make(map[int64]PendingRequest)}
}

// Put сохраняет ссылку для чата, перезаписывая предыдущую
func (s *Store) Put(chatID int64, req PendingRequest) {
	req.ChatID = chatID
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.pending[chatID] = req
	s.mu.Unlock()
}

// Update меняет ожидающую ссылку чата, только если это все еще url.
// Если за это время пришла другая ссылка, ничего не делает и возвращает false.
func (s *Store) Update(chatID int64, url string, fn func(req *PendingRequest)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.pending[chatID]
	if !ok || req.URL != url {
		return false
	}
	fn(&req)
	req.ChatID = chatID
	req.URL = url
	s.pending[chatID] = req
	return true
}

// Get возвращает ожидающую ссылку, не удаляя ее
func (s *Store) Get(chatID int64) (PendingRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.pending[chatID]
	return req, ok
}

// Take возвращает и удаляет ожидающую ссылку: чат снова в состоянии Idle
func (s *Store) Take(chatID int64) (PendingRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.pending[chatID]
	if ok {
		delete(s.pending, chatID)
	}
	return req, ok
}

// Len количество чатов в состоянии AwaitingFormat
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
