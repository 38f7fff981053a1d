package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/acceptor/pkg/domain"
)

// allMachines is the subscription key of clients that watch every machine.
const allMachines = ""

// StreamManager fans finished checks out to SSE clients.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // machine -> set of channels
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      slog.New(slog.DiscardHandler),
	}
}

// Subscribe registers a client for one machine, or every machine when machine
// is empty. The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(machine string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 16)
	if _, ok := sm.subscribers[machine]; !ok {
		sm.subscribers[machine] = make(map[chan<- string]struct{})
	}
	sm.subscribers[machine][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[machine]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, machine)
			}
		}
	}
}

// Broadcast sends msg to the subscribers of machine and to those of every machine.
func (sm *StreamManager) Broadcast(machine string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	keys := []string{machine}
	if machine != allMachines {
		keys = append(keys, allMachines)
	}
	for _, key := range keys {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- msg:
			default:
				// Drop message if channel is full (slow client)
				sm.logger.Warn("SSE: client buffer full, dropping message", "machine", machine)
			}
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every finished check. The
// broadcast event carries the outcome without its trace.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCheckEnd: func(_ context.Context, ev *domain.CheckEvent) {
			data, err := json.Marshal(summarize(ev))
			if err != nil {
				sm.logger.Error("SSE: event encode failed", "err", err)
				return
			}
			sm.Broadcast(ev.Machine, string(data))
		},
	}
}

func summarize(ev *domain.CheckEvent) *domain.CheckEvent {
	if ev.Outcome == nil {
		return ev
	}
	out := *ev.Outcome
	out.Trace = nil
	summary := *ev
	summary.Outcome = &out
	return &summary
}

// SubscribeEvents handles the GET /events request (SSE). The optional
// machine query parameter restricts the stream to one machine.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	machine := r.URL.Query().Get("machine")
	if machine != allMachines {
		if _, err := s.Engine.Machine(machine); err != nil {
			s.writeError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(machine)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected", "machine", machine)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: check\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
