// Package clienttest provides a scripted client.Client for tests.
package clienttest

import (
	"context"
	"sync"

	"nexus/internal/client"
)

// Stub answers every request with Reply, or with Fn when it is set.
type Stub struct {
	Reply *client.Response
	Err   error
	Fn    func(ctx context.Context, req *client.Request) (*client.Response, error)

	mu       sync.Mutex
	requests []*client.Request
}

// Text returns a stub that always answers with text.
func Text(text string) *Stub {
	return &Stub{Reply: &client.Response{Text: text}}
}

// Failing returns a stub that always fails with err.
func Failing(err error) *Stub {
	return &Stub{Err: err}
}

func (s *Stub) Generate(ctx context.Context, req *client.Request) (*client.Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.Fn != nil {
		return s.Fn(ctx, req)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Reply == nil {
		return &client.Response{}, nil
	}
	reply := *s.Reply
	return &reply, nil
}

func (s *Stub) Model() string { return "stub" }

func (s *Stub) Close() error { return nil }

// Requests returns the requests received so far.
func (s *Stub) Requests() []*client.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*client.Request(nil), s.requests...)
}

// Calls returns the number of requests received so far.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

var _ client.Client = (*Stub)(nil)
