package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/altinukshini/dnafinder/internal/logger"
	"github.com/altinukshini/dnafinder/internal/model"
)

const (
	KeyToken      = "token"
	KeyEmail      = "email"
	KeyLastResult = "last_search_result"
)

type EventKind int

const (
	EventLogin EventKind = iota
	EventLogout
	// EventExpired fires when the backend rejected the token (HTTP 401).
	EventExpired
	EventResult
)

func (k EventKind) String() string {
	switch k {
	case EventLogin:
		return "login"
	case EventLogout:
		return "logout"
	case EventExpired:
		return "expired"
	case EventResult:
		return "result"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind    EventKind
	Session model.Session
	Result  *model.SearchResult
}

// Store is the single process-wide holder of the session token and the
// most recent search result. Views read it through the accessors and learn
// about changes via Subscribe.
type Store struct {
	kv     KV
	logger logger.Logger

	mu      sync.RWMutex
	session model.Session
	subs    map[int]func(Event)
	nextSub int
}

// New hydrates the store from kv.
func New(kv KV, log logger.Logger) (*Store, error) {
	s := &Store{kv: kv, logger: log, subs: make(map[int]func(Event))}

	token, err := kv.Get(KeyToken)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load token: %w", err)
	}
	email, err := kv.Get(KeyEmail)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load email: %w", err)
	}
	s.session = model.Session{Token: token, Email: email}
	return s, nil
}

// Open is New over a bbolt file at path.
func Open(path string, log logger.Logger) (*Store, error) {
	db, err := OpenBolt(path, log)
	if err != nil {
		return nil, err
	}
	s, err := New(db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *Store) Session() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

func (s *Store) Login(sess model.Session) error {
	if sess.Token == "" {
		return fmt.Errorf("login: empty token")
	}
	if err := s.kv.Set(KeyToken, sess.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if sess.Email != "" {
		if err := s.kv.Set(KeyEmail, sess.Email); err != nil {
			return fmt.Errorf("store email: %w", err)
		}
	} else if err := s.kv.Delete(KeyEmail); err != nil {
		return fmt.Errorf("delete email: %w", err)
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	s.logger.Info("session started", "email", sess.Email)
	s.publish(Event{Kind: EventLogin, Session: sess})
	return nil
}

func (s *Store) Logout() error {
	return s.clear(EventLogout)
}

// Expire drops the session after the backend rejected it.
func (s *Store) Expire() error {
	return s.clear(EventExpired)
}

func (s *Store) clear(kind EventKind) error {
	var errs []error
	for _, key := range []string{KeyToken, KeyEmail} {
		if err := s.kv.Delete(key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}

	s.mu.Lock()
	s.session = model.Session{}
	s.mu.Unlock()

	s.logger.Info("session cleared", "reason", kind.String())
	s.publish(Event{Kind: kind})
	return errors.Join(errs...)
}

func (s *Store) SaveResult(r model.SearchResult) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := s.kv.Set(KeyLastResult, string(data)); err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	s.publish(Event{Kind: EventResult, Result: &r})
	return nil
}

// LastResult returns nil without error when no search has completed yet.
func (s *Store) LastResult() (*model.SearchResult, error) {
	raw, err := s.kv.Get(KeyLastResult)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}
	var r model.SearchResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, fmt.Errorf("decode stored result: %w", err)
	}
	return &r, nil
}

// Subscribe registers fn for every subsequent event and returns a func
// that removes it. fn runs on the goroutine that changed the store.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) publish(ev Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
