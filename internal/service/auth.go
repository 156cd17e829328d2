package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"tastehaven/internal/domain"
)

// AuthService is a thin adapter over the external identity provider. It
// caches the provider's last-known session and fans out change
// notifications; it never persists the session itself.
type AuthService struct {
	provider IdentityProvider

	mu      sync.Mutex
	session *domain.Session
	subs    map[int]func(*domain.Session)
	nextSub int
}

func NewAuthService(provider IdentityProvider) *AuthService {
	return &AuthService{
		provider: provider,
		subs:     make(map[int]func(*domain.Session)),
	}
}

// Init queries the provider once at startup. A failed check leaves the
// mirror empty; the user simply has to log in again.
func (s *AuthService) Init(ctx context.Context) {
	sess, err := s.provider.CurrentUser(ctx)
	if err != nil {
		log.Printf("[auth] session check failed: %v", err)
		return
	}
	if sess != nil {
		s.setSession(sess)
	}
}

func (s *AuthService) CurrentSession() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// OnSessionChange registers a callback for session changes and returns a
// disposer. The disposer is safe to call more than once; only the first
// call unregisters.
func (s *AuthService) OnSessionChange(fn func(*domain.Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *AuthService) setSession(sess *domain.Session) {
	s.mu.Lock()
	s.session = sess
	callbacks := make([]func(*domain.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(sess)
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	s.setSession(sess)
	return sess, nil
}

func (s *AuthService) Signup(ctx context.Context, email, password, restaurantName string) (*domain.Session, error) {
	sess, err := s.provider.SignUp(ctx, email, password, restaurantName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	s.setSession(sess)
	return sess, nil
}

// Logout delegates to the provider. On success the next session-change
// notification reports nil.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	s.setSession(nil)
	return nil
}

var _ AuthServiceInterface = (*AuthService)(nil)
