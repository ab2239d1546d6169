//go:generate go run go.uber.org/mock/mockgen -source=identity.go -destination=../mocks/mock_identity_provider.go -package=mocks
package auth

import (
	"fmt"
	"log/slog"
	"sync"

	"vitamed/domain"
	apperrors "vitamed/errors"
)

// IIdentityProvider is the identity collaborator: the core only needs
// "a signed-in user with name and email, or none".
type IIdentityProvider interface {
	SignIn(email, password string) (domain.User, string, error)
	SignOut()
	Current() (domain.User, bool)
}

type account struct {
	name         string
	passwordHash string
}

// MockIdentityProvider is an in-memory stand-in for the real identity
// service, holding a handful of seeded accounts. It still exercises the
// full credential path: argon2id verification and a signed session token.
type MockIdentityProvider struct {
	log    *slog.Logger
	issuer TokenIssuer

	mu       sync.Mutex
	accounts map[string]account
	current  *domain.User
}

func NewMockIdentityProvider(log *slog.Logger, issuer TokenIssuer) *MockIdentityProvider {
	return &MockIdentityProvider{
		log:      log,
		issuer:   issuer,
		accounts: make(map[string]account),
	}
}

// Register seeds an account. Intended for startup wiring and tests.
func (p *MockIdentityProvider) Register(name, email, password string) error {
	if err := ValidateSignIn(SignInRequest{Email: email, Password: password}); err != nil {
		return fmt.Errorf("invalid account: %w", err)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts[email] = account{name: name, passwordHash: hash}
	return nil
}

// SignIn verifies the credentials and, on success, records the session and
// returns the user together with a signed session token.
func (p *MockIdentityProvider) SignIn(email, password string) (domain.User, string, error) {
	if err := ValidateSignIn(SignInRequest{Email: email, Password: password}); err != nil {
		return domain.User{}, "", apperrors.ErrInvalidCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	seeded, ok := p.accounts[email]
	if !ok {
		// Same error as a bad password to prevent account enumeration.
		return domain.User{}, "", apperrors.ErrInvalidCredentials
	}
	match, err := ComparePassword(password, seeded.passwordHash)
	if err != nil || !match {
		return domain.User{}, "", apperrors.ErrInvalidCredentials
	}

	token, err := p.issuer.Issue(seeded.name, email)
	if err != nil {
		return domain.User{}, "", apperrors.ErrTokenGeneration
	}

	user := domain.User{Name: seeded.name, Email: email}
	p.current = &user
	p.log.Info("User signed in", "email", email)
	return user, token, nil
}

func (p *MockIdentityProvider) SignOut() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
}

func (p *MockIdentityProvider) Current() (domain.User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return domain.User{}, false
	}
	return *p.current, true
}
