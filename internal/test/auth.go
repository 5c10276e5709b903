package test

import (
	"errors"
	"strings"

	"github.com/polkiloo/coursemart/internal/domain/model"
	pkgAuth "github.com/polkiloo/coursemart/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// CompareDummy does nothing.
func (h HasherStub) CompareDummy(string) {}

// StrategyStub encodes claims as "token:<id>:<email>:<role>" unless overridden.
type StrategyStub struct {
	IssueFn func(pkgAuth.Claims) (string, error)
	ParseFn func(string) (*pkgAuth.Claims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(claims pkgAuth.Claims) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(claims)
	}
	return strings.Join([]string{"token", claims.UserID, claims.Email, claims.Role}, ":"), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	parts := strings.Split(token, ":")
	if len(parts) != 4 || parts[0] != "token" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return &pkgAuth.Claims{UserID: parts[1], Email: parts[2], Role: parts[3]}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// SessionVerifierStub implements middleware session verification contract.
type SessionVerifierStub struct {
	User     *model.User
	Err      error
	VerifyFn func(string) (*model.User, error)
}

// VerifySession either delegates to override or returns predefined result.
func (s SessionVerifierStub) VerifySession(token string) (*model.User, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.User == nil {
		return nil, errors.New("no user configured")
	}
	return s.User, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
