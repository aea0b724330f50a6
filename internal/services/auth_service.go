package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/mail"
	"bazaar/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	Users   *repos.UserRepo
	Resets  *repos.ResetRepo
	Mailer  mail.Sender
	BaseURL string
}

type Registration struct {
	Email    string
	Password string
	Name     string
	Address  string
	Role     string
}

// Register creates the account and binds the session in one step, matching
// the original flow where registration logs the user in.
func (s *AuthService) Register(sid string, in Registration) (*domain.User, error) {
	if in.Role != domain.RoleSeller {
		in.Role = domain.RoleCustomer
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		ID:      uuid.NewString(),
		Email:   in.Email,
		Name:    in.Name,
		Hash:    string(hash),
		Address: in.Address,
		Role:    in.Role,
	}
	if err := s.Users.Create(u); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, domain.ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, domain.ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// ForgotPassword issues a single live reset token (any prior one is dropped)
// and mails the reset link. Unknown addresses report success without sending,
// so the endpoint does not reveal which emails have accounts.
func (s *AuthService) ForgotPassword(email string) error {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil
	}
	token, err := newResetToken()
	if err != nil {
		return err
	}
	if err := s.Resets.Issue(u.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}
	link := s.BaseURL + "/reset-password?token=" + token
	// best-effort: a failed send should not surface account state
	_ = s.Mailer.Send(u.Email, "Reset your password",
		"Hello "+u.Name+",\n\nUse the link below to choose a new password. It expires in one hour.\n\n"+link+"\n")
	return nil
}

// ResetPassword consumes the token and stores the new bcrypt hash. Wrong or
// expired tokens fail with ErrConflict and leave the account untouched.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	userID, err := s.Resets.Consume(token, time.Now())
	if err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("%w: invalid or expired reset token", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(userID, string(hash))
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
