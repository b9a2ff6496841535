package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/apperr"
	"taskboard/internal/auth"
	"taskboard/internal/mailer"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type MailSettings struct {
	From      string
	ClientURL string
}

type AuthService struct {
	users       repository.UserRepositoryInterface
	invitations *InvitationService
	access      TokenIssuer
	verify      TokenIssuer
	verifyTTL   time.Duration
	mail        mailer.Mailer
	settings    MailSettings
}

func NewAuthService(
	users repository.UserRepositoryInterface,
	invitations *InvitationService,
	access TokenIssuer,
	verify TokenIssuer,
	verifyTTL time.Duration,
	mail mailer.Mailer,
	settings MailSettings,
) *AuthService {
	return &AuthService{
		users:       users,
		invitations: invitations,
		access:      access,
		verify:      verify,
		verifyTTL:   verifyTTL,
		mail:        mail,
		settings:    settings,
	}
}

type LoginUser struct {
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
}

type LoginResult struct {
	AccessToken   string                 `json:"accessToken"`
	User          LoginUser              `json:"user"`
	Notifications []model.InvitationView `json:"notifications"`
}

// Register creates an unverified account and mails a verification link. An
// unverified account with the same e-mail just gets a fresh link.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", apperr.NewBadInput("Please provide all value")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.Verified {
		return "", apperr.NewConflict("E-mail was taken")
	}
	if existing != nil {
		if err := s.sendVerification(ctx, existing); err != nil {
			return "", err
		}
		return "Resend your verification in your e-mail", nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		Email:       email,
		Password:    hash,
		DisplayName: displayNameFrom(email),
	}
	err = s.users.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		return "", apperr.NewConflict("E-mail was taken")
	}
	if err != nil {
		return "", err
	}

	if err := s.sendVerification(ctx, user); err != nil {
		return "", err
	}
	return fmt.Sprintf("Created your account, please verify your e-mail in %s", humanDuration(s.verifyTTL)), nil
}

func (s *AuthService) sendVerification(ctx context.Context, user *model.User) error {
	token, err := s.verify.GenerateToken(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}
	msg := mailer.VerificationMessage(s.settings.From, user.Email, s.settings.ClientURL, token)
	if err := s.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	log.WithField("user_id", user.ID).Debug("verification mail sent")
	return nil
}

// VerifyEmail marks the token's account as verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperr.NewBadInput("Please provide a token")
	}

	claims, err := s.verify.ParseToken(token)
	if errors.Is(err, auth.ErrExpiredToken) {
		return apperr.NewForbidden("Token expired")
	}
	if err != nil {
		return apperr.NewUnauthenticated("Token is invalid")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return apperr.NewUnauthenticated("Token is invalid")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NewUnauthenticated("Token is invalid")
	}
	if user.Verified {
		return apperr.NewBadInput("The account was verified")
	}
	return s.users.MarkVerified(ctx, user.ID)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.NewBadInput("Please provide all value")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return nil, apperr.NewUnauthenticated("E-mail or password is incorrect")
	}
	if !user.Verified {
		return nil, apperr.NewUnauthenticated("Please verify your e-mail before")
	}

	token, err := s.access.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	invitations, err := s.invitations.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		User: LoginUser{
			UserID:      user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
		Notifications: invitations,
	}, nil
}

func displayNameFrom(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func humanDuration(d time.Duration) string {
	if d%time.Minute == 0 && d < time.Hour {
		return fmt.Sprintf("%d minutes", int(d.Minutes()))
	}
	return d.String()
}
