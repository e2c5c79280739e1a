package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

type RegisterInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Level       string `json:"level"`
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Current(ctx context.Context) (*domain.User, error)
}

type userService struct {
	log   *logger.Logger
	store store.Store
}

func NewUserService(log *logger.Logger, st store.Store) UserService {
	return &userService{
		log:   log.With("service", "UserService"),
		store: st,
	}
}

// bcrypt only hashes the first 72 bytes.
const (
	maxPasswordBytes = 72
	passwordTooLong  = "password must be at most 72 bytes"
)

func (us *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	switch {
	case in.Username == "":
		return nil, apierr.BadRequest("username is required")
	case in.Password == "":
		return nil, apierr.BadRequest("password is required")
	case len(in.Password) > maxPasswordBytes:
		return nil, apierr.BadRequest(passwordTooLong)
	case in.DisplayName == "":
		return nil, apierr.BadRequest("displayName is required")
	}

	if _, err := us.store.GetUserByUsername(ctx, in.Username); err == nil {
		return nil, apierr.BadRequest("Username already exists")
	} else if !errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apierr.BadRequest(passwordTooLong)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := us.store.CreateUser(ctx, domain.User{
		Username:    in.Username,
		Password:    string(hash),
		DisplayName: in.DisplayName,
		Level:       strings.TrimSpace(in.Level),
	})
	if errors.Is(err, pkgerrors.ErrConflict) {
		return nil, apierr.BadRequest("Username already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	skills, err := us.store.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	for _, sk := range skills {
		_, err := us.store.CreateUserSkill(ctx, domain.UserSkill{
			UserID:   user.ID,
			SkillID:  sk.ID,
			Progress: 0,
			Level:    domain.DefaultSkillLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("init user skill %d: %w", sk.ID, err)
		}
	}
	us.log.Info("User registered", "user_id", user.ID, "skills", len(skills))
	return user, nil
}

func (us *userService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apierr.Unauthorized("Invalid credentials")
	}
	user, err := us.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		us.log.Info("Login rejected", "username", user.Username)
		return nil, apierr.Unauthorized("Invalid credentials")
	}
	return user, nil
}

func (us *userService) Current(ctx context.Context) (*domain.User, error) {
	user, err := us.store.GetUser(ctx, domain.DemoUserID)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.NotFound("User not found")
	}
	return user, err
}
