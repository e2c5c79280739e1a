package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abdos10/think-like-genius/internal/data/store"
	"github.com/abdos10/think-like-genius/internal/domain"
	pkgerrors "github.com/abdos10/think-like-genius/internal/pkg/errors"
	"github.com/abdos10/think-like-genius/internal/platform/apierr"
	"github.com/abdos10/think-like-genius/internal/platform/logger"
)

// UpdateUserSkillInput is a partial update; nil fields are left alone.
type UpdateUserSkillInput struct {
	Progress *int    `json:"progress"`
	Level    *string `json:"level"`
}

type SkillService interface {
	ListSkills(ctx context.Context) ([]domain.ThinkingSkill, error)
	GetSkill(ctx context.Context, id int) (*domain.ThinkingSkill, error)
	// ListUserSkills returns the demo user's skills joined with their definitions.
	ListUserSkills(ctx context.Context) ([]domain.UserSkillWithSkill, error)
	UpdateUserSkill(ctx context.Context, id int, in UpdateUserSkillInput) (*domain.UserSkill, error)
	// Badge renders the progress ring PNG for a user skill.
	Badge(ctx context.Context, userSkillID int) ([]byte, error)
}

type skillService struct {
	log    *logger.Logger
	store  store.Store
	badges *BadgeRenderer
}

func NewSkillService(log *logger.Logger, st store.Store, badges *BadgeRenderer) SkillService {
	return &skillService{
		log:    log.With("service", "SkillService"),
		store:  st,
		badges: badges,
	}
}

func (ss *skillService) ListSkills(ctx context.Context) ([]domain.ThinkingSkill, error) {
	return ss.store.ListSkills(ctx)
}

func (ss *skillService) GetSkill(ctx context.Context, id int) (*domain.ThinkingSkill, error) {
	sk, err := ss.store.GetSkill(ctx, id)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.NotFound("Skill not found")
	}
	return sk, err
}

func (ss *skillService) ListUserSkills(ctx context.Context) ([]domain.UserSkillWithSkill, error) {
	userSkills, err := ss.store.ListUserSkills(ctx, domain.DemoUserID)
	if err != nil {
		return nil, fmt.Errorf("list user skills: %w", err)
	}
	skills, err := ss.skillIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserSkillWithSkill, 0, len(userSkills))
	for _, us := range userSkills {
		row := domain.UserSkillWithSkill{UserSkill: us}
		if sk, ok := skills[us.SkillID]; ok {
			sk := sk
			row.Skill = &sk
		}
		out = append(out, row)
	}
	return out, nil
}

func (ss *skillService) UpdateUserSkill(ctx context.Context, id int, in UpdateUserSkillInput) (*domain.UserSkill, error) {
	if in.Progress != nil && (*in.Progress < 0 || *in.Progress > 100) {
		return nil, apierr.BadRequest("progress must be between 0 and 100")
	}
	patch := domain.UserSkillPatch{Progress: in.Progress}
	if in.Level != nil {
		lvl := strings.TrimSpace(*in.Level)
		if lvl == "" {
			return nil, apierr.BadRequest("level must not be empty")
		}
		patch.Level = &lvl
	}
	updated, err := ss.store.UpdateUserSkill(ctx, id, patch)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.NotFound("User skill not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update user skill: %w", err)
	}
	return updated, nil
}

func (ss *skillService) Badge(ctx context.Context, userSkillID int) ([]byte, error) {
	if ss.badges == nil {
		return nil, errors.New("badge renderer not configured")
	}
	us, err := ss.store.GetUserSkill(ctx, userSkillID)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, apierr.NotFound("User skill not found")
	}
	if err != nil {
		return nil, err
	}
	color, label := "", ""
	if sk, err := ss.store.GetSkill(ctx, us.SkillID); err == nil {
		color, label = sk.Color, sk.Name
	} else if !errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, err
	}
	return ss.badges.Render(us.Progress, color, label)
}

func (ss *skillService) skillIndex(ctx context.Context) (map[int]domain.ThinkingSkill, error) {
	skills, err := ss.store.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	idx := make(map[int]domain.ThinkingSkill, len(skills))
	for _, sk := range skills {
		idx[sk.ID] = sk
	}
	return idx, nil
}
