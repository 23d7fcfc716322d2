package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Rachitneema03/edufolio/internal/session"
)

// Storage keys within the signed-in identity's namespace.
const (
	profileKey      = "profile"
	settingsKey     = "settings"
	achievementsKey = "achievements"
)

// Service defines the dashboard operations backed by the session store.
//
// Contract:
//   - Save/Load pairs persist and recall form data for the current session.
//   - Achievement mutations keep the whole list under one key.
//   - Guard failures surface the store's sentinel errors; reads of absent
//     data return found=false rather than an error.
type Service interface {
	SaveProfile(ctx context.Context, p Profile) error
	LoadProfile(ctx context.Context) (Profile, bool, error)
	SaveSettings(ctx context.Context, s Settings) error
	LoadSettings(ctx context.Context) (Settings, bool, error)
	AddAchievement(ctx context.Context, a Achievement) (Achievement, error)
	ListAchievements(ctx context.Context) ([]Achievement, error)
	RemoveAchievement(ctx context.Context, id string) error
	SetAchievementStatus(ctx context.Context, id string, status AchievementStatus) error
}

type service struct {
	store *session.Store
}

// NewService constructs a Service bound to the given session store.
func NewService(store *session.Store) Service {
	return &service{store: store}
}

// SaveProfile validates the role and persists the profile form.
func (s *service) SaveProfile(ctx context.Context, p Profile) error {
	if !ValidRole(p.Role) {
		return fmt.Errorf("%w: %q", ErrInvalidRole, p.Role)
	}
	return s.store.Store(ctx, profileKey, p)
}

func (s *service) LoadProfile(ctx context.Context) (Profile, bool, error) {
	var p Profile
	found, err := s.store.Load(ctx, profileKey, &p)
	return p, found, err
}

func (s *service) SaveSettings(ctx context.Context, st Settings) error {
	return s.store.Store(ctx, settingsKey, st)
}

func (s *service) LoadSettings(ctx context.Context) (Settings, bool, error) {
	var st Settings
	found, err := s.store.Load(ctx, settingsKey, &st)
	return st, found, err
}

// AddAchievement assigns a fresh id, defaults the status to pending, and
// appends the achievement to the stored list.
func (s *service) AddAchievement(ctx context.Context, a Achievement) (Achievement, error) {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if !validStatus(a.Status) {
		return Achievement{}, fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	a.ID = uuid.NewString()

	list, err := s.ListAchievements(ctx)
	if err != nil {
		return Achievement{}, err
	}
	list = append(list, a)

	if err := s.store.Store(ctx, achievementsKey, list); err != nil {
		return Achievement{}, err
	}
	return a, nil
}

func (s *service) ListAchievements(ctx context.Context) ([]Achievement, error) {
	var list []Achievement
	if _, err := s.store.Load(ctx, achievementsKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *service) RemoveAchievement(ctx context.Context, id string) error {
	list, err := s.ListAchievements(ctx)
	if err != nil {
		return err
	}

	out := list[:0]
	removed := false
	for _, a := range list {
		if a.ID == id {
			removed = true
			continue
		}
		out = append(out, a)
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrAchievementNotFound, id)
	}
	return s.store.Store(ctx, achievementsKey, out)
}

// SetAchievementStatus moves one achievement through the approval workflow.
func (s *service) SetAchievementStatus(ctx context.Context, id string, status AchievementStatus) error {
	if !validStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	list, err := s.ListAchievements(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == id {
			list[i].Status = status
			return s.store.Store(ctx, achievementsKey, list)
		}
	}
	return fmt.Errorf("%w: %s", ErrAchievementNotFound, id)
}
