package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
	"github.com/hana/meditation-progress-api/internal/repository"
)

type PreferencesService struct {
	prefsRepo repository.PreferencesRepository
}

func NewPreferencesService(prefsRepo repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{prefsRepo: prefsRepo}
}

type UpdatePreferencesInput struct {
	DailyGoalMinutes    *int    `json:"dailyGoalMinutes"`
	IntervalBellEnabled *bool   `json:"intervalBellEnabled"`
	IntervalBellMinutes *int    `json:"intervalBellMinutes"`
	DefaultSound        *string `json:"defaultSound"`
}

// Get returns the user's preferences, falling back to defaults when they
// have never been saved.
func (s *PreferencesService) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	prefs, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == domain.ErrPreferencesNotFound {
			return domain.DefaultPreferences(userID), nil
		}
		return nil, err
	}
	return prefs, nil
}

// Update applies the provided fields on top of the stored (or default)
// preferences. The session-recording path never calls this.
func (s *PreferencesService) Update(ctx context.Context, userID uuid.UUID, input UpdatePreferencesInput) (*domain.UserPreferences, error) {
	verr := domain.NewValidationError()
	if input.DailyGoalMinutes != nil && *input.DailyGoalMinutes <= 0 {
		verr.Add("dailyGoalMinutes", "must be a positive number of minutes")
	}
	if input.IntervalBellMinutes != nil && *input.IntervalBellMinutes <= 0 {
		verr.Add("intervalBellMinutes", "must be a positive number of minutes")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DailyGoalMinutes != nil {
		prefs.DailyGoalMinutes = *input.DailyGoalMinutes
	}
	if input.IntervalBellEnabled != nil {
		prefs.IntervalBellEnabled = *input.IntervalBellEnabled
	}
	if input.IntervalBellMinutes != nil {
		prefs.IntervalBellMinutes = *input.IntervalBellMinutes
	}
	if input.DefaultSound != nil {
		prefs.DefaultSound = *input.DefaultSound
	}

	if err := s.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, err
	}

	return prefs, nil
}
