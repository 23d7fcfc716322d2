package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Rachitneema03/edufolio/internal/portfolio"
)

// AddAchievement prompts for the achievement fields and stores it with a
// pending status.
func (a *App) AddAchievement(ctx context.Context) error {
	var ach portfolio.Achievement
	var err error

	if ach.Title, err = GetSimpleText(a.reader, "Title", os.Stdout); err != nil {
		return err
	}
	if ach.Category, err = GetSimpleText(a.reader, "Category", os.Stdout); err != nil {
		return err
	}
	if ach.AwardedOn, err = GetSimpleText(a.reader, "Awarded on (YYYY-MM-DD)", os.Stdout); err != nil {
		return err
	}

	added, err := a.svc.AddAchievement(ctx, ach)
	if err != nil {
		a.log.Error(ctx, "failed to add achievement", "error", err)
		return err
	}
	printlnFn("Added achievement", added.ID)
	return nil
}

// ListAchievements prints the stored achievements.
func (a *App) ListAchievements(ctx context.Context) error {
	list, err := a.svc.ListAchievements(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to list achievements", "error", err)
		return err
	}
	if len(list) == 0 {
		printlnFn("No achievements yet")
		return nil
	}

	for _, ach := range list {
		printlnFn(fmt.Sprintf("%s  [%s]  %s (%s) %s", ach.ID, ach.Status, ach.Title, ach.Category, ach.AwardedOn))
	}
	return nil
}

// ReviewAchievement prompts for an id and a decision and moves the
// achievement through the approval workflow.
func (a *App) ReviewAchievement(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Achievement id", os.Stdout)
	if err != nil {
		return err
	}
	decision, err := GetSimpleText(a.reader, "Decision (approved/rejected)", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.svc.SetAchievementStatus(ctx, id, portfolio.AchievementStatus(decision)); err != nil {
		a.log.Error(ctx, "failed to review achievement", "error", err)
		return err
	}
	printlnFn("Achievement", id, decision)
	return nil
}

// RemoveAchievement prompts for an id and deletes the achievement.
func (a *App) RemoveAchievement(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Achievement id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.svc.RemoveAchievement(ctx, id); err != nil {
		a.log.Error(ctx, "failed to remove achievement", "error", err)
		return err
	}
	printlnFn("Removed achievement", id)
	return nil
}
