package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Rachitneema03/edufolio/internal/portfolio"
)

// ShowProfile prints the stored profile form, if any.
func (a *App) ShowProfile(ctx context.Context) error {
	p, found, err := a.svc.LoadProfile(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to load profile", "error", err)
		return err
	}
	if !found {
		printlnFn("No profile yet; use 'edit' to create one")
		return nil
	}

	printlnFn(fmt.Sprintf("%s <%s> — %s, %s", p.FullName, p.Email, p.Role, p.Department))
	if p.Bio != "" {
		printlnFn(p.Bio)
	}
	return nil
}

// EditProfile prompts for the profile fields and saves the form.
func (a *App) EditProfile(ctx context.Context) error {
	var p portfolio.Profile
	var err error

	if p.FullName, err = GetSimpleText(a.reader, "Full name", os.Stdout); err != nil {
		return err
	}
	if p.Email, err = GetSimpleText(a.reader, "Email", os.Stdout); err != nil {
		return err
	}
	role, err := GetSimpleText(a.reader, "Role (student/faculty/admin)", os.Stdout)
	if err != nil {
		return err
	}
	p.Role = portfolio.Role(role)
	if p.Department, err = GetSimpleText(a.reader, "Department", os.Stdout); err != nil {
		return err
	}
	if p.Bio, err = GetSimpleText(a.reader, "Bio", os.Stdout); err != nil {
		return err
	}

	if err := a.svc.SaveProfile(ctx, p); err != nil {
		a.log.Error(ctx, "failed to save profile", "error", err)
		return err
	}
	printlnFn("Profile saved")
	return nil
}

// EditSettings prompts for the dashboard toggles and saves them.
func (a *App) EditSettings(ctx context.Context) error {
	notify, err := GetSimpleText(a.reader, "Email notifications (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	theme, err := GetSimpleText(a.reader, "Theme (light/dark)", os.Stdout)
	if err != nil {
		return err
	}

	s := portfolio.Settings{
		EmailNotifications: notify == "y" || notify == "yes",
		Theme:              theme,
	}
	if err := a.svc.SaveSettings(ctx, s); err != nil {
		a.log.Error(ctx, "failed to save settings", "error", err)
		return err
	}
	printlnFn("Settings saved")
	return nil
}
