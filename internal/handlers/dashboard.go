package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"studyfortress/internal/auth"
	"studyfortress/internal/catalog"
	"studyfortress/internal/viewmodel"
	"studyfortress/views/pages"
)

type DashboardHandler struct {
	cat  *catalog.Catalog
	auth *auth.Service
}

func NewDashboardHandler(cat *catalog.Catalog, svc *auth.Service) *DashboardHandler {
	return &DashboardHandler{cat: cat, auth: svc}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.With(h.auth.Require).Get("/", h.dashboard)
}

func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())
	render(w, r, pages.DashboardPage(buildDashboard(h.cat, user)))
}

func buildDashboard(cat *catalog.Catalog, user auth.User) viewmodel.DashboardPage {
	p := cat.Profile
	data := viewmodel.DashboardPage{
		Title:     "Study Fortress",
		UserEmail: user.Email,
		Profile: viewmodel.Profile{
			Name:     p.Name,
			Email:    p.Email,
			Avatar:   p.Avatar,
			Initials: nameInitials(p.Name),
		},
		TotalStudy:    formatStudyTime(p.TotalStudyMinutes),
		CurrentStreak: p.CurrentStreak,
		TotalSessions: p.TotalSessions,
	}
	if user.Email != "" {
		data.Profile.Email = user.Email
	}

	for _, f := range cat.Folders {
		data.Folders = append(data.Folders, viewmodel.FolderCard{
			ID:          f.ID,
			Name:        f.Name,
			Description: f.Description,
			Cards:       f.Cards,
			Color:       f.Color,
			URL:         "/lab/" + f.ID,
		})
	}
	for _, s := range cat.Recents {
		data.Recents = append(data.Recents, viewmodel.Shortcut{Name: s.Name, IsFolder: s.Kind == "folder"})
	}
	for _, s := range cat.Favorites {
		data.Favorites = append(data.Favorites, viewmodel.Shortcut{Name: s.Name, IsFolder: s.Kind == "folder"})
	}

	peak := 0
	for _, d := range cat.WeeklyActivity {
		data.WeekMinutes += d.Minutes
		if d.Minutes > peak {
			peak = d.Minutes
		}
	}
	for _, d := range cat.WeeklyActivity {
		height := 0
		if peak > 0 {
			height = d.Minutes * 100 / peak
		}
		data.Activity = append(data.Activity, viewmodel.ActivityBar{Day: d.Day, Minutes: d.Minutes, Height: height})
	}
	if p.WeeklyGoalMinutes > 0 {
		data.GoalPercent = data.WeekMinutes * 100 / p.WeeklyGoalMinutes
	}
	return data
}

func nameInitials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}
