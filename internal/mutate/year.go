package mutate

import (
	"strings"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/palette"
	"mandalart-cli/internal/store"
)

// GetOrCreateYear returns the stored data for year, or the canonical default
// tree if the year has never been saved. st is not modified.
func GetOrCreateYear(st store.State, year int) model.YearData {
	if yd, ok := st.Year(year); ok && yd.RootGoal != nil {
		return yd
	}
	return goaltree.DefaultYear(year)
}

// SeedYear stores the default tree for year, coloured with themeKey, unless
// the year already exists.
func SeedYear(st store.State, year int, themeKey string) Result {
	if yd, ok := st.Year(year); ok && yd.RootGoal != nil {
		return unchanged(st, year, yd.RootGoal)
	}
	yd := goaltree.DefaultYearWithTheme(year, themeKey)
	return Result{
		State:     st.WithYear(yd),
		Year:      year,
		Goal:      yd.RootGoal,
		Changed:   true,
		EventType: EventYearCreate,
		EntityID:  yd.RootGoal.ID,
		EventPayload: map[string]any{
			"colorTheme": yd.ColorTheme,
		},
	}
}

// withRoot stores root as the year's tree. A year that was only implied by
// GetOrCreateYear is persisted at this point.
func withRoot(st store.State, yd model.YearData, root *model.Goal) store.State {
	yd.RootGoal = root
	return st.WithYear(yd)
}

// SetTheme changes the colour palette of year.
func SetTheme(st store.State, year int, key string) (Result, error) {
	key = strings.TrimSpace(key)
	if !palette.Valid(key) {
		return Result{}, ErrUnknownTheme
	}
	yd := GetOrCreateYear(st, year)
	_, stored := st.Year(year)
	if stored && yd.ColorTheme == key {
		return unchanged(st, year, yd.RootGoal), nil
	}
	yd.ColorTheme = key
	return Result{
		State:     st.WithYear(yd),
		Year:      year,
		Goal:      yd.RootGoal,
		Changed:   true,
		EventType: EventYearTheme,
		EntityID:  yd.RootGoal.ID,
		EventPayload: map[string]any{
			"colorTheme": key,
		},
	}, nil
}

func SetLanguage(st store.State, lang model.Language) (Result, error) {
	if !lang.Valid() {
		return Result{}, ErrUnknownLanguage
	}
	if st.Language == lang {
		return unchanged(st, 0, nil), nil
	}
	return Result{
		State:     st.WithLanguage(lang),
		Changed:   true,
		EventType: EventLanguageSet,
		EntityID:  "language",
		EventPayload: map[string]any{
			"language": string(lang),
		},
	}, nil
}

// CycleLanguage advances ko → en → jp → ko. An unknown current language
// restarts the cycle at the default.
func CycleLanguage(st store.State) Result {
	next := model.DefaultLanguage
	for i, l := range model.Languages {
		if l == st.Language {
			next = model.Languages[(i+1)%len(model.Languages)]
			break
		}
	}
	res, _ := SetLanguage(st, next)
	return res
}
