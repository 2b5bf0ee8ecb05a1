package store

import (
	"encoding/json"
	"strings"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/palette"
)

// wireState mirrors State but keeps optional fields nullable so missing keys
// can be told apart from zero values.
type wireState struct {
	Data     map[int]model.YearData `json:"data"`
	Language *string                `json:"language"`
}

func Encode(st State) ([]byte, error) {
	if st.Data == nil {
		st.Data = map[int]model.YearData{}
	}
	if !st.Language.Valid() {
		st.Language = model.DefaultLanguage
	}
	return json.Marshal(st)
}

// Decode parses a persisted record and fills shape defaults: an absent year
// map becomes empty, an absent or unknown language becomes the default, each
// year takes its number from its map key, and a year without a tree gets the
// canonical seed. Tree contents are not
// validated.
func Decode(raw []byte) (State, error) {
	var w wireState
	if err := json.Unmarshal(raw, &w); err != nil {
		return State{}, err
	}
	st := EmptyState()
	if w.Language != nil {
		if lang := model.Language(strings.TrimSpace(*w.Language)); lang.Valid() {
			st.Language = lang
		}
	}
	for year, yd := range w.Data {
		st.Data[year] = normalizeYear(year, yd)
	}
	return st, nil
}

// normalizeYear takes the year from the map key; a disagreeing year field is
// reported by Doctor and overwritten here.
func normalizeYear(year int, yd model.YearData) model.YearData {
	yd.Year = year
	if !palette.Valid(yd.ColorTheme) {
		yd.ColorTheme = palette.DefaultKey
	}
	if yd.RootGoal == nil {
		yd.RootGoal = goaltree.DefaultYearWithTheme(year, yd.ColorTheme).RootGoal
	}
	return yd
}

func isNullOrEmpty(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	s := strings.TrimSpace(string(b))
	return s == "" || s == "null"
}
