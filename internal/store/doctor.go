package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"mandalart-cli/internal/goaltree"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/palette"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Year    int              `json:"year,omitempty"`
	GoalID  string           `json:"goalId,omitempty"`
}

type DoctorReport struct {
	Backend Backend       `json:"backend"`
	Years   int           `json:"years"`
	Goals   int           `json:"goals"`
	Events  int           `json:"events"`
	Issues  []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

var ErrDoctorIssuesFound = errors.New("doctor: issues found")

// doctorRecord is the persisted record with every year left raw, so one bad
// year does not hide problems in the others.
type doctorRecord struct {
	Data     map[string]json.RawMessage `json:"data"`
	Language *string                    `json:"language"`
}

// Doctor inspects the stored record and event log without changing them.
// Load is lenient and silently repairs most of what is reported here.
func (s Store) Doctor(ctx context.Context) DoctorReport {
	rep := DoctorReport{Backend: s.backend(), Issues: []DoctorIssue{}}
	add := func(level DoctorIssueLevel, code, msg string, year int, goalID string) {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: level, Code: code, Message: msg, Year: year, GoalID: goalID})
	}

	raw, ok, err := s.LoadRaw(ctx)
	switch {
	case err != nil:
		add(DoctorIssueLevelError, "state_read_failed", err.Error(), 0, "")
	case !ok:
		add(DoctorIssueLevelWarn, "state_missing", "no saved state yet (run: mandalart init)", 0, "")
	default:
		s.doctorRecord(raw, &rep, add)
	}

	evs, err := s.ReadEvents(ctx, 0)
	if err != nil {
		add(DoctorIssueLevelError, "events_read_failed", err.Error(), 0, "")
	} else {
		rep.Events = len(evs)
		for i, ev := range evs {
			if strings.TrimSpace(ev.ID) == "" || strings.TrimSpace(ev.Type) == "" {
				add(DoctorIssueLevelWarn, "event_incomplete", fmt.Sprintf("event #%d is missing its id or type", i+1), ev.Year, "")
			}
		}
	}
	return rep
}

func (s Store) doctorRecord(raw []byte, rep *DoctorReport, add func(DoctorIssueLevel, string, string, int, string)) {
	var rec doctorRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		add(DoctorIssueLevelError, "state_invalid_json", err.Error(), 0, "")
		return
	}
	if rec.Language == nil {
		add(DoctorIssueLevelWarn, "language_missing", "language is not set; defaulting to "+string(model.DefaultLanguage), 0, "")
	} else if !model.Language(strings.TrimSpace(*rec.Language)).Valid() {
		add(DoctorIssueLevelWarn, "language_unknown", fmt.Sprintf("unknown language %q", *rec.Language), 0, "")
	}

	keys := make([]string, 0, len(rec.Data))
	for k := range rec.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		year, err := strconv.Atoi(k)
		if err != nil {
			add(DoctorIssueLevelError, "year_key_invalid", fmt.Sprintf("year key %q is not a number", k), 0, "")
			continue
		}
		var yd model.YearData
		if err := json.Unmarshal(rec.Data[k], &yd); err != nil {
			add(DoctorIssueLevelError, "year_invalid", err.Error(), year, "")
			continue
		}
		rep.Years++
		if yd.Year != 0 && yd.Year != year {
			add(DoctorIssueLevelWarn, "year_mismatch", fmt.Sprintf("stored under %d but says %d", year, yd.Year), year, "")
		}
		if !palette.Valid(yd.ColorTheme) {
			add(DoctorIssueLevelWarn, "theme_unknown", fmt.Sprintf("unknown colour theme %q", yd.ColorTheme), year, "")
		}
		if yd.RootGoal == nil {
			add(DoctorIssueLevelWarn, "tree_missing", "year has no goal tree; the default tree will be used", year, "")
			continue
		}
		doctorTree(year, yd.RootGoal, rep, add)
	}
}

func doctorTree(year int, root *model.Goal, rep *DoctorReport, add func(DoctorIssueLevel, string, string, int, string)) {
	seen := map[string]bool{}
	goaltree.Walk(root, func(g *model.Goal, depth int) {
		rep.Goals++
		id := strings.TrimSpace(g.ID)
		switch {
		case id == "":
			add(DoctorIssueLevelError, "goal_id_missing", fmt.Sprintf("goal at depth %d has no id", depth), year, "")
		case seen[id]:
			add(DoctorIssueLevelError, "duplicate_goal_id", "goal id appears more than once; only the first is reachable by id", year, id)
		default:
			seen[id] = true
		}
		if g.IsCompleted && g.CompletedAt == nil {
			add(DoctorIssueLevelWarn, "completed_without_timestamp", "completed goal has no completedAt and will not appear in the timeline", year, id)
		}
		if !g.IsCompleted && g.CompletedAt != nil {
			add(DoctorIssueLevelWarn, "stale_completed_at", "open goal still carries completedAt", year, id)
		}
	})
}
