package goaltree

import (
	"testing"
	"time"

	"mandalart-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) *model.Goal {
	t.Helper()
	return DefaultYear(2025).RootGoal
}

func TestDefaultYear_Shape(t *testing.T) {
	yd := DefaultYear(2025)
	require.Equal(t, 2025, yd.Year)
	require.Equal(t, "softBlue", yd.ColorTheme)
	require.Equal(t, "root-2025", yd.RootGoal.ID)
	require.Equal(t, "2025 Vision", yd.RootGoal.Text)
	require.Len(t, yd.RootGoal.SubGoals, 8)

	for i, cat := range yd.RootGoal.SubGoals {
		assert.Equal(t, CategoryID(2025, i), cat.ID)
		assert.Equal(t, InitialKeywords[i], cat.Text)
		require.Len(t, cat.SubGoals, 8)
		for j, task := range cat.SubGoals {
			assert.Equal(t, GridChildID(cat.ID, j), task.ID)
			assert.False(t, task.IsCompleted)
			assert.Nil(t, task.CompletedAt)
		}
	}
	assert.Equal(t, 0.0, Progress(yd.RootGoal))
}

func TestDefaultYearWithTheme_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, "lavender", DefaultYearWithTheme(2024, "lavender").ColorTheme)
	assert.Equal(t, "softBlue", DefaultYearWithTheme(2024, "neon").ColorTheme)
}

func TestLocate(t *testing.T) {
	root := seed(t)

	g, ok := Locate(root, "sub-2025-3-sub-5")
	require.True(t, ok)
	assert.Equal(t, "sub-2025-3-sub-5", g.ID)

	g, ok = Locate(root, "root-2025")
	require.True(t, ok)
	assert.Same(t, root, g)

	_, ok = Locate(root, "nope")
	assert.False(t, ok)
	_, ok = Locate(nil, "root-2025")
	assert.False(t, ok)
}

func TestUpdateByID_UnknownIDReturnsSameTree(t *testing.T) {
	root := seed(t)
	out := UpdateByID(root, "missing", Patch{}.WithText("x").WithCompleted(true))
	assert.Same(t, root, out)
	assert.Equal(t, DefaultYear(2025).RootGoal, out)
}

func TestUpdateByID_PathCopyingSharesUntouchedNodes(t *testing.T) {
	root := seed(t)
	out := UpdateByID(root, "sub-2025-2-sub-4", Patch{}.WithText("run 5k").WithNotes("weekly"))

	require.NotSame(t, root, out)
	got, ok := Locate(out, "sub-2025-2-sub-4")
	require.True(t, ok)
	assert.Equal(t, "run 5k", got.Text)
	assert.Equal(t, "weekly", got.Notes)
	assert.False(t, got.IsCompleted)

	// The old tree is untouched.
	old, _ := Locate(root, "sub-2025-2-sub-4")
	assert.Equal(t, "", old.Text)

	// Ancestors are new; everything off the path is shared.
	assert.NotSame(t, root.SubGoals[2], out.SubGoals[2])
	for i := range root.SubGoals {
		if i == 2 {
			continue
		}
		assert.Same(t, root.SubGoals[i], out.SubGoals[i], "category %d", i)
	}
	for j := range root.SubGoals[2].SubGoals {
		if j == 4 {
			continue
		}
		assert.Same(t, root.SubGoals[2].SubGoals[j], out.SubGoals[2].SubGoals[j], "task %d", j)
	}
}

func TestUpdateByID_Idempotent(t *testing.T) {
	root := seed(t)
	p := Patch{}.WithText("a")
	once := UpdateByID(root, "sub-2025-0", p)
	twice := UpdateByID(once, "sub-2025-0", p)
	assert.Equal(t, once, twice)
}

func TestUpdateByID_CompletionTimestamp(t *testing.T) {
	root := seed(t)
	before := time.Now().UTC()

	done := UpdateByID(root, "sub-2025-0-sub-0", Patch{}.WithCompleted(true))
	g, _ := Locate(done, "sub-2025-0-sub-0")
	require.True(t, g.IsCompleted)
	require.NotNil(t, g.CompletedAt)
	assert.False(t, g.CompletedAt.Before(before))

	undone := UpdateByID(done, "sub-2025-0-sub-0", Patch{}.WithCompleted(false))
	g, _ = Locate(undone, "sub-2025-0-sub-0")
	assert.False(t, g.IsCompleted)
	assert.Nil(t, g.CompletedAt)
}

func TestUpdateByID_RecompletingKeepsOriginalStamp(t *testing.T) {
	root := seed(t)
	t1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	out := UpdateByIDAt(root, "sub-2025-1", Patch{}.WithCompleted(true), t1)
	out = UpdateByIDAt(out, "sub-2025-1", Patch{}.WithCompleted(true).WithText("gym"), t2)
	g, _ := Locate(out, "sub-2025-1")
	require.NotNil(t, g.CompletedAt)
	assert.True(t, g.CompletedAt.Equal(t1))
	assert.Equal(t, "gym", g.Text)
}

func TestUpdateByID_TextOnlyDoesNotTouchCompletion(t *testing.T) {
	root := seed(t)
	t1 := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	out := UpdateByIDAt(root, "sub-2025-1", Patch{}.WithCompleted(true), t1)
	out = UpdateByID(out, "sub-2025-1", Patch{}.WithText("renamed"))
	g, _ := Locate(out, "sub-2025-1")
	assert.True(t, g.IsCompleted)
	assert.True(t, g.CompletedAt.Equal(t1))
}

func TestUpdateByID_SubGoalsReplaceChildren(t *testing.T) {
	root := seed(t)
	kept, _ := Locate(root, "sub-2025-0-sub-1")
	require.NotNil(t, kept)

	out := UpdateByID(root, "sub-2025-0", Patch{}.WithSubGoals([]*model.Goal{kept}).WithText("health"))
	g, _ := Locate(out, "sub-2025-0")
	require.Len(t, g.SubGoals, 1)
	assert.Same(t, kept, g.SubGoals[0])
	assert.Equal(t, "health", g.Text)

	orig, _ := Locate(root, "sub-2025-0")
	assert.Len(t, orig.SubGoals, model.GridSize)

	cleared := UpdateByID(out, "sub-2025-0", Patch{}.WithSubGoals(nil))
	g, _ = Locate(cleared, "sub-2025-0")
	assert.Empty(t, g.SubGoals)
	assert.False(t, Patch{}.WithSubGoals(nil).IsEmpty())

	untouched := UpdateByID(out, "sub-2025-0", Patch{}.WithNotes("n"))
	g, _ = Locate(untouched, "sub-2025-0")
	assert.Len(t, g.SubGoals, 1)
}

func TestEnsureChildren(t *testing.T) {
	root := NewGoal("root-2030", "vision")
	root.SubGoals = []*model.Goal{NewGoal("c0", "")}

	once := EnsureChildren(root, "c0")
	c0, _ := Locate(once, "c0")
	require.Len(t, c0.SubGoals, 8)
	for i, ch := range c0.SubGoals {
		assert.Equal(t, GridChildID("c0", i), ch.ID)
		assert.Equal(t, "", ch.Text)
	}

	twice := EnsureChildren(once, "c0")
	assert.Same(t, once, twice)

	assert.Same(t, once, EnsureChildren(once, "missing"))
}

func TestAppendChild(t *testing.T) {
	root := seed(t)
	now := time.UnixMilli(1_700_000_000_000).UTC()

	out := AppendChildAt(root, "sub-2025-0-sub-0", now)
	out = AppendChildAt(out, "sub-2025-0-sub-0", now)

	parent, _ := Locate(out, "sub-2025-0-sub-0")
	require.Len(t, parent.SubGoals, 2)
	assert.Equal(t, "sub-2025-0-sub-0-item-1700000000000", parent.SubGoals[0].ID)
	assert.Equal(t, "sub-2025-0-sub-0-item-1700000000001", parent.SubGoals[1].ID)

	last, ok := LastChild(out, "sub-2025-0-sub-0")
	require.True(t, ok)
	assert.Same(t, parent.SubGoals[1], last)

	// Checklists may grow past the grid fan-out.
	for i := 0; i < 9; i++ {
		out = AppendChildAt(out, "sub-2025-0-sub-0", now)
	}
	parent, _ = Locate(out, "sub-2025-0-sub-0")
	assert.Len(t, parent.SubGoals, 11)

	assert.Same(t, out, AppendChildAt(out, "missing", now))
}

func TestProgress(t *testing.T) {
	root := seed(t)
	out := UpdateByID(root, "sub-2025-0-sub-0", Patch{}.WithCompleted(true))

	assert.InDelta(t, 0.125, Progress(out.SubGoals[0]), 1e-9)
	assert.InDelta(t, 0.125/8, Progress(out), 1e-9)
	assert.Equal(t, 13, Percent(out.SubGoals[0]))

	// A completed goal counts fully regardless of its children.
	out = UpdateByID(out, "sub-2025-1", Patch{}.WithCompleted(true))
	assert.Equal(t, 1.0, Progress(out.SubGoals[1]))

	assert.Equal(t, 0.0, Progress(NewGoal("leaf", "")))
	assert.Equal(t, 0.0, Progress(nil))
}

func TestProgress_OneIffCompletedOrAllChildrenDone(t *testing.T) {
	root := seed(t)
	cat := root.SubGoals[4]
	out := root
	for _, task := range cat.SubGoals {
		out = UpdateByID(out, task.ID, Patch{}.WithCompleted(true))
	}
	c, _ := Locate(out, cat.ID)
	assert.False(t, c.IsCompleted)
	assert.Equal(t, 1.0, Progress(c))

	p := Progress(out)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
	assert.InDelta(t, 1.0/8, p, 1e-9)
}

func TestProgress_DepthGuardTerminates(t *testing.T) {
	// A corrupt tree deeper than any real one still terminates.
	leaf := NewGoal("deep", "")
	leaf.IsCompleted = true
	g := leaf
	for i := 0; i < maxDepth+5; i++ {
		parent := NewGoal("n", "")
		parent.SubGoals = []*model.Goal{g}
		g = parent
	}
	assert.Equal(t, 0.0, Progress(g))
}

func TestResolveFocus(t *testing.T) {
	root := seed(t)
	assert.Same(t, root, ResolveFocus(root, nil))

	path := NavPath{}.Push(root.SubGoals[2])
	assert.Same(t, root.SubGoals[2], ResolveFocus(root, path))

	// After a mutation the focus resolves to the fresh node, not the old one.
	out := UpdateByID(root, "sub-2025-2", Patch{}.WithText("school"))
	f := ResolveFocus(out, path)
	assert.Equal(t, "school", f.Text)
	assert.Same(t, out.SubGoals[2], f)

	// Unknown ids fall back to the last known reference.
	stale := &model.Goal{ID: "gone", Text: "old"}
	path = path.Push(stale)
	assert.Same(t, stale, ResolveFocus(out, path))
}

func TestNavPath(t *testing.T) {
	root := seed(t)
	p := NavPath{}.Push(root.SubGoals[0]).Push(root.SubGoals[0].SubGoals[3])
	assert.Equal(t, []string{"sub-2025-0", "sub-2025-0-sub-3"}, p.IDs())
	assert.Len(t, p.Pop(), 1)
	assert.Len(t, p.Truncate(0), 0)
	assert.Len(t, p.Truncate(5), 2)

	out := UpdateByID(root, "sub-2025-0-sub-3", Patch{}.WithText("x"))
	refreshed := p.Refresh(out)
	assert.Equal(t, "x", refreshed[1].Text)
	assert.Equal(t, "", p[1].Text)

	ids := NavPathFromIDs(out, []string{"sub-2025-0", "ghost"})
	require.Len(t, ids, 2)
	assert.Same(t, out.SubGoals[0], ids[0])
	assert.Equal(t, "ghost", ResolveFocus(out, ids).ID)
}

func TestPathToAndDepth(t *testing.T) {
	root := seed(t)
	path, ok := PathTo(root, "sub-2025-7-sub-7")
	require.True(t, ok)
	require.Len(t, path, 3)
	assert.Equal(t, "root-2025", path[0].ID)
	assert.Equal(t, "sub-2025-7", path[1].ID)

	d, ok := Depth(root, "sub-2025-7")
	require.True(t, ok)
	assert.Equal(t, 1, d)

	_, ok = PathTo(root, "nope")
	assert.False(t, ok)
}

func TestTimeline(t *testing.T) {
	root := seed(t)
	mar := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	oct := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)

	out := UpdateByIDAt(root, "sub-2025-0-sub-1", Patch{}.WithCompleted(true), mar)
	out = UpdateByIDAt(out, "sub-2025-5", Patch{}.WithCompleted(true), oct)
	out = UpdateByIDAt(out, "sub-2025-3-sub-3", Patch{}.WithCompleted(true), jan)

	done := Completed(out)
	require.Len(t, done, 3)
	assert.Equal(t, "sub-2025-3-sub-3", done[0].ID)
	assert.Equal(t, "sub-2025-5", done[2].ID)

	tl := BuildTimeline(out, time.UTC)
	require.Len(t, tl.FirstHalf, 2)
	assert.Equal(t, time.January, tl.FirstHalf[0].Month)
	assert.Equal(t, time.March, tl.FirstHalf[1].Month)
	require.Len(t, tl.SecondHalf, 1)
	assert.Equal(t, time.October, tl.SecondHalf[0].Month)

	assert.True(t, BuildTimeline(root, time.UTC).Empty())
}

func TestCountStats(t *testing.T) {
	root := seed(t)
	st := CountStats(root)
	assert.Equal(t, 1+8+64, st.Total)
	assert.Equal(t, 9, st.Expanded)
	assert.Equal(t, 9, st.Named)
	assert.Equal(t, 0, st.Completed)

	c, total := DirectCounts(UpdateByID(root, "sub-2025-0-sub-0", Patch{}.WithCompleted(true)).SubGoals[0])
	assert.Equal(t, 1, c)
	assert.Equal(t, 8, total)
}

func TestYearFromID(t *testing.T) {
	cases := map[string]int{
		"root-2025":               2025,
		"sub-2031-4":              2031,
		"sub-2025-3-sub-5-item-1": 2025,
	}
	for id, want := range cases {
		got, ok := YearFromID(id)
		require.True(t, ok, id)
		assert.Equal(t, want, got, id)
	}
	for _, id := range []string{"", "item-1", "sub-x-1", "root-"} {
		_, ok := YearFromID(id)
		assert.False(t, ok, id)
	}
}

func TestPrune(t *testing.T) {
	root := seed(t)
	assert.Same(t, root, Prune(root, 0))

	one := Prune(root, 1)
	require.Len(t, one.SubGoals, 8)
	for _, cat := range one.SubGoals {
		assert.Empty(t, cat.SubGoals)
	}
	// The source tree is untouched.
	assert.Len(t, root.SubGoals[0].SubGoals, 8)
}
