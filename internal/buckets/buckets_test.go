package buckets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func allow(rights ...Right) Authorizer {
	return AuthorizerFunc(func(_ string, right Right) bool {
		for _, r := range rights {
			if r == right {
				return true
			}
		}
		return false
	})
}

func fixture() []Item {
	return []Item{
		{ID: 1, DueAt: at(-48 * time.Hour), ExpectsSubmission: true, Rights: allow(RightSubmit, RightGrade)},
		{ID: 2, DueAt: at(-time.Minute), ExpectsSubmission: true, Rights: allow(RightSubmit)},
		{ID: 3, DueAt: nil, ExpectsSubmission: true, Rights: allow(RightSubmit)},
		{ID: 4, DueAt: at(0), ExpectsSubmission: true, Rights: allow(RightSubmit)},
		{ID: 5, DueAt: at(24 * time.Hour), ExpectsSubmission: false, Rights: allow(RightSubmit)},
		{ID: 6, DueAt: at(30 * 24 * time.Hour), ExpectsSubmission: true, Rights: allow(RightSubmit)},
	}
}

func TestPastUndatedFuture(t *testing.T) {
	items := fixture()

	assert.Equal(t, []uint{1, 2}, ids(Past(items, now)))
	assert.Equal(t, []uint{3}, ids(Undated(items)))
	assert.Equal(t, []uint{3, 4, 5, 6}, ids(Future(items, now)))
	assert.Equal(t, []uint{1, 2, 4, 5, 6}, ids(Dated(items)))
}

func TestPastAndFuturePartitionItems(t *testing.T) {
	items := fixture()
	past := indexByID(Past(items, now))
	future := indexByID(Future(items, now))

	for id := range past {
		_, inFuture := future[id]
		assert.False(t, inFuture, "item %d is both past and future", id)
	}
	assert.Equal(t, len(items), len(past)+len(future))

	for _, item := range Undated(items) {
		_, inPast := past[item.ID]
		assert.False(t, inPast, "undated item %d is past", item.ID)
	}
}

func TestFutureKeepsItemsSharingAnID(t *testing.T) {
	items := []Item{
		{DueAt: at(-time.Second)},
		{DueAt: nil},
	}

	past := Past(items, now)
	future := Future(items, now)

	require.Len(t, past, 1)
	require.Len(t, future, 1)
	assert.Nil(t, future[0].DueAt)
	assert.Equal(t, len(items), len(past)+len(future))
}

func TestUpcoming(t *testing.T) {
	items := fixture()

	tests := []struct {
		name  string
		limit time.Time
		want  []uint
	}{
		{name: "limit equals now returns items due exactly now", limit: now, want: []uint{4}},
		{name: "one week window", limit: now.Add(7 * 24 * time.Hour), want: []uint{4, 5}},
		{name: "upper bound inclusive", limit: now.Add(30 * 24 * time.Hour), want: []uint{4, 5, 6}},
		{name: "limit before now", limit: now.Add(-time.Hour), want: []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Upcoming(items, now, tt.limit)))
		})
	}
}

func TestItemDueNowIsUpcomingAndFutureButNotPast(t *testing.T) {
	items := []Item{{ID: 9, DueAt: at(0)}}

	assert.Empty(t, Past(items, now))
	assert.Equal(t, []uint{9}, ids(Future(items, now)))
	assert.Equal(t, []uint{9}, ids(Upcoming(items, now, now)))
}

func TestOverdue(t *testing.T) {
	items := fixture()
	items = append(items, Item{ID: 7, DueAt: at(-time.Hour), ExpectsSubmission: true, Rights: Deny})

	tests := []struct {
		name        string
		submissions []Submission
		want        []uint
	}{
		{name: "no submissions", want: []uint{1, 2}},
		{
			name:        "handed in is not overdue",
			submissions: []Submission{{ID: 10, ItemID: 1, ActorID: "s1", Present: true}},
			want:        []uint{2},
		},
		{
			name:        "graded without hand-in is not overdue",
			submissions: []Submission{{ID: 11, ItemID: 2, ActorID: "s1", Graded: true}},
			want:        []uint{1},
		},
		{
			name:        "placeholder submission stays overdue",
			submissions: []Submission{{ID: 12, ItemID: 2, ActorID: "s1"}},
			want:        []uint{1, 2},
		},
		{
			name: "first submission for an item decides",
			submissions: []Submission{
				{ID: 13, ItemID: 2, ActorID: "s1"},
				{ID: 14, ItemID: 2, ActorID: "s1", Graded: true},
			},
			want: []uint{1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Overdue(items, now, "s1", tt.submissions)))
		})
	}
}

func TestUngradedFor(t *testing.T) {
	queue := GradingQueueFunc(func(actorID string) int {
		if actorID == "s1" {
			return 2
		}
		return 0
	})
	items := []Item{
		{ID: 1, ExpectsSubmission: true, Rights: allow(RightGrade), Grading: queue},
		{ID: 2, ExpectsSubmission: false, Rights: allow(RightGrade), Grading: queue},
		{ID: 3, ExpectsSubmission: true, Rights: allow(RightSubmit), Grading: queue},
		{ID: 4, ExpectsSubmission: true, Rights: allow(RightGrade)},
	}

	assert.Equal(t, []uint{1}, ids(UngradedFor(items, "s1", "t1")))
	assert.Empty(t, UngradedFor(items, "s2", "t1"))
}

func TestUnsubmittedFor(t *testing.T) {
	items := []Item{
		{ID: 1, ExpectsSubmission: true},
		{ID: 2, ExpectsSubmission: true, Submissions: []Submission{{ID: 20, ItemID: 2, ActorID: "s1"}}},
		{ID: 3, ExpectsSubmission: true, Submissions: []Submission{{ID: 0, ItemID: 3, ActorID: "s1"}}},
		{ID: 4, ExpectsSubmission: false},
		{ID: 5, ExpectsSubmission: true, Submissions: []Submission{{ID: 21, ItemID: 5, ActorID: "s2"}}},
	}

	t.Run("grader manages grades", func(t *testing.T) {
		got := UnsubmittedFor(allow(RightManageGrades), items, "s1", "t1")
		assert.Equal(t, []uint{1, 3, 5}, ids(got))
	})

	t.Run("grader without manage rights", func(t *testing.T) {
		got := UnsubmittedFor(allow(RightGrade), items, "s1", "t1")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("nil course", func(t *testing.T) {
		assert.Empty(t, UnsubmittedFor(nil, items, "s1", "t1"))
	})
}

func TestByDueDate(t *testing.T) {
	items := fixture()

	b := ByDueDate(Query{
		Course:  allow(RightManageGrades),
		Items:   items,
		ActorID: "s1",
		Now:     now,
	})
	got := b.IDs()

	assert.Equal(t, []uint{1, 2}, got.Past)
	assert.Equal(t, []uint{1, 2}, got.Overdue)
	assert.Equal(t, []uint{3}, got.Undated)
	assert.Equal(t, []uint{4, 5}, got.Upcoming)
	assert.Equal(t, []uint{3, 4, 5, 6}, got.Future)
	assert.Equal(t, []uint{1, 2, 3, 4, 6}, got.Unsubmitted)
	assert.Empty(t, got.Ungraded)
}

func TestInputsAreNotMutated(t *testing.T) {
	items := fixture()
	before := ids(items)

	_ = ByDueDate(Query{Items: items, Now: now, ActorID: "s1"})

	assert.Equal(t, before, ids(items))
}

func indexByID(items []Item) map[uint]struct{} {
	index := make(map[uint]struct{}, len(items))
	for _, item := range items {
		index[item.ID] = struct{}{}
	}
	return index
}
