// Package buckets sorts a course's work items into the overlapping views a
// coursework dashboard shows: past, overdue, undated, ungraded, unsubmitted,
// upcoming and future.
//
// Every function is pure. Inputs are never mutated and results keep the
// order of the input slice.
package buckets

import "time"

// Right names a capability checked through an Authorizer.
type Right string

const (
	RightRead         Right = "read"
	RightSubmit       Right = "submit"
	RightGrade        Right = "grade"
	RightManageGrades Right = "manage_grades"
)

// DefaultUpcomingWindow is used by ByDueDate when no upcoming limit is given.
const DefaultUpcomingWindow = 7 * 24 * time.Hour

// Authorizer answers whether an actor holds a right on some object.
type Authorizer interface {
	GrantsRight(actorID string, right Right) bool
}

// AuthorizerFunc adapts a plain function to Authorizer.
type AuthorizerFunc func(actorID string, right Right) bool

func (f AuthorizerFunc) GrantsRight(actorID string, right Right) bool {
	return f(actorID, right)
}

// Deny grants nothing.
var Deny Authorizer = AuthorizerFunc(func(string, Right) bool { return false })

// GradingQueue reports how many submissions on an item are waiting to be
// graded from the point of view of an actor.
type GradingQueue interface {
	NeedsGradingCount(actorID string) int
}

// GradingQueueFunc adapts a plain function to GradingQueue.
type GradingQueueFunc func(actorID string) int

func (f GradingQueueFunc) NeedsGradingCount(actorID string) int {
	return f(actorID)
}

// Submission is the slice of a submission record the engine needs.
type Submission struct {
	ID      uint
	ItemID  uint
	ActorID string
	Graded  bool
	Present bool
}

// WithoutGradedSubmission is true when nothing has been handed in and no
// grade has been recorded.
func (s Submission) WithoutGradedSubmission() bool {
	return !s.Present && !s.Graded
}

// Item is a gradable unit of work with an optional due date.
type Item struct {
	ID                uint
	Title             string
	DueAt             *time.Time
	ExpectsSubmission bool
	Rights            Authorizer
	Grading           GradingQueue
	Submissions       []Submission
}

// Dated reports whether the item has a due date.
func (i Item) Dated() bool {
	return i.DueAt != nil
}

// GrantsRight checks the item's rights, denying when none are attached.
func (i Item) GrantsRight(actorID string, right Right) bool {
	if i.Rights == nil {
		return false
	}
	return i.Rights.GrantsRight(actorID, right)
}

// NeedsGradingCount is zero when the item has no grading queue.
func (i Item) NeedsGradingCount(actorID string) int {
	if i.Grading == nil {
		return 0
	}
	return i.Grading.NeedsGradingCount(actorID)
}

// SubmissionFor returns the actor's submission on this item, or nil.
func (i Item) SubmissionFor(actorID string) *Submission {
	for idx := range i.Submissions {
		if i.Submissions[idx].ActorID == actorID {
			return &i.Submissions[idx]
		}
	}
	return nil
}

func filter(items []Item, keep func(Item) bool) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Dated returns the items that have a due date.
func Dated(items []Item) []Item {
	return filter(items, Item.Dated)
}

// Undated returns the items without a due date.
func Undated(items []Item) []Item {
	return filter(items, func(item Item) bool { return !item.Dated() })
}

func isPast(item Item, now time.Time) bool {
	return item.Dated() && item.DueAt.Before(now)
}

// Past returns dated items due strictly before now.
func Past(items []Item, now time.Time) []Item {
	return filter(items, func(item Item) bool { return isPast(item, now) })
}

// DueBetween returns dated items with start <= due <= end.
func DueBetween(items []Item, start, end time.Time) []Item {
	return filter(items, func(item Item) bool {
		return item.Dated() && !item.DueAt.Before(start) && !item.DueAt.After(end)
	})
}

// Upcoming returns dated items due within [now, limit].
func Upcoming(items []Item, now, limit time.Time) []Item {
	return DueBetween(items, now, limit)
}

// Future is every item that is not Past, undated items included. It is a
// set difference, not a forward date comparison, and does not line up with
// Upcoming at the boundaries. Items are compared by position, so items
// sharing an id are kept apart.
func Future(items []Item, now time.Time) []Item {
	return filter(items, func(item Item) bool { return !isPast(item, now) })
}

// Overdue returns items past due at now that the actor may submit and that
// have no graded submission among submissions.
func Overdue(items []Item, now time.Time, actorID string, submissions []Submission) []Item {
	submittable := filter(Past(items, now), func(item Item) bool {
		return item.GrantsRight(actorID, RightSubmit)
	})
	return WithoutGradedSubmission(submittable, submissions)
}

// WithoutGradedSubmission keeps items with no matching submission, or whose
// matching submission is neither handed in nor graded. Submissions match on
// ItemID; the first one for an item wins.
func WithoutGradedSubmission(items []Item, submissions []Submission) []Item {
	byItem := make(map[uint]Submission, len(submissions))
	for _, sub := range submissions {
		if _, seen := byItem[sub.ItemID]; !seen {
			byItem[sub.ItemID] = sub
		}
	}
	return filter(items, func(item Item) bool {
		sub, ok := byItem[item.ID]
		return !ok || sub.WithoutGradedSubmission()
	})
}

// UngradedFor returns items the grader may grade that expect a submission
// and still have work waiting to be graded for actorID.
func UngradedFor(items []Item, actorID, graderID string) []Item {
	return filter(items, func(item Item) bool {
		return item.GrantsRight(graderID, RightGrade) &&
			item.ExpectsSubmission &&
			item.NeedsGradingCount(actorID) > 0
	})
}

// UnsubmittedFor returns items expecting a submission that actorID has no
// submission record for. It is empty unless the grader may manage grades
// in the course.
func UnsubmittedFor(course Authorizer, items []Item, actorID, graderID string) []Item {
	if course == nil || !course.GrantsRight(graderID, RightManageGrades) {
		return []Item{}
	}
	return filter(items, func(item Item) bool {
		if !item.ExpectsSubmission {
			return false
		}
		sub := item.SubmissionFor(actorID)
		return sub == nil || sub.ID == 0
	})
}
