package buckets

import "time"

// Query gathers everything ByDueDate needs for one actor in one course.
type Query struct {
	Course        Authorizer
	Items         []Item
	ActorID       string
	GraderID      string
	Submissions   []Submission
	Now           time.Time
	UpcomingLimit time.Time
}

// Buckets holds every view over one set of items. An item may appear in
// several buckets at once.
type Buckets struct {
	Past        []Item
	Overdue     []Item
	Undated     []Item
	Ungraded    []Item
	Unsubmitted []Item
	Upcoming    []Item
	Future      []Item
}

// BucketIDs is Buckets reduced to item ids.
type BucketIDs struct {
	Past        []uint `json:"past" yaml:"past"`
	Overdue     []uint `json:"overdue" yaml:"overdue"`
	Undated     []uint `json:"undated" yaml:"undated"`
	Ungraded    []uint `json:"ungraded" yaml:"ungraded"`
	Unsubmitted []uint `json:"unsubmitted" yaml:"unsubmitted"`
	Upcoming    []uint `json:"upcoming" yaml:"upcoming"`
	Future      []uint `json:"future" yaml:"future"`
}

// ByDueDate computes all buckets at once. A zero UpcomingLimit means
// Now + DefaultUpcomingWindow.
func ByDueDate(q Query) Buckets {
	limit := q.UpcomingLimit
	if limit.IsZero() {
		limit = q.Now.Add(DefaultUpcomingWindow)
	}

	return Buckets{
		Past:        Past(q.Items, q.Now),
		Overdue:     Overdue(q.Items, q.Now, q.ActorID, q.Submissions),
		Undated:     Undated(q.Items),
		Ungraded:    UngradedFor(q.Items, q.ActorID, q.GraderID),
		Unsubmitted: UnsubmittedFor(q.Course, q.Items, q.ActorID, q.GraderID),
		Upcoming:    Upcoming(q.Items, q.Now, limit),
		Future:      Future(q.Items, q.Now),
	}
}

// IDs reduces every bucket to its item ids.
func (b Buckets) IDs() BucketIDs {
	return BucketIDs{
		Past:        ids(b.Past),
		Overdue:     ids(b.Overdue),
		Undated:     ids(b.Undated),
		Ungraded:    ids(b.Ungraded),
		Unsubmitted: ids(b.Unsubmitted),
		Upcoming:    ids(b.Upcoming),
		Future:      ids(b.Future),
	}
}

func ids(items []Item) []uint {
	out := make([]uint, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
