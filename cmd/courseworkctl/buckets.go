package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/coursework-service/internal/buckets"
)

type bucketFixture struct {
	Now          time.Time `json:"now" yaml:"now"`
	Actor        string    `json:"actor" yaml:"actor"`
	Grader       string    `json:"grader" yaml:"grader"`
	UpcomingDays int       `json:"upcoming_days" yaml:"upcoming_days" validate:"omitempty,upcoming_days"`

	// Course-level rights per actor
	Rights map[string][]buckets.Right `json:"rights" yaml:"rights"`

	Items       []fixtureItem       `json:"items" yaml:"items" validate:"dive"`
	Submissions []fixtureSubmission `json:"submissions" yaml:"submissions" validate:"dive"`
}

type fixtureItem struct {
	ID                uint       `json:"id" yaml:"id" validate:"required"`
	Title             string     `json:"title" yaml:"title"`
	DueAt             *time.Time `json:"due_at" yaml:"due_at"`
	ExpectsSubmission bool       `json:"expects_submission" yaml:"expects_submission"`

	// Per-item rights; the course rights apply when absent
	Rights       map[string][]buckets.Right `json:"rights" yaml:"rights"`
	NeedsGrading map[string]int             `json:"needs_grading" yaml:"needs_grading"`
}

type fixtureSubmission struct {
	ID      uint   `json:"id" yaml:"id"`
	ItemID  uint   `json:"item_id" yaml:"item_id" validate:"required"`
	ActorID string `json:"actor_id" yaml:"actor_id" validate:"required"`
	Graded  bool   `json:"graded" yaml:"graded"`
	Present bool   `json:"present" yaml:"present"`
}

func newBucketsCmd() *cobra.Command {
	var (
		file  string
		now   string
		actor string
	)

	cmd := &cobra.Command{
		Use:   "buckets",
		Short: "Sort fixture items into due date buckets and print their ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			var fx bucketFixture
			if err := loadFixture(file, &fx); err != nil {
				return err
			}
			if now != "" {
				t, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("invalid --now: %w", err)
				}
				fx.Now = t
			}
			if actor != "" {
				fx.Actor = actor
			}
			if fx.Now.IsZero() {
				fx.Now = time.Now()
			}

			return printJSON(cmd.OutOrStdout(), fx.query().IDs())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture file (YAML or JSON)")
	cmd.Flags().StringVar(&now, "now", "", "evaluation time, RFC3339")
	cmd.Flags().StringVar(&actor, "actor", "", "student to bucket for, overrides the fixture")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (fx bucketFixture) query() buckets.Buckets {
	course := rightsAuthorizer(fx.Rights)

	perItem := make(map[uint][]buckets.Submission)
	var actorSubs []buckets.Submission
	for _, s := range fx.Submissions {
		sub := buckets.Submission{ID: s.ID, ItemID: s.ItemID, ActorID: s.ActorID, Graded: s.Graded, Present: s.Present}
		perItem[s.ItemID] = append(perItem[s.ItemID], sub)
		if s.ActorID == fx.Actor {
			actorSubs = append(actorSubs, sub)
		}
	}

	items := make([]buckets.Item, 0, len(fx.Items))
	for _, it := range fx.Items {
		rights := course
		if it.Rights != nil {
			rights = rightsAuthorizer(it.Rights)
		}
		queue := it.NeedsGrading
		items = append(items, buckets.Item{
			ID:                it.ID,
			Title:             it.Title,
			DueAt:             it.DueAt,
			ExpectsSubmission: it.ExpectsSubmission,
			Rights:            rights,
			Grading:           buckets.GradingQueueFunc(func(actorID string) int { return queue[actorID] }),
			Submissions:       perItem[it.ID],
		})
	}

	var limit time.Time
	if fx.UpcomingDays > 0 {
		limit = fx.Now.Add(time.Duration(fx.UpcomingDays) * 24 * time.Hour)
	}

	return buckets.ByDueDate(buckets.Query{
		Course:        course,
		Items:         items,
		ActorID:       fx.Actor,
		GraderID:      fx.Grader,
		Submissions:   actorSubs,
		Now:           fx.Now,
		UpcomingLimit: limit,
	})
}

func rightsAuthorizer(rights map[string][]buckets.Right) buckets.Authorizer {
	return buckets.AuthorizerFunc(func(actorID string, right buckets.Right) bool {
		for _, r := range rights[actorID] {
			if r == right {
				return true
			}
		}
		return false
	})
}
