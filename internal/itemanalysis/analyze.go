package itemanalysis

import (
	"math"
	"sort"
)

// ItemMeta describes an item to analyze. Text and Answers are optional;
// answers seen in responses are reported even when not listed.
type ItemMeta struct {
	ID      uint     `json:"id" yaml:"id"`
	Text    string   `json:"text,omitempty" yaml:"text,omitempty"`
	Answers []string `json:"answers,omitempty" yaml:"answers,omitempty"`
}

// GroupStats is the share of a performance group that got an item right.
type GroupStats struct {
	Responses int     `json:"responses"`
	Correct   int     `json:"correct"`
	Ratio     float64 `json:"ratio"`
}

// AnswerStats describes how often an answer was chosen and how choosing it
// correlates with the total score.
type AnswerStats struct {
	Key           string      `json:"key"`
	Responses     int         `json:"responses"`
	Ratio         float64     `json:"ratio"`
	PointBiserial Correlation `json:"point_biserial"`
}

// ItemStats is the analysis of a single item.
type ItemStats struct {
	ItemID              uint                   `json:"item_id"`
	Text                string                 `json:"text,omitempty"`
	Responses           int                    `json:"responses"`
	Correct             int                    `json:"correct"`
	DifficultyIndex     float64                `json:"difficulty_index"`
	Variance            float64                `json:"variance"`
	StandardDeviation   float64                `json:"standard_deviation"`
	PointBiserial       Correlation            `json:"point_biserial"`
	DiscriminationIndex float64                `json:"discrimination_index"`
	Groups              map[Tercile]GroupStats `json:"groups"`
	Answers             []AnswerStats          `json:"answers,omitempty"`
}

// Summary describes the whole test.
type Summary struct {
	Respondents       int         `json:"respondents"`
	Items             int         `json:"items"`
	MeanScore         float64     `json:"mean_score"`
	MinScore          float64     `json:"min_score"`
	MaxScore          float64     `json:"max_score"`
	Variance          float64     `json:"variance"`
	StandardDeviation float64     `json:"standard_deviation"`
	Alpha             Correlation `json:"alpha"`
}

// Report is the result of Analyze.
type Report struct {
	Summary Summary     `json:"summary"`
	Items   []ItemStats `json:"items"`
}

// Analyze computes per-item statistics over respondents. Valid tercile
// labels are kept; respondents without one are ranked among themselves as
// AssignTerciles does. Respondents
// who did not answer an item are left out of that item's vectors. When
// items is empty, every item id found in the responses is analyzed in
// ascending order.
func Analyze(respondents []Respondent, items []ItemMeta) Report {
	respondents = fillTerciles(respondents)
	if len(items) == 0 {
		items = discoverItems(respondents)
	}

	report := Report{Items: make([]ItemStats, 0, len(items))}
	for _, meta := range items {
		report.Items = append(report.Items, analyzeItem(meta, respondents))
	}
	report.Summary = summarize(respondents, report.Items)
	return report
}

func analyzeItem(meta ItemMeta, respondents []Respondent) ItemStats {
	var (
		correct []bool
		scores  []float64
		keys    []string
		groups  = map[Tercile]GroupStats{
			TercileTop:    {},
			TercileMiddle: {},
			TercileBottom: {},
		}
	)

	for _, r := range respondents {
		resp, ok := r.Responses[meta.ID]
		if !ok {
			continue
		}
		correct = append(correct, resp.Correct)
		scores = append(scores, r.Total)
		keys = append(keys, resp.AnswerKey)

		g := groups[r.Tercile]
		g.Responses++
		if resp.Correct {
			g.Correct++
		}
		groups[r.Tercile] = g
	}

	for t, g := range groups {
		if g.Responses > 0 {
			g.Ratio = float64(g.Correct) / float64(g.Responses)
		}
		groups[t] = g
	}

	values := Indicator(correct)
	stats := ItemStats{
		ItemID:            meta.ID,
		Text:              meta.Text,
		Responses:         len(correct),
		DifficultyIndex:   DifficultyIndex(correct),
		Variance:          Variance(values),
		StandardDeviation: StandardDeviation(values),
		PointBiserial:     PointBiserial(correct, scores),
		Groups:            groups,
		Answers:           analyzeAnswers(meta.Answers, keys, scores),
	}
	for _, c := range correct {
		if c {
			stats.Correct++
		}
	}

	top, bottom := groups[TercileTop], groups[TercileBottom]
	if top.Responses > 0 && bottom.Responses > 0 {
		stats.DiscriminationIndex = top.Ratio - bottom.Ratio
	}
	return stats
}

func analyzeAnswers(listed []string, keys []string, scores []float64) []AnswerStats {
	order := make([]string, 0, len(listed))
	seen := make(map[string]bool, len(listed))
	for _, k := range listed {
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}
	var extra []string
	for _, k := range keys {
		if k != "" && !seen[k] {
			seen[k] = true
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	if len(order) == 0 {
		return nil
	}

	out := make([]AnswerStats, 0, len(order))
	for _, key := range order {
		chose := make([]bool, len(keys))
		count := 0
		for i, k := range keys {
			if k == key {
				chose[i] = true
				count++
			}
		}
		stats := AnswerStats{
			Key:           key,
			Responses:     count,
			PointBiserial: PointBiserial(chose, scores),
		}
		if len(keys) > 0 {
			stats.Ratio = float64(count) / float64(len(keys))
		}
		out = append(out, stats)
	}
	return out
}

func summarize(respondents []Respondent, items []ItemStats) Summary {
	totals := make([]float64, len(respondents))
	for i, r := range respondents {
		totals[i] = r.Total
	}

	s := Summary{
		Respondents:       len(respondents),
		Items:             len(items),
		MeanScore:         Mean(totals),
		Variance:          Variance(totals),
		StandardDeviation: StandardDeviation(totals),
		Alpha:             CronbachAlpha(items, Variance(totals)),
	}
	if len(totals) > 0 {
		s.MinScore, s.MaxScore = math.Inf(1), math.Inf(-1)
		for _, t := range totals {
			s.MinScore = math.Min(s.MinScore, t)
			s.MaxScore = math.Max(s.MaxScore, t)
		}
	}
	return s
}

// CronbachAlpha is k/(k-1) * (1 - sum(item variances)/total variance). It is
// Undefined with fewer than two items or a zero total variance.
func CronbachAlpha(items []ItemStats, totalVariance float64) Correlation {
	k := len(items)
	if k < 2 || totalVariance == 0 {
		return Undefined
	}
	var sum float64
	for _, item := range items {
		sum += item.Variance
	}
	n := float64(k)
	return Defined(n / (n - 1) * (1 - sum/totalVariance))
}

func discoverItems(respondents []Respondent) []ItemMeta {
	seen := make(map[uint]bool)
	var ids []uint
	for _, r := range respondents {
		for id := range r.Responses {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	items := make([]ItemMeta, len(ids))
	for i, id := range ids {
		items[i] = ItemMeta{ID: id}
	}
	return items
}
