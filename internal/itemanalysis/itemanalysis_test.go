package itemanalysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-6

func TestVarianceAndStandardDeviation(t *testing.T) {
	xs := []float64{1, 1, 0}

	assert.InDelta(t, 0.2222222, Variance(xs), eps)
	assert.InDelta(t, 0.4714045, StandardDeviation(xs), eps)

	assert.Zero(t, Variance(nil))
	assert.Zero(t, StandardDeviation([]float64{4, 4, 4}))
}

func TestDifficultyIndex(t *testing.T) {
	tests := []struct {
		name    string
		correct []bool
		want    float64
	}{
		{name: "two of three", correct: []bool{true, true, false}, want: 2.0 / 3.0},
		{name: "all wrong", correct: []bool{false, false}, want: 0},
		{name: "nobody answered", correct: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DifficultyIndex(tt.correct), eps)
		})
	}
}

func TestPointBiserial(t *testing.T) {
	scores := []float64{3, 2, 2}

	upper := PointBiserial([]bool{true, true, false}, scores)
	require.True(t, upper.Defined)
	assert.InDelta(t, 0.5, upper.Value, eps)

	lower := PointBiserial([]bool{false, false, true}, scores)
	require.True(t, lower.Defined)
	assert.InDelta(t, -0.5, lower.Value, eps)
}

func TestPointBiserialUndefined(t *testing.T) {
	tests := []struct {
		name      string
		indicator []bool
		scores    []float64
	}{
		{name: "identical totals", indicator: []bool{true, false, true}, scores: []float64{5, 5, 5}},
		{name: "everyone in group", indicator: []bool{true, true, true}, scores: []float64{1, 2, 3}},
		{name: "length mismatch", indicator: []bool{true}, scores: []float64{1, 2}},
		{name: "empty", indicator: nil, scores: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointBiserial(tt.indicator, tt.scores)
			assert.False(t, got.Defined)
			assert.Nil(t, got.Ptr())
		})
	}
}

func TestCorrelationJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Correlation `json:"a"`
		B Correlation `json:"b"`
	}{A: Defined(0.5), B: Undefined})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0.5,"b":null}`, string(data))

	var back struct {
		A Correlation `json:"a"`
		B Correlation `json:"b"`
	}
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Defined(0.5), back.A)
	assert.Equal(t, Undefined, back.B)
}

func TestAssignTerciles(t *testing.T) {
	in := []Respondent{
		{ID: "a", Total: 1},
		{ID: "b", Total: 9},
		{ID: "c", Total: 5},
		{ID: "d", Total: 7},
		{ID: "e", Total: 3},
	}

	got := AssignTerciles(in)

	require.Len(t, got, 5)
	labels := map[string]Tercile{}
	for _, r := range got {
		labels[r.ID] = r.Tercile
	}
	assert.Equal(t, map[string]Tercile{
		"b": TercileTop,
		"d": TercileTop,
		"c": TercileMiddle,
		"e": TercileMiddle,
		"a": TercileBottom,
	}, labels)
	assert.Empty(t, in[0].Tercile, "input must not be modified")
}

func TestFillTercilesRanksOnlyUnlabeled(t *testing.T) {
	in := []Respondent{
		{ID: "a", Total: 1, Tercile: TercileTop},
		{ID: "b", Total: 9},
		{ID: "c", Total: 5, Tercile: "unknown"},
		{ID: "d", Total: 3},
	}

	got := fillTerciles(in)

	require.Len(t, got, 4)
	assert.Equal(t, []Tercile{TercileTop, TercileTop, TercileMiddle, TercileBottom},
		[]Tercile{got[0].Tercile, got[1].Tercile, got[2].Tercile, got[3].Tercile})
	assert.Equal(t, []string{"a", "b", "c", "d"}, []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
	assert.Empty(t, in[1].Tercile, "input must not be modified")
}

func TestAnalyzeKeepsSuppliedTerciles(t *testing.T) {
	respondents := []Respondent{
		{ID: "a", Total: 1, Tercile: TercileTop, Responses: map[uint]Response{1: {Correct: true}}},
		{ID: "b", Total: 5, Tercile: TercileBottom, Responses: map[uint]Response{1: {Correct: false}}},
		{ID: "c", Total: 3, Responses: map[uint]Response{1: {Correct: true}}},
	}

	report := Analyze(respondents, nil)
	require.Len(t, report.Items, 1)
	groups := report.Items[0].Groups

	assert.Equal(t, GroupStats{Responses: 1, Correct: 1, Ratio: 1}, groups[TercileTop])
	assert.Equal(t, GroupStats{Responses: 1, Correct: 0, Ratio: 0}, groups[TercileBottom])
	assert.Equal(t, 1, groups[TercileMiddle].Responses)
	assert.InDelta(t, 1.0, report.Items[0].DiscriminationIndex, eps)
}

func TestTercileSizes(t *testing.T) {
	for n, want := range map[int][2]int{0: {0, 0}, 1: {0, 1}, 2: {1, 1}, 3: {1, 1}, 4: {1, 2}, 6: {2, 2}} {
		top, middle := tercileSizes(n)
		assert.Equal(t, want, [2]int{top, middle}, "n=%d", n)
	}
}

func TestAnalyze(t *testing.T) {
	respondents := []Respondent{
		{ID: "s1", Total: 3, Tercile: TercileTop, Responses: map[uint]Response{
			1: {Correct: true, AnswerKey: "a"},
			2: {Correct: true, AnswerKey: "c"},
		}},
		{ID: "s2", Total: 2, Tercile: TercileMiddle, Responses: map[uint]Response{
			1: {Correct: true, AnswerKey: "a"},
			2: {Correct: false, AnswerKey: "d"},
		}},
		{ID: "s3", Total: 2, Tercile: TercileBottom, Responses: map[uint]Response{
			1: {Correct: false, AnswerKey: "b"},
		}},
	}
	items := []ItemMeta{{ID: 1, Text: "first", Answers: []string{"a", "b", "x"}}, {ID: 2}}

	report := Analyze(respondents, items)
	require.Len(t, report.Items, 2)

	first := report.Items[0]
	assert.Equal(t, uint(1), first.ItemID)
	assert.Equal(t, "first", first.Text)
	assert.Equal(t, 3, first.Responses)
	assert.Equal(t, 2, first.Correct)
	assert.InDelta(t, 2.0/3.0, first.DifficultyIndex, eps)
	assert.InDelta(t, 0.2222222, first.Variance, eps)
	assert.InDelta(t, 0.4714045, first.StandardDeviation, eps)
	require.True(t, first.PointBiserial.Defined)
	assert.InDelta(t, 0.5, first.PointBiserial.Value, eps)
	assert.InDelta(t, 1.0, first.Groups[TercileTop].Ratio, eps)
	assert.InDelta(t, 0.0, first.Groups[TercileBottom].Ratio, eps)
	assert.InDelta(t, 1.0, first.DiscriminationIndex, eps)

	require.Len(t, first.Answers, 3)
	assert.Equal(t, "a", first.Answers[0].Key)
	assert.Equal(t, 2, first.Answers[0].Responses)
	assert.InDelta(t, 0.5, first.Answers[0].PointBiserial.Value, eps)
	assert.Equal(t, "b", first.Answers[1].Key)
	assert.InDelta(t, -0.5, first.Answers[1].PointBiserial.Value, eps)
	assert.Equal(t, "x", first.Answers[2].Key)
	assert.Zero(t, first.Answers[2].Responses)
	assert.False(t, first.Answers[2].PointBiserial.Defined)

	second := report.Items[1]
	assert.Equal(t, 2, second.Responses, "s3 did not answer item 2")
	assert.Zero(t, second.DiscriminationIndex, "no bottom group responses")
	require.Len(t, second.Answers, 2)
	assert.Equal(t, []string{"c", "d"}, []string{second.Answers[0].Key, second.Answers[1].Key})

	assert.Equal(t, 3, report.Summary.Respondents)
	assert.Equal(t, 2, report.Summary.Items)
	assert.InDelta(t, 7.0/3.0, report.Summary.MeanScore, eps)
	assert.Equal(t, 2.0, report.Summary.MinScore)
	assert.Equal(t, 3.0, report.Summary.MaxScore)
}

func TestAnalyzeIdenticalTotals(t *testing.T) {
	respondents := []Respondent{
		{ID: "s1", Total: 4, Responses: map[uint]Response{7: {Correct: true}}},
		{ID: "s2", Total: 4, Responses: map[uint]Response{7: {Correct: false}}},
	}

	report := Analyze(respondents, nil)

	require.Len(t, report.Items, 1)
	assert.Equal(t, uint(7), report.Items[0].ItemID)
	assert.False(t, report.Items[0].PointBiserial.Defined)
	assert.False(t, report.Summary.Alpha.Defined)
	assert.Nil(t, report.Items[0].Answers)
}

func TestCronbachAlpha(t *testing.T) {
	items := []ItemStats{{Variance: 0.25}, {Variance: 0.25}}

	alpha := CronbachAlpha(items, 1.0)
	require.True(t, alpha.Defined)
	assert.InDelta(t, 1.0, alpha.Value, eps)

	assert.False(t, CronbachAlpha(items[:1], 1.0).Defined)
	assert.False(t, CronbachAlpha(items, 0).Defined)
}
