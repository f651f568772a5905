package itemanalysis

import "sort"

// Tercile labels a respondent's performance group.
type Tercile string

const (
	TercileTop    Tercile = "top"
	TercileMiddle Tercile = "middle"
	TercileBottom Tercile = "bottom"
)

// Valid reports whether t is one of the three known groups.
func (t Tercile) Valid() bool {
	switch t {
	case TercileTop, TercileMiddle, TercileBottom:
		return true
	}
	return false
}

// Response is one respondent's answer to one item.
type Response struct {
	Correct   bool   `json:"correct" yaml:"correct"`
	AnswerKey string `json:"answer,omitempty" yaml:"answer,omitempty"`
}

// Respondent is one person's graded responses and total score.
type Respondent struct {
	ID        string            `json:"id" yaml:"id"`
	Total     float64           `json:"total" yaml:"total"`
	Tercile   Tercile           `json:"tercile,omitempty" yaml:"tercile,omitempty"`
	Responses map[uint]Response `json:"responses" yaml:"responses"`
}

// AssignTerciles ranks respondents by total score (highest first, ties by
// id) and labels the thirds. With a remainder the middle group grows first,
// then the top group. The input is not modified; the result is in rank
// order.
func AssignTerciles(respondents []Respondent) []Respondent {
	order := rankOrder(respondents)
	top, middle := tercileSizes(len(order))

	ranked := make([]Respondent, len(order))
	for rank, idx := range order {
		ranked[rank] = respondents[idx]
		ranked[rank].Tercile = tercileAt(rank, top, middle)
	}
	return ranked
}

// fillTerciles keeps valid labels and ranks the remaining respondents among
// themselves as AssignTerciles would. The result is a copy in input order.
func fillTerciles(respondents []Respondent) []Respondent {
	var unlabeled []int
	for i, r := range respondents {
		if !r.Tercile.Valid() {
			unlabeled = append(unlabeled, i)
		}
	}
	if len(unlabeled) == 0 {
		return respondents
	}

	out := make([]Respondent, len(respondents))
	copy(out, respondents)

	pending := make([]Respondent, len(unlabeled))
	for i, idx := range unlabeled {
		pending[i] = respondents[idx]
	}
	top, middle := tercileSizes(len(pending))
	for rank, i := range rankOrder(pending) {
		out[unlabeled[i]].Tercile = tercileAt(rank, top, middle)
	}
	return out
}

// rankOrder returns indexes into respondents sorted by total descending,
// ties by id.
func rankOrder(respondents []Respondent) []int {
	order := make([]int, len(respondents))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := respondents[order[i]], respondents[order[j]]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.ID < b.ID
	})
	return order
}

func tercileAt(rank, top, middle int) Tercile {
	switch {
	case rank < top:
		return TercileTop
	case rank < top+middle:
		return TercileMiddle
	}
	return TercileBottom
}

func tercileSizes(n int) (top, middle int) {
	base := n / 3
	top, middle = base, base
	switch n % 3 {
	case 1:
		middle++
	case 2:
		middle++
		top++
	}
	return top, middle
}
