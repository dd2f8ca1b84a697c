package titlematch

import (
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
)

var numberRe = regexp.MustCompile(`\b\d+\b`)

// Confidence grades a match score.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // below 0.75
	ConfidenceLow                      // 0.75 and up
	ConfidenceMedium                   // 0.88 and up
	ConfidenceHigh                     // 0.96 and up
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

func confidenceOf(score float64) Confidence {
	switch {
	case score >= 0.96:
		return ConfidenceHigh
	case score >= 0.88:
		return ConfidenceMedium
	case score >= 0.75:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Result is the best candidate for a query. Index is -1 when nothing matched.
type Result struct {
	Index      int
	Title      string
	Score      float64
	Confidence Confidence
}

// Matched reports whether the result names a candidate.
func (r Result) Matched() bool {
	return r.Index >= 0
}

// Match scores every candidate against query with Jaro-Winkler similarity
// over cleaned titles and returns the best one. A candidate that cleans to
// the query exactly always wins. Numbers present in the query must appear
// in the candidate or its score is reduced.
func Match(query string, candidates []string) Result {
	best := Result{Index: -1}
	q := Clean(query)
	if q == "" {
		return best
	}
	qNums := numberRe.FindAllString(q, -1)

	for i, candidate := range candidates {
		c := Clean(candidate)
		var score float64
		if c == q {
			score = 1
		} else {
			score = float64(edlib.JaroWinklerSimilarity(q, c))
			if strings.HasPrefix(c, q+" ") {
				score = max(score, 0.9)
			}
			score = adjustForNumbers(score, qNums, numberRe.FindAllString(c, -1))
		}
		if score > best.Score {
			best = Result{Index: i, Title: candidate, Score: score}
		}
		if score == 1 {
			break
		}
	}

	best.Confidence = confidenceOf(best.Score)
	if best.Confidence == ConfidenceNone {
		return Result{Index: -1, Score: best.Score}
	}
	return best
}

// adjustForNumbers penalizes candidates that lack the query's numbers.
func adjustForNumbers(score float64, queryNums, candidateNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}
	for _, q := range queryNums {
		for _, c := range candidateNums {
			if q == c {
				return min(score*1.05, 1)
			}
		}
	}
	return score * 0.9
}

// Filter returns the indexes of candidates whose cleaned title contains the
// cleaned query, or that match it with at least the given confidence, in
// candidate order. ConfidenceNone disables fuzzy matches.
func Filter(query string, candidates []string, at Confidence) []int {
	q := Clean(query)
	if q == "" {
		return nil
	}
	var out []int
	for i, candidate := range candidates {
		c := Clean(candidate)
		if strings.Contains(c, q) || (at > ConfidenceNone && confidenceOf(float64(edlib.JaroWinklerSimilarity(q, c))) >= at) {
			out = append(out, i)
		}
	}
	return out
}
