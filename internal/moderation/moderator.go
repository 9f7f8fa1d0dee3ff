// Package moderation gates comment admission on sentiment polarity.
package moderation

import (
	"github.com/jonreiter/govader"
	"github.com/rs/zerolog"
)

// Comments scoring strictly below this polarity are rejected. The scale is
// the conventional [-1, 1] compound sentiment score.
const rejectBelow = -0.3

const rejectReason = "Negative blocked"

// Scorer estimates sentiment polarity for a text in [-1, 1].
type Scorer interface {
	Polarity(text string) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(text string) float64

func (f ScorerFunc) Polarity(text string) float64 { return f(text) }

type vaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func (s vaderScorer) Polarity(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}

type Decision struct {
	Admitted bool
	Reason   string
}

type Moderator struct {
	scorer Scorer
	log    zerolog.Logger
}

// New builds a moderator backed by the VADER lexicon estimator.
func New(log zerolog.Logger) *Moderator {
	return NewWithScorer(vaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}, log)
}

func NewWithScorer(scorer Scorer, log zerolog.Logger) *Moderator {
	return &Moderator{scorer: scorer, log: log}
}

// Review decides whether text may be persisted as a comment. Empty text
// must be rejected by the caller before scoring; it is a missing-field
// failure, not a moderation one. If the estimator blows up on degenerate
// input the comment is admitted: losing legitimate comments to estimator
// gaps is the worse failure. Rejected text is never logged verbatim.
func (m *Moderator) Review(text string) Decision {
	polarity, ok := m.score(text)
	if !ok {
		return Decision{Admitted: true}
	}

	if polarity < rejectBelow {
		m.log.Debug().Float64("polarity", polarity).Msg("comment rejected")
		return Decision{Admitted: false, Reason: rejectReason}
	}
	return Decision{Admitted: true}
}

func (m *Moderator) score(text string) (polarity float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn().Interface("panic", r).Msg("sentiment estimator failed, admitting")
			ok = false
		}
	}()
	return m.scorer.Polarity(text), true
}
