// Package scoring computes weighted multi-criteria match scores between
// candidate profiles and requirement sets.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/certmatch/internal/config"
	"github.com/jonathan/certmatch/internal/types"
)

// Scorer applies the weighted, additive scoring policy. Scores are
// unbounded and not normalized to a shared total; callers only need
// relative ranking. Adding a satisfied criterion never lowers a score.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a scorer with the given policy.
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score evaluates one candidate against the criteria and returns the
// itemized result. An empty criteria still runs and yields only the
// completion-rate bonus; callers should treat that as a degenerate,
// low-signal query rather than an error.
func (s *Scorer) Score(profile *types.CandidateProfile, criteria *types.MatchCriteria) types.MatchResult {
	result := types.MatchResult{
		CandidateID:    profile.ID,
		CompletionRate: profile.CompletionRate(),
	}

	s.scoreStandardsOverlap(profile, criteria, &result)
	s.scoreEducation(profile, criteria, &result)
	s.scoreExperience(profile, criteria, &result)
	s.scoreObjective(profile, criteria, &result)
	s.scoreCompletionBonus(&result)

	return result
}

// scoreStandardsOverlap awards up to StandardsWeight points, scaled by
// the share of required standards the candidate has completed. One
// reason line per matched standard, plus an overlap summary.
func (s *Scorer) scoreStandardsOverlap(profile *types.CandidateProfile, criteria *types.MatchCriteria, result *types.MatchResult) {
	if len(criteria.RequiredStandards) == 0 {
		return
	}

	completed := profile.CompletedStandards()
	matched := 0
	for _, code := range criteria.RequiredStandards {
		if completed[code] {
			matched++
			result.Reasons = append(result.Reasons, fmt.Sprintf("completed required standard %s", code))
		}
	}
	if matched == 0 {
		return
	}

	result.Score += s.cfg.StandardsWeight * float64(matched) / float64(len(criteria.RequiredStandards))
	result.Reasons = append(result.Reasons,
		fmt.Sprintf("matched %d of %d required standards", matched, len(criteria.RequiredStandards)))
}

// scoreEducation awards EducationPoints when the candidate's level sits
// at or above the required level on the ordinal scale. Unknown labels on
// either side never satisfy the requirement.
func (s *Scorer) scoreEducation(profile *types.CandidateProfile, criteria *types.MatchCriteria, result *types.MatchResult) {
	if criteria.EducationLevel == "" {
		return
	}

	requiredRank, ok := levelRank(criteria.EducationLevel)
	if !ok {
		return
	}
	candidateRank, ok := levelRank(profile.EducationLevel)
	if !ok || candidateRank < requiredRank {
		return
	}

	result.Score += s.cfg.EducationPoints
	result.Reasons = append(result.Reasons, fmt.Sprintf("education level: %s", profile.EducationLevel))
}

// scoreExperience awards ExperiencePoints when any candidate experience
// contains any required keyword (case-insensitive substring).
func (s *Scorer) scoreExperience(profile *types.CandidateProfile, criteria *types.MatchCriteria, result *types.MatchResult) {
	if len(criteria.ExperienceKeywords) == 0 {
		return
	}

	for _, experience := range profile.Experiences {
		experienceLower := strings.ToLower(experience)
		for _, keyword := range criteria.ExperienceKeywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(experienceLower, strings.ToLower(keyword)) {
				result.Score += s.cfg.ExperiencePoints
				result.Reasons = append(result.Reasons, "relevant experience found")
				return
			}
		}
	}
}

// scoreObjective awards up to ObjectiveWeight points, scaled by the
// token-overlap ratio between the criteria's objective and the
// candidate's, but only when the ratio clears the minimum.
func (s *Scorer) scoreObjective(profile *types.CandidateProfile, criteria *types.MatchCriteria, result *types.MatchResult) {
	if criteria.Objective == "" || profile.Objectives == "" {
		return
	}

	ratio := tokenOverlapRatio(criteria.Objective, profile.Objectives)
	if ratio <= s.cfg.ObjectiveMinRatio {
		return
	}

	result.Score += s.cfg.ObjectiveWeight * ratio
	result.Reasons = append(result.Reasons, "objectives aligned")
}

// scoreCompletionBonus awards the tiered completion-rate bonus.
func (s *Scorer) scoreCompletionBonus(result *types.MatchResult) {
	switch {
	case result.CompletionRate > s.cfg.HighCompletionCut:
		result.Score += s.cfg.HighCompletionBonus
	case result.CompletionRate > s.cfg.MidCompletionCut:
		result.Score += s.cfg.MidCompletionBonus
	default:
		return
	}
	result.Reasons = append(result.Reasons, fmt.Sprintf("completion rate: %.0f%%", result.CompletionRate))
}

// Rank scores every candidate in the pool, drops those at or below the
// minimum floor, sorts the rest descending by score (ties by completion
// rate descending, then candidate id ascending) and truncates to limit.
// A limit of zero or less means no truncation.
func (s *Scorer) Rank(pool []types.CandidateProfile, criteria *types.MatchCriteria, limit int) []types.MatchResult {
	results := make([]types.MatchResult, 0, len(pool))
	for i := range pool {
		if pool[i].ID == "" {
			// Malformed pool entry, skip it and keep scoring the rest.
			continue
		}
		result := s.Score(&pool[i], criteria)
		if result.Score > s.cfg.MinScoreFloor {
			results = append(results, result)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].CompletionRate != results[j].CompletionRate {
			return results[i].CompletionRate > results[j].CompletionRate
		}
		return results[i].CandidateID < results[j].CandidateID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
