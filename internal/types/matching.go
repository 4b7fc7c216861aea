package types

// CertificationProgress tracks a candidate's progress on one standard.
// A certification counts as completed only when every estimated module is
// done; partially completed certifications still feed the completion rate.
type CertificationProgress struct {
	StandardCode     string `json:"standard_code"`
	CompletedModules int    `json:"completed_modules"`
	TotalModules     int    `json:"total_modules"`
}

// Completed reports whether every module of the certification is done.
func (c CertificationProgress) Completed() bool {
	return c.TotalModules > 0 && c.CompletedModules >= c.TotalModules
}

// CandidateProfile describes a candidate in the matching pool. The core
// reads profiles on each matching request and never mutates them.
type CandidateProfile struct {
	ID             string                  `json:"id"`
	Location       string                  `json:"location,omitempty"`
	EducationLevel string                  `json:"education_level"`
	Objectives     string                  `json:"objectives"`
	Experiences    []string                `json:"experiences"`
	Certifications []CertificationProgress `json:"certifications"`
}

// CompletedStandards returns the set of standard codes the candidate has
// actually completed.
func (p *CandidateProfile) CompletedStandards() map[string]bool {
	codes := make(map[string]bool)
	for _, cert := range p.Certifications {
		if cert.Completed() {
			codes[cert.StandardCode] = true
		}
	}
	return codes
}

// CompletionRate derives the candidate's overall completion percentage:
// for each certification with at least one completed module, accumulate
// completed and estimated-total modules, then take the ratio. Returns 0
// when no certification is in progress.
func (p *CandidateProfile) CompletionRate() float64 {
	totalCompleted := 0
	totalExpected := 0
	for _, cert := range p.Certifications {
		if cert.CompletedModules < 1 || cert.TotalModules < 1 {
			continue
		}
		totalCompleted += cert.CompletedModules
		totalExpected += cert.TotalModules
	}
	if totalExpected == 0 {
		return 0
	}
	return float64(totalCompleted) / float64(totalExpected) * 100
}

// MatchCriteria is a transient, request-scoped requirement set. Every
// field is optional; an empty criteria still runs and yields only the
// completion-rate bonus for every candidate.
type MatchCriteria struct {
	RequiredStandards  []string `json:"required_standards,omitempty"`
	Location           string   `json:"location,omitempty"`
	ExperienceKeywords []string `json:"experience_keywords,omitempty"`
	EducationLevel     string   `json:"education_level,omitempty"`
	Objective          string   `json:"objective,omitempty"`
	SalaryMin          float64  `json:"salary_min,omitempty"`
	SalaryMax          float64  `json:"salary_max,omitempty"`
}

// MatchResult is the scored outcome for one candidate. Scores are
// unbounded non-negative numbers used for relative ranking only; they are
// never normalized to 100.
type MatchResult struct {
	CandidateID    string   `json:"candidate_id"`
	Score          float64  `json:"score"`
	Reasons        []string `json:"reasons"`
	CompletionRate float64  `json:"completion_rate"`
}
