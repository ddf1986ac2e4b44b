package ats

const (
	RecommendKeywords    = "Add more industry-relevant keywords and technical skills"
	RecommendSoftSkills  = "Include more soft skills like leadership, communication, and problem-solving"
	RecommendQuantify    = "Quantify your achievements with specific numbers and metrics"
	RecommendActionVerbs = "Use strong action verbs to start your bullet points"
	RecommendFields      = "Ensure all required fields are completed"
	RecommendDates       = "Use consistent date formatting throughout"
	RecommendTailor      = "Consider tailoring your resume for specific job descriptions"
)

// recommendations evaluates the rules in a fixed order: keywords, skills,
// experience, formatting and finally the overall catch-all.
func (s *Scorer) recommendations(b Breakdown, overall int) []string {
	t := s.cfg.Recommendations
	recs := []string{}

	if b.KeywordMatch < t.KeywordMatch {
		recs = append(recs, RecommendKeywords)
	}
	if b.SkillsCoverage < t.SkillsCoverage {
		recs = append(recs, RecommendSoftSkills)
	}
	if b.ExperienceRelevance < t.ExperienceRelevance {
		recs = append(recs, RecommendQuantify, RecommendActionVerbs)
	}
	if b.Formatting < t.Formatting {
		recs = append(recs, RecommendFields, RecommendDates)
	}
	if overall < t.Overall {
		recs = append(recs, RecommendTailor)
	}

	return recs
}
