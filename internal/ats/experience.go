package ats

import (
	"strings"

	"github.com/spigell/resume-scorer/internal/resume"
)

// Experience relevance points for structured resumes.
const (
	pointsFirstRole     = 25
	pointsSecondRole    = 15
	pointsThirdRole     = 10
	pointsFourthRole    = 5
	pointsQuantified    = 20
	pointsActionVerb    = 15
	pointsLeadershipCue = 10
)

// Formatting deductions for structured resumes.
const (
	penaltyMissingName  = 20
	penaltyMissingEmail = 15
	penaltyMissingPhone = 10
	penaltyMissingDates = 15
	penaltyNoSkills     = 10
	penaltyNoExperience = 20
	penaltyBlankBullet  = 10
)

// Heuristics for plain-text resumes.
const (
	textWordsShort  = 200
	textWordsMedium = 400
	textWordsLong   = 600

	textPointsShort      = 25
	textPointsMedium     = 15
	textPointsLong       = 10
	textPointsQuantified = 25
	textPointsActionVerb = 15
	textPointsLeadership = 10

	textFormattingBase   = 30
	textFormattingEmail  = 20
	textFormattingPhone  = 20
	textFormattingShort  = 15
	textFormattingMedium = 15
)

func experienceRelevance(rec *resume.Record) int {
	n := len(rec.Experience)
	if n == 0 {
		return 0
	}

	score := pointsFirstRole
	if n >= 2 {
		score += pointsSecondRole
	}
	if n >= 3 {
		score += pointsThirdRole
	}
	if n >= 4 {
		score += pointsFourthRole
	}

	var quantified, action, leadership bool
	for _, bullet := range rec.Bullets() {
		quantified = quantified || isQuantified(bullet)
		action = action || containsAny(bullet, actionVerbs)
		leadership = leadership || containsAny(bullet, leadershipWords)
	}

	if quantified {
		score += pointsQuantified
	}
	if action {
		score += pointsActionVerb
	}
	if leadership {
		score += pointsLeadershipCue
	}

	return clamp(score)
}

// formatting starts from 100 and deducts for every structural gap. A resume
// without experience cannot pass the date and bullet checks either.
func formatting(rec *resume.Record) int {
	score := 100

	if blank(rec.Personal.FullName) {
		score -= penaltyMissingName
	}
	if blank(rec.Personal.Email) {
		score -= penaltyMissingEmail
	}
	if blank(rec.Personal.Phone) {
		score -= penaltyMissingPhone
	}

	noExperience := len(rec.Experience) == 0
	if noExperience || missingDates(rec.Experience) {
		score -= penaltyMissingDates
	}
	if !hasSkills(rec.Skills) {
		score -= penaltyNoSkills
	}
	if noExperience {
		score -= penaltyNoExperience
	}
	if noExperience || hasBlankBullet(rec.Experience) {
		score -= penaltyBlankBullet
	}

	return clamp(score)
}

func missingDates(entries []resume.Experience) bool {
	for _, e := range entries {
		if blank(e.StartDate) || (blank(e.EndDate) && !e.Current) {
			return true
		}
	}
	return false
}

func hasBlankBullet(entries []resume.Experience) bool {
	for _, e := range entries {
		for _, b := range e.Bullets {
			if blank(b) {
				return true
			}
		}
	}
	return false
}

func hasSkills(skills []string) bool {
	for _, s := range skills {
		if !blank(s) {
			return true
		}
	}
	return false
}

func textExperienceRelevance(text string, words int) int {
	score := 0
	if words > textWordsShort {
		score += textPointsShort
	}
	if words > textWordsMedium {
		score += textPointsMedium
	}
	if words > textWordsLong {
		score += textPointsLong
	}
	if isQuantified(text) {
		score += textPointsQuantified
	}
	if actionVerbWord.MatchString(text) {
		score += textPointsActionVerb
	}
	if leadershipWordStem.MatchString(text) {
		score += textPointsLeadership
	}
	return clamp(score)
}

func textFormatting(text string, words int) int {
	if blank(text) {
		return 0
	}

	score := textFormattingBase
	if strings.Contains(text, "@") {
		score += textFormattingEmail
	}
	if phonePattern.MatchString(text) {
		score += textFormattingPhone
	}
	if words > textWordsShort {
		score += textFormattingShort
	}
	if words > textWordsMedium {
		score += textFormattingMedium
	}
	return clamp(score)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
