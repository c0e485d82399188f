// services/grader.go
package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"bounty-board-system/models"
)

// The grader scores a submission against the bounty's requirement strings
// with per-pattern heuristics. The score is advisory: every submission goes
// to manual review, except the extreme case handled by ShouldAutoReject.

// GradePassScore is the advisory pass threshold.
const GradePassScore = 90

// autoRejectScore is the floor below which a submission with no URL at all
// is rejected without review.
const autoRejectScore = 20

var (
	wordCountPattern = regexp.MustCompile(`(\d+)\s*words?`)
	imageLinkPattern = regexp.MustCompile(`(?i)https?://\S+\.(png|jpe?g|gif|webp)|https?://(i\.)?imgur\.com/\S+`)
	tokenSplitter    = regexp.MustCompile(`[^a-z0-9]+`)
)

var videoHosts = []string{"youtube.com", "youtu.be", "vimeo.com", "twitch.tv", "tiktok.com"}

var platformNames = []string{
	"twitter", "x.com", "youtube", "instagram", "tiktok",
	"discord", "reddit", "linkedin", "facebook", "github", "telegram",
}

// Grade evaluates each requirement independently and aggregates
// score = round(100 × met/total). A requirement-free bounty scores 100.
func Grade(requirements []string, content, proofURL string) (int, bool, []models.RequirementCheck) {
	if len(requirements) == 0 {
		return 100, true, nil
	}

	checks := make([]models.RequirementCheck, 0, len(requirements))
	met := 0
	for _, req := range requirements {
		ok, detail := checkRequirement(req, content, proofURL)
		if ok {
			met++
		}
		checks = append(checks, models.RequirementCheck{Requirement: req, Met: ok, Detail: detail})
	}

	score := int(math.Round(100 * float64(met) / float64(len(requirements))))
	return score, score >= GradePassScore, checks
}

// ShouldAutoReject is the only path where the advisory score becomes a hard
// rejection: a very low score combined with no URL anywhere in the
// submission or proof.
func ShouldAutoReject(score int, content, proofURL string) bool {
	if score >= autoRejectScore {
		return false
	}
	return !urlPattern.MatchString(content) && !urlPattern.MatchString(proofURL)
}

func checkRequirement(req, content, proofURL string) (bool, string) {
	lowerReq := strings.ToLower(req)
	lowerContent := strings.ToLower(content)

	// "include a link/URL to ..."
	if strings.Contains(lowerReq, "link") || strings.Contains(lowerReq, "url") {
		if urlPattern.MatchString(content) || urlPattern.MatchString(proofURL) {
			return true, "link found"
		}
		return false, "no URL in submission or proof"
	}

	// "at least N words" — 80% tolerance on the count.
	if m := wordCountPattern.FindStringSubmatch(lowerReq); m != nil {
		want, _ := strconv.Atoi(m[1])
		got := len(strings.Fields(content))
		need := int(float64(want) * 0.8)
		if got >= need {
			return true, fmt.Sprintf("%d words (needed ~%d)", got, want)
		}
		return false, fmt.Sprintf("only %d of ~%d words", got, want)
	}

	// "N minute video" — a duration mention must come with a recognized
	// video host in the submission.
	if strings.Contains(lowerReq, "minute") || strings.Contains(lowerReq, "second") {
		for _, host := range videoHosts {
			if strings.Contains(lowerContent, host) {
				return true, "video host link found"
			}
		}
		return false, "no recognized video hosting link"
	}

	// "post on <platform>" — the platform named in the requirement must
	// appear in the submission.
	for _, platform := range platformNames {
		if strings.Contains(lowerReq, platform) {
			if strings.Contains(lowerContent, platform) {
				return true, platform + " mentioned"
			}
			return false, platform + " not mentioned in submission"
		}
	}

	// "include a screenshot/image"
	if strings.Contains(lowerReq, "image") || strings.Contains(lowerReq, "screenshot") || strings.Contains(lowerReq, "photo") {
		if imageLinkPattern.MatchString(content) || imageLinkPattern.MatchString(proofURL) {
			return true, "image reference found"
		}
		return false, "no image link found"
	}

	// Fallback: at least half of the requirement's meaningful keywords
	// (tokens longer than 3 chars) must appear in the submission.
	keywords := keywordsOf(lowerReq)
	if len(keywords) == 0 {
		return true, "no meaningful keywords to check"
	}
	hit := 0
	for _, kw := range keywords {
		if strings.Contains(lowerContent, kw) {
			hit++
		}
	}
	if hit*2 >= len(keywords) {
		return true, fmt.Sprintf("%d/%d keywords matched", hit, len(keywords))
	}
	return false, fmt.Sprintf("only %d/%d keywords matched", hit, len(keywords))
}

func keywordsOf(s string) []string {
	var out []string
	for _, tok := range tokenSplitter.Split(s, -1) {
		if len(tok) > 3 {
			out = append(out, tok)
		}
	}
	return out
}
