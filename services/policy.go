// services/policy.go
package services

import (
	"regexp"
	"strings"
	"time"

	"bounty-board-system/models"

	"gorm.io/gorm"
)

// Anti-gaming thresholds. Rewards are in the smallest currency unit.
const (
	// Rewards above this require a minimum time between claim and submission.
	MinWorkReward   = 10_000_000
	MinWorkDuration = 10 * time.Minute

	// Rewards above this additionally require proof (a proof URL, or a URL
	// embedded in the content).
	ProofRequiredReward = 20_000_000

	// Approval-time garbage gates.
	MinSubmissionLength = 20
	MinClaimToSubmitGap = 5 * time.Minute
)

var urlPattern = regexp.MustCompile(`https?://[^\s)>"']+`)

// placeholderPattern matches throwaway/test URLs submitted as whole content.
var placeholderPattern = regexp.MustCompile(`^https?://(www\.)?(example\.(com|org|net)|test\.com|localhost|127\.0\.0\.1)`)

// CheckSelfDealing rejects a claim on the claimant's own bounty, regardless
// of the bounty's current status.
func CheckSelfDealing(b *models.Bounty, requester string) *OpError {
	if b.CreatorAddress == requester {
		return opErr(CodePolicyRejected, "cannot claim your own bounty").
			withExtra(map[string]interface{}{"reason": "self_dealing"})
	}
	return nil
}

// CheckConflictOfInterest rejects an approval issued by the claimant.
func CheckConflictOfInterest(b *models.Bounty, approver string) *OpError {
	if b.Claimant() != "" && b.Claimant() == approver {
		return opErr(CodePolicyRejected, "claimant cannot approve their own submission").
			withExtra(map[string]interface{}{"reason": "conflict_of_interest"})
	}
	return nil
}

// CheckMinWorkTime rejects a premature submission on high-value bounties and
// reports how long the claimant still has to wait.
func CheckMinWorkTime(b *models.Bounty, now time.Time) *OpError {
	if b.Reward <= MinWorkReward || b.ClaimedAt == nil {
		return nil
	}
	elapsed := now.Sub(*b.ClaimedAt)
	if elapsed >= MinWorkDuration {
		return nil
	}
	wait := MinWorkDuration - elapsed
	return opErr(CodePolicyRejected, "submission too soon for a %d reward — wait %s more", b.Reward, wait.Round(time.Second)).
		withExtra(map[string]interface{}{
			"reason":            "min_work_time",
			"retry_after":       int64(wait.Seconds()) + 1,
			"remaining_seconds": int64(wait.Seconds()) + 1,
		})
}

// CheckProofRequired enforces proof on the highest-value tier: either the
// proof field is set or the content embeds a URL.
func CheckProofRequired(b *models.Bounty, content, proofURL string) *OpError {
	if b.Reward <= ProofRequiredReward {
		return nil
	}
	if proofURL != "" || urlPattern.MatchString(content) {
		return nil
	}
	return opErr(CodePolicyRejected, "rewards above %d require proof (a proof URL or a link in the submission)", ProofRequiredReward).
		withExtra(map[string]interface{}{
			"reason": "proof_required",
			"hint":   "attach a proof URL or include a link to the delivered work",
		})
}

// CheckSubmissionGarbage runs at approval time: too-short content, a bare
// placeholder URL, or a suspiciously small claim-to-submit gap all suggest
// automation rather than genuine work.
func CheckSubmissionGarbage(b *models.Bounty, sub *models.Submission) *OpError {
	content := strings.TrimSpace(sub.Content)

	if len(content) < MinSubmissionLength {
		return opErr(CodePolicyRejected, "submission content too short to review (%d chars, need %d)", len(content), MinSubmissionLength).
			withExtra(map[string]interface{}{"reason": "garbage_content"})
	}
	if placeholderPattern.MatchString(content) {
		return opErr(CodePolicyRejected, "submission is a placeholder/test URL").
			withExtra(map[string]interface{}{"reason": "placeholder_url"})
	}
	if b.ClaimedAt != nil && sub.SubmittedAt.Sub(*b.ClaimedAt) < MinClaimToSubmitGap {
		return opErr(CodePolicyRejected, "claim-to-submission gap under %s looks automated", MinClaimToSubmitGap).
			withExtra(map[string]interface{}{"reason": "suspicious_timing"})
	}
	return nil
}

// CheckBlocklist rejects claims from addresses on the persisted blocklist.
// Memory-only deployments have no blocklist backing; membership is then
// vacuously false.
func CheckBlocklist(db *gorm.DB, address string) *OpError {
	if db == nil {
		return nil
	}
	var count int64
	if err := db.Model(&models.BlockedAgent{}).Where("address = ?", address).Count(&count).Error; err != nil {
		// Blocklist unreachable — deterrent layer, fail open.
		return nil
	}
	if count > 0 {
		return opErr(CodePolicyRejected, "address %s is blocked from claiming", address).
			withExtra(map[string]interface{}{"reason": "blocklisted"})
	}
	return nil
}
