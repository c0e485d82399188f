// services/bounty_service.go
package services

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"bounty-board-system/models"
	"bounty-board-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// BountyService owns the bounty lifecycle state machine. Every transition
// goes through here; the store only knows how to read, write, and run the
// conditional claim update.
type BountyService struct {
	Store    *BountyStore
	DB       *gorm.DB // nil in memory-only mode; used for blocklist + agent counters
	Limiter  *RateLimiter
	Payments *PaymentClient // nil => approvals park in payment_pending
	Notifier *Notifier

	now func() time.Time
}

func NewBountyService(store *BountyStore, db *gorm.DB, limiter *RateLimiter, payments *PaymentClient, notifier *Notifier) *BountyService {
	return &BountyService{
		Store:    store,
		DB:       db,
		Limiter:  limiter,
		Payments: payments,
		Notifier: notifier,
		now:      time.Now,
	}
}

// CreateInput is the validated creation payload. UUID is client-generated
// for idempotency; a missing one is filled in server-side.
type CreateInput struct {
	UUID         string    `json:"uuid"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Tags         []string  `json:"tags"`
	Reward       int64     `json:"reward"`
	Deadline     time.Time `json:"deadline"`
}

// --- Core transitions ---

// Create posts a new bounty in status open. Re-posting the same client UUID
// returns the existing bounty unchanged.
func (s *BountyService) Create(creator string, in CreateInput) (models.Bounty, *OpError) {
	if in.UUID != "" {
		if existing, ok := s.Store.GetByUUID(in.UUID); ok {
			return existing, nil
		}
	} else {
		in.UUID = uuid.NewString()
	}

	now := s.now().UTC()
	b := models.Bounty{
		UUID:           in.UUID,
		Slug:           slug.Make(in.Title),
		Title:          in.Title,
		Description:    in.Description,
		Requirements:   in.Requirements,
		Tags:           in.Tags,
		Reward:         in.Reward,
		Deadline:       in.Deadline,
		Status:         models.BountyStatusOpen,
		CreatorAddress: creator,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	_ = s.Store.Create(&b)

	if s.Notifier != nil {
		s.Notifier.NotifyBountyCreated(b)
	}
	return b, nil
}

// Claim reserves an open bounty for the requester. Guard order: blocklist,
// self-dealing, admission ceiling, then the optimistic conditional update.
func (s *BountyService) Claim(id uint, requester string) (models.Bounty, *OpError) {
	if err := CheckBlocklist(s.DB, requester); err != nil {
		return models.Bounty{}, err
	}

	b, ok := s.Store.Get(id)
	if !ok {
		return models.Bounty{}, opErr(CodeNotFound, "bounty %d not found", id)
	}
	if err := CheckSelfDealing(&b, requester); err != nil {
		return models.Bounty{}, err
	}
	if err := CheckAdmission(s.Store, requester); err != nil {
		return models.Bounty{}, err
	}

	return s.Store.Claim(id, requester)
}

// Submit delivers work on a claimed bounty. Only the recorded claimant may
// submit, and the anti-gaming submission guards apply first.
func (s *BountyService) Submit(id uint, requester, content, proofURL string) (models.Bounty, *OpError) {
	b, ok := s.Store.Get(id)
	if !ok {
		return models.Bounty{}, opErr(CodeNotFound, "bounty %d not found", id)
	}
	if b.Status != models.BountyStatusClaimed {
		return models.Bounty{}, opErr(CodeInvalidState, "bounty %d is %s, only claimed bounties accept submissions", id, b.Status)
	}
	if b.Claimant() != requester {
		return models.Bounty{}, opErr(CodeUnauthorized, "only the claimant may submit work")
	}

	now := s.now().UTC()
	if err := CheckMinWorkTime(&b, now); err != nil {
		return models.Bounty{}, err
	}
	if err := CheckProofRequired(&b, content, proofURL); err != nil {
		return models.Bounty{}, err
	}

	score, passed, checks := Grade(b.Requirements, content, proofURL)
	if ShouldAutoReject(score, content, proofURL) {
		return models.Bounty{}, opErr(CodePolicyRejected, "submission scored %d with no supporting link — rejected without review", score).
			withExtra(map[string]interface{}{"reason": "auto_rejected", "score": score})
	}

	sub := models.Submission{
		ID:          uuid.NewString(),
		Content:     content,
		ProofURL:    proofURL,
		SubmittedAt: now,
		Score:       score,
		Passed:      passed,
		Checks:      checks,
	}
	b.Submissions = append(b.Submissions, sub)
	b.Status = models.BountyStatusSubmitted
	b.UpdatedAt = now
	s.Store.Set(b)
	return b, nil
}

// EditSubmission lets the claimant amend a submission while it awaits
// review. The grader re-runs on the new content.
func (s *BountyService) EditSubmission(id uint, requester, subID, content, proofURL string) (models.Bounty, *OpError) {
	b, ok := s.Store.Get(id)
	if !ok {
		return models.Bounty{}, opErr(CodeNotFound, "bounty %d not found", id)
	}
	if b.Status != models.BountyStatusSubmitted {
		return models.Bounty{}, opErr(CodeInvalidState, "bounty %d is %s, submissions are only editable while submitted", id, b.Status)
	}
	if b.Claimant() != requester {
		return models.Bounty{}, opErr(CodeUnauthorized, "only the claimant may edit their submission")
	}

	now := s.now().UTC()
	for i := range b.Submissions {
		if b.Submissions[i].ID != subID {
			continue
		}
		if content != "" {
			b.Submissions[i].Content = content
		}
		if proofURL != "" {
			b.Submissions[i].ProofURL = proofURL
		}
		score, passed, checks := Grade(b.Requirements, b.Submissions[i].Content, b.Submissions[i].ProofURL)
		b.Submissions[i].Score = score
		b.Submissions[i].Passed = passed
		b.Submissions[i].Checks = checks
		b.Submissions[i].EditedAt = &now
		b.UpdatedAt = now
		s.Store.Set(b)
		return b, nil
	}
	return models.Bounty{}, opErr(CodeNotFound, "submission %s not found on bounty %d", subID, id)
}

// DeleteSubmission removes one submission. Deleting the last one returns the
// bounty to claimed, keeping the submissions-nonempty invariant intact.
func (s *BountyService) DeleteSubmission(id uint, requester, subID string) (models.Bounty, *OpError) {
	b, ok := s.Store.Get(id)
	if !ok {
		return models.Bounty{}, opErr(CodeNotFound, "bounty %d not found", id)
	}
	if b.Status != models.BountyStatusSubmitted {
		return models.Bounty{}, opErr(CodeInvalidState, "bounty %d is %s, submissions are only deletable while submitted", id, b.Status)
	}
	if b.Claimant() != requester {
		return models.Bounty{}, opErr(CodeUnauthorized, "only the claimant may delete their submission")
	}

	kept := b.Submissions[:0:0]
	found := false
	for _, sub := range b.Submissions {
		if sub.ID == subID {
			found = true
			continue
		}
		kept = append(kept, sub)
	}
	if !found {
		return models.Bounty{}, opErr(CodeNotFound, "submission %s not found on bounty %d", subID, id)
	}

	b.Submissions = kept
	if len(b.Submissions) == 0 {
		b.Status = models.BountyStatusClaimed
	}
	b.UpdatedAt = s.now().UTC()
	s.Store.Set(b)
	return b, nil
}

// Approve accepts the submitted work. The payment step decides the terminal
// state: synchronous success completes the bounty, a missing executor parks
// it in payment_pending, and an executor error fails the approval loudly
// while the bounty stays submitted.
func (s *BountyService) Approve(id uint, approver string) (models.Bounty, *OpError) {
	b, ok := s.Store.Get(id)
	if !ok {
		return models.Bounty{}, opErr(CodeNotFound, "bounty %d not found", id)
	}
	if b.Status != models.BountyStatusSubmitted {
		return models.Bounty{}, opErr(CodeInvalidState, "bounty %d is %s, only submitted bounties can be approved", id, b.Status)
	}
	if b.CreatorAddress != approver {
		return models.Bounty{}, opErr(CodeUnauthorized, "only the bounty creator may approve")
	}
	if err := CheckConflictOfInterest(&b, approver); err != nil {
		return models.Bounty{}, err
	}

	latest := &b.Submissions[len(b.Submissions)-1]
	if err := CheckSubmissionGarbage(&b, latest); err != nil {
		return models.Bounty{}, err
	}

	now := s.now().UTC()

	if s.Payments == nil {
		// No executor configured: the relay completes it later.
		b.Status = models.BountyStatusPaymentPending
		b.UpdatedAt = now
		s.Store.Set(b)
		log.Printf("💸 Bounty %d approved, payment deferred to relay", id)
		return b, nil
	}

	res, err := s.Payments.Execute(b.Claimant(), b.Reward)
	if err != nil {
		// Nothing was advanced: the bounty stays submitted and the operator
		// is told no state was corrupted.
		log.Printf("❌ Payment execution failed for bounty %d, bounty remains submitted: %v", id, err)
		return models.Bounty{}, opErr(CodeUpstreamUnavailable, "payment executor unavailable, bounty %d remains submitted", id).
			withExtra(map[string]interface{}{"hint": "retry the approval or contact an operator"})
	}

	return s.CompletePayment(b, res), nil
}

// CompletePayment records a landed payment and runs the completion side
// effects (agent counters, reputation award). Both payment paths, the
// synchronous approval and the relay, finish through here.
func (s *BountyService) CompletePayment(b models.Bounty, res *PaymentResponse) models.Bounty {
	now := s.now().UTC()
	b.Status = models.BountyStatusCompleted
	b.Payment = &models.PaymentResult{
		TxRef:     res.TxRef,
		Amount:    b.Reward,
		Recipient: b.Claimant(),
		PaidAt:    now,
	}
	b.UpdatedAt = now
	s.Store.Set(b)

	s.recordCompletion(b)
	log.Printf("✅ Bounty %d completed, paid %d to %s (tx %s)", b.ID, b.Reward, b.Claimant(), res.TxRef)
	return b
}

// Reject sends a submitted bounty back to open, moderator/creator initiated.
// The prior cycle is preserved in the audit trail before clearing.
func (s *BountyService) Reject(id uint, actor, reason string) (models.Bounty, *OpError) {
	b, ok := s.Store.Get(id)
	if !ok {
		return models.Bounty{}, opErr(CodeNotFound, "bounty %d not found", id)
	}
	if b.Status != models.BountyStatusSubmitted {
		return models.Bounty{}, opErr(CodeInvalidState, "bounty %d is %s, only submitted bounties can be rejected", id, b.Status)
	}
	if b.CreatorAddress != actor {
		return models.Bounty{}, opErr(CodeUnauthorized, "only the bounty creator may reject")
	}

	now := s.now().UTC()
	b.Rejections = append(b.Rejections, models.AuditRecord{
		PrevClaimant:    b.Claimant(),
		PrevSubmissions: b.Submissions,
		Reason:          reason,
		RecordedAt:      now,
	})
	s.reopen(&b, now)
	s.Store.Set(b)
	return b, nil
}

// Release returns a claimed or submitted bounty to open, claimant initiated.
func (s *BountyService) Release(id uint, requester, reason string) (models.Bounty, *OpError) {
	b, ok := s.Store.Get(id)
	if !ok {
		return models.Bounty{}, opErr(CodeNotFound, "bounty %d not found", id)
	}
	if b.Status != models.BountyStatusClaimed && b.Status != models.BountyStatusSubmitted {
		return models.Bounty{}, opErr(CodeInvalidState, "bounty %d is %s, only claimed or submitted bounties can be released", id, b.Status)
	}
	if b.Claimant() != requester {
		return models.Bounty{}, opErr(CodeUnauthorized, "only the claimant may release")
	}

	now := s.now().UTC()
	b.Releases = append(b.Releases, models.AuditRecord{
		PrevClaimant:    b.Claimant(),
		PrevSubmissions: b.Submissions,
		Reason:          reason,
		RecordedAt:      now,
	})
	s.reopen(&b, now)
	s.Store.Set(b)
	return b, nil
}

// Cancel is terminal and reachable only from open, creator initiated.
func (s *BountyService) Cancel(id uint, requester string) (models.Bounty, *OpError) {
	b, ok := s.Store.Get(id)
	if !ok {
		return models.Bounty{}, opErr(CodeNotFound, "bounty %d not found", id)
	}
	if b.Status != models.BountyStatusOpen {
		return models.Bounty{}, opErr(CodeInvalidState, "bounty %d is %s, only open bounties can be cancelled", id, b.Status)
	}
	if b.CreatorAddress != requester {
		return models.Bounty{}, opErr(CodeUnauthorized, "only the bounty creator may cancel")
	}

	b.Status = models.BountyStatusCancelled
	b.UpdatedAt = s.now().UTC()
	s.Store.Set(b)
	return b, nil
}

// reopen clears the live claim cycle. History already sits in the audit
// trail by the time this runs.
func (s *BountyService) reopen(b *models.Bounty, now time.Time) {
	b.Status = models.BountyStatusOpen
	b.ClaimantAddress = nil
	b.ClaimedAt = nil
	b.Submissions = nil
	b.UpdatedAt = now
}

// recordCompletion updates the local agent counters and queues the external
// reputation award. Both are decoupled from the approval response.
func (s *BountyService) recordCompletion(b models.Bounty) {
	if s.Notifier != nil {
		s.Notifier.QueueReputationAward(b.Claimant())
	}
	if s.DB == nil {
		return
	}
	claimant := b.Claimant()
	reward := b.Reward
	go func() {
		res := s.DB.Model(&models.Agent{}).
			Where("address = ?", claimant).
			Updates(map[string]interface{}{
				"total_completed":  gorm.Expr("total_completed + 1"),
				"total_earned":     gorm.Expr("total_earned + ?", reward),
				"reputation_score": gorm.Expr("reputation_score + ?", ReputationAward),
			})
		if res.Error != nil {
			log.Printf("❌ Failed to update agent counters for %s: %v", claimant, res.Error)
		}
	}()
}

// --- Fiber handlers ---

func (s *BountyService) requireAddress(c *fiber.Ctx) (string, bool) {
	address, _ := c.Locals("agent_address").(string)
	return address, address != ""
}

func parseBountyID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	return uint(id), err == nil
}

// CreateBountyHandler handles POST /s/bounties.
func (s *BountyService) CreateBountyHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	if err := s.Limiter.Allow(address, ActionCreate); err != nil {
		return respondErr(c, err)
	}

	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(in.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	if in.Reward <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "reward must be positive"})
	}

	b, oerr := s.Create(address, in)
	if oerr != nil {
		return respondErr(c, oerr)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// GetBountyHandler handles GET /bounties/:id — numeric id first, UUID
// fallback for clients that only kept their creation id.
func (s *BountyService) GetBountyHandler(c *fiber.Ctx) error {
	raw := c.Params("id")
	id, _ := strconv.ParseUint(raw, 10, 64)
	if b, ok := s.Store.Lookup(uint(id), raw); ok {
		return c.JSON(b)
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "bounty not found", "code": CodeNotFound})
}

// ListBountiesHandler handles GET /bounties?status=&tag=.
func (s *BountyService) ListBountiesHandler(c *fiber.Ctx) error {
	status := c.Query("status")
	tag := c.Query("tag")

	bounties := s.Store.Snapshot(func(b *models.Bounty) bool {
		if status != "" && string(b.Status) != status {
			return false
		}
		if tag != "" {
			found := false
			for _, t := range b.Tags {
				if t == tag {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	})

	// Newest first.
	sort.Slice(bounties, func(i, j int) bool {
		return bounties[i].CreatedAt.After(bounties[j].CreatedAt)
	})
	return c.JSON(bounties)
}

// ClaimBountyHandler handles POST /s/bounties/:id/claim.
func (s *BountyService) ClaimBountyHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	id, ok := parseBountyID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	if err := s.Limiter.Allow(address, ActionClaim); err != nil {
		return respondErr(c, err)
	}

	b, oerr := s.Claim(id, address)
	if oerr != nil {
		return respondErr(c, oerr)
	}
	return c.JSON(b)
}

// SubmitWorkHandler handles POST /s/bounties/:id/submissions.
func (s *BountyService) SubmitWorkHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	id, ok := parseBountyID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}
	if err := s.Limiter.Allow(address, ActionSubmit); err != nil {
		return respondErr(c, err)
	}

	var req struct {
		Content  string `json:"content"`
		ProofURL string `json:"proof_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	b, oerr := s.Submit(id, address, req.Content, req.ProofURL)
	if oerr != nil {
		return respondErr(c, oerr)
	}
	return c.JSON(b)
}

// EditSubmissionHandler handles PUT /s/bounties/:id/submissions/:sid.
func (s *BountyService) EditSubmissionHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	id, ok := parseBountyID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	var req struct {
		Content  string `json:"content"`
		ProofURL string `json:"proof_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	b, oerr := s.EditSubmission(id, address, c.Params("sid"), req.Content, req.ProofURL)
	if oerr != nil {
		return respondErr(c, oerr)
	}
	return c.JSON(b)
}

// DeleteSubmissionHandler handles DELETE /s/bounties/:id/submissions/:sid.
func (s *BountyService) DeleteSubmissionHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	id, ok := parseBountyID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	b, oerr := s.DeleteSubmission(id, address, c.Params("sid"))
	if oerr != nil {
		return respondErr(c, oerr)
	}
	return c.JSON(b)
}

// ApproveBountyHandler handles POST /s/bounties/:id/approve.
func (s *BountyService) ApproveBountyHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	id, ok := parseBountyID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	b, oerr := s.Approve(id, address)
	if oerr != nil {
		return respondErr(c, oerr)
	}
	return c.JSON(b)
}

// RejectBountyHandler handles POST /s/bounties/:id/reject.
func (s *BountyService) RejectBountyHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	id, ok := parseBountyID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&req)

	b, oerr := s.Reject(id, address, req.Reason)
	if oerr != nil {
		return respondErr(c, oerr)
	}
	return c.JSON(b)
}

// ReleaseBountyHandler handles POST /s/bounties/:id/release.
func (s *BountyService) ReleaseBountyHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	id, ok := parseBountyID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&req)

	b, oerr := s.Release(id, address, req.Reason)
	if oerr != nil {
		return respondErr(c, oerr)
	}
	return c.JSON(b)
}

// UploadProofAttachmentHandler handles POST /s/bounties/:id/submissions/attachment.
// The claimant uploads evidence to R2 and gets back the URL to use as their
// proof link.
func (s *BountyService) UploadProofAttachmentHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	id, ok := parseBountyID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	b, found := s.Store.Get(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "bounty not found", "code": CodeNotFound})
	}
	if b.Claimant() != address {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "only the claimant may upload proof", "code": CodeUnauthorized})
	}
	if !utils.R2Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "attachment storage is not configured", "code": CodeUpstreamUnavailable})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file field is required"})
	}

	key := fmt.Sprintf("proofs/%s/%s-%s", b.UUID, uuid.NewString()[:8], fileHeader.Filename)
	url, err := utils.UploadProofToR2(fileHeader, key)
	if err != nil {
		log.Printf("❌ Proof upload failed for bounty %d: %v", id, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "proof upload failed", "code": CodeUpstreamUnavailable})
	}
	return c.JSON(fiber.Map{"proof_url": url})
}

// CancelBountyHandler handles POST /s/bounties/:id/cancel.
func (s *BountyService) CancelBountyHandler(c *fiber.Ctx) error {
	address, ok := s.requireAddress(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "agent address missing", "code": CodeUnauthorized})
	}
	id, ok := parseBountyID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounty id"})
	}

	b, oerr := s.Cancel(id, address)
	if oerr != nil {
		return respondErr(c, oerr)
	}
	return c.JSON(b)
}
