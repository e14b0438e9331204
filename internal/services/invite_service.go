package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/contractdesk/contract-management-api/internal/constants"
	"github.com/contractdesk/contract-management-api/internal/mailer"
	"github.com/contractdesk/contract-management-api/internal/models"
	"github.com/contractdesk/contract-management-api/internal/repository"
	"github.com/contractdesk/contract-management-api/internal/scope"
	"github.com/contractdesk/contract-management-api/internal/utils"
)

var (
	ErrInviteNotFound        = errors.New("invite not found or revoked")
	ErrInviteAlreadyAccepted = errors.New("invite already accepted")
	ErrInviteRoleInvalid     = errors.New("invites can only grant branch_admin or branch_user")
	ErrInviteEmailRequired   = errors.New("invite email is required")
	ErrBranchNotFound        = errors.New("branch office not found")
	ErrBranchWrongOrg        = errors.New("branch office belongs to a different organization")
	ErrInviteTokenFailed     = errors.New("failed to generate invite token")
	ErrInviteForbidden       = errors.New("not allowed to manage invites for this branch")
)

// InviteService manages the branch invite lifecycle:
// pending -> accepted (single use) and pending -> revoked.
type InviteService struct {
	inviteRepo repository.InviteRepository
	orgRepo    repository.OrganizationRepository
	userRepo   repository.UserRepository
	sender     mailer.Sender
	baseURL    string
}

// NewInviteService creates a new InviteService. sender may be nil, which
// disables email dispatch; invites are still created and their links returned.
func NewInviteService(
	inviteRepo repository.InviteRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	sender mailer.Sender,
	baseURL string,
) *InviteService {
	return &InviteService{
		inviteRepo: inviteRepo,
		orgRepo:    orgRepo,
		userRepo:   userRepo,
		sender:     sender,
		baseURL:    baseURL,
	}
}

// CreateInviteInput represents parameters to issue a branch invite.
type CreateInviteInput struct {
	BranchOfficeID uint64
	Email          string
	Role           models.OrganizationRole
	FullName       *string
	Department     *string
	Title          *string
	ContactEmail   *string
}

// CreatedInvite pairs the stored invite with its deep link. The link is always
// returned so it can be shared manually when email dispatch fails.
type CreatedInvite struct {
	Invite    *models.BranchInvite
	Link      string
	EmailSent bool
}

// CreateInvite issues a single-use invite for a branch. Org admins can invite
// into any branch of their organization; branch admins only into their own.
// Email dispatch is best-effort: losing a durable invite because a mail
// provider hiccuped would be worse than copying a link by hand.
func (s *InviteService) CreateInvite(principal models.Principal, input CreateInviteInput) (*CreatedInvite, error) {
	if input.Role != models.RoleBranchAdmin && input.Role != models.RoleBranchUser {
		return nil, ErrInviteRoleInvalid
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrInviteEmailRequired
	}

	branch, err := s.orgRepo.FindBranch(input.BranchOfficeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("failed to find branch office: %w", err)
	}
	if branch.OrganizationID != principal.OrganizationID {
		return nil, ErrBranchWrongOrg
	}

	if !principal.IsOrgAdmin() {
		if !principal.IsBranchAdmin() {
			return nil, ErrInviteForbidden
		}
		if principal.BranchOfficeID == nil || *principal.BranchOfficeID != branch.ID {
			return nil, ErrInviteForbidden
		}
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return nil, ErrInviteTokenFailed
	}

	invite := &models.BranchInvite{
		OrganizationID: principal.OrganizationID,
		BranchOfficeID: branch.ID,
		Email:          email,
		Role:           input.Role,
		FullName:       input.FullName,
		Department:     input.Department,
		Title:          input.Title,
		ContactEmail:   input.ContactEmail,
		InviteToken:    token,
		Status:         models.InviteStatusPending,
	}

	if err := s.inviteRepo.Create(invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	link := s.InviteLink(token)
	sent := s.dispatchEmail(invite, branch, link)

	return &CreatedInvite{Invite: invite, Link: link, EmailSent: sent}, nil
}

// InviteLink builds the deep link embedding the bearer token.
func (s *InviteService) InviteLink(token string) string {
	return fmt.Sprintf("%s/#/invite/%s", s.baseURL, token)
}

func (s *InviteService) dispatchEmail(invite *models.BranchInvite, branch *models.BranchOffice, link string) bool {
	if s.sender == nil {
		return false
	}

	org, err := s.orgRepo.FindByID(invite.OrganizationID)
	orgName := ""
	if err == nil {
		orgName = org.Name
	}

	email := mailer.BuildInviteEmail(mailer.InviteEmailData{
		OrganizationName: orgName,
		BranchName:       branch.Code,
		Role:             string(invite.Role),
		InviteLink:       link,
	})
	email.To = invite.Email

	if err := s.sender.Send(email); err != nil {
		// The invite stays valid; the caller surfaces the raw link instead.
		log.Printf("invite email dispatch failed for %s: %v", invite.Email, err)
		return false
	}
	return true
}

// ListInvites lists invites visible to the principal, newest first.
func (s *InviteService) ListInvites(principal models.Principal, requested scope.ResourceScope, targetBranchID *uint64) ([]models.BranchInvite, error) {
	p := scope.ForPrincipal(principal, requested, targetBranchID)
	invites, err := s.inviteRepo.List(p)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// GetInviteByToken resolves an invite for the public acceptance screen.
// Unknown or garbage tokens yield ErrInviteNotFound, not a server failure.
func (s *InviteService) GetInviteByToken(token string) (*models.BranchInvite, error) {
	invite, err := s.inviteRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}
	if invite.Status == models.InviteStatusRevoked {
		return nil, ErrInviteNotFound
	}
	return invite, nil
}

// AcceptInviteInput carries the new user's credential.
type AcceptInviteInput struct {
	Token    string
	Password string
}

// AcceptInvite converts a pending invite into a user account plus a
// membership. The three writes (user, membership, invite flip) are not
// atomic against the row store; membership creation is an idempotent upsert
// and the invite flip is guarded on status, so a partially completed accept
// can simply be retried.
func (s *InviteService) AcceptInvite(input AcceptInviteInput) (*models.User, *models.BranchInvite, error) {
	invite, err := s.inviteRepo.FindByToken(input.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInviteNotFound
		}
		return nil, nil, fmt.Errorf("failed to find invite: %w", err)
	}

	switch invite.Status {
	case models.InviteStatusPending:
	case models.InviteStatusAccepted:
		return nil, nil, ErrInviteAlreadyAccepted
	default:
		return nil, nil, ErrInviteNotFound
	}

	if len(input.Password) < constants.MinPasswordLength {
		return nil, nil, ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByEmail(invite.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
		}

		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, nil, ErrFailedToHashPassword
		}

		fullName := ""
		if invite.FullName != nil {
			fullName = *invite.FullName
		}

		user = &models.User{
			Email:        invite.Email,
			PasswordHash: string(hashedPassword),
			FullName:     fullName,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	branchID := invite.BranchOfficeID
	member := &models.OrganizationMember{
		OrganizationID: invite.OrganizationID,
		UserID:         user.ID,
		Role:           invite.Role,
		BranchOfficeID: &branchID,
		Department:     invite.Department,
		JoinedAt:       time.Now(),
	}
	if err := s.orgRepo.UpsertMember(member); err != nil {
		return nil, nil, fmt.Errorf("failed to create membership: %w", err)
	}

	now := time.Now()
	rows, err := s.inviteRepo.MarkAccepted(invite.ID, user.ID, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mark invite accepted: %w", err)
	}
	if rows == 0 {
		// Lost a race with another acceptance of the same token.
		return nil, nil, ErrInviteAlreadyAccepted
	}

	invite.Status = models.InviteStatusAccepted
	invite.UserID = &user.ID
	invite.AcceptedAt = &now

	return user, invite, nil
}

// RevokeInvite flips a pending invite to revoked. Revocation only prevents
// future acceptance; nothing else needs cleanup.
func (s *InviteService) RevokeInvite(principal models.Principal, inviteID uint64) error {
	invite, err := s.inviteRepo.FindByID(inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInviteNotFound
		}
		return fmt.Errorf("failed to find invite: %w", err)
	}
	if invite.OrganizationID != principal.OrganizationID {
		return ErrInviteNotFound
	}

	if !principal.IsOrgAdmin() {
		if !principal.IsBranchAdmin() || principal.BranchOfficeID == nil || *principal.BranchOfficeID != invite.BranchOfficeID {
			return ErrInviteForbidden
		}
	}

	switch invite.Status {
	case models.InviteStatusAccepted:
		return ErrInviteAlreadyAccepted
	case models.InviteStatusRevoked:
		return nil
	}

	if _, err := s.inviteRepo.Revoke(inviteID); err != nil {
		return fmt.Errorf("failed to revoke invite: %w", err)
	}
	return nil
}
