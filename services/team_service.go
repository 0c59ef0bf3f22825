// services/team_service.go - Registration and payment lifecycle
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"hackreg/models"
	"hackreg/utils"
	"hackreg/validation"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier receives lifecycle events. Dispatch must not block; the service
// calls it after the transaction commits and never looks at the outcome.
type Notifier interface {
	RegistrationReceived(team *models.Team)
	PaymentConfirmed(team *models.Team)
}

type TeamServiceConfig struct {
	PaymentAmount   int
	PaymentCurrency string
	// DuplicateCheck enables the application-level pre-check on leader
	// e-mail/phone. The unique indexes remain the backstop either way.
	DuplicateCheck bool
}

type TeamService struct {
	db       *gorm.DB
	notifier Notifier
	cfg      TeamServiceConfig
}

// NewTeamService wires the lifecycle service. notifier may be nil, in which
// case lifecycle events are dropped.
func NewTeamService(db *gorm.DB, notifier Notifier, cfg TeamServiceConfig) *TeamService {
	if cfg.PaymentCurrency == "" {
		cfg.PaymentCurrency = "INR"
	}
	return &TeamService{db: db, notifier: notifier, cfg: cfg}
}

// idAllocationAttempts bounds the regenerate-and-retry loop around
// registration id / transaction ref collisions.
const idAllocationAttempts = 5

// Register creates a team in PENDING_PAYMENT together with its Pending
// payment as one transaction, then queues the registration e-mail.
func (s *TeamService) Register(input *validation.RegisterTeamInput) (*models.Team, error) {
	if s.cfg.DuplicateCheck {
		var n int64
		err := s.db.Model(&models.Team{}).
			Where("leader_email = ? OR leader_phone = ?", input.LeaderEmail(), input.LeaderPhone).
			Count(&n).Error
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, fmt.Errorf("%w: a team with this leader email or phone already exists", ErrDuplicate)
		}
	}

	participants := input.Participants()

	for attempt := 1; attempt <= idAllocationAttempts; attempt++ {
		regID := utils.NewRegistrationID()
		txnRef := utils.NewTransactionRef()

		team := &models.Team{
			RegistrationID:     regID,
			TeamName:           strings.TrimSpace(input.TeamName),
			CollegeName:        strings.TrimSpace(input.CollegeName),
			TeamSize:           input.TeamSizeInt(),
			Participants:       datatypes.NewJSONType(participants),
			LeaderEmail:        input.LeaderEmail(),
			LeaderPhone:        input.LeaderPhone,
			UTRID:              strings.TrimSpace(input.UTRID),
			PaymentScreenshot:  strings.TrimSpace(input.PaymentScreenshot),
			Status:             models.StatusPendingPayment,
			VerificationStatus: models.NotVerified,
		}
		payment := &models.Payment{
			Amount:         s.cfg.PaymentAmount,
			Currency:       s.cfg.PaymentCurrency,
			Status:         models.PaymentPending,
			TransactionRef: txnRef,
			Provider:       "mock",
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(team).Error; err != nil {
				return err
			}
			payment.TeamID = team.ID
			return tx.Create(payment).Error
		})
		if err == nil {
			team.Payment = payment
			s.notifyRegistration(team)
			return team, nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if s.generatedIDTaken(regID, txnRef) {
				log.Printf("⚠️  id collision on attempt %d (%s), regenerating", attempt, regID)
				continue
			}
			return nil, fmt.Errorf("%w: team or participant already registered", ErrDuplicate)
		}
		return nil, err
	}

	return nil, fmt.Errorf("could not allocate a unique registration id after %d attempts", idAllocationAttempts)
}

// generatedIDTaken distinguishes a collision on our freshly generated
// identifiers from a uniqueness conflict on submitter-supplied fields.
func (s *TeamService) generatedIDTaken(regID, txnRef string) bool {
	var n int64
	s.db.Model(&models.Team{}).Where("registration_id = ?", regID).Count(&n)
	if n > 0 {
		return true
	}
	s.db.Model(&models.Payment{}).Where("transaction_ref = ?", txnRef).Count(&n)
	return n > 0
}

// ConfirmPayment marks the payment Success and the team CONFIRMED in one
// transaction. Safe to call again on an already confirmed team.
func (s *TeamService) ConfirmPayment(registrationID string) (*models.Team, error) {
	team, err := s.GetByRegistrationID(registrationID)
	if err != nil {
		return nil, err
	}

	if team.Payment != nil {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Payment{}).
				Where("team_id = ?", team.ID).
				Update("status", models.PaymentSuccess).Error; err != nil {
				return err
			}
			return tx.Model(&models.Team{}).
				Where("id = ?", team.ID).
				Update("status", models.StatusConfirmed).Error
		})
		if err != nil {
			return nil, err
		}

		team, err = s.GetByRegistrationID(registrationID)
		if err != nil {
			return nil, err
		}
		s.notifyConfirmed(team)
	}

	return team, nil
}

// FailPayment marks the payment Failed. The team deliberately stays in
// PENDING_PAYMENT so the submitter can retry.
func (s *TeamService) FailPayment(registrationID string) (*models.Team, error) {
	team, err := s.GetByRegistrationID(registrationID)
	if err != nil {
		return nil, err
	}

	if team.Payment != nil {
		if err := s.db.Model(&models.Payment{}).
			Where("team_id = ?", team.ID).
			Update("status", models.PaymentFailed).Error; err != nil {
			return nil, err
		}
		team.Payment.Status = models.PaymentFailed
	}

	return team, nil
}

// ToggleVerification flips the admin-controlled verification flag.
func (s *TeamService) ToggleVerification(teamID uint) (*models.Team, error) {
	team, err := s.GetByID(teamID)
	if err != nil {
		return nil, err
	}

	if team.VerificationStatus == models.Verified {
		team.VerificationStatus = models.NotVerified
	} else {
		team.VerificationStatus = models.Verified
	}

	if err := s.db.Model(&models.Team{}).
		Where("id = ?", team.ID).
		Update("verification_status", team.VerificationStatus).Error; err != nil {
		return nil, err
	}

	return team, nil
}

// CancelTeam moves a team to CANCELLED. Terminal; cancellation is a status
// value, the record is never deleted.
func (s *TeamService) CancelTeam(teamID uint) (*models.Team, error) {
	team, err := s.GetByID(teamID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Team{}).
		Where("id = ?", team.ID).
		Update("status", models.StatusCancelled).Error; err != nil {
		return nil, err
	}
	team.Status = models.StatusCancelled

	return team, nil
}

// SearchFields lists the admin search targets.
var SearchFields = map[string]bool{
	"registrationId": true,
	"teamName":       true,
	"collegeName":    true,
}

// Search matches case-insensitively: prefix match on registration id,
// substring on team or college name. At most 20 results, no pagination.
func (s *TeamService) Search(query, field string) ([]models.Team, error) {
	if !SearchFields[field] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSearchType, field)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	db := s.db.Preload("Payment").Limit(20)

	switch field {
	case "registrationId":
		db = db.Where("LOWER(registration_id) LIKE ?", q+"%")
	case "teamName":
		db = db.Where("LOWER(team_name) LIKE ?", "%"+q+"%")
	case "collegeName":
		db = db.Where("LOWER(college_name) LIKE ?", "%"+q+"%")
	}

	var teams []models.Team
	if err := db.Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// List returns one page ordered by creation time descending plus the total
// count across all teams.
func (s *TeamService) List(limit, skip int) ([]models.Team, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	var total int64
	if err := s.db.Model(&models.Team{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []models.Team
	err := s.db.Preload("Payment").
		Order("created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

// GetByRegistrationID looks a team up by its public identifier.
func (s *TeamService) GetByRegistrationID(registrationID string) (*models.Team, error) {
	var team models.Team
	err := s.db.Preload("Payment").
		Where("registration_id = ?", registrationID).
		First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByID looks a team up by its internal id.
func (s *TeamService) GetByID(teamID uint) (*models.Team, error) {
	var team models.Team
	err := s.db.Preload("Payment").First(&team, teamID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) notifyRegistration(team *models.Team) {
	if s.notifier != nil {
		s.notifier.RegistrationReceived(team)
	}
}

func (s *TeamService) notifyConfirmed(team *models.Team) {
	if s.notifier != nil {
		s.notifier.PaymentConfirmed(team)
	}
}
