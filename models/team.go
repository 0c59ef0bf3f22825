// models/team.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

type TeamStatus string

const (
	StatusPendingPayment TeamStatus = "PENDING_PAYMENT"
	StatusConfirmed      TeamStatus = "CONFIRMED"
	StatusCancelled      TeamStatus = "CANCELLED"
)

type VerificationStatus string

const (
	NotVerified VerificationStatus = "Not Verified"
	Verified    VerificationStatus = "Verified"
)

// Participant is one team member. Stored as a JSON attribute of the team
// rather than a separate table; participants are never addressed on their own.
type Participant struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type Team struct {
	ID                 uint                              `json:"_id" gorm:"primaryKey"`
	RegistrationID     string                            `json:"registrationId" gorm:"uniqueIndex;size:20;not null"`
	TeamName           string                            `json:"teamName" gorm:"uniqueIndex;size:100;not null"`
	CollegeName        string                            `json:"collegeName" gorm:"size:200;not null;index"`
	TeamSize           int                               `json:"teamSize" gorm:"not null"`
	Participants       datatypes.JSONType[[]Participant] `json:"participants"`
	LeaderEmail        string                            `json:"leaderEmail" gorm:"uniqueIndex;size:254;not null"`
	LeaderPhone        string                            `json:"leaderPhone" gorm:"uniqueIndex;size:20;not null"`
	UTRID              string                            `json:"utrId" gorm:"size:100;not null"`
	PaymentScreenshot  string                            `json:"paymentScreenshot" gorm:"size:500"`
	Status             TeamStatus                        `json:"status" gorm:"size:20;not null;index"`
	VerificationStatus VerificationStatus                `json:"verificationStatus" gorm:"size:20;not null"`
	Payment            *Payment                          `json:"payment,omitempty" gorm:"foreignKey:TeamID"`
	CreatedAt          time.Time                         `json:"createdAt"`
	UpdatedAt          time.Time                         `json:"updatedAt"`
}

func (Team) TableName() string {
	return "teams"
}

// PaymentStatus returns the linked payment's status, or "N/A" when no payment
// record is loaded.
func (t *Team) PaymentStatus() string {
	if t.Payment == nil {
		return "N/A"
	}
	return string(t.Payment.Status)
}
