package services

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	"hackreg/models"
	"hackreg/testutil"
)

type fakeNotifier struct {
	mu        sync.Mutex
	received  []string
	confirmed []string
}

func (f *fakeNotifier) RegistrationReceived(team *models.Team) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, team.RegistrationID)
}

func (f *fakeNotifier) PaymentConfirmed(team *models.Team) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, team.RegistrationID)
}

func newTestService(t *testing.T, dupCheck bool) (*TeamService, *fakeNotifier) {
	t.Helper()
	notifier := &fakeNotifier{}
	svc := NewTeamService(testutil.OpenTestDB(t), notifier, TeamServiceConfig{
		PaymentAmount:   500,
		PaymentCurrency: "INR",
		DuplicateCheck:  dupCheck,
	})
	return svc, notifier
}

func TestRegisterCreatesPendingTeamAndPayment(t *testing.T) {
	svc, notifier := newTestService(t, true)

	team, err := svc.Register(testutil.ValidRegistration(1))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if team.Status != models.StatusPendingPayment {
		t.Errorf("team status = %s, want %s", team.Status, models.StatusPendingPayment)
	}
	if team.VerificationStatus != models.NotVerified {
		t.Errorf("verification status = %s, want %s", team.VerificationStatus, models.NotVerified)
	}
	if team.Payment == nil {
		t.Fatal("expected a linked payment")
	}
	if team.Payment.Status != models.PaymentPending {
		t.Errorf("payment status = %s, want %s", team.Payment.Status, models.PaymentPending)
	}
	if team.Payment.TeamID != team.ID {
		t.Errorf("payment team id = %d, want %d", team.Payment.TeamID, team.ID)
	}
	if team.Payment.Amount != 500 || team.Payment.Currency != "INR" {
		t.Errorf("payment amount/currency = %d/%s, want 500/INR", team.Payment.Amount, team.Payment.Currency)
	}

	idPattern := regexp.MustCompile(`^HACK-\d{4}-[A-Z0-9]{6}$`)
	if !idPattern.MatchString(team.RegistrationID) {
		t.Errorf("registration id %q does not match expected format", team.RegistrationID)
	}
	refPattern := regexp.MustCompile(`^TXN-\d+-[A-Z0-9]{6}$`)
	if !refPattern.MatchString(team.Payment.TransactionRef) {
		t.Errorf("transaction ref %q does not match expected format", team.Payment.TransactionRef)
	}

	if len(notifier.received) != 1 || notifier.received[0] != team.RegistrationID {
		t.Errorf("expected one registration notification for %s, got %v", team.RegistrationID, notifier.received)
	}
}

func TestRegistrationIDsUnique(t *testing.T) {
	svc, _ := newTestService(t, false)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		team, err := svc.Register(testutil.ValidRegistration(i))
		if err != nil {
			t.Fatalf("Register %d: %v", i, err)
		}
		if seen[team.RegistrationID] {
			t.Fatalf("duplicate registration id %s", team.RegistrationID)
		}
		seen[team.RegistrationID] = true
	}
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	svc, notifier := newTestService(t, true)

	team, err := svc.Register(testutil.ValidRegistration(1))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	confirmed, err := svc.ConfirmPayment(team.RegistrationID)
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if confirmed.Status != models.StatusConfirmed {
		t.Errorf("team status = %s, want %s", confirmed.Status, models.StatusConfirmed)
	}
	if confirmed.Payment.Status != models.PaymentSuccess {
		t.Errorf("payment status = %s, want %s", confirmed.Payment.Status, models.PaymentSuccess)
	}

	again, err := svc.ConfirmPayment(team.RegistrationID)
	if err != nil {
		t.Fatalf("second ConfirmPayment: %v", err)
	}
	if again.Status != models.StatusConfirmed {
		t.Errorf("team status after repeat confirm = %s, want %s", again.Status, models.StatusConfirmed)
	}

	if len(notifier.confirmed) != 2 {
		t.Errorf("expected 2 confirmation notifications, got %d", len(notifier.confirmed))
	}
}

func TestFailPaymentKeepsTeamPending(t *testing.T) {
	svc, _ := newTestService(t, true)

	team, err := svc.Register(testutil.ValidRegistration(1))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	failed, err := svc.FailPayment(team.RegistrationID)
	if err != nil {
		t.Fatalf("FailPayment: %v", err)
	}
	if failed.Status != models.StatusPendingPayment {
		t.Errorf("team status = %s, want %s (fail must not cancel the team)", failed.Status, models.StatusPendingPayment)
	}
	if failed.Payment.Status != models.PaymentFailed {
		t.Errorf("payment status = %s, want %s", failed.Payment.Status, models.PaymentFailed)
	}

	// The retry path: a failed payment can still be confirmed.
	confirmed, err := svc.ConfirmPayment(team.RegistrationID)
	if err != nil {
		t.Fatalf("ConfirmPayment after failure: %v", err)
	}
	if confirmed.Status != models.StatusConfirmed || confirmed.Payment.Status != models.PaymentSuccess {
		t.Errorf("retry confirm: status = %s/%s, want CONFIRMED/Success", confirmed.Status, confirmed.Payment.Status)
	}
}

func TestLifecycleOperationsOnUnknownID(t *testing.T) {
	svc, _ := newTestService(t, true)

	if _, err := svc.ConfirmPayment("HACK-2026-ZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ConfirmPayment unknown id: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.FailPayment("HACK-2026-ZZZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FailPayment unknown id: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.ToggleVerification(99999); !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleVerification unknown id: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetByRegistrationID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByRegistrationID unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestToggleVerificationIsInvolution(t *testing.T) {
	svc, _ := newTestService(t, true)

	team, err := svc.Register(testutil.ValidRegistration(1))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	once, err := svc.ToggleVerification(team.ID)
	if err != nil {
		t.Fatalf("ToggleVerification: %v", err)
	}
	if once.VerificationStatus != models.Verified {
		t.Errorf("after one toggle: %s, want %s", once.VerificationStatus, models.Verified)
	}

	twice, err := svc.ToggleVerification(team.ID)
	if err != nil {
		t.Fatalf("second ToggleVerification: %v", err)
	}
	if twice.VerificationStatus != team.VerificationStatus {
		t.Errorf("double toggle changed state: %s, want %s", twice.VerificationStatus, team.VerificationStatus)
	}
}

func TestCancelTeamIsTerminal(t *testing.T) {
	svc, _ := newTestService(t, true)

	team, err := svc.Register(testutil.ValidRegistration(1))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	cancelled, err := svc.CancelTeam(team.ID)
	if err != nil {
		t.Fatalf("CancelTeam: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %s, want %s", cancelled.Status, models.StatusCancelled)
	}

	// Cancellation is a status value, not a deletion.
	if _, err := svc.GetByRegistrationID(team.RegistrationID); err != nil {
		t.Errorf("cancelled team should still resolve: %v", err)
	}
}

func TestDuplicateLeaderRejectedByPreCheck(t *testing.T) {
	svc, _ := newTestService(t, true)

	if _, err := svc.Register(testutil.ValidRegistration(1)); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	dup := testutil.ValidRegistration(2)
	dup.Participant1Email = testutil.ValidRegistration(1).Participant1Email
	if _, err := svc.Register(dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate leader email: err = %v, want ErrDuplicate", err)
	}
}

func TestDuplicateCaughtByStorageWithoutPreCheck(t *testing.T) {
	svc, _ := newTestService(t, false)

	if _, err := svc.Register(testutil.ValidRegistration(1)); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	dup := testutil.ValidRegistration(2)
	dup.LeaderPhone = testutil.ValidRegistration(1).LeaderPhone
	if _, err := svc.Register(dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("unique index backstop: err = %v, want ErrDuplicate", err)
	}
}

func TestRejectedRegistrationLeavesNoRecords(t *testing.T) {
	svc, _ := newTestService(t, true)

	if _, err := svc.Register(testutil.ValidRegistration(1)); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	dup := testutil.ValidRegistration(2)
	dup.Participant1Email = testutil.ValidRegistration(1).Participant1Email
	if _, err := svc.Register(dup); err == nil {
		t.Fatal("expected duplicate rejection")
	}

	teams, total, err := svc.List(50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(teams) != 1 {
		t.Errorf("rejected registration left records: total = %d, teams = %d", total, len(teams))
	}
}

func TestSearch(t *testing.T) {
	svc, _ := newTestService(t, false)

	apex, err := svc.Register(testutil.ValidRegistration(1))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	other := testutil.ValidRegistration(2)
	other.TeamName = "Zenith"
	other.CollegeName = "Y Institute"
	if _, err := svc.Register(other); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Case-insensitive substring match on team name
	results, err := svc.Search("apex", "teamName")
	if err != nil {
		t.Fatalf("Search teamName: %v", err)
	}
	if len(results) != 1 || results[0].RegistrationID != apex.RegistrationID {
		t.Errorf("teamName search returned %d results, want exactly the Apex team", len(results))
	}

	// Prefix match on registration id
	results, err = svc.Search(apex.RegistrationID[:9], "registrationId")
	if err != nil {
		t.Fatalf("Search registrationId: %v", err)
	}
	found := false
	for _, r := range results {
		if r.RegistrationID == apex.RegistrationID {
			found = true
		}
	}
	if !found {
		t.Error("registrationId prefix search did not return the team")
	}

	// College name search
	results, err = svc.Search("y institute", "collegeName")
	if err != nil {
		t.Fatalf("Search collegeName: %v", err)
	}
	if len(results) != 1 || results[0].TeamName != "Zenith" {
		t.Errorf("collegeName search returned %d results, want exactly Zenith", len(results))
	}

	if _, err := svc.Search("x", "leaderPhone"); !errors.Is(err, ErrInvalidSearchType) {
		t.Errorf("invalid search type: err = %v, want ErrInvalidSearchType", err)
	}
}

func TestListPaginatesNewestFirst(t *testing.T) {
	svc, _ := newTestService(t, false)

	for i := 0; i < 5; i++ {
		if _, err := svc.Register(testutil.ValidRegistration(i)); err != nil {
			t.Fatalf("Register %d: %v", i, err)
		}
	}

	teams, total, err := svc.List(2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(teams) != 2 {
		t.Errorf("page size = %d, want 2", len(teams))
	}
	for i := 1; i < len(teams); i++ {
		if teams[i].CreatedAt.After(teams[i-1].CreatedAt) {
			t.Error("list not ordered by creation time descending")
		}
	}

	rest, _, err := svc.List(10, 2)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(rest) != 3 {
		t.Errorf("second page size = %d, want 3", len(rest))
	}
}
