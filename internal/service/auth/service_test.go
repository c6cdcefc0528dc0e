package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/JainishBorsaniya/transaction-wallet-app/internal/domain"
	"github.com/JainishBorsaniya/transaction-wallet-app/internal/repository"
	"github.com/JainishBorsaniya/transaction-wallet-app/pkg/config"
	jwtpkg "github.com/JainishBorsaniya/transaction-wallet-app/pkg/jwt"
)

// memRepo is an in-memory store whose username index rejects duplicate
// writers the way the database unique constraint does.
type memRepo struct {
	mu            sync.Mutex
	byUsername    map[string]*domain.User
	byID          map[string]*domain.User
	accounts      map[string]*domain.Account
	failProvision bool
	lookupCalls   int
	updateCalls   int
}

func newMemRepo() *memRepo {
	return &memRepo{
		byUsername: make(map[string]*domain.User),
		byID:       make(map[string]*domain.User),
		accounts:   make(map[string]*domain.Account),
	}
}

func (m *memRepo) CreateUserWithAccount(ctx context.Context, user *domain.User, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byUsername[user.Username]; exists {
		return repository.ErrConflict
	}
	if m.failProvision {
		return errors.New("simulated store failure")
	}
	u := *user
	a := *account
	m.byUsername[u.Username] = &u
	m.byID[u.ID] = &u
	m.accounts[a.UserID] = &a
	return nil
}

func (m *memRepo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupCalls++
	if u, ok := m.byUsername[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memRepo) UpdateUser(ctx context.Context, update domain.UserUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	u, ok := m.byID[update.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	if update.PasswordHash != nil {
		u.PasswordHash = update.PasswordHash
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	return nil
}

func (m *memRepo) GetAccountByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[userID]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func testConfig() config.APIConfig {
	return config.APIConfig{
		JWTSecret:              "test-secret",
		BcryptCost:             4,
		InitialBalanceMode:     config.BalanceModeRandom,
		InitialBalanceMinCents: 100,
		InitialBalanceMaxCents: 1000100,
	}
}

func newTestService(repo *memRepo, cfg config.APIConfig) Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(repo, repo, log, cfg)
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Username:  "Alice",
		Password:  "hunter42",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected normalized username, got %q", user.Username)
	}
	if user.FirstName != "alice" || user.LastName != "smith" {
		t.Fatalf("expected lowercased names, got %q %q", user.FirstName, user.LastName)
	}
	if string(user.PasswordHash) == "hunter42" {
		t.Fatal("plaintext password stored as hash")
	}

	claims, err := jwtpkg.Parse(token, "test-secret")
	if err != nil {
		t.Fatalf("parse register token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user_id = %q, want %q", claims.UserID, user.ID)
	}

	logged, loginToken, err := svc.Login(context.Background(), LoginInput{Username: "ALICE", Password: "hunter42"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned user %q, want %q", logged.ID, user.ID)
	}
	loginClaims, err := jwtpkg.Parse(loginToken, "test-secret")
	if err != nil {
		t.Fatalf("parse login token: %v", err)
	}
	if loginClaims.UserID != user.ID {
		t.Fatalf("login token user_id = %q, want %q", loginClaims.UserID, user.ID)
	}
}

func TestRegisterProvisionsExactlyOneAccount(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	user, _, err := svc.Register(context.Background(), RegisterInput{
		Username:  "bob",
		Password:  "pass1234",
		FirstName: "Bob",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(repo.byID) != 1 || len(repo.accounts) != 1 {
		t.Fatalf("expected 1 user and 1 account, got %d users %d accounts", len(repo.byID), len(repo.accounts))
	}
	account, err := repo.GetAccountByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("account lookup: %v", err)
	}
	if account.UserID != user.ID {
		t.Fatalf("account owner = %q, want %q", account.UserID, user.ID)
	}
	if account.BalanceCents < 100 || account.BalanceCents >= 1000100 {
		t.Fatalf("balance %d outside configured range", account.BalanceCents)
	}
}

func TestRegisterFixedBalanceMode(t *testing.T) {
	cfg := testConfig()
	cfg.InitialBalanceMode = config.BalanceModeFixed
	cfg.InitialBalanceFixedCents = 5000
	repo := newMemRepo()
	svc := newTestService(repo, cfg)

	user, _, err := svc.Register(context.Background(), RegisterInput{
		Username:  "carol",
		Password:  "pass1234",
		FirstName: "Carol",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	account, _ := repo.GetAccountByUserID(context.Background(), user.ID)
	if account.BalanceCents != 5000 {
		t.Fatalf("balance = %d, want 5000", account.BalanceCents)
	}
}

func TestRegisterDuplicateUsernameCaseInsensitive(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	if _, _, err := svc.Register(context.Background(), RegisterInput{Username: "Alice", Password: "pass1234", FirstName: "a"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, _, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "pass1234", FirstName: "a"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(repo.byID))
	}
}

func TestRegisterValidationCollectsAllViolations(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	_, _, err := svc.Register(context.Background(), RegisterInput{Username: "ab", Password: "abc", FirstName: ""})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(validation.Fields), validation.Fields)
	}
	if repo.lookupCalls != 0 {
		t.Fatalf("validation failure must not touch the store, saw %d lookups", repo.lookupCalls)
	}
}

func TestRegisterConcurrentSameUsername(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Register(context.Background(), RegisterInput{
				Username:  "racer",
				Password:  "pass1234",
				FirstName: "racer",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrUsernameTaken):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one winner, got %d", succeeded)
	}
	if duplicates != attempts-1 {
		t.Fatalf("expected %d duplicate rejections, got %d", attempts-1, duplicates)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected one user after race, got %d", len(repo.byID))
	}
}

func TestRegisterProvisioningFailureLeavesNoRecords(t *testing.T) {
	repo := newMemRepo()
	repo.failProvision = true
	svc := newTestService(repo, testConfig())

	_, _, err := svc.Register(context.Background(), RegisterInput{Username: "dave", Password: "pass1234", FirstName: "dave"})
	if !errors.Is(err, ErrProvisioning) {
		t.Fatalf("expected ErrProvisioning, got %v", err)
	}
	if len(repo.byID) != 0 || len(repo.accounts) != 0 {
		t.Fatalf("provisioning failure left records behind: %d users %d accounts", len(repo.byID), len(repo.accounts))
	}
}

func TestLoginUnknownUser(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	_, _, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "pass1234"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("login must not create records")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	if _, _, err := svc.Register(context.Background(), RegisterInput{Username: "eve", Password: "pass1234", FirstName: "eve"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	before := repo.updateCalls

	_, _, err := svc.Login(context.Background(), LoginInput{Username: "eve", Password: "wrongpass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if repo.updateCalls != before {
		t.Fatal("failed login must not mutate records")
	}
}

func TestUpdateProfilePasswordOnly(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	user, _, err := svc.Register(context.Background(), RegisterInput{
		Username:  "frank",
		Password:  "oldpass1",
		FirstName: "Frank",
		LastName:  "Jones",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	newPass := "newpass1"
	if err := svc.UpdateProfile(context.Background(), user.ID, UpdateInput{Password: &newPass}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), LoginInput{Username: "frank", Password: "newpass1"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), LoginInput{Username: "frank", Password: "oldpass1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}

	stored, _ := repo.GetUserByID(context.Background(), user.ID)
	if stored.FirstName != "frank" || stored.LastName != "jones" {
		t.Fatalf("names changed by password-only update: %q %q", stored.FirstName, stored.LastName)
	}
}

func TestUpdateProfileValidatesPresentFields(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	short := "abc"
	err := svc.UpdateProfile(context.Background(), "whatever", UpdateInput{Password: &short})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatal("invalid update must not reach the store")
	}
}

func TestUpdateProfileEmptyBodyIsNoop(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	if err := svc.UpdateProfile(context.Background(), "anyone", UpdateInput{}); err != nil {
		t.Fatalf("empty update should be a no-op, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatal("empty update must not reach the store")
	}
}

func TestUpdateProfileStoreFailure(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	first := "zoe"
	err := svc.UpdateProfile(context.Background(), "missing-user", UpdateInput{FirstName: &first})
	if !errors.Is(err, ErrUpdate) {
		t.Fatalf("expected ErrUpdate, got %v", err)
	}
}

func TestAuthorizeRejectsForeignSignature(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	user, _, err := svc.Register(context.Background(), RegisterInput{Username: "gina", Password: "pass1234", FirstName: "gina"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	forged, err := jwtpkg.GenerateToken(user.ID, "other-secret", 0)
	if err != nil {
		t.Fatalf("generate forged token: %v", err)
	}
	if _, _, err := svc.Authorize(context.Background(), forged); err == nil {
		t.Fatal("expected foreign-signature token to be rejected")
	}

	valid, err := jwtpkg.GenerateToken(user.ID, "test-secret", 0)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	got, claims, err := svc.Authorize(context.Background(), valid)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if got.ID != user.ID || claims.UserID != user.ID {
		t.Fatalf("authorize resolved %q, want %q", got.ID, user.ID)
	}
}

func TestProfileReturnsUserAndAccount(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	user, _, err := svc.Register(context.Background(), RegisterInput{Username: "hank", Password: "pass1234", FirstName: "hank"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	gotUser, gotAccount, err := svc.Profile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if gotUser.ID != user.ID {
		t.Fatalf("profile user = %q, want %q", gotUser.ID, user.ID)
	}
	if gotAccount.UserID != user.ID {
		t.Fatalf("profile account owner = %q, want %q", gotAccount.UserID, user.ID)
	}
}

func TestInitialBalanceDegenerateRange(t *testing.T) {
	cfg := testConfig()
	cfg.InitialBalanceMinCents = 700
	cfg.InitialBalanceMaxCents = 700
	svc := newTestService(newMemRepo(), cfg)
	if got := svc.initialBalance(); got != 700 {
		t.Fatalf("degenerate range balance = %d, want 700", got)
	}
}

func TestRegisterManyDistinctUsernames(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, testConfig())

	for i := 0; i < 5; i++ {
		username := fmt.Sprintf("user%d", i)
		if _, _, err := svc.Register(context.Background(), RegisterInput{Username: username, Password: "pass1234", FirstName: username}); err != nil {
			t.Fatalf("register %s: %v", username, err)
		}
	}
	if len(repo.byID) != 5 || len(repo.accounts) != 5 {
		t.Fatalf("expected 5 users and accounts, got %d/%d", len(repo.byID), len(repo.accounts))
	}
}
