package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"corpgate/internal/domain/entity"
	"corpgate/internal/domain/repository"
	"corpgate/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- transaction manager ---

type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type fakeFactory struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	tables   *fakeTableRepo
}

func (f *fakeFactory) UserRepo() repository.UserRepository       { return f.users }
func (f *fakeFactory) SessionRepo() repository.SessionRepository { return f.sessions }
func (f *fakeFactory) TableRepo() repository.TableRepository     { return f.tables }

func newFakeEnv() (*fakeTxManager, *fakeFactory) {
	factory := &fakeFactory{
		users:    newFakeUserRepo(),
		sessions: newFakeSessionRepo(),
		tables:   newFakeTableRepo(),
	}
	factory.sessions.users = factory.users

	return &fakeTxManager{factory: factory}, factory
}

// --- user repository ---

type fakeUserRepo struct {
	byID map[uuid.UUID]*entity.User

	lastLoginUpdates []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) add(user *entity.User) *entity.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = entity.NormalizeEmail(user.Email)
	r.byID[user.ID] = user

	return user
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.byID[id]; ok {
		copied := *user

		return &copied, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	email = entity.NormalizeEmail(email)
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.byID))
	for _, user := range r.byID {
		copied := *user
		users = append(users, &copied)
	}

	return users, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.add(user)

	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	user, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash

	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	user, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	now := time.Now()
	user.LastLogin = &now
	r.lastLoginUpdates = append(r.lastLoginUpdates, id)

	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, email string, status entity.Status) error {
	user := r.findByEmail(email)
	if user == nil {
		return repository.ErrUserNotFound
	}
	user.Status = status

	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, email string, role string) error {
	user := r.findByEmail(email)
	if user == nil {
		return repository.ErrUserNotFound
	}
	user.Role = role

	return nil
}

func (r *fakeUserRepo) UpdateAllowedPages(_ context.Context, email string, pages []string) error {
	user := r.findByEmail(email)
	if user == nil {
		return repository.ErrUserNotFound
	}
	user.AllowedPages = pages

	return nil
}

func (r *fakeUserRepo) ResetPassword(_ context.Context, email string, passwordHash string) error {
	user := r.findByEmail(email)
	if user == nil {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.Status = entity.StatusInactive

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, email string) error {
	user := r.findByEmail(email)
	if user == nil {
		return repository.ErrUserNotFound
	}
	delete(r.byID, user.ID)

	return nil
}

func (r *fakeUserRepo) findByEmail(email string) *entity.User {
	email = entity.NormalizeEmail(email)
	for _, user := range r.byID {
		if user.Email == email {
			return user
		}
	}

	return nil
}

// --- session repository ---

type fakeSessionRepo struct {
	byToken map[string]*entity.Session
	users   *fakeUserRepo
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now()
	r.byToken[session.RefreshToken] = session

	return nil
}

func (r *fakeSessionRepo) FindByToken(ctx context.Context, refreshToken string) (*entity.Session, *entity.User, error) {
	session, ok := r.byToken[refreshToken]
	if !ok {
		return nil, nil, repository.ErrSessionNotFound
	}

	user, err := r.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, repository.ErrSessionNotFound
	}

	copied := *session

	return &copied, user, nil
}

func (r *fakeSessionRepo) DeleteByToken(_ context.Context, refreshToken string) error {
	delete(r.byToken, refreshToken)

	return nil
}

func (r *fakeSessionRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for token, session := range r.byToken {
		if session.UserID == userID {
			delete(r.byToken, token)
		}
	}

	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	now := time.Now()
	var deleted int64
	for token, session := range r.byToken {
		if session.Expired(now) {
			delete(r.byToken, token)
			deleted++
		}
	}

	return deleted, nil
}

// --- table repository ---

type fakeTableRepo struct {
	rows    []map[string]any
	owners  map[string]uuid.UUID
	pages   []string
	records map[string]map[string]any

	lastOwnerFilter *uuid.UUID
	lastListConfig  entity.TableConfig
	inserted        map[string]any
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{
		owners:  make(map[string]uuid.UUID),
		records: make(map[string]map[string]any),
	}
}

func (r *fakeTableRepo) record(id string) map[string]any {
	row, ok := r.records[id]
	if !ok {
		row = map[string]any{}
		r.records[id] = row
	}

	return row
}

func (r *fakeTableRepo) List(_ context.Context, cfg entity.TableConfig, ownerFilter *uuid.UUID, _, _ int) ([]map[string]any, error) {
	r.lastListConfig = cfg
	r.lastOwnerFilter = ownerFilter

	return r.rows, nil
}

func (r *fakeTableRepo) Insert(_ context.Context, _ entity.TableConfig, data map[string]any) (map[string]any, error) {
	r.inserted = data

	return data, nil
}

func (r *fakeTableRepo) FindOwner(_ context.Context, _ entity.TableConfig, recordID string) (uuid.UUID, error) {
	owner, ok := r.owners[recordID]
	if !ok {
		return uuid.Nil, repository.ErrRecordNotFound
	}

	return owner, nil
}

func (r *fakeTableRepo) UpdateOrderStatus(_ context.Context, orderID string, status string) (map[string]any, error) {
	if _, ok := r.owners[orderID]; !ok {
		return nil, repository.ErrRecordNotFound
	}

	row := r.record(orderID)
	row["order_id"] = orderID
	row["status"] = status
	if status == "Delivered" {
		row["delivered_date"] = time.Now()
	}

	return row, nil
}

func (r *fakeTableRepo) UpdateIssueStatus(_ context.Context, issueID string, status string, solvedBy uuid.UUID) (map[string]any, error) {
	if _, ok := r.owners[issueID]; !ok {
		return nil, repository.ErrRecordNotFound
	}

	row := r.record(issueID)
	row["issue_id"] = issueID
	row["status"] = status
	if status == "Solved" {
		row["solved_by"] = solvedBy.String()
		row["solved_at"] = time.Now()
	}

	return row, nil
}

func (r *fakeTableRepo) ListPages(_ context.Context) ([]string, error) {
	return r.pages, nil
}

func (r *fakeTableRepo) DescribeColumns(_ context.Context, cfg entity.TableConfig) ([]entity.ColumnMeta, error) {
	return []entity.ColumnMeta{{Name: cfg.PrimaryKey, DataType: "bigint", Nullable: false}}, nil
}

// --- domain services ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type stubTokenService struct {
	refreshTTL time.Duration
	minted     int
}

func (s *stubTokenService) IssueAccessToken(user *entity.User) (string, error) {
	return "access-" + user.Email, nil
}

func (s *stubTokenService) VerifyAccessToken(string) *service.AccessClaims {
	return nil
}

func (s *stubTokenService) NewRefreshToken() (string, error) {
	s.minted++

	return fmt.Sprintf("refresh-%d", s.minted), nil
}

func (s *stubTokenService) RefreshTokenTTL() time.Duration {
	if s.refreshTTL > 0 {
		return s.refreshTTL
	}

	return time.Hour
}
