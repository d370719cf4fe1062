package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkovalev7/scentshop/internal/common"
	"github.com/dkovalev7/scentshop/internal/cryptox"
	"github.com/dkovalev7/scentshop/internal/dbx"
	"github.com/dkovalev7/scentshop/internal/server/config"
	"github.com/dkovalev7/scentshop/internal/server/models"
	cartsrepo "github.com/dkovalev7/scentshop/internal/server/repositories/carts"
	ordersrepo "github.com/dkovalev7/scentshop/internal/server/repositories/orders"
	perfumesrepo "github.com/dkovalev7/scentshop/internal/server/repositories/perfumes"
	refreshtokensrepo "github.com/dkovalev7/scentshop/internal/server/repositories/refreshtokens"
	"github.com/dkovalev7/scentshop/internal/server/repositories/repomanager"
	usersrepo "github.com/dkovalev7/scentshop/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr error

	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	return f.createErr
}
func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error { return f.delErr }
func (f *fakeRefreshRepo) DeleteForUser(ctx context.Context, userID int64) error {
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Perfumes(db dbx.DBTX) perfumesrepo.Repository           { return nil }
func (m *fakeRepoManager) Carts(db dbx.DBTX) cartsrepo.Repository                 { return nil }
func (m *fakeRepoManager) Orders(db dbx.DBTX) ordersrepo.Repository               { return nil }

func TestRefreshToken_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		r: &fakeRefreshRepo{
			findOut: &models.RefreshToken{UserID: 1, Expires: time.Now().Add(10 * time.Minute)},
		},
	}
	s := newUserService(t, db, rm)

	pair, err := s.RefreshToken(context.Background(), "refresh-xyz")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		r: &fakeRefreshRepo{
			findOut: &models.RefreshToken{UserID: 1, Expires: time.Now().Add(-1 * time.Minute)},
		},
	}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "r")
	if !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("want ErrRefreshTokenExpired, got %v", err)
	}
}

func TestRefreshToken_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{findErr: common.ErrorNotFound}}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "r")
	if !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("want ErrRefreshTokenExpired, got %v", err)
	}
}

func TestRefreshToken_FindErr(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{findErr: errBoom{}}}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "r")
	if err == nil || !regexp.MustCompile(`error searching refresh token: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped find error, got %v", err)
	}
}

func TestRefreshToken_DeleteErr(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		r: &fakeRefreshRepo{
			findOut: &models.RefreshToken{UserID: 1, Expires: time.Now().Add(10 * time.Minute)},
			delErr:  errBoom{},
		},
	}
	s := newUserService(t, db, rm)

	_, err := s.RefreshToken(context.Background(), "r")
	if err == nil || !regexp.MustCompile(`error deleting refresh token: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped delete error, got %v", err)
	}
}

func TestRegister_SuccessAndDuplicate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rmOK := &fakeRepoManager{
		u: &fakeUsersRepo{createOut: &models.User{ID: 42, Username: "alice"}},
		r: &fakeRefreshRepo{},
	}
	sOK := newUserService(t, db, rmOK)
	u, pair, err := sOK.Register(context.Background(), "alice", "alice@example.com", []byte("pw"))
	if err != nil || u.ID != 42 {
		t.Fatalf("Register ok: got (%v, %v)", u, err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty tokens: %+v", pair)
	}

	rmDup := &fakeRepoManager{
		u: &fakeUsersRepo{createErr: common.ErrorAlreadyExists},
		r: &fakeRefreshRepo{},
	}
	sDup := newUserService(t, db, rmDup)
	_, _, err = sDup.Register(context.Background(), "alice", "alice@example.com", []byte("pw"))
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want ErrorAlreadyExists, got %v", err)
	}
}

func TestLogin_Flows(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	salt := []byte("0123456789abcdef0123456789abcdef")
	verifier := cryptox.MakeVerifier(cryptox.DeriveKey([]byte("right"), salt))

	// not found resolves to unauthorized
	rmNF := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: common.ErrorNotFound},
		r: &fakeRefreshRepo{},
	}
	sNF := newUserService(t, db, rmNF)
	if _, _, err := sNF.Login(context.Background(), "ghost@example.com", []byte("x")); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("notfound: want unauthorized, got %v", err)
	}

	// db error resolves to internal
	rmIE := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: errBoom{}},
		r: &fakeRefreshRepo{},
	}
	sIE := newUserService(t, db, rmIE)
	if _, _, err := sIE.Login(context.Background(), "u@example.com", []byte("x")); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("internal: want ErrorInternal, got %v", err)
	}

	// wrong password resolves to unauthorized
	rmWV := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: 1, Salt: salt, Verifier: verifier}},
		r: &fakeRefreshRepo{},
	}
	sWV := newUserService(t, db, rmWV)
	if _, _, err := sWV.Login(context.Background(), "u@example.com", []byte("wrong")); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("wrong password: want unauthorized, got %v", err)
	}

	rmOK := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: 1, Salt: salt, Verifier: verifier}},
		r: &fakeRefreshRepo{},
	}
	sOK := newUserService(t, db, rmOK)
	user, pair, err := sOK.Login(context.Background(), "u@example.com", []byte("right"))
	if err != nil || user.ID != 1 || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("Login success: user=%+v pair=%+v err=%v", user, pair, err)
	}
}

func TestValidateAccessToken_RoundTrip(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{r: &fakeRefreshRepo{}}
	s := newUserService(t, db, rm)

	access, err := s.generateAccessToken(7)
	if err != nil {
		t.Fatalf("generateAccessToken error: %v", err)
	}
	id, err := s.ValidateAccessToken(access)
	if err != nil || id != 7 {
		t.Fatalf("ValidateAccessToken: id=%d err=%v", id, err)
	}
}
