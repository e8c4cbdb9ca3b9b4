package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campusevents_backend/internals/constants"
	deptModel "campusevents_backend/internals/features/departments/model"
	"campusevents_backend/internals/features/users/auth/dto"
	userModel "campusevents_backend/internals/features/users/user/model"
	helper "campusevents_backend/internals/helpers"
	helpersAuth "campusevents_backend/internals/helpers/auth"
)

/* ==========================
   Dependencies
========================== */

type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
	FindByUsername(ctx context.Context, username string) (*userModel.UserModel, error)
	FindConflicts(ctx context.Context, username, email, studentID string) ([]userModel.UserModel, error)
	Create(ctx context.Context, u *userModel.UserModel) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

type DepartmentLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*deptModel.DepartmentModel, error)
}

type BlacklistStore interface {
	Add(ctx context.Context, tokenHash string, expiresAt time.Time) error
	Exists(ctx context.Context, tokenHash string, now time.Time) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type AuthService struct {
	users       UserStore
	departments DepartmentLookup
	blacklist   BlacklistStore
	tokens      *helpersAuth.TokenManager
	throttle    LoginThrottle
	secret      string
	now         func() time.Time
}

type AuthServiceConfig struct {
	Users       UserStore
	Departments DepartmentLookup
	Blacklist   BlacklistStore
	Tokens      *helpersAuth.TokenManager
	Secret      string
	// Throttle may be nil.
	Throttle LoginThrottle
	Now      func() time.Time
}

func NewAuthService(cfg AuthServiceConfig) *AuthService {
	s := &AuthService{
		users:       cfg.Users,
		departments: cfg.Departments,
		blacklist:   cfg.Blacklist,
		tokens:      cfg.Tokens,
		throttle:    cfg.Throttle,
		secret:      cfg.Secret,
		now:         cfg.Now,
	}
	if s.throttle == nil {
		s.throttle = noopLoginThrottle{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// AuthResult is returned by Login and Register.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *userModel.UserModel
}

/* ==========================
   LOGIN
========================== */

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeMissingUser spends the same bcrypt work as a real comparison.
func equalizeMissingUser(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("campus-events-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*AuthResult, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	if blocked, err := s.throttle.Blocked(ctx, req.UserName); err != nil {
		log.Printf("[WARN] login throttle unavailable: %v", err)
	} else if blocked {
		return nil, helper.ErrAuth("Too many failed login attempts. Please try again later.")
	}

	user, err := s.users.FindByUsername(ctx, req.UserName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrInternal("failed to load user", err)
		}
		equalizeMissingUser(req.Password)
		s.recordFailure(ctx, req.UserName)
		return nil, helper.ErrAuth("Invalid username or password")
	}
	if !user.CheckPassword(req.Password) {
		s.recordFailure(ctx, req.UserName)
		return nil, helper.ErrAuth("Invalid username or password")
	}

	if err := s.throttle.Reset(ctx, req.UserName); err != nil {
		log.Printf("[WARN] login throttle reset failed: %v", err)
	}
	return s.issue(user)
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.throttle.Fail(ctx, username); err != nil {
		log.Printf("[WARN] login throttle update failed: %v", err)
	}
}

func (s *AuthService) issue(user *userModel.UserModel) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(user.ID, user.Role, user.UserName, user.FullName)
	if err != nil {
		return nil, helper.ErrInternal("failed to issue token", err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}

/* ==========================
   REGISTER
========================== */

// checkConflicts names the first colliding field by priority username > email > student id.
func (s *AuthService) checkConflicts(ctx context.Context, username, email, studentID string) error {
	found, err := s.users.FindConflicts(ctx, username, email, studentID)
	if err != nil {
		return helper.ErrInternal("failed to check existing users", err)
	}
	if len(found) == 0 {
		return nil
	}
	for _, u := range found {
		if u.UserName == username {
			return helper.ErrConflict("Username already exists")
		}
	}
	for _, u := range found {
		if u.Email == email {
			return helper.ErrConflict("Email already registered")
		}
	}
	return helper.ErrConflict("Student ID already registered")
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*AuthResult, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}

	deptID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, helper.ErrValidation("department_id must be a valid id")
	}
	dept, err := s.departments.FindByID(ctx, deptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrValidation("Department not found")
		}
		return nil, helper.ErrInternal("failed to load department", err)
	}

	if err := s.checkConflicts(ctx, req.UserName, req.Email, req.StudentID); err != nil {
		return nil, err
	}

	studentID := req.StudentID
	user := &userModel.UserModel{
		UserName:     req.UserName,
		Role:         constants.RoleStudent,
		FullName:     req.FullName,
		Email:        req.Email,
		DepartmentID: &deptID,
		StudentID:    &studentID,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, helper.ErrInternal("password hashing failed", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		if t := helper.TranslateDBError(err, "Username, email or student ID already registered"); t != err {
			return nil, t
		}
		return nil, helper.ErrInternal("failed to create user", err)
	}
	user.Department = dept

	log.Printf("[INFO] registered student %s", user.UserName)
	return s.issue(user)
}

// CreateAdmin adds an admin account; admins carry no student fields.
func (s *AuthService) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*userModel.UserModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, req.UserName, req.Email, ""); err != nil {
		return nil, err
	}

	user := &userModel.UserModel{
		UserName: req.UserName,
		Role:     constants.RoleAdmin,
		FullName: req.FullName,
		Email:    req.Email,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, helper.ErrInternal("password hashing failed", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		if t := helper.TranslateDBError(err, "Username or email already registered"); t != err {
			return nil, t
		}
		return nil, helper.ErrInternal("failed to create admin", err)
	}
	log.Printf("[INFO] created admin %s", user.UserName)
	return user, nil
}

/* ==========================
   PASSWORD & SESSION
========================== */

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	if err := helper.ValidateStruct(&req); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("User not found")
		}
		return helper.ErrInternal("failed to load user", err)
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return helper.ErrValidation("Current password is incorrect")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return helper.ErrInternal("password hashing failed", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, user.Password); err != nil {
		return helper.ErrInternal("failed to update password", err)
	}
	return nil
}

// Logout revokes rawToken until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, rawToken string, expiresAt time.Time) error {
	if strings.TrimSpace(rawToken) == "" {
		return helper.ErrAuth("Not authenticated")
	}
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(s.tokens.TTL())
	}
	if err := s.blacklist.Add(ctx, helpersAuth.HashToken(rawToken, s.secret), expiresAt); err != nil {
		return helper.ErrInternal("failed to revoke token", err)
	}
	return nil
}

// IsBlacklisted is consulted by the auth middleware on every request.
func (s *AuthService) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	return s.blacklist.Exists(ctx, helpersAuth.HashToken(rawToken, s.secret), s.now())
}

func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.blacklist.PurgeExpired(ctx, s.now())
}
