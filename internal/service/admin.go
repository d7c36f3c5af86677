package service

import (
	"context"

	"github.com/optima-app/api-server-go/internal/audit"
	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/repository"
	"github.com/optima-app/api-server-go/internal/token"
	"github.com/optima-app/api-server-go/internal/util"
)

// AdminService owns admin authentication: login, gated self-registration and
// the audit log listing. Both secrets arrive through the constructor.
type AdminService struct {
	adminRepo       repository.AdminRepository
	auditRepo       repository.AuditLogRepository
	recorder        *audit.Recorder
	issuer          *token.Issuer
	registrationKey string
}

func NewAdminService(
	adminRepo repository.AdminRepository,
	auditRepo repository.AuditLogRepository,
	recorder *audit.Recorder,
	issuer *token.Issuer,
	registrationKey string,
) *AdminService {
	return &AdminService{
		adminRepo:       adminRepo,
		auditRepo:       auditRepo,
		recorder:        recorder,
		issuer:          issuer,
		registrationKey: registrationKey,
	}
}

// Login authenticates by email and password and returns the admin plus a
// fresh bearer token. Unknown email and wrong password fail identically.
func (s *AdminService) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	if email == "" || password == "" {
		return nil, "", apperrors.InvalidCredentials()
	}

	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.Database(err)
	}
	if admin == nil || admin.PasswordDigest != util.HashPassword(password) {
		return nil, "", apperrors.InvalidCredentials()
	}

	tok, err := s.issuer.Issue(admin.ID)
	if err != nil {
		return nil, "", apperrors.Internal("failed to issue token").WithCause(err)
	}

	return admin, tok, nil
}

// Register creates an admin account. The shared registration key is checked
// before anything else; no account or audit entry is written on a mismatch.
// The duplicate-email check is a pre-check query, not a transactional
// constraint, so two concurrent registrations with the same email can race.
func (s *AdminService) Register(ctx context.Context, email, password, name, registrationKey string) (*model.Admin, error) {
	if !util.ConstantTimeEqual(registrationKey, s.registrationKey) {
		return nil, apperrors.InvalidRegistrationKey()
	}

	if email == "" {
		return nil, apperrors.MissingRequired("email")
	}
	if !util.IsValidEmail(email) {
		return nil, apperrors.InvalidInput("email", "not a valid address")
	}
	if password == "" {
		return nil, apperrors.MissingRequired("password")
	}
	if name == "" {
		return nil, apperrors.MissingRequired("name")
	}

	existing, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("Admin with this email")
	}

	admin, err := s.adminRepo.Create(ctx, model.CreateAdminParams{
		Email:          email,
		Name:           name,
		PasswordDigest: util.HashPassword(password),
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}

	s.recorder.Record(ctx, admin.ID, model.ActionAdminCreated, map[string]any{
		"admin_email": email,
	})

	return admin, nil
}

func (s *AdminService) Logs(ctx context.Context, limit int) ([]model.AuditLogEntry, error) {
	entries, err := s.auditRepo.List(ctx, limit)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return entries, nil
}
