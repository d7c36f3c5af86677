package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optima-app/api-server-go/internal/audit"
	apperrors "github.com/optima-app/api-server-go/internal/errors"
	"github.com/optima-app/api-server-go/internal/model"
	"github.com/optima-app/api-server-go/internal/token"
	"github.com/optima-app/api-server-go/internal/util"
)

type mockAdminRepo struct {
	findByEmailFunc func(ctx context.Context, email string) (*model.Admin, error)
	findByIDFunc    func(ctx context.Context, id string) (*model.Admin, error)
	createFunc      func(ctx context.Context, params model.CreateAdminParams) (*model.Admin, error)

	created []model.CreateAdminParams
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAdminRepo) Create(ctx context.Context, params model.CreateAdminParams) (*model.Admin, error) {
	m.created = append(m.created, params)
	if m.createFunc != nil {
		return m.createFunc(ctx, params)
	}
	return &model.Admin{
		ID:             "admin-new",
		Email:          params.Email,
		Name:           params.Name,
		PasswordDigest: params.PasswordDigest,
	}, nil
}

type mockAuditRepo struct {
	entries []model.AuditLogEntry
	listVal []model.AuditLogEntry
	listErr error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry model.AuditLogEntry) (string, error) {
	m.entries = append(m.entries, entry)
	return "log-1", nil
}

func (m *mockAuditRepo) List(ctx context.Context, limit int) ([]model.AuditLogEntry, error) {
	return m.listVal, m.listErr
}

func (m *mockAuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}

func newAdminService(adminRepo *mockAdminRepo, auditRepo *mockAuditRepo, registrationKey string) *AdminService {
	issuer := token.NewIssuer("test-secret", 24*time.Hour)
	return NewAdminService(adminRepo, auditRepo, audit.NewRecorder(auditRepo), issuer, registrationKey)
}

func storedAdmin(email, password string) *model.Admin {
	return &model.Admin{
		ID:             "admin-1",
		Email:          email,
		Name:           "Ann",
		PasswordDigest: util.HashPassword(password),
	}
}

func TestAdminLoginSuccess(t *testing.T) {
	repo := &mockAdminRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Admin, error) {
			if email == "a@x.com" {
				return storedAdmin("a@x.com", "s3cret"), nil
			}
			return nil, nil
		},
	}
	svc := newAdminService(repo, &mockAuditRepo{}, "reg-key")

	admin, tok, err := svc.Login(context.Background(), "a@x.com", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "admin-1", admin.ID)

	issuer := token.NewIssuer("test-secret", 24*time.Hour)
	adminID, err := issuer.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", adminID)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	repo := &mockAdminRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Admin, error) {
			return storedAdmin(email, "s3cret"), nil
		},
	}
	svc := newAdminService(repo, &mockAuditRepo{}, "reg-key")

	_, _, err := svc.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidCredentials, appErr.Code)
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	repo := &mockAdminRepo{}
	svc := newAdminService(repo, &mockAuditRepo{}, "reg-key")

	_, _, unknownErr := svc.Login(context.Background(), "nobody@x.com", "s3cret")
	require.Error(t, unknownErr)

	repo.findByEmailFunc = func(ctx context.Context, email string) (*model.Admin, error) {
		return storedAdmin(email, "s3cret"), nil
	}
	_, _, wrongErr := svc.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, wrongErr)

	// Unknown email and wrong password must be indistinguishable.
	assert.Equal(t, wrongErr.Error(), unknownErr.Error())
}

func TestAdminLoginEmptyInput(t *testing.T) {
	svc := newAdminService(&mockAdminRepo{}, &mockAuditRepo{}, "reg-key")

	_, _, err := svc.Login(context.Background(), "", "s3cret")
	require.Error(t, err)

	_, _, err = svc.Login(context.Background(), "a@x.com", "")
	require.Error(t, err)
}

func TestAdminLoginStoreError(t *testing.T) {
	repo := &mockAdminRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Admin, error) {
			return nil, errors.New("store down")
		},
	}
	svc := newAdminService(repo, &mockAuditRepo{}, "reg-key")

	_, _, err := svc.Login(context.Background(), "a@x.com", "s3cret")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeDatabase, appErr.Code)
}

func TestAdminRegisterSuccess(t *testing.T) {
	repo := &mockAdminRepo{}
	auditRepo := &mockAuditRepo{}
	svc := newAdminService(repo, auditRepo, "reg-key")

	admin, err := svc.Register(context.Background(), "a@x.com", "s3cret", "Ann", "reg-key")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "a@x.com", admin.Email)
	assert.Equal(t, "Ann", admin.Name)

	require.Len(t, repo.created, 1)
	assert.Equal(t, util.HashPassword("s3cret"), repo.created[0].PasswordDigest)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, model.ActionAdminCreated, auditRepo.entries[0].Action)
	assert.Equal(t, "a@x.com", auditRepo.entries[0].Details["admin_email"])
}

func TestAdminRegisterWrongKey(t *testing.T) {
	repo := &mockAdminRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Admin, error) {
			t.Fatal("must not touch the store on a key mismatch")
			return nil, nil
		},
	}
	auditRepo := &mockAuditRepo{}
	svc := newAdminService(repo, auditRepo, "reg-key")

	_, err := svc.Register(context.Background(), "a@x.com", "s3cret", "Ann", "wrong-key")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidRegistrationKey, appErr.Code)

	assert.Empty(t, repo.created)
	assert.Empty(t, auditRepo.entries)
}

func TestAdminRegisterDuplicateEmail(t *testing.T) {
	existing := storedAdmin("a@x.com", "original")
	repo := &mockAdminRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Admin, error) {
			return existing, nil
		},
	}
	svc := newAdminService(repo, &mockAuditRepo{}, "reg-key")

	_, err := svc.Register(context.Background(), "a@x.com", "different", "Bea", "reg-key")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAlreadyExists, appErr.Code)

	// The stored account is untouched; logging in with its original password
	// still works.
	assert.Empty(t, repo.created)
	assert.Equal(t, util.HashPassword("original"), existing.PasswordDigest)
}

func TestAdminRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		admin    string
	}{
		{"missing email", "", "s3cret", "Ann"},
		{"bad email", "not-an-email", "s3cret", "Ann"},
		{"missing password", "a@x.com", "", "Ann"},
		{"missing name", "a@x.com", "s3cret", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAdminRepo{}
			svc := newAdminService(repo, &mockAuditRepo{}, "reg-key")

			_, err := svc.Register(context.Background(), tt.email, tt.password, tt.admin, "reg-key")
			require.Error(t, err)
			assert.Empty(t, repo.created)
		})
	}
}

func TestAdminLogs(t *testing.T) {
	auditRepo := &mockAuditRepo{
		listVal: []model.AuditLogEntry{
			{ID: "log-2", Action: model.ActionTaskCreated},
			{ID: "log-1", Action: model.ActionAdminCreated},
		},
	}
	svc := newAdminService(&mockAdminRepo{}, auditRepo, "reg-key")

	entries, err := svc.Logs(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "log-2", entries[0].ID)
}
