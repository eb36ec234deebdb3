package contract

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/rental-platform/internal/audit"
	"github.com/BruksfildServices01/rental-platform/internal/httperr"
	"github.com/BruksfildServices01/rental-platform/internal/models"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockRepo) GetApplication(ctx context.Context, id uuid.UUID) (*models.RentalApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentalApplication), args.Error(1)
}

func (m *MockRepo) CreateContract(ctx context.Context, c *models.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepo) GetContract(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockRepo) UpdateContract(ctx context.Context, c *models.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepo) ListContractsForParty(ctx context.Context, partyID uuid.UUID) ([]models.Contract, error) {
	args := m.Called(ctx, partyID)
	return args.Get(0).([]models.Contract), args.Error(1)
}

func (m *MockRepo) CreateCommission(ctx context.Context, c *models.CommissionTracking) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepo) GetCommission(ctx context.Context, id uuid.UUID) (*models.CommissionTracking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommissionTracking), args.Error(1)
}

func (m *MockRepo) UpdateCommission(ctx context.Context, c *models.CommissionTracking) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepo) ListCommissionsForAgent(ctx context.Context, agentID uuid.UUID) ([]models.CommissionTracking, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).([]models.CommissionTracking), args.Error(1)
}

type fakeStore struct {
	key  string
	body string
}

func (f *fakeStore) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.key, f.body = key, string(b)
	return "https://files.example.com/" + key, nil
}

func newDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func draftContract() *models.Contract {
	c := &models.Contract{
		TenantID:       uuid.New(),
		LandlordID:     uuid.New(),
		ContractStatus: "draft",
		MonthlyRent:    decimal.NewFromInt(1500),
	}
	c.ID = uuid.New()
	return c
}

func TestCreateFromApprovedApplication(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	p := &models.Property{OwnerID: owner, PropertyType: models.PropertyTypeLongTerm}
	p.ID = uuid.New()
	app := &models.RentalApplication{PropertyID: p.ID, ApplicantID: uuid.New(), ApplicationStatus: "approved"}
	app.ID = uuid.New()

	repo := new(MockRepo)
	repo.On("GetApplication", ctx, app.ID).Return(app, nil)
	repo.On("GetProperty", ctx, p.ID).Return(p, nil)
	repo.On("CreateContract", ctx, mock.Anything).Return(nil)

	c, err := NewCreateContract(repo, newDispatcher()).Execute(ctx, CreateContractInput{
		ActorID:        owner,
		ApplicationID:  &app.ID,
		MonthlyRent:    decimal.NewFromInt(1800),
		LeaseStartDate: date("2025-07-01"),
		LeaseEndDate:   date("2026-07-01"),
	})
	require.NoError(t, err)

	assert.Equal(t, app.ApplicantID, c.TenantID)
	assert.Equal(t, owner, c.LandlordID)
	assert.Equal(t, "draft", c.ContractStatus)
	assert.Equal(t, 12, c.LeaseTermMonths)
}

func TestCreateRejectsPendingApplication(t *testing.T) {
	ctx := context.Background()
	app := &models.RentalApplication{ApplicationStatus: "under_review"}
	app.ID = uuid.New()
	repo := new(MockRepo)
	repo.On("GetApplication", ctx, app.ID).Return(app, nil)

	_, err := NewCreateContract(repo, newDispatcher()).Execute(ctx, CreateContractInput{
		ApplicationID:  &app.ID,
		MonthlyRent:    decimal.NewFromInt(1),
		LeaseStartDate: date("2025-07-01"),
		LeaseEndDate:   date("2025-08-01"),
	})
	assert.True(t, httperr.IsBusiness(err, "application_not_approved"))
}

func TestCreateValidatesTerms(t *testing.T) {
	repo := new(MockRepo)
	uc := NewCreateContract(repo, newDispatcher())

	_, err := uc.Execute(context.Background(), CreateContractInput{
		MonthlyRent:    decimal.NewFromInt(1000),
		LeaseStartDate: date("2025-07-01"),
		LeaseEndDate:   date("2025-07-01"),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_lease_dates"))

	_, err = uc.Execute(context.Background(), CreateContractInput{
		LeaseStartDate: date("2025-07-01"),
		LeaseEndDate:   date("2025-09-01"),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_monthly_rent"))
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 6, monthsBetween(date("2025-01-15").Time, date("2025-07-15").Time))
	assert.Equal(t, 5, monthsBetween(date("2025-01-15").Time, date("2025-07-14").Time))
	assert.Equal(t, 1, monthsBetween(date("2025-01-15").Time, date("2025-01-20").Time))
}

func TestSignBothPartiesCompletes(t *testing.T) {
	ctx := context.Background()
	c := draftContract()
	c.ContractStatus = "sent"
	repo := new(MockRepo)
	repo.On("GetContract", ctx, c.ID).Return(c, nil)
	repo.On("UpdateContract", ctx, c).Return(nil)

	uc := NewSignContract(repo, newDispatcher())
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	_, err := uc.Execute(ctx, c.ID, c.TenantID, "tenant")
	require.NoError(t, err)
	assert.Equal(t, "partially_signed", c.ContractStatus)

	got, err := uc.Execute(ctx, c.ID, c.LandlordID, "landlord")
	require.NoError(t, err)
	assert.Equal(t, "completed", got.ContractStatus)
	assert.NotNil(t, got.FullyExecutedAt)
}

func TestSignAsOtherPartyForbidden(t *testing.T) {
	ctx := context.Background()
	c := draftContract()
	c.ContractStatus = "sent"
	repo := new(MockRepo)
	repo.On("GetContract", ctx, c.ID).Return(c, nil)

	_, err := NewSignContract(repo, newDispatcher()).Execute(ctx, c.ID, c.TenantID, "landlord")
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestSendRequiresLandlord(t *testing.T) {
	ctx := context.Background()
	c := draftContract()
	repo := new(MockRepo)
	repo.On("GetContract", ctx, c.ID).Return(c, nil)
	repo.On("UpdateContract", ctx, c).Return(nil)

	uc := NewSendContract(repo, newDispatcher())
	_, err := uc.Execute(ctx, c.ID, c.TenantID)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	got, err := uc.Execute(ctx, c.ID, c.LandlordID)
	require.NoError(t, err)
	assert.Equal(t, "sent", got.ContractStatus)
}

func TestAttachDocumentUploadsUnderContractKey(t *testing.T) {
	ctx := context.Background()
	c := draftContract()
	repo := new(MockRepo)
	repo.On("GetContract", ctx, c.ID).Return(c, nil)
	repo.On("UpdateContract", ctx, c).Return(nil)

	store := &fakeStore{}
	got, err := NewAttachDocument(repo, store, newDispatcher()).Execute(ctx, AttachDocumentInput{
		ContractID:  c.ID,
		ActorID:     c.LandlordID,
		Filename:    "../lease.pdf",
		ContentType: "application/pdf",
		Body:        bytes.NewBufferString("%PDF"),
	})
	require.NoError(t, err)

	assert.Equal(t, "contracts/"+c.ID.String()+"/lease.pdf", store.key)
	assert.Equal(t, "%PDF", store.body)
	assert.True(t, strings.HasSuffix(got.DocumentURL, store.key))
}

func TestAttachDocumentWithoutStore(t *testing.T) {
	repo := new(MockRepo)
	_, err := NewAttachDocument(repo, nil, newDispatcher()).Execute(context.Background(), AttachDocumentInput{})
	assert.True(t, httperr.IsBusiness(err, "document_storage_unavailable"))
}

func TestCreateCommissionComputesAmount(t *testing.T) {
	ctx := context.Background()
	c := draftContract()
	repo := new(MockRepo)
	repo.On("GetContract", ctx, c.ID).Return(c, nil)
	repo.On("CreateCommission", ctx, mock.Anything).Return(nil)

	ct, err := NewCreateCommission(repo, newDispatcher()).Execute(ctx, CreateCommissionInput{
		ActorID:    c.LandlordID,
		ContractID: c.ID,
		AgentID:    uuid.New(),
		Rate:       decimal.RequireFromString("0.0833"),
		BaseAmount: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)

	assert.Equal(t, "124.95", ct.CommissionAmount.StringFixed(2))
	assert.Equal(t, "listing", ct.CommissionType)
	assert.Equal(t, "pending", ct.CommissionStatus)
}

func TestCreateCommissionRejectsRate(t *testing.T) {
	repo := new(MockRepo)
	_, err := NewCreateCommission(repo, newDispatcher()).Execute(context.Background(), CreateCommissionInput{
		Rate:       decimal.RequireFromString("1.5"),
		BaseAmount: decimal.NewFromInt(100),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_commission_rate"))
	repo.AssertNotCalled(t, "GetContract", mock.Anything, mock.Anything)
}

func TestTransitionCommissionToPaid(t *testing.T) {
	ctx := context.Background()
	c := draftContract()
	ct := &models.CommissionTracking{ContractID: c.ID, CommissionStatus: "processing"}
	ct.ID = uuid.New()

	repo := new(MockRepo)
	repo.On("GetCommission", ctx, ct.ID).Return(ct, nil)
	repo.On("GetContract", ctx, c.ID).Return(c, nil)
	repo.On("UpdateCommission", ctx, ct).Return(nil)

	got, err := NewTransitionCommission(repo, newDispatcher()).Execute(ctx, TransitionCommissionInput{
		CommissionID: ct.ID,
		ActorID:      c.LandlordID,
		Status:       "paid",
		TransferID:   "tr_123",
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", got.CommissionStatus)
	assert.Equal(t, "tr_123", got.TransferID)
	assert.NotNil(t, got.PaidAt)
}
