package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/elric-cpu/website-v4-api/internal/config"
	"github.com/elric-cpu/website-v4-api/internal/logger"
	"github.com/elric-cpu/website-v4-api/internal/models"
)

// MockLeadRepository is a mock implementation of LeadRepository for testing
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Insert(ctx context.Context, lead *models.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) MarkForwarded(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

// MockForwarder is a mock implementation of Forwarder for testing
type MockForwarder struct {
	mock.Mock
}

func (m *MockForwarder) Forward(ctx context.Context, endpoint string, lead *models.Lead) error {
	args := m.Called(ctx, endpoint, lead)
	return args.Error(0)
}

func testEndpoints() config.LeadsConfig {
	return config.LeadsConfig{
		EstimatorEndpoint:  "https://leads.example.com/estimator",
		CommercialEndpoint: "https://leads.example.com/commercial",
		ContactEndpoint:    "https://leads.example.com/contact",
		CalculatorEndpoint: "https://leads.example.com/calculator",
		ContactPhone:       "(555) 210-4411",
	}
}

func validSubmission() LeadSubmission {
	return LeadSubmission{
		Category: CategoryEstimator,
		Type:     "hvac_load",
		Contact: models.Contact{
			Name:  "Jo",
			Email: "jo@example.com",
			Zip:   "60601",
		},
		Page:   models.PageContext{PagePath: "/estimator"},
		Fields: map[string]any{"sqft": 2200},
	}
}

func TestSubmit_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockLeadRepository)
	mockFwd := new(MockForwarder)
	log := logger.New("test")
	service := NewLeadService(mockRepo, mockFwd, testEndpoints(), log)

	ctx := context.Background()
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*models.Lead")).Return(nil)
	mockFwd.On("Forward", ctx, "https://leads.example.com/estimator", mock.AnythingOfType("*models.Lead")).Return(nil)
	mockRepo.On("MarkForwarded", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

	// Act
	lead, err := service.Submit(ctx, validSubmission())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.True(t, lead.Forwarded)
	assert.Equal(t, CategoryEstimator, lead.Category)
	assert.NotEqual(t, uuid.Nil, lead.ID)
	mockRepo.AssertExpectations(t)
	mockFwd.AssertExpectations(t)
}

func TestSubmit_UnknownCategory(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockFwd := new(MockForwarder)
	service := NewLeadService(mockRepo, mockFwd, testEndpoints(), logger.New("test"))

	sub := validSubmission()
	sub.Category = "newsletter"

	lead, err := service.Submit(context.Background(), sub)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Nil(t, lead)
	mockFwd.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_ValidationFailure(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockFwd := new(MockForwarder)
	service := NewLeadService(mockRepo, mockFwd, testEndpoints(), logger.New("test"))

	sub := validSubmission()
	sub.Contact.Email = "bad-email"

	lead, err := service.Submit(context.Background(), sub)

	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
	assert.Nil(t, lead)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockFwd.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_ZipRequiredOnlyForLocalizedCategories(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockFwd := new(MockForwarder)
	service := NewLeadService(mockRepo, mockFwd, testEndpoints(), logger.New("test"))
	ctx := context.Background()

	mockRepo.On("Insert", ctx, mock.AnythingOfType("*models.Lead")).Return(nil)
	mockFwd.On("Forward", ctx, mock.Anything, mock.AnythingOfType("*models.Lead")).Return(nil)
	mockRepo.On("MarkForwarded", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

	// Estimator without a ZIP is rejected.
	sub := validSubmission()
	sub.Contact.Zip = ""
	_, err := service.Submit(ctx, sub)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "zip")

	// The same contact is fine on the contact form.
	sub.Category = CategoryContact
	lead, err := service.Submit(ctx, sub)
	require.NoError(t, err)
	assert.True(t, lead.Forwarded)
}

func TestSubmit_EndpointNotConfigured(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockFwd := new(MockForwarder)
	endpoints := config.LeadsConfig{ContactPhone: "(555) 210-4411"}
	service := NewLeadService(mockRepo, mockFwd, endpoints, logger.New("test"))

	ctx := context.Background()
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*models.Lead")).Return(nil)

	lead, err := service.Submit(ctx, validSubmission())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEndpointNotConfigured)
	// The lead is still captured for the audit trail.
	require.NotNil(t, lead)
	assert.False(t, lead.Forwarded)
	mockFwd.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestSubmit_ForwardFailure(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockFwd := new(MockForwarder)
	service := NewLeadService(mockRepo, mockFwd, testEndpoints(), logger.New("test"))

	ctx := context.Background()
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*models.Lead")).Return(nil)
	mockFwd.On("Forward", ctx, mock.Anything, mock.AnythingOfType("*models.Lead")).Return(errors.New("status 500"))

	lead, err := service.Submit(ctx, validSubmission())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForwardFailed)
	require.NotNil(t, lead)
	assert.False(t, lead.Forwarded)
	mockRepo.AssertNotCalled(t, "MarkForwarded", mock.Anything, mock.Anything)
}

func TestSubmit_PersistenceFailureDoesNotBlockDelivery(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockFwd := new(MockForwarder)
	service := NewLeadService(mockRepo, mockFwd, testEndpoints(), logger.New("test"))

	ctx := context.Background()
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*models.Lead")).Return(errors.New("connection refused"))
	mockFwd.On("Forward", ctx, mock.Anything, mock.AnythingOfType("*models.Lead")).Return(nil)
	mockRepo.On("MarkForwarded", ctx, mock.AnythingOfType("uuid.UUID")).Return(errors.New("connection refused"))

	lead, err := service.Submit(ctx, validSubmission())

	require.NoError(t, err)
	assert.True(t, lead.Forwarded)
	mockFwd.AssertExpectations(t)
}

func TestSubmit_CalculatorFallsBackToContactEndpoint(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockFwd := new(MockForwarder)
	endpoints := config.LeadsConfig{
		ContactEndpoint: "https://leads.example.com/contact",
		ContactPhone:    "(555) 210-4411",
	}
	endpoints.CalculatorEndpoint = endpoints.ContactEndpoint
	service := NewLeadService(mockRepo, mockFwd, endpoints, logger.New("test"))

	ctx := context.Background()
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*models.Lead")).Return(nil)
	mockFwd.On("Forward", ctx, "https://leads.example.com/contact", mock.AnythingOfType("*models.Lead")).Return(nil)
	mockRepo.On("MarkForwarded", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

	sub := validSubmission()
	sub.Category = CategoryCalculator
	sub.Contact.Zip = ""

	_, err := service.Submit(ctx, sub)

	require.NoError(t, err)
	mockFwd.AssertExpectations(t)
}
