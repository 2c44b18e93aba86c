package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/domain"
	portssvc "github.com/kaarlosasiang/accounting-software-sub000/internal/core/ports/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/core/services"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/dto"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/handlers"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/middleware"
	"github.com/kaarlosasiang/accounting-software-sub000/internal/platform/config"
)

// --- Mock JournalService ---

type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, companyID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) UpdateEntry(ctx context.Context, companyID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) VoidEntry(ctx context.Context, companyID, entryID, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, companyID, entryID, userID string) error {
	args := m.Called(ctx, companyID, entryID, userID)
	return args.Error(0)
}

func (m *MockJournalService) CreateAndPost(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Test Suite ---

type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	jwtSecret          string

	companyID string
	userID    string
}

func (suite *JournalHandlerTestSuite) generateTestToken(userID, companyID string) string {
	claims := middleware.BookkeepingClaims{
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "bookkeeper-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockJournalService = new(MockJournalService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Journal: suite.mockJournalService,
	})
}

func TestJournalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}

func (suite *JournalHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID, suite.companyID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *JournalHandlerTestSuite) sampleEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		EntryNumber: "JE-2024-001",
		EntryDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		EntryType:   domain.Manual,
		Status:      domain.Draft,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), AccountID: uuid.NewString(), AccountCode: "1000", AccountName: "Cash", Debit: decimal.RequireFromString("500.00")},
			{LineID: uuid.NewString(), AccountID: uuid.NewString(), AccountCode: "4000", AccountName: "Sales Revenue", Credit: decimal.RequireFromString("500.00")},
		},
		TotalDebit:  decimal.RequireFromString("500.00"),
		TotalCredit: decimal.RequireFromString("500.00"),
	}
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Success() {
	entry := suite.sampleEntry()
	body := dto.CreateJournalEntryRequest{
		EntryDate:   entry.EntryDate,
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: entry.Lines[0].AccountID, Debit: decimal.RequireFromString("500.00")},
			{AccountID: entry.Lines[1].AccountID, Credit: decimal.RequireFromString("500.00")},
		},
	}

	suite.mockJournalService.On("CreateEntry",
		mock.Anything, suite.companyID, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Return(entry, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.Equal("JE-2024-001", resp.EntryNumber)
	suite.Equal(string(domain.Draft), resp.Status)
	suite.Len(resp.Lines, 2)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_UnbalancedReturns400() {
	body := dto.CreateJournalEntryRequest{
		EntryDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []dto.JournalLineRequest{
			{AccountID: uuid.NewString(), Debit: decimal.RequireFromString("500.00")},
			{AccountID: uuid.NewString(), Credit: decimal.RequireFromString("400.00")},
		},
	}
	suite.mockJournalService.On("CreateEntry",
		mock.Anything, suite.companyID, mock.AnythingOfType("dto.CreateJournalEntryRequest"), suite.userID).
		Return(nil, services.ErrEntryNotBalanced).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_RequiresToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestPostEntry_ConflictWhenNotDraft() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("PostEntry", mock.Anything, suite.companyID, entryID, suite.userID).
		Return(nil, services.ErrOnlyDraftPostable).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries/"+entryID+"/post", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestVoidEntry_Success() {
	entry := suite.sampleEntry()
	now := time.Now().UTC()
	entry.Status = domain.Void
	entry.VoidedBy = suite.userID
	entry.VoidedAt = &now

	suite.mockJournalService.On("VoidEntry", mock.Anything, suite.companyID, entry.EntryID, suite.userID).
		Return(entry, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries/"+entry.EntryID+"/void", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.Void), resp.Status)
	suite.Equal(suite.userID, resp.VoidedBy)
}

func (suite *JournalHandlerTestSuite) TestListEntries_FilterPassthrough() {
	suite.mockJournalService.On("ListEntries", mock.Anything, suite.companyID,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.Status != nil && *p.Status == domain.Posted &&
				p.StartDate != nil && p.EndDate != nil
		})).Return([]domain.JournalEntry{*suite.sampleEntry()}, nil).Once()

	w := suite.doRequest(http.MethodGet,
		"/api/v1/journal-entries?status=POSTED&startDate=2024-01-01&endDate=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestListEntries_BadDateReturns400() {
	w := suite.doRequest(http.MethodGet, "/api/v1/journal-entries?startDate=March-1", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ListEntries",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry_NoContent() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("DeleteEntry", mock.Anything, suite.companyID, entryID, suite.userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/journal-entries/"+entryID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}
