package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wealthpilot/ledger/internal/apperrors"
	"github.com/wealthpilot/ledger/internal/core/domain"
	portsrepo "github.com/wealthpilot/ledger/internal/core/ports/repositories"
	portssvc "github.com/wealthpilot/ledger/internal/core/ports/services"
	"github.com/wealthpilot/ledger/internal/core/services"
	"github.com/wealthpilot/ledger/internal/dto"
)

// --- Mock JournalRepositoryFacade ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByClientRef(ctx context.Context, ownerID string, clientRef string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, ownerID, clientRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, ownerID, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, lines, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, ownerID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, ownerID, accountID, limit, nextToken)
	var lines []domain.JournalLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.JournalLine)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return lines, token, args.Error(2)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, ownerID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, ownerID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, ownerID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, ownerID string, accountID string) error {
	args := m.Called(ctx, ownerID, accountID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountSvc   *MockAccountService
	mockAuditSvc     *MockAuditService
	service          portssvc.JournalService
	assetAccount     domain.Account
	liabilityAccount domain.Account
	revenueAccount   domain.Account
	ownerID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockAuditSvc = new(MockAuditService)
	suite.mockAuditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditLog")).Return(nil).Maybe()
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockAuditSvc)

	suite.ownerID = uuid.NewString()

	suite.assetAccount = domain.Account{
		AccountID:   uuid.NewString(),
		OwnerID:     suite.ownerID,
		Code:        "1000-CASH",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:   uuid.NewString(),
		OwnerID:     suite.ownerID,
		Code:        "2000-LOAN",
		AccountType: domain.Liability,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		OwnerID:     suite.ownerID,
		Code:        "4000-REVENUE",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Borrow cash",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:     suite.assetAccount,
		suite.liabilityAccount.AccountID: suite.liabilityAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.ownerID, []string{suite.assetAccount.AccountID, suite.liabilityAccount.AccountID}).Return(accountsMap, nil).Once()

	// Debit on asset raises its balance, credit on liability raises its balance.
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			return len(changes) == 2 &&
				changes[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(100)) &&
				changes[suite.liabilityAccount.AccountID].Equal(decimal.NewFromInt(100))
		})).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.JournalID)
	suite.Equal(suite.ownerID, entry.OwnerID)
	suite.Equal(domain.Posted, entry.Status)
	suite.True(entry.Amount.Equal(decimal.NewFromInt(100)), "journal amount should equal the debit side")
	suite.Len(entry.Lines, 2)
	suite.False(entry.PostedAt.IsZero())

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// The order lines arrive in is the order the entry displays in, so posting
// must number them as supplied rather than reordering by generated ID.
func (suite *JournalServiceTestSuite) TestCreateJournalEntry_PreservesLineOrder() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Invoice with split settlement",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit},
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(60), Direction: domain.Debit},
			{AccountID: suite.liabilityAccount.AccountID, Amount: decimal.NewFromInt(40), Direction: domain.Debit},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.revenueAccount.AccountID:   suite.revenueAccount,
		suite.assetAccount.AccountID:     suite.assetAccount,
		suite.liabilityAccount.AccountID: suite.liabilityAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.ownerID, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.JournalEntry"),
		mock.MatchedBy(func(lines []domain.JournalLine) bool {
			if len(lines) != 3 {
				return false
			}
			for i, line := range lines {
				if line.LineNumber != i+1 || line.AccountID != req.Lines[i].AccountID {
					return false
				}
			}
			return true
		}), mock.AnythingOfType("map[string]decimal.Decimal")).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().Len(entry.Lines, 3)
	suite.Equal(suite.revenueAccount.AccountID, entry.Lines[0].AccountID)
	suite.Equal(suite.assetAccount.AccountID, entry.Lines[1].AccountID)
	suite.Equal(suite.liabilityAccount.AccountID, entry.Lines[2].AccountID)
	suite.Equal(1, entry.Lines[0].LineNumber)
	suite.Equal(3, entry.Lines[2].LineNumber)

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Unbalanced entry",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(99), Direction: domain.Credit},
		},
	}

	_, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "debits must equal credits")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_LessThanTwoLines() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "One-legged entry",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
		},
	}

	_, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_SingleAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Self transfer",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(50), Direction: domain.Debit},
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(50), Direction: domain.Credit},
		},
	}

	_, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_MissingDescription() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
	}

	_, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Zero amount line",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.Zero, Direction: domain.Credit},
		},
	}

	_, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnknownAccount() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Posting against a ghost account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
	}

	// Only the asset account resolves; the revenue account is missing.
	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID: suite.assetAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.ownerID, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.revenueAccount
	inactive.IsActive = false

	req := dto.CreateJournalEntryRequest{
		Description: "Posting against a deactivated account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: inactive.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID: suite.assetAccount,
		inactive.AccountID:           inactive,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.ownerID, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_ClientRefReplay() {
	ctx := context.Background()
	clientRef := "invoice-42"
	existing := &domain.JournalEntry{
		JournalID:   uuid.NewString(),
		OwnerID:     suite.ownerID,
		Description: "Original posting",
		ClientRef:   &clientRef,
		Status:      domain.Posted,
		PostedAt:    time.Now().UTC(),
		Amount:      decimal.NewFromInt(100),
	}
	existingLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: existing.JournalID, AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
		{LineID: uuid.NewString(), JournalID: existing.JournalID, AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit},
	}

	suite.mockJournalRepo.On("FindJournalByClientRef", ctx, suite.ownerID, clientRef).Return(existing, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, existing.JournalID).Return(existingLines, nil).Once()

	req := dto.CreateJournalEntryRequest{
		Description: "Retried posting",
		ClientRef:   &clientRef,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(100), Direction: domain.Credit},
		},
	}

	entry, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(existing.JournalID, entry.JournalID)
	suite.Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_ClientRefRace() {
	ctx := context.Background()
	clientRef := "payment-7"
	winner := &domain.JournalEntry{
		JournalID:   uuid.NewString(),
		OwnerID:     suite.ownerID,
		Description: "Winner posting",
		ClientRef:   &clientRef,
		Status:      domain.Posted,
		PostedAt:    time.Now().UTC(),
		Amount:      decimal.NewFromInt(250),
	}
	winnerLines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: winner.JournalID, AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(250), Direction: domain.Debit},
		{LineID: uuid.NewString(), JournalID: winner.JournalID, AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(250), Direction: domain.Credit},
	}

	// The pre-check sees nothing, the insert loses the unique-index race, the
	// second lookup finds the winner.
	suite.mockJournalRepo.On("FindJournalByClientRef", ctx, suite.ownerID, clientRef).Return(nil, apperrors.ErrNotFound).Once()
	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:   suite.assetAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.ownerID, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(apperrors.ErrDuplicate).Once()
	suite.mockJournalRepo.On("FindJournalByClientRef", ctx, suite.ownerID, clientRef).Return(winner, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, winner.JournalID).Return(winnerLines, nil).Once()

	req := dto.CreateJournalEntryRequest{
		Description: "Loser posting",
		ClientRef:   &clientRef,
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Amount: decimal.NewFromInt(250), Direction: domain.Debit},
			{AccountID: suite.revenueAccount.AccountID, Amount: decimal.NewFromInt(250), Direction: domain.Credit},
		},
	}

	entry, err := suite.service.CreateJournalEntry(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(winner.JournalID, entry.JournalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetJournalEntryByID_WrongOwner() {
	ctx := context.Background()
	foreign := &domain.JournalEntry{
		JournalID: uuid.NewString(),
		OwnerID:   uuid.NewString(), // Different owner
		Status:    domain.Posted,
	}
	suite.mockJournalRepo.On("FindJournalByID", ctx, foreign.JournalID).Return(foreign, nil).Once()

	_, err := suite.service.GetJournalEntryByID(ctx, suite.ownerID, foreign.JournalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByJournalID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_DefaultsLimit() {
	ctx := context.Background()
	token := "next-page"
	entries := []domain.JournalEntry{
		{JournalID: uuid.NewString(), OwnerID: suite.ownerID, Status: domain.Posted, Amount: decimal.NewFromInt(10)},
	}
	suite.mockJournalRepo.On("ListJournalsByOwner", ctx, suite.ownerID, 20, (*string)(nil)).Return(entries, &token, nil).Once()

	resp, err := suite.service.ListJournalEntries(ctx, suite.ownerID, dto.ListJournalEntriesParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
