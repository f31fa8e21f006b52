package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/projuktisheba/stockledger-backend/internal/apperrors"
	"github.com/projuktisheba/stockledger-backend/internal/core/domain"
	portssvc "github.com/projuktisheba/stockledger-backend/internal/core/ports/services"
	"github.com/projuktisheba/stockledger-backend/internal/core/services"
	"github.com/projuktisheba/stockledger-backend/internal/dto"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInventoryRepository
	service  portssvc.InventorySvcFacade
	ctx      context.Context
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInventoryRepository)
	// A nil cache degrades to repository reads, which is what these tests
	// want to observe.
	suite.service = services.NewInventoryService(suite.mockRepo, nil)
	suite.ctx = context.Background()
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

func stockItem(productID string, qty int64) *domain.InventoryItem {
	return &domain.InventoryItem{
		ProductID:            productID,
		ItemName:             "Widget",
		StockQty:             qty,
		SalePrice:            decimal.NewFromInt(15),
		LastPurchasePrice:    decimal.NewFromInt(8),
		AveragePurchasePrice: decimal.NewFromInt(8),
	}
}

// --- Reads ---

func (suite *InventoryServiceTestSuite) TestGetItem_LoadsHistory() {
	receipts := []domain.StockReceipt{{ReceiptID: "r1", ProductID: "p1", Qty: 10}}
	issues := []domain.StockIssue{{IssueID: "i1", ProductID: "p1", Qty: 3}}

	suite.mockRepo.On("FindItemByProductID", suite.ctx, "p1").Return(stockItem("p1", 7), nil).Once()
	suite.mockRepo.On("ListReceipts", suite.ctx, "p1").Return(receipts, nil).Once()
	suite.mockRepo.On("ListIssues", suite.ctx, "p1").Return(issues, nil).Once()

	item, err := suite.service.GetItem(suite.ctx, "p1")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), item.PurchaseHistory, 1)
	assert.Len(suite.T(), item.SaleHistory, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestGetStockQty_FallsBackToRepository() {
	suite.mockRepo.On("FindItemByProductID", suite.ctx, "p1").Return(stockItem("p1", 42), nil).Once()

	qty, err := suite.service.GetStockQty(suite.ctx, "p1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), qty)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestGetStockQty_UnknownProduct() {
	suite.mockRepo.On("FindItemByProductID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetStockQty(suite.ctx, "missing")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

// --- UpdateItem ---

func (suite *InventoryServiceTestSuite) TestUpdateItem_EditsPriceAndReorderLevel() {
	tx := newFakeTx()
	newPrice := decimal.NewFromInt(20)
	newLevel := int64(5)

	suite.mockRepo.On("Begin", suite.ctx).Return(tx, nil).Once()
	suite.mockRepo.On("Rollback", suite.ctx, tx).Return(nil)
	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(stockItem("p1", 7), nil).Once()
	suite.mockRepo.On("UpdateItemInTx", suite.ctx, tx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.SalePrice.Equal(newPrice) && item.ReorderLevel == 5 && item.StockQty == 7
	})).Return(nil).Once()
	suite.mockRepo.On("Commit", suite.ctx, tx).Return(nil).Once()

	item, err := suite.service.UpdateItem(suite.ctx, "p1", dto.UpdateInventoryItemRequest{
		SalePrice:    &newPrice,
		ReorderLevel: &newLevel,
	}, "user-1")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), item.SalePrice.Equal(newPrice))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestUpdateItem_RejectsNegativeSalePrice() {
	tx := newFakeTx()
	bad := decimal.NewFromInt(-1)

	suite.mockRepo.On("Begin", suite.ctx).Return(tx, nil).Once()
	suite.mockRepo.On("Rollback", suite.ctx, tx).Return(nil)
	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(stockItem("p1", 7), nil).Once()

	_, err := suite.service.UpdateItem(suite.ctx, "p1", dto.UpdateInventoryItemRequest{SalePrice: &bad}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateItemInTx", mock.Anything, mock.Anything, mock.Anything)
}

// --- ReceiveStockInTx ---

func (suite *InventoryServiceTestSuite) TestReceiveStockInTx_CreatesItemOnFirstPurchase() {
	tx := newFakeTx()
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("CreateItemInTx", suite.ctx, tx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.ProductID == "p1" && item.ItemName == "Widget" && item.StockQty == 0
	})).Return(nil).Once()
	suite.mockRepo.On("AppendReceiptInTx", suite.ctx, tx, mock.MatchedBy(func(r domain.StockReceipt) bool {
		return r.ProductID == "p1" && r.InvoiceID == "inv-1" && r.Qty == 10 &&
			r.Subtotal.Equal(decimal.NewFromInt(80))
	})).Return(nil).Once()
	suite.mockRepo.On("ListReceiptsInTx", suite.ctx, tx, "p1").Return([]domain.StockReceipt{
		{Qty: 10, PurchasePrice: decimal.NewFromInt(8)},
	}, nil).Once()
	suite.mockRepo.On("UpdateItemInTx", suite.ctx, tx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.StockQty == 10 &&
			item.LastPurchasePrice.Equal(decimal.NewFromInt(8)) &&
			item.AveragePurchasePrice.Equal(decimal.NewFromInt(8))
	})).Return(nil).Once()

	err := suite.service.ReceiveStockInTx(suite.ctx, tx, portssvc.ReceiveStockParams{
		ProductID:     "p1",
		ItemName:      "Widget",
		InvoiceID:     "inv-1",
		Qty:           10,
		PurchasePrice: decimal.NewFromInt(8),
		Date:          date,
	}, "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestReceiveStockInTx_RecomputesWeightedAverage() {
	tx := newFakeTx()

	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(stockItem("p1", 10), nil).Once()
	suite.mockRepo.On("AppendReceiptInTx", suite.ctx, tx, mock.AnythingOfType("domain.StockReceipt")).Return(nil).Once()
	suite.mockRepo.On("ListReceiptsInTx", suite.ctx, tx, "p1").Return([]domain.StockReceipt{
		{Qty: 10, PurchasePrice: decimal.NewFromInt(8)},
		{Qty: 5, PurchasePrice: decimal.NewFromInt(12)},
	}, nil).Once()
	// (10*8 + 5*12) / 15 = 9.3333
	suite.mockRepo.On("UpdateItemInTx", suite.ctx, tx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.StockQty == 15 &&
			item.LastPurchasePrice.Equal(decimal.NewFromInt(12)) &&
			item.AveragePurchasePrice.Equal(decimal.RequireFromString("9.3333"))
	})).Return(nil).Once()

	err := suite.service.ReceiveStockInTx(suite.ctx, tx, portssvc.ReceiveStockParams{
		ProductID:     "p1",
		ItemName:      "Widget",
		InvoiceID:     "inv-2",
		Qty:           5,
		PurchasePrice: decimal.NewFromInt(12),
	}, "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestReceiveStockInTx_RejectsNonPositiveQty() {
	tx := newFakeTx()

	err := suite.service.ReceiveStockInTx(suite.ctx, tx, portssvc.ReceiveStockParams{
		ProductID: "p1",
		Qty:       0,
	}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendReceiptInTx", mock.Anything, mock.Anything, mock.Anything)
}

// A zero-cost receipt would drag the weighted average down without any money
// moving, so the unit cost must be strictly positive.
func (suite *InventoryServiceTestSuite) TestReceiveStockInTx_RejectsZeroCost() {
	tx := newFakeTx()

	err := suite.service.ReceiveStockInTx(suite.ctx, tx, portssvc.ReceiveStockParams{
		ProductID:     "p1",
		Qty:           10,
		PurchasePrice: decimal.Zero,
	}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindItemForUpdate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendReceiptInTx", mock.Anything, mock.Anything, mock.Anything)
}

// --- IssueStockInTx ---

func (suite *InventoryServiceTestSuite) TestIssueStockInTx_DeductsStock() {
	tx := newFakeTx()

	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(stockItem("p1", 10), nil).Once()
	suite.mockRepo.On("AppendIssueInTx", suite.ctx, tx, mock.MatchedBy(func(iss domain.StockIssue) bool {
		return iss.MemoID == "memo-1" && iss.Qty == 4 && iss.Subtotal.Equal(decimal.NewFromInt(60))
	})).Return(nil).Once()
	suite.mockRepo.On("UpdateItemInTx", suite.ctx, tx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.StockQty == 6
	})).Return(nil).Once()

	err := suite.service.IssueStockInTx(suite.ctx, tx, portssvc.IssueStockParams{
		ProductID: "p1",
		MemoID:    "memo-1",
		Qty:       4,
		Price:     decimal.NewFromInt(15),
	}, "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestIssueStockInTx_InsufficientStock() {
	tx := newFakeTx()

	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(stockItem("p1", 3), nil).Once()

	err := suite.service.IssueStockInTx(suite.ctx, tx, portssvc.IssueStockParams{
		ProductID: "p1",
		MemoID:    "memo-1",
		Qty:       5,
		Price:     decimal.NewFromInt(15),
	}, "user-1")

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientStock)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendIssueInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateItemInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestIssueStockInTx_AllowNegativeOverdraws() {
	tx := newFakeTx()

	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(stockItem("p1", 3), nil).Once()
	suite.mockRepo.On("AppendIssueInTx", suite.ctx, tx, mock.AnythingOfType("domain.StockIssue")).Return(nil).Once()
	suite.mockRepo.On("UpdateItemInTx", suite.ctx, tx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.StockQty == -2
	})).Return(nil).Once()

	err := suite.service.IssueStockInTx(suite.ctx, tx, portssvc.IssueStockParams{
		ProductID:     "p1",
		MemoID:        "memo-1",
		Qty:           5,
		Price:         decimal.NewFromInt(15),
		AllowNegative: true,
	}, "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Reversals ---

func (suite *InventoryServiceTestSuite) TestReverseReceiveInTx_RestoresPriorCostFigures() {
	tx := newFakeTx()
	item := stockItem("p1", 15)
	item.LastPurchasePrice = decimal.NewFromInt(12)

	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(item, nil).Once()
	suite.mockRepo.On("DeleteReceiptsByInvoiceInTx", suite.ctx, tx, "p1", "inv-2").Return([]domain.StockReceipt{
		{Qty: 5, PurchasePrice: decimal.NewFromInt(12)},
	}, nil).Once()
	suite.mockRepo.On("ListReceiptsInTx", suite.ctx, tx, "p1").Return([]domain.StockReceipt{
		{Qty: 10, PurchasePrice: decimal.NewFromInt(8)},
	}, nil).Once()
	suite.mockRepo.On("UpdateItemInTx", suite.ctx, tx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.StockQty == 10 &&
			item.LastPurchasePrice.Equal(decimal.NewFromInt(8)) &&
			item.AveragePurchasePrice.Equal(decimal.NewFromInt(8))
	})).Return(nil).Once()

	err := suite.service.ReverseReceiveInTx(suite.ctx, tx, "p1", "inv-2", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestReverseReceiveInTx_LastReceiptZeroesCost() {
	tx := newFakeTx()

	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(stockItem("p1", 10), nil).Once()
	suite.mockRepo.On("DeleteReceiptsByInvoiceInTx", suite.ctx, tx, "p1", "inv-1").Return([]domain.StockReceipt{
		{Qty: 10, PurchasePrice: decimal.NewFromInt(8)},
	}, nil).Once()
	suite.mockRepo.On("ListReceiptsInTx", suite.ctx, tx, "p1").Return([]domain.StockReceipt{}, nil).Once()
	suite.mockRepo.On("UpdateItemInTx", suite.ctx, tx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.StockQty == 0 &&
			item.LastPurchasePrice.IsZero() &&
			item.AveragePurchasePrice.IsZero()
	})).Return(nil).Once()

	err := suite.service.ReverseReceiveInTx(suite.ctx, tx, "p1", "inv-1", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestReverseReceiveInTx_NoReceiptsIsNoop() {
	tx := newFakeTx()

	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(stockItem("p1", 10), nil).Once()
	suite.mockRepo.On("DeleteReceiptsByInvoiceInTx", suite.ctx, tx, "p1", "inv-x").Return([]domain.StockReceipt{}, nil).Once()

	err := suite.service.ReverseReceiveInTx(suite.ctx, tx, "p1", "inv-x", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateItemInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestReverseIssueInTx_RestoresQuantity() {
	tx := newFakeTx()

	suite.mockRepo.On("FindItemForUpdate", suite.ctx, tx, "p1").Return(stockItem("p1", 6), nil).Once()
	suite.mockRepo.On("DeleteIssuesByMemoInTx", suite.ctx, tx, "p1", "memo-1").Return([]domain.StockIssue{
		{Qty: 4, Price: decimal.NewFromInt(15)},
	}, nil).Once()
	suite.mockRepo.On("UpdateItemInTx", suite.ctx, tx, mock.MatchedBy(func(item domain.InventoryItem) bool {
		return item.StockQty == 10
	})).Return(nil).Once()

	err := suite.service.ReverseIssueInTx(suite.ctx, tx, "p1", "memo-1", "user-1")

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- WeightedAverageCost ---

func TestWeightedAverageCost(t *testing.T) {
	receipts := []domain.StockReceipt{
		{Qty: 3, PurchasePrice: decimal.NewFromInt(10)},
		{Qty: 7, PurchasePrice: decimal.NewFromInt(20)},
	}
	// (30 + 140) / 10 = 17
	assert.True(t, domain.WeightedAverageCost(receipts).Equal(decimal.NewFromInt(17)))

	assert.True(t, domain.WeightedAverageCost(nil).IsZero())
	assert.True(t, domain.WeightedAverageCost([]domain.StockReceipt{}).IsZero())

	equalSplit := []domain.StockReceipt{
		{Qty: 10, PurchasePrice: decimal.NewFromInt(5)},
		{Qty: 10, PurchasePrice: decimal.NewFromInt(15)},
	}
	assert.True(t, domain.WeightedAverageCost(equalSplit).Equal(decimal.NewFromInt(10)))

	uneven := []domain.StockReceipt{
		{Qty: 3, PurchasePrice: decimal.NewFromInt(10)},
		{Qty: 4, PurchasePrice: decimal.NewFromInt(11)},
	}
	// 74 / 7 = 10.5714...
	assert.True(t, domain.WeightedAverageCost(uneven).Equal(decimal.RequireFromString("10.5714")))
}
