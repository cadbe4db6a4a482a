package services_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/hossamSharif/shop_ledger/internal/apperrors"
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	portssvc "github.com/hossamSharif/shop_ledger/internal/core/ports/services"
	"github.com/hossamSharif/shop_ledger/internal/core/services"
	"github.com/hossamSharif/shop_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ShopServiceTestSuite struct {
	suite.Suite
	shopRepo   *MockShopRepository
	authorizer *MockAuthorizer
	activity   *recordingActivity
	cache      *countingCache
	service    portssvc.ShopSvcFacade
}

func (suite *ShopServiceTestSuite) SetupTest() {
	suite.shopRepo = new(MockShopRepository)
	suite.authorizer = new(MockAuthorizer)
	suite.activity = &recordingActivity{}
	suite.cache = &countingCache{}
	suite.service = services.NewShopService(suite.shopRepo,
		services.WithShopAuthorizer(suite.authorizer),
		services.WithShopActivity(suite.activity),
		services.WithShopCache(suite.cache),
	)
}

func TestShopServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShopServiceTestSuite))
}

func (suite *ShopServiceTestSuite) TestCreateShop_WithDefaults() {
	ctx := context.Background()
	var savedAccounts []domain.Account
	var savedYear domain.FinancialYear
	suite.authorizer.On("AuthorizeAdmin", ctx, "admin").Return(nil).Once()
	suite.shopRepo.On("CreateShopWithDefaults", ctx, mock.AnythingOfType("domain.Shop"), mock.AnythingOfType("[]domain.Account"), mock.AnythingOfType("domain.FinancialYear")).
		Run(func(args mock.Arguments) {
			savedAccounts = args.Get(2).([]domain.Account)
			savedYear = args.Get(3).(domain.FinancialYear)
		}).Return(nil).Once()

	shop, err := suite.service.CreateShop(ctx, dto.CreateShopRequest{
		Name:              " محل الوسط ",
		NameEn:            "Downtown",
		Code:              "dt-01",
		OpeningStockValue: dec("500"),
	}, "admin")

	suite.Require().NoError(err)
	suite.Equal("محل الوسط", shop.Name)
	suite.Equal("DT-01", shop.Code)
	suite.True(shop.IsActive)

	suite.Len(savedAccounts, 21)
	byID := map[string]domain.Account{}
	codes := map[string]bool{}
	for _, acc := range savedAccounts {
		suite.Equal(shop.ShopID, acc.ShopID)
		suite.NotEmpty(acc.Name)
		suite.NotEmpty(acc.NameEn)
		byID[acc.AccountID] = acc
		codes[acc.Code] = true
	}
	suite.Len(codes, 21, "codes are unique")
	for _, acc := range savedAccounts {
		if acc.IsMain() {
			continue
		}
		parent, ok := byID[acc.ParentID]
		suite.Require().True(ok, acc.Code)
		suite.True(parent.IsMain())
		suite.Equal(parent.Classification, acc.Classification)
		suite.Equal(parent.Nature, acc.Nature)
	}

	year := time.Now().UTC().Year()
	suite.Equal(shop.ShopID, savedYear.ShopID)
	suite.Equal(strconv.Itoa(year), savedYear.Name)
	suite.Equal(domain.YearOpen, savedYear.Status)
	suite.Equal(time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), savedYear.StartDate)
	suite.Equal(time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC), savedYear.EndDate)
	suite.True(savedYear.OpeningStockValue.Equal(dec("500")))

	suite.Require().Len(suite.activity.entries, 1)
	suite.Contains(suite.activity.entries[0].MessageEn, "Downtown")
	suite.shopRepo.AssertExpectations(suite.T())
}

func (suite *ShopServiceTestSuite) TestCreateShop_CustomFirstYear() {
	ctx := context.Background()
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	suite.authorizer.On("AuthorizeAdmin", ctx, "admin").Return(nil).Once()
	suite.shopRepo.On("CreateShopWithDefaults", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(y domain.FinancialYear) bool {
		return y.Name == "2024" && y.StartDate.Equal(start) && y.EndDate.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	_, err := suite.service.CreateShop(ctx, dto.CreateShopRequest{Name: "A", Code: "A1", FirstYearStart: &start}, "admin")

	suite.Require().NoError(err)
	suite.shopRepo.AssertExpectations(suite.T())
}

func (suite *ShopServiceTestSuite) TestCreateShop_RequiresAdmin() {
	ctx := context.Background()
	suite.authorizer.On("AuthorizeAdmin", ctx, "clerk").Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateShop(ctx, dto.CreateShopRequest{Name: "A", Code: "A1"}, "clerk")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.shopRepo.AssertNotCalled(suite.T(), "CreateShopWithDefaults", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShopServiceTestSuite) TestCreateShop_DuplicateCode() {
	ctx := context.Background()
	suite.authorizer.On("AuthorizeAdmin", ctx, "admin").Return(nil).Once()
	suite.shopRepo.On("CreateShopWithDefaults", ctx, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateShop(ctx, dto.CreateShopRequest{Name: "A", Code: "A1"}, "admin")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Empty(suite.activity.entries)
}

func (suite *ShopServiceTestSuite) TestListShops_FiltersToAccessible() {
	ctx := context.Background()
	shops := []domain.Shop{{ShopID: "s1"}, {ShopID: "s2"}, {ShopID: "s3"}}
	suite.authorizer.On("AccessibleShopIDs", ctx, "clerk").Return([]string{"s2"}, nil).Once()
	suite.shopRepo.On("ListShops", ctx, true).Return(shops, nil).Once()

	got, err := suite.service.ListShops(ctx, "clerk", false)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal("s2", got[0].ShopID)
}

func (suite *ShopServiceTestSuite) TestListShops_AdminSeesAll() {
	ctx := context.Background()
	suite.authorizer.On("AccessibleShopIDs", ctx, "admin").Return(nil, nil).Once()
	suite.shopRepo.On("ListShops", ctx, false).Return([]domain.Shop{{ShopID: "s1"}, {ShopID: "s2"}}, nil).Once()

	got, err := suite.service.ListShops(ctx, "admin", true)

	suite.Require().NoError(err)
	suite.Len(got, 2)
}

func (suite *ShopServiceTestSuite) TestUpdateShop() {
	ctx := context.Background()
	name := "New Name"
	suite.authorizer.On("AuthorizeAdmin", ctx, "admin").Return(nil).Once()
	suite.shopRepo.On("FindShopByID", ctx, "s1").Return(&domain.Shop{ShopID: "s1", Name: "Old"}, nil).Once()
	suite.shopRepo.On("UpdateShop", ctx, mock.MatchedBy(func(s domain.Shop) bool { return s.NameEn == name })).Return(nil).Once()

	shop, err := suite.service.UpdateShop(ctx, "s1", dto.UpdateShopRequest{NameEn: &name}, "admin")

	suite.Require().NoError(err)
	suite.Equal("admin", shop.LastUpdatedBy)
	suite.Equal(1, suite.cache.invalidated["s1"])
	suite.shopRepo.AssertExpectations(suite.T())
}

func (suite *ShopServiceTestSuite) TestDeactivateShop() {
	ctx := context.Background()
	suite.authorizer.On("AuthorizeAdmin", ctx, "admin").Return(nil).Once()
	suite.shopRepo.On("DeactivateShop", ctx, "s1", "admin", mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.service.DeactivateShop(ctx, "s1", "admin"))
	suite.Equal(1, suite.cache.invalidated["s1"])
	suite.Len(suite.activity.entries, 1)
}
