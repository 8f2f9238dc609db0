package entitlement_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub003/pkg/entitlement"
)

func testMatrix(t *testing.T) *entitlement.Matrix {
	t.Helper()
	matrix, err := entitlement.NewMatrix(entitlement.MatrixConfig{
		Tiers: map[entitlement.Tier]entitlement.TierSpec{
			entitlement.TierFree: {
				Limits: map[entitlement.Resource]int64{entitlement.ResourceUsers: 2},
			},
			entitlement.TierStarter: {
				Features: []entitlement.Feature{entitlement.FeatureMultiCurrency},
				Limits:   map[entitlement.Resource]int64{entitlement.ResourceUsers: 10},
			},
			entitlement.TierPro: {
				Features: []entitlement.Feature{entitlement.FeatureMultiCurrency, entitlement.FeatureAIInsights},
				Limits:   map[entitlement.Resource]int64{entitlement.ResourceUsers: entitlement.Unlimited},
			},
		},
		Modules: map[entitlement.ModuleID]map[entitlement.Tier]entitlement.ModuleGrant{
			"hrms": {
				entitlement.TierFree:    {Access: entitlement.AccessLocked},
				entitlement.TierStarter: {Access: entitlement.AccessIncluded},
				entitlement.TierPro:     {Access: entitlement.AccessIncluded},
			},
			"clinic": {
				entitlement.TierFree:    {Access: entitlement.AccessLocked},
				entitlement.TierStarter: {Access: entitlement.AccessLocked, PriceUSD: 2500},
				entitlement.TierPro:     {Access: entitlement.AccessIncluded},
			},
			// purchasable at every tier, included at none
			"furniture_manufacturing": {
				entitlement.TierFree:    {Access: entitlement.AccessAddon, PriceUSD: 1500},
				entitlement.TierStarter: {Access: entitlement.AccessAddon, PriceUSD: 1500},
				entitlement.TierPro:     {Access: entitlement.AccessAddon, PriceUSD: 1500},
			},
		},
	})
	require.NoError(t, err)
	return matrix
}

func testPricing() entitlement.PricingTable {
	return entitlement.PricingTable{
		"IN": {CountryCode: "IN", Currency: "INR", TaxName: "GST", TaxRate: 0.18, ExchangeRate: 83},
		"UK": {CountryCode: "UK", Currency: "GBP", TaxName: "VAT", TaxRate: 0.20, ExchangeRate: 0.79},
		"US": {CountryCode: "US", Currency: "USD", TaxName: "Sales Tax", NexusDependent: true, ExchangeRate: 1},
	}
}

func newTestService(t *testing.T) *entitlement.Service {
	t.Helper()
	return entitlement.NewService(testMatrix(t), testPricing())
}

func TestService_CheckModuleAccess(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	starter := entitlement.TierStarter
	pro := entitlement.TierPro

	activeTrial := time.Now().UTC().Add(48 * time.Hour)
	expiredTrial := time.Now().UTC().Add(-time.Hour)

	tests := []struct {
		name   string
		tenant entitlement.Tenant
		module entitlement.ModuleID
		want   entitlement.Result
	}{
		{
			name:   "included at tier",
			tenant: entitlement.Tenant{ID: uuid.New(), Tier: starter, CountryCode: "IN"},
			module: "hrms",
			want:   entitlement.Result{Allowed: true, Access: entitlement.AccessIncluded, Reason: entitlement.ReasonIncluded},
		},
		{
			name:   "locked without grant carries upgrade tier",
			tenant: entitlement.Tenant{ID: uuid.New(), Tier: starter, CountryCode: "IN"},
			module: "clinic",
			want: entitlement.Result{
				Allowed: false, Access: entitlement.AccessLocked,
				UpgradeTier: &pro, Reason: entitlement.ReasonUpgradeRequired,
			},
		},
		{
			name: "locked with active grant allows regardless of tier",
			tenant: entitlement.Tenant{
				ID: uuid.New(), Tier: entitlement.TierFree, CountryCode: "IN",
				Addons: []entitlement.Addon{{AddonID: "clinic", CountryCode: "IN", Active: true}},
			},
			module: "clinic",
			want:   entitlement.Result{Allowed: true, Access: entitlement.AccessAddon, Reason: entitlement.ReasonAddonActive},
		},
		{
			name: "grant for another country does not apply",
			tenant: entitlement.Tenant{
				ID: uuid.New(), Tier: starter, CountryCode: "IN",
				Addons: []entitlement.Addon{{AddonID: "clinic", CountryCode: "UK", Active: true}},
			},
			module: "clinic",
			want: entitlement.Result{
				Allowed: false, Access: entitlement.AccessLocked,
				UpgradeTier: &pro, Reason: entitlement.ReasonUpgradeRequired,
			},
		},
		{
			name: "revoked grant does not apply",
			tenant: entitlement.Tenant{
				ID: uuid.New(), Tier: starter, CountryCode: "IN",
				Addons: []entitlement.Addon{{AddonID: "clinic", CountryCode: "IN", Active: false}},
			},
			module: "clinic",
			want: entitlement.Result{
				Allowed: false, Access: entitlement.AccessLocked,
				UpgradeTier: &pro, Reason: entitlement.ReasonUpgradeRequired,
			},
		},
		{
			name: "trial grant within window allows",
			tenant: entitlement.Tenant{
				ID: uuid.New(), Tier: starter, CountryCode: "IN",
				Addons: []entitlement.Addon{{AddonID: "clinic", CountryCode: "IN", Active: true, TrialEndsAt: &activeTrial}},
			},
			module: "clinic",
			want:   entitlement.Result{Allowed: true, Access: entitlement.AccessAddon, Reason: entitlement.ReasonAddonActive},
		},
		{
			name: "expired trial grant denies",
			tenant: entitlement.Tenant{
				ID: uuid.New(), Tier: starter, CountryCode: "IN",
				Addons: []entitlement.Addon{{AddonID: "clinic", CountryCode: "IN", Active: true, TrialEndsAt: &expiredTrial}},
			},
			module: "clinic",
			want: entitlement.Result{
				Allowed: false, Access: entitlement.AccessLocked,
				UpgradeTier: &pro, Reason: entitlement.ReasonUpgradeRequired,
			},
		},
		{
			name:   "addon priced module with no grant and no including tier",
			tenant: entitlement.Tenant{ID: uuid.New(), Tier: starter, CountryCode: "IN"},
			module: "furniture_manufacturing",
			want: entitlement.Result{
				Allowed: false, Access: entitlement.AccessAddon,
				UpgradeTier: nil, Reason: entitlement.ReasonAddonAvailable,
			},
		},
		{
			name:   "unknown module is not offered",
			tenant: entitlement.Tenant{ID: uuid.New(), Tier: pro, CountryCode: "IN"},
			module: "spaceport",
			want: entitlement.Result{
				Allowed: false, Access: entitlement.AccessLocked,
				UpgradeTier: nil, Reason: entitlement.ReasonNotOffered,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := svc.CheckModuleAccess(tt.tenant, tt.module)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CheckModuleAccess_UnknownTier(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	_, err := svc.CheckModuleAccess(entitlement.Tenant{
		ID: uuid.New(), Tier: entitlement.Tier("platinum"), CountryCode: "IN",
	}, "hrms")
	assert.True(t, errors.Is(err, entitlement.ErrUnknownTier))
}

// Whenever a check denies and some tier includes the module, the result
// must name the lowest such tier so the client can render the upgrade
// prompt without a second lookup.
func TestService_UpgradeTierIsLowestIncluding(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	res, err := svc.CheckModuleAccess(entitlement.Tenant{
		ID: uuid.New(), Tier: entitlement.TierFree, CountryCode: "IN",
	}, "hrms")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	require.NotNil(t, res.UpgradeTier)
	assert.Equal(t, entitlement.TierStarter, *res.UpgradeTier)
}

func TestService_PriceOf(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	t.Run("tax applied per country config", func(t *testing.T) {
		t.Parallel()
		quote, err := svc.PriceOf("furniture_manufacturing", entitlement.TierStarter, "IN")
		require.NoError(t, err)

		// $15.00 * 83 INR/USD = INR 1245.00, GST 18% on top
		assert.Equal(t, entitlement.Money{Amount: 124500, Currency: "INR"}, quote.Subtotal)
		assert.Equal(t, "GST", quote.TaxName)
		assert.InDelta(t, 0.18, quote.TaxRate, 1e-9)
		assert.Equal(t, entitlement.Money{Amount: 22410, Currency: "INR"}, quote.Tax)
		assert.Equal(t, entitlement.Money{Amount: 146910, Currency: "INR"}, quote.Total)
		assert.False(t, quote.TaxComputedExternally)
	})

	t.Run("nexus dependent country returns pre-tax with marker", func(t *testing.T) {
		t.Parallel()
		quote, err := svc.PriceOf("furniture_manufacturing", entitlement.TierStarter, "US")
		require.NoError(t, err)

		assert.True(t, quote.TaxComputedExternally)
		assert.Equal(t, entitlement.Money{Amount: 1500, Currency: "USD"}, quote.Subtotal)
		assert.Equal(t, quote.Subtotal, quote.Total)
		assert.Zero(t, quote.TaxRate)
		assert.Zero(t, quote.Tax.Amount)
	})

	t.Run("unknown country", func(t *testing.T) {
		t.Parallel()
		_, err := svc.PriceOf("hrms", entitlement.TierStarter, "ZZ")
		assert.True(t, errors.Is(err, entitlement.ErrCountryNotFound))
	})

	t.Run("unknown module", func(t *testing.T) {
		t.Parallel()
		_, err := svc.PriceOf("spaceport", entitlement.TierStarter, "IN")
		assert.True(t, errors.Is(err, entitlement.ErrModuleNotFound))
	})
}

func TestMoney_Display(t *testing.T) {
	t.Parallel()

	assert.Contains(t, entitlement.Money{Amount: 124500, Currency: "INR"}.Display(), "1,245")
	// unknown code falls back to "CODE amount"
	assert.Equal(t, "XXY 12.34", entitlement.Money{Amount: 1234, Currency: "XXY"}.Display())
}
