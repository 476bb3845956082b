package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

func TestLedger_UpdateStoreInfo(t *testing.T) {
	f := newFixture(t)
	info := domain.StoreInfo{
		Name:        "Boom Market",
		Description: "Things that go boom",
		Logo:        "ipfs://QmLogo",
		Banner:      "https://example.com/banner.png",
	}

	require.NoError(t, f.l.UpdateStoreInfo(f.call(owner), info))

	assert.Equal(t, info, f.l.StoreInfo())
}

func TestLedger_UpdateStoreInfo_Errors(t *testing.T) {
	valid := domain.StoreInfo{Name: "Store", Description: "Desc"}

	tests := []struct {
		name   string
		caller domain.Principal
		mutate func(*domain.StoreInfo)
		want   error
	}{
		{"public caller", wallet1, func(*domain.StoreInfo) {}, domain.ErrOwnerOnly},
		{"manager caller", wallet2, func(*domain.StoreInfo) {}, domain.ErrOwnerOnly},
		{"empty name", owner, func(i *domain.StoreInfo) { i.Name = "" }, domain.ErrEmptyString},
		{"empty description", owner, func(i *domain.StoreInfo) { i.Description = "" }, domain.ErrInvalidString},
		{"logo too long", owner, func(i *domain.StoreInfo) { i.Logo = strings.Repeat("l", MaxDescLen+1) }, domain.ErrInvalidString},
		{"non ascii banner", owner, func(i *domain.StoreInfo) { i.Banner = "bännër" }, domain.ErrInvalidString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.l.AddManager(f.call(owner), wallet2))
			info := valid
			tt.mutate(&info)

			err := f.l.UpdateStoreInfo(f.call(tt.caller), info)

			assert.Equal(t, tt.want, err)
			assert.Equal(t, domain.StoreInfo{}, f.l.StoreInfo())
		})
	}
}
