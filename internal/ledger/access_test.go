package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/market_ledger/internal/domain"
)

func TestLedger_AddManager_Success(t *testing.T) {
	f := newFixture(t)

	err := f.l.AddManager(f.call(owner), wallet1)

	require.NoError(t, err)
	assert.True(t, f.l.IsManagerOrOwner(wallet1))
	assert.False(t, f.l.IsOwner(wallet1))
	assert.Equal(t, domain.CapabilityManager, f.l.Capability(wallet1))
	assert.Equal(t, []domain.Principal{wallet1}, f.l.Managers())

	last, err := f.l.LastLog()
	require.NoError(t, err)
	assert.Equal(t, "add-manager", last.Action)
	assert.Equal(t, "Manager added", last.Details)
	assert.Equal(t, owner, last.Principal)
}

func TestLedger_AddManager_ManagerCannotAddManagers(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.l.AddManager(f.call(owner), wallet1))

	err := f.l.AddManager(f.call(wallet1), wallet2)
	assert.Equal(t, domain.ErrNotAuthorized, err)

	err = f.l.RemoveManager(f.call(wallet1), wallet1)
	assert.Equal(t, domain.ErrNotAuthorized, err)
	assert.True(t, f.l.IsManagerOrOwner(wallet1))
}

func TestLedger_AddManager_BurnPrincipal(t *testing.T) {
	f := newFixture(t)

	err := f.l.AddManager(f.call(owner), domain.BurnPrincipal)

	assert.Equal(t, domain.ErrInvalidPrincipal, err)
	assert.Empty(t, f.l.Managers())
	_, err = f.l.LastLog()
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestLedger_RemoveManager_ReAddRestoresPrivileges(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.l.AddManager(f.call(owner), wallet1))
	require.NoError(t, f.l.RemoveManager(f.call(owner), wallet1))

	err := f.l.AddProduct(f.call(wallet1), 20, 1000, "Test", nil)
	assert.Equal(t, domain.ErrNotAuthorized, err)

	require.NoError(t, f.l.AddManager(f.call(owner), wallet1))
	err = f.l.AddProduct(f.call(wallet1), 20, 1000, "Test", nil)
	assert.NoError(t, err)
}

func TestLedger_Capability(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.l.AddManager(f.call(owner), wallet1))

	assert.Equal(t, domain.CapabilityOwner, f.l.Capability(owner))
	assert.Equal(t, domain.CapabilityManager, f.l.Capability(wallet1))
	assert.Equal(t, domain.CapabilityPublic, f.l.Capability(wallet2))
	assert.True(t, f.l.IsOwner(owner))
	assert.True(t, f.l.IsManagerOrOwner(owner))
	assert.False(t, f.l.IsManagerOrOwner(wallet2))
}

func TestLedger_OwnerOnlyOperations_RejectManagers(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.l.AddManager(f.call(owner), wallet1))

	err := f.l.SetNFTContract(f.call(wallet1), "boom-nft", false)
	assert.Equal(t, domain.ErrOwnerOnly, err)

	err = f.l.UpdateStoreInfo(f.call(wallet1), domain.StoreInfo{Name: "Store", Description: "Desc"})
	assert.Equal(t, domain.ErrOwnerOnly, err)

	err = f.l.UpdateStoreInfo(f.call(wallet2), domain.StoreInfo{Name: "Store", Description: "Desc"})
	assert.Equal(t, domain.ErrOwnerOnly, err)
}
