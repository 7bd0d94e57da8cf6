package services

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSignerKey = "4f3edf983ac636a65a842ce7c78d9aa706d3b113b37e2b8c3c6d53295d85f81b"
	testContract  = "0x1111111111111111111111111111111111111111"
	testChainID   = int64(31337)
)

func newTestSigner(t *testing.T) *VoucherSigner {
	t.Helper()
	signer, err := NewVoucherSigner(testSignerKey, testChainID, testContract)
	require.NoError(t, err)
	require.True(t, signer.Configured())
	return signer
}

func TestNewVoucherSignerUnconfigured(t *testing.T) {
	signer, err := NewVoucherSigner("", testChainID, testContract)
	require.NoError(t, err)
	assert.False(t, signer.Configured())
	assert.Equal(t, common.Address{}, signer.Address())

	_, err = signer.SignClaim(common.HexToAddress("0x22"), "token", 100, 1)
	assert.ErrorIs(t, err, ErrSignerUnavailable)
}

func TestNewVoucherSignerBadKey(t *testing.T) {
	_, err := NewVoucherSigner("0x1234", testChainID, testContract)
	assert.Error(t, err)
}

func TestSignClaimDeterministic(t *testing.T) {
	signer := newTestSigner(t)
	wallet := common.HexToAddress("0x2222222222222222222222222222222222222222")

	first, err := signer.SignClaim(wallet, "token", 100, 1)
	require.NoError(t, err)
	second, err := signer.SignClaim(wallet, "token", 100, 1)
	require.NoError(t, err)

	assert.Equal(t, first.Signature, second.Signature)
	assert.Equal(t, first.Message, second.Message)
}

func TestSignClaimNonceChangesSignature(t *testing.T) {
	signer := newTestSigner(t)
	wallet := common.HexToAddress("0x2222222222222222222222222222222222222222")

	first, err := signer.SignClaim(wallet, "token", 100, 1)
	require.NoError(t, err)
	second, err := signer.SignClaim(wallet, "token", 100, 2)
	require.NoError(t, err)

	assert.NotEqual(t, first.Signature, second.Signature)
}

func TestSignClaimRecoversSignerAddress(t *testing.T) {
	signer := newTestSigner(t)
	key, err := crypto.HexToECDSA(testSignerKey)
	require.NoError(t, err)
	wantSigner := crypto.PubkeyToAddress(key.PublicKey)

	wallet := common.HexToAddress("0x3333333333333333333333333333333333333333")
	voucher, err := signer.SignClaim(wallet, "badge-bronze", 0, 7)
	require.NoError(t, err)

	recovered, err := RecoverVoucherSigner(voucher)
	require.NoError(t, err)
	assert.Equal(t, wantSigner, recovered)
}

func TestVoucherShape(t *testing.T) {
	signer := newTestSigner(t)
	wallet := common.HexToAddress("0x4444444444444444444444444444444444444444")

	voucher, err := signer.SignClaim(wallet, "token", 100, 3)
	require.NoError(t, err)

	assert.Equal(t, "CosmicFit RewardManager", voucher.Domain.Name)
	assert.Equal(t, "1", voucher.Domain.Version)
	assert.Equal(t, testChainID, voucher.Domain.ChainID)
	assert.Equal(t, common.HexToAddress(testContract).Hex(), voucher.Domain.VerifyingContract)

	require.Contains(t, voucher.Types, "Claim")
	assert.Len(t, voucher.Types["Claim"], 4)

	assert.Equal(t, wallet.Hex(), voucher.Message.Wallet)
	assert.Equal(t, "token", voucher.Message.RewardType)
	assert.Equal(t, int64(100), voucher.Message.Amount)
	assert.Equal(t, int64(3), voucher.Message.Nonce)

	// 65-byte signature, 0x-prefixed hex.
	assert.Len(t, voucher.Signature, 2+65*2)
}

func TestTamperedVoucherRecoversDifferentSigner(t *testing.T) {
	signer := newTestSigner(t)
	wallet := common.HexToAddress("0x5555555555555555555555555555555555555555")

	voucher, err := signer.SignClaim(wallet, "token", 100, 1)
	require.NoError(t, err)

	tampered := *voucher
	tampered.Message.Amount = 10000

	recovered, err := RecoverVoucherSigner(&tampered)
	require.NoError(t, err)
	assert.NotEqual(t, signer.Address(), recovered)
}
