package services

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	voucherDomainName    = "CosmicFit RewardManager"
	voucherDomainVersion = "1"
	voucherPrimaryType   = "Claim"
)

// claimTypeFields is the fixed EIP-712 schema of a claim voucher. The
// settlement contract verifies signatures against exactly this layout.
var claimTypeFields = []apitypes.Type{
	{Name: "wallet", Type: "address"},
	{Name: "rewardType", Type: "string"},
	{Name: "amount", Type: "uint256"},
	{Name: "nonce", Type: "uint256"},
}

// VoucherDomain is the EIP-712 domain separator as returned to callers.
type VoucherDomain struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	ChainID           int64  `json:"chainId"`
	VerifyingContract string `json:"verifyingContract"`
}

// VoucherMessage is the signed claim payload.
type VoucherMessage struct {
	Wallet     string `json:"wallet"`
	RewardType string `json:"rewardType"`
	Amount     int64  `json:"amount"`
	Nonce      int64  `json:"nonce"`
}

// Voucher is the full signed claim handed to the caller. It is ephemeral:
// only the corresponding RewardClaim row is persisted.
type Voucher struct {
	Domain    VoucherDomain              `json:"domain"`
	Types     map[string][]apitypes.Type `json:"types"`
	Message   VoucherMessage             `json:"message"`
	Signature string                     `json:"signature"`
}

// VoucherSigner signs claim vouchers with the service's admin key. The key
// is loaded once at startup and read-only afterwards, so a single signer is
// safe for concurrent use. An unconfigured signer (no key) is a valid state:
// claim issuing then fails with ErrSignerUnavailable instead of crashing the
// whole service.
type VoucherSigner struct {
	key      *ecdsa.PrivateKey
	chainID  int64
	contract common.Address
}

// NewVoucherSigner builds a signer from a hex-encoded private key. An empty
// key yields an unconfigured signer; a malformed key is a startup error.
func NewVoucherSigner(privateKeyHex string, chainID int64, verifyingContract string) (*VoucherSigner, error) {
	s := &VoucherSigner{
		chainID:  chainID,
		contract: common.HexToAddress(verifyingContract),
	}
	keyHex := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if keyHex == "" {
		return s, nil
	}
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}
	s.key = key
	return s, nil
}

// Configured reports whether a signing key is loaded.
func (s *VoucherSigner) Configured() bool {
	return s != nil && s.key != nil
}

// Address returns the signer's account address.
func (s *VoucherSigner) Address() common.Address {
	if !s.Configured() {
		return common.Address{}
	}
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// Domain returns the domain separator the signer binds vouchers to.
func (s *VoucherSigner) Domain() VoucherDomain {
	return VoucherDomain{
		Name:              voucherDomainName,
		Version:           voucherDomainVersion,
		ChainID:           s.chainID,
		VerifyingContract: s.contract.Hex(),
	}
}

// SignClaim signs {wallet, rewardType, amount, nonce} under the fixed domain
// and schema. Signing is deterministic: identical inputs and key produce an
// identical 65-byte signature with V in {27, 28}.
func (s *VoucherSigner) SignClaim(wallet common.Address, rewardType string, amount, nonce int64) (*Voucher, error) {
	if !s.Configured() {
		return nil, ErrSignerUnavailable
	}

	msg := VoucherMessage{
		Wallet:     wallet.Hex(),
		RewardType: rewardType,
		Amount:     amount,
		Nonce:      nonce,
	}
	digest, err := claimDigest(s.Domain(), msg)
	if err != nil {
		return nil, fmt.Errorf("hash claim: %w", err)
	}
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, fmt.Errorf("sign claim: %w", err)
	}
	// Recovery id as Ethereum wallets expect it.
	sig[64] += 27

	return &Voucher{
		Domain:    s.Domain(),
		Types:     map[string][]apitypes.Type{voucherPrimaryType: claimTypeFields},
		Message:   msg,
		Signature: hexutil.Encode(sig),
	}, nil
}

// RecoverVoucherSigner recovers the account that signed a voucher, for
// verification against the service's signing address.
func RecoverVoucherSigner(v *Voucher) (common.Address, error) {
	sig, err := hexutil.Decode(v.Signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes", crypto.SignatureLength)
	}
	digest, err := claimDigest(v.Domain, v.Message)
	if err != nil {
		return common.Address{}, err
	}
	recSig := make([]byte, len(sig))
	copy(recSig, sig)
	if recSig[64] >= 27 {
		recSig[64] -= 27
	}
	pub, err := crypto.SigToPub(digest, recSig)
	if err != nil {
		return common.Address{}, fmt.Errorf("recover pubkey: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// claimDigest computes the EIP-712 digest keccak("\x19\x01" || domain
// separator || struct hash) for a claim message.
func claimDigest(domain VoucherDomain, msg VoucherMessage) ([]byte, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			voucherPrimaryType: claimTypeFields,
		},
		PrimaryType: voucherPrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              domain.Name,
			Version:           domain.Version,
			ChainId:           math.NewHexOrDecimal256(domain.ChainID),
			VerifyingContract: domain.VerifyingContract,
		},
		Message: apitypes.TypedDataMessage{
			"wallet":     msg.Wallet,
			"rewardType": msg.RewardType,
			"amount":     math.NewHexOrDecimal256(msg.Amount),
			"nonce":      math.NewHexOrDecimal256(msg.Nonce),
		},
	}
	digest, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, err
	}
	return digest, nil
}
