package services

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cosmicfit-api/models"
)

// Profile is the public view of a user.
type Profile struct {
	WalletAddress string    `json:"wallet_address"`
	JoinDate      time.Time `json:"join_date"`
	ENSName       *string   `json:"ens_name"`
	AvatarSeed    string    `json:"avatar_seed"`
}

// AuthService verifies wallet sign-in messages and manages JWT sessions.
// The core trusts the address it binds; no further ownership proof is done
// downstream.
type AuthService struct {
	DB        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *zap.Logger
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		DB:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// parseSignInMessage extracts the claimed address from a ";"-separated
// "key:value" sign-in message.
func parseSignInMessage(message string) (common.Address, error) {
	for _, part := range strings.Split(message, ";") {
		key, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(key) == "address" {
			addr := strings.TrimSpace(value)
			if !common.IsHexAddress(addr) {
				return common.Address{}, fmt.Errorf("%w: malformed address in message", ErrUnauthenticated)
			}
			return common.HexToAddress(addr), nil
		}
	}
	return common.Address{}, fmt.Errorf("%w: no address in message", ErrUnauthenticated)
}

// VerifySignIn checks that the personal_sign signature over the message was
// produced by the address the message claims, and returns that address in
// checksummed form.
func VerifySignIn(message, signature string) (common.Address, error) {
	claimed, err := parseSignInMessage(message)
	if err != nil {
		return common.Address{}, err
	}

	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: malformed signature", ErrUnauthenticated)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: signature must be %d bytes", ErrUnauthenticated, crypto.SignatureLength)
	}
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: signature recovery failed", ErrUnauthenticated)
	}
	if crypto.PubkeyToAddress(*pub) != claimed {
		return common.Address{}, fmt.Errorf("%w: signature does not match address", ErrUnauthenticated)
	}
	return claimed, nil
}

// Login verifies a sign-in payload, creates the user on first login and
// returns a session token.
func (s *AuthService) Login(message, signature string) (string, error) {
	wallet, err := VerifySignIn(message, signature)
	if err != nil {
		return "", err
	}

	user := models.User{WalletAddress: wallet.Hex()}
	if err := s.DB.FirstOrCreate(&user, models.User{WalletAddress: wallet.Hex()}).Error; err != nil {
		return "", err
	}

	token, err := s.IssueToken(wallet)
	if err != nil {
		return "", err
	}
	s.log.Info("wallet authenticated", zap.String("wallet", wallet.Hex()))
	return token, nil
}

// IssueToken mints an HS256 session token bound to the wallet.
func (s *AuthService) IssueToken(wallet common.Address) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": wallet.Hex(),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
		"jti": uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

// WalletFromToken validates a session token and returns the checksummed
// wallet it is bound to.
func WalletFromToken(tokenString, jwtSecret string) (common.Address, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return common.Address{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: invalid claims", ErrUnauthenticated)
	}
	subject, err := claims.GetSubject()
	if err != nil || !common.IsHexAddress(subject) {
		return common.Address{}, fmt.Errorf("%w: invalid subject", ErrUnauthenticated)
	}
	return common.HexToAddress(subject), nil
}

// GetProfile returns the stored profile for a wallet.
func (s *AuthService) GetProfile(wallet string) (*Profile, error) {
	var user models.User
	if err := s.DB.First(&user, "wallet_address = ?", wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrUnauthenticated)
		}
		return nil, err
	}
	return &Profile{
		WalletAddress: user.WalletAddress,
		JoinDate:      user.JoinDate,
		ENSName:       nil,
		AvatarSeed:    AvatarSeed(user.WalletAddress),
	}, nil
}

// AvatarSeed derives a stable 16-hex-char avatar seed from a wallet address.
func AvatarSeed(wallet string) string {
	return hex.EncodeToString(crypto.Keccak256([]byte(wallet)))[:16]
}
