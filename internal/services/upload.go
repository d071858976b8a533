package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/lovishduggal/brainwave-backend/internal/pkg/logger"
)

// uploadAuthTTL bounds how long a signed upload grant stays valid.
const uploadAuthTTL = 30 * time.Minute

// UploadAuth is a one-shot client-side upload grant in the ImageKit scheme:
// signature = hex(HMAC-SHA1(token + expire, privateKey)).
type UploadAuth struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// UploadService signs upload grants. The backend never proxies file bytes;
// clients upload directly to the CDN with these parameters.
type UploadService struct {
	privateKey []byte
	now        func() time.Time
	log        *logger.Logger
}

func NewUploadService(privateKey string, log *logger.Logger) (*UploadService, error) {
	if privateKey == "" {
		return nil, fmt.Errorf("missing upload private key")
	}
	return &UploadService{
		privateKey: []byte(privateKey),
		now:        time.Now,
		log:        log.With("service", "UploadService"),
	}, nil
}

func (s *UploadService) NewAuthParams() UploadAuth {
	token := uuid.NewString()
	expire := s.now().Add(uploadAuthTTL).Unix()

	mac := hmac.New(sha1.New, s.privateKey)
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))

	return UploadAuth{
		Token:     token,
		Expire:    expire,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	}
}
