package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"flora/internal/domain/model"
	repo "flora/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const initDataMaxAge = 5 * time.Minute

type AuthUsecase struct {
	userRepo  repo.UserRepository
	adminRepo repo.AdminRepository

	botToken  string
	jwtSecret []byte
	tokenTTL  time.Duration
	devMode   bool

	now func() time.Time
}

func NewAuthUsecase(
	userRepo repo.UserRepository,
	adminRepo repo.AdminRepository,
	botToken string,
	jwtSecret string,
	devMode bool,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:  userRepo,
		adminRepo: adminRepo,
		botToken:  botToken,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
		devMode:   devMode,
		now:       time.Now,
	}
}

// Telegram WebApp の user フィールド
type telegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`
}

// TelegramLogin は initData を検証してユーザーをupsertし、JWTを発行する。
// 署名は HMAC-SHA256(key=HMAC("WebAppData", botToken), data_check_string)。
func (u *AuthUsecase) TelegramLogin(ctx context.Context, initData string) (string, error) {
	tgUser, err := u.verifyInitData(initData)
	if err != nil {
		return "", err
	}

	user, err := u.userRepo.FindByTelegramID(ctx, tgUser.ID)
	switch {
	case err == repo.ErrNotFound:
		user, err = u.userRepo.Create(ctx, model.User{
			TelegramID: tgUser.ID,
			Username:   tgUser.Username,
			FirstName:  tgUser.FirstName,
			LastName:   tgUser.LastName,
			Avatar:     tgUser.PhotoURL,
			JoinedAt:   u.now(),
		})
		if err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
	case err != nil:
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	default:
		if user.Blocked {
			return "", NewHTTPError(http.StatusForbidden, "user is blocked")
		}
		// アバター等は毎ログインで追従
		user.Username = tgUser.Username
		user.FirstName = tgUser.FirstName
		user.LastName = tgUser.LastName
		user.Avatar = tgUser.PhotoURL
		if err := u.userRepo.Update(ctx, user); err != nil {
			return "", NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return u.issueToken(strconv.FormatInt(user.ID, 10), "USER")
}

type AdminLoginInput struct {
	Username string
	Password string
}

// AdminLogin は管理者のパスワード認証。成功でADMINロールのJWTを返す。
func (u *AuthUsecase) AdminLogin(ctx context.Context, in AdminLoginInput) (string, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return "", NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
	}

	admin, err := u.adminRepo.FindByUsername(ctx, in.Username)
	if err == repo.ErrNotFound {
		return "", NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return "", NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
	}
	if !admin.IsActive {
		return "", NewHTTPError(http.StatusForbidden, "admin is inactive")
	}

	return u.issueToken(strconv.FormatInt(admin.ID, 10), "ADMIN")
}

func (u *AuthUsecase) verifyInitData(initData string) (telegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return telegramUser{}, NewHTTPError(http.StatusBadRequest, "invalid init data")
	}

	receivedHash := values.Get("hash")
	if receivedHash == "" {
		return telegramUser{}, NewHTTPError(http.StatusBadRequest, "hash not present in init data")
	}
	values.Del("hash")

	// key=value をキー昇順に \n で連結
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	dataCheckString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(u.botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheckString))
	computedHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computedHash), []byte(receivedHash)) {
		return telegramUser{}, NewHTTPError(http.StatusUnauthorized, "invalid init data signature")
	}

	// 古いinitDataの再利用を防ぐ（devは検証ループ用に免除）
	authDate, _ := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if !u.devMode && u.now().Unix()-authDate > int64(initDataMaxAge.Seconds()) {
		return telegramUser{}, NewHTTPError(http.StatusUnauthorized, "expired init data")
	}

	userField := values.Get("user")
	if userField == "" {
		return telegramUser{}, NewHTTPError(http.StatusBadRequest, "missing user field in init data")
	}
	var tgUser telegramUser
	if err := json.Unmarshal([]byte(userField), &tgUser); err != nil {
		return telegramUser{}, NewHTTPError(http.StatusBadRequest, "invalid user field in init data")
	}
	if tgUser.ID == 0 {
		return telegramUser{}, NewHTTPError(http.StatusBadRequest, "invalid user field in init data")
	}
	return tgUser, nil
}

func (u *AuthUsecase) issueToken(sub string, role string) (string, error) {
	now := u.now()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(u.tokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(u.jwtSecret)
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "token error")
	}
	return signed, nil
}
