// Package contact は受取人情報の正規化とバリデーション。
package contact

import (
	"errors"
	"regexp"
	"strings"
)

// TLDは2文字以上を要求する（a@b や a@b.c は不正）
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@([a-zA-Z0-9\-]+\.)+[a-zA-Z]{2,}$`)

var (
	ErrFullNameRequired = errors.New("recipient full name required")
	ErrPhoneIncomplete  = errors.New("phone must contain 11 digits")
	ErrInvalidEmail     = errors.New("invalid email format")
)

// Digits は数字だけを残し、先頭8→7の置換と7の補完をして11桁に切り詰める。
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "8") {
		digits = "7" + digits[1:]
	}
	if !strings.HasPrefix(digits, "7") {
		digits = "7" + digits
	}
	if len(digits) > 11 {
		digits = digits[:11]
	}
	return digits
}

// FormatPhone は +7(XXX) XXX XX XX の段階的マスクを返す。
// 入力途中でも入った分だけ整形する。
func FormatPhone(s string) string {
	digits := Digits(s)

	formatted := "+7"
	if len(digits) > 1 {
		formatted += "(" + digits[1:min(4, len(digits))]
	}
	if len(digits) > 4 {
		formatted += ") " + digits[4:min(7, len(digits))]
	}
	if len(digits) > 7 {
		formatted += " " + digits[7:min(9, len(digits))]
	}
	if len(digits) > 9 {
		formatted += " " + digits[9:min(11, len(digits))]
	}
	return formatted
}

// IsPhoneComplete は送信可否の唯一のゲート。
// 表示マスクとは独立に「数字がちょうど11桁」かだけ見る。
func IsPhoneComplete(s string) bool {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n == 11
}

// E164 は保存・通知用の +7XXXXXXXXXX 表記。桁が揃わなければ false。
func E164(s string) (string, bool) {
	digits := Digits(s)
	if len(digits) != 11 {
		return "", false
	}
	return "+" + digits, true
}

// IsValidEmail は任意項目のemail検証。空は「未入力」で常に有効。
func IsValidEmail(s string) bool {
	if s == "" {
		return true
	}
	return emailPattern.MatchString(s)
}

// 受取人情報ブロック。
type Contact struct {
	FullName string
	Phone    string
	Email    string
	Comment  string
}

// Validate は最初に失敗した項目の具体的な理由を返す。
// 部分的な送信は許さない。
func (c Contact) Validate() error {
	if strings.TrimSpace(c.FullName) == "" {
		return ErrFullNameRequired
	}
	if !IsPhoneComplete(c.Phone) {
		return ErrPhoneIncomplete
	}
	if !IsValidEmail(c.Email) {
		return ErrInvalidEmail
	}
	return nil
}
