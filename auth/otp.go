package auth

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"souq/rdx"
	"souq/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

const otpTTL = 5 * time.Minute

func GenerateOTP(length int) string {
	digits := "0123456789"
	var otp strings.Builder
	for i := 0; i < length; i++ {
		otp.WriteByte(digits[rand.Intn(len(digits))])
	}
	return otp.String()
}

func otpKey(phone string) string {
	return "otp:" + phone
}

// RequestOTPHandler issues a fresh code for a guest phone number. The
// code goes out through the SMS gateway; until one is wired it lands in
// the server log.
func RequestOTPHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || strings.TrimSpace(input.Phone) == "" {
		http.Error(w, "Phone is required", http.StatusBadRequest)
		return
	}

	code := GenerateOTP(4)
	if err := rdx.RdxSetWithTTL(otpKey(input.Phone), code, otpTTL); err != nil {
		log.Println("RequestOTP store error:", err)
		http.Error(w, "Could not issue code", http.StatusInternalServerError)
		return
	}

	// TODO: send through an SMS gateway once one is provisioned
	log.Printf("OTP for %s: %s", input.Phone, code)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// Verifier checks guest codes against Redis. It satisfies
// checkout.OTPVerifier.
type Verifier struct{}

// Verify consumes the stored code on a match. A wrong code leaves it in
// place so the guest can retry until the TTL runs out.
func (Verifier) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := rdx.Conn.Get(ctx, otpKey(phone)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code || code == "" {
		return false, nil
	}
	if _, err := rdx.RdxDel(otpKey(phone)); err != nil {
		log.Println("OTP cleanup error:", err)
	}
	return true, nil
}
