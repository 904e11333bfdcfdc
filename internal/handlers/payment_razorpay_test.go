package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func razorpaySign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignatureRoundTrip(t *testing.T) {
	const secret = "test_secret"
	sig := razorpaySign("order_ABC123", "pay_XYZ789", secret)

	if !verifyRazorpaySignature("order_ABC123", "pay_XYZ789", sig, secret) {
		t.Fatal("expected valid signature to verify")
	}
	if !verifyRazorpaySignature("order_ABC123", "pay_XYZ789", "  "+sig+"\n", secret) {
		t.Fatal("expected signature with surrounding whitespace to verify")
	}
}

func TestVerifyRazorpaySignatureRejectsTampering(t *testing.T) {
	const secret = "test_secret"
	sig := razorpaySign("order_ABC123", "pay_XYZ789", secret)

	if verifyRazorpaySignature("order_ABC123", "pay_OTHER", sig, secret) {
		t.Fatal("expected mismatched payment id to fail")
	}
	if verifyRazorpaySignature("order_ABC123", "pay_XYZ789", sig, "wrong_secret") {
		t.Fatal("expected wrong secret to fail")
	}
	if verifyRazorpaySignature("order_ABC123", "pay_XYZ789", "deadbeef", secret) {
		t.Fatal("expected bogus signature to fail")
	}
}
